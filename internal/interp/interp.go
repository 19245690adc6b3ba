// Package interp maintains the stack of active functional transforms.
//
// Every functional transform pushes an interpreter layer when it starts and
// pops it when it finishes. Operation dispatch inspects the stack top-down:
// the topmost layer responsible for a call interprets it, lowers itself out
// of view, and re-dispatches, so nested transforms peel off one at a time.
//
// The stack is strictly scoped and single-goroutine. Push and Lower return
// restore functions intended for defer, and restoration panics on unbalanced
// use. Levels come from a monotonic counter and are never reused, so a
// wrapper whose level is absent from the current view of the stack can
// always be recognized as dead.
package interp

import (
	"fmt"

	"github.com/tangent-ml/tangent/internal/autodiff"
)

// Kind identifies the transform type of a layer.
type Kind int

const (
	// Grad is reverse-mode differentiation.
	Grad Kind = iota + 1
	// Vmap is the batching transform. Only the layer bookkeeping exists;
	// no operation rules are implemented for it yet.
	Vmap
	// Jvp is forward-mode differentiation. Layer bookkeeping only.
	Jvp
	// Functionalize removes mutation from traced programs. Layer
	// bookkeeping only.
	Functionalize
)

// String returns the transform name.
func (k Kind) String() string {
	switch k {
	case Grad:
		return "Grad"
	case Vmap:
		return "Vmap"
	case Jvp:
		return "Jvp"
	case Functionalize:
		return "Functionalize"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Layer is one active transform on the stack.
type Layer struct {
	level int
	kind  Kind
	tape  *autodiff.Tape
}

// Level returns the layer's unique level number.
func (l *Layer) Level() int {
	return l.level
}

// Kind returns the layer's transform type.
func (l *Layer) Kind() Kind {
	return l.kind
}

// Tape returns the gradient tape of a Grad layer, nil for other kinds.
func (l *Layer) Tape() *autodiff.Tape {
	return l.tape
}

// Stack is the runtime's stack of active transform layers.
//
// A Stack belongs to a single goroutine. All mutation happens through the
// scoped Push and Lower pairs.
type Stack struct {
	layers    []*Layer
	nextLevel int
}

// NewStack creates an empty transform stack. The first pushed layer gets
// level 1.
func NewStack() *Stack {
	return &Stack{nextLevel: 1}
}

// Depth returns the number of layers currently in view.
func (s *Stack) Depth() int {
	return len(s.layers)
}

// Top returns the topmost layer, or nil when the stack is empty.
func (s *Stack) Top() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// TopOfKind returns the topmost layer of the given kind, or nil if none is
// in view.
func (s *Stack) TopOfKind(k Kind) *Layer {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if s.layers[i].kind == k {
			return s.layers[i]
		}
	}
	return nil
}

// Live reports whether a layer with the given level is currently in view.
// Levels are never reused, so a false result for a wrapper's level means the
// wrapper is dead.
func (s *Stack) Live(level int) bool {
	for _, l := range s.layers {
		if l.level == level {
			return true
		}
	}
	return false
}

// Push creates a layer of the given kind on top of the stack and returns it
// with the restore function that pops it. Grad layers get a fresh gradient
// tape. The restore function panics if intermediate pushes were not popped
// first.
func (s *Stack) Push(kind Kind) (*Layer, func()) {
	l := &Layer{level: s.nextLevel, kind: kind}
	if kind == Grad {
		l.tape = autodiff.NewTape()
	}
	s.nextLevel++
	s.layers = append(s.layers, l)
	depth := len(s.layers)

	return l, func() {
		if len(s.layers) != depth || s.layers[depth-1] != l {
			panic(fmt.Sprintf("interp: unbalanced pop of %s level %d (stack depth %d, want %d)",
				l.kind, l.level, len(s.layers), depth))
		}
		s.layers = s.layers[:depth-1]
	}
}

// Lower removes l and every layer above it from view, returning the restore
// function that brings them back. Handlers lower their own layer before
// re-dispatching an operation so the next transform down interprets it.
//
// Restoration panics if the lowered scope left the stack unbalanced.
func (s *Stack) Lower(l *Layer) func() {
	idx := -1
	for i, cur := range s.layers {
		if cur == l {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic(fmt.Sprintf("interp: cannot lower %s level %d: layer is not on the stack", l.kind, l.level))
	}

	saved := make([]*Layer, len(s.layers)-idx)
	copy(saved, s.layers[idx:])
	// Cap the slice so pushes inside the lowered scope cannot overwrite
	// the saved layers in the shared backing array.
	s.layers = s.layers[:idx:idx]

	return func() {
		if len(s.layers) != idx {
			panic(fmt.Sprintf("interp: unbalanced stack on restore of level %d (depth %d, want %d)",
				l.level, len(s.layers), idx))
		}
		s.layers = append(s.layers, saved...)
	}
}
