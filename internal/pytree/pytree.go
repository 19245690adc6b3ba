// Package pytree flattens arbitrarily nested Go containers into an ordered
// leaf list and rebuilds structurally identical containers from transformed
// leaves.
//
// The differentiation runtime passes operands and results around as trees:
// a custom function may take a slice of tensors, a map of named tensors, or
// any nesting of the two. Transform handlers need the leaves (to unwrap,
// wrap or differentiate them) without caring about the container layout, and
// need to restore the exact layout afterwards.
//
// Two container kinds are recognized: []any and map[string]any. Map leaves
// are ordered by sorted key so that flattening is deterministic. Everything
// else, including nil and non-tensor values, is a leaf.
package pytree

import (
	"fmt"
	"sort"
)

type kind int

const (
	leafKind kind = iota
	sliceKind
	mapKind
)

// Spec describes the container structure of a tree with the leaves stripped.
// A Spec produced by Flatten rebuilds the original layout via Unflatten.
type Spec struct {
	kind     kind
	keys     []string // map children keys, sorted
	children []*Spec
}

// IsLeaf reports whether the spec describes a single leaf.
func (s *Spec) IsLeaf() bool {
	return s.kind == leafKind
}

// NumLeaves returns the number of leaves the spec was built from.
func (s *Spec) NumLeaves() int {
	if s.kind == leafKind {
		return 1
	}
	n := 0
	for _, c := range s.children {
		n += c.NumLeaves()
	}
	return n
}

// Flatten walks the tree depth-first and returns its leaves in order,
// together with the Spec that rebuilds the original structure.
func Flatten(tree any) ([]any, *Spec) {
	var leaves []any
	spec := flatten(tree, &leaves)
	return leaves, spec
}

func flatten(tree any, leaves *[]any) *Spec {
	switch node := tree.(type) {
	case []any:
		spec := &Spec{kind: sliceKind, children: make([]*Spec, len(node))}
		for i, child := range node {
			spec.children[i] = flatten(child, leaves)
		}
		return spec
	case map[string]any:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		spec := &Spec{kind: mapKind, keys: keys, children: make([]*Spec, len(keys))}
		for i, k := range keys {
			spec.children[i] = flatten(node[k], leaves)
		}
		return spec
	default:
		*leaves = append(*leaves, tree)
		return &Spec{kind: leafKind}
	}
}

// Unflatten rebuilds a tree with the spec's structure from the given leaves.
// The leaf count must match the spec exactly.
func (s *Spec) Unflatten(leaves []any) any {
	if got, want := len(leaves), s.NumLeaves(); got != want {
		panic(fmt.Sprintf("pytree: unflatten got %d leaves, spec requires %d", got, want))
	}
	tree, _ := s.unflatten(leaves)
	return tree
}

func (s *Spec) unflatten(leaves []any) (any, []any) {
	switch s.kind {
	case leafKind:
		return leaves[0], leaves[1:]
	case sliceKind:
		node := make([]any, len(s.children))
		for i, c := range s.children {
			node[i], leaves = c.unflatten(leaves)
		}
		return node, leaves
	case mapKind:
		node := make(map[string]any, len(s.children))
		for i, c := range s.children {
			node[s.keys[i]], leaves = c.unflatten(leaves)
		}
		return node, leaves
	default:
		panic("pytree: corrupt spec")
	}
}

// Map applies f to every leaf of the tree and returns a tree of identical
// structure holding the results. Containers are rebuilt, never mutated.
func Map(f func(leaf any) any, tree any) any {
	switch node := tree.(type) {
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = Map(f, child)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = Map(f, child)
		}
		return out
	default:
		return f(tree)
	}
}
