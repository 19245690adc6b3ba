package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
// An empty shape is a scalar.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// IsScalar reports whether the shape holds exactly one element.
// Both Shape{} and shapes like Shape{1, 1} count as scalars.
func (s Shape) IsScalar() bool {
	return s.NumElements() == 1
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String renders the shape in the usual bracketed form, e.g. [2 3].
func (s Shape) String() string {
	return fmt.Sprintf("%v", []int(s))
}

// BinaryShape resolves the output shape of an element-wise binary operation.
//
// Operands must have equal shapes, or one of them must be a scalar; a scalar
// operand is broadcast against the other shape. This is deliberately narrower
// than NumPy broadcasting: gradients of a restricted rule stay a restricted
// rule, which keeps every backward pass a plain element-wise map or a full
// reduction.
//
// Examples:
//
//	(3, 5) + (3, 5) → (3, 5)
//	(3, 5) + ()     → (3, 5)
//	()     + ()     → ()
//	(3, 4) + (3, 5) → error
func BinaryShape(a, b Shape) (Shape, error) {
	switch {
	case a.Equal(b):
		return a.Clone(), nil
	case a.IsScalar():
		return b.Clone(), nil
	case b.IsScalar():
		return a.Clone(), nil
	default:
		return nil, fmt.Errorf("shapes not compatible: %v vs %v (shapes must match, or one operand must be a scalar)", a, b)
	}
}
