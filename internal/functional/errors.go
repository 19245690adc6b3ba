package functional

import "github.com/pkg/errors"

// ErrUnsupportedTransform reports that the transform on top of the stack
// has no rule for custom function calls yet. The call fails before touching
// any operand, so the transform stack is left exactly as it was.
var ErrUnsupportedTransform = errors.New("transform does not support custom function calls yet")

// ErrUnregisteredTransform reports a transform kind with no entry in the
// runtime's handler table.
var ErrUnregisteredTransform = errors.New("no handler registered for transform")
