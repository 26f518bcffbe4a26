package tensor

import "github.com/pkg/errors"

// Errors returned by tensor operations. Callers compare with errors.Is;
// operations wrap them with the name of the failing call.
var (
	// ErrShapeMismatch reports operand shapes that are not equal dimension by dimension.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrTypeMismatch reports operand storage tags with no defined operation.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrEmptyTensor reports a reduction over a tensor with no declared dimensions.
	ErrEmptyTensor = errors.New("empty tensor")

	// ErrDivisionByZero reports an integer division with a zero divisor.
	ErrDivisionByZero = errors.New("integer division by zero")

	// ErrLengthMismatch reports a buffer whose length disagrees with its shape
	// or with the other operand's buffer.
	ErrLengthMismatch = errors.New("buffer length mismatch")
)
