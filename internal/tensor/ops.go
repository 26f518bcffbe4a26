package tensor

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Op identifies an elementwise binary operation.
type Op int

// Elementwise binary operations.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	default:
		return "Unknown"
	}
}

// Add performs element-wise addition. Shapes must match exactly.
func Add(a, b *Tensor) (*Tensor, error) {
	return binary(OpAdd, a, b)
}

// Sub performs element-wise subtraction.
func Sub(a, b *Tensor) (*Tensor, error) {
	return binary(OpSub, a, b)
}

// Mul performs element-wise multiplication.
func Mul(a, b *Tensor) (*Tensor, error) {
	return binary(OpMul, a, b)
}

// Div performs element-wise division.
//
// Float64 division by zero follows IEEE 754 and yields ±Inf or NaN.
// Int32 division truncates toward zero and fails with ErrDivisionByZero
// if any divisor is zero.
func Div(a, b *Tensor) (*Tensor, error) {
	return binary(OpDiv, a, b)
}

// Add performs element-wise addition.
//
// Example:
//
//	a := tensor.Zeros(tensor.Shape{2, 2}, tensor.Float64)
//	b := tensor.Ones(tensor.Shape{2, 2}, tensor.Float64)
//	c, err := a.Add(b) // [1, 1, 1, 1]
func (t *Tensor) Add(other *Tensor) (*Tensor, error) {
	return Add(t, other)
}

// Sub performs element-wise subtraction.
func (t *Tensor) Sub(other *Tensor) (*Tensor, error) {
	return Sub(t, other)
}

// Mul performs element-wise multiplication.
func (t *Tensor) Mul(other *Tensor) (*Tensor, error) {
	return Mul(t, other)
}

// Div performs element-wise division.
func (t *Tensor) Div(other *Tensor) (*Tensor, error) {
	return Div(t, other)
}

// binary validates the operands, computes the result and attaches a backward
// node when gradients are tracked.
func binary(op Op, a, b *Tensor) (*Tensor, error) {
	if err := CheckBinary(a, b); err != nil {
		return nil, errors.WithMessage(err, op.String())
	}

	var storage Storage
	switch a.storage.DType() {
	case Float64:
		storage = float64Storage(binaryFloat64(op, a.storage.f64, b.storage.f64))
	case Int32:
		out, err := binaryInt32(op, a.storage.i32, b.storage.i32)
		if err != nil {
			return nil, errors.WithMessage(err, op.String())
		}
		storage = int32Storage(out)
	default:
		return nil, errors.Wrapf(ErrTypeMismatch, "%s: unsupported dtype %s", op, a.storage.DType())
	}

	result := newTensor(storage, a.shape)
	if a.requiresGrad || b.requiresGrad {
		result.requiresGrad = true
		result.gradFn = newGradFn(op, a, b)
	}
	return result, nil
}

func binaryFloat64(op Op, a, b []float64) []float64 {
	dst := make([]float64, len(a))
	switch op {
	case OpAdd:
		floats.AddTo(dst, a, b)
	case OpSub:
		floats.SubTo(dst, a, b)
	case OpMul:
		floats.MulTo(dst, a, b)
	case OpDiv:
		floats.DivTo(dst, a, b)
	}
	return dst
}
