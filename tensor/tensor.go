// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/minitensor/internal/tensor"
)

// Core types.

// Tensor is a dtype-tagged multi-dimensional array.
//
// Tensors are immutable once built; every operation returns a fresh tensor
// with its own buffer.
type Tensor = tensor.Tensor

// Shape describes tensor dimensions, outermost first.
type Shape = tensor.Shape

// DataType is the element type tag of a tensor.
type DataType = tensor.DataType

// Op identifies an element-wise binary operation.
type Op = tensor.Op

// GradFn is a single-step backward function attached to an operation result.
type GradFn = tensor.GradFn

// BackwardKind describes how a GradFn routes the upstream gradient to one input.
type BackwardKind = tensor.BackwardKind

// Data types.
const (
	Float64 = tensor.Float64
	Int32   = tensor.Int32
)

// Operations.
const (
	OpAdd = tensor.OpAdd
	OpSub = tensor.OpSub
	OpMul = tensor.OpMul
	OpDiv = tensor.OpDiv
)

// Backward kinds.
const (
	Identity        = tensor.Identity
	Negate          = tensor.Negate
	ScaledByOperand = tensor.ScaledByOperand
)

// Errors returned by tensor operations. Match them with errors.Is.
var (
	ErrShapeMismatch  = tensor.ErrShapeMismatch
	ErrTypeMismatch   = tensor.ErrTypeMismatch
	ErrEmptyTensor    = tensor.ErrEmptyTensor
	ErrDivisionByZero = tensor.ErrDivisionByZero
	ErrLengthMismatch = tensor.ErrLengthMismatch
)

// Creation functions

// New wraps values in a tensor of the given shape and element type without
// checking that the value count matches the shape. Int32 values are truncated.
//
// Mismatched tensors are reported by the first operation that uses them.
// Prefer FromFloat64 or FromInt32 when the input is not trusted.
func New(values []float64, shape Shape, dtype DataType) *Tensor {
	return tensor.New(values, shape, dtype)
}

// FromFloat64 creates a Float64 tensor from a copy of values.
//
// Example:
//
//	x, err := tensor.FromFloat64([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromFloat64(values []float64, shape Shape) (*Tensor, error) {
	return tensor.FromFloat64(values, shape)
}

// FromInt32 creates an Int32 tensor from a copy of values.
func FromInt32(values []int32, shape Shape) (*Tensor, error) {
	return tensor.FromInt32(values, shape)
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float64)
func Zeros(shape Shape, dtype DataType) *Tensor {
	return tensor.Zeros(shape, dtype)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) *Tensor {
	return tensor.Ones(shape, dtype)
}

// Arithmetic

// Add returns a + b element-wise.
func Add(a, b *Tensor) (*Tensor, error) {
	return tensor.Add(a, b)
}

// Sub returns a - b element-wise.
func Sub(a, b *Tensor) (*Tensor, error) {
	return tensor.Sub(a, b)
}

// Mul returns a * b element-wise.
func Mul(a, b *Tensor) (*Tensor, error) {
	return tensor.Mul(a, b)
}

// Div returns a / b element-wise.
//
// Float64 division by zero follows IEEE 754. Int32 division by zero returns
// ErrDivisionByZero.
func Div(a, b *Tensor) (*Tensor, error) {
	return tensor.Div(a, b)
}

// CheckBinary reports whether a and b may be combined element-wise.
func CheckBinary(a, b *Tensor) error {
	return tensor.CheckBinary(a, b)
}

// Reductions

// Sum returns the sum of all elements as float64.
func Sum(t *Tensor) (float64, error) {
	return tensor.Sum(t)
}

// Mean returns the sum of all elements divided by the shape's element count.
func Mean(t *Tensor) (float64, error) {
	return tensor.Mean(t)
}
