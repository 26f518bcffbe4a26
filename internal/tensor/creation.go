package tensor

import (
	"github.com/pkg/errors"
)

// New wraps caller-supplied values as a tensor of the given dtype.
//
// No length check is performed: keeping len(values) equal to the product of
// shape is the caller's responsibility. Int32 tensors receive the values
// truncated toward zero, so the storage tag always matches dtype.
//
// Example:
//
//	t := tensor.New([]float64{1.5, 7.2, 5.0, 2.6}, tensor.Shape{2, 2}, tensor.Float64)
func New(values []float64, shape Shape, dtype DataType) *Tensor {
	switch dtype {
	case Float64:
		return newTensor(float64Storage(values), shape)
	case Int32:
		ints := make([]int32, len(values))
		for i, v := range values {
			ints[i] = int32(v)
		}
		return newTensor(int32Storage(ints), shape)
	default:
		panic("New: unsupported dtype " + dtype.String())
	}
}

// FromFloat64 creates a Float64 tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromFloat64(values []float64, shape Shape) (*Tensor, error) {
	if err := checkLength(len(values), shape); err != nil {
		return nil, err
	}
	data := make([]float64, len(values))
	copy(data, values)
	return newTensor(float64Storage(data), shape), nil
}

// FromInt32 creates an Int32 tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromInt32(values []int32, shape Shape) (*Tensor, error) {
	if err := checkLength(len(values), shape); err != nil {
		return nil, err
	}
	data := make([]int32, len(values))
	copy(data, values)
	return newTensor(int32Storage(data), shape), nil
}

func checkLength(n int, shape Shape) error {
	if err := shape.Validate(); err != nil {
		return errors.Wrap(ErrShapeMismatch, err.Error())
	}
	want, ok := shape.CheckedNumElements()
	if !ok {
		return errors.Wrapf(ErrLengthMismatch, "shape %v overflows the element count", []int(shape))
	}
	if want != n {
		return errors.Wrapf(ErrLengthMismatch, "shape %v requires %d elements, but got %d", []int(shape), want, n)
	}
	return nil
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{3, 4}, tensor.Float64)
func Zeros(shape Shape, dtype DataType) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	// make() zero-initializes
	return newTensor(newStorage(dtype, shape.NumElements()), shape)
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	t := tensor.Ones(tensor.Shape{2, 3}, tensor.Int32)
func Ones(shape Shape, dtype DataType) *Tensor {
	t := Zeros(shape, dtype)
	switch dtype {
	case Float64:
		for i := range t.storage.f64 {
			t.storage.f64[i] = 1
		}
	case Int32:
		for i := range t.storage.i32 {
			t.storage.i32[i] = 1
		}
	}
	return t
}
