package tensor

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Sum adds every element of the buffer, ignoring its dimensional structure.
// Int32 values are widened to float64.
//
// Fails with ErrEmptyTensor when the shape has no dimensions, even if the
// buffer holds values.
func Sum(t *Tensor) (float64, error) {
	if len(t.shape) == 0 {
		return 0, errors.Wrap(ErrEmptyTensor, "Sum")
	}

	switch t.storage.DType() {
	case Float64:
		return floats.Sum(t.storage.f64), nil
	case Int32:
		var sum float64
		for _, v := range t.storage.i32 {
			sum += float64(v)
		}
		return sum, nil
	default:
		return 0, errors.Wrapf(ErrTypeMismatch, "Sum: unsupported dtype %s", t.storage.DType())
	}
}

// Mean returns Sum divided by the product of the shape.
// A zero-sized dimension makes the divisor zero and the result NaN.
func Mean(t *Tensor) (float64, error) {
	if len(t.shape) == 0 {
		return 0, errors.Wrap(ErrEmptyTensor, "Mean")
	}

	sum, err := Sum(t)
	if err != nil {
		return 0, err
	}
	return sum / float64(t.shape.NumElements()), nil
}

// Sum adds every element of the tensor.
func (t *Tensor) Sum() (float64, error) {
	return Sum(t)
}

// Mean averages every element of the tensor.
func (t *Tensor) Mean() (float64, error) {
	return Mean(t)
}
