package tensor

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
)

// Storage is a closed tagged union over the two supported buffers.
// Exactly one of f64 and i32 is in use, selected by dtype; the tag never
// changes after construction.
type Storage struct {
	dtype DataType
	f64   []float64
	i32   []int32
}

// float64Storage wraps values as Float64 storage without copying.
func float64Storage(values []float64) Storage {
	return Storage{dtype: Float64, f64: values}
}

// int32Storage wraps values as Int32 storage without copying.
func int32Storage(values []int32) Storage {
	return Storage{dtype: Int32, i32: values}
}

// newStorage allocates a zeroed buffer of n elements.
func newStorage(dtype DataType, n int) Storage {
	switch dtype {
	case Float64:
		return float64Storage(make([]float64, n))
	case Int32:
		return int32Storage(make([]int32, n))
	default:
		panic(fmt.Sprintf("unsupported dtype %s", dtype))
	}
}

// DType returns the storage tag.
func (s Storage) DType() DataType {
	return s.dtype
}

// Len returns the number of stored elements.
func (s Storage) Len() int {
	if s.dtype == Int32 {
		return len(s.i32)
	}
	return len(s.f64)
}

// Float64s returns a copy of the Float64 buffer.
func (s Storage) Float64s() ([]float64, error) {
	if s.dtype != Float64 {
		return nil, errors.Wrapf(ErrTypeMismatch, "storage is %s, not float64", s.dtype)
	}
	return slices.Clone(s.f64), nil
}

// Int32s returns a copy of the Int32 buffer.
func (s Storage) Int32s() ([]int32, error) {
	if s.dtype != Int32 {
		return nil, errors.Wrapf(ErrTypeMismatch, "storage is %s, not int32", s.dtype)
	}
	return slices.Clone(s.i32), nil
}

// Values returns the buffer widened to float64, whatever the tag.
func (s Storage) Values() []float64 {
	if s.dtype == Float64 {
		return slices.Clone(s.f64)
	}
	out := make([]float64, len(s.i32))
	for i, v := range s.i32 {
		out[i] = float64(v)
	}
	return out
}
