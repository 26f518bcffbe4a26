package tensor

import (
	"fmt"
	"math"
	"slices"
)

// Shape represents the dimensions of a tensor.
// An empty shape denotes a rank-0 tensor.
type Shape []int

// NumElements returns the product of all dimensions.
// An empty shape yields 1, matching the empty product.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// CheckedNumElements is NumElements with overflow detection. ok is false when
// the product does not fit in an int. A zero dimension always yields 0.
func (s Shape) CheckedNumElements() (n int, ok bool) {
	if slices.Contains(s, 0) {
		return 0, true
	}
	n = 1
	for _, dim := range s {
		if dim < 0 || (dim > 0 && n > math.MaxInt/dim) {
			return 0, false
		}
		n *= dim
	}
	return n, true
}

// Validate checks that no dimension is negative.
// Zero-sized dimensions are allowed.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal dimension by dimension.
// Shapes with the same element count but different dimensions are not equal.
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

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}
