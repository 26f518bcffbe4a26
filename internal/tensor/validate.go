package tensor

import "github.com/pkg/errors"

// CheckBinary reports whether a and b may be combined elementwise.
//
// Checks run in a fixed order and stop at the first failure:
//  1. shapes equal dimension by dimension (ErrShapeMismatch)
//  2. storage tags equal (ErrTypeMismatch)
//  3. buffer lengths equal (ErrLengthMismatch)
//
// No broadcasting: Shape{2, 2} and Shape{4} are rejected.
func CheckBinary(a, b *Tensor) error {
	if !a.shape.Equal(b.shape) {
		return errors.Wrapf(ErrShapeMismatch, "%v vs %v", []int(a.shape), []int(b.shape))
	}
	if a.storage.DType() != b.storage.DType() {
		return errors.Wrapf(ErrTypeMismatch, "%s vs %s", a.storage.DType(), b.storage.DType())
	}
	if a.storage.Len() != b.storage.Len() {
		return errors.Wrapf(ErrLengthMismatch, "%d vs %d elements", a.storage.Len(), b.storage.Len())
	}
	return nil
}
