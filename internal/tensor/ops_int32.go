package tensor

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minitensor/internal/parallel"
)

// Int32 operations

// kernelConfig splits large int32 kernels across goroutines.
var kernelConfig = parallel.DefaultConfig()

func binaryInt32(op Op, a, b []int32) ([]int32, error) {
	var kernel func(dst, a, b []int32)
	switch op {
	case OpAdd:
		kernel = addInt32
	case OpSub:
		kernel = subInt32
	case OpMul:
		kernel = mulInt32
	case OpDiv:
		if i := indexZeroInt32(b); i >= 0 {
			return nil, errors.Wrapf(ErrDivisionByZero, "divisor is zero at index %d", i)
		}
		kernel = divInt32
	default:
		return nil, errors.Errorf("unknown op %s", op)
	}

	dst := make([]int32, len(a))
	parallel.Range(len(a), kernelConfig, func(start, end int) {
		kernel(dst[start:end], a[start:end], b[start:end])
	})
	return dst, nil
}

func addInt32(dst, a, b []int32) {
	for i := range a {
		dst[i] = a[i] + b[i]
	}
}

func subInt32(dst, a, b []int32) {
	for i := range a {
		dst[i] = a[i] - b[i]
	}
}

func mulInt32(dst, a, b []int32) {
	for i := range a {
		dst[i] = a[i] * b[i]
	}
}

// divInt32 truncates toward zero. Divisors must be non-zero.
func divInt32(dst, a, b []int32) {
	for i := range a {
		dst[i] = a[i] / b[i]
	}
}

func indexZeroInt32(s []int32) int {
	for i, v := range s {
		if v == 0 {
			return i
		}
	}
	return -1
}
