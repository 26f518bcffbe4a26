// Package loss provides scalar loss functions over finished tensors.
//
// Losses read predictions and targets through the tensor read accessors and
// reduce them to one float64. They build no graph. Errors from the tensor
// package are returned unchanged; the only error of this package's own is
// ErrInvalidDelta.
//
// Int32 tensors are widened to float64 before any arithmetic.
package loss

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/minitensor/internal/tensor"
)

// ErrInvalidDelta is returned by SmoothMAE when delta is not positive.
var ErrInvalidDelta = errors.New("smooth MAE delta must be positive")

// residuals validates the pair and returns pred - target with the element count.
func residuals(pred, target *tensor.Tensor) ([]float64, float64, error) {
	p, t, n, err := operands(pred, target)
	if err != nil {
		return nil, 0, err
	}
	diff := make([]float64, len(p))
	floats.SubTo(diff, p, t)
	return diff, n, nil
}

// operands validates the pair and returns both buffers as float64 together
// with the element count given by the prediction's shape.
func operands(pred, target *tensor.Tensor) ([]float64, []float64, float64, error) {
	if err := tensor.CheckBinary(pred, target); err != nil {
		return nil, nil, 0, err
	}
	shape := pred.Shape()
	if len(shape) == 0 {
		return nil, nil, 0, tensor.ErrEmptyTensor
	}
	return pred.Values(), target.Values(), float64(shape.NumElements()), nil
}

// MAE computes the mean absolute error: mean(|pred - target|).
func MAE(pred, target *tensor.Tensor) (float64, error) {
	p, t, n, err := operands(pred, target)
	if err != nil {
		return 0, err
	}
	return floats.Distance(p, t, 1) / n, nil
}

// MSE computes the mean squared error: mean((pred - target)²).
func MSE(pred, target *tensor.Tensor) (float64, error) {
	p, t, n, err := operands(pred, target)
	if err != nil {
		return 0, err
	}
	d := floats.Distance(p, t, 2)
	return d * d / n, nil
}

// RMSE computes the root mean squared error: sqrt(MSE).
func RMSE(pred, target *tensor.Tensor) (float64, error) {
	mse, err := MSE(pred, target)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MBE computes the mean bias error: mean(pred - target).
// Positive values mean the predictions overshoot on average.
func MBE(pred, target *tensor.Tensor) (float64, error) {
	diff, n, err := residuals(pred, target)
	if err != nil {
		return 0, err
	}
	return floats.Sum(diff) / n, nil
}

// SmoothMAE computes the smoothed absolute error (Huber loss).
//
// Per element, with e = pred - target:
//
//	0.5 * e²                    if |e| < delta
//	delta * |e| - 0.5 * delta²  otherwise
//
// delta must be positive (ErrInvalidDelta). The check runs before the operands
// are validated.
func SmoothMAE(pred, target *tensor.Tensor, delta float64) (float64, error) {
	if delta <= 0 {
		return 0, errors.Wrapf(ErrInvalidDelta, "got %v", delta)
	}
	diff, n, err := residuals(pred, target)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, e := range diff {
		abs := math.Abs(e)
		if abs < delta {
			total += 0.5 * e * e
		} else {
			total += delta*abs - 0.5*delta*delta
		}
	}
	return total / n, nil
}

// CrossEntropy computes binary cross-entropy with base-10 logarithms:
//
//	mean(-(target*log10(pred) + (1-target)*log10(1-pred)))
//
// Predictions are probabilities; values outside (0, 1) give Inf or NaN.
func CrossEntropy(pred, target *tensor.Tensor) (float64, error) {
	p, t, n, err := operands(pred, target)
	if err != nil {
		return 0, err
	}

	var total float64
	for i := range p {
		total -= t[i]*math.Log10(p[i]) + (1-t[i])*math.Log10(1-p[i])
	}
	return total / n, nil
}

// Hinge computes the hinge loss: mean(max(0, 1 - target*pred)).
// Targets are expected to be -1 or +1.
func Hinge(pred, target *tensor.Tensor) (float64, error) {
	p, t, n, err := operands(pred, target)
	if err != nil {
		return 0, err
	}

	var total float64
	for i := range p {
		total += math.Max(0, 1-t[i]*p[i])
	}
	return total / n, nil
}
