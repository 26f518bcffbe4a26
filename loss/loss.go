// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loss provides scalar loss functions comparing predictions with targets.
//
// Every function requires tensors of identical shape and element type and
// returns the tensor package's sentinel errors when they differ. Losses do
// not record gradients.
//
// Example:
//
//	pred, _ := tensor.FromFloat64([]float64{3, -0.5, 2, 7}, tensor.Shape{4})
//	target, _ := tensor.FromFloat64([]float64{2.5, 0, 2, 8}, tensor.Shape{4})
//	mse, err := loss.MSE(pred, target) // 0.375
package loss

import (
	"github.com/born-ml/minitensor/internal/loss"
	"github.com/born-ml/minitensor/internal/tensor"
)

// ErrInvalidDelta is returned by SmoothMAE when delta is not positive.
var ErrInvalidDelta = loss.ErrInvalidDelta

// MAE computes the mean absolute error.
func MAE(pred, target *tensor.Tensor) (float64, error) {
	return loss.MAE(pred, target)
}

// MSE computes the mean squared error.
func MSE(pred, target *tensor.Tensor) (float64, error) {
	return loss.MSE(pred, target)
}

// RMSE computes the root mean squared error.
func RMSE(pred, target *tensor.Tensor) (float64, error) {
	return loss.RMSE(pred, target)
}

// MBE computes the mean bias error, mean(pred - target).
func MBE(pred, target *tensor.Tensor) (float64, error) {
	return loss.MBE(pred, target)
}

// SmoothMAE computes the Huber loss with the given delta.
func SmoothMAE(pred, target *tensor.Tensor, delta float64) (float64, error) {
	return loss.SmoothMAE(pred, target, delta)
}

// CrossEntropy computes binary cross-entropy using base-10 logarithms.
func CrossEntropy(pred, target *tensor.Tensor) (float64, error) {
	return loss.CrossEntropy(pred, target)
}

// Hinge computes the mean hinge loss for targets in {-1, 1}.
func Hinge(pred, target *tensor.Tensor) (float64, error) {
	return loss.Hinge(pred, target)
}
