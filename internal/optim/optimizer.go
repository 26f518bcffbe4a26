// Package optim implements optimization algorithms driven by tensor gradients.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Tensors are never modified in place. Step builds a new leaf tensor for every
// updated parameter; Params returns the current set.
//
// Example usage:
//
//	optimizer := optim.NewSGD(params, optim.SGDConfig{LR: 0.1})
//
//	for epoch := range epochs {
//	    out, _ := model(optimizer.Params())
//	    _ = autodiff.Backward(out, nil)
//	    _ = optimizer.Step()
//	}
package optim

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minitensor/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step replaces every parameter that has a gradient with its updated value.
	// Parameters without a gradient are kept as they are.
	Step() error

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// Params returns the current parameters, in construction order.
	Params() []*tensor.Tensor

	// GetLR returns the current learning rate.
	GetLR() float64
}

// paramGrad returns the parameter values and gradient, or ok == false if the
// parameter has not received a gradient yet.
func paramGrad(param *tensor.Tensor) (values, grad []float64, ok bool, err error) {
	grad, ok = param.Grad()
	if !ok {
		return nil, nil, false, nil
	}
	values, err = param.Float64s()
	if err != nil {
		return nil, nil, false, errors.WithMessage(err, "optim")
	}
	return values, grad, true, nil
}

// replace builds the updated leaf for param.
func replace(param *tensor.Tensor, values []float64) (*tensor.Tensor, error) {
	next, err := tensor.FromFloat64(values, param.Shape())
	if err != nil {
		return nil, errors.WithMessage(err, "optim")
	}
	if param.RequiresGrad() {
		next.RequireGrad()
	}
	return next, nil
}

func zeroGrad(params []*tensor.Tensor) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
