// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based optimizers for tensor parameters.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// Parameters are never modified in place. Step replaces each parameter that
// holds a gradient with a new leaf tensor; read the current set with Params.
//
// # Training Loop Pattern
//
//	optimizer := optim.NewSGD([]*tensor.Tensor{x}, optim.SGDConfig{LR: 0.1})
//
//	for step := range numSteps {
//	    x := optimizer.Params()[0]
//
//	    // 1. Forward pass
//	    diff, _ := x.Sub(target)
//	    loss, _ := diff.Mul(diff)
//
//	    // 2. Backward pass
//	    _ = autodiff.Backward(loss, nil)
//
//	    // 3. Update parameters
//	    _ = optimizer.Step()
//	}
package optim
