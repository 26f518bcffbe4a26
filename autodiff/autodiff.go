// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// tensor gradient functions.
//
// Arithmetic on tensors that require gradients records a single backward step
// on each result. Backward chains those steps from an output back to its leaf
// tensors and accumulates the gradients there.
//
// Example:
//
//	import (
//	    "github.com/born-ml/minitensor/autodiff"
//	    "github.com/born-ml/minitensor/tensor"
//	)
//
//	func main() {
//	    x, _ := tensor.FromFloat64([]float64{1, 2}, tensor.Shape{2})
//	    x.RequireGrad()
//
//	    y, _ := x.Mul(x)
//	    if err := autodiff.Backward(y, nil); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    grad, _ := x.Grad() // [2, 4]
//	}
package autodiff

import (
	"log/slog"

	"github.com/born-ml/minitensor/internal/autodiff"
	"github.com/born-ml/minitensor/internal/tensor"
)

// ErrNoGradient is returned when Backward starts from a tensor that does not
// require gradients.
var ErrNoGradient = autodiff.ErrNoGradient

// ErrGraphConsumed is returned when Backward reaches a tensor whose backward
// node an earlier walk already took.
var ErrGraphConsumed = autodiff.ErrGraphConsumed

// Option configures a backward pass.
type Option = autodiff.Option

// WithLogger routes traversal diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return autodiff.WithLogger(l)
}

// Backward propagates upstream from root to every leaf that requires
// gradients. A nil upstream seeds the pass with ones.
//
// Each gradient function in the graph is consumed, so a graph can be
// traversed only once; a second walk fails with ErrGraphConsumed.
func Backward(root *tensor.Tensor, upstream []float64, opts ...Option) error {
	return autodiff.Backward(root, upstream, opts...)
}
