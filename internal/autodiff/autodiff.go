// Package autodiff walks the backward graph built by tensor arithmetic.
//
// Every differentiable arithmetic call attaches a tensor.GradFn to its
// result. A GradFn is a single backward step; this package chains those steps
// from an output back to the leaf tensors, summing the contributions of
// tensors that are used more than once.
//
// Usage:
//
//	x := tensor.Ones(tensor.Shape{2}, tensor.Float64).RequireGrad()
//	y, _ := x.Mul(x) // y = x²
//	err := autodiff.Backward(y, nil)
//	grad, _ := x.Grad() // dy/dx = 2x = [2, 2]
package autodiff

import (
	"log/slog"

	"github.com/pkg/errors"
)

// ErrNoGradient is returned when Backward starts from a tensor that does not
// track gradients.
var ErrNoGradient = errors.New("tensor does not require grad")

// ErrGraphConsumed is returned when Backward reaches an intermediate tensor
// whose backward node was already taken by an earlier walk.
var ErrGraphConsumed = errors.New("backward graph already consumed")

// Option configures a backward pass.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger for traversal diagnostics.
// By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
