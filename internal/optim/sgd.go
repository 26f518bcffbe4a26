package optim

import (
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/minitensor/internal/tensor"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(params, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []*tensor.Tensor
	lr         float64
	momentum   float64
	velocities [][]float64 // per parameter index, nil until first step
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*tensor.Tensor, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     slices.Clone(params),
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make([][]float64, len(params)),
	}
}

// Step performs a single optimization step.
//
// Parameters with no gradient (not in the graph) are skipped.
func (s *SGD) Step() error {
	for i, param := range s.params {
		values, grad, ok, err := paramGrad(param)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		update := grad
		if s.momentum != 0 {
			if s.velocities[i] == nil {
				s.velocities[i] = make([]float64, len(grad))
			}
			// velocity = momentum * velocity + grad
			floats.Scale(s.momentum, s.velocities[i])
			floats.Add(s.velocities[i], grad)
			update = s.velocities[i]
		}

		// param -= lr * update
		floats.AddScaled(values, -s.lr, update)

		next, err := replace(param, values)
		if err != nil {
			return err
		}
		s.params[i] = next
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// Params returns the current parameters.
func (s *SGD) Params() []*tensor.Tensor {
	return slices.Clone(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
