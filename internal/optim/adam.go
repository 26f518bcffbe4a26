package optim

import (
	"math"
	"slices"

	"github.com/born-ml/minitensor/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	params []*tensor.Tensor
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int         // Timestep for bias correction
	m      [][]float64 // First moment estimates
	v      [][]float64 // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer, filling unset hyperparameters with
// their defaults.
func NewAdam(params []*tensor.Tensor, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: slices.Clone(params),
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make([][]float64, len(params)),
		v:      make([][]float64, len(params)),
	}
}

// Step performs a single optimization step.
// Parameters with no gradient are skipped.
func (a *Adam) Step() error {
	a.t++

	biasCorrection1 := 1 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1 - math.Pow(a.beta2, float64(a.t))

	for i, param := range a.params {
		values, grad, ok, err := paramGrad(param)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if a.m[i] == nil {
			a.m[i] = make([]float64, len(grad))
			a.v[i] = make([]float64, len(grad))
		}
		m, v := a.m[i], a.v[i]

		for j, g := range grad {
			m[j] = a.beta1*m[j] + (1-a.beta1)*g
			v[j] = a.beta2*v[j] + (1-a.beta2)*g*g

			mHat := m[j] / biasCorrection1
			vHat := v[j] / biasCorrection2
			values[j] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}

		next, err := replace(param, values)
		if err != nil {
			return err
		}
		a.params[i] = next
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	zeroGrad(a.params)
}

// Params returns the current parameters.
func (a *Adam) Params() []*tensor.Tensor {
	return slices.Clone(a.params)
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}
