package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minitensor/internal/autodiff"
	"github.com/born-ml/minitensor/internal/optim"
	"github.com/born-ml/minitensor/internal/tensor"
)

func param(t *testing.T, values ...float64) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromFloat64(values, tensor.Shape{len(values)})
	require.NoError(t, err)
	return x.RequireGrad()
}

func values(t *testing.T, x *tensor.Tensor) []float64 {
	t.Helper()
	v, err := x.Float64s()
	require.NoError(t, err)
	return v
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	x := param(t, 2.0)
	require.NoError(t, x.AccumulateGrad([]float64{1.0}))

	optimizer := optim.NewSGD([]*tensor.Tensor{x}, optim.SGDConfig{LR: 0.1})
	require.NoError(t, optimizer.Step())

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0
	updated := optimizer.Params()[0]
	assert.InDelta(t, 1.9, values(t, updated)[0], 1e-12)
	assert.True(t, updated.RequiresGrad())
	assert.NotSame(t, x, updated, "parameters are replaced, not mutated")
	assert.Equal(t, []float64{2.0}, values(t, x))
}

// TestSGD_WithMomentum tests SGD with momentum.
func TestSGD_WithMomentum(t *testing.T) {
	x := param(t, 1.0)
	optimizer := optim.NewSGD([]*tensor.Tensor{x}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	// Step 1: v = 1, x = 1 - 0.1 = 0.9
	require.NoError(t, x.AccumulateGrad([]float64{1.0}))
	require.NoError(t, optimizer.Step())
	x = optimizer.Params()[0]
	assert.InDelta(t, 0.9, values(t, x)[0], 1e-12)

	// Step 2: v = 0.9 + 1 = 1.9, x = 0.9 - 0.19 = 0.71
	require.NoError(t, x.AccumulateGrad([]float64{1.0}))
	require.NoError(t, optimizer.Step())
	assert.InDelta(t, 0.71, values(t, optimizer.Params()[0])[0], 1e-12)
}

func TestSGD_SkipsParamsWithoutGrad(t *testing.T) {
	x := param(t, 5.0)
	optimizer := optim.NewSGD([]*tensor.Tensor{x}, optim.SGDConfig{})

	require.NoError(t, optimizer.Step())
	assert.Same(t, x, optimizer.Params()[0])
	assert.Equal(t, 0.01, optimizer.GetLR(), "default learning rate")
}

func TestSGD_ZeroGrad(t *testing.T) {
	x := param(t, 1.0, 2.0)
	require.NoError(t, x.AccumulateGrad([]float64{1, 1}))

	optimizer := optim.NewSGD([]*tensor.Tensor{x}, optim.SGDConfig{LR: 0.1})
	optimizer.ZeroGrad()

	_, ok := x.Grad()
	assert.False(t, ok)
}

func TestSGD_GetSetLR(t *testing.T) {
	optimizer := optim.NewSGD(nil, optim.SGDConfig{LR: 0.5})
	assert.Equal(t, 0.5, optimizer.GetLR())
	optimizer.SetLR(0.25)
	assert.Equal(t, 0.25, optimizer.GetLR())
}

func TestSGD_RejectsInt32Params(t *testing.T) {
	x := tensor.Ones(tensor.Shape{1}, tensor.Int32).RequireGrad()
	optimizer := optim.NewSGD([]*tensor.Tensor{x}, optim.SGDConfig{})

	// Int32 tensors never accept a gradient, so there is nothing to update.
	require.Error(t, x.AccumulateGrad([]float64{1}))
	require.NoError(t, optimizer.Step())
}

// TestAdam_SimpleUpdate tests that the first Adam step moves by about lr.
func TestAdam_SimpleUpdate(t *testing.T) {
	x := param(t, 1.0, -1.0)
	require.NoError(t, x.AccumulateGrad([]float64{2.0, -0.5}))

	optimizer := optim.NewAdam([]*tensor.Tensor{x}, optim.AdamConfig{})
	assert.Equal(t, 0.001, optimizer.GetLR())
	require.NoError(t, optimizer.Step())

	// After bias correction m_hat = g and v_hat = g², so the step is lr * sign(g).
	got := values(t, optimizer.Params()[0])
	assert.InDelta(t, 0.999, got[0], 1e-6)
	assert.InDelta(t, -0.999, got[1], 1e-6)
}

func TestAdam_ZeroGrad(t *testing.T) {
	x := param(t, 1.0)
	require.NoError(t, x.AccumulateGrad([]float64{3}))

	optimizer := optim.NewAdam([]*tensor.Tensor{x}, optim.AdamConfig{LR: 0.01})
	optimizer.ZeroGrad()

	_, ok := x.Grad()
	assert.False(t, ok)
}

// TestConvergence_SimpleQuadratic minimizes f(x) = (x - 3)² through the graph.
func TestConvergence_SimpleQuadratic(t *testing.T) {
	target, err := tensor.FromFloat64([]float64{3}, tensor.Shape{1})
	require.NoError(t, err)

	optimizers := map[string]optim.Optimizer{
		"SGD":  optim.NewSGD([]*tensor.Tensor{param(t, 0)}, optim.SGDConfig{LR: 0.1}),
		"Adam": optim.NewAdam([]*tensor.Tensor{param(t, 0)}, optim.AdamConfig{LR: 0.1}),
	}

	for name, optimizer := range optimizers {
		t.Run(name, func(t *testing.T) {
			for step := 0; step < 300; step++ {
				x := optimizer.Params()[0]
				diff, err := x.Sub(target)
				require.NoError(t, err)
				sq, err := diff.Mul(diff)
				require.NoError(t, err)

				require.NoError(t, autodiff.Backward(sq, nil))
				require.NoError(t, optimizer.Step())
			}

			assert.InDelta(t, 3.0, values(t, optimizer.Params()[0])[0], 5e-2)
		})
	}
}

func TestMultipleParameters(t *testing.T) {
	a := param(t, 1, 2)
	b := param(t, 3)
	c := param(t, 4)
	require.NoError(t, a.AccumulateGrad([]float64{1, -1}))
	require.NoError(t, c.AccumulateGrad([]float64{2}))

	optimizer := optim.NewSGD([]*tensor.Tensor{a, b, c}, optim.SGDConfig{LR: 1})
	require.NoError(t, optimizer.Step())

	params := optimizer.Params()
	require.Len(t, params, 3)
	assert.Equal(t, []float64{0, 3}, values(t, params[0]))
	assert.Same(t, b, params[1])
	assert.Equal(t, []float64{2}, values(t, params[2]))
}
