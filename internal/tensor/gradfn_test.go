package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulBackwardScenario(t *testing.T) {
	a := mustFloat64(t, []float64{2, 3}, Shape{2}).RequireGrad()
	b := mustFloat64(t, []float64{4, 5}, Shape{2}).RequireGrad()

	c, err := Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{8, 15}, c.Values())
	assert.True(t, c.RequiresGrad())
	require.True(t, c.HasGradFn())

	fn, ok := c.TakeGradFn()
	require.True(t, ok)
	assert.Equal(t, OpMul, fn.Op())

	grad, err := fn.Apply([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5}, grad)

	gradB, err := fn.InputGrad(1, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, gradB)
}

func TestTakeGradFnTransfersOwnership(t *testing.T) {
	a := Ones(Shape{2}, Float64).RequireGrad()
	c, err := Add(a, a)
	require.NoError(t, err)
	assert.False(t, c.GradFnTaken())

	_, ok := c.TakeGradFn()
	require.True(t, ok)
	assert.False(t, c.HasGradFn())
	assert.True(t, c.GradFnTaken())
	assert.False(t, a.GradFnTaken(), "leaves never had a node")

	_, ok = c.TakeGradFn()
	assert.False(t, ok, "node can only be taken once")
	assert.True(t, c.RequiresGrad(), "taking the node keeps the flag")
}

func TestAddSubBackwardIdentity(t *testing.T) {
	a := mustFloat64(t, []float64{1, 2, 3}, Shape{3}).RequireGrad()
	b := mustFloat64(t, []float64{4, 5, 6}, Shape{3}).RequireGrad()
	upstream := []float64{0.5, -1, 2}

	for _, fn := range []binaryFunc{Add, Sub} {
		out, err := fn(a, b)
		require.NoError(t, err)

		node, ok := out.TakeGradFn()
		require.True(t, ok)
		assert.Equal(t, Identity, node.Kind(0))

		grad, err := node.Apply(upstream)
		require.NoError(t, err)
		assert.Equal(t, upstream, grad, "%s passes the gradient through", node.Op())
	}
}

func TestSubBackwardSecondOperandNegated(t *testing.T) {
	a := Ones(Shape{2}, Float64).RequireGrad()
	b := Ones(Shape{2}, Float64).RequireGrad()

	out, err := Sub(a, b)
	require.NoError(t, err)
	node, _ := out.TakeGradFn()

	assert.Equal(t, Negate, node.Kind(1))
	grad, err := node.InputGrad(1, []float64{1, -2})
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 2}, grad)
}

func TestGradFnAttachment(t *testing.T) {
	plain := Ones(Shape{2}, Float64)
	tracked := Ones(Shape{2}, Float64).RequireGrad()

	tests := []struct {
		name         string
		a, b         *Tensor
		requiresGrad bool
	}{
		{"neither", plain, plain, false},
		{"left", tracked, plain, true},
		{"right", plain, tracked, true},
		{"both", tracked, tracked, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Mul(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.requiresGrad, out.RequiresGrad())
			assert.Equal(t, tt.requiresGrad, out.HasGradFn())
		})
	}
}

func TestNoGradFnOnInt32(t *testing.T) {
	a := Ones(Shape{2}, Int32).RequireGrad()
	b := Ones(Shape{2}, Int32)

	for name, fn := range allOps {
		t.Run(name, func(t *testing.T) {
			out, err := fn(a, b)
			require.NoError(t, err)
			assert.True(t, out.RequiresGrad())
			assert.False(t, out.HasGradFn())
		})
	}
}

func TestNoGradFnOnDiv(t *testing.T) {
	a := Ones(Shape{2}, Float64).RequireGrad()
	b := Ones(Shape{2}, Float64).RequireGrad()

	out, err := Div(a, b)
	require.NoError(t, err)
	assert.True(t, out.RequiresGrad())
	assert.False(t, out.HasGradFn())
}

func TestMulCapturesCopy(t *testing.T) {
	bValues := []float64{4, 5}
	a := mustFloat64(t, []float64{2, 3}, Shape{2}).RequireGrad()
	b := New(bValues, Shape{2}, Float64)

	c, err := Mul(a, b)
	require.NoError(t, err)

	// Changing the operand's backing array must not reach the captured copy.
	bValues[0] = -100
	fn, _ := c.TakeGradFn()
	grad, err := fn.Apply([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5}, grad)
}

func TestGradFnUpstreamLength(t *testing.T) {
	a := Ones(Shape{3}, Float64).RequireGrad()
	c, err := Add(a, a)
	require.NoError(t, err)
	fn, _ := c.TakeGradFn()

	_, err = fn.Apply([]float64{1, 1})
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = fn.InputGrad(2, []float64{1, 1, 1})
	require.Error(t, err)
}

func TestGradFnInputs(t *testing.T) {
	a := Ones(Shape{1}, Float64).RequireGrad()
	b := Zeros(Shape{1}, Float64)
	c, err := Sub(a, b)
	require.NoError(t, err)

	inputs := c.GradInputs()
	require.Len(t, inputs, 2)
	assert.Same(t, a, inputs[0])
	assert.Same(t, b, inputs[1])
	assert.True(t, c.HasGradFn(), "GradInputs does not detach")

	fn, ok := c.TakeGradFn()
	require.True(t, ok)
	assert.Equal(t, 2, fn.NumInputs())
	assert.Nil(t, c.GradInputs())
	assert.Nil(t, a.GradInputs(), "leaves have no inputs")
}
