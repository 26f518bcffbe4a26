package tensor

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Tensor is a dtype-tagged buffer with a shape and optional gradient tracking.
//
// A tensor is immutable after construction except for its gradient, which is
// written by a backward step. Outputs of arithmetic never alias their inputs.
//
// Example:
//
//	a := tensor.Ones(tensor.Shape{2, 2}, tensor.Float64).RequireGrad()
//	b := tensor.Zeros(tensor.Shape{2, 2}, tensor.Float64)
//	c, err := a.Mul(b)
type Tensor struct {
	storage      Storage
	shape        Shape
	strides      []int
	requiresGrad bool
	grad         []float64 // nil until a backward step writes it
	gradFn       *GradFn   // set only on outputs of differentiable ops
	gradFnTaken  bool      // gradFn was moved out by TakeGradFn
}

// newTensor assembles a tensor around storage it takes ownership of.
func newTensor(storage Storage, shape Shape) *Tensor {
	return &Tensor{
		storage: storage,
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
	}
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape.Clone()
}

// Strides returns the tensor's row-major strides.
func (t *Tensor) Strides() []int {
	return slices.Clone(t.strides)
}

// DType returns the tensor's storage tag.
func (t *Tensor) DType() DataType {
	return t.storage.DType()
}

// Len returns the number of stored elements.
func (t *Tensor) Len() int {
	return t.storage.Len()
}

// Float64s returns a copy of the values of a Float64 tensor.
func (t *Tensor) Float64s() ([]float64, error) {
	return t.storage.Float64s()
}

// Int32s returns a copy of the values of an Int32 tensor.
func (t *Tensor) Int32s() ([]int32, error) {
	return t.storage.Int32s()
}

// Values returns a float64 copy of the values of any tensor.
func (t *Tensor) Values() []float64 {
	return t.storage.Values()
}

// RequireGrad marks this tensor for gradient computation.
// Subsequent arithmetic involving this tensor attaches backward nodes.
//
// Returns the tensor itself for method chaining.
func (t *Tensor) RequireGrad() *Tensor {
	t.requiresGrad = true
	return t
}

// RequiresGrad returns true if this tensor requires gradient computation.
func (t *Tensor) RequiresGrad() bool {
	return t.requiresGrad
}

// Grad returns a copy of the accumulated gradient and whether one exists.
func (t *Tensor) Grad() ([]float64, bool) {
	if t.grad == nil {
		return nil, false
	}
	return slices.Clone(t.grad), true
}

// AccumulateGrad adds g into the tensor's gradient, creating it on first use.
// Only Float64 tensors that require gradients accept one.
func (t *Tensor) AccumulateGrad(g []float64) error {
	if !t.requiresGrad {
		return errors.New("AccumulateGrad: tensor does not require grad")
	}
	if t.storage.DType() != Float64 {
		return errors.Wrapf(ErrTypeMismatch, "AccumulateGrad: %s tensor cannot hold a gradient", t.storage.DType())
	}
	if len(g) != t.storage.Len() {
		return errors.Wrapf(ErrShapeMismatch, "AccumulateGrad: gradient has %d values, tensor has %d", len(g), t.storage.Len())
	}

	if t.grad == nil {
		t.grad = slices.Clone(g)
		return nil
	}
	floats.Add(t.grad, g)
	return nil
}

// ZeroGrad drops the accumulated gradient.
func (t *Tensor) ZeroGrad() {
	t.grad = nil
}

// HasGradFn reports whether a backward node is attached.
func (t *Tensor) HasGradFn() bool {
	return t.gradFn != nil
}

// GradInputs returns the operands of the attached backward node, or nil when
// there is none. The node itself stays attached.
func (t *Tensor) GradInputs() []*Tensor {
	if t.gradFn == nil {
		return nil
	}
	return t.gradFn.Inputs()
}

// TakeGradFn moves the backward node out of the tensor.
// After the call the tensor no longer carries a node, so the same node cannot
// be taken twice.
func (t *Tensor) TakeGradFn() (GradFn, bool) {
	if t.gradFn == nil {
		return GradFn{}, false
	}
	fn := *t.gradFn
	t.gradFn = nil
	t.gradFnTaken = true
	return fn, true
}

// GradFnTaken reports whether the tensor's backward node has been moved out
// by TakeGradFn. Such a tensor is an intermediate, not a leaf.
func (t *Tensor) GradFnTaken() bool {
	return t.gradFnTaken
}

// IsLeaf reports whether the tensor has no backward node.
func (t *Tensor) IsLeaf() bool {
	return t.gradFn == nil
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor[%s]%v", t.storage.DType(), []int(t.shape))
}
