package tensor

import (
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// BackwardKind selects how an edge maps the output gradient to its input.
type BackwardKind int

// Backward edge kinds.
const (
	// Identity passes the upstream gradient through unchanged.
	Identity BackwardKind = iota
	// Negate flips the sign of the upstream gradient.
	Negate
	// ScaledByOperand multiplies the upstream gradient elementwise by
	// values captured from the other operand.
	ScaledByOperand
)

// String returns the kind name.
func (k BackwardKind) String() string {
	switch k {
	case Identity:
		return "Identity"
	case Negate:
		return "Negate"
	case ScaledByOperand:
		return "ScaledByOperand"
	default:
		return "Unknown"
	}
}

// gradEdge is the local derivative of one operand.
type gradEdge struct {
	input    *Tensor
	kind     BackwardKind
	captured []float64 // owned copy, only for ScaledByOperand
}

// GradFn is the backward node of one arithmetic call.
//
// It holds one edge per operand. Captured operand values are copies taken
// during the forward call, so the node stays valid whatever happens to the
// operands afterwards.
//
// Backward pass per operation:
//   - Add: grad_a = grad, grad_b = grad
//   - Sub: grad_a = grad, grad_b = -grad
//   - Mul: grad_a = grad * b, grad_b = grad * a
//
// Div has no node.
type GradFn struct {
	op    Op
	size  int // number of output elements
	edges []gradEdge
}

// newGradFn builds the node for op(a, b), or nil when the operation has no
// backward definition. Only Float64 operands get a node.
func newGradFn(op Op, a, b *Tensor) *GradFn {
	if a.storage.DType() != Float64 {
		return nil
	}

	var edges []gradEdge
	switch op {
	case OpAdd:
		edges = []gradEdge{
			{input: a, kind: Identity},
			{input: b, kind: Identity},
		}
	case OpSub:
		edges = []gradEdge{
			{input: a, kind: Identity},
			{input: b, kind: Negate},
		}
	case OpMul:
		edges = []gradEdge{
			{input: a, kind: ScaledByOperand, captured: slices.Clone(b.storage.f64)},
			{input: b, kind: ScaledByOperand, captured: slices.Clone(a.storage.f64)},
		}
	default:
		// TODO: DivOp backward (grad/b, -grad*a/b²) once division joins the graph.
		return nil
	}

	return &GradFn{op: op, size: a.storage.Len(), edges: edges}
}

// Op returns the operation that produced this node.
func (fn GradFn) Op() Op {
	return fn.op
}

// NumInputs returns the number of operand edges.
func (fn GradFn) NumInputs() int {
	return len(fn.edges)
}

// Inputs returns the operand tensors in call order.
func (fn GradFn) Inputs() []*Tensor {
	inputs := make([]*Tensor, len(fn.edges))
	for i, e := range fn.edges {
		inputs[i] = e.input
	}
	return inputs
}

// Kind returns the backward kind of edge i.
func (fn GradFn) Kind(i int) BackwardKind {
	return fn.edges[i].kind
}

// Apply maps the upstream gradient to the gradient of the first operand.
// This is a single backward step; walking further is up to the caller.
func (fn GradFn) Apply(upstream []float64) ([]float64, error) {
	return fn.InputGrad(0, upstream)
}

// InputGrad maps the upstream gradient to the gradient of operand i.
// upstream must hold one value per output element.
func (fn GradFn) InputGrad(i int, upstream []float64) ([]float64, error) {
	if i < 0 || i >= len(fn.edges) {
		return nil, errors.Errorf("%s backward: no input %d", fn.op, i)
	}
	if len(upstream) != fn.size {
		return nil, errors.Wrapf(ErrShapeMismatch, "%s backward: upstream has %d values, output has %d", fn.op, len(upstream), fn.size)
	}

	e := fn.edges[i]
	grad := make([]float64, len(upstream))
	switch e.kind {
	case Identity:
		copy(grad, upstream)
	case Negate:
		floats.ScaleTo(grad, -1, upstream)
	case ScaledByOperand:
		floats.MulTo(grad, upstream, e.captured)
	}
	return grad, nil
}
