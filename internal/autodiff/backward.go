package autodiff

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/minitensor/internal/tensor"
)

// Backward propagates upstream from root to every leaf tensor that requires
// gradients, accumulating into each leaf's gradient.
//
// Algorithm:
//  1. Order the graph so each tensor precedes its inputs
//  2. Seed root with upstream (ones when nil)
//  3. Walk the order, taking each tensor's GradFn and pushing one gradient per input
//  4. Sum gradients when the same tensor is used multiple times
//  5. Write the summed gradient once into every leaf
//
// Nodes are taken out of their tensors, so a graph can be walked only once.
// Reaching a tensor whose node an earlier walk took, including a subgraph
// shared with an earlier root, fails with ErrGraphConsumed before any
// gradient is written. Tensors that require gradients but never had a node
// (for example the result of Div) act as leaves.
//
// Example:
//
//	a := tensor.Ones(tensor.Shape{2}, tensor.Float64).RequireGrad()
//	b, _ := a.Mul(a)
//	c, _ := b.Add(a)
//	err := autodiff.Backward(c, nil) // a.Grad() == [3, 3]
func Backward(root *tensor.Tensor, upstream []float64, opts ...Option) error {
	o := newOptions(opts)

	if !root.RequiresGrad() {
		return ErrNoGradient
	}
	if root.DType() != tensor.Float64 {
		return errors.Wrapf(tensor.ErrTypeMismatch, "backward: unsupported dtype %s (only float64 supported)", root.DType())
	}

	if upstream == nil {
		upstream = make([]float64, root.Len())
		for i := range upstream {
			upstream[i] = 1
		}
	} else if len(upstream) != root.Len() {
		return errors.Wrapf(tensor.ErrShapeMismatch, "backward: upstream has %d values, output has %d", len(upstream), root.Len())
	}

	tp := record(root)
	for _, t := range tp.order {
		if t.GradFnTaken() {
			return errors.Wrapf(ErrGraphConsumed, "backward: reached %s", t)
		}
	}
	o.logger.Debug("autodiff: backward pass", "root", root.String(), "tensors", tp.Len())

	grads := make(map[*tensor.Tensor][]float64, tp.Len())
	grads[root] = append([]float64(nil), upstream...)

	leaves := 0
	for _, t := range tp.order {
		grad, ok := grads[t]
		if !ok {
			continue
		}
		delete(grads, t)

		fn, hasFn := t.TakeGradFn()
		if !hasFn {
			if err := t.AccumulateGrad(grad); err != nil {
				return errors.WithMessage(err, "backward")
			}
			leaves++
			continue
		}

		if err := propagate(fn, grad, grads); err != nil {
			return err
		}
	}

	o.logger.Debug("autodiff: gradients written", "leaves", leaves)
	return nil
}

// propagate pushes grad through each edge of fn, summing into grads.
func propagate(fn tensor.GradFn, grad []float64, grads map[*tensor.Tensor][]float64) error {
	for i, in := range fn.Inputs() {
		if !in.RequiresGrad() {
			continue
		}
		g, err := fn.InputGrad(i, grad)
		if err != nil {
			return errors.WithMessagef(err, "backward through %s", fn.Op())
		}
		if existing, ok := grads[in]; ok {
			floats.Add(existing, g)
		} else {
			grads[in] = g
		}
	}
	return nil
}
