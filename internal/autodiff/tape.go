package autodiff

import (
	"github.com/born-ml/minitensor/internal/tensor"
)

// tape lists the tensors reachable from a root in backward order:
// every tensor appears before all of the tensors it was computed from.
type tape struct {
	order []*tensor.Tensor
}

// record builds the tape with an iterative depth-first post-order walk over
// backward node inputs. Only tensors that require gradients are recorded.
func record(root *tensor.Tensor) *tape {
	type frame struct {
		t    *tensor.Tensor
		next int // index of the next input to visit
	}

	visited := map[*tensor.Tensor]bool{root: true}
	stack := []frame{{t: root}}
	var post []*tensor.Tensor

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		inputs := top.t.GradInputs()

		if top.next < len(inputs) {
			in := inputs[top.next]
			top.next++
			if in.RequiresGrad() && !visited[in] {
				visited[in] = true
				stack = append(stack, frame{t: in})
			}
			continue
		}

		post = append(post, top.t)
		stack = stack[:len(stack)-1]
	}

	// Reverse post-order is a topological order from root to leaves.
	order := make([]*tensor.Tensor, len(post))
	for i, t := range post {
		order[len(post)-1-i] = t
	}
	return &tape{order: order}
}

// Len returns the number of recorded tensors.
func (tp *tape) Len() int {
	return len(tp.order)
}
