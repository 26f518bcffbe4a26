// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dtype-tagged tensors with element-wise arithmetic,
// reductions and single-step gradient functions.
//
// # Storage
//
// A tensor owns a contiguous row-major buffer tagged with its element type.
// Two element types are supported:
//   - Float64: participates in gradient computation
//   - Int32: arithmetic only, never records gradient functions
//
// # Arithmetic
//
// Add, Sub, Mul and Div require operands of identical shape and element type.
// There is no broadcasting. Checks run in a fixed order: shape first, then
// element type, then buffer length.
//
//	a, _ := tensor.FromFloat64([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	b := tensor.Ones(tensor.Shape{2, 2}, tensor.Float64)
//	c, err := a.Add(b)
//	if errors.Is(err, tensor.ErrShapeMismatch) {
//	    // handle
//	}
//
// # Gradients
//
// When either operand requires gradients, the result of Add, Sub or Mul
// carries a GradFn describing how to route an upstream gradient back to its
// inputs. TakeGradFn hands the function to the caller exactly once; use the
// autodiff package to run a full backward pass.
//
//	x := tensor.Ones(tensor.Shape{2}, tensor.Float64).RequireGrad()
//	y, _ := x.Mul(x)
//	fn, _ := y.TakeGradFn()
//	grad, _ := fn.Apply([]float64{1, 1})
package tensor
