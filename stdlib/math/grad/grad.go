// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package grad computes numeric gradients of texture expressions.
//
// Derivatives are approximated by forward finite differences. The function
// is bound once and every partial derivative refers to it.
package grad

import (
	"github.com/gx-org/texgen/build/node"
	"github.com/gx-org/texgen/build/vec"
)

// Epsilon is the step used to compute finite differences.
const Epsilon = 1e-6

// partial returns the partial derivative of f with respect to an axis
// given a reference base to the value of f.
func partial(f, base node.Node, axis node.Axis) node.Node {
	sym, binding := node.BindOnceNamed(axis.String()+"eps", node.Add(node.Coordinate{Axis: axis}, node.Const(Epsilon)))
	var repl node.Replacement
	repl[axis] = node.NewRef(sym)
	shifted := node.Substitute(f, repl)
	if shifted == f {
		// f does not depend on axis.
		return node.Const(0)
	}
	shifted = node.WithBindings([]node.Binding{binding}, shifted)
	return node.Div(node.Sub(shifted, base), node.Const(Epsilon))
}

// Partial returns the partial derivative of f with respect to an axis.
func Partial(f node.Node, axis node.Axis) node.Node {
	var b node.Binder
	base := b.Bind("f", f)
	return b.Wrap(partial(f, base, axis))
}

// VGradient returns the gradient of f with respect to (x, y, z, t).
func VGradient(f node.Node) vec.Vector {
	var b node.Binder
	base := b.Bind("f", f)
	axes := make(vec.Vector, node.NumAxes)
	for i := range axes {
		axes[i] = partial(f, base, node.Axis(i))
	}
	return vec.WithBindings(b.Bindings(), axes)
}
