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

// Package ramp interpolates between values and maps scalars to colours.
package ramp

import (
	"github.com/gx-org/texgen/build/node"
	"github.com/gx-org/texgen/build/vec"
)

// mix returns the clamped interpolation between a and b.
// All operands are referenced more than once and must be trivial.
func mix(a, b, v node.Node) node.Node {
	inner := node.Add(
		node.Mul(v, b),
		node.Mul(node.Sub(node.Const(1), v), a),
	)
	return node.Select(
		node.Le(v, node.Const(0)),
		a,
		node.Select(node.Ge(v, node.Const(1)), b, inner),
	)
}

// Lerp returns a when v <= 0, b when v >= 1 and v*b+(1-v)*a otherwise.
func Lerp(a, b, v node.Node) node.Node {
	var binder node.Binder
	v = binder.Bind("v", v)
	a = binder.Bind("a", a)
	b = binder.Bind("b", b)
	return binder.Wrap(mix(a, b, v))
}

// VLerp interpolates component-wise between a and b.
// a and b are broadcast to the same length. Only the first component of v
// is used.
func VLerp(a, b, v vec.Value) vec.Vector {
	n := max(a.Len(), b.Len())
	var binder node.Binder
	t := binder.Bind("v", vec.Component(0, v))
	r := make(vec.Vector, n)
	for i := range r {
		ai := binder.Bind("a", vec.Component(i, a))
		bi := binder.Bind("b", vec.Component(i, b))
		r[i] = mix(ai, bi, t)
	}
	return vec.WithBindings(binder.Bindings(), r)
}
