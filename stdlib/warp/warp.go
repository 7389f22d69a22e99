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

// Package warp transforms the domain of texture expressions.
//
// A warp replaces the position (x, y, z, t) of an expression by computed
// coordinates. Every computed coordinate is bound once: nesting warps
// grows expressions linearly with the nesting depth.
package warp

import (
	"math"

	"github.com/gx-org/texgen/build/node"
	"github.com/gx-org/texgen/build/vec"
)

// replacement binds new coordinates and returns the matching replacement.
// Axes beyond the length of coords are left unchanged.
func replacement(binder *node.Binder, coords vec.Value) node.Replacement {
	var repl node.Replacement
	for i := 0; i < min(coords.Len(), node.NumAxes); i++ {
		axis := node.Axis(i)
		coord := coords.At(i)
		if coord == (node.Coordinate{Axis: axis}) {
			continue
		}
		repl[axis] = binder.Bind(axis.String(), coord)
	}
	return repl
}

func isIdentity(repl node.Replacement) bool {
	for _, n := range repl {
		if n != nil {
			return false
		}
	}
	return true
}

// Warp substitutes new coordinates for the position of a scalar expression.
func Warp(coords vec.Value, f node.Node) node.Node {
	var binder node.Binder
	repl := replacement(&binder, coords)
	if isIdentity(repl) {
		return f
	}
	return binder.Wrap(node.Substitute(f, repl))
}

// WarpVector substitutes new coordinates for the position of a vector expression.
// Coordinates are computed once for all the components.
func WarpVector(coords vec.Value, f vec.Vector) vec.Vector {
	var binder node.Binder
	repl := replacement(&binder, coords)
	if isIdentity(repl) {
		return f
	}
	return vec.WithBindings(binder.Bindings(), vec.Substitute(f, repl))
}

// Value substitutes new coordinates for the position of a scalar or a vector.
func Value(coords vec.Value, f vec.Value) vec.Value {
	if f.IsScalar() {
		return vec.S(Warp(coords, f.At(0)))
	}
	return WarpVector(coords, vec.ToVector(f))
}

// Offset translates the position of f by delta.
// A scalar delta translates the axes of the space, not the time.
func Offset(delta vec.Value, f vec.Value) vec.Value {
	if delta.IsScalar() {
		d := delta.At(0)
		delta = vec.New(d, d, d)
	}
	return Value(vec.Add(vec.Position(), delta), f)
}

// Scale divides the position of f by factor.
// A scalar factor scales the axes of the space, not the time.
func Scale(factor vec.Value, f vec.Value) vec.Value {
	if factor.IsScalar() {
		s := factor.At(0)
		factor = vec.New(s, s, s, node.Const(1))
	}
	return Value(vec.Div(vec.Position(), pad(factor)), f)
}

// pad extends a vector with ones to all the axes.
func pad(factor vec.Value) vec.Vector {
	r := make(vec.Vector, node.NumAxes)
	for i := range r {
		r[i] = node.Const(1)
		if i < factor.Len() {
			r[i] = factor.At(i)
		}
	}
	return r
}

// SeamlessTile maps the xy plane onto a torus in a 4D space so that f
// becomes periodic in x and y with the given period.
func SeamlessTile(period float64, f vec.Value) vec.Value {
	var binder node.Binder
	k := node.Const(2 * math.Pi / period)
	ax := binder.Bind("ax", node.Mul(node.X, k))
	ay := binder.Bind("ay", node.Mul(node.Y, k))
	coords := vec.New(node.Cos(ax), node.Sin(ax), node.Cos(ay), node.Sin(ay))
	return withBindings(binder.Bindings(), Value(coords, f))
}

// Rotate rotates the xy plane of f by an angle around the origin.
func Rotate(angle node.Node, f vec.Value) vec.Value {
	var binder node.Binder
	angle = binder.Bind("angle", angle)
	cos := binder.Bind("cos", node.Cos(angle))
	sin := binder.Bind("sin", node.Sin(angle))
	coords := vec.New(
		node.Sub(node.Mul(node.X, cos), node.Mul(node.Y, sin)),
		node.Add(node.Mul(node.X, sin), node.Mul(node.Y, cos)),
	)
	return withBindings(binder.Bindings(), Value(coords, f))
}

func withBindings(bindings []node.Binding, x vec.Value) vec.Value {
	if x.IsScalar() {
		return vec.S(node.WithBindings(bindings, x.At(0)))
	}
	return vec.WithBindings(bindings, vec.ToVector(x))
}

// Select returns a when cond is not zero, b otherwise, component-wise.
// A constant condition selects a or b when the expression is built.
func Select(cond node.Node, a, b vec.Value) vec.Value {
	if c, ok := node.ConstantValue(cond); ok {
		if c != 0 {
			return a
		}
		return b
	}
	if a.IsScalar() && b.IsScalar() {
		return vec.S(node.Select(cond, a.At(0), b.At(0)))
	}
	var binder node.Binder
	cond = binder.Bind("cond", cond)
	return withBindings(binder.Bindings(), vec.Select(vec.S(cond), a, b))
}
