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

// Package vec lifts scalar nodes to vectors of up to four components.
//
// Operators lifted by this package broadcast their operands: scalars are
// repeated over all components and missing vector components read as
// zero. Operators requiring operands of equal dimensions (Dot, Cross)
// check them with CheckDims instead.
package vec

import (
	"fmt"
	"strings"

	"github.com/gx-org/texgen/build/node"
)

// MaxLen is the maximum number of components of a vector.
const MaxLen = node.NumAxes

type (
	// Value is either a scalar or a vector.
	Value interface {
		// Len returns the number of components of the value.
		// Scalars have a length of 1.
		Len() int
		// At returns the component i of the value. Scalars return the
		// same node for all i. Vectors return a zero constant for a
		// component out of range.
		At(i int) node.Node
		// IsScalar returns true if the value is a scalar.
		IsScalar() bool

		value()
	}

	// Scalar is a single node.
	Scalar struct {
		node.Node
	}

	// Vector is an ordered sequence of nodes, interpreted as (x, y, z, t)
	// or (r, g, b, a).
	Vector []node.Node
)

var (
	_ Value = Scalar{}
	_ Value = Vector{}
)

func (Scalar) value() {}
func (Vector) value() {}

// S wraps a node into a scalar value.
func S(n node.Node) Scalar {
	return Scalar{Node: n}
}

// C returns a scalar constant value.
func C(v float64) Scalar {
	return S(node.Const(v))
}

// Len returns 1.
func (s Scalar) Len() int { return 1 }

// At returns the scalar node whatever the index.
func (s Scalar) At(int) node.Node { return s.Node }

// IsScalar returns true.
func (s Scalar) IsScalar() bool { return true }

// New returns a vector from nodes.
func New(nodes ...node.Node) Vector {
	return Vector(nodes)
}

// Consts returns a vector of constants.
func Consts(vals ...float64) Vector {
	v := make(Vector, len(vals))
	for i, val := range vals {
		v[i] = node.Const(val)
	}
	return v
}

// Position returns the vector (x, y, z, t).
func Position() Vector {
	axes := node.Axes()
	return Vector(axes[:])
}

// Len returns the number of components of the vector.
func (v Vector) Len() int { return len(v) }

// At returns the component i of the vector or a zero constant if i is out of range.
func (v Vector) At(i int) node.Node {
	if i < 0 || i >= len(v) {
		return node.Const(0)
	}
	return v[i]
}

// IsScalar returns false.
func (v Vector) IsScalar() bool { return false }

// String returns the components of the vector.
func (v Vector) String() string {
	p := node.NewPrinter()
	ss := make([]string, len(v))
	for i, n := range v {
		ss[i] = p.Sprint(n)
	}
	return fmt.Sprintf("[%s]", strings.Join(ss, " "))
}

// Vectorize lifts a value into a vector of MaxLen components.
// Scalars are broadcast to all components. Vectors are padded with zeros.
func Vectorize(x Value) Vector {
	r := make(Vector, MaxLen)
	for i := range r {
		r[i] = x.At(i)
	}
	return r
}

// Component returns the component i of a vectorized value.
// It returns a zero constant if i is out of range.
func Component(i int, x Value) node.Node {
	if i < 0 || i >= MaxLen {
		return node.Const(0)
	}
	return x.At(i)
}

// Pad returns a vector of n components, padding missing components with zeros
// and truncating extra components.
func Pad(x Value, n int) Vector {
	r := make(Vector, n)
	for i := range r {
		r[i] = Component(i, x)
	}
	return r
}

// Map applies a function to every component of a vector.
func Map(v Vector, f func(node.Node) node.Node) Vector {
	r := make(Vector, len(v))
	for i, n := range v {
		r[i] = f(n)
	}
	return r
}

// WithBindings wraps every component of a vector into a Let with the
// same bindings. A binding is evaluated at most once per sample, even when
// it is referenced by several components.
func WithBindings(bindings []node.Binding, v Vector) Vector {
	return Map(v, func(n node.Node) node.Node {
		return node.WithBindings(bindings, n)
	})
}

// Substitute replaces the coordinates of all the components of a vector.
// Components sharing sub-graphs keep sharing them.
func Substitute(v Vector, repl node.Replacement) Vector {
	return Vector(node.SubstituteAll(v, repl))
}
