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

package vec

import (
	"github.com/pkg/errors"
	"github.com/gx-org/texgen/build/node"
)

// Sum returns the sum of the components of a vector.
func Sum(v Vector) node.Node {
	if len(v) == 0 {
		return node.Const(0)
	}
	sum := v[0]
	for _, n := range v[1:] {
		sum = node.Add(sum, n)
	}
	return sum
}

// Dot returns the dot product of two vectors of equal length.
func Dot(a, b Vector) (node.Node, error) {
	if _, err := CheckDims(a, b); err != nil {
		return nil, errors.WithMessage(err, "dot product")
	}
	prods := make(Vector, len(a))
	for i := range a {
		prods[i] = node.Mul(a[i], b[i])
	}
	return Sum(prods), nil
}

// sumSquares binds every component of a vector and returns the sum of their squares.
func sumSquares(b *node.Binder, v Vector) (Vector, node.Node) {
	refs := make(Vector, len(v))
	squares := make(Vector, len(v))
	for i, n := range v {
		refs[i] = b.Bind("c", n)
		squares[i] = node.Mul(refs[i], refs[i])
	}
	return refs, Sum(squares)
}

// Length returns the Euclidean length of a vector.
func Length(v Vector) node.Node {
	var b node.Binder
	_, ss := sumSquares(&b, v)
	return b.Wrap(node.Sqrt(ss))
}

// Normalize returns a vector of the same direction and a length of 1.
// Every component and the length of the vector are computed once.
// The null vector normalizes to NaN components.
func Normalize(v Vector) Vector {
	var b node.Binder
	refs, ss := sumSquares(&b, v)
	ss = b.Bind("ss", ss)
	length := b.Bind("len", node.Sqrt(ss))
	r := Map(refs, func(ref node.Node) node.Node {
		return node.Div(ref, length)
	})
	return WithBindings(b.Bindings(), r)
}

// crossTerm returns a[j]*b[k] - a[k]*b[j] given the lowered operands
// (a[j], b[k], a[k], b[j]). Products with a zero constant are kept so that
// infinite and NaN components propagate.
func crossTerm(operands []node.Node) (node.Node, error) {
	left := node.Mul(operands[0], operands[1])
	right := node.Mul(operands[2], operands[3])
	return node.Sub(left, right), nil
}

// Cross returns the cross product of two vectors of length 3.
// Every component of the operands is computed once.
func Cross(a, b Vector) (Vector, error) {
	if err := checkDimsEqual(3, a, b); err != nil {
		return nil, errors.WithMessage(err, "cross product")
	}
	var binder node.Binder
	ar := make(Vector, 3)
	br := make(Vector, 3)
	for i := range 3 {
		ar[i] = binder.Bind("a", a[i])
		br[i] = binder.Bind("b", b[i])
	}
	r := make(Vector, 3)
	for i := range 3 {
		j, k := (i+1)%3, (i+2)%3
		r[i] = &node.Custom{
			Name:     "cross",
			Operands: []node.Node{ar[j], br[k], ar[k], br[j]},
			Synth:    crossTerm,
		}
	}
	return WithBindings(binder.Bindings(), r), nil
}
