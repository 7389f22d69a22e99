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

import "github.com/gx-org/texgen/build/node"

type (
	// UnaryFunc is a lifted unary operator.
	UnaryFunc func(x Value) Value

	// BinaryFunc is a lifted binary operator.
	BinaryFunc func(x, y Value) Value

	// TernaryFunc is a lifted ternary operator.
	TernaryFunc func(x, y, z Value) Value
)

func allScalars(vals ...Value) bool {
	for _, val := range vals {
		if !val.IsScalar() {
			return false
		}
	}
	return true
}

// resultLen returns the number of components of the result of a
// component-wise operator.
func resultLen(vals ...Value) int {
	n := 0
	for _, val := range vals {
		n = max(n, val.Len())
	}
	return min(n, MaxLen)
}

func lift(op node.OpID, vals ...Value) Value {
	operands := make([]node.Node, len(vals))
	if allScalars(vals...) {
		for i, val := range vals {
			operands[i] = val.At(0)
		}
		return S(node.Apply(op, operands...))
	}
	r := make(Vector, resultLen(vals...))
	for i := range r {
		ops := make([]node.Node, len(vals))
		for j, val := range vals {
			ops[j] = Component(i, val)
		}
		r[i] = node.Apply(op, ops...)
	}
	return r
}

// LiftUnary returns an operator applying op to every component of its operand.
// A scalar operand returns a scalar.
func LiftUnary(op node.OpID) UnaryFunc {
	return func(x Value) Value {
		return lift(op, x)
	}
}

// LiftBinary returns an operator applying op component-wise.
// The result has as many components as the longest operand. Missing
// components of the shortest operand are zeros and scalars are broadcast.
// If both operands are scalars, the result is a scalar.
func LiftBinary(op node.OpID) BinaryFunc {
	return func(x, y Value) Value {
		return lift(op, x, y)
	}
}

// LiftTernary returns an operator applying op component-wise,
// broadcasting its operands like LiftBinary.
func LiftTernary(op node.OpID) TernaryFunc {
	return func(x, y, z Value) Value {
		return lift(op, x, y, z)
	}
}

// Component-wise operators.
var (
	Add = LiftBinary(node.OpAdd)
	Sub = LiftBinary(node.OpSub)
	Mul = LiftBinary(node.OpMul)
	Div = LiftBinary(node.OpDiv)
	Min = LiftBinary(node.OpMin)
	Max = LiftBinary(node.OpMax)
	Pow = LiftBinary(node.OpPow)
	Mod = LiftBinary(node.OpMod)

	Select = LiftTernary(node.OpSelect)

	Neg   = LiftUnary(node.OpNeg)
	Abs   = LiftUnary(node.OpAbs)
	Sqrt  = LiftUnary(node.OpSqrt)
	Sin   = LiftUnary(node.OpSin)
	Cos   = LiftUnary(node.OpCos)
	Exp   = LiftUnary(node.OpExp)
	Floor = LiftUnary(node.OpFloor)
	Fract = LiftUnary(node.OpFract)
)

// ToVector returns a value as a vector.
// A scalar becomes a vector with a single component.
func ToVector(x Value) Vector {
	if v, ok := x.(Vector); ok {
		return v
	}
	return Vector{x.At(0)}
}
