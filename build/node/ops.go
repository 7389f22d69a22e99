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

package node

import (
	"math"
	"slices"

	"github.com/gx-org/texgen/internal/noise"
	"golang.org/x/exp/maps"
)

// OpID identifies a primitive operator.
type OpID string

// Primitive operators.
const (
	OpNeg   OpID = "neg"
	OpAbs   OpID = "abs"
	OpSqrt  OpID = "sqrt"
	OpSin   OpID = "sin"
	OpCos   OpID = "cos"
	OpTan   OpID = "tan"
	OpExp   OpID = "exp"
	OpLog   OpID = "log"
	OpFloor OpID = "floor"
	OpFract OpID = "fract"
	OpHash  OpID = "hash"

	OpAdd   OpID = "add"
	OpSub   OpID = "sub"
	OpMul   OpID = "mul"
	OpDiv   OpID = "div"
	OpPow   OpID = "pow"
	OpMin   OpID = "min"
	OpMax   OpID = "max"
	OpMod   OpID = "mod"
	OpAtan2 OpID = "atan2"
	OpLt    OpID = "lt"
	OpLe    OpID = "le"
	OpGt    OpID = "gt"
	OpGe    OpID = "ge"

	OpNoise2 OpID = "noise2"

	OpSelect OpID = "select"
	OpNoise3 OpID = "noise3"
)

// Op is the definition of a primitive operator.
// The kernel matching the arity of the operator is set.
type Op struct {
	ID    OpID
	Arity int

	Unary   func(x float64) float64
	Binary  func(x, y float64) float64
	Ternary func(x, y, z float64) float64
}

func unary(id OpID, f func(float64) float64) *Op {
	return &Op{ID: id, Arity: 1, Unary: f}
}

func binary(id OpID, f func(x, y float64) float64) *Op {
	return &Op{ID: id, Arity: 2, Binary: f}
}

func ternary(id OpID, f func(x, y, z float64) float64) *Op {
	return &Op{ID: id, Arity: 3, Ternary: f}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// mod returns the floored modulo of x by y. The result has the sign of y.
func mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// fract returns the fractional part of x, that is x-floor(x).
func fract(x float64) float64 {
	return x - math.Floor(x)
}

// selectValue returns a if cond is not zero, b otherwise.
func selectValue(cond, a, b float64) float64 {
	if cond != 0 {
		return a
	}
	return b
}

var ops = map[OpID]*Op{}

func register(op *Op) {
	ops[op.ID] = op
}

func init() {
	register(unary(OpNeg, func(x float64) float64 { return -x }))
	register(unary(OpAbs, math.Abs))
	register(unary(OpSqrt, math.Sqrt))
	register(unary(OpSin, math.Sin))
	register(unary(OpCos, math.Cos))
	register(unary(OpTan, math.Tan))
	register(unary(OpExp, math.Exp))
	register(unary(OpLog, math.Log))
	register(unary(OpFloor, math.Floor))
	register(unary(OpFract, fract))
	register(unary(OpHash, noise.Hash))

	register(binary(OpAdd, func(x, y float64) float64 { return x + y }))
	register(binary(OpSub, func(x, y float64) float64 { return x - y }))
	register(binary(OpMul, func(x, y float64) float64 { return x * y }))
	register(binary(OpDiv, func(x, y float64) float64 { return x / y }))
	register(binary(OpPow, math.Pow))
	register(binary(OpMin, math.Min))
	register(binary(OpMax, math.Max))
	register(binary(OpMod, mod))
	register(binary(OpAtan2, math.Atan2))
	register(binary(OpLt, func(x, y float64) float64 { return boolToFloat(x < y) }))
	register(binary(OpLe, func(x, y float64) float64 { return boolToFloat(x <= y) }))
	register(binary(OpGt, func(x, y float64) float64 { return boolToFloat(x > y) }))
	register(binary(OpGe, func(x, y float64) float64 { return boolToFloat(x >= y) }))
	register(binary(OpNoise2, noise.Noise2))

	register(ternary(OpSelect, selectValue))
	register(ternary(OpNoise3, noise.Noise3))
}

// Lookup returns the definition of an operator.
func Lookup(id OpID) (*Op, bool) {
	op, ok := ops[id]
	return op, ok
}

// OpIDs returns the identifiers of all the operators, sorted.
func OpIDs() []OpID {
	ids := maps.Keys(ops)
	slices.Sort(ids)
	return ids
}

// Eval applies the operator to a list of values.
// The number of values must match the arity of the operator.
func (op *Op) Eval(args []float64) float64 {
	switch op.Arity {
	case 1:
		return op.Unary(args[0])
	case 2:
		return op.Binary(args[0], args[1])
	default:
		return op.Ternary(args[0], args[1], args[2])
	}
}

// Apply returns a node applying an operator to operands.
//
// Operators with only constant operands are folded into a constant.
// Additions of zero, multiplications and divisions by one are removed,
// and a select with a constant condition is replaced by the selected
// operand. Unknown operators are kept as is: they are reported by the
// compiler.
func Apply(id OpID, operands ...Node) Node {
	op, known := Lookup(id)
	if !known || op.Arity != len(operands) {
		return &Operator{Op: id, Operands: operands}
	}
	if folded, ok := fold(op, operands); ok {
		return folded
	}
	if simplified := simplify(id, operands); simplified != nil {
		return simplified
	}
	return &Operator{Op: id, Operands: operands}
}

func fold(op *Op, operands []Node) (Node, bool) {
	vals := make([]float64, len(operands))
	for i, operand := range operands {
		v, ok := ConstantValue(operand)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	return Const(op.Eval(vals)), true
}

func isConst(n Node, v float64) bool {
	c, ok := ConstantValue(n)
	return ok && c == v
}

func simplify(id OpID, operands []Node) Node {
	switch id {
	case OpAdd:
		x, y := operands[0], operands[1]
		if isConst(x, 0) {
			return y
		}
		if isConst(y, 0) {
			return x
		}
	case OpSub:
		if isConst(operands[1], 0) {
			return operands[0]
		}
	case OpMul:
		x, y := operands[0], operands[1]
		if isConst(x, 1) {
			return y
		}
		if isConst(y, 1) {
			return x
		}
	case OpDiv:
		if isConst(operands[1], 1) {
			return operands[0]
		}
	case OpSelect:
		cond, ok := ConstantValue(operands[0])
		if !ok {
			return nil
		}
		if cond != 0 {
			return operands[1]
		}
		return operands[2]
	}
	return nil
}

// Add returns x+y.
func Add(x, y Node) Node { return Apply(OpAdd, x, y) }

// Sub returns x-y.
func Sub(x, y Node) Node { return Apply(OpSub, x, y) }

// Mul returns x*y.
func Mul(x, y Node) Node { return Apply(OpMul, x, y) }

// Div returns x/y.
func Div(x, y Node) Node { return Apply(OpDiv, x, y) }

// Neg returns -x.
func Neg(x Node) Node { return Apply(OpNeg, x) }

// Sqrt returns the square root of x.
func Sqrt(x Node) Node { return Apply(OpSqrt, x) }

// Sin returns the sine of x.
func Sin(x Node) Node { return Apply(OpSin, x) }

// Cos returns the cosine of x.
func Cos(x Node) Node { return Apply(OpCos, x) }

// Min returns the minimum of x and y.
func Min(x, y Node) Node { return Apply(OpMin, x, y) }

// Max returns the maximum of x and y.
func Max(x, y Node) Node { return Apply(OpMax, x, y) }

// Le returns 1 if x<=y, 0 otherwise.
func Le(x, y Node) Node { return Apply(OpLe, x, y) }

// Ge returns 1 if x>=y, 0 otherwise.
func Ge(x, y Node) Node { return Apply(OpGe, x, y) }

// Select returns a node evaluating to a if cond is not zero, b otherwise.
func Select(cond, a, b Node) Node { return Apply(OpSelect, cond, a, b) }

// Noise3 returns 3D simplex noise sampled at (x, y, z).
func Noise3(x, y, z Node) Node { return Apply(OpNoise3, x, y, z) }

// Noise2 returns 2D simplex noise sampled at (x, y).
func Noise2(x, y Node) Node { return Apply(OpNoise2, x, y) }
