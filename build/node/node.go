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

// Package node is the expression tree of texture functions.
//
// A node is an immutable pure function of the position (x, y, z, t).
// Nodes are built bottom-up by composition and may be referenced by
// several parents. Sub-expressions used more than once are shared
// explicitly with Let and Ref nodes (see BindOnce and Binder) so that
// the size of a compiled expression stays linear in the depth of the
// composition.
package node

import "fmt"

// ----------------------------------------------------------------------------
// Types of node in the tree.
type (
	// Node in the tree.
	Node interface {
		// node marks a structure as a node structure.
		// It prevents external implementations of the interface.
		node()

		fmt.Stringer
	}

	// Constant is a literal.
	Constant struct {
		Value float64
	}

	// Coordinate references one of the four implicit position components.
	Coordinate struct {
		Axis Axis
	}

	// Operator is a primitive scalar computation.
	// The number of operands is fixed by the operator.
	Operator struct {
		Op       OpID
		Operands []Node
	}

	// Let binds nodes to symbols available to the body.
	// Bindings are sequential: a binding can reference the symbols of the
	// bindings preceding it.
	Let struct {
		Bindings []Binding
		Body     Node
	}

	// Ref references the value bound to a symbol by an enclosing Let.
	Ref struct {
		Sym *Symbol
	}

	// Custom is a node whose expression is only built when it is lowered by
	// the compiler, once the structure of its operands is known.
	// Synth receives the lowered operands and returns the node replacing the
	// custom node. Synth must not reference coordinates or symbols other than
	// through its operands.
	Custom struct {
		Name     string
		Operands []Node
		Synth    func(operands []Node) (Node, error)
	}
)

func (Constant) node()   {}
func (Coordinate) node() {}
func (*Operator) node()  {}
func (*Let) node()       {}
func (*Ref) node()       {}
func (*Custom) node()    {}

// Axis of the position.
type Axis int

// Axes of the position.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisT

	// NumAxes is the number of components of a position.
	NumAxes = 4
)

var axisNames = [NumAxes]string{"x", "y", "z", "t"}

// String returns the name of the axis.
func (a Axis) String() string {
	if a < 0 || int(a) >= NumAxes {
		return fmt.Sprintf("axis(%d)", int(a))
	}
	return axisNames[a]
}

// Position coordinates.
var (
	X Node = Coordinate{Axis: AxisX}
	Y Node = Coordinate{Axis: AxisY}
	Z Node = Coordinate{Axis: AxisZ}
	T Node = Coordinate{Axis: AxisT}
)

// Axes returns the coordinate nodes (x, y, z, t).
func Axes() [NumAxes]Node {
	return [NumAxes]Node{X, Y, Z, T}
}

// Const returns a constant node.
func Const(v float64) Node {
	return Constant{Value: v}
}

// ConstantValue returns the value of a node if the node is a constant.
func ConstantValue(n Node) (float64, bool) {
	c, ok := n.(Constant)
	if !ok {
		return 0, false
	}
	return c.Value, true
}

// String representation of the node.
func (n Constant) String() string { return Sprint(n) }

// String representation of the node.
func (n Coordinate) String() string { return Sprint(n) }

// String representation of the node.
func (n *Operator) String() string { return Sprint(n) }

// String representation of the node.
func (n *Let) String() string { return Sprint(n) }

// String representation of the node.
func (n *Ref) String() string { return Sprint(n) }

// String representation of the node.
func (n *Custom) String() string { return Sprint(n) }
