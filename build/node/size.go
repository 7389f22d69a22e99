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

import "math"

// Size returns the number of distinct nodes of a graph.
// A node referenced by several parents is counted once.
func Size(n Node) int {
	seen := make(map[Node]bool)
	var visit func(Node)
	visit = func(n Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		for _, child := range children(n) {
			visit(child)
		}
	}
	visit(n)
	return len(seen)
}

// InlinedSize returns the number of nodes of the tree obtained by
// expanding every shared node and replacing every symbol reference by the
// node bound to the symbol. This is the size of the expression if sharing
// was not preserved. The result saturates at math.MaxUint64.
func InlinedSize(n Node) uint64 {
	memo := make(map[Node]uint64)
	var size func(Node) uint64
	size = func(n Node) uint64 {
		switch nT := n.(type) {
		case nil:
			return 0
		case Constant, Coordinate:
			return 1
		case *Ref:
			if nT.Sym.value == nil {
				return 1
			}
			return size(nT.Sym.value)
		}
		if s, ok := memo[n]; ok {
			return s
		}
		var total uint64
		switch nT := n.(type) {
		case *Let:
			total = size(nT.Body)
		default:
			total = 1
			for _, child := range children(n) {
				total = addSaturate(total, size(child))
			}
		}
		memo[n] = total
		return total
	}
	return size(n)
}

func addSaturate(x, y uint64) uint64 {
	if x > math.MaxUint64-y {
		return math.MaxUint64
	}
	return x + y
}

// children returns the direct children of a node.
func children(n Node) []Node {
	switch nT := n.(type) {
	case *Operator:
		return nT.Operands
	case *Custom:
		return nT.Operands
	case *Let:
		r := make([]Node, 0, len(nT.Bindings)+1)
		for _, binding := range nT.Bindings {
			r = append(r, binding.Value)
		}
		return append(r, nT.Body)
	}
	return nil
}
