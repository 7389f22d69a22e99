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

package ramp

import (
	"cmp"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/gx-org/texgen/build/node"
	"github.com/gx-org/texgen/build/vec"
)

// ErrEmptyColourMap is returned when a colour map is built without breakpoints.
var ErrEmptyColourMap = errors.New("colour map without breakpoints")

// Breakpoint associates a colour to a position.
type Breakpoint struct {
	Position float64
	Colour   vec.Vector
}

// Gray returns a gray colour.
func Gray(v float64) vec.Vector {
	return vec.Consts(v, v, v)
}

// RGB returns a colour given its red, green and blue components.
func RGB(r, g, b float64) vec.Vector {
	return vec.Consts(r, g, b)
}

// Map interpolates between colours given a scalar.
//
// Colours are interpolated linearly between two consecutive breakpoints.
// Inputs below the first breakpoint map to the first colour and inputs
// above the last breakpoint map to the last colour.
type Map struct {
	breakpoints []Breakpoint
	dims        int
}

// ColourMap returns a colour map given a set of breakpoints.
// Breakpoints are sorted by position. Breakpoints at the same position keep
// their order.
func ColourMap(breakpoints ...Breakpoint) (*Map, error) {
	if len(breakpoints) == 0 {
		return nil, errors.WithStack(ErrEmptyColourMap)
	}
	bps := slices.Clone(breakpoints)
	slices.SortStableFunc(bps, func(a, b Breakpoint) int {
		return cmp.Compare(a.Position, b.Position)
	})
	dims := 1
	for i, bp := range breakpoints {
		if len(bp.Colour) > vec.MaxLen {
			return nil, errors.Wrapf(vec.ErrDimensionMismatch, "breakpoint %d: colour of %d components but at most %d are supported", i, len(bp.Colour), vec.MaxLen)
		}
		dims = max(dims, len(bp.Colour))
	}
	return &Map{breakpoints: bps, dims: dims}, nil
}

// Dims returns the number of components of the colours.
func (m *Map) Dims() int {
	return m.dims
}

// colourTree builds the expressions of the components of a colour map.
type colourTree struct {
	bps []Breakpoint

	mu     sync.Mutex
	params map[segmentKey]node.Binding
}

type segmentKey struct {
	v node.Node
	i int
}

// Apply returns the colour of the first component of x.
func (m *Map) Apply(x vec.Value) vec.Vector {
	if len(m.breakpoints) == 1 {
		return vec.Pad(m.breakpoints[0].Colour, m.dims)
	}
	var binder node.Binder
	v := binder.Bind("v", vec.Component(0, x))
	tree := &colourTree{
		bps:    m.breakpoints,
		params: make(map[segmentKey]node.Binding),
	}
	r := make(vec.Vector, m.dims)
	for c := range r {
		operands := make([]node.Node, 1+len(m.breakpoints))
		operands[0] = v
		for i, bp := range m.breakpoints {
			operands[1+i] = binder.Bind("c", vec.Component(c, bp.Colour))
		}
		r[c] = &node.Custom{
			Name:     "colourmap",
			Operands: operands,
			Synth:    tree.synth,
		}
	}
	return vec.WithBindings(binder.Bindings(), r)
}

// synth returns the interpolation between colours given the lowered
// operands (v, colour_0, ..., colour_n-1).
func (t *colourTree) synth(operands []node.Node) (node.Node, error) {
	if len(operands) != 1+len(t.bps) {
		return nil, errors.Errorf("got %d operands but want %d", len(operands), 1+len(t.bps))
	}
	var bindings []node.Binding
	body := t.build(operands[0], operands[1:], 0, len(t.bps), &bindings)
	return node.WithBindings(bindings, body), nil
}

// build returns the interpolation over the breakpoints [lo, hi).
func (t *colourTree) build(v node.Node, colours []node.Node, lo, hi int, bindings *[]node.Binding) node.Node {
	n := hi - lo
	if n == 1 {
		return colours[lo]
	}
	if n == 2 {
		return t.segment(v, colours, lo, bindings)
	}
	mid := lo + n/2
	// The lower half includes the middle breakpoint which also starts the upper half.
	cond := node.Le(v, node.Const(t.bps[mid].Position))
	if cv, ok := node.ConstantValue(cond); ok {
		if cv != 0 {
			return t.build(v, colours, lo, mid+1, bindings)
		}
		return t.build(v, colours, mid, hi, bindings)
	}
	return node.Select(
		cond,
		t.build(v, colours, lo, mid+1, bindings),
		t.build(v, colours, mid, hi, bindings),
	)
}

// segment interpolates between breakpoints i and i+1.
func (t *colourTree) segment(v node.Node, colours []node.Node, i int, bindings *[]node.Binding) node.Node {
	lo, hi := t.bps[i].Position, t.bps[i+1].Position
	a, b := colours[i], colours[i+1]
	if hi <= lo {
		return a
	}
	param := node.Div(node.Sub(v, node.Const(lo)), node.Const(hi-lo))
	if node.IsTrivial(param) {
		return mix(a, b, param)
	}
	return mix(a, b, node.NewRef(t.param(v, i, param, bindings)))
}

// param returns the symbol of the parameter of a segment.
// The symbol is shared by all the components of the map.
func (t *colourTree) param(v node.Node, i int, param node.Node, bindings *[]node.Binding) *node.Symbol {
	key := segmentKey{v: v, i: i}
	t.mu.Lock()
	defer t.mu.Unlock()
	binding, ok := t.params[key]
	if !ok {
		_, binding = node.BindOnceNamed("t", param)
		t.params[key] = binding
	}
	*bindings = append(*bindings, binding)
	return binding.Sym
}
