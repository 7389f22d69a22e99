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

// Replacement maps axes to the nodes replacing them.
// A nil entry keeps the coordinate unchanged.
type Replacement [NumAxes]Node

type substituter struct {
	repl    Replacement
	depends map[Node]bool
	done    map[Node]Node
	syms    map[*Symbol]*Symbol
	refs    map[*Symbol]Node
	bound   map[*Symbol]bool
	// renamed lists renamed symbols with dependencies first.
	renamed []*Symbol
}

// Substitute replaces the coordinates of a node by the nodes of a replacement.
//
// Sub-graphs shared in the source are rewritten once and remain shared in
// the result. Sub-graphs not depending on a replaced coordinate are
// returned unchanged. Let bindings whose value changes are given fresh
// symbols so that a symbol is never bound to two different nodes.
// Symbols bound outside of the node but depending on a replaced coordinate
// are renamed as well and bound by a Let around the result.
func Substitute(n Node, repl Replacement) Node {
	s := newSubstituter(repl)
	r := s.subst(n)
	return WithBindings(s.freeBindings(), r)
}

// SubstituteAll replaces the coordinates of several nodes.
// Sub-graphs shared between the nodes are rewritten once.
// Each rewritten node binds the renamed free symbols.
func SubstituteAll(nodes []Node, repl Replacement) []Node {
	s := newSubstituter(repl)
	r := s.substAll(nodes)
	free := s.freeBindings()
	if len(free) == 0 {
		return r
	}
	for i, n := range r {
		if n != nodes[i] {
			r[i] = WithBindings(free, n)
		}
	}
	return r
}

func newSubstituter(repl Replacement) *substituter {
	return &substituter{
		repl:    repl,
		depends: make(map[Node]bool),
		done:    make(map[Node]Node),
		syms:    make(map[*Symbol]*Symbol),
		refs:    make(map[*Symbol]Node),
		bound:   make(map[*Symbol]bool),
	}
}

// dependsOn returns true if a node references a replaced coordinate,
// directly or through a symbol.
func (s *substituter) dependsOn(n Node) bool {
	switch nT := n.(type) {
	case Constant:
		return false
	case Coordinate:
		return s.replaced(nT.Axis)
	}
	if dep, ok := s.depends[n]; ok {
		return dep
	}
	// Mark the node first to terminate on malformed cyclic graphs.
	s.depends[n] = false
	dep := false
	switch nT := n.(type) {
	case *Operator:
		dep = s.anyDepends(nT.Operands)
	case *Custom:
		dep = s.anyDepends(nT.Operands)
	case *Ref:
		dep = nT.Sym.value != nil && s.dependsOn(nT.Sym.value)
	case *Let:
		for _, binding := range nT.Bindings {
			if s.dependsOn(binding.Value) {
				dep = true
			}
		}
		dep = s.dependsOn(nT.Body) || dep
	}
	s.depends[n] = dep
	return dep
}

func (s *substituter) replaced(axis Axis) bool {
	return axis >= 0 && int(axis) < NumAxes && s.repl[axis] != nil
}

func (s *substituter) anyDepends(nodes []Node) bool {
	dep := false
	for _, n := range nodes {
		if s.dependsOn(n) {
			dep = true
		}
	}
	return dep
}

func (s *substituter) substAll(nodes []Node) []Node {
	r := make([]Node, len(nodes))
	for i, n := range nodes {
		r[i] = s.subst(n)
	}
	return r
}

func (s *substituter) subst(n Node) Node {
	if !s.dependsOn(n) {
		return n
	}
	if nT, ok := n.(Coordinate); ok {
		return s.repl[nT.Axis]
	}
	if done, ok := s.done[n]; ok {
		return done
	}
	var r Node
	switch nT := n.(type) {
	case *Operator:
		r = Apply(nT.Op, s.substAll(nT.Operands)...)
	case *Custom:
		r = &Custom{
			Name:     nT.Name,
			Operands: s.substAll(nT.Operands),
			Synth:    nT.Synth,
		}
	case *Ref:
		r = s.substRef(nT)
	case *Let:
		r = s.substLet(nT)
	default:
		r = n
	}
	s.done[n] = r
	return r
}

func (s *substituter) rename(sym *Symbol) *Symbol {
	if renamed, ok := s.syms[sym]; ok {
		return renamed
	}
	renamed, _ := BindOnceNamed(sym.hint, s.subst(sym.value))
	s.syms[sym] = renamed
	s.renamed = append(s.renamed, sym)
	return renamed
}

// freeBindings returns the bindings of the renamed symbols
// that no Let of the source binds.
func (s *substituter) freeBindings() []Binding {
	var bindings []Binding
	for _, sym := range s.renamed {
		if s.bound[sym] {
			continue
		}
		renamed := s.syms[sym]
		bindings = append(bindings, Binding{Sym: renamed, Value: renamed.value})
	}
	return bindings
}

func (s *substituter) substRef(ref *Ref) Node {
	sym := s.rename(ref.Sym)
	if r, ok := s.refs[sym]; ok {
		return r
	}
	r := NewRef(sym)
	s.refs[sym] = r
	return r
}

func (s *substituter) substLet(let *Let) Node {
	bindings := make([]Binding, len(let.Bindings))
	for i, binding := range let.Bindings {
		if !s.dependsOn(binding.Value) {
			bindings[i] = binding
			continue
		}
		s.bound[binding.Sym] = true
		sym := s.rename(binding.Sym)
		bindings[i] = Binding{Sym: sym, Value: sym.value}
	}
	return WithBindings(bindings, s.subst(let.Body))
}
