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

type (
	// Symbol names a value bound by a Let.
	// The identity of a symbol is its pointer: two symbols never collide,
	// even when they come from independently built graphs.
	// A symbol is bound to exactly one node.
	Symbol struct {
		hint  string
		value Node
	}

	// Binding of a node to a symbol.
	Binding struct {
		Sym   *Symbol
		Value Node
	}
)

// Hint returns the name suggested for the symbol.
// Unique names are allocated from hints when a graph is printed or compiled.
func (s *Symbol) Hint() string {
	return s.hint
}

// Value returns the node bound to the symbol.
func (s *Symbol) Value() Node {
	return s.value
}

// defaultHint is the hint of symbols created without a name.
const defaultHint = "v"

// BindOnce allocates a fresh symbol for a node.
// The node is evaluated once per sample, however many times the symbol
// is referenced.
func BindOnce(n Node) (*Symbol, Binding) {
	return BindOnceNamed(defaultHint, n)
}

// BindOnceNamed allocates a fresh symbol with a naming hint for a node.
func BindOnceNamed(hint string, n Node) (*Symbol, Binding) {
	if hint == "" {
		hint = defaultHint
	}
	sym := &Symbol{hint: hint, value: n}
	return sym, Binding{Sym: sym, Value: n}
}

// NewRef returns a node referencing a symbol.
func NewRef(sym *Symbol) Node {
	return &Ref{Sym: sym}
}

// WithBindings wraps a body in a Let node.
// The body is returned as is if there is no binding
// or if it is a constant.
func WithBindings(bindings []Binding, body Node) Node {
	if len(bindings) == 0 {
		return body
	}
	if _, ok := body.(Constant); ok {
		return body
	}
	return &Let{Bindings: bindings, Body: body}
}

// IsTrivial returns true if referencing a node is as cheap as referencing
// a symbol bound to that node.
func IsTrivial(n Node) bool {
	switch n.(type) {
	case Constant, Coordinate, *Ref:
		return true
	}
	return false
}

// Binder collects bindings while an expression is being built.
type Binder struct {
	bindings []Binding
}

// Bind a node to a new symbol and return a reference to that symbol.
// Trivial nodes are returned directly since sharing them brings nothing.
func (b *Binder) Bind(hint string, n Node) Node {
	if IsTrivial(n) {
		return n
	}
	sym, binding := BindOnceNamed(hint, n)
	b.bindings = append(b.bindings, binding)
	return NewRef(sym)
}

// Bindings returns the bindings collected so far.
func (b *Binder) Bindings() []Binding {
	return b.bindings
}

// Wrap a body in a Let with all the bindings collected so far.
func (b *Binder) Wrap(body Node) Node {
	return WithBindings(b.bindings, body)
}
