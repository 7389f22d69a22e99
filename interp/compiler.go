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

package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/texgen/build/node"
)

type (
	// evalFn evaluates an expression for the sample stored in a frame.
	evalFn func(*frame) float64

	// expr is a compiled sub-expression.
	expr struct {
		id  int
		key string
		fn  evalFn

		isConst bool
		value   float64
	}

	// slot stores the value of a symbol in a frame.
	slot struct {
		index int
		sym   *node.Symbol
		value evalFn
	}

	compiler struct {
		errs    error
		printer *node.Printer

		// Scope checking.
		free map[node.Node][]*node.Symbol

		// Lowering.
		lowered   map[node.Node]node.Node
		symValues map[*node.Symbol]node.Node

		// Emission.
		exprs   map[node.Node]*expr
		keys    map[string]*expr
		slots   map[*node.Symbol]*slot
		selects int
		ops     map[node.OpID]int
	}
)

func newCompiler() *compiler {
	return &compiler{
		printer:   node.NewPrinter(),
		free:      make(map[node.Node][]*node.Symbol),
		lowered:   make(map[node.Node]node.Node),
		symValues: make(map[*node.Symbol]node.Node),
		exprs:     make(map[node.Node]*expr),
		keys:      make(map[string]*expr),
		slots:     make(map[*node.Symbol]*slot),
		ops:       make(map[node.OpID]int),
	}
}

// ----------------------------------------------------------------------------
// Scope checking.

// checkScope reports all the symbols referenced outside of their Let.
func (c *compiler) checkScope(root node.Node) {
	for _, sym := range c.freeSymbols(root) {
		c.appendErr(errors.Wrapf(ErrUnboundSymbol, "symbol %s", c.printer.SymbolName(sym)))
	}
}

func appendMissing(dst, src []*node.Symbol, exclude map[*node.Symbol]bool) []*node.Symbol {
	for _, sym := range src {
		if exclude[sym] {
			continue
		}
		exclude[sym] = true
		dst = append(dst, sym)
	}
	return dst
}

// freeSymbols returns the symbols referenced by a node and not bound in that node.
func (c *compiler) freeSymbols(n node.Node) []*node.Symbol {
	switch n.(type) {
	case nil, node.Constant, node.Coordinate:
		return nil
	}
	if free, ok := c.free[n]; ok {
		return free
	}
	var free []*node.Symbol
	switch nT := n.(type) {
	case *node.Ref:
		free = []*node.Symbol{nT.Sym}
	case *node.Operator:
		free = c.freeOf(nT.Operands)
	case *node.Custom:
		free = c.freeOf(nT.Operands)
	case *node.Let:
		bound := make(map[*node.Symbol]bool)
		for _, binding := range nT.Bindings {
			free = appendMissing(free, c.freeSymbols(binding.Value), bound)
			bound[binding.Sym] = true
		}
		free = appendMissing(free, c.freeSymbols(nT.Body), bound)
	}
	c.free[n] = free
	return free
}

func (c *compiler) freeOf(nodes []node.Node) []*node.Symbol {
	var free []*node.Symbol
	seen := make(map[*node.Symbol]bool)
	for _, n := range nodes {
		free = appendMissing(free, c.freeSymbols(n), seen)
	}
	return free
}

// ----------------------------------------------------------------------------
// Lowering.

// lower expands custom nodes, propagates constants and trivial bindings,
// and folds operators with constant operands.
func (c *compiler) lower(n node.Node) node.Node {
	switch n.(type) {
	case nil:
		c.appendErr(errors.New("nil node in expression"))
		return node.Const(math.NaN())
	case node.Constant, node.Coordinate:
		return n
	}
	if r, ok := c.lowered[n]; ok {
		return r
	}
	var r node.Node
	switch nT := n.(type) {
	case *node.Operator:
		r = c.lowerOperator(nT)
	case *node.Custom:
		r = c.lowerCustom(nT)
	case *node.Ref:
		r = c.lowerRef(nT)
	case *node.Let:
		r = c.lowerLet(nT)
	default:
		c.appendErr(errors.Errorf("node type %T not supported", n))
		r = node.Const(math.NaN())
	}
	c.lowered[n] = r
	return r
}

func (c *compiler) lowerAll(nodes []node.Node) ([]node.Node, bool) {
	r := make([]node.Node, len(nodes))
	changed := false
	for i, n := range nodes {
		r[i] = c.lower(n)
		if r[i] != n {
			changed = true
		}
	}
	return r, changed
}

func (c *compiler) lowerOperator(op *node.Operator) node.Node {
	operands, changed := c.lowerAll(op.Operands)
	if !changed {
		return op
	}
	return node.Apply(op.Op, operands...)
}

func (c *compiler) lowerCustom(custom *node.Custom) node.Node {
	if custom.Synth == nil {
		c.appendErr(errors.Errorf("custom node %q has no synthesizer", custom.Name))
		return node.Const(math.NaN())
	}
	operands, _ := c.lowerAll(custom.Operands)
	synth, err := custom.Synth(operands)
	if err != nil {
		c.appendErr(errors.WithMessagef(err, "custom node %q", custom.Name))
		return node.Const(math.NaN())
	}
	if synth == nil {
		c.appendErr(errors.Errorf("custom node %q synthesized a nil node", custom.Name))
		return node.Const(math.NaN())
	}
	return c.lower(synth)
}

func (c *compiler) lowerRef(ref *node.Ref) node.Node {
	value, ok := c.symValues[ref.Sym]
	if ok && node.IsTrivial(value) {
		return value
	}
	return ref
}

func (c *compiler) lowerLet(let *node.Let) node.Node {
	var bindings []node.Binding
	for _, binding := range let.Bindings {
		if binding.Sym == nil {
			c.appendErr(errors.New("binding without a symbol"))
			continue
		}
		if binding.Value != binding.Sym.Value() {
			c.appendErr(errors.Wrapf(ErrRebound, "symbol %s", c.printer.SymbolName(binding.Sym)))
			continue
		}
		value, done := c.symValues[binding.Sym]
		if !done {
			value = c.lower(binding.Value)
			c.symValues[binding.Sym] = value
		}
		if node.IsTrivial(value) {
			continue
		}
		bindings = append(bindings, node.Binding{Sym: binding.Sym, Value: value})
	}
	return node.WithBindings(bindings, c.lower(let.Body))
}

// ----------------------------------------------------------------------------
// Emission.

// intern returns the expression already emitted for a key, or registers a new one.
func (c *compiler) intern(key string, build func() *expr) *expr {
	if e, ok := c.keys[key]; ok {
		return e
	}
	e := build()
	e.id = len(c.keys)
	e.key = key
	c.keys[key] = e
	return e
}

func constExpr(v float64) *expr {
	return &expr{
		fn:      func(*frame) float64 { return v },
		isConst: true,
		value:   v,
	}
}

var invalid = constExpr(math.NaN())

func (c *compiler) compile(n node.Node) *expr {
	if e, ok := c.exprs[n]; ok {
		return e
	}
	var e *expr
	switch nT := n.(type) {
	case node.Constant:
		e = c.compileConstant(nT.Value)
	case node.Coordinate:
		e = c.compileCoordinate(nT)
	case *node.Operator:
		e = c.compileOperator(nT)
	case *node.Ref:
		e = c.compileRef(nT)
	case *node.Let:
		e = c.compileLet(nT)
	default:
		c.appendErr(errors.Errorf("node type %T not supported after lowering", n))
		e = invalid
	}
	switch n.(type) {
	case node.Constant, node.Coordinate:
	default:
		c.exprs[n] = e
	}
	return e
}

func (c *compiler) compileConstant(v float64) *expr {
	key := "c" + strconv.FormatUint(math.Float64bits(v), 16)
	return c.intern(key, func() *expr {
		return constExpr(v)
	})
}

func (c *compiler) compileCoordinate(coord node.Coordinate) *expr {
	if coord.Axis < 0 || int(coord.Axis) >= node.NumAxes {
		c.appendErr(errors.Errorf("invalid axis %d", int(coord.Axis)))
		return invalid
	}
	return c.intern(coord.Axis.String(), func() *expr {
		i := int(coord.Axis)
		return &expr{fn: func(f *frame) float64 { return f.pos[i] }}
	})
}

func operatorKey(id node.OpID, operands []*expr) string {
	ids := make([]string, len(operands))
	for i, operand := range operands {
		ids[i] = strconv.Itoa(operand.id)
	}
	return fmt.Sprintf("%s(%s)", id, strings.Join(ids, ","))
}

func (c *compiler) compileOperator(op *node.Operator) *expr {
	def, ok := node.Lookup(op.Op)
	if !ok {
		c.appendErr(errors.Wrapf(ErrUnknownOperator, "%q (available operators: %v)", op.Op, node.OpIDs()))
		return invalid
	}
	if def.Arity != len(op.Operands) {
		c.appendErr(errors.Wrapf(ErrArity, "operator %s expects %d operands but got %d", op.Op, def.Arity, len(op.Operands)))
		return invalid
	}
	operands := make([]*expr, len(op.Operands))
	allConst := true
	for i, operand := range op.Operands {
		operands[i] = c.compile(operand)
		allConst = allConst && operands[i].isConst
	}
	if allConst {
		vals := make([]float64, len(operands))
		for i, operand := range operands {
			vals[i] = operand.value
		}
		return c.compileConstant(def.Eval(vals))
	}
	if op.Op == node.OpSelect && operands[0].isConst {
		if operands[0].value != 0 {
			return operands[1]
		}
		return operands[2]
	}
	return c.intern(operatorKey(op.Op, operands), func() *expr {
		c.ops[op.Op]++
		if op.Op == node.OpSelect {
			c.selects++
			return &expr{fn: selectFn(operands[0].fn, operands[1].fn, operands[2].fn)}
		}
		return &expr{fn: kernelFn(def, operands)}
	})
}

func selectFn(cond, a, b evalFn) evalFn {
	return func(f *frame) float64 {
		if cond(f) != 0 {
			return a(f)
		}
		return b(f)
	}
}

func kernelFn(def *node.Op, operands []*expr) evalFn {
	switch def.Arity {
	case 1:
		k, x := def.Unary, operands[0].fn
		return func(f *frame) float64 {
			return k(x(f))
		}
	case 2:
		k, x, y := def.Binary, operands[0].fn, operands[1].fn
		return func(f *frame) float64 {
			return k(x(f), y(f))
		}
	default:
		k, x, y, z := def.Ternary, operands[0].fn, operands[1].fn, operands[2].fn
		return func(f *frame) float64 {
			return k(x(f), y(f), z(f))
		}
	}
}

func (c *compiler) compileRef(ref *node.Ref) *expr {
	s, ok := c.slots[ref.Sym]
	if !ok {
		// Scope checking guarantees that the Let binding the symbol has been compiled.
		c.appendErr(errors.Wrapf(ErrUnboundSymbol, "symbol %s", c.printer.SymbolName(ref.Sym)))
		return invalid
	}
	return c.intern("r"+strconv.Itoa(s.index), func() *expr {
		return &expr{fn: s.load}
	})
}

func (c *compiler) compileLet(let *node.Let) *expr {
	for _, binding := range let.Bindings {
		if _, done := c.slots[binding.Sym]; done {
			continue
		}
		value := c.compile(binding.Value)
		c.slots[binding.Sym] = &slot{
			index: len(c.slots),
			sym:   binding.Sym,
			value: value.fn,
		}
	}
	// Symbols are evaluated on first use: a Let emits no code of its own.
	return c.compile(let.Body)
}

// load returns the value of the symbol, computing it if required.
func (s *slot) load(f *frame) float64 {
	if f.stamps[s.index] == f.gen {
		return f.vals[s.index]
	}
	v := s.value(f)
	f.vals[s.index] = v
	f.stamps[s.index] = f.gen
	return v
}

func (c *compiler) stats() Stats {
	ops := make(map[node.OpID]int, len(c.ops))
	for id, n := range c.ops {
		ops[id] = n
	}
	return Stats{
		Distinct: len(c.keys),
		Selects:  c.selects,
		Symbols:  len(c.slots),
		Ops:      ops,
	}
}
