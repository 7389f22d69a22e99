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
	"strconv"
	"strings"

	"github.com/gx-org/texgen/base/uname"
)

// Printer formats nodes as S-expressions.
// Symbols are named consistently across all the nodes printed by a printer.
type Printer struct {
	names *uname.Unique
}

// NewPrinter returns a printer with a new name space.
func NewPrinter() *Printer {
	names := uname.New()
	for _, axis := range axisNames {
		names.Register(axis)
	}
	return &Printer{names: names}
}

// Sprint returns the S-expression of a node using a new printer.
func Sprint(n Node) string {
	return NewPrinter().Sprint(n)
}

// SymbolName returns the name of a symbol in the printer name space.
func (p *Printer) SymbolName(sym *Symbol) string {
	return p.names.NameFor(sym, sym.hint)
}

// Sprint returns the S-expression of a node.
func (p *Printer) Sprint(n Node) string {
	var b strings.Builder
	p.write(&b, n)
	return b.String()
}

func (p *Printer) writeAll(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		b.WriteByte(' ')
		p.write(b, n)
	}
}

func (p *Printer) write(b *strings.Builder, n Node) {
	switch nT := n.(type) {
	case nil:
		b.WriteString("<nil>")
	case Constant:
		b.WriteString(strconv.FormatFloat(nT.Value, 'g', -1, 64))
	case Coordinate:
		b.WriteString(nT.Axis.String())
	case *Operator:
		b.WriteString("(")
		b.WriteString(string(nT.Op))
		p.writeAll(b, nT.Operands)
		b.WriteString(")")
	case *Ref:
		b.WriteString(p.SymbolName(nT.Sym))
	case *Let:
		b.WriteString("(let (")
		for i, binding := range nT.Bindings {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString("(")
			b.WriteString(p.SymbolName(binding.Sym))
			b.WriteByte(' ')
			p.write(b, binding.Value)
			b.WriteString(")")
		}
		b.WriteString(") ")
		p.write(b, nT.Body)
		b.WriteString(")")
	case *Custom:
		b.WriteString("(custom:")
		b.WriteString(nT.Name)
		p.writeAll(b, nT.Operands)
		b.WriteString(")")
	}
}
