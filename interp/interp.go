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

// Package interp compiles texture expressions into evaluators.
//
// The compiler walks a node graph once. It expands custom nodes, folds
// constants, emits every distinct sub-expression once and assigns a frame
// slot to every symbol. The resulting evaluator is a tree of Go closures
// called once per sample. Evaluators are safe for concurrent use.
package interp

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"github.com/gx-org/texgen/build/node"
	"github.com/gx-org/texgen/build/vec"
)

// Errors returned by the compiler.
var (
	// ErrUnknownOperator is returned when an operator is not defined.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrArity is returned when an operator is applied to a wrong number of operands.
	ErrArity = errors.New("wrong number of operands")
	// ErrUnboundSymbol is returned when a symbol is referenced outside of the Let binding it.
	ErrUnboundSymbol = errors.New("unbound symbol")
	// ErrRebound is returned when a symbol is bound to a node different from the node it has been created for.
	ErrRebound = errors.New("symbol bound to different nodes")
)

// Compile a scalar node into an evaluator.
func Compile(n node.Node) (*Evaluator, error) {
	return compile([]node.Node{n}, 0)
}

// CompileVector compiles a vector into an evaluator.
func CompileVector(v vec.Vector) (*Evaluator, error) {
	if len(v) < 1 || len(v) > vec.MaxLen {
		return nil, errors.Wrapf(vec.ErrDimensionMismatch, "cannot compile a vector of %d components: want 1 to %d components", len(v), vec.MaxLen)
	}
	return compile(v, len(v))
}

// CompileValue compiles a scalar or a vector value.
func CompileValue(x vec.Value) (*Evaluator, error) {
	if x.IsScalar() {
		return Compile(x.At(0))
	}
	return CompileVector(vec.ToVector(x))
}

func compile(roots []node.Node, dims int) (*Evaluator, error) {
	c := newCompiler()
	for _, root := range roots {
		c.checkScope(root)
	}
	if c.errs != nil {
		return nil, errors.Wrap(c.errs, "cannot compile expression")
	}
	lowered := make([]node.Node, len(roots))
	for i, root := range roots {
		lowered[i] = c.lower(root)
	}
	outputs := make([]evalFn, len(roots))
	for i, root := range lowered {
		outputs[i] = c.compile(root).fn
	}
	if c.errs != nil {
		return nil, errors.Wrap(c.errs, "cannot compile expression")
	}
	return newEvaluator(outputs, dims, len(c.slots), c.stats()), nil
}

func (c *compiler) appendErr(err error) {
	c.errs = multierr.Append(c.errs, err)
}
