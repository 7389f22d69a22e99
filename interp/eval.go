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
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/texgen/base/sync"
	"github.com/gx-org/texgen/build/node"
	"golang.org/x/exp/maps"
)

// Stats about a compiled expression.
type Stats struct {
	// Distinct is the number of distinct sub-expressions emitted by the compiler.
	Distinct int
	// Selects is the number of selects evaluated at runtime.
	Selects int
	// Symbols is the number of symbols stored in an evaluation frame.
	Symbols int
	// Ops counts the operators emitted by the compiler per operator identifier.
	Ops map[node.OpID]int
}

// String representation of the statistics.
func (s Stats) String() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "distinct=%d selects=%d symbols=%d", s.Distinct, s.Selects, s.Symbols)
	ids := maps.Keys(s.Ops)
	slices.Sort(ids)
	for _, id := range ids {
		fmt.Fprintf(&b, " %s=%d", id, s.Ops[id])
	}
	return b.String()
}

// Evaluator evaluates a compiled expression at positions.
type Evaluator struct {
	outputs []evalFn
	dims    int
	stats   Stats
	frames  *sync.Pool[*frame]
}

func newEvaluator(outputs []evalFn, dims, numSlots int, stats Stats) *Evaluator {
	return &Evaluator{
		outputs: outputs,
		dims:    dims,
		stats:   stats,
		frames: sync.NewPool(func() *frame {
			return newFrame(numSlots)
		}),
	}
}

// Dims returns the number of components computed by the evaluator.
// Zero is returned for a scalar expression.
func (ev *Evaluator) Dims() int {
	return ev.dims
}

// NumOutputs returns the number of values written by EvalInto.
func (ev *Evaluator) NumOutputs() int {
	return len(ev.outputs)
}

// Shape returns the shape of the values computed by the evaluator.
func (ev *Evaluator) Shape() *shape.Shape {
	var axes []int
	if ev.dims > 0 {
		axes = []int{ev.dims}
	}
	return &shape.Shape{
		DType:       dtype.Float64,
		AxisLengths: axes,
	}
}

// Stats returns statistics about the compiled expression.
func (ev *Evaluator) Stats() Stats {
	return ev.stats
}

// EvalInto evaluates the expression at a position and writes the result
// in out. out must be able to store NumOutputs values.
func (ev *Evaluator) EvalInto(pos [node.NumAxes]float64, out []float64) error {
	if len(out) < len(ev.outputs) {
		return errors.Errorf("output buffer of size %d too small: %d values required", len(out), len(ev.outputs))
	}
	f := ev.frames.Get()
	defer ev.frames.Put(f)
	f.reset(pos)
	for i, fn := range ev.outputs {
		out[i] = fn(f)
	}
	return nil
}

// Eval evaluates the expression at a position.
func (ev *Evaluator) Eval(pos [node.NumAxes]float64) []float64 {
	out := make([]float64, len(ev.outputs))
	// The buffer is always large enough.
	_ = ev.EvalInto(pos, out)
	return out
}

// Scalar evaluates the first component of the expression at a position.
func (ev *Evaluator) Scalar(pos [node.NumAxes]float64) float64 {
	f := ev.frames.Get()
	defer ev.frames.Put(f)
	f.reset(pos)
	return ev.outputs[0](f)
}
