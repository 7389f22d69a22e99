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

package warp_test

import (
	"math"
	"testing"

	"github.com/gx-org/texgen/build/node"
	"github.com/gx-org/texgen/build/vec"
	"github.com/gx-org/texgen/internal/noise"
	"github.com/gx-org/texgen/interp"
	"github.com/gx-org/texgen/stdlib/warp"
)

const tolerance = 1e-9

func compile(t *testing.T, x vec.Value) *interp.Evaluator {
	t.Helper()
	ev, err := interp.CompileValue(x)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return ev
}

var samples = [][node.NumAxes]float64{
	{0, 0, 0, 0},
	{0.25, 0.5, 0, 0},
	{-1.5, 2.25, 0.75, 1},
	{3.1, -0.7, 0, 2},
}

func base() node.Node {
	return node.Add(node.Noise3(node.X, node.Y, node.Z), node.Mul(node.Sin(node.X), node.T))
}

func TestOffsetIdentity(t *testing.T) {
	f := vec.S(base())
	warped := warp.Offset(vec.Consts(0, 0, 0, 0), f)
	if warped.At(0) != f.At(0) {
		t.Errorf("identity offset rebuilt the expression: %s", warped.At(0))
	}
	want, got := compile(t, f), compile(t, warped)
	for _, p := range samples {
		if got.Scalar(p) != want.Scalar(p) {
			t.Errorf("at %v: got %v but want %v", p, got.Scalar(p), want.Scalar(p))
		}
	}
}

func TestOffset(t *testing.T) {
	ev := compile(t, warp.Offset(vec.Consts(1, 2), vec.New(node.X, node.Y, node.T)))
	got := ev.Eval([node.NumAxes]float64{1, 1, 0, 5})
	want := []float64{2, 3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("component %d: got %v but want %v", i, got[i], want[i])
		}
	}
}

func TestScale(t *testing.T) {
	ev := compile(t, warp.Scale(vec.C(2), vec.New(node.X, node.Z, node.T)))
	got := ev.Eval([node.NumAxes]float64{3, 0, 5, 7})
	want := []float64{1.5, 2.5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("component %d: got %v but want %v", i, got[i], want[i])
		}
	}
}

func TestRotate(t *testing.T) {
	ev := compile(t, warp.Rotate(node.Const(math.Pi/2), vec.S(node.X)))
	if got, want := ev.Scalar([node.NumAxes]float64{0, 1, 0, 0}), -1.0; math.Abs(got-want) > tolerance {
		t.Errorf("got %v but want %v", got, want)
	}
}

func TestSeamlessTileIsPeriodic(t *testing.T) {
	const period = 2
	ev := compile(t, warp.SeamlessTile(period, vec.S(base())))
	for _, p := range samples {
		want := ev.Scalar(p)
		for _, shifted := range [][node.NumAxes]float64{
			{p[0] + period, p[1], p[2], p[3]},
			{p[0], p[1] + period, p[2], p[3]},
			{p[0] - 3*period, p[1] + 2*period, p[2], p[3]},
		} {
			if got := ev.Scalar(shifted); math.Abs(got-want) > tolerance {
				t.Errorf("at %v: got %v but want %v as at %v", shifted, got, want, p)
			}
		}
	}
}

func TestWarpFreeSymbol(t *testing.T) {
	var b node.Binder
	s := b.Bind("s", node.Sin(node.X))
	f := node.Mul(s, s)
	warped := b.Wrap(warp.Warp(vec.New(node.Add(node.X, node.Const(1))), f))
	ev := compile(t, vec.S(node.Add(warped, b.Wrap(f))))
	for _, p := range samples {
		got := ev.Scalar(p)
		want := math.Pow(math.Sin(p[0]+1), 2) + math.Pow(math.Sin(p[0]), 2)
		if math.Abs(got-want) > tolerance {
			t.Errorf("at %v: got %v but want %v", p, got, want)
		}
	}
}

func TestOffsetVectorFreeSymbol(t *testing.T) {
	var b node.Binder
	s := b.Bind("s", node.Mul(node.X, node.Y))
	v := vec.New(s, node.Add(s, node.Z), node.T)
	warped := vec.WithBindings(b.Bindings(), vec.ToVector(warp.Offset(vec.Consts(1, 2), v)))
	ev := compile(t, warped)
	got := ev.Eval([node.NumAxes]float64{1, 1, 3, 5})
	want := []float64{6, 9, 5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tolerance {
			t.Errorf("component %d: got %v but want %v", i, got[i], want[i])
		}
	}
}

func TestSelect(t *testing.T) {
	a := vec.New(node.Sin(node.X), node.Cos(node.X))
	b := vec.Consts(1, 2)
	got := warp.Select(node.Const(1), a, b)
	if got.At(0) != a[0] || got.At(1) != a[1] {
		t.Errorf("got %v but want %v", got, a)
	}
	ev := compile(t, warp.Select(node.Const(1), a, b))
	if ev.Stats().Selects != 0 {
		t.Errorf("got %d selects but want 0", ev.Stats().Selects)
	}
	if got := warp.Select(node.Const(0), a, b); got.At(0) != b[0] {
		t.Errorf("got %v but want %v", got, b)
	}
	ev = compile(t, warp.Select(node.Ge(node.Y, node.Const(0)), a, b))
	if ev.Stats().Selects != 2 {
		t.Errorf("got %d selects but want 2", ev.Stats().Selects)
	}
	if got := ev.Eval([node.NumAxes]float64{1, -1, 0, 0}); got[0] != 1 || got[1] != 2 {
		t.Errorf("got %v but want [1 2]", got)
	}
}

// nest applies a warp reading the x coordinate twice depth times.
func nest(depth int) node.Node {
	f := vec.Value(vec.S(base()))
	for i := 0; i < depth; i++ {
		f = warp.Value(vec.New(node.Add(node.X, node.Sin(node.X))), f)
	}
	return f.At(0)
}

func nestValue(depth int, p [node.NumAxes]float64) float64 {
	x := p[0]
	for i := 0; i < depth; i++ {
		x += math.Sin(x)
	}
	return noise.Noise3(x, p[1], p[2]) + math.Sin(x)*p[3]
}

func TestDeepNestingIsLinear(t *testing.T) {
	depths := []int{5, 10, 15, 20}
	distinct := make([]int, len(depths))
	for i, depth := range depths {
		f := nest(depth)
		ev, err := interp.Compile(f)
		if err != nil {
			t.Fatalf("depth %d: %+v", depth, err)
		}
		distinct[i] = ev.Stats().Distinct
		for _, p := range samples {
			if got, want := ev.Scalar(p), nestValue(depth, p); math.Abs(got-want) > tolerance {
				t.Errorf("depth %d at %v: got %v but want %v", depth, p, got, want)
			}
		}
	}
	step := distinct[1] - distinct[0]
	for i := 2; i < len(distinct); i++ {
		if distinct[i]-distinct[i-1] != step {
			t.Errorf("number of sub-expressions does not grow linearly with the depth: %v", distinct)
		}
	}
	if node.InlinedSize(nest(20)) < 1<<20 {
		t.Errorf("inlined size should grow exponentially: got %d", node.InlinedSize(nest(20)))
	}
}
