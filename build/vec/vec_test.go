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

package vec_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/gx-org/texgen/build/node"
	"github.com/gx-org/texgen/build/vec"
	"github.com/gx-org/texgen/interp"
)

func componentStrings(v vec.Vector) []string {
	p := node.NewPrinter()
	ss := make([]string, len(v))
	for i, n := range v {
		ss[i] = p.Sprint(n)
	}
	return ss
}

func TestVectorizeScalar(t *testing.T) {
	for _, s := range []vec.Scalar{vec.C(3), vec.S(node.Sin(node.X))} {
		v := vec.Vectorize(s)
		if len(v) != vec.MaxLen {
			t.Errorf("vectorize(%s) has length %d but want %d", s, len(v), vec.MaxLen)
		}
		for i := range vec.MaxLen {
			if got := vec.Component(i, s); got != s.Node {
				t.Errorf("component(%d, %s) = %s but want %s", i, s, got, s.Node)
			}
		}
	}
}

func TestVectorizePads(t *testing.T) {
	v := vec.Vectorize(vec.New(node.X, node.Y))
	want := []string{"x", "y", "0", "0"}
	if diff := cmp.Diff(want, componentStrings(v)); diff != "" {
		t.Errorf("unexpected vector (-want +got):\n%s", diff)
	}
}

func TestComponentOutOfRange(t *testing.T) {
	v := vec.New(node.X, node.Y, node.Z, node.T)
	for _, i := range []int{-1, 4, 100} {
		got := vec.Component(i, v)
		if c, ok := node.ConstantValue(got); !ok || c != 0 {
			t.Errorf("component(%d) = %s but want 0", i, got)
		}
	}
}

func TestLiftBinary(t *testing.T) {
	tests := []struct {
		x, y vec.Value
		want []string
	}{
		{
			x:    vec.New(node.X, node.Y, node.Z),
			y:    vec.New(node.T),
			want: []string{"(add x t)", "y", "z"},
		},
		{
			x:    vec.New(node.X),
			y:    vec.New(node.Y, node.Z),
			want: []string{"(add x y)", "z"},
		},
		{
			x:    vec.S(node.T),
			y:    vec.New(node.X, node.Y),
			want: []string{"(add t x)", "(add t y)"},
		},
		{
			x:    vec.Consts(1, 2, 3, 4),
			y:    vec.C(1),
			want: []string{"2", "3", "4", "5"},
		},
	}
	for i, test := range tests {
		got := vec.Add(test.x, test.y)
		if got.IsScalar() {
			t.Errorf("test %d: got a scalar but want a vector", i)
			continue
		}
		if diff := cmp.Diff(test.want, componentStrings(got.(vec.Vector))); diff != "" {
			t.Errorf("test %d: unexpected result (-want +got):\n%s", i, diff)
		}
	}
}

func TestLiftBinaryZeroPadding(t *testing.T) {
	a := vec.Consts(1, 2, 3, 4)
	b := vec.Consts(10, 20)
	got := vec.Mul(a, b).(vec.Vector)
	want := []string{"10", "40", "0", "0"}
	if diff := cmp.Diff(want, componentStrings(got)); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
	if got := vec.Sub(b, a).(vec.Vector); len(got) != len(a) {
		t.Errorf("result has length %d but want %d", len(got), len(a))
	}
}

func TestLiftScalarsCollapse(t *testing.T) {
	got := vec.Mul(vec.S(node.X), vec.S(node.Y))
	if !got.IsScalar() {
		t.Fatalf("lifting scalars returned %T but want a scalar", got)
	}
	if want := "(mul x y)"; got.At(0).String() != want {
		t.Errorf("got %s but want %s", got.At(0), want)
	}
	if got := vec.Sqrt(vec.C(16)); !got.IsScalar() || got.At(0).String() != "4" {
		t.Errorf("sqrt(16) = %v but want scalar 4", got)
	}
}

func TestLiftUnary(t *testing.T) {
	got := vec.Sin(vec.New(node.X, node.Const(0))).(vec.Vector)
	want := []string{"(sin x)", "0"}
	if diff := cmp.Diff(want, componentStrings(got)); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestCheckDims(t *testing.T) {
	tests := []struct {
		vs      []vec.Vector
		want    int
		lengths []int
	}{
		{
			vs:   []vec.Vector{vec.Consts(1, 2), vec.Consts(3, 4)},
			want: 2,
		},
		{
			vs:   nil,
			want: 0,
		},
		{
			vs:      []vec.Vector{vec.Consts(1, 2, 3), vec.Consts(1, 2, 3), vec.Consts(1)},
			lengths: []int{3, 3, 1},
		},
	}
	for i, test := range tests {
		got, err := vec.CheckDims(test.vs...)
		if test.lengths == nil {
			if err != nil {
				t.Errorf("test %d: unexpected error: %v", i, err)
				continue
			}
			if got != test.want {
				t.Errorf("test %d: got %d but want %d", i, got, test.want)
			}
			continue
		}
		if !errors.Is(err, vec.ErrDimensionMismatch) {
			t.Errorf("test %d: got error %v but want %v", i, err, vec.ErrDimensionMismatch)
			continue
		}
		var mismatch *vec.DimensionMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("test %d: error %v is not a %T", i, err, mismatch)
		}
		if diff := cmp.Diff(test.lengths, mismatch.Lengths); diff != "" {
			t.Errorf("test %d: unexpected lengths (-want +got):\n%s", i, diff)
		}
	}
}

func TestDot(t *testing.T) {
	got, err := vec.Dot(vec.Consts(1, 2, 3), vec.Consts(4, 5, 6))
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "32" {
		t.Errorf("got %s but want 32", got)
	}
	if _, err := vec.Dot(vec.Consts(1, 2), vec.Consts(1, 2, 3)); !errors.Is(err, vec.ErrDimensionMismatch) {
		t.Errorf("got error %v but want %v", err, vec.ErrDimensionMismatch)
	}
}

func TestCrossDims(t *testing.T) {
	if _, err := vec.Cross(vec.Consts(1, 2), vec.Consts(1, 2)); !errors.Is(err, vec.ErrDimensionMismatch) {
		t.Errorf("got error %v but want %v", err, vec.ErrDimensionMismatch)
	}
	if _, err := vec.Cross(vec.Consts(1, 2, 3), vec.Consts(1, 2, 3, 4)); !errors.Is(err, vec.ErrDimensionMismatch) {
		t.Errorf("got error %v but want %v", err, vec.ErrDimensionMismatch)
	}
}

func TestSelectBroadcastsCondition(t *testing.T) {
	got := vec.ToVector(vec.Select(vec.S(node.X), vec.Consts(1, 2), vec.Consts(3, 4, 5)))
	want := []string{"(select x 1 3)", "(select x 2 4)", "(select x 0 5)"}
	if diff := cmp.Diff(want, componentStrings(got)); diff != "" {
		t.Errorf("unexpected components (-want +got):\n%s", diff)
	}
}

func TestCrossPropagatesSpecialValues(t *testing.T) {
	c, err := vec.Cross(vec.Consts(1, 0, 0), vec.Consts(math.Inf(1), 1, 0))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	ev, err := interp.CompileVector(c)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	got := ev.Eval([node.NumAxes]float64{})
	if got[0] != 0 {
		t.Errorf("component 0: got %v but want 0", got[0])
	}
	for _, i := range []int{1, 2} {
		if !math.IsNaN(got[i]) {
			t.Errorf("component %d: got %v but want NaN", i, got[i])
		}
	}
}

func TestNormalizeSharesComponents(t *testing.T) {
	v := vec.New(node.Sin(node.X), node.Cos(node.Y), node.Z)
	got := vec.Normalize(v)
	if len(got) != 3 {
		t.Fatalf("got %d components but want 3", len(got))
	}
	lets := make(map[*node.Symbol]bool)
	for i, n := range got {
		let, ok := n.(*node.Let)
		if !ok {
			t.Fatalf("component %d is a %T but want a *node.Let", i, n)
		}
		for _, b := range let.Bindings {
			lets[b.Sym] = true
		}
	}
	// sin(x), cos(y), the sum of squares and the length.
	if len(lets) != 4 {
		t.Errorf("got %d distinct symbols but want 4", len(lets))
	}
}
