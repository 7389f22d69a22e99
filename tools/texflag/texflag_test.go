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

package texflag_test

import (
	"flag"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/texgen/tools/texflag"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestStringList(t *testing.T) {
	fs := newFlagSet()
	list := texflag.StringList(fs, "presets", "")
	if err := fs.Parse([]string{"-presets", "clouds, marble,", "-presets", "tiles"}); err != nil {
		t.Fatal(err)
	}
	want := []string{"clouds", "marble", "tiles"}
	if diff := cmp.Diff(*list, want); diff != "" {
		t.Errorf("unexpected list:\n%s", diff)
	}
}

func TestParams(t *testing.T) {
	fs := newFlagSet()
	params := texflag.Params(fs, "param", "")
	if err := fs.Parse([]string{"-param", "scale=2, octaves=3", "-param", "scale=4"}); err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"scale": 4, "octaves": 3}
	if diff := cmp.Diff(params, want); diff != "" {
		t.Errorf("unexpected parameters:\n%s", diff)
	}
	if got, want := fs.Lookup("param").Value.String(), "octaves=3,scale=4"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}

func TestParamsErrors(t *testing.T) {
	for _, arg := range []string{"scale", "=2", "scale=abc"} {
		fs := newFlagSet()
		texflag.Params(fs, "param", "")
		if err := fs.Parse([]string{"-param", arg}); err == nil {
			t.Errorf("%q: expected an error", arg)
		}
	}
}
