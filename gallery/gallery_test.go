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

package gallery_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/texgen/build/node"
	"github.com/gx-org/texgen/gallery"
	"github.com/gx-org/texgen/interp"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	want := []string{"bumps", "clouds", "marble", "ramp", "swirl", "tiles"}
	if diff := cmp.Diff(gallery.Names(), want); diff != "" {
		t.Errorf("unexpected presets:\n%s", diff)
	}
}

func TestBuildAllCompiles(t *testing.T) {
	all, err := gallery.BuildAll()
	require.NoError(t, err)
	require.Len(t, all, len(gallery.Names()))
	points := [][node.NumAxes]float64{
		{0, 0, 0, 0},
		{0.3, 0.7, 0, 0.5},
		{0.99, 0.01, 0, 2},
	}
	for name, v := range all {
		ev, err := interp.CompileVector(v)
		require.NoError(t, err, "preset %q", name)
		require.Equal(t, 3, ev.Dims(), "preset %q", name)
		for _, p := range points {
			for i, c := range ev.Eval(p) {
				require.False(t, math.IsNaN(c) || math.IsInf(c, 0), "preset %q: component %d at %v is %v", name, i, p, c)
			}
		}
	}
}

func TestBuildUnknownPreset(t *testing.T) {
	_, err := gallery.Build("mona lisa", nil)
	require.True(t, errors.Is(err, gallery.ErrUnknownPreset), "got error %v but want %v", err, gallery.ErrUnknownPreset)
}

func TestBuildParams(t *testing.T) {
	_, err := gallery.Build("clouds", gallery.Params{"colour": 1})
	require.Error(t, err)
	_, err = gallery.Build("clouds", gallery.Params{"octaves": 0})
	require.Error(t, err)
	_, err = gallery.Build("tiles", gallery.Params{"tiles": 2.5})
	require.Error(t, err)
	v, err := gallery.Build("ramp", gallery.Params{"bands": 2})
	require.NoError(t, err)
	ev, err := interp.CompileVector(v)
	require.NoError(t, err)
	// Two bands: x=0.5 starts the second band.
	require.Equal(t, []float64{1, 0, 0}, ev.Eval([node.NumAxes]float64{0.5, 0, 0, 0}))
}

func TestParamsString(t *testing.T) {
	p := gallery.Params{"speed": 0.5, "octaves": 3}
	require.Equal(t, "octaves=3,speed=0.5", p.String())
}

func TestPresetDefaults(t *testing.T) {
	for _, name := range gallery.Names() {
		p, err := gallery.Lookup(name)
		require.NoError(t, err)
		require.NotEmpty(t, p.Description, "preset %q", name)
		require.NotEmpty(t, p.Defaults, "preset %q", name)
	}
}
