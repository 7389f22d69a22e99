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

// Package gallery is a registry of named texture presets.
//
// A preset builds a colour expression given a set of numeric parameters.
// Parameters not set by the caller take the default values of the preset.
package gallery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/texgen/build/vec"
	"go.uber.org/multierr"
	"golang.org/x/exp/maps"
)

// ErrUnknownPreset is returned when a preset is not registered.
var ErrUnknownPreset = errors.New("unknown preset")

// Params are the numeric parameters of a preset.
type Params map[string]float64

// Get returns the value of a parameter or a default value if the parameter is not set.
func (p Params) Get(name string, def float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

// String representation of the parameters, sorted by name.
func (p Params) String() string {
	keys := maps.Keys(p)
	sort.Strings(keys)
	ss := make([]string, len(keys))
	for i, k := range keys {
		ss[i] = fmt.Sprintf("%s=%g", k, p[k])
	}
	return strings.Join(ss, ",")
}

type (
	// Builder builds the colour expression of a preset.
	Builder func(Params) (vec.Vector, error)

	// Preset is a named texture.
	Preset struct {
		Name        string
		Description string
		// Defaults lists all the parameters of the preset with their default values.
		Defaults Params
		Build    Builder
	}
)

var presets = map[string]*Preset{}

func register(p *Preset) {
	if _, dup := presets[p.Name]; dup {
		panic(fmt.Sprintf("preset %q registered twice", p.Name))
	}
	presets[p.Name] = p
}

// Names returns the names of all the presets, sorted.
func Names() []string {
	names := maps.Keys(presets)
	sort.Strings(names)
	return names
}

// Lookup returns a preset given its name.
func Lookup(name string) (*Preset, error) {
	p, ok := presets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPreset, "%q (available presets: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// params merges parameters with the defaults of the preset.
// Parameters unknown to the preset are rejected.
func (p *Preset) params(params Params) (Params, error) {
	r := maps.Clone(p.Defaults)
	if r == nil {
		r = Params{}
	}
	var errs error
	keys := maps.Keys(params)
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := p.Defaults[k]; !ok {
			errs = multierr.Append(errs, errors.Errorf("preset %q has no parameter %q", p.Name, k))
			continue
		}
		r[k] = params[k]
	}
	return r, errs
}

// Build the colour expression of a preset.
func Build(name string, params Params) (vec.Vector, error) {
	p, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	merged, err := p.params(params)
	if err != nil {
		return nil, err
	}
	v, err := p.Build(merged)
	if err != nil {
		return nil, errors.WithMessagef(err, "cannot build preset %q", name)
	}
	return v, nil
}

// BuildAll builds all the presets with their default parameters.
func BuildAll() (map[string]vec.Vector, error) {
	r := make(map[string]vec.Vector, len(presets))
	var errs error
	for _, name := range Names() {
		v, err := Build(name, nil)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		r[name] = v
	}
	return r, errs
}
