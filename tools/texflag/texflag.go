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

// Package texflag provides flag types for texgen tools.
package texflag

import (
	"flag"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// StringListValue is a flag value storing a comma separated list of strings.
type StringListValue struct {
	list *[]string
}

// String returns the list, comma separated.
func (sl *StringListValue) String() string {
	if sl.list == nil {
		return ""
	}
	return strings.Join(*sl.list, ",")
}

// Set appends comma separated values to the list. Empty values are skipped.
func (sl *StringListValue) Set(values string) error {
	for _, value := range strings.Split(values, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		*sl.list = append(*sl.list, value)
	}
	return nil
}

// StringList returns a flag to pass a list of string from the command line.
func StringList(fs *flag.FlagSet, name, doc string) *[]string {
	var list []string
	fs.Var(&StringListValue{&list}, name, doc)
	return &list
}

// ParamsValue is a flag value storing numeric parameters given as
// comma separated key=value pairs.
type ParamsValue struct {
	params map[string]float64
}

// String returns the parameters sorted by name.
func (pv *ParamsValue) String() string {
	if pv.params == nil {
		return ""
	}
	keys := maps.Keys(pv.params)
	sort.Strings(keys)
	ss := make([]string, len(keys))
	for i, k := range keys {
		ss[i] = fmt.Sprintf("%s=%g", k, pv.params[k])
	}
	return strings.Join(ss, ",")
}

// Set parses key=value pairs. A key set twice takes the last value.
func (pv *ParamsValue) Set(values string) error {
	for _, pair := range strings.Split(values, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return errors.Errorf("invalid parameter %q: want key=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return errors.Wrapf(err, "invalid value for parameter %q", key)
		}
		pv.params[key] = v
	}
	return nil
}

// Params returns a flag to pass numeric parameters from the command line.
func Params(fs *flag.FlagSet, name, doc string) map[string]float64 {
	pv := &ParamsValue{params: make(map[string]float64)}
	fs.Var(pv, name, doc)
	return pv.params
}
