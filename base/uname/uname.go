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

// Package uname provides unique names.
//
// A generator is owned by a single pass (printing, compiling) and threaded
// through it. There is no process-wide naming state.
package uname

import "fmt"

// Unique generates unique names.
type Unique struct {
	names map[string]int
	keys  map[any]string
}

// New name generator.
func New() *Unique {
	return &Unique{
		names: make(map[string]int),
		keys:  make(map[any]string),
	}
}

// Register marks a name as taken.
func (n *Unique) Register(name string) {
	if _, ok := n.names[name]; ok {
		return
	}
	n.names[name] = 1
}

// Name returns a unique name given a desired base name.
// If the base name is available, it is returned directly. Else, a unique suffix is appended.
func (n *Unique) Name(root string) string {
	nextIndex, ok := n.names[root]
	if !ok {
		n.names[root] = 1
		return root
	}
	for {
		name := fmt.Sprintf("%s%d", root, nextIndex)
		nextIndex++
		if _, taken := n.names[name]; taken {
			continue
		}
		n.names[root] = nextIndex
		n.names[name] = 1
		return name
	}
}

// NameFor returns the name assigned to a key.
// The first call for a key allocates a unique name from root,
// subsequent calls return the same name.
func (n *Unique) NameFor(key any, root string) string {
	if name, ok := n.keys[key]; ok {
		return name
	}
	name := n.Name(root)
	n.keys[key] = name
	return name
}
