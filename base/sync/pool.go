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

// Package sync provides generic wrappers around the standard sync package.
package sync

import "sync"

// Pool is a generic pool of values. It is a wrapper around Go's standard
// sync.Pool, with all the same caveats.
type Pool[T any] struct {
	p sync.Pool
}

// NewPool returns a pool allocating new values with alloc.
func NewPool[T any](alloc func() T) *Pool[T] {
	pool := &Pool[T]{}
	pool.p.New = func() any {
		return alloc()
	}
	return pool
}

// Get a value from the pool.
func (p *Pool[T]) Get() T {
	return p.p.Get().(T)
}

// Put a value back into the pool.
func (p *Pool[T]) Put(v T) {
	p.p.Put(v)
}
