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

import "github.com/gx-org/texgen/build/node"

// frame stores the state of the evaluation of one sample.
//
// Symbol values are valid only if their stamp matches the generation of
// the frame. Resetting a frame increments the generation instead of
// clearing all the values.
type frame struct {
	pos    [node.NumAxes]float64
	vals   []float64
	stamps []uint32
	gen    uint32
}

func newFrame(numSlots int) *frame {
	return &frame{
		vals:   make([]float64, numSlots),
		stamps: make([]uint32, numSlots),
		gen:    1,
	}
}

// reset prepares the frame for a new sample.
func (f *frame) reset(pos [node.NumAxes]float64) {
	f.pos = pos
	f.gen++
	if f.gen != 0 {
		return
	}
	// The generation counter wrapped around.
	clear(f.stamps)
	f.gen = 1
}
