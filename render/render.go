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

// Package render samples evaluators on pixel grids.
package render

import (
	"context"
	"image"
	"image/color"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/gx-org/texgen/build/node"
	"github.com/gx-org/texgen/interp"
	"go.uber.org/multierr"
)

// Grid maps pixels to positions.
//
// The pixel (i, j) is sampled at x = Scale*i/Width, y = Scale*j/Height,
// z = 0 and t = Time.
type Grid struct {
	Width, Height int
	// Scale of the grid. A zero scale is the same as a scale of 1.
	Scale float64
	Time  float64
}

// Position returns the position of a pixel.
func (g Grid) Position(i, j int) [node.NumAxes]float64 {
	scale := g.Scale
	if scale == 0 {
		scale = 1
	}
	return [node.NumAxes]float64{
		scale * float64(i) / float64(g.Width),
		scale * float64(j) / float64(g.Height),
		0,
		g.Time,
	}
}

// Image stores the channels of all the pixels of a grid.
type Image struct {
	Width, Height int
	Channels      int
	Pix           []float32
}

func newImage(width, height, channels int) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float32, width*height*channels),
	}
}

// At returns the channels of a pixel.
func (img *Image) At(i, j int) []float32 {
	start := (j*img.Width + i) * img.Channels
	return img.Pix[start : start+img.Channels]
}

type asyncErrors struct {
	locker sync.Mutex
	errs   error
}

func (ae *asyncErrors) add(err error) {
	ae.locker.Lock()
	defer ae.locker.Unlock()

	ae.errs = multierr.Append(ae.errs, err)
}

func (ae *asyncErrors) errors() error {
	ae.locker.Lock()
	defer ae.locker.Unlock()

	return ae.errs
}

// sampler evaluates rows of an image in Go routines.
type sampler struct {
	ctx  context.Context
	ev   *interp.Evaluator
	grid Grid
	img  *Image

	wg       sync.WaitGroup
	errs     asyncErrors
	skipped  atomic.Bool
	toWorker chan int
}

func (s *sampler) sampleRow(j int) error {
	buf := make([]float64, s.img.Channels)
	for i := 0; i < s.grid.Width; i++ {
		if err := s.ev.EvalInto(s.grid.Position(i, j), buf); err != nil {
			return errors.WithMessagef(err, "pixel (%d, %d)", i, j)
		}
		px := s.img.At(i, j)
		for c, v := range buf {
			px[c] = float32(v)
		}
	}
	return nil
}

func (s *sampler) worker() {
	defer s.wg.Done()
	for j := range s.toWorker {
		if s.ctx.Err() != nil {
			s.skipped.Store(true)
			continue
		}
		if err := s.sampleRow(j); err != nil {
			s.errs.add(err)
		}
	}
}

// Sample evaluates an evaluator at every pixel of a grid.
// Rows are sampled concurrently, one Go routine per CPU.
// The image has one channel per value of the evaluator shape.
func Sample(ctx context.Context, ev *interp.Evaluator, grid Grid) (*Image, error) {
	if grid.Width <= 0 || grid.Height <= 0 {
		return nil, errors.Errorf("invalid grid size %dx%d", grid.Width, grid.Height)
	}
	sh := ev.Shape()
	if len(sh.AxisLengths) > 1 {
		return nil, errors.Errorf("cannot sample values of shape %s: want a scalar or a vector", sh)
	}
	s := &sampler{
		ctx:      ctx,
		ev:       ev,
		grid:     grid,
		img:      newImage(grid.Width, grid.Height, sh.Size()),
		toWorker: make(chan int),
	}
	for range min(runtime.NumCPU(), grid.Height) {
		s.wg.Add(1)
		go s.worker()
	}
	var cancelled error
rows:
	for j := 0; j < grid.Height; j++ {
		select {
		case s.toWorker <- j:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break rows
		}
	}
	close(s.toWorker)
	s.wg.Wait()
	if cancelled == nil && s.skipped.Load() {
		cancelled = ctx.Err()
	}
	if err := multierr.Append(cancelled, s.errs.errors()); err != nil {
		return nil, err
	}
	return s.img, nil
}

// quantize maps a channel value to 8 bits.
// NaN maps to 0 and infinities are clamped.
func quantize(v float32) uint8 {
	switch {
	case math32.IsNaN(v):
		return 0
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(math32.Floor(v*255 + 0.5))
}

// RGBA converts the image into 8 bits colours.
//
// One channel is rendered as gray, two channels as gray and alpha, three
// channels as RGB and four channels as RGBA.
func (img *Image) RGBA() *image.RGBA {
	r := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for j := 0; j < img.Height; j++ {
		for i := 0; i < img.Width; i++ {
			r.SetRGBA(i, j, img.colour(img.At(i, j)))
		}
	}
	return r
}

func (img *Image) colour(px []float32) color.RGBA {
	c := color.RGBA{A: 255}
	switch len(px) {
	case 1, 2:
		g := quantize(px[0])
		c.R, c.G, c.B = g, g, g
		if len(px) == 2 {
			c.A = quantize(px[1])
		}
	default:
		c.R, c.G, c.B = quantize(px[0]), quantize(px[1]), quantize(px[2])
		if len(px) == 4 {
			c.A = quantize(px[3])
		}
	}
	// image.RGBA stores premultiplied colours.
	if c.A < 255 {
		c.R = uint8(uint16(c.R) * uint16(c.A) / 255)
		c.G = uint8(uint16(c.G) * uint16(c.A) / 255)
		c.B = uint8(uint16(c.B) * uint16(c.A) / 255)
	}
	return c
}
