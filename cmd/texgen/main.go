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

// Command texgen renders texture presets into PNG files.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/gx-org/texgen/gallery"
	"github.com/gx-org/texgen/interp"
	"github.com/gx-org/texgen/render"
	"github.com/gx-org/texgen/tools/texflag"
)

var (
	presets = texflag.StringList(flag.CommandLine, "presets", "comma separated list of presets to render (all presets if empty)")
	params  = texflag.Params(flag.CommandLine, "param", "comma separated list of key=value preset parameters")
	width   = flag.Int("width", 512, "width of the images in pixels")
	height  = flag.Int("height", 512, "height of the images in pixels")
	scale   = flag.Float64("scale", 1, "scale of the sampling grid")
	tm      = flag.Float64("time", 0, "time at which the textures are sampled")
	out     = flag.String("out", ".", "folder in which the images are written")
	list    = flag.Bool("list", false, "list the presets and their parameters and exit")
	stats   = flag.Bool("stats", false, "print statistics about the compiled expressions")
)

func exit(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func listPresets() {
	for _, name := range gallery.Names() {
		p, err := gallery.Lookup(name)
		if err != nil {
			exit("%+v", err)
		}
		fmt.Printf("%-8s %s (%s)\n", name, p.Description, p.Defaults)
	}
}

func renderPreset(ctx context.Context, name string, grid render.Grid) (string, error) {
	v, err := gallery.Build(name, gallery.Params(params))
	if err != nil {
		return "", err
	}
	ev, err := interp.CompileVector(v)
	if err != nil {
		return "", errors.WithMessagef(err, "cannot compile preset %q", name)
	}
	if *stats {
		log.Printf("%s: %s %s", name, ev.Shape(), ev.Stats())
	}
	img, err := render.Sample(ctx, ev, grid)
	if err != nil {
		return "", errors.WithMessagef(err, "cannot render preset %q", name)
	}
	path := filepath.Join(*out, name+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Errorf("cannot create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img.RGBA()); err != nil {
		return "", errors.Errorf("cannot encode %s: %v", path, err)
	}
	return path, f.Close()
}

func main() {
	flag.Parse()
	if *list {
		listPresets()
		return
	}
	names := *presets
	if len(names) == 0 {
		names = gallery.Names()
	}
	if err := os.MkdirAll(*out, 0755); err != nil {
		exit("cannot create output folder %s: %v", *out, err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	grid := render.Grid{
		Width:  *width,
		Height: *height,
		Scale:  *scale,
		Time:   *tm,
	}
	for _, name := range names {
		start := time.Now()
		path, err := renderPreset(ctx, name, grid)
		if err != nil {
			exit("%+v", err)
		}
		log.Printf("%s: %dx%d pixels written to %s in %s", name, grid.Width, grid.Height, path, time.Since(start))
	}
}
