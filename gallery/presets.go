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

package gallery

import (
	"math"

	"github.com/pkg/errors"
	"github.com/gx-org/texgen/build/node"
	"github.com/gx-org/texgen/build/vec"
	"github.com/gx-org/texgen/stdlib/math/grad"
	"github.com/gx-org/texgen/stdlib/ramp"
	"github.com/gx-org/texgen/stdlib/warp"
)

const maxOctaves = 12

func init() {
	register(&Preset{
		Name:        "clouds",
		Description: "white clouds drifting in a blue sky",
		Defaults:    Params{"scale": 4, "octaves": 5, "speed": 0.1, "cover": 0.5},
		Build:       clouds,
	})
	register(&Preset{
		Name:        "marble",
		Description: "veined marble",
		Defaults:    Params{"scale": 3, "octaves": 4, "turbulence": 5, "veins": 6},
		Build:       marble,
	})
	register(&Preset{
		Name:        "swirl",
		Description: "noise twisted around the centre of the image",
		Defaults:    Params{"scale": 6, "twist": 8, "speed": 1},
		Build:       swirl,
	})
	register(&Preset{
		Name:        "tiles",
		Description: "seamless tiles with random colours",
		Defaults:    Params{"tiles": 6, "mortar": 0.06, "roughness": 0.3},
		Build:       tiles,
	})
	register(&Preset{
		Name:        "bumps",
		Description: "bumpy surface lit by a directional light",
		Defaults:    Params{"scale": 5, "octaves": 3, "height": 0.3, "angle": 0.8},
		Build:       bumps,
	})
	register(&Preset{
		Name:        "ramp",
		Description: "rainbow colour map",
		Defaults:    Params{"bands": 1},
		Build:       rainbow,
	})
}

func octaves(p Params) (int, error) {
	n := p.Get("octaves", 1)
	if n < 1 || n > maxOctaves || n != math.Trunc(n) {
		return 0, errors.Errorf("invalid number of octaves %v: want an integer between 1 and %d", n, maxOctaves)
	}
	return int(n), nil
}

func positive(p Params, name string) (float64, error) {
	v := p.Get(name, 1)
	if !(v > 0) {
		return 0, errors.Errorf("invalid %s %v: want a positive value", name, v)
	}
	return v, nil
}

// fbm sums octaves of noise with increasing frequencies and decreasing
// amplitudes. The result is approximately in [-1, 1].
func fbm(p vec.Vector, octaves int) node.Node {
	var binder node.Binder
	q := make(vec.Vector, 3)
	for i := range q {
		q[i] = binder.Bind("p", p.At(i))
	}
	var sum node.Node = node.Const(0)
	amplitude, frequency, total := 0.5, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		f := node.Const(frequency)
		shift := node.Const(float64(i) * 17.31)
		n := node.Noise3(
			node.Add(node.Mul(q[0], f), shift),
			node.Mul(q[1], f),
			node.Add(node.Mul(q[2], f), shift),
		)
		sum = node.Add(sum, node.Mul(node.Const(amplitude), n))
		total += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	return binder.Wrap(node.Div(sum, node.Const(total)))
}

// colours returns a colour map given (position, r, g, b) tuples.
func colours(tuples ...[4]float64) (*ramp.Map, error) {
	bps := make([]ramp.Breakpoint, len(tuples))
	for i, t := range tuples {
		bps[i] = ramp.Breakpoint{Position: t[0], Colour: ramp.RGB(t[1], t[2], t[3])}
	}
	return ramp.ColourMap(bps...)
}

func scaled(p Params) (vec.Vector, error) {
	scale, err := positive(p, "scale")
	if err != nil {
		return nil, err
	}
	return vec.ToVector(warp.Scale(vec.C(1/scale), vec.New(node.X, node.Y, node.Z))), nil
}

func clouds(p Params) (vec.Vector, error) {
	n, err := octaves(p)
	if err != nil {
		return nil, err
	}
	pos, err := scaled(p)
	if err != nil {
		return nil, err
	}
	drift := vec.New(node.Mul(node.T, node.Const(p.Get("speed", 0))))
	density := fbm(vec.ToVector(warp.Offset(drift, pos)), n)
	cover := p.Get("cover", 0.5)
	sky, err := colours(
		[4]float64{-cover, 0.2, 0.4, 0.8},
		[4]float64{1 - cover, 1, 1, 1},
	)
	if err != nil {
		return nil, err
	}
	return sky.Apply(vec.S(density)), nil
}

func marble(p Params) (vec.Vector, error) {
	n, err := octaves(p)
	if err != nil {
		return nil, err
	}
	pos, err := scaled(p)
	if err != nil {
		return nil, err
	}
	turbulence := node.Mul(node.Const(p.Get("turbulence", 1)), fbm(pos, n))
	veins := node.Add(node.Mul(node.X, node.Const(p.Get("veins", 1))), turbulence)
	v := node.Apply(node.OpAbs, node.Sin(veins))
	stone, err := colours(
		[4]float64{0, 0.25, 0.25, 0.3},
		[4]float64{0.4, 0.75, 0.75, 0.78},
		[4]float64{1, 0.95, 0.95, 0.93},
	)
	if err != nil {
		return nil, err
	}
	return stone.Apply(vec.S(v)), nil
}

func swirl(p Params) (vec.Vector, error) {
	scale, err := positive(p, "scale")
	if err != nil {
		return nil, err
	}
	radius := vec.Length(vec.New(node.X, node.Y))
	angle := node.Add(
		node.Mul(node.Const(p.Get("twist", 0)), radius),
		node.Mul(node.T, node.Const(p.Get("speed", 0))),
	)
	pattern := node.Noise2(node.Mul(node.X, node.Const(scale)), node.Mul(node.Y, node.Const(scale)))
	// Rotate around the centre of the unit square.
	centred := vec.Sub(vec.Position(), vec.Consts(0.5, 0.5))
	pattern = warp.Value(centred, warp.Rotate(angle, vec.S(pattern))).At(0)
	hot, err := colours(
		[4]float64{-1, 0.1, 0, 0.2},
		[4]float64{0, 0.9, 0.3, 0.1},
		[4]float64{1, 1, 0.95, 0.6},
	)
	if err != nil {
		return nil, err
	}
	return hot.Apply(vec.S(pattern)), nil
}

func tiles(p Params) (vec.Vector, error) {
	count, err := positive(p, "tiles")
	if err != nil {
		return nil, err
	}
	if count != math.Trunc(count) {
		return nil, errors.Errorf("invalid number of tiles %v: want an integer", count)
	}
	var binder node.Binder
	u := binder.Bind("u", node.Mul(node.X, node.Const(count)))
	v := binder.Bind("v", node.Mul(node.Y, node.Const(count)))
	cell := binder.Bind("cell", node.Add(
		node.Apply(node.OpFloor, u),
		node.Mul(node.Apply(node.OpFloor, v), node.Const(57)),
	))
	edge := node.Min(node.Apply(node.OpFract, u), node.Apply(node.OpFract, v))
	mortar := node.Apply(node.OpLt, edge, node.Const(p.Get("mortar", 0)))
	base := vec.New(
		node.Apply(node.OpHash, cell),
		node.Apply(node.OpHash, node.Add(cell, node.Const(0.37))),
		node.Apply(node.OpHash, node.Add(cell, node.Const(0.71))),
	)
	// The surface roughness is tileable with a period of 1.
	grain := warp.SeamlessTile(1, vec.S(node.Noise3(
		node.Mul(node.X, node.Const(2)),
		node.Mul(node.Y, node.Const(2)),
		node.Mul(node.Z, node.Const(2)),
	))).At(0)
	rough := node.Add(node.Const(1), node.Mul(node.Const(p.Get("roughness", 0)), grain))
	surface := vec.ToVector(vec.Mul(base, vec.S(rough)))
	colour := warp.Select(mortar, ramp.Gray(0.15), surface)
	return vec.WithBindings(binder.Bindings(), vec.ToVector(colour)), nil
}

func bumps(p Params) (vec.Vector, error) {
	n, err := octaves(p)
	if err != nil {
		return nil, err
	}
	pos, err := scaled(p)
	if err != nil {
		return nil, err
	}
	height := node.Mul(node.Const(p.Get("height", 0)), fbm(pos, n))
	g := grad.VGradient(height)
	tx := vec.New(node.Const(1), node.Const(0), g[node.AxisX])
	ty := vec.New(node.Const(0), node.Const(1), g[node.AxisY])
	normal, err := vec.Cross(tx, ty)
	if err != nil {
		return nil, err
	}
	angle := p.Get("angle", 0)
	light := vec.Normalize(vec.Consts(math.Cos(angle), math.Sin(angle), 1))
	shade, err := vec.Dot(vec.Normalize(normal), light)
	if err != nil {
		return nil, err
	}
	return ramp.VLerp(ramp.RGB(0.1, 0.05, 0), ramp.RGB(1, 0.85, 0.6), vec.S(shade)), nil
}

func rainbow(p Params) (vec.Vector, error) {
	bands, err := positive(p, "bands")
	if err != nil {
		return nil, err
	}
	m, err := colours(
		[4]float64{0, 1, 0, 0},
		[4]float64{0.2, 1, 1, 0},
		[4]float64{0.4, 0, 1, 0},
		[4]float64{0.6, 0, 1, 1},
		[4]float64{0.8, 0, 0, 1},
		[4]float64{1, 1, 0, 1},
	)
	if err != nil {
		return nil, err
	}
	v := node.Apply(node.OpFract, node.Mul(node.X, node.Const(bands)))
	return m.Apply(vec.S(v)), nil
}
