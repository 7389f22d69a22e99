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

// Package noise implements the noise and hash primitives used by texture
// expressions. All functions are pure functions of their inputs.
package noise

import (
	"math"
	"math/rand/v2"
)

// perm is a permutation of [0, 256) repeated twice
// so that lookups never wrap.
var perm [512]uint8

func init() {
	rnd := rand.New(rand.NewPCG(0x7e7, 0x9e3779b97f4a7c15))
	for i, v := range rnd.Perm(256) {
		perm[i] = uint8(v)
		perm[i+256] = uint8(v)
	}
}

var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// floor returns the lattice cell of x.
// NaN and infinite values map to an arbitrary cell: indices are always masked.
func floor(x float64) int {
	return int(math.Floor(x))
}

func dot2(g [3]float64, x, y float64) float64 {
	return g[0]*x + g[1]*y
}

func dot3(g [3]float64, x, y, z float64) float64 {
	return g[0]*x + g[1]*y + g[2]*z
}

const (
	skew2   = 0.36602540378443864676 // (sqrt(3)-1)/2
	unskew2 = 0.21132486540518711775 // (3-sqrt(3))/6
	skew3   = 1.0 / 3.0
	unskew3 = 1.0 / 6.0
)

// Noise2 returns 2D simplex noise in approximately [-1, 1].
func Noise2(x, y float64) float64 {
	s := (x + y) * skew2
	i, j := floor(x+s), floor(y+s)
	t := float64(i+j) * unskew2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}
	x1 := x0 - float64(i1) + unskew2
	y1 := y0 - float64(j1) + unskew2
	x2 := x0 - 1 + 2*unskew2
	y2 := y0 - 1 + 2*unskew2

	ii, jj := i&255, j&255
	g0 := grad3[perm[ii+int(perm[jj])]%12]
	g1 := grad3[perm[ii+i1+int(perm[jj+j1])]%12]
	g2 := grad3[perm[ii+1+int(perm[jj+1])]%12]

	n := corner(0.5-x0*x0-y0*y0, dot2(g0, x0, y0)) +
		corner(0.5-x1*x1-y1*y1, dot2(g1, x1, y1)) +
		corner(0.5-x2*x2-y2*y2, dot2(g2, x2, y2))
	return 70 * n
}

// Noise3 returns 3D simplex noise in approximately [-1, 1].
func Noise3(x, y, z float64) float64 {
	s := (x + y + z) * skew3
	i, j, k := floor(x+s), floor(y+s), floor(z+s)
	t := float64(i+j+k) * unskew3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	var i1, j1, k1, i2, j2, k2 int
	switch {
	case x0 >= y0 && y0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
	case x0 >= y0 && x0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
	case x0 >= y0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
	case y0 < z0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
	case x0 < z0:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
	default:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
	}
	x1 := x0 - float64(i1) + unskew3
	y1 := y0 - float64(j1) + unskew3
	z1 := z0 - float64(k1) + unskew3
	x2 := x0 - float64(i2) + 2*unskew3
	y2 := y0 - float64(j2) + 2*unskew3
	z2 := z0 - float64(k2) + 2*unskew3
	x3 := x0 - 1 + 3*unskew3
	y3 := y0 - 1 + 3*unskew3
	z3 := z0 - 1 + 3*unskew3

	ii, jj, kk := i&255, j&255, k&255
	g0 := grad3[perm[ii+int(perm[jj+int(perm[kk])])]%12]
	g1 := grad3[perm[ii+i1+int(perm[jj+j1+int(perm[kk+k1])])]%12]
	g2 := grad3[perm[ii+i2+int(perm[jj+j2+int(perm[kk+k2])])]%12]
	g3 := grad3[perm[ii+1+int(perm[jj+1+int(perm[kk+1])])]%12]

	n := corner(0.5-x0*x0-y0*y0-z0*z0, dot3(g0, x0, y0, z0)) +
		corner(0.5-x1*x1-y1*y1-z1*z1, dot3(g1, x1, y1, z1)) +
		corner(0.5-x2*x2-y2*y2-z2*z2, dot3(g2, x2, y2, z2)) +
		corner(0.5-x3*x3-y3*y3-z3*z3, dot3(g3, x3, y3, z3))
	return 72 * n
}

// corner returns the contribution of a simplex corner given its falloff.
func corner(falloff, g float64) float64 {
	if !(falloff > 0) {
		return 0
	}
	falloff *= falloff
	return falloff * falloff * g
}

// Hash maps a value to a pseudo-random number in [0, 1).
// Equal inputs always produce equal outputs.
func Hash(x float64) float64 {
	h := math.Float64bits(x)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return float64(h>>11) / (1 << 53)
}
