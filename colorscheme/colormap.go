/*
 * colormap.go, part of golfd.
 *
 * Copyright 2026 The golfd authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package colorscheme

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// pal is a fixed list of colours.
type pal []color.Color

func (p pal) Colors() []color.Color { return p }

// Palette returns n evenly spaced colours of g as a gonum palette.
func Palette(g Gradient, n int) palette.Palette {
	samples := Sample(g, n)
	ret := make(pal, len(samples))
	for i, c := range samples {
		ret[i] = c
	}
	return ret
}

// ColorMap maps values in [Min, Max] to the colours of a gradient.
// It implements palette.ColorMap.
type ColorMap struct {
	g        Gradient
	min, max float64
	alpha    float64
}

// NewColorMap returns an opaque colour map for g with range [0, 1].
func NewColorMap(g Gradient) *ColorMap {
	return &ColorMap{g: g, min: 0, max: 1, alpha: 1}
}

// At returns the colour for v. Values outside the range, by more than rounding,
// give palette.ErrUnderflow or palette.ErrOverflow, NaN gives palette.ErrNaN.
func (C *ColorMap) At(v float64) (color.Color, error) {
	if math.IsNaN(v) {
		return nil, palette.ErrNaN
	}
	width := C.max - C.min
	tol := 1e-9 * math.Abs(width)
	switch {
	case v < C.min-tol:
		return nil, palette.ErrUnderflow
	case v > C.max+tol:
		return nil, palette.ErrOverflow
	}
	t := 0.0
	if width > 0 {
		t = (v - C.min) / width
	}
	r, g, b := C.g.At(t).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(255 * C.alpha))}, nil
}

func (C *ColorMap) Max() float64 { return C.max }

func (C *ColorMap) Min() float64 { return C.min }

func (C *ColorMap) SetMax(v float64) { C.max = v }

func (C *ColorMap) SetMin(v float64) { C.min = v }

func (C *ColorMap) Alpha() float64 { return C.alpha }

// SetAlpha sets the opacity of the colours returned, clamped to [0, 1].
func (C *ColorMap) SetAlpha(a float64) { C.alpha = clamp(a) }

// Palette returns n colours spread over the whole range of the map.
func (C *ColorMap) Palette(n int) palette.Palette {
	ret := make(pal, 0, n)
	for _, c := range Sample(C.g, n) {
		r, g, b := c.RGB255()
		ret = append(ret, color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(255 * C.alpha))})
	}
	return ret
}
