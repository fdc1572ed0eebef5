/*
 * colorscheme.go, part of golfd.
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

// Package colorscheme provides named continuous colour gradients, samples them
// and writes the samples as tables that other programs can embed.
package colorscheme

import (
	"fmt"
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
)

// Gradient is a continuous colour scheme over [0, 1].
type Gradient interface {
	Name() string
	//At returns the colour at t. t is clamped to [0, 1].
	At(t float64) colorful.Color
}

// brewerNames are the ColorBrewer schemes offered. They are the diverging and
// sequential ones, which make sense as continuous gradients.
var brewerNames = []string{
	"BrBG", "PiYG", "PRGn", "PuOr", "RdBu", "RdGy", "RdYlBu", "RdYlGn", "Spectral",
	"Blues", "BuGn", "BuPu", "GnBu", "Greens", "Greys", "Oranges", "OrRd", "PuBu",
	"PuBuGn", "PuRd", "Purples", "RdPu", "Reds", "YlGn", "YlGnBu", "YlOrBr", "YlOrRd",
}

var morelandMaps = map[string]func() palette.ColorMap{
	"smooth-blue-red":     func() palette.ColorMap { return moreland.SmoothBlueRed() },
	"kindlmann":           moreland.Kindlmann,
	"extended-kindlmann":  moreland.ExtendedKindlmann,
	"black-body":          moreland.BlackBody,
	"extended-black-body": moreland.ExtendedBlackBody,
}

// reversedSuffix appended to any name gives the same gradient backwards.
const reversedSuffix = "_r"

// Names returns the names accepted by Get, sorted, without the reversed variants.
func Names() []string {
	ret := make([]string, 0, len(brewerNames)+len(morelandMaps))
	ret = append(ret, brewerNames...)
	for k := range morelandMaps {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Get returns the gradient called name. A name ending in "_r" gives the
// reversed gradient.
func Get(name string) (Gradient, error) {
	if base, ok := strings.CutSuffix(name, reversedSuffix); ok {
		g, err := Get(base)
		if err != nil {
			return nil, err
		}
		return reversed{g}, nil
	}
	if f, ok := morelandMaps[name]; ok {
		cm := f()
		cm.SetMin(0)
		cm.SetMax(1)
		return &mapGradient{name: name, cm: cm}, nil
	}
	for _, v := range brewerNames {
		if v == name {
			return brewerGradient(name)
		}
	}
	return nil, fmt.Errorf("colorscheme: unknown color scheme %q", name)
}

// brewerGradient builds a gradient from the largest version of a ColorBrewer
// scheme, interpolating linearly in RGB between its colours.
func brewerGradient(name string) (Gradient, error) {
	var pal palette.Palette
	var err error
	for n := 12; n >= 3; n-- {
		pal, err = brewer.GetPalette(brewer.TypeAny, name, n)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("colorscheme: %s: %w", name, err)
	}
	stops := make([]colorful.Color, 0, len(pal.Colors()))
	for _, c := range pal.Colors() {
		cf, _ := colorful.MakeColor(c)
		stops = append(stops, cf)
	}
	return NewStops(name, stops...), nil
}

// Stops is a gradient going linearly, in RGB, through evenly spaced colours.
type Stops struct {
	name  string
	stops []colorful.Color
}

// NewStops returns a gradient through the given colours. It panics with no colours.
func NewStops(name string, stops ...colorful.Color) *Stops {
	if len(stops) == 0 {
		panic("colorscheme: gradient with no colours")
	}
	return &Stops{name: name, stops: stops}
}

func (S *Stops) Name() string { return S.name }

func (S *Stops) At(t float64) colorful.Color {
	t = clamp(t)
	if len(S.stops) == 1 {
		return S.stops[0]
	}
	s := t * float64(len(S.stops)-1)
	i := int(math.Floor(s))
	if i >= len(S.stops)-1 {
		return S.stops[len(S.stops)-1]
	}
	return S.stops[i].BlendRgb(S.stops[i+1], s-float64(i)).Clamped()
}

// mapGradient wraps a gonum colour map with range [0, 1].
type mapGradient struct {
	name string
	cm   palette.ColorMap
}

func (M *mapGradient) Name() string { return M.name }

func (M *mapGradient) At(t float64) colorful.Color {
	c, err := M.cm.At(clamp(t))
	if err != nil {
		c, _ = M.cm.At(0)
	}
	cf, _ := colorful.MakeColor(c)
	return cf
}

type reversed struct {
	Gradient
}

func (R reversed) Name() string { return R.Gradient.Name() + reversedSuffix }

func (R reversed) At(t float64) colorful.Color { return R.Gradient.At(1 - clamp(t)) }

func clamp(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// Sample returns n colours of g at evenly spaced points of [0, 1], both ends
// included. n == 1 samples 0. n <= 0 gives nil.
func Sample(g Gradient, n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	ret := make([]colorful.Color, n)
	if n == 1 {
		ret[0] = g.At(0)
		return ret
	}
	for i := range ret {
		ret[i] = g.At(float64(i) / float64(n-1))
	}
	return ret
}
