/*
 * framestat.go, part of golfd.
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

// Package framestat computes summary statistics and histograms of the
// concentration grids in a frame.
package framestat

import (
	"fmt"

	lfd "github.com/rmera/golfd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the values of one grid.
type Summary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

func (S Summary) String() string {
	return fmt.Sprintf("min %g max %g mean %g stddev %g", S.Min, S.Max, S.Mean, S.StdDev)
}

// values returns the elements of g in row-major order.
func values(g mat.Matrix) []float64 {
	r, c := g.Dims()
	ret := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ret = append(ret, g.At(i, j))
		}
	}
	return ret
}

// Summarize returns the summary statistics of the values in g.
// StdDev is the sample (unbiased) standard deviation, 0 for a single value.
func Summarize(g mat.Matrix) Summary {
	v := values(g)
	var S Summary
	S.Min = floats.Min(v)
	S.Max = floats.Max(v)
	if len(v) == 1 {
		S.Mean = v[0]
		return S
	}
	S.Mean, S.StdDev = stat.MeanStdDev(v, nil)
	return S
}

// FrameSummary holds the summaries of both grids of a frame.
type FrameSummary struct {
	Index int     `json:"frame"`
	A     Summary `json:"a"`
	B     Summary `json:"b"`
}

// SummarizeFrame summarizes both grids of F.
func SummarizeFrame(F *lfd.Frame) FrameSummary {
	return FrameSummary{Index: F.Index, A: Summarize(F.A), B: Summarize(F.B)}
}

// AutoBounds returns display bounds spanning the values of each grid of F.
// A grid with a single value gets a range of width 1 around it, so colours can
// still be assigned.
func AutoBounds(F *lfd.Frame) lfd.Bounds {
	a := Summarize(F.A)
	b := Summarize(F.B)
	var ret lfd.Bounds
	ret.VMin1, ret.VMax1 = widen(a.Min, a.Max)
	ret.VMin2, ret.VMax2 = widen(b.Min, b.Max)
	return ret
}

func widen(min, max float64) (float64, float64) {
	if max > min {
		return min, max
	}
	return min - 0.5, max + 0.5
}
