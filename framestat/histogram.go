/*
 * histogram.go, part of golfd.
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

package framestat

import (
	"fmt"
	"math"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Histogram counts grid values in bins. Bin i holds the values v with
// dividers[i] <= v < dividers[i+1]. Values out of the dividers are counted
// apart, as underflow or overflow.
type Histogram struct {
	dividers   []float64
	counts     []float64
	under      int
	over       int
	total      int
	normalized bool
}

// Dividers returns n+1 evenly spaced dividers for n bins between min and max.
// The last divider is nudged past max, so max itself falls in the last bin.
// If max is not above min, the range is widened by 0.5 on each side.
func Dividers(min, max float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	min, max = widen(min, max)
	d := make([]float64, n+1)
	floats.Span(d, min, max)
	d[n] = math.Nextafter(max, math.Inf(1))
	return d
}

// NewHistogram returns an empty histogram with the given dividers, which must be
// at least 2 and strictly increasing. The slice is copied.
func NewHistogram(dividers []float64) (*Histogram, error) {
	if len(dividers) < 2 {
		return nil, fmt.Errorf("framestat: a histogram needs at least 2 dividers, got %d", len(dividers))
	}
	for i := 1; i < len(dividers); i++ {
		if dividers[i] <= dividers[i-1] {
			return nil, fmt.Errorf("framestat: dividers must be strictly increasing")
		}
	}
	H := new(Histogram)
	H.dividers = make([]float64, len(dividers))
	copy(H.dividers, dividers)
	H.counts = make([]float64, len(dividers)-1)
	return H, nil
}

// AddData adds points to the histogram. NaNs only count towards the total.
// It panics if the histogram was normalized.
func (H *Histogram) AddData(points ...float64) {
	if H.normalized {
		panic("framestat: adding data to a normalized histogram")
	}
	in := make([]float64, 0, len(points))
	for _, v := range points {
		switch {
		case math.IsNaN(v):
		case v < H.dividers[0]:
			H.under++
		case v >= H.dividers[len(H.dividers)-1]:
			H.over++
		default:
			in = append(in, v)
		}
	}
	H.total += len(points)
	if len(in) == 0 {
		return
	}
	sort.Float64s(in)
	bins := make([]float64, len(H.counts))
	stat.Histogram(bins, H.dividers, in, nil)
	floats.Add(H.counts, bins)
}

// Add adds all the values of g.
func (H *Histogram) Add(g mat.Matrix) {
	H.AddData(values(g)...)
}

// Normalize turns the counts into fractions of all the points added, including
// under and overflows. A normalized histogram can't take more data.
func (H *Histogram) Normalize() {
	if H.normalized || H.total == 0 {
		H.normalized = true
		return
	}
	floats.Scale(1/float64(H.total), H.counts)
	H.normalized = true
}

// Normalized returns true if Normalize has been called.
func (H *Histogram) Normalized() bool {
	return H.normalized
}

// Counts returns a copy of the bin counts.
func (H *Histogram) Counts() []float64 {
	ret := make([]float64, len(H.counts))
	copy(ret, H.counts)
	return ret
}

// CopyDividers returns a copy of the dividers.
func (H *Histogram) CopyDividers() []float64 {
	ret := make([]float64, len(H.dividers))
	copy(ret, H.dividers)
	return ret
}

// Outside returns the number of points below the first divider and at or
// above the last one.
func (H *Histogram) Outside() (under, over int) {
	return H.under, H.over
}

// Total returns the number of points added.
func (H *Histogram) Total() int {
	return H.total
}

func (H *Histogram) String() string {
	var b strings.Builder
	for i, c := range H.counts {
		fmt.Fprintf(&b, "[%9.4g, %9.4g) %g\n", H.dividers[i], H.dividers[i+1], c)
	}
	fmt.Fprintf(&b, "under %d over %d total %d", H.under, H.over, H.total)
	return b.String()
}

type jsonHistogram struct {
	Dividers   []float64 `json:"dividers"`
	Counts     []float64 `json:"counts"`
	Under      int       `json:"under"`
	Over       int       `json:"over"`
	Total      int       `json:"total"`
	Normalized bool      `json:"normalized"`
}

func (H *Histogram) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonHistogram{
		Dividers:   H.dividers,
		Counts:     H.counts,
		Under:      H.under,
		Over:       H.over,
		Total:      H.total,
		Normalized: H.normalized,
	})
}

func (H *Histogram) UnmarshalJSON(b []byte) error {
	var a jsonHistogram
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Counts)+1 {
		return fmt.Errorf("framestat: %d dividers for %d bins", len(a.Dividers), len(a.Counts))
	}
	H.dividers = a.Dividers
	H.counts = a.Counts
	H.under = a.Under
	H.over = a.Over
	H.total = a.Total
	H.normalized = a.Normalized
	return nil
}
