/*
 * spectral.go, part of golfd.
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

// Package spectral computes two-dimensional discrete Fourier transforms of
// concentration grids, for the Fourier panels of the figures.
package spectral

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// FFT2 returns the unnormalized 2D discrete Fourier transform of g,
// computed as 1D transforms of every row followed by 1D transforms of every column.
func FFT2(g mat.Matrix) *mat.CDense {
	r, c := g.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, complex(g.At(i, j), 0))
		}
	}
	transform(out, false)
	return out
}

// IFFT2 returns the inverse of FFT2, scaled so IFFT2(FFT2(g)) gives g back
// (with a zero imaginary part, up to rounding).
func IFFT2(c *mat.CDense) *mat.CDense {
	r, cols := c.Dims()
	out := mat.NewCDense(r, cols, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, c.At(i, j))
		}
	}
	transform(out, true)
	scale := complex(1/float64(r*cols), 0)
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, out.At(i, j)*scale)
		}
	}
	return out
}

// transform applies the (inverse, if inverse is true) 1D transform to the rows
// and then to the columns of m, in place.
func transform(m *mat.CDense, inverse bool) {
	r, c := m.Dims()
	apply := func(f *fourier.CmplxFFT, seq []complex128) {
		if inverse {
			f.Sequence(seq, seq)
		} else {
			f.Coefficients(seq, seq)
		}
	}
	//a transform of length 1 is the identity.
	if c > 1 {
		row := make([]complex128, c)
		f := fourier.NewCmplxFFT(c)
		for i := 0; i < r; i++ {
			for j := range row {
				row[j] = m.At(i, j)
			}
			apply(f, row)
			for j, v := range row {
				m.Set(i, j, v)
			}
		}
	}
	if r > 1 {
		col := make([]complex128, r)
		f := fourier.NewCmplxFFT(r)
		for j := 0; j < c; j++ {
			for i := range col {
				col[i] = m.At(i, j)
			}
			apply(f, col)
			for i, v := range col {
				m.Set(i, j, v)
			}
		}
	}
}

// Shift moves the zero-frequency term of a transform to the center, at
// (rows/2, columns/2), rolling each axis by half its length. Odd sizes work
// like numpy's fftshift.
func Shift(c *mat.CDense) *mat.CDense {
	r, cols := c.Dims()
	out := mat.NewCDense(r, cols, nil)
	for i := 0; i < r; i++ {
		ii := (i + r/2) % r
		for j := 0; j < cols; j++ {
			out.Set(ii, (j+cols/2)%cols, c.At(i, j))
		}
	}
	return out
}

// Magnitude returns the element-wise absolute value of c.
func Magnitude(c *mat.CDense) *mat.Dense {
	r, cols := c.Dims()
	out := mat.NewDense(r, cols, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, cmplx.Abs(c.At(i, j)))
		}
	}
	return out
}

// ShiftedMagnitude is the magnitude of the centered transform of g, which is
// what the Fourier panels show.
func ShiftedMagnitude(g mat.Matrix) *mat.Dense {
	return Magnitude(Shift(FFT2(g)))
}
