/*
 * frame.go, part of golfd.
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

package lfd

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Frame is one time sample of the simulation: the concentration grids of
// compounds A and B, both rows x columns.
type Frame struct {
	Index int //0-based position of the frame in the file
	A     *mat.Dense
	B     *mat.Dense
}

// NewFrame returns a zeroed frame with rows x columns grids.
func NewFrame(rows, columns int) *Frame {
	return &Frame{
		A: mat.NewDense(rows, columns, nil),
		B: mat.NewDense(rows, columns, nil),
	}
}

// Dims returns the shape of the grids in the frame.
func (F *Frame) Dims() (rows, columns int) {
	return F.A.Dims()
}

// Grid returns the concentration grid for compound 1 (A) or 2 (B).
// It panics for any other value.
func (F *Frame) Grid(compound int) *mat.Dense {
	switch compound {
	case 1:
		return F.A
	case 2:
		return F.B
	default:
		panic(fmt.Sprintf("lfd: no compound %d in frame", compound))
	}
}

//fits tells whether the grids of F can hold rows x columns values.
func (F *Frame) fits(rows, columns int) bool {
	if F.A == nil || F.B == nil {
		return false
	}
	r, c := F.A.Dims()
	r2, c2 := F.B.Dims()
	return r == rows && c == columns && r2 == rows && c2 == columns
}

// Bounds are the display ranges used to map concentrations to colours.
// They mean nothing to the reader itself.
type Bounds struct {
	VMin1, VMax1 float64
	VMin2, VMax2 float64
}

// Of returns the range for compound 1 (A) or 2 (B).
func (b Bounds) Of(compound int) (vmin, vmax float64) {
	if compound == 2 {
		return b.VMin2, b.VMax2
	}
	return b.VMin1, b.VMax1
}

// Empty is true if neither range has any width.
func (b Bounds) Empty() bool {
	return b.VMin1 >= b.VMax1 && b.VMin2 >= b.VMax2
}

func (b Bounds) String() string {
	return fmt.Sprintf("vmin1 = %f\nvmax1 = %f\nvmin2 = %f\nvmax2 = %f", b.VMin1, b.VMax1, b.VMin2, b.VMax2)
}
