/*
 * figure.go, part of golfd.
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

// Package render draws concentration grids as heatmaps with colour bars, alone or
// next to their Fourier transforms, and writes them as PNG or JPEG images or as
// MJPEG movies.
package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	lfd "github.com/rmera/golfd"
	"github.com/rmera/golfd/spectral"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DPI is the resolution figures are rendered at unless told otherwise.
const DPI = 144

// Pixels converts a size in pixels at dpi to a length.
func Pixels(px float64, dpi int) vg.Length {
	return vg.Length(px/float64(dpi)) * vg.Inch
}

// Figure is a grid of panels, filled row by row.
type Figure struct {
	Rows, Cols    int
	Panels        []Panel
	Width, Height vg.Length
	DPI           int
}

// Image draws the figure.
func (F *Figure) Image() (image.Image, error) {
	if F.Rows <= 0 || F.Cols <= 0 {
		return nil, fmt.Errorf("render: figure with %d rows and %d columns", F.Rows, F.Cols)
	}
	if len(F.Panels) > F.Rows*F.Cols {
		return nil, fmt.Errorf("render: %d panels don't fit in %dx%d", len(F.Panels), F.Rows, F.Cols)
	}
	dpi := F.DPI
	if dpi <= 0 {
		dpi = DPI
	}
	img := vgimg.NewWith(vgimg.UseWH(F.Width, F.Height), vgimg.UseDPI(dpi))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      F.Rows,
		Cols:      F.Cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	for i, P := range F.Panels {
		heat, bar, err := P.plots()
		if err != nil {
			return nil, err
		}
		cell := tiles.At(dc, i%F.Cols, i/F.Cols)
		width := cell.Max.X - cell.Min.X
		barWidth := width * 0.15
		heat.Draw(draw.Crop(cell, 0, -barWidth, 0, 0))
		bar.Draw(draw.Crop(cell, width-barWidth, 0, 0, 0))
	}
	return img.Image(), nil
}

// WritePNG draws the figure and writes it to w as a PNG image.
func (F *Figure) WritePNG(w io.Writer) error {
	img, err := F.Image()
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteJPEG draws the figure and writes it to w as a JPEG image.
func (F *Figure) WriteJPEG(w io.Writer, quality int) error {
	img, err := F.Image()
	if err != nil {
		return err
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// Save writes the figure to filename, as PNG or JPEG depending on the extension.
func (F *Figure) Save(filename string) error {
	if _, err := imageFormat(filename); err != nil {
		return err
	}
	img, err := F.Image()
	if err != nil {
		return err
	}
	return SaveImage(img, filename, DefaultQuality)
}

// DefaultQuality is the JPEG quality used by Figure.Save.
const DefaultQuality = 95

func imageFormat(filename string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	default:
		return "", fmt.Errorf("render: can't tell the image format of %s", filename)
	}
}

// SaveImage writes img to filename, as PNG or JPEG (with the given quality)
// depending on the extension.
func SaveImage(img image.Image, filename string, quality int) (err error) {
	format, err := imageFormat(filename)
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if err2 := f.Close(); err == nil {
			err = err2
		}
	}()
	if format == "png" {
		return png.Encode(f, img)
	}
	return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
}

// Schemes names the colour schemes used for each kind of panel.
type Schemes struct {
	A, B, FFT string
}

// DefaultSchemes are Spectral for A and the transforms, and PiYG for B.
var DefaultSchemes = Schemes{A: "Spectral", B: "PiYG", FFT: "Spectral"}

func (s Schemes) orDefault() Schemes {
	if s.A == "" {
		s.A = DefaultSchemes.A
	}
	if s.B == "" {
		s.B = DefaultSchemes.B
	}
	if s.FFT == "" {
		s.FFT = DefaultSchemes.FFT
	}
	return s
}

// FramePair returns a figure with the A and B grids of F side by side,
// 1920x640 pixels at DPI.
func FramePair(F *lfd.Frame, b lfd.Bounds, s Schemes) *Figure {
	s = s.orDefault()
	return &Figure{
		Rows:   1,
		Cols:   2,
		Width:  Pixels(1920, DPI),
		Height: Pixels(640, DPI),
		DPI:    DPI,
		Panels: []Panel{
			{Title: "Concentration A", Data: F.A, VMin: b.VMin1, VMax: b.VMax1, Scheme: s.A},
			{Title: "Concentration B", Data: F.B, VMin: b.VMin2, VMax: b.VMax2, Scheme: s.B},
		},
	}
}

// FourierQuad returns a 2x2 figure, 1920x1920 pixels at DPI, with the A and B grids of F
// on top and the magnitudes of their centered Fourier transforms below. The transforms
// are shown between 0 and fftMax, with frequencies centered on zero.
func FourierQuad(F *lfd.Frame, b lfd.Bounds, s Schemes, fftMax float64) *Figure {
	s = s.orDefault()
	rows, cols := F.Dims()
	ext := &Extent{
		XMin: -float64(cols) / 2, XMax: float64(cols) / 2,
		YMin: -float64(rows) / 2, YMax: float64(rows) / 2,
	}
	return &Figure{
		Rows:   2,
		Cols:   2,
		Width:  Pixels(1920, DPI),
		Height: Pixels(1920, DPI),
		DPI:    DPI,
		Panels: []Panel{
			{Title: "Concentration A", Data: F.A, VMin: b.VMin1, VMax: b.VMax1, Scheme: s.A},
			{Title: "Concentration B", Data: F.B, VMin: b.VMin2, VMax: b.VMax2, Scheme: s.B},
			{Title: "2D Fourier Transform A", Data: spectral.ShiftedMagnitude(F.A), VMin: 0, VMax: fftMax, Scheme: s.FFT, Extent: ext, Grid: true},
			{Title: "2D Fourier Transform B", Data: spectral.ShiftedMagnitude(F.B), VMin: 0, VMax: fftMax, Scheme: s.FFT, Extent: ext, Grid: true},
		},
	}
}
