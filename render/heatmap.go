/*
 * heatmap.go, part of golfd.
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

package render

import (
	"fmt"
	"image/color"

	"github.com/rmera/golfd/colorscheme"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// paletteSize is the number of colours a heatmap uses.
const paletteSize = 256

// Extent sets the data coordinates of the outer edges of a grid. Without it,
// cell (i, j) is centered at x=j, y=i.
type Extent struct {
	XMin, XMax float64
	YMin, YMax float64
}

// grid shows a matrix as a plotter.GridXYZ, with row 0 at the bottom.
type grid struct {
	m      mat.Matrix
	extent *Extent
}

func (g grid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g grid) Z(c, r int) float64 {
	return g.m.At(r, c)
}

func (g grid) X(c int) float64 {
	if g.extent == nil {
		return float64(c)
	}
	_, cols := g.m.Dims()
	step := (g.extent.XMax - g.extent.XMin) / float64(cols)
	return g.extent.XMin + (float64(c)+0.5)*step
}

func (g grid) Y(r int) float64 {
	if g.extent == nil {
		return float64(r)
	}
	rows, _ := g.m.Dims()
	step := (g.extent.YMax - g.extent.YMin) / float64(rows)
	return g.extent.YMin + (float64(r)+0.5)*step
}

// edges returns the data coordinates of the outer edges of the grid.
func (g grid) edges() Extent {
	if g.extent != nil {
		return *g.extent
	}
	rows, cols := g.m.Dims()
	return Extent{XMin: -0.5, XMax: float64(cols) - 0.5, YMin: -0.5, YMax: float64(rows) - 0.5}
}

// Panel is one heatmap, with its colour bar, in a figure.
type Panel struct {
	Title string
	Data  mat.Matrix
	//Values below VMin get the first colour of the scheme, values above VMax the last one.
	VMin, VMax float64
	Scheme     string
	Extent     *Extent
	//Draw a faint white grid over the heatmap.
	Grid bool
}

// gridColor is white at 20% opacity.
var gridColor = color.NRGBA{R: 255, G: 255, B: 255, A: 51}

// plots builds the heatmap plot and the colour bar plot of the panel.
func (P Panel) plots() (heat, bar *plot.Plot, err error) {
	if P.Data == nil {
		return nil, nil, fmt.Errorf("render: panel %q has no data", P.Title)
	}
	g, err := colorscheme.Get(P.Scheme)
	if err != nil {
		return nil, nil, err
	}
	vmin, vmax := P.VMin, P.VMax
	if !(vmax > vmin) {
		vmax = vmin + 1
	}
	pal := colorscheme.Palette(g, paletteSize)
	colors := pal.Colors()
	data := grid{m: P.Data, extent: P.Extent}
	h := plotter.NewHeatMap(data, pal)
	h.Min = vmin
	h.Max = vmax
	h.Underflow = colors[0]
	h.Overflow = colors[len(colors)-1]
	h.Rasterized = true

	heat = plot.New()
	heat.Title.Text = P.Title
	heat.Title.Padding = vg.Millimeter
	heat.Add(h)
	if P.Grid {
		gr := plotter.NewGrid()
		gr.Vertical.Color = gridColor
		gr.Horizontal.Color = gridColor
		heat.Add(gr)
	}
	e := data.edges()
	heat.X.Min, heat.X.Max = e.XMin, e.XMax
	heat.Y.Min, heat.Y.Max = e.YMin, e.YMax

	cm := colorscheme.NewColorMap(g)
	cm.SetMin(vmin)
	cm.SetMax(vmax)
	bar = plot.New()
	//an empty title keeps the bar level with the heatmap.
	bar.Title.Text = " "
	bar.Title.Padding = vg.Millimeter
	bar.HideX()
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: paletteSize})
	return heat, bar, nil
}
