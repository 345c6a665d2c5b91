/*
 * plot.go, part of jfsd.
 *
 * Copyright 2025 The jfsd authors
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

// Package jfsdplot draws the pair correlation maps and the log-log series
// of the post-processing as PNG images.
package jfsdplot

import (
	"image/color"
	"math"

	"github.com/jfsdtools/jfsd"
	"github.com/jfsdtools/jfsd/histo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Colors is the number of colors in the heat map palettes.
const Colors = 255

// Size is the edge of the saved images.
var Size = 5 * vg.Inch

// gridXYZ adapts a histo.Grid to plotter.GridXYZ. Columns go along x.
type gridXYZ struct {
	g      *histo.Grid
	xs, ys []float64
}

func newGridXYZ(g *histo.Grid) *gridXYZ {
	return &gridXYZ{g: g, xs: g.XCenters(), ys: g.YCenters()}
}

func (G *gridXYZ) Dims() (c, r int) { return len(G.xs), len(G.ys) }

func (G *gridXYZ) Z(c, r int) float64 { return G.g.At(c, r) }

func (G *gridXYZ) X(c int) float64 { return G.xs[c] }

func (G *gridXYZ) Y(r int) float64 { return G.ys[r] }

// mapPalette returns the palette for a map with values in [min, max], and
// the range the heat map should cover. A map with negative values gets a
// diverging palette centered at zero.
func mapPalette(min, max float64) (palette.Palette, float64, float64) {
	if min >= 0 {
		return palette.Heat(Colors, 1), min, max
	}
	a := math.Max(-min, max)
	if a == 0 {
		a = 1
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-a)
	cm.SetMax(a)
	return cm.Palette(Colors), -a, a
}

// HeatMap saves the values of g as a heat map to the PNG file path.
func HeatMap(g *histo.Grid, title, path string) error {
	raw := g.Dense().RawMatrix().Data
	if len(raw) == 0 {
		return jfsd.Errorf(jfsd.ErrInvalidDomain, "jfsdplot.HeatMap", "empty grid")
	}
	min, max := floats.Min(raw), floats.Max(raw)
	if floats.HasNaN(raw) {
		return jfsd.Errorf(jfsd.ErrInvalidDomain, "jfsdplot.HeatMap", "the grid has NaN values")
	}
	pal, lo, hi := mapPalette(min, max)
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	h := plotter.NewHeatMap(newGridXYZ(g), pal)
	if hi <= lo {
		hi = lo + 1
	}
	h.Min, h.Max = lo, hi
	p.Add(h)
	xe, ye := g.XEdges(), g.YEdges()
	p.X.Min, p.X.Max = xe[0], xe[len(xe)-1]
	p.Y.Min, p.Y.Max = ye[0], ye[len(ye)-1]
	return p.Save(Size, Size, path)
}

// positive returns the points of x and y where both are positive and finite.
func positive(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if x[i] > 0 && y[i] > 0 && !math.IsInf(x[i], 0) && !math.IsInf(y[i], 0) {
			pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
		}
	}
	return pts
}

// LogLog saves a log-log line plot of y against x to the PNG file path.
// Points where x or y are not positive, including missing values, are left
// out.
func LogLog(x, y []float64, title, xlabel, ylabel, path string) error {
	const caller = "jfsdplot.LogLog"
	if len(x) != len(y) {
		return jfsd.Errorf(jfsd.ErrShapeMismatch, caller, "%d x values and %d y values", len(x), len(y))
	}
	pts := positive(x, y)
	if len(pts) == 0 {
		return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "no positive points to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Color = color.RGBA{R: 200, B: 40, A: 255}
	l.LineStyle.Width = vg.Points(1.5)
	p.Add(l, plotter.NewGrid())
	widen(&p.X)
	widen(&p.Y)
	return p.Save(Size, Size, path)
}

// widen opens a log axis that holds a single value.
func widen(a *plot.Axis) {
	if a.Min == a.Max {
		a.Min /= 2
		a.Max *= 2
	}
}
