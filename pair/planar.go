/*
 * planar.go, part of jfsd
 *
 * Copyright 2025 The jfsd authors
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

// Package pair contains pair correlation functions: the planar g(x,y) in
// a thin slice around each particle, and the radial distribution function.
package pair

import (
	"math"

	"github.com/jfsdtools/jfsd"
	"github.com/jfsdtools/jfsd/histo"
	v3 "github.com/jfsdtools/jfsd/v3"
	"gonum.org/v1/gonum/floats"
)

// PlanarOptions are the settings of a g(x,y) calculation.
type PlanarOptions struct {
	SliceWidth float64 //only pairs with |dz| below this are counted
	NBins      int     //edges per axis
	Xmax       float64 //the grid covers [-Xmax, Xmax]
	Ymax       float64 //and [-Ymax, Ymax]
}

// DefaultPlanarOptions returns the options used when none are given.
func DefaultPlanarOptions() PlanarOptions {
	return PlanarOptions{SliceWidth: 1, NBins: 100, Xmax: 10, Ymax: 10}
}

func (o PlanarOptions) check(boxLength float64, caller string) error {
	switch {
	case o.NBins < 2:
		return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "at least 2 edges per axis are needed, got %d", o.NBins)
	case o.SliceWidth <= 0:
		return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "the slice width must be positive, got %g", o.SliceWidth)
	case o.Xmax <= 0 || o.Ymax <= 0:
		return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "Xmax and Ymax must be positive, got %g and %g", o.Xmax, o.Ymax)
	case o.Xmax > boxLength/2 || o.Ymax > boxLength/2:
		return jfsd.Errorf(jfsd.ErrOutOfRange, caller, "Xmax (%g) and Ymax (%g) can't be larger than half the box (%g)", o.Xmax, o.Ymax, boxLength/2)
	}
	return nil
}

// Planar returns the g(x,y) of the frame pos: for every particle i, the
// density of the in-plane displacements r_i - r_j of the other particles
// j with |z_i - z_j| < SliceWidth, averaged over the particles.
// Each per-particle density integrates to 1 over the grid, except when no
// pair falls in it, in which case it is zero. Displacements are not corrected
// for periodic images.
func Planar(pos *v3.Matrix, opts PlanarOptions, boxLength float64) (*histo.Grid, error) {
	const caller = "Planar"
	if err := opts.check(boxLength, caller); err != nil {
		return nil, err
	}
	xedges := floats.Span(make([]float64, opts.NBins), -opts.Xmax, opts.Xmax)
	yedges := floats.Span(make([]float64, opts.NBins), -opts.Ymax, opts.Ymax)
	ret := histo.NewGrid(xedges, yedges)
	single := histo.NewGrid(xedges, yedges)
	n := pos.NVecs()
	slab := make([]int, 0, n)
	buf := v3.Zeros(n)
	dx := make([]float64, n)
	dy := make([]float64, n)
	for i := 0; i < n; i++ {
		ri := pos.Vec(i)
		slab = slab[:0]
		for j := 0; j < n; j++ {
			if j != i && math.Abs(ri[2]-pos.At(j, 2)) < opts.SliceWidth {
				slab = append(slab, j)
			}
		}
		if len(slab) == 0 {
			continue
		}
		neigh := buf.View(0, len(slab))
		neigh.SomeVecs(pos, slab)
		for k := range slab {
			rj := neigh.Vec(k)
			dx[k], dy[k] = ri[0]-rj[0], ri[1]-rj[1]
		}
		if _, err := single.Density(dx[:len(slab)], dy[:len(slab)]); err != nil {
			return nil, jfsd.ErrDecorate(err, caller)
		}
		ret.Add(ret, single)
	}
	ret.Scale(1 / float64(n))
	return ret, nil
}

// PlanarFrame returns the g(x,y) of the given frame of t, where lastFrame is
// the index of the last valid frame. If subtractRest is true, the g(x,y) of
// the first frame is substracted from the result, which is then signed.
func PlanarFrame(t *jfsd.Trajectory, frame, lastFrame int, opts PlanarOptions, boxLength float64, subtractRest bool) (*histo.Grid, error) {
	const caller = "PlanarFrame"
	if frame > lastFrame || frame < 0 || frame >= t.NFrames() {
		return nil, jfsd.Errorf(jfsd.ErrOutOfRange, caller, "frame %d requested, the last frame has index %d", frame, lastFrame)
	}
	G, err := Planar(t.Frame(frame), opts, boxLength)
	if err != nil {
		return nil, jfsd.ErrDecorate(err, caller)
	}
	if !subtractRest {
		return G, nil
	}
	rest, err := Planar(t.Frame(0), opts, boxLength)
	if err != nil {
		return nil, jfsd.ErrDecorate(err, caller)
	}
	G.Sub(G, rest)
	return G, nil
}
