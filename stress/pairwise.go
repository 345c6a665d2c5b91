/*
 * pairwise.go, part of jfsd
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

// Package stress computes the stress of a suspension, either from the
// pairwise repulsion between particles or from the stresslets written by
// the simulation.
package stress

import (
	"math"

	"github.com/jfsdtools/jfsd"
	"github.com/jfsdtools/jfsd/histo"
	v3 "github.com/jfsdtools/jfsd/v3"
	"gonum.org/v1/gonum/mat"
)

// Sigma is the contact distance of the repulsive potential, twice the
// particle radius plus a 0.1% margin.
const Sigma = 2 * 1.001

// DefaultBins is the number of edges used to bin stress series in time.
const DefaultBins = 80

// Stiffness returns the spring constant of the repulsion for the timestep dt.
func Stiffness(dt float64) float64 {
	return 2500 / dt
}

// PairForce returns the force that a particle i exerts on a particle j, where
// d = r_i - r_j and k is the stiffness. The force is k(1 - Sigma/r) d/r for
// 0 < r < Sigma and zero otherwise. A zero distance is treated as an
// infinite one. Inside the cutoff the force points from i to j.
func PairForce(d [3]float64, k float64) [3]float64 {
	r := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	if r == 0 || r >= Sigma {
		return [3]float64{}
	}
	f := k * (1 - Sigma/r) / r
	return [3]float64{f * d[0], f * d[1], f * d[2]}
}

// FrameStress returns the particle averaged contact stress d⊗F of the
// frame pos, summed over every ordered pair of particles, normalized by
// N/V/kT. Distances are not corrected for periodic images.
// A single particle gives a zero tensor.
func FrameStress(pos *v3.Matrix, p *jfsd.Params) *mat.SymDense {
	k := Stiffness(p.Dt())
	n := pos.NVecs()
	raw := pos.Raw()
	//xx, xy, xz, yy, yz, zz
	var acc [6]float64
	var d [3]float64
	for i := 0; i < n; i++ {
		ri := raw[3*i : 3*i+3]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			rj := raw[3*j : 3*j+3]
			d[0], d[1], d[2] = ri[0]-rj[0], ri[1]-rj[1], ri[2]-rj[2]
			F := PairForce(d, k)
			acc[0] += d[0] * F[0]
			acc[1] += d[0] * F[1]
			acc[2] += d[0] * F[2]
			acc[3] += d[1] * F[1]
			acc[4] += d[1] * F[2]
			acc[5] += d[2] * F[2]
		}
	}
	f := p.StressScale() / float64(n)
	return mat.NewSymDense(3, []float64{
		acc[0] * f, acc[1] * f, acc[2] * f,
		acc[1] * f, acc[3] * f, acc[4] * f,
		acc[2] * f, acc[4] * f, acc[5] * f,
	})
}

// ParticleStressResult contains the contact stress of a run.
type ParticleStressResult struct {
	Tensors []*mat.SymDense //one per frame
	Strain  []float64       //strain of each frame, time times shear rate
	XY      []float64       //xy component of each tensor
	Binned  *histo.Series   //XY, log-binned in time, with strain centers
}

// ParticleStress computes the contact stress of every frame of t, one frame
// at a time, and bins its xy component with nEdges logarithmic edges over
// the frame times. The centers of the binned series are strains.
func ParticleStress(t *jfsd.Trajectory, p *jfsd.Params, nEdges int) (*ParticleStressResult, error) {
	const caller = "ParticleStress"
	if t.NFrames() != p.Steps() || t.Len() != p.N() {
		return nil, jfsd.Errorf(jfsd.ErrShapeMismatch, caller, "trajectory of %d frames and %d particles, parameters for %d and %d", t.NFrames(), t.Len(), p.Steps(), p.N())
	}
	ret := &ParticleStressResult{
		Tensors: make([]*mat.SymDense, 0, t.NFrames()),
		Strain:  p.Time(),
		XY:      make([]float64, 0, t.NFrames()),
	}
	time := p.Time()
	coord := v3.Zeros(t.Len())
	traj := t.Reader()
	for traj.Readable() {
		if err := traj.Next(coord); err != nil {
			return nil, jfsd.ErrDecorate(err, caller)
		}
		S := FrameStress(coord, p)
		ret.Tensors = append(ret.Tensors, S)
		ret.XY = append(ret.XY, S.At(0, 1))
	}
	for i := range ret.Strain {
		ret.Strain[i] *= p.ShearRate()
	}
	var err error
	ret.Binned, err = histo.LogBinStat(time, ret.XY, nEdges)
	if err != nil {
		return nil, jfsd.ErrDecorate(err, caller)
	}
	ret.Binned.ScaleCenters(p.ShearRate())
	return ret, nil
}
