package pair

import (
	"math"

	"github.com/jfsdtools/jfsd"
	"github.com/jfsdtools/jfsd/histo"
	v3 "github.com/jfsdtools/jfsd/v3"
	"gonum.org/v1/gonum/floats"
)

// RDF is a radial distribution function.
type RDF struct {
	R []float64 //bin centers
	G []float64
	//the raw pair count histogram
	Counts *histo.Data
}

// Radial returns the radial distribution function of the frame pos in a
// periodic cubic box of edge boxLength, with nBins bins between 0 and rMax.
// Distances use the minimum image convention. The counts in each shell are
// divided by N, the density of the other particles, (N-1)/V, and the volume
// of the shell, so an ideal gas gives 1 at any N.
func Radial(pos *v3.Matrix, boxLength float64, nBins int, rMax float64) (*RDF, error) {
	const caller = "Radial"
	switch {
	case nBins < 1:
		return nil, jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "at least 1 bin is needed, got %d", nBins)
	case boxLength <= 0 || rMax <= 0:
		return nil, jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "the box (%g) and rMax (%g) must be positive", boxLength, rMax)
	case pos.NVecs() < 2:
		return nil, jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "at least 2 particles are needed, got %d", pos.NVecs())
	case rMax > boxLength/2:
		return nil, jfsd.Errorf(jfsd.ErrOutOfRange, caller, "rMax (%g) can't be larger than half the box (%g)", rMax, boxLength/2)
	}
	n := pos.NVecs()
	raw := pos.Raw()
	dists := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		ri := raw[3*i : 3*i+3]
		for j := i + 1; j < n; j++ {
			rj := raw[3*j : 3*j+3]
			var r2 float64
			for k := 0; k < 3; k++ {
				d := jfsd.MinimumImage(ri[k]-rj[k], boxLength)
				r2 += d * d
			}
			dists = append(dists, math.Sqrt(r2))
		}
	}
	edges := floats.Span(make([]float64, nBins+1), 0, rMax)
	D := histo.NewData(edges, dists)
	ret := &RDF{R: D.Centers(), G: make([]float64, nBins), Counts: D}
	rho := float64(n-1) / (boxLength * boxLength * boxLength)
	vp := (4.0 / 3.0) * math.Pi
	for i, c := range D.View() {
		vol := vp * (math.Pow(edges[i+1], 3) - math.Pow(edges[i], 3))
		//every unordered pair counts once for each of its 2 particles.
		ret.G[i] = 2 * c / (float64(n) * rho * vol)
	}
	return ret, nil
}

// RadialFrame is Radial on the given frame of t, where lastFrame is the
// index of the last valid frame.
func RadialFrame(t *jfsd.Trajectory, frame, lastFrame int, boxLength float64, nBins int, rMax float64) (*RDF, error) {
	if frame > lastFrame || frame < 0 || frame >= t.NFrames() {
		return nil, jfsd.Errorf(jfsd.ErrOutOfRange, "RadialFrame", "frame %d requested, the last frame has index %d", frame, lastFrame)
	}
	ret, err := Radial(t.Frame(frame), boxLength, nBins, rMax)
	return ret, jfsd.ErrDecorate(err, "RadialFrame")
}
