package stress

import (
	"github.com/jfsdtools/jfsd"
	"github.com/jfsdtools/jfsd/histo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// TensorFromStresslet returns the symmetric 3x3 tensor with the 5 independent
// components s (xx, xy, xz, yy, yz), and zz = -(xx+yy), so the trace is zero.
func TensorFromStresslet(s [jfsd.StressletComponents]float64) *mat.SymDense {
	xx, xy, xz, yy, yz := s[jfsd.SXX], s[jfsd.SXY], s[jfsd.SXZ], s[jfsd.SYY], s[jfsd.SYZ]
	zz := -xx - yy
	return mat.NewSymDense(3, []float64{
		xx, xy, xz,
		xy, yy, yz,
		xz, yz, zz,
	})
}

// StressletRow is the particle averaged, normalized stress of one frame.
type StressletRow struct {
	Time   float64 //in units of the Brownian time
	Strain float64 //Time times Pe
	Tensor *mat.SymDense
}

// StressletResult contains the stress of a run computed from its stresslets.
// The binned series have time/τB centers. Their strains are the centers times Pe.
type StressletResult struct {
	Raw            []StressletRow
	XY, XX, YY, ZZ *histo.Series
	Pe             float64
}

// Strains returns the strains of the centers of the binned series.
func (R *StressletResult) Strains() []float64 {
	ret := make([]float64, len(R.XY.Centers))
	floats.ScaleTo(ret, R.Pe, R.XY.Centers)
	return ret
}

// AverageStresslet averages the stresslets of s over the particles in every
// frame, normalizes them by N/V/kT, and bins the xy, xx, yy and zz components
// in nEdges logarithmic edges over the frame times.
func AverageStresslet(s *jfsd.Stresslet, p *jfsd.Params, nEdges int) (*StressletResult, error) {
	const caller = "AverageStresslet"
	if s.NFrames() != p.Steps() || s.Len() != p.N() {
		return nil, jfsd.Errorf(jfsd.ErrShapeMismatch, caller, "stresslet of %d frames and %d particles, parameters for %d and %d", s.NFrames(), s.Len(), p.Steps(), p.N())
	}
	scale := p.StressScale()
	tb := p.BrownianTime()
	time := p.Time()
	xy := make([]float64, s.NFrames())
	xx := make([]float64, s.NFrames())
	yy := make([]float64, s.NFrames())
	zz := make([]float64, s.NFrames())
	ret := &StressletResult{Raw: make([]StressletRow, s.NFrames()), Pe: p.Pe()}
	col := make([]float64, s.Len())
	for f := 0; f < s.NFrames(); f++ {
		var av [jfsd.StressletComponents]float64
		frame := s.Frame(f)
		for c := range av {
			mat.Col(col, c, frame)
			av[c] = stat.Mean(col, nil) * scale
		}
		T := TensorFromStresslet(av)
		ret.Raw[f] = StressletRow{Time: time[f] / tb, Strain: time[f] / tb * p.Pe(), Tensor: T}
		xy[f], xx[f], yy[f], zz[f] = T.At(0, 1), T.At(0, 0), T.At(1, 1), T.At(2, 2)
	}
	var err error
	for _, v := range []struct {
		dest **histo.Series
		data []float64
	}{{&ret.XY, xy}, {&ret.XX, xx}, {&ret.YY, yy}, {&ret.ZZ, zz}} {
		*v.dest, err = histo.LogBinStat(time, v.data, nEdges)
		if err != nil {
			return nil, jfsd.ErrDecorate(err, caller)
		}
		(*v.dest).ScaleCenters(1 / tb)
	}
	return ret, nil
}
