// Package msd computes mean squared displacements of particle trajectories.
package msd

import (
	"github.com/jfsdtools/jfsd"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Direct returns the mean squared displacement of each frame of t with
// respect to the first one, averaged over the particles.
// t should be unwrapped.
func Direct(t *jfsd.Trajectory) []float64 {
	n := t.Len()
	ret := make([]float64, t.NFrames())
	ref := t.Frame(0).Raw()
	for f := 1; f < t.NFrames(); f++ {
		cur := t.Frame(f).Raw()
		var acc float64
		for i, v := range cur {
			d := v - ref[i]
			acc += d * d
		}
		ret[f] = acc / float64(n)
	}
	return ret
}

// Windowed returns the mean squared displacement for each lag, averaged over
// every time origin and over the particles. For each particle it uses
// msd(m) = S1(m) - 2 S2(m), where S2 is the autocorrelation of the positions,
// obtained with a zero padded FFT, and S1 the average of r²(k) + r²(k+m).
// t should be unwrapped.
func Windowed(t *jfsd.Trajectory) []float64 {
	frames := t.NFrames()
	n := t.Len()
	ret := make([]float64, frames)
	fft := fourier.NewFFT(2 * frames)
	seq := make([]float64, 2*frames)
	coef := make([]complex128, frames+1)
	acf := make([]float64, 2*frames)
	s2 := make([]float64, frames)
	d := make([]float64, frames) //r² of each frame
	for i := 0; i < n; i++ {
		for k := range s2 {
			s2[k] = 0
			d[k] = 0
		}
		for dim := 0; dim < 3; dim++ {
			for f := 0; f < frames; f++ {
				x := t.Frame(f).At(i, dim)
				seq[f] = x
				d[f] += x * x
			}
			for f := frames; f < len(seq); f++ {
				seq[f] = 0
			}
			fft.Coefficients(coef, seq)
			for k, c := range coef {
				coef[k] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
			}
			//the inverse transform is not normalized
			fft.Sequence(acf, coef)
			floats.AddScaled(s2, 1/float64(len(seq)), acf[:frames])
		}
		q := 2 * floats.Sum(d)
		for m := 0; m < frames; m++ {
			if m > 0 {
				q -= d[m-1] + d[frames-m]
			}
			s1 := q / float64(frames-m)
			ret[m] += s1 - 2*s2[m]/float64(frames-m)
		}
	}
	floats.Scale(1/float64(n), ret)
	return ret
}

// Result is a mean squared displacement series.
type Result struct {
	Time     []float64 //in units of the Brownian time
	MSD      []float64
	Windowed bool
}

// Compute unwraps t and returns its windowed or direct mean squared displacement.
func Compute(t *jfsd.Trajectory, p *jfsd.Params, windowed bool) (*Result, error) {
	if t.NFrames() != p.Steps() || t.Len() != p.N() {
		return nil, jfsd.Errorf(jfsd.ErrShapeMismatch, "msd.Compute", "trajectory of %d frames and %d particles, parameters for %d and %d", t.NFrames(), t.Len(), p.Steps(), p.N())
	}
	u, err := jfsd.Unwrap(t, p.BoxLength())
	if err != nil {
		return nil, err
	}
	ret := &Result{Time: p.Time(), Windowed: windowed}
	floats.Scale(1/p.BrownianTime(), ret.Time)
	if windowed {
		ret.MSD = Windowed(u)
	} else {
		ret.MSD = Direct(u)
	}
	return ret, nil
}
