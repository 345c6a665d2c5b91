package msd

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/jfsdtools/jfsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walk(Te *testing.T, frames, n int, seed int64) *jfsd.Trajectory {
	r := rand.New(rand.NewSource(seed))
	data := make([]float64, frames*n*3)
	for f := 1; f < frames; f++ {
		for i := 0; i < 3*n; i++ {
			data[f*3*n+i] = data[(f-1)*3*n+i] + r.NormFloat64()*0.1
		}
	}
	t, err := jfsd.TrajectoryFromData(data, frames, n)
	require.NoError(Te, err)
	return t
}

// bruteWindowed is the definition of the windowed MSD, averaging over
// every time origin explicitly.
func bruteWindowed(t *jfsd.Trajectory) []float64 {
	frames := t.NFrames()
	ret := make([]float64, frames)
	for m := 1; m < frames; m++ {
		var acc float64
		for o := 0; o+m < frames; o++ {
			a, b := t.Frame(o).Raw(), t.Frame(o+m).Raw()
			for i := range a {
				d := b[i] - a[i]
				acc += d * d
			}
		}
		ret[m] = acc / float64(frames-m) / float64(t.Len())
	}
	return ret
}

func TestWindowedMatchesDefinition(Te *testing.T) {
	for _, frames := range []int{2, 7, 64, 101} {
		t := walk(Te, frames, 4, int64(frames))
		assert.InDeltaSlice(Te, bruteWindowed(t), Windowed(t), 1e-9, "%d frames", frames)
	}
}

func TestBallistic(Te *testing.T) {
	const frames, n = 30, 3
	v := []float64{0.1, -0.2, 0.3, 1, 0, 0, 0, 0, -0.5}
	data := make([]float64, frames*n*3)
	for f := 0; f < frames; f++ {
		for i := range v {
			data[f*3*n+i] = 2 + v[i]*float64(f)
		}
	}
	t, err := jfsd.TrajectoryFromData(data, frames, n)
	require.NoError(Te, err)
	var v2 float64
	for _, x := range v {
		v2 += x * x
	}
	v2 /= n
	d := Direct(t)
	w := Windowed(t)
	for m := 0; m < frames; m++ {
		want := v2 * float64(m*m)
		assert.InDelta(Te, want, d[m], 1e-9)
		assert.InDelta(Te, want, w[m], 1e-8)
	}
}

func TestCompute(Te *testing.T) {
	const L = 4.0
	t := walk(Te, 50, 5, 1)
	wrapped := t.Copy()
	for f := 0; f < wrapped.NFrames(); f++ {
		raw := wrapped.Frame(f).Raw()
		for i, x := range raw {
			for x >= L/2 {
				x -= L
			}
			for x < -L/2 {
				x += L
			}
			raw[i] = x
		}
	}
	p, err := jfsd.NewParams(50, 5, jfsd.Input{Dt: 0.1, Period: 2, KT: 2, BoxLength: L})
	require.NoError(Te, err)
	res, err := Compute(wrapped, p, false)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, Direct(t), res.MSD, 1e-9)
	assert.InDelta(Te, 0.4, res.Time[1], 1e-12)
	res, err = Compute(wrapped, p, true)
	require.NoError(Te, err)
	assert.True(Te, res.Windowed)
	assert.InDeltaSlice(Te, bruteWindowed(t), res.MSD, 1e-9)

	bad, err := jfsd.NewParams(49, 5, jfsd.Input{Dt: 0.1, Period: 2, KT: 2, BoxLength: L})
	require.NoError(Te, err)
	_, err = Compute(wrapped, bad, true)
	assert.True(Te, errors.Is(err, jfsd.ErrShapeMismatch))
}
