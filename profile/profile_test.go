package profile

import (
	"errors"
	"testing"

	"github.com/jfsdtools/jfsd"
	"github.com/jfsdtools/jfsd/histo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(Te *testing.T) (*jfsd.Trajectory, *jfsd.Trajectory, *jfsd.Params) {
	pos := []float64{
		0, -1, 0, 0, -0.5, 0, 0, 1, 0, 0, 1.5, 0,
		0, -1, 0, 0, -0.5, 0, 0, 1, 0, 0, 1.5, 0,
	}
	vel := []float64{
		-1, 0, 0, -0.5, 0, 0, 1, 0, 0, 1.5, 0, 0,
		-2, 0, 0, -1, 0, 0, 2, 0, 0, 3, 0, 0,
	}
	t, err := jfsd.TrajectoryFromData(pos, 2, 4)
	require.NoError(Te, err)
	v, err := jfsd.TrajectoryFromData(vel, 2, 4)
	require.NoError(Te, err)
	p, err := jfsd.NewParams(2, 4, jfsd.Input{Dt: 1, Period: 2, KT: 1, ShearRate: 1, BoxLength: 4})
	require.NoError(Te, err)
	return t, v, p
}

func TestVelocity(Te *testing.T) {
	t, v, p := setup(Te)
	prof, err := Velocity(t, v, p, Options{NEdges: 3})
	require.NoError(Te, err)
	assert.Equal(Te, []float64{-1, 1}, prof.Y)
	//frame 0: -0.75, 1.25; frame 1: -1.5, 2.5
	assert.InDeltaSlice(Te, []float64{-1.125, 1.875}, prof.VX, 1e-12)
	assert.InDeltaSlice(Te, []float64{-0.5, 0.5}, prof.Reference, 1e-12)

	rev, err := Velocity(t, v, p, Options{NEdges: 3, Reverse: true})
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{1.875, -1.125}, rev.VX, 1e-12)
}

func TestVelocityMissing(Te *testing.T) {
	t, v, p := setup(Te)
	prof, err := Velocity(t, v, p, Options{NEdges: 5})
	require.NoError(Te, err)
	//bins of width 1 from -2: nobody in [-2,-1) or [0,1)
	require.Len(Te, prof.VX, 4)
	assert.True(Te, histo.IsMissing(prof.VX[0]))
	assert.False(Te, histo.IsMissing(prof.VX[1]))
	assert.True(Te, histo.IsMissing(prof.VX[2]))
	assert.InDelta(Te, 1.875, prof.VX[3], 1e-12)
}

func TestVelocityErrors(Te *testing.T) {
	t, v, p := setup(Te)
	short, err := v.Truncate(1)
	require.NoError(Te, err)
	_, err = Velocity(t, short, p, Options{NEdges: 3})
	assert.True(Te, errors.Is(err, jfsd.ErrShapeMismatch))
	_, err = Velocity(t, v, p, Options{NEdges: 1})
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
}
