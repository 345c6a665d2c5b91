package report

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jfsdtools/jfsd"
	"github.com/jfsdtools/jfsd/histo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteColumns(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "cols.dat")
	err := WriteColumns(name, GofrHeader, []float64{0.5, 1.5}, []float64{0, 1.25})
	require.NoError(Te, err)
	b, err := os.ReadFile(name)
	require.NoError(Te, err)
	assert.Equal(Te, "r/R   g(r)\n0.5   0\n1.5   1.25\n", string(b))

	err = WriteColumns(name, MSDHeader, []float64{1e-7}, []float64{math.NaN()})
	require.NoError(Te, err)
	b, err = os.ReadFile(name)
	require.NoError(Te, err)
	assert.Equal(Te, "t/t\\-(B)    MSD\n1e-07   NaN\n", string(b))

	err = WriteColumns(name, "", []float64{1, 2}, []float64{1})
	assert.True(Te, errors.Is(err, jfsd.ErrShapeMismatch))
	err = WriteColumns(name, "")
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
}

func TestWriteGrid(Te *testing.T) {
	G := histo.NewGrid([]float64{0, 1, 2}, []float64{-1, 1})
	G.Set(0, 0, 2)
	G.Set(1, 0, 0.5)
	name := filepath.Join(Te.TempDir(), "grid.dat")
	require.NoError(Te, WriteGrid(name, G))
	b, err := os.ReadFile(name)
	require.NoError(Te, err)
	assert.Equal(Te, "# x edges: 0   1   2\n# y edges: -1   1\n2\n0.5\n", string(b))
}

func TestWriteJSON(Te *testing.T) {
	D := histo.NewData([]float64{0, 1, 2}, []float64{0.5, 1.5, 1.2, 3})
	name := filepath.Join(Te.TempDir(), "counts.json")
	require.NoError(Te, WriteJSON(name, D))
	b, err := os.ReadFile(name)
	require.NoError(Te, err)
	var back struct {
		Total  int
		Counts []float64
	}
	require.NoError(Te, json.Unmarshal(b, &back))
	assert.Equal(Te, 3, back.Total)
	assert.Equal(Te, []float64{1, 2}, back.Counts)
}

func TestNames(Te *testing.T) {
	assert.Equal(Te, "MSDrun1.dat", MSDFile("run1", true))
	assert.Equal(Te, "MSDdirectrun1.dat", MSDFile("run1", false))
	assert.Equal(Te, "AVSTrun1raw.dat", StressFile("run1", true))
	assert.Equal(Te, "ParticleStressaveragedrun1.dat", ParticleStressFile("run1", false))
	assert.Equal(Te, "gofxyrun1frame10_zeroth_frame_subtracted.png", GofxyFile("run1", 10, true))
	assert.Equal(Te, "gofrrun1_counts.json", GofrCountsFile("run1"))
	assert.Equal(Te, "gofxyrun1frame3.png", GofxyFile("run1", 3, false))
	dir := filepath.Join(Te.TempDir(), "shear_0.1")
	run, err := RunName(dir)
	require.NoError(Te, err)
	assert.Equal(Te, "shear_0.1", run)
}
