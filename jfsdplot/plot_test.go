package jfsdplot

import (
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

func isPNG(Te *testing.T, name string) {
	b, err := os.ReadFile(name)
	require.NoError(Te, err)
	require.True(Te, len(b) > 8)
	assert.Equal(Te, "\x89PNG", string(b[:4]))
}

func testGrid(signed bool) *histo.Grid {
	edges := []float64{-2, -1, 0, 1, 2}
	g := histo.NewGrid(edges, edges)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			v := float64(i*4 + j)
			if signed {
				v -= 5
			}
			g.Set(i, j, v)
		}
	}
	return g
}

func TestHeatMap(Te *testing.T) {
	dir := Te.TempDir()
	for _, signed := range []bool{false, true} {
		name := filepath.Join(dir, "map.png")
		require.NoError(Te, HeatMap(testGrid(signed), "g(x,y)", name))
		isPNG(Te, name)
	}
	//an empty map is all zeros
	name := filepath.Join(dir, "zeros.png")
	require.NoError(Te, HeatMap(histo.NewGrid([]float64{0, 1, 2}, []float64{0, 1, 2}), "", name))
	isPNG(Te, name)

	g := testGrid(false)
	g.Set(1, 1, math.NaN())
	err := HeatMap(g, "", filepath.Join(dir, "nan.png"))
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
}

func TestMapPalette(Te *testing.T) {
	pal, lo, hi := mapPalette(0, 3)
	assert.Len(Te, pal.Colors(), Colors)
	assert.Equal(Te, 0.0, lo)
	assert.Equal(Te, 3.0, hi)
	_, lo, hi = mapPalette(-1, 4)
	assert.Equal(Te, -4.0, lo)
	assert.Equal(Te, 4.0, hi)
}

func TestLogLog(Te *testing.T) {
	dir := Te.TempDir()
	x := []float64{0, 0.1, 1, 10, 100}
	y := []float64{1, 0.2, math.NaN(), 20, 200}
	name := filepath.Join(dir, "msd.png")
	require.NoError(Te, LogLog(x, y, "MSD", "t", "MSD", name))
	isPNG(Te, name)
	assert.Len(Te, positive(x, y), 3)

	name = filepath.Join(dir, "one.png")
	require.NoError(Te, LogLog([]float64{1}, []float64{2}, "", "", "", name))
	isPNG(Te, name)

	err := LogLog([]float64{1}, []float64{1, 2}, "", "", "", name)
	assert.True(Te, errors.Is(err, jfsd.ErrShapeMismatch))
	err = LogLog([]float64{-1}, []float64{1}, "", "", "", name)
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
}
