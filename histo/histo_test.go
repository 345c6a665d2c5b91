package histo

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/jfsdtools/jfsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestData(Te *testing.T) {
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1}
	D := NewData([]float64{0, 1, 2, 3, 4, 8}, rawdata)
	//8, 32 and 44 are out of range
	assert.Equal(Te, 26, D.Total())
	assert.Equal(Te, []float64{2, 6, 2, 7, 9}, D.View())
	assert.Equal(Te, []float64{0.5, 1.5, 2.5, 3.5, 6}, D.Centers())
	D.ReHisto([]float64{7.5, 0.2, -1})
	assert.Equal(Te, 2, D.Total())
	assert.Equal(Te, []float64{1, 0, 0, 0, 1}, D.View())

	j, err := json.Marshal(D)
	require.NoError(Te, err)
	var back struct {
		Total  int
		Edges  []float64
		Counts []float64
	}
	require.NoError(Te, json.Unmarshal(j, &back))
	assert.Equal(Te, 2, back.Total)
	assert.Equal(Te, D.Edges(), back.Edges)
	assert.Equal(Te, D.View(), back.Counts)

	E := NewData([]float64{0, 1}, nil)
	assert.Equal(Te, 0, E.Total())
	assert.Equal(Te, []float64{0}, E.View())
	assert.Panics(Te, func() { NewData([]float64{1, 0}, nil) })
}

func TestLogBinStatEdges(Te *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 100}
	y := make([]float64, len(x))
	for i := range y {
		y[i] = 2 * x[i]
	}
	for _, B := range []int{2, 3, 7, 20, 80} {
		s, err := LogBinStat(x, y, B)
		require.NoError(Te, err)
		require.Equal(Te, B-1, s.Len())
		require.Len(Te, s.Centers, B-1)
		assert.Equal(Te, 1.0, s.Edges[0])
		assert.Equal(Te, 100.0, s.Edges[B-1])
		for i := 1; i < len(s.Centers); i++ {
			assert.Greater(Te, s.Centers[i], s.Centers[i-1])
		}
		for i, c := range s.Centers {
			assert.InDelta(Te, math.Sqrt(s.Edges[i]*s.Edges[i+1]), c, 1e-12)
		}
	}
	//2 edges: a single bin with everything from 1 to 100
	s, err := LogBinStat(x, y, 2)
	require.NoError(Te, err)
	assert.InDelta(Te, 2*(55.0+100)/11, s.Values[0], 1e-12)
}

func TestLogBinStatMissing(Te *testing.T) {
	x := []float64{0, 1, 1.1, 1000}
	y := []float64{5, 1, 3, 7}
	s, err := LogBinStat(x, y, 4) //edges 1, 10, 100, 1000
	require.NoError(Te, err)
	assert.InDelta(Te, 2, s.Values[0], 1e-12)
	assert.True(Te, IsMissing(s.Values[1]))
	assert.Equal(Te, 7.0, s.Values[2])
	v := s.Valid()
	assert.Equal(Te, 2, v.Len())
	assert.Equal(Te, []float64{2, 7}, v.Values)
}

func TestBinStatConstant(Te *testing.T) {
	x := make([]float64, 500)
	y := make([]float64, 500)
	for i := range x {
		x[i] = float64(i) * 0.37
		y[i] = 0.1
	}
	s, err := LogBinStat(x, y, 40)
	require.NoError(Te, err)
	for _, v := range s.Values {
		if !IsMissing(v) {
			assert.Equal(Te, 0.1, v)
		}
	}
	s, err = LinBinStat(x, y, -10, 200, 13)
	require.NoError(Te, err)
	for _, v := range s.Values {
		if !IsMissing(v) {
			assert.Equal(Te, 0.1, v)
		}
	}
}

func TestLogBinStatDegenerate(Te *testing.T) {
	s, err := LogBinStat([]float64{0, 3, 3}, []float64{1, 2, 4}, 80)
	require.NoError(Te, err)
	require.Equal(Te, 1, s.Len())
	assert.Equal(Te, 3.0, s.Centers[0])
	assert.Equal(Te, 3.0, s.Values[0])
}

func TestBinStatErrors(Te *testing.T) {
	x := []float64{0, 1, 2}
	_, err := LogBinStat(x, x, 1)
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
	_, err = LogBinStat(x, x[:2], 5)
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
	_, err = LogBinStat([]float64{2, 2, 2}, x, 5)
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
	_, err = LogBinStat([]float64{-3, -2, 2}, x, 5)
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
	_, err = LinBinStat(x, x, 1, 1, 5)
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
	_, err = BinStat(x, x, []float64{0, 1, 2}, []float64{0.5})
	assert.True(Te, errors.Is(err, jfsd.ErrShapeMismatch))
}

func TestLinBinStat(Te *testing.T) {
	x := []float64{-1, -0.5, 0, 0.5, 1, 1.5}
	y := []float64{1, 2, 3, 4, 5, 6}
	s, err := LinBinStat(x, y, -1, 1, 3)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{-0.5, 0.5}, s.Centers)
	//1.5 is out, 1 goes to the closed last bin.
	assert.InDeltaSlice(Te, []float64{1.5, 4}, s.Values, 1e-12)
	s.Scale(2).ScaleCenters(10)
	assert.InDeltaSlice(Te, []float64{3, 8}, s.Values, 1e-12)
	assert.InDeltaSlice(Te, []float64{-5, 5}, s.Centers, 1e-12)
}

func TestBin(Te *testing.T) {
	edges := []float64{0, 1, 2, 3}
	table := []struct {
		v    float64
		want int
	}{{-0.1, -1}, {0, 0}, {0.99, 0}, {1, 1}, {2.5, 2}, {3, 2}, {3.01, -1}, {math.NaN(), -1}}
	for _, c := range table {
		assert.Equal(Te, c.want, Bin(edges, c.v), "v = %g", c.v)
	}
}

func TestGridDensity(Te *testing.T) {
	G := NewGrid([]float64{-1, 0, 1}, []float64{-2, 0, 2})
	n, err := G.Density([]float64{-0.5, 0.5, 0.5, 10}, []float64{-1, 1, 1, 10})
	require.NoError(Te, err)
	assert.Equal(Te, 3, n)
	//cells have an area of 2
	assert.InDelta(Te, 1.0/6, G.At(0, 0), 1e-12)
	assert.InDelta(Te, 2.0/6, G.At(1, 1), 1e-12)
	assert.Equal(Te, 0.0, G.At(0, 1))
	assert.InDelta(Te, 1, G.Integral(), 1e-12)

	n, err = G.Density([]float64{5}, []float64{5})
	require.NoError(Te, err)
	assert.Equal(Te, 0, n)
	assert.Equal(Te, 0.0, G.Sum())
	assert.False(Te, math.IsNaN(G.Sum()))
}

func TestGridOps(Te *testing.T) {
	G := NewGrid([]float64{0, 1, 2}, []float64{0, 1})
	G.Set(0, 0, 1)
	G.Set(1, 0, 3)
	H := G.Copy()
	H.Scale(2)
	D := NewGrid([]float64{0, 1, 2}, []float64{0, 1})
	D.Sub(G, H)
	assert.Equal(Te, -1.0, D.At(0, 0))
	assert.Equal(Te, -3.0, D.At(1, 0))
	D.Add(D, H)
	assert.Equal(Te, 1.0, D.At(0, 0))
	assert.Panics(Te, func() { D.Add(D, NewGrid([]float64{0, 1}, []float64{0, 1})) })

	j, err := json.Marshal(G)
	require.NoError(Te, err)
	G2 := new(Grid)
	require.NoError(Te, json.Unmarshal(j, G2))
	r, c := G2.Dims()
	assert.Equal(Te, 2, r)
	assert.Equal(Te, 1, c)
	assert.Equal(Te, 3.0, G2.At(1, 0))
	assert.Equal(Te, []float64{0.5, 1.5}, G2.XCenters())
}
