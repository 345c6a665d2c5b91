package pair

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/jfsdtools/jfsd"
	v3 "github.com/jfsdtools/jfsd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func opts() PlanarOptions {
	return PlanarOptions{SliceWidth: 1, NBins: 5, Xmax: 2, Ymax: 2}
}

func TestPlanarSingleParticle(Te *testing.T) {
	pos, _ := v3.NewMatrix([]float64{0.3, 0.2, 0.1})
	G, err := Planar(pos, opts(), 10)
	require.NoError(Te, err)
	assert.Equal(Te, 0.0, G.Sum())
	r, c := G.Dims()
	assert.Equal(Te, 4, r)
	assert.Equal(Te, 4, c)
}

func TestPlanarPair(Te *testing.T) {
	pos, _ := v3.NewMatrix([]float64{0, 0, 0, 1.5, 0.5, 0.5})
	G, err := Planar(pos, opts(), 10)
	require.NoError(Te, err)
	//edges are -2, -1, 0, 1, 2: cells of area 1
	//particle 0 sees (-1.5, -0.5), particle 1 sees (1.5, 0.5)
	assert.InDelta(Te, 0.5, G.At(0, 1), 1e-12)
	assert.InDelta(Te, 0.5, G.At(3, 2), 1e-12)
	assert.InDelta(Te, 1, G.Integral(), 1e-12)
	assert.False(Te, floats.HasNaN(G.Dense().RawMatrix().Data))

	//out of the slice
	pos.Set(1, 2, 1.2)
	G, err = Planar(pos, opts(), 10)
	require.NoError(Te, err)
	assert.Equal(Te, 0.0, G.Sum())
}

func TestPlanarSlab(Te *testing.T) {
	//particle 2 is in the slab of particle 1 only
	pos, _ := v3.NewMatrix([]float64{0, 0, 0, 1.5, 0.5, 0.5, -0.5, -1.5, 1.2})
	G, err := Planar(pos, opts(), 10)
	require.NoError(Te, err)
	assert.InDelta(Te, 1.0/3, G.At(0, 1), 1e-12)
	assert.InDelta(Te, 1.0/6, G.At(3, 2), 1e-12)
	assert.InDelta(Te, 1.0/6, G.At(3, 3), 1e-12)
	assert.InDelta(Te, 1.0/3, G.At(0, 0), 1e-12)
	assert.InDelta(Te, 1, G.Integral(), 1e-12)
}

func TestPlanarNormalization(Te *testing.T) {
	r := rand.New(rand.NewSource(3))
	data := make([]float64, 3*200)
	for i := range data {
		data[i] = (r.Float64() - 0.5) * 6
	}
	pos, _ := v3.NewMatrix(data)
	o := PlanarOptions{SliceWidth: 0.5, NBins: 21, Xmax: 3, Ymax: 3}
	G, err := Planar(pos, o, 12)
	require.NoError(Te, err)
	//every particle has some neighbour in its slice, so every map integrates to 1
	assert.InDelta(Te, 1, G.Integral(), 1e-9)
	for _, v := range G.Dense().RawMatrix().Data {
		assert.GreaterOrEqual(Te, v, 0.0)
	}
}

func TestPlanarErrors(Te *testing.T) {
	pos, _ := v3.NewMatrix([]float64{0, 0, 0, 1, 1, 1})
	_, err := Planar(pos, opts(), 3)
	assert.True(Te, errors.Is(err, jfsd.ErrOutOfRange))
	o := opts()
	o.NBins = 1
	_, err = Planar(pos, o, 10)
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
	o = opts()
	o.SliceWidth = 0
	_, err = Planar(pos, o, 10)
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
}

func TestPlanarFrame(Te *testing.T) {
	frame := []float64{0, 0, 0, 1.5, 0.5, 0.5, -0.5, 1.2, 0.2}
	data := append(append([]float64{}, frame...), frame...)
	t, err := jfsd.TrajectoryFromData(data, 2, 3)
	require.NoError(Te, err)
	G, err := PlanarFrame(t, 1, 1, opts(), 10, true)
	require.NoError(Te, err)
	assert.Equal(Te, 0.0, mat.Norm(G.Dense(), 1))
	G, err = PlanarFrame(t, 1, 1, opts(), 10, false)
	require.NoError(Te, err)
	assert.InDelta(Te, 1, G.Integral(), 1e-12)

	_, err = PlanarFrame(t, 2, 1, opts(), 10, false)
	assert.True(Te, errors.Is(err, jfsd.ErrOutOfRange))
	_, err = PlanarFrame(t, 1, 0, opts(), 10, false)
	assert.True(Te, errors.Is(err, jfsd.ErrOutOfRange))
}

func TestRadialLattice(Te *testing.T) {
	const L = 10
	data := make([]float64, 0, 3*L*L*L)
	for i := 0; i < L; i++ {
		for j := 0; j < L; j++ {
			for k := 0; k < L; k++ {
				data = append(data, float64(i), float64(j), float64(k))
			}
		}
	}
	pos, _ := v3.NewMatrix(data)
	rdf, err := Radial(pos, L, 8, 4)
	require.NoError(Te, err)
	counts := rdf.Counts.View()
	assert.Equal(Te, 0.0, counts[0])
	assert.Equal(Te, 0.0, counts[1])
	//6 first neighbours at 1 and 12 at sqrt(2), per particle, counted once per pair
	assert.Equal(Te, 9000.0, counts[2])
	//8 at sqrt(3)
	assert.Equal(Te, 4000.0, counts[3])
	assert.InDeltaSlice(Te, []float64{0.25, 0.75, 1.25, 1.75, 2.25, 2.75, 3.25, 3.75}, rdf.R, 1e-12)

	vol := 4.0 / 3 * math.Pi * (1.5*1.5*1.5 - 1)
	//999 other particles in a box of 1000
	assert.InDelta(Te, 2*9000/(1000*0.999*vol), rdf.G[2], 1e-9)
}

func TestRadialIdealGas(Te *testing.T) {
	const L = 20.0
	r := rand.New(rand.NewSource(11))
	data := make([]float64, 3*3000)
	for i := range data {
		data[i] = (r.Float64() - 0.5) * L
	}
	pos, _ := v3.NewMatrix(data)
	rdf, err := Radial(pos, L, 5, 5)
	require.NoError(Te, err)
	for i, g := range rdf.G[1:] {
		assert.InDelta(Te, 1, g, 0.1, "bin %d", i+1)
	}
}

func TestRadialPair(Te *testing.T) {
	//a single pair at distance 1: g = 2*1/(2*(1/V)*shell)
	pos, _ := v3.NewMatrix([]float64{0, 0, 0, 1, 0, 0})
	const L = 4.0
	rdf, err := Radial(pos, L, 4, 2)
	require.NoError(Te, err)
	shell := 4.0 / 3 * math.Pi * (1.5*1.5*1.5 - 1)
	assert.InDelta(Te, L*L*L/shell, rdf.G[2], 1e-9)
	assert.Equal(Te, 0.0, rdf.G[0])
	assert.Equal(Te, 1, rdf.Counts.Total())
}

func TestRadialErrors(Te *testing.T) {
	pos, _ := v3.NewMatrix([]float64{0, 0, 0, 1, 1, 1})
	_, err := Radial(pos, 4, 10, 2.5)
	assert.True(Te, errors.Is(err, jfsd.ErrOutOfRange))
	_, err = Radial(pos, 4, 0, 1)
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
	_, err = Radial(pos.View(0, 1), 4, 10, 1)
	assert.True(Te, errors.Is(err, jfsd.ErrInvalidDomain))
	t, err := jfsd.TrajectoryFromData([]float64{0, 0, 0, 1, 1, 1}, 1, 2)
	require.NoError(Te, err)
	_, err = RadialFrame(t, 1, 0, 4, 10, 1)
	assert.True(Te, errors.Is(err, jfsd.ErrOutOfRange))
	rdf, err := RadialFrame(t, 0, 0, 4, 10, 2)
	require.NoError(Te, err)
	assert.Len(Te, rdf.G, 10)
}
