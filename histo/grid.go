package histo

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jfsdtools/jfsd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Grid is a 2D histogram over the cells defined by xedges and yedges.
// Row i of the grid corresponds to the x bin i, column j to the y bin j.
// Every bin is closed on the left, and the last bin of each axis is also
// closed on the right.
type Grid struct {
	xedges []float64
	yedges []float64
	d      *mat.Dense
}

// NewGrid returns an empty grid with the given edges, which are copied.
// It panics if any axis has less than 2 edges or unsorted edges.
func NewGrid(xedges, yedges []float64) *Grid {
	if len(xedges) < 2 || len(yedges) < 2 || !sort.Float64sAreSorted(xedges) || !sort.Float64sAreSorted(yedges) {
		panic("jfsd/histo.NewGrid: each axis needs at least 2 sorted edges")
	}
	G := &Grid{xedges: make([]float64, len(xedges)), yedges: make([]float64, len(yedges))}
	copy(G.xedges, xedges)
	copy(G.yedges, yedges)
	G.d = mat.NewDense(len(xedges)-1, len(yedges)-1, nil)
	return G
}

// Dims returns the number of x and y bins.
func (G *Grid) Dims() (int, int) { return G.d.Dims() }

// At returns the value of the cell i, j.
func (G *Grid) At(i, j int) float64 { return G.d.At(i, j) }

// Set sets the value of the cell i, j.
func (G *Grid) Set(i, j int, v float64) { G.d.Set(i, j, v) }

// Dense returns the values of the grid as a matrix, not a copy.
func (G *Grid) Dense() *mat.Dense { return G.d }

// XEdges returns a copy of the x edges.
func (G *Grid) XEdges() []float64 { return append([]float64(nil), G.xedges...) }

// YEdges returns a copy of the y edges.
func (G *Grid) YEdges() []float64 { return append([]float64(nil), G.yedges...) }

// XCenters returns the midpoints of the x bins.
func (G *Grid) XCenters() []float64 { return Midpoints(G.xedges) }

// YCenters returns the midpoints of the y bins.
func (G *Grid) YCenters() []float64 { return Midpoints(G.yedges) }

// Bin returns the cell containing the point x, y. ok is false if the
// point is outside the grid.
func (G *Grid) Bin(x, y float64) (i, j int, ok bool) {
	i = Bin(G.xedges, x)
	j = Bin(G.yedges, y)
	return i, j, i >= 0 && j >= 0
}

// Reset sets every cell to zero.
func (G *Grid) Reset() { G.d.Zero() }

// Density replaces the contents of G with the density of the points (x[k], y[k]):
// the count of each cell divided by the number of points inside the grid and
// by the area of the cell, so the grid integrates to 1. If no point falls
// inside the grid, every cell is zero. It returns the number of points inside.
func (G *Grid) Density(x, y []float64) (int, error) {
	if len(x) != len(y) {
		return 0, jfsd.Errorf(jfsd.ErrShapeMismatch, "Grid.Density", "%d x values and %d y values", len(x), len(y))
	}
	G.d.Zero()
	in := 0
	for k := range x {
		i, j, ok := G.Bin(x[k], y[k])
		if !ok {
			continue
		}
		G.d.Set(i, j, G.d.At(i, j)+1)
		in++
	}
	if in == 0 {
		return 0, nil
	}
	r, c := G.d.Dims()
	for i := 0; i < r; i++ {
		dx := G.xedges[i+1] - G.xedges[i]
		row := G.d.RawRowView(i)
		for j := 0; j < c; j++ {
			if row[j] == 0 {
				continue
			}
			row[j] /= float64(in) * dx * (G.yedges[j+1] - G.yedges[j])
		}
	}
	return in, nil
}

func (G *Grid) sameEdges(a *Grid) bool {
	return floats.Equal(G.xedges, a.xedges) && floats.Equal(G.yedges, a.yedges)
}

// Add sets G to a+b. It panics if the edges of a, b and G don't match.
func (G *Grid) Add(a, b *Grid) {
	if !G.sameEdges(a) || !G.sameEdges(b) {
		panic("jfsd/histo.Grid.Add: edges must match in added grids")
	}
	G.d.Add(a.d, b.d)
}

// Sub sets G to a-b. It panics if the edges of a, b and G don't match.
func (G *Grid) Sub(a, b *Grid) {
	if !G.sameEdges(a) || !G.sameEdges(b) {
		panic("jfsd/histo.Grid.Sub: edges must match in substracted grids")
	}
	G.d.Sub(a.d, b.d)
}

// Scale multiplies every cell by f.
func (G *Grid) Scale(f float64) { G.d.Scale(f, G.d) }

// Sum returns the sum of all cells.
func (G *Grid) Sum() float64 { return mat.Sum(G.d) }

// Integral returns the sum of every cell times its area.
func (G *Grid) Integral() float64 {
	var ret float64
	r, c := G.d.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ret += G.d.At(i, j) * (G.xedges[i+1] - G.xedges[i]) * (G.yedges[j+1] - G.yedges[j])
		}
	}
	return ret
}

// Copy returns a deep copy of G.
func (G *Grid) Copy() *Grid {
	ret := NewGrid(G.xedges, G.yedges)
	ret.d.Copy(G.d)
	return ret
}

func (G *Grid) String() string {
	r, c := G.d.Dims()
	return fmt.Sprintf("x: [%g, %g] y: [%g, %g] bins: %dx%d\n%v", G.xedges[0], G.xedges[len(G.xedges)-1],
		G.yedges[0], G.yedges[len(G.yedges)-1], r, c, mat.Formatted(G.d, mat.Squeeze()))
}

type jsonGrid struct {
	XEdges []float64   `json:"xedges"`
	YEdges []float64   `json:"yedges"`
	Values [][]float64 `json:"values"`
}

func (G *Grid) MarshalJSON() ([]byte, error) {
	r, _ := G.d.Dims()
	j := jsonGrid{XEdges: G.xedges, YEdges: G.yedges, Values: make([][]float64, r)}
	for i := range j.Values {
		j.Values[i] = G.d.RawRowView(i)
	}
	return json.Marshal(j)
}

func (G *Grid) UnmarshalJSON(b []byte) error {
	var j jsonGrid
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	if len(j.XEdges) < 2 || len(j.YEdges) < 2 || len(j.Values) != len(j.XEdges)-1 {
		return jfsd.Errorf(jfsd.ErrShapeMismatch, "Grid.UnmarshalJSON", "%d rows for %d x edges", len(j.Values), len(j.XEdges))
	}
	c := len(j.YEdges) - 1
	data := make([]float64, 0, len(j.Values)*c)
	for i, row := range j.Values {
		if len(row) != c {
			return jfsd.Errorf(jfsd.ErrShapeMismatch, "Grid.UnmarshalJSON", "row %d has %d values, expected %d", i, len(row), c)
		}
		data = append(data, row...)
	}
	G.xedges = j.XEdges
	G.yedges = j.YEdges
	G.d = mat.NewDense(len(j.Values), c, data)
	return nil
}
