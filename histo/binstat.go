package histo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jfsdtools/jfsd"
	"gonum.org/v1/gonum/floats"
)

// Missing returns the marker for a bin without samples.
func Missing() float64 { return math.NaN() }

// IsMissing returns true if v is the marker of an empty bin.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Series is a binned statistic: the mean of the samples that fell in each bin.
// For B edges there are B-1 centers and values. The value of an empty bin
// is Missing().
type Series struct {
	Edges   []float64
	Centers []float64
	Values  []float64
}

// Len returns the number of bins.
func (S *Series) Len() int { return len(S.Values) }

// Scale multiplies every value by f. Missing values stay missing.
func (S *Series) Scale(f float64) *Series {
	floats.Scale(f, S.Values)
	return S
}

// ScaleCenters multiplies the centers by f, for instance to turn times into strains.
func (S *Series) ScaleCenters(f float64) *Series {
	floats.Scale(f, S.Centers)
	return S
}

// Valid returns a new series with the missing bins removed. The edges are not kept.
func (S *Series) Valid() *Series {
	ret := &Series{Centers: make([]float64, 0, len(S.Values)), Values: make([]float64, 0, len(S.Values))}
	for i, v := range S.Values {
		if IsMissing(v) {
			continue
		}
		ret.Centers = append(ret.Centers, S.Centers[i])
		ret.Values = append(ret.Values, v)
	}
	return ret
}

func (S *Series) String() string {
	l := make([]string, len(S.Values))
	for i, v := range S.Values {
		l[i] = fmt.Sprintf("%g %g", S.Centers[i], v)
	}
	return strings.Join(l, "\n")
}

// LogBinStat bins y against x in nEdges-1 logarithmically spaced bins and
// returns the mean of y in each. The edges go from the second smallest
// distinct value of x to the largest one, so a series that starts at x = 0
// can be binned. The centers are the geometric means of consecutive edges.
// If the two ends of the domain coincide, a single bin containing them is
// returned.
func LogBinStat(x, y []float64, nEdges int) (*Series, error) {
	const caller = "LogBinStat"
	if err := checkBinInput(x, y, nEdges, caller); err != nil {
		return nil, err
	}
	lo, hi, ok := secondMinMax(x)
	if !ok {
		return nil, jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "x needs at least 2 distinct values")
	}
	if lo <= 0 {
		return nil, jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "the lower edge %g is not positive", lo)
	}
	if lo == hi {
		nEdges = 2
	}
	edges := floats.LogSpan(make([]float64, nEdges), lo, hi)
	//exp(log(v)) is not always v.
	edges[0], edges[nEdges-1] = lo, hi
	centers := make([]float64, nEdges-1)
	for i := range centers {
		centers[i] = math.Sqrt(edges[i] * edges[i+1])
	}
	return BinStat(x, y, edges, centers)
}

// LinBinStat bins y against x in nEdges-1 bins of equal width between lo and
// hi, and returns the mean of y in each. The centers are the midpoints of the bins.
func LinBinStat(x, y []float64, lo, hi float64, nEdges int) (*Series, error) {
	const caller = "LinBinStat"
	if err := checkBinInput(x, y, nEdges, caller); err != nil {
		return nil, err
	}
	if !(lo < hi) {
		return nil, jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "empty range [%g, %g]", lo, hi)
	}
	edges := floats.Span(make([]float64, nEdges), lo, hi)
	return BinStat(x, y, edges, Midpoints(edges))
}

// Midpoints returns the arithmetic means of consecutive edges.
func Midpoints(edges []float64) []float64 {
	if len(edges) < 2 {
		return nil
	}
	ret := make([]float64, len(edges)-1)
	for i := range ret {
		ret[i] = (edges[i] + edges[i+1]) / 2
	}
	return ret
}

// BinStat puts each (x, y) sample in the bin of x and returns the mean of the
// y values in each bin. Bin i is [edges[i], edges[i+1]) except the last one,
// which also contains its upper edge. Samples outside the edges are dropped.
// The edges must be sorted, and there must be one center per bin.
// The edges and centers are not copied.
func BinStat(x, y, edges, centers []float64) (*Series, error) {
	const caller = "BinStat"
	if err := checkBinInput(x, y, len(edges), caller); err != nil {
		return nil, err
	}
	if len(centers) != len(edges)-1 {
		return nil, jfsd.Errorf(jfsd.ErrShapeMismatch, caller, "%d centers for %d edges", len(centers), len(edges))
	}
	nbins := len(edges) - 1
	count := make([]int, nbins)
	ref := make([]float64, nbins)
	delta := make([]float64, nbins)
	for k, v := range x {
		i := Bin(edges, v)
		if i < 0 {
			continue
		}
		//the mean is accumulated as deviations from the first sample of
		//the bin, so a bin of identical samples returns that sample exactly.
		if count[i] == 0 {
			ref[i] = y[k]
		}
		delta[i] += y[k] - ref[i]
		count[i]++
	}
	values := make([]float64, nbins)
	for i, c := range count {
		if c == 0 {
			values[i] = Missing()
			continue
		}
		values[i] = ref[i] + delta[i]/float64(c)
	}
	return &Series{Edges: edges, Centers: centers, Values: values}, nil
}

// Bin returns the index of the bin of sorted edges that contains v, or -1 if
// v is outside the edges. Bins are closed on the left, and the last bin is
// also closed on the right.
func Bin(edges []float64, v float64) int {
	last := len(edges) - 1
	if last < 1 || math.IsNaN(v) || v < edges[0] || v > edges[last] {
		return -1
	}
	j := sort.Search(len(edges), func(k int) bool { return edges[k] > v })
	if j > last {
		return last - 1
	}
	return j - 1
}

func checkBinInput(x, y []float64, nEdges int, caller string) error {
	if nEdges < 2 {
		return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "at least 2 edges are needed, got %d", nEdges)
	}
	if len(x) != len(y) {
		return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "x and y have different lengths (%d, %d)", len(x), len(y))
	}
	return nil
}

// secondMinMax returns the second smallest distinct value of x and the
// largest one. NaNs are ignored. ok is false if x has less than 2 distinct values.
func secondMinMax(x []float64) (second, max float64, ok bool) {
	min := math.Inf(1)
	second = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range x {
		switch {
		case math.IsNaN(v):
			continue
		case v < min:
			second = min
			min = v
		case v > min && v < second:
			second = v
		}
		if v > max {
			max = v
		}
	}
	return second, max, !math.IsInf(second, 1)
}
