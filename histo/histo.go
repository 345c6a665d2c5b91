package histo

import (
	"encoding/json"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Data is a 1D histogram of counts. Bin i counts the values in
// [edges[i], edges[i+1]).
type Data struct {
	total  int
	edges  []float64
	counts []float64
}

// NewData returns the histogram of rawdata over the given edges, which are
// copied. rawdata can be nil, which gives an empty histogram.
// It panics if there are less than 2 edges or they are not sorted.
func NewData(edges []float64, rawdata []float64) *Data {
	if len(edges) < 2 || !sort.Float64sAreSorted(edges) {
		panic("jfsd/histo.NewData: at least 2 sorted edges are needed")
	}
	D := &Data{edges: append([]float64(nil), edges...), counts: make([]float64, len(edges)-1)}
	if rawdata != nil {
		D.ReHisto(rawdata)
	}
	return D
}

// Total returns the number of values counted in the histogram.
func (D *Data) Total() int { return D.total }

// Edges returns a copy of the edges of the bins.
func (D *Data) Edges() []float64 { return append([]float64(nil), D.edges...) }

// Centers returns the midpoints of the bins.
func (D *Data) Centers() []float64 { return Midpoints(D.edges) }

// View returns the counts of the histogram, not a copy.
func (D *Data) View() []float64 { return D.counts }

// ReHisto replaces the contents of the histogram with the histogram of
// rawdata, which is sorted in place. Values outside the edges are ignored.
func (D *Data) ReHisto(rawdata []float64) {
	sort.Float64s(rawdata)
	//stat.Histogram panics on values off limits.
	lo := sort.SearchFloat64s(rawdata, D.edges[0])
	hi := sort.SearchFloat64s(rawdata, D.edges[len(D.edges)-1])
	rawdata = rawdata[lo:hi]
	D.total = len(rawdata)
	for i := range D.counts {
		D.counts[i] = 0
	}
	D.counts = stat.Histogram(D.counts, D.edges, rawdata, nil)
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Total  int       `json:"total"`
		Edges  []float64 `json:"edges"`
		Counts []float64 `json:"counts"`
	}{D.total, D.edges, D.counts})
}
