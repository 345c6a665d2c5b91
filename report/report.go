// Package report writes the results of the post-processing as the plain
// text column files that plotting programs such as QtGrace read.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jfsdtools/jfsd"
	"github.com/jfsdtools/jfsd/histo"
)

// Separator goes between the columns of a report.
const Separator = "   "

// Column headers, in xmgrace markup.
const (
	MSDHeader            = "t/t\\-(B)    MSD"
	StressHeader         = "t/t\\-(B)   \\g(g)   \\g(s)\\-(xy)   \\g(s)\\-(xx)   \\g(s)\\-(yy)   \\g(s)\\-(zz)"
	ParticleStressHeader = "\\g(g)   \\g(s)\\-(xy)"
	GofrHeader           = "r/R   g(r)"
	ProfileHeader        = "y   v\\-(x)  v_real"
	LVEHeader            = "\\g(w)   Gp   Gpp"
)

// RunName returns the name of the run in dir: the base name of its
// absolute path.
func RunName(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.Base(abs), nil
}

// Names of the files written for the run run.
func MSDFile(run string, windowed bool) string {
	if windowed {
		return "MSD" + run + ".dat"
	}
	return "MSDdirect" + run + ".dat"
}

func StressFile(run string, raw bool) string {
	if raw {
		return "AVST" + run + "raw.dat"
	}
	return "AVST" + run + ".dat"
}

func ParticleStressFile(run string, raw bool) string {
	if raw {
		return "ParticleStress" + run + ".dat"
	}
	return "ParticleStressaveraged" + run + ".dat"
}

func GofrFile(run string) string { return "gofr" + run + ".dat" }

func GofrCountsFile(run string) string { return "gofr" + run + "_counts.json" }

func GofxyFile(run string, frame int, subtracted bool) string {
	name := fmt.Sprintf("gofxy%sframe%d", run, frame)
	if subtracted {
		name += "_zeroth_frame_subtracted"
	}
	return name + ".png"
}

func ProfileFile(run string) string { return "Velocityprofile" + run + ".dat" }

func LVEFile(run string) string { return "LVEfromMSD" + run + ".dat" }

func XYZFile(run string) string { return run + ".xyz" }

func STFFile(run string) string { return run + ".stf" }

// FormatFloat formats v with the shortest representation that reads back
// to the same value.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteColumns writes header and then one line per row of cols to the file
// path, which is created or truncated. Every column must have the same length.
func WriteColumns(path, header string, cols ...[]float64) error {
	const caller = "report.WriteColumns"
	if len(cols) == 0 {
		return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "no columns to write to %s", path)
	}
	rows := len(cols[0])
	for i, c := range cols {
		if len(c) != rows {
			return jfsd.Errorf(jfsd.ErrShapeMismatch, caller, "column %d has %d rows, column 0 has %d", i, len(c), rows)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	w.WriteString(header + "\n")
	fields := make([]string, len(cols))
	for i := 0; i < rows; i++ {
		for j, c := range cols {
			fields[j] = FormatFloat(c[i])
		}
		w.WriteString(strings.Join(fields, Separator))
		w.WriteString("\n")
	}
	if err = w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteJSON writes v as indented JSON to the file path.
func WriteJSON(path string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0644)
}

// WriteGrid writes the values of G as a text matrix to path. Each row holds
// the values for one x bin. The two comment lines before the matrix contain
// the x and the y edges.
func WriteGrid(path string, G *histo.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	writeRow(w, "# x edges: ", G.XEdges())
	writeRow(w, "# y edges: ", G.YEdges())
	r, c := G.Dims()
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := range row {
			row[j] = G.At(i, j)
		}
		writeRow(w, "", row)
	}
	if err = w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeRow(w *bufio.Writer, prefix string, row []float64) {
	w.WriteString(prefix)
	for i, v := range row {
		if i > 0 {
			w.WriteString(Separator)
		}
		w.WriteString(FormatFloat(v))
	}
	w.WriteString("\n")
}
