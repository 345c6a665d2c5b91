// Package lve estimates the linear viscoelastic spectrum of a suspension
// from the mean squared displacement of its particles, with the generalized
// Stokes-Einstein relation.
package lve

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jfsdtools/jfsd"
)

// Radius of the particles.
const Radius = 1.0

// Spectrum holds the storage and loss moduli for each frequency.
type Spectrum struct {
	Omega []float64
	Alpha []float64 //local logarithmic slope of the MSD
	Gp    []float64 //G'
	Gpp   []float64 //G''
}

// Len returns the number of frequencies.
func (S *Spectrum) Len() int { return len(S.Omega) }

// FromMSD returns the spectrum for the interior points of the MSD msd sampled
// at the times time. For each point i, alpha is the slope of the MSD in a
// log-log scale between i-1 and i+1, omega = 1/t_i, and
// |G*| = 1/(pi a msd_i Gamma(1+alpha)), G' = |G*| cos(pi alpha/2) and
// G'' = |G*| sin(pi alpha/2).
func FromMSD(time, msd []float64) (*Spectrum, error) {
	const caller = "lve.FromMSD"
	if len(time) != len(msd) {
		return nil, jfsd.Errorf(jfsd.ErrShapeMismatch, caller, "%d times and %d MSD values", len(time), len(msd))
	}
	if len(time) < 3 {
		return nil, jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "at least 3 points are needed, got %d", len(time))
	}
	n := len(time) - 2
	S := &Spectrum{Omega: make([]float64, n), Alpha: make([]float64, n), Gp: make([]float64, n), Gpp: make([]float64, n)}
	for i := 1; i < len(time)-1; i++ {
		alpha := math.Log(msd[i+1]/msd[i-1]) / math.Log(time[i+1]/time[i-1])
		gstar := math.Abs(1 / (math.Pi * Radius * msd[i] * math.Gamma(1+alpha)))
		S.Alpha[i-1] = alpha
		S.Omega[i-1] = 1 / time[i]
		S.Gp[i-1] = gstar * math.Cos(math.Pi*alpha/2)
		S.Gpp[i-1] = gstar * math.Sin(math.Pi*alpha/2)
	}
	return S, nil
}

// ReadMSD reads the first two columns of an MSD file, skipping its header line.
func ReadMSD(path string) (time, msd []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return readColumns(f)
}

func readColumns(r io.Reader) (time, msd []float64, err error) {
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		if line == 1 {
			continue
		}
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("lve.ReadMSD: line %d has %d columns", line, len(fields))
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("lve.ReadMSD: line %d: %w", line, err)
		}
		m, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("lve.ReadMSD: line %d: %w", line, err)
		}
		time = append(time, t)
		msd = append(msd, m)
	}
	return time, msd, s.Err()
}
