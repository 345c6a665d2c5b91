/*
 * stresslet.go, part of jfsd.
 *
 * Copyright 2025 The jfsd authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package jfsd

import "gonum.org/v1/gonum/mat"

// StressletComponents is the number of independent components of a
// symmetric traceless 3x3 tensor, stored in the order xx, xy, xz, yy, yz.
const StressletComponents = 5

// Indexes of the stresslet components.
const (
	SXX = iota
	SXY
	SXZ
	SYY
	SYZ
)

// Stresslet holds the per-particle stresslets of a run, one Nx5 matrix per frame.
type Stresslet struct {
	frames []*mat.Dense
	n      int
}

// NewStresslet returns a Stresslet with the given frames, which are not copied.
func NewStresslet(frames []*mat.Dense) (*Stresslet, error) {
	if len(frames) == 0 {
		return nil, Errorf(ErrInvalidDomain, "NewStresslet", "no frames given")
	}
	n, _ := frames[0].Dims()
	for i, f := range frames {
		r, c := f.Dims()
		if r != n || c != StressletComponents {
			return nil, Errorf(ErrShapeMismatch, "NewStresslet", "frame %d has shape (%d, %d), expected (%d, %d)", i, r, c, n, StressletComponents)
		}
	}
	return &Stresslet{frames: frames, n: n}, nil
}

// StressletFromData builds a Stresslet from a C-ordered (frames, n, 5) array,
// without copying data.
func StressletFromData(data []float64, frames, n int) (*Stresslet, error) {
	if frames < 1 || n < 1 {
		return nil, Errorf(ErrInvalidDomain, "StressletFromData", "invalid shape (%d, %d, %d)", frames, n, StressletComponents)
	}
	stride := n * StressletComponents
	if len(data) != frames*stride {
		return nil, Errorf(ErrShapeMismatch, "StressletFromData", "%d values can't have shape (%d, %d, %d)", len(data), frames, n, StressletComponents)
	}
	S := &Stresslet{frames: make([]*mat.Dense, frames), n: n}
	for i := range S.frames {
		S.frames[i] = mat.NewDense(n, StressletComponents, data[i*stride:(i+1)*stride:(i+1)*stride])
	}
	return S, nil
}

// Len returns the number of particles.
func (S *Stresslet) Len() int { return S.n }

// NFrames returns the number of frames.
func (S *Stresslet) NFrames() int { return len(S.frames) }

// Frame returns the ith frame, not a copy. It panics if i is out of range.
func (S *Stresslet) Frame(i int) *mat.Dense { return S.frames[i] }

// Truncate returns a Stresslet with the first frames frames of S.
func (S *Stresslet) Truncate(frames int) (*Stresslet, error) {
	if frames < 1 || frames > len(S.frames) {
		return nil, Errorf(ErrOutOfRange, "Truncate", "can't keep %d frames of a %d frames stresslet", frames, len(S.frames))
	}
	return &Stresslet{frames: S.frames[:frames], n: S.n}, nil
}
