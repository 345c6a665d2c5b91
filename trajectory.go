/*
 * trajectory.go, part of jfsd.
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

import (
	"errors"

	v3 "github.com/jfsdtools/jfsd/v3"
	"gonum.org/v1/gonum/mat"
)

// Trajectory is an ordered sequence of frames, each an Nx3 matrix with one
// vector per particle. The particle count and ordering are the same in every
// frame: the index of a vector is the identity of the particle.
// Every frame is stored contiguously, so frame.Raw()[3*i:3*i+3] is particle i.
type Trajectory struct {
	frames []*v3.Matrix
	n      int
}

// NewTrajectory returns a trajectory with the given frames. The frames are
// not copied unless they are non-contiguous views.
func NewTrajectory(frames []*v3.Matrix) (*Trajectory, error) {
	if len(frames) == 0 {
		return nil, Errorf(ErrInvalidDomain, "NewTrajectory", "no frames given")
	}
	n := frames[0].NVecs()
	if n == 0 {
		return nil, Errorf(ErrInvalidDomain, "NewTrajectory", "frames have no particles")
	}
	T := &Trajectory{frames: make([]*v3.Matrix, len(frames)), n: n}
	for i, f := range frames {
		if f.NVecs() != n {
			return nil, Errorf(ErrShapeMismatch, "NewTrajectory", "frame %d has %d particles, frame 0 has %d", i, f.NVecs(), n)
		}
		if f.RawMatrix().Stride != 3 {
			f = v3.Dense2Matrix(mat.DenseCopyOf(f.Dense))
		}
		T.frames[i] = f
	}
	return T, nil
}

// TrajectoryFromData builds a trajectory from a C-ordered (frames, n, 3)
// array. The frames are views of data, which is not copied.
func TrajectoryFromData(data []float64, frames, n int) (*Trajectory, error) {
	if frames < 1 || n < 1 {
		return nil, Errorf(ErrInvalidDomain, "TrajectoryFromData", "invalid shape (%d, %d, 3)", frames, n)
	}
	if len(data) != frames*n*3 {
		return nil, Errorf(ErrShapeMismatch, "TrajectoryFromData", "%d values can't have shape (%d, %d, 3)", len(data), frames, n)
	}
	T := &Trajectory{frames: make([]*v3.Matrix, frames), n: n}
	stride := 3 * n
	for i := range T.frames {
		T.frames[i], _ = v3.NewMatrix(data[i*stride : (i+1)*stride : (i+1)*stride]) //the shape was checked above.
	}
	return T, nil
}

// Len returns the number of particles per frame.
func (T *Trajectory) Len() int {
	return T.n
}

// NFrames returns the number of frames.
func (T *Trajectory) NFrames() int {
	return len(T.frames)
}

// Frame returns the ith frame, not a copy. It panics if i is out of range.
func (T *Trajectory) Frame(i int) *v3.Matrix {
	return T.frames[i]
}

// Copy returns a deep copy of the trajectory.
func (T *Trajectory) Copy() *Trajectory {
	ret := &Trajectory{frames: make([]*v3.Matrix, len(T.frames)), n: T.n}
	for i, f := range T.frames {
		ret.frames[i] = v3.Zeros(T.n)
		ret.frames[i].Copy(f.Dense)
	}
	return ret
}

// Truncate returns a trajectory with the first frames frames of T.
// The frames are shared with T.
func (T *Trajectory) Truncate(frames int) (*Trajectory, error) {
	if frames < 1 || frames > len(T.frames) {
		return nil, Errorf(ErrOutOfRange, "Truncate", "can't keep %d frames of a %d frames trajectory", frames, len(T.frames))
	}
	return &Trajectory{frames: T.frames[:frames], n: T.n}, nil
}

// TruncateZeroFrames drops the first frame in which every coordinate is
// zero, and all the following ones. A run that ended early leaves such frames
// in its preallocated output. It returns the truncated trajectory (sharing
// frames with T) and the index of its last frame.
func (T *Trajectory) TruncateZeroFrames() (*Trajectory, int, error) {
	for i, f := range T.frames {
		if !f.IsZero() {
			continue
		}
		if i == 0 {
			return nil, -1, Errorf(ErrInvalidDomain, "TruncateZeroFrames", "the first frame is empty")
		}
		ret, err := T.Truncate(i)
		return ret, i - 1, err
	}
	return T, len(T.frames) - 1, nil
}

// Reader returns a Traj that goes over the frames of T.
func (T *Trajectory) Reader() Traj {
	return &trajReader{t: T}
}

type trajReader struct {
	t    *Trajectory
	next int
}

func (R *trajReader) Readable() bool {
	return R.next < len(R.t.frames)
}

func (R *trajReader) Len() int {
	return R.t.n
}

func (R *trajReader) Next(output *v3.Matrix) error {
	if !R.Readable() {
		return lastFrameError{}
	}
	if output != nil {
		if output.NVecs() != R.t.n {
			return Errorf(ErrShapeMismatch, "Next", "output has %d vectors, the trajectory %d", output.NVecs(), R.t.n)
		}
		output.Copy(R.t.frames[R.next].Dense)
	}
	R.next++
	return nil
}

// ReadAll reads every remaining frame of traj into a new Trajectory.
func ReadAll(traj Traj) (*Trajectory, error) {
	frames := make([]*v3.Matrix, 0, 100)
	for {
		coord := v3.Zeros(traj.Len())
		err := traj.Next(coord)
		if err != nil {
			var last LastFrameError
			if errors.As(err, &last) {
				break
			}
			return nil, ErrDecorate(err, "ReadAll")
		}
		frames = append(frames, coord)
	}
	return NewTrajectory(frames)
}

// lastFrameError implements LastFrameError
type lastFrameError struct{}

func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) Error() string { return "EOF" }
