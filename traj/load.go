package traj

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jfsdtools/jfsd"
)

// Base names of the arrays written by the simulation.
const (
	TrajectoryFile = "trajectory.npy"
	StressletFile  = "stresslet.npy"
	VelocitiesFile = "velocities.npy"
)

// Want selects the optional arrays that Load reads.
type Want struct {
	Stresslet  bool
	Velocities bool
}

// Data is the output of a simulation run, with the trailing empty frames
// removed.
type Data struct {
	Trajectory *jfsd.Trajectory
	Stresslet  *jfsd.Stresslet  //nil if not requested
	Velocities *jfsd.Trajectory //nil if not requested
	LastFrame  int              //index of the last valid frame
	Stored     int              //frames in the trajectory file, empty ones included
}

// Truncated returns true if empty frames were removed from the end of the
// trajectory.
func (D *Data) Truncated() bool {
	return D.Trajectory.NFrames() < D.Stored
}

// Find returns the path of the array with the given base name in dir,
// either plain or zstd compressed. The plain file is preferred.
func Find(dir, base string) (string, error) {
	for _, name := range []string{base, base + Compressed} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", &fs.PathError{Op: "find", Path: filepath.Join(dir, base), Err: fs.ErrNotExist}
}

// Load reads the trajectory in dir and the optional arrays selected by want.
// The trajectory ends at its first all-zero frame, and the other arrays are
// truncated to the same number of frames. Arrays with fewer frames or a
// different number of particles than the trajectory give an
// ErrShapeMismatch error.
func Load(dir string, want Want) (*Data, error) {
	const caller = "traj.Load"
	name, err := Find(dir, TrajectoryFile)
	if err != nil {
		return nil, err
	}
	t, err := LoadTrajectory(name)
	if err != nil {
		return nil, jfsd.ErrDecorate(err, caller)
	}
	ret := &Data{Stored: t.NFrames()}
	ret.Trajectory, ret.LastFrame, err = t.TruncateZeroFrames()
	if err != nil {
		return nil, jfsd.ErrDecorate(err, caller)
	}
	frames := ret.Trajectory.NFrames()
	if want.Stresslet {
		name, err := Find(dir, StressletFile)
		if err != nil {
			return nil, err
		}
		s, err := LoadStresslet(name)
		if err != nil {
			return nil, jfsd.ErrDecorate(err, caller)
		}
		if s.Len() != t.Len() || s.NFrames() < frames {
			return nil, jfsd.Errorf(jfsd.ErrShapeMismatch, caller, "stresslet of %d frames and %d particles for a trajectory of %d frames and %d particles", s.NFrames(), s.Len(), frames, t.Len())
		}
		if ret.Stresslet, err = s.Truncate(frames); err != nil {
			return nil, jfsd.ErrDecorate(err, caller)
		}
	}
	if want.Velocities {
		name, err := Find(dir, VelocitiesFile)
		if err != nil {
			return nil, err
		}
		v, err := LoadVelocities(name)
		if err != nil {
			return nil, jfsd.ErrDecorate(err, caller)
		}
		if v.Len() != t.Len() || v.NFrames() < frames {
			return nil, jfsd.Errorf(jfsd.ErrShapeMismatch, caller, "velocities of %d frames and %d particles for a trajectory of %d frames and %d particles", v.NFrames(), v.Len(), frames, t.Len())
		}
		if ret.Velocities, err = v.Truncate(frames); err != nil {
			return nil, jfsd.ErrDecorate(err, caller)
		}
	}
	return ret, nil
}
