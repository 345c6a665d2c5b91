/*
 * npy.go, part of jfsd.
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

// Package traj loads the arrays written by a JFSD simulation, and exports
// trajectories to formats that visualization programs can read.
package traj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jfsdtools/jfsd"
	"github.com/klauspost/compress/zstd"
	"github.com/sbinet/npyio"
)

// Compressed is the suffix of zstd compressed arrays.
const Compressed = ".zst"

// ReadNpy reads a NumPy array of float64 or float32 values in C order from r.
// It returns the values as float64, and the shape of the array.
func ReadNpy(r io.Reader) ([]float64, []int, error) {
	npy, err := npyio.NewReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("traj.ReadNpy: can't read header: %w", err)
	}
	descr := npy.Header.Descr
	if descr.Fortran {
		return nil, nil, jfsd.Errorf(jfsd.ErrInvalidDomain, "traj.ReadNpy", "arrays in Fortran order are not supported")
	}
	shape := append([]int(nil), descr.Shape...)
	var data []float64
	switch descr.Type {
	case "<f8", "f8", "float64":
		err = npy.Read(&data)
	case "<f4", "f4", "float32":
		var d32 []float32
		err = npy.Read(&d32)
		data = make([]float64, len(d32))
		for i, v := range d32 {
			data[i] = float64(v)
		}
	default:
		return nil, nil, jfsd.Errorf(jfsd.ErrInvalidDomain, "traj.ReadNpy", "unsupported data type %q", descr.Type)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("traj.ReadNpy: can't read data: %w", err)
	}
	return data, shape, nil
}

// LoadNpy reads the array in the file name. Files ending in ".zst" are
// decompressed on the fly.
func LoadNpy(name string) ([]float64, []int, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(name, Compressed) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("traj.LoadNpy: %s: %w", name, err)
		}
		defer dec.Close()
		r = dec
	}
	data, shape, err := ReadNpy(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, jfsd.ErrDecorate(err, "LoadNpy"))
	}
	return data, shape, nil
}

// loadFrames reads an array of shape (frames, N, cols) from name.
func loadFrames(name string, cols int, caller string) ([]float64, int, int, error) {
	data, shape, err := LoadNpy(name)
	if err != nil {
		return nil, 0, 0, jfsd.ErrDecorate(err, caller)
	}
	if len(shape) != 3 || shape[2] != cols {
		return nil, 0, 0, jfsd.Errorf(jfsd.ErrShapeMismatch, caller, "%s: expected an array of shape (frames, N, %d), got %v", name, cols, shape)
	}
	return data, shape[0], shape[1], nil
}

// LoadTrajectory reads a trajectory of shape (frames, N, 3) from name.
func LoadTrajectory(name string) (*jfsd.Trajectory, error) {
	data, frames, n, err := loadFrames(name, 3, "traj.LoadTrajectory")
	if err != nil {
		return nil, err
	}
	t, err := jfsd.TrajectoryFromData(data, frames, n)
	return t, jfsd.ErrDecorate(err, "traj.LoadTrajectory")
}

// LoadVelocities reads the particle velocities, of shape (frames, N, 3), from name.
func LoadVelocities(name string) (*jfsd.Trajectory, error) {
	data, frames, n, err := loadFrames(name, 3, "traj.LoadVelocities")
	if err != nil {
		return nil, err
	}
	t, err := jfsd.TrajectoryFromData(data, frames, n)
	return t, jfsd.ErrDecorate(err, "traj.LoadVelocities")
}

// LoadStresslet reads the stresslet array, of shape (frames, N, 5), from name.
func LoadStresslet(name string) (*jfsd.Stresslet, error) {
	data, frames, n, err := loadFrames(name, jfsd.StressletComponents, "traj.LoadStresslet")
	if err != nil {
		return nil, err
	}
	s, err := jfsd.StressletFromData(data, frames, n)
	return s, jfsd.ErrDecorate(err, "traj.LoadStresslet")
}
