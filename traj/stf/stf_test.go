/*
 * stf_test.go, part of jfsd.
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
 */

package stf

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/jfsdtools/jfsd"
	v3 "github.com/jfsdtools/jfsd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTraj(Te *testing.T, frames, n int) *jfsd.Trajectory {
	r := rand.New(rand.NewSource(5))
	data := make([]float64, frames*n*3)
	for i := range data {
		data[i] = (r.Float64() - 0.5) * 40
	}
	t, err := jfsd.TrajectoryFromData(data, frames, n)
	require.NoError(Te, err)
	return t
}

func TestSTFRoundTrip(Te *testing.T) {
	t := testTraj(Te, 6, 11)
	name := filepath.Join(Te.TempDir(), "test.stf")
	require.NoError(Te, Dump(name, t.Reader(), 0, 40))

	r, m, err := New(name)
	require.NoError(Te, err)
	defer r.Close()
	assert.Equal(Te, "3", m["prec"])
	assert.Equal(Te, 11, r.Len())
	read, err := jfsd.ReadAll(r)
	require.NoError(Te, err)
	require.Equal(Te, 6, read.NFrames())
	for f := 0; f < 6; f++ {
		assert.InDeltaSlice(Te, t.Frame(f).Raw(), read.Frame(f).Raw(), 0.5e-3+1e-12)
	}
	assert.Equal(Te, []float64{40, 0, 0, 0, 40, 0, 0, 0, 40}, r.Box())
	assert.False(Te, r.Readable())
}

func TestSTFWriter(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "w.stf")
	w, err := NewWriter(name, 2, map[string]string{"prec": "1", "source": "test"})
	require.NoError(Te, err)
	c, _ := v3.NewMatrix([]float64{1.24, 2.26, -3.35, 0, 0, 0})
	require.NoError(Te, w.WNext(c))
	assert.Error(Te, w.WNext(v3.Zeros(3)))
	assert.Error(Te, w.WNext(nil))
	require.NoError(Te, w.Close())
	assert.Error(Te, w.WNext(c))

	r, m, err := New(name)
	require.NoError(Te, err)
	assert.Equal(Te, "test", m["source"])
	out := v3.Zeros(2)
	require.NoError(Te, r.Next(out))
	assert.InDeltaSlice(Te, []float64{1.2, 2.3, -3.4, 0, 0, 0}, out.Raw(), 1e-12)
	assert.Equal(Te, make([]float64, 9), r.Box())
	err = r.Next(nil)
	var last jfsd.LastFrameError
	assert.True(Te, errors.As(err, &last))
}

func TestSTFBadFile(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "bad.stf")
	require.NoError(Te, os.WriteFile(name, []byte("this is not zstd"), 0o644))
	_, _, err := New(name)
	assert.Error(Te, err)
	_, _, err = New(filepath.Join(Te.TempDir(), "missing.stf"))
	assert.Error(Te, err)
}
