/*
 * unwrap.go, part of jfsd.
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

import v3 "github.com/jfsdtools/jfsd/v3"

// MinimumImage returns the displacement d corrected for one crossing of a
// periodic boundary of a box with edge boxLength.
func MinimumImage(d, boxLength float64) float64 {
	half := boxLength / 2
	if d > half {
		return d - boxLength
	} else if d < -half {
		return d + boxLength
	}
	return d
}

// Unwrap returns the continuous (unwrapped) version of the periodic
// trajectory t. The first frame is copied as is, and every following frame
// is the previous unwrapped one plus the minimum-image displacement between
// the corresponding wrapped frames. The unwrapped positions may leave the box.
// The result is only correct if no particle moves more than half a box
// length between frames, which is not checked. t is not modified.
//
// The corrections are accumulated as whole box images per coordinate, so a
// coordinate that never crossed a boundary is returned bit for bit.
func Unwrap(t *Trajectory, boxLength float64) (*Trajectory, error) {
	if boxLength <= 0 {
		return nil, Errorf(ErrInvalidDomain, "Unwrap", "the box length must be positive, got %g", boxLength)
	}
	ret := &Trajectory{frames: make([]*v3.Matrix, t.NFrames()), n: t.n}
	ret.frames[0] = v3.Zeros(t.n)
	ret.frames[0].Copy(t.frames[0].Dense)
	images := make([]int, 3*t.n)
	for f := 1; f < t.NFrames(); f++ {
		prev := t.frames[f-1].Raw()
		cur := t.frames[f].Raw()
		ret.frames[f] = v3.Zeros(t.n)
		ucur := ret.frames[f].Raw()
		for i := range images {
			d := cur[i] - prev[i]
			switch c := MinimumImage(d, boxLength); {
			case c < d:
				images[i]--
			case c > d:
				images[i]++
			}
			ucur[i] = cur[i] + float64(images[i])*boxLength
		}
	}
	return ret, nil
}
