/*
 * interfaces.go, part of jfsd.
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

// Traj is an interface for any sequential trajectory object, an in-memory
// Trajectory or a file reader.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next puts the next frame in output, or discards it if output is nil.
	//At the end of the trajectory it returns an error satisfying LastFrameError.
	Next(output *v3.Matrix) error

	//Returns the number of particles per frame
	Len() int
}

// Decorator is implemented by the errors of this library. The Decorate method
// adds the name of a caller to the error, without changing its type or
// wrapping it around something else, and returns the resulting trail.
// Passing an empty string only returns the current trail.
type Decorator interface {
	error
	Decorate(string) []string
}

// LastFrameError has a useless function to distinguish the harmless errors (i.e. last frame) so they can be
// filtered in a type switch that looks for this interface.
type LastFrameError interface {
	error
	NormalLastFrameTermination() //does nothing, just to separate this interface from other errors
}
