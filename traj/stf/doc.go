/*
 * doc.go, part of jfsd.
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

// Package stf reads and writes trajectories in the simple trajectory format,
// a zstd compressed text format that is easy to read from any language and
// much smaller than the .npy output of the simulation.
//
// Format
//
// The file is compressed with z-standard (zstd) and may only contain ASCII
// symbols. It starts with a header of key=value lines, which must include the
// precision ("prec", a positive integer). The header ends with a line that
// starts with "**", followed by one or more spaces and the number of
// particles per frame.
//
// After the header, the file has one line per particle, per frame, with 3
// integers: the x, y and z coordinates multiplied by 10 to the power of the
// precision, and rounded.
//
// Each frame ends with a line starting with "*", optionally followed by
// whitespace and the 9 numbers of the vectors defining the simulation box.
//
// The "**" sequence may only be used as the header termination.
package stf
