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

/*Package jfsd is the main package of the jfsd post-processing library. It
provides the containers for the output of a JFSD (Brownian/Stokesian particle
dynamics) run, i.e. the wrapped position trajectory, the per-particle stresslets
and the velocities, the simulation parameters shared by every analysis, and
the unwrapping of periodic trajectories.


	**jfsd Capabilities**

    Unwraps periodic trajectories with the minimum-image convention.

    Time and ensemble averaged stress from the stresslets, and the particle
	(<xF>) contribution from a stiff short ranged pair potential (package stress).

    Mean squared displacement, direct and windowed (package msd) and the
	linear viscoelastic spectrum derived from it (package lve).

    Radial and planar pair correlation functions (package pair).

    Logarithmic and linear binning statistics (package histo).

    Shear velocity profiles (package profile).

    Reads numpy trajectories, plain or zstd compressed, and writes XYZ
	and STF trajectories (packages traj and traj/stf).

The analyses are deterministic and run to completion over arrays that are
already in memory. Errors carry one of the kinds ErrInvalidDomain,
ErrOutOfRange or ErrShapeMismatch, which can be tested with errors.Is.
*/
package jfsd
