/*
 * params.go, part of jfsd.
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

import "fmt"

// Input contains the simulation settings that are not contained in the
// trajectory itself. They come from the input file of the simulation.
type Input struct {
	Dt        float64 //integration timestep
	Period    int     //number of steps between written frames
	KT        float64 //thermal energy
	ShearRate float64
	BoxLength float64 //edge of the cubic box
}

// WarningKind identifies a degenerate input that was accepted after
// substituting a safe value.
type WarningKind int

const (
	// WarnZeroTemperature: kT was 0 and was replaced by 1.
	WarnZeroTemperature WarningKind = iota + 1
)

// Warning is a non-fatal observation made while building the Params.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string { return w.Message }

// Params is the immutable set of simulation parameters shared by every
// analysis of a run. It can only be built with NewParams.
type Params struct {
	steps     int
	n         int
	dt        float64
	period    int
	time      []float64
	kT        float64
	shearRate float64
	box       float64
	warnings  []Warning
}

// NewParams builds the Params for a trajectory with the given number of
// frames and particles. A zero kT is replaced by 1 and a WarnZeroTemperature
// warning is recorded, so every normalization downstream can divide by kT.
func NewParams(frames, particles int, in Input) (*Params, error) {
	const caller = "NewParams"
	switch {
	case frames < 1:
		return nil, Errorf(ErrInvalidDomain, caller, "the trajectory needs at least 1 frame, got %d", frames)
	case particles < 1:
		return nil, Errorf(ErrInvalidDomain, caller, "the trajectory needs at least 1 particle, got %d", particles)
	case in.Dt <= 0:
		return nil, Errorf(ErrInvalidDomain, caller, "dt must be positive, got %g", in.Dt)
	case in.Period < 1:
		return nil, Errorf(ErrInvalidDomain, caller, "the writing period must be positive, got %d", in.Period)
	case in.BoxLength <= 0:
		return nil, Errorf(ErrInvalidDomain, caller, "the box length must be positive, got %g", in.BoxLength)
	case in.KT < 0:
		return nil, Errorf(ErrInvalidDomain, caller, "kT can't be negative, got %g", in.KT)
	}
	p := &Params{
		steps:     frames,
		n:         particles,
		dt:        in.Dt,
		period:    in.Period,
		kT:        in.KT,
		shearRate: in.ShearRate,
		box:       in.BoxLength,
	}
	if p.kT == 0 {
		p.kT = 1
		p.warnings = append(p.warnings, Warning{
			Kind:    WarnZeroTemperature,
			Message: "kT is zero, using kT = 1 for the Brownian time and the normalizations",
		})
	}
	p.time = make([]float64, frames)
	for i := range p.time {
		p.time[i] = float64(i) * p.dt * float64(p.period)
	}
	return p, nil
}

// Steps returns the number of frames.
func (p *Params) Steps() int { return p.steps }

// N returns the number of particles.
func (p *Params) N() int { return p.n }

// Dt returns the integration timestep.
func (p *Params) Dt() float64 { return p.dt }

// Period returns the number of timesteps between frames.
func (p *Params) Period() int { return p.period }

// Time returns a copy of the absolute time of each frame.
func (p *Params) Time() []float64 {
	ret := make([]float64, len(p.time))
	copy(ret, p.time)
	return ret
}

// KT returns the thermal energy, after the zero substitution.
func (p *Params) KT() float64 { return p.kT }

// ShearRate returns the shear rate.
func (p *Params) ShearRate() float64 { return p.shearRate }

// BoxLength returns the edge of the cubic box.
func (p *Params) BoxLength() float64 { return p.box }

// Volume returns the volume of the box.
func (p *Params) Volume() float64 { return p.box * p.box * p.box }

// BrownianTime returns the Brownian relaxation time, 1/kT.
func (p *Params) BrownianTime() float64 { return 1 / p.kT }

// Pe returns the Peclet number, shear_rate/kT.
func (p *Params) Pe() float64 { return p.shearRate * p.BrownianTime() }

// StressScale returns N/V/kT, the factor that turns particle averaged
// stresses into the dimensionless stress of the suspension.
func (p *Params) StressScale() float64 {
	return float64(p.n) / p.Volume() / p.kT
}

// Warnings returns the warnings recorded while building p.
func (p *Params) Warnings() []Warning {
	ret := make([]Warning, len(p.warnings))
	copy(ret, p.warnings)
	return ret
}

func (p *Params) String() string {
	return fmt.Sprintf("frames: %d particles: %d dt: %g period: %d kT: %g shear rate: %g box: %g Pe: %g",
		p.steps, p.n, p.dt, p.period, p.kT, p.shearRate, p.box, p.Pe())
}
