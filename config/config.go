// Package config reads the post-processing settings and the simulation input
// file of a JFSD run.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/jfsdtools/jfsd"
	"github.com/jfsdtools/jfsd/pair"
	"github.com/jfsdtools/jfsd/stress"
	"github.com/jfsdtools/jfsd/traj/stf"
	"gopkg.in/gcfg.v1"
)

// DefaultSettingsFile is the settings file looked for in the run directory.
const DefaultSettingsFile = "post_process_settings.ini"

// ExampleSettings is a documented settings file with the default values.
const ExampleSettings = `[Basic]

# When true, every other section is ignored and only the windowed MSD and the
# binned stresslet average (80 bins) are calculated. This is also what happens
# when there is no settings file at all.
JustBasic = false

# Write PNG plots of the MSD and of the binned stresses.
# Plots = false

[MSD]
Calculate = true
# The windowed MSD averages over every time origin. The direct one only uses
# the first frame.
Windowed = true

[Stresses]
# Average of the stresslet binned on a log scale of the strain.
Calculate = true
Bins = 80
# Also write the per-frame stresses, unbinned.
Raw = false
# Pairwise <xF> stress from the hard-sphere overlap potential.
ParticleCorrection = false

[Gofxy]
Calculate = false
# Frame at which the map is calculated.
Frame = 10
# Only pairs with |dz| below SliceWidth are counted.
SliceWidth = 1
# Subtract the map of the first frame.
SubtractRest = false
Bins = 100
Xmax = 10
Ymax = 10

[Gofr]
Calculate = false
Frame = 10
Bins = 100
Rmax = 10

[VelocityProfile]
Calculate = false
Bins = 20
# Reverse the order of the binned velocities.
# Reverse = false

[Export]
# OVITO compatible XYZ file of the trajectory.
XYZ = false
# Compressed STF file of the unwrapped trajectory, with Precision decimals.
STF = false
Precision = 3

[LVE]
# Linear viscoelastic spectrum from the MSD file written by a previous step.
Calculate = false
`

// Settings holds the post-processing options.
type Settings struct {
	Basic struct {
		JustBasic bool
		Plots     bool
	}
	MSD struct {
		Calculate bool
		Windowed  bool
	}
	Stresses struct {
		Calculate          bool
		Bins               int
		Raw                bool
		ParticleCorrection bool
	}
	Gofxy struct {
		Calculate    bool
		Frame        int
		SliceWidth   float64
		SubtractRest bool
		Bins         int
		Xmax, Ymax   float64
	}
	Gofr struct {
		Calculate bool
		Frame     int
		Bins      int
		Rmax      float64
	}
	VelocityProfile struct {
		Calculate bool
		Bins      int
		Reverse   bool
	}
	Export struct {
		XYZ       bool
		STF       bool
		Precision int
	}
	LVE struct {
		Calculate bool
	}
}

// Default returns the settings of a settings file with no options set.
func Default() *Settings {
	s := new(Settings)
	s.MSD.Calculate = true
	s.MSD.Windowed = true
	s.Stresses.Calculate = true
	s.Stresses.Bins = stress.DefaultBins
	o := pair.DefaultPlanarOptions()
	s.Gofxy.Frame = 10
	s.Gofxy.SliceWidth = o.SliceWidth
	s.Gofxy.Bins = o.NBins
	s.Gofxy.Xmax = o.Xmax
	s.Gofxy.Ymax = o.Ymax
	s.Gofr.Frame = 10
	s.Gofr.Bins = 100
	s.Gofr.Rmax = 10
	s.VelocityProfile.Bins = 20
	s.Export.Precision = stf.DefaultPrecision
	return s
}

// Basic returns the settings used when there is no settings file, or when it
// asks for the basic calculation only.
func Basic() *Settings {
	s := new(Settings)
	s.Basic.JustBasic = true
	s.MSD.Calculate = true
	s.MSD.Windowed = true
	s.Stresses.Calculate = true
	s.Stresses.Bins = stress.DefaultBins
	return s
}

// Read reads the settings file name over the defaults. Unknown variables are
// ignored. If name doesn't exist, Read returns the Basic settings and
// found = false.
func Read(name string) (s *Settings, found bool, err error) {
	s = Default()
	err = gcfg.FatalOnly(gcfg.ReadFileInto(s, name))
	if errors.Is(err, fs.ErrNotExist) {
		return Basic(), false, nil
	}
	if err != nil {
		return nil, true, fmt.Errorf("config.Read: %s: %w", name, err)
	}
	if s.Basic.JustBasic {
		plots := s.Basic.Plots
		s = Basic()
		s.Basic.Plots = plots
		return s, true, nil
	}
	return s, true, s.CheckInit()
}

// ReadString reads settings from a string, over the defaults.
func ReadString(str string) (*Settings, error) {
	s := Default()
	if err := gcfg.FatalOnly(gcfg.ReadStringInto(s, str)); err != nil {
		return nil, fmt.Errorf("config.ReadString: %w", err)
	}
	if s.Basic.JustBasic {
		plots := s.Basic.Plots
		s = Basic()
		s.Basic.Plots = plots
		return s, nil
	}
	return s, s.CheckInit()
}

// CheckInit checks the options of the enabled calculations. Frame indexes and
// ranges that depend on the trajectory are checked by the calculations.
func (s *Settings) CheckInit() error {
	const caller = "config.CheckInit"
	if s.Stresses.Calculate && s.Stresses.Bins < 2 {
		return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "[Stresses] Bins must be at least 2, got %d", s.Stresses.Bins)
	}
	if s.Gofxy.Calculate {
		switch {
		case s.Gofxy.Frame < 0:
			return jfsd.Errorf(jfsd.ErrOutOfRange, caller, "[Gofxy] Frame can't be negative, got %d", s.Gofxy.Frame)
		case s.Gofxy.Bins < 2:
			return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "[Gofxy] Bins must be at least 2, got %d", s.Gofxy.Bins)
		case s.Gofxy.SliceWidth <= 0:
			return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "[Gofxy] SliceWidth must be positive, got %g", s.Gofxy.SliceWidth)
		case s.Gofxy.Xmax <= 0 || s.Gofxy.Ymax <= 0:
			return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "[Gofxy] Xmax and Ymax must be positive, got %g and %g", s.Gofxy.Xmax, s.Gofxy.Ymax)
		}
	}
	if s.Gofr.Calculate {
		switch {
		case s.Gofr.Frame < 0:
			return jfsd.Errorf(jfsd.ErrOutOfRange, caller, "[Gofr] Frame can't be negative, got %d", s.Gofr.Frame)
		case s.Gofr.Bins < 1:
			return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "[Gofr] Bins must be positive, got %d", s.Gofr.Bins)
		case s.Gofr.Rmax <= 0:
			return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "[Gofr] Rmax must be positive, got %g", s.Gofr.Rmax)
		}
	}
	if s.VelocityProfile.Calculate && s.VelocityProfile.Bins < 2 {
		return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "[VelocityProfile] Bins must be at least 2, got %d", s.VelocityProfile.Bins)
	}
	if s.Export.STF && s.Export.Precision < 1 {
		return jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "[Export] Precision must be positive, got %d", s.Export.Precision)
	}
	return nil
}

// PlanarOptions returns the g(x,y) options of s.
func (s *Settings) PlanarOptions() pair.PlanarOptions {
	return pair.PlanarOptions{
		SliceWidth: s.Gofxy.SliceWidth,
		NBins:      s.Gofxy.Bins,
		Xmax:       s.Gofxy.Xmax,
		Ymax:       s.Gofxy.Ymax,
	}
}
