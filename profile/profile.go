// Package profile computes the velocity profile of a sheared suspension.
package profile

import (
	"log"

	"github.com/jfsdtools/jfsd"
	"github.com/jfsdtools/jfsd/histo"
	"gonum.org/v1/gonum/floats"
)

// Options for the velocity profile.
type Options struct {
	NEdges int //number of bin edges across the box
	//Reverse flips the order of the velocities with respect to the bin
	//centers, as the first versions of the post-processing did.
	Reverse bool
}

// Profile is the x velocity averaged in slabs along y.
type Profile struct {
	Y         []float64 //bin centers
	VX        []float64 //mean x velocity, Missing() where a bin was always empty
	Reference []float64 //y times shear rate over the writing period
}

// Velocity bins the x velocities vel against the y positions t in every
// frame, with edges spanning the box, and averages the binned profiles over
// the frames. A bin that was empty in any frame is missing in the result.
func Velocity(t, vel *jfsd.Trajectory, p *jfsd.Params, opts Options) (*Profile, error) {
	const caller = "profile.Velocity"
	if t.NFrames() != vel.NFrames() || t.Len() != vel.Len() {
		return nil, jfsd.Errorf(jfsd.ErrShapeMismatch, caller, "trajectory of %d frames and %d particles, velocities of %d and %d", t.NFrames(), t.Len(), vel.NFrames(), vel.Len())
	}
	if opts.NEdges < 2 {
		return nil, jfsd.Errorf(jfsd.ErrInvalidDomain, caller, "at least 2 edges are needed, got %d", opts.NEdges)
	}
	if p.ShearRate() == 0 {
		log.Printf("%s: the shear rate is zero", caller)
	}
	half := p.BoxLength() / 2
	n := t.Len()
	y := make([]float64, n)
	vx := make([]float64, n)
	var ret *Profile
	for f := 0; f < t.NFrames(); f++ {
		pos := t.Frame(f)
		v := vel.Frame(f)
		for i := 0; i < n; i++ {
			y[i] = pos.At(i, 1)
			vx[i] = v.At(i, 0)
		}
		s, err := histo.LinBinStat(y, vx, -half, half, opts.NEdges)
		if err != nil {
			if d, ok := err.(jfsd.Decorator); ok {
				d.Decorate(caller)
			}
			return nil, err
		}
		if ret == nil {
			ret = &Profile{Y: s.Centers, VX: s.Values}
			continue
		}
		floats.Add(ret.VX, s.Values)
	}
	floats.Scale(1/float64(t.NFrames()), ret.VX)
	if opts.Reverse {
		floats.Reverse(ret.VX)
	}
	ret.Reference = make([]float64, len(ret.Y))
	floats.ScaleTo(ret.Reference, p.ShearRate()/float64(p.Period()), ret.Y)
	return ret, nil
}
