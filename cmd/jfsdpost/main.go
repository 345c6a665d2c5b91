// Command jfsdpost post-processes the output of a JFSD simulation run.
//
// It reads trajectory.npy (and stresslet.npy, velocities.npy when needed) and
// input.toml from the run directory, and writes the requested analyses there
// as text files and PNG images. Without a settings file only the windowed MSD
// and the binned stresslet average are calculated.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jfsdtools/jfsd"
	"github.com/jfsdtools/jfsd/config"
	"github.com/jfsdtools/jfsd/jfsdplot"
	"github.com/jfsdtools/jfsd/lve"
	"github.com/jfsdtools/jfsd/msd"
	"github.com/jfsdtools/jfsd/pair"
	"github.com/jfsdtools/jfsd/profile"
	"github.com/jfsdtools/jfsd/report"
	"github.com/jfsdtools/jfsd/stress"
	"github.com/jfsdtools/jfsd/traj"
	"github.com/jfsdtools/jfsd/traj/stf"
)

func main() {
	settingsName := flag.String("settings", config.DefaultSettingsFile, "Post-processing settings file. Relative paths start at the run directory.")
	inputName := flag.String("input", config.DefaultInputFile, "Input file of the simulation. Relative paths start at the run directory.")
	dir := flag.String("dir", ".", "Run directory, with the simulation output.")
	example := flag.Bool("example", false, "Print an example settings file and exit.")
	flag.Parse()
	if *example {
		fmt.Print(config.ExampleSettings)
		return
	}
	fmt.Print("JFSD post processing\n\n")
	fmt.Println("Reading the settings file...")
	s, found, err := config.Read(resolve(*dir, *settingsName))
	if err != nil {
		log.Fatal(err)
	}
	if found {
		fmt.Printf("Settings obtained from %s\n\n", *settingsName)
	} else {
		fmt.Print("There is no post processing file! Assuming basic post processing\n\n")
	}
	r, err := newRun(*dir, resolve(*dir, *inputName), s)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(r.summary())
	if err = r.all(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Done!")
}

// resolve returns name, or name relative to dir if it is not absolute.
func resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// run holds the data and the settings of the run being processed.
type run struct {
	dir  string
	name string
	s    *config.Settings
	d    *traj.Data
	p    *jfsd.Params
}

func newRun(dir, input string, s *config.Settings) (*run, error) {
	name, err := report.RunName(dir)
	if err != nil {
		return nil, err
	}
	R := &run{dir: dir, name: name, s: s}
	R.d, err = traj.Load(dir, traj.Want{Stresslet: s.Stresses.Calculate, Velocities: s.VelocityProfile.Calculate})
	if err != nil {
		return nil, err
	}
	fmt.Print(endNote(R.d))
	in, err := config.ReadInput(input)
	if err != nil {
		return nil, err
	}
	R.p, err = jfsd.NewParams(R.d.Trajectory.NFrames(), R.d.Trajectory.Len(), in)
	if err != nil {
		return nil, err
	}
	for _, w := range R.p.Warnings() {
		log.Printf("Warning: %s", w)
	}
	return R, nil
}

// endNote reports where the trajectory ends, if it had empty frames at the end.
func endNote(d *traj.Data) string {
	if !d.Truncated() {
		return ""
	}
	return fmt.Sprintf("File ends at frame %d. Continuing with analysis\n", d.LastFrame+1)
}

// out returns the path of the output file name.
func (R *run) out(name string) string {
	return filepath.Join(R.dir, name)
}

func (R *run) summary() string {
	s := R.s
	var b strings.Builder
	fmt.Fprintln(&b, "Post processing parameters")
	fmt.Fprintln(&b, "-------------------------")
	fmt.Fprintln(&b, R.p)
	fmt.Fprintf(&b, "MSD calculation: %t\n", s.MSD.Calculate)
	if s.MSD.Calculate {
		fmt.Fprintf(&b, "Windowed msd: %t\n", s.MSD.Windowed)
	}
	fmt.Fprintln(&b)
	if s.Stresses.Calculate {
		fmt.Fprintf(&b, "Stress calculation: true with Pe = %g\n", R.p.Pe())
		fmt.Fprintf(&b, "    Raw stress: %t\n", s.Stresses.Raw)
		fmt.Fprintf(&b, "    <xF> correction: %t\n", s.Stresses.ParticleCorrection)
	} else {
		fmt.Fprintln(&b, "Stress calculation: false")
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "g(r) calculation is: %t\n", s.Gofr.Calculate)
	if s.Gofr.Calculate {
		fmt.Fprintf(&b, "Frame = %d\n", s.Gofr.Frame)
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "g(r) on xy plane calculation: %t\n", s.Gofxy.Calculate)
	if s.Gofxy.Calculate {
		fmt.Fprintf(&b, "Frame = %d\n", s.Gofxy.Frame)
		fmt.Fprintf(&b, "Subtract zeroth frame: %t\n", s.Gofxy.SubtractRest)
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Velocity profile calculation: %t\n\n", s.VelocityProfile.Calculate)
	fmt.Fprintf(&b, "Ovito file output: %t\n", s.Export.XYZ)
	fmt.Fprintf(&b, "STF file output: %t\n\n", s.Export.STF)
	fmt.Fprintf(&b, "LVE spectrum calculation: %t\n", s.LVE.Calculate)
	fmt.Fprintln(&b, "-------------------------")
	return b.String()
}

// all runs every enabled calculation, in order.
func (R *run) all() error {
	steps := []struct {
		on   bool
		msg  string
		step func() error
	}{
		{R.s.MSD.Calculate, "Calculating MSD...", R.msd},
		{R.s.Stresses.Calculate, "Calculating stresses...", R.stresses},
		{R.s.Gofr.Calculate, "Calculating g(r)...", R.gofr},
		{R.s.Gofxy.Calculate, "Calculating g(r) on xy plane...", R.gofxy},
		{R.s.VelocityProfile.Calculate, "Calculating velocity profile...", R.velocity},
		{R.s.Export.XYZ || R.s.Export.STF, "Writing trajectory files...", R.export},
		{R.s.LVE.Calculate, "Calculating LVE spectrum...", R.lve},
	}
	for _, s := range steps {
		if !s.on {
			continue
		}
		fmt.Println(s.msg)
		if err := s.step(); err != nil {
			return err
		}
	}
	return nil
}

func (R *run) plot(x, y []float64, title, xlabel, ylabel, dat string) {
	if !R.s.Basic.Plots {
		return
	}
	name := R.out(strings.TrimSuffix(dat, ".dat") + ".png")
	if err := jfsdplot.LogLog(x, y, title, xlabel, ylabel, name); err != nil {
		log.Printf("Warning: can't plot %s: %s", name, err)
	}
}

func (R *run) msd() error {
	res, err := msd.Compute(R.d.Trajectory, R.p, R.s.MSD.Windowed)
	if err != nil {
		return err
	}
	name := report.MSDFile(R.name, res.Windowed)
	//the first frame has a zero MSD
	if err = report.WriteColumns(R.out(name), report.MSDHeader, res.Time[1:], res.MSD[1:]); err != nil {
		return err
	}
	R.plot(res.Time[1:], res.MSD[1:], "MSD", "t/tB", "MSD", name)
	return nil
}

func (R *run) stresses() error {
	bins := R.s.Stresses.Bins
	res, err := stress.AverageStresslet(R.d.Stresslet, R.p, bins)
	if err != nil {
		return err
	}
	name := report.StressFile(R.name, false)
	err = report.WriteColumns(R.out(name), report.StressHeader, res.XY.Centers, res.Strains(), res.XY.Values, res.XX.Values, res.YY.Values, res.ZZ.Values)
	if err != nil {
		return err
	}
	R.plot(res.Strains(), res.XY.Values, "Stress", "strain", "stress xy", name)
	if R.s.Stresses.Raw {
		n := len(res.Raw)
		cols := make([][]float64, 6)
		for i := range cols {
			cols[i] = make([]float64, n)
		}
		for i, row := range res.Raw {
			cols[0][i] = row.Time
			cols[1][i] = row.Strain
			cols[2][i] = row.Tensor.At(0, 1)
			cols[3][i] = row.Tensor.At(0, 0)
			cols[4][i] = row.Tensor.At(1, 1)
			cols[5][i] = row.Tensor.At(2, 2)
		}
		if err = report.WriteColumns(R.out(report.StressFile(R.name, true)), report.StressHeader, cols...); err != nil {
			return err
		}
	}
	if !R.s.Stresses.ParticleCorrection {
		return nil
	}
	//this one is always binned with the default edges.
	ps, err := stress.ParticleStress(R.d.Trajectory, R.p, stress.DefaultBins)
	if err != nil {
		return err
	}
	err = report.WriteColumns(R.out(report.ParticleStressFile(R.name, false)), report.ParticleStressHeader, ps.Binned.Centers, ps.Binned.Values)
	if err != nil || !R.s.Stresses.Raw {
		return err
	}
	return report.WriteColumns(R.out(report.ParticleStressFile(R.name, true)), report.ParticleStressHeader, ps.Strain, ps.XY)
}

func (R *run) gofr() error {
	g := R.s.Gofr
	rdf, err := pair.RadialFrame(R.d.Trajectory, g.Frame, R.d.LastFrame, R.p.BoxLength(), g.Bins, g.Rmax)
	if err != nil {
		return err
	}
	if err = report.WriteColumns(R.out(report.GofrFile(R.name)), report.GofrHeader, rdf.R, rdf.G); err != nil {
		return err
	}
	return report.WriteJSON(R.out(report.GofrCountsFile(R.name)), rdf.Counts)
}

func (R *run) gofxy() error {
	g := R.s.Gofxy
	G, err := pair.PlanarFrame(R.d.Trajectory, g.Frame, R.d.LastFrame, R.s.PlanarOptions(), R.p.BoxLength(), g.SubtractRest)
	if err != nil {
		return err
	}
	name := report.GofxyFile(R.name, g.Frame, g.SubtractRest)
	title := fmt.Sprintf("g(x,y), frame %d", g.Frame)
	if err = jfsdplot.HeatMap(G, title, R.out(name)); err != nil {
		return err
	}
	return report.WriteGrid(R.out(strings.TrimSuffix(name, ".png")+".dat"), G)
}

func (R *run) velocity() error {
	opts := profile.Options{NEdges: R.s.VelocityProfile.Bins, Reverse: R.s.VelocityProfile.Reverse}
	prof, err := profile.Velocity(R.d.Trajectory, R.d.Velocities, R.p, opts)
	if err != nil {
		return err
	}
	return report.WriteColumns(R.out(report.ProfileFile(R.name)), report.ProfileHeader, prof.Y, prof.VX, prof.Reference)
}

func (R *run) export() error {
	t := R.d.Trajectory
	if R.s.Export.XYZ {
		if err := traj.WriteXYZFile(R.out(report.XYZFile(R.name)), t.Reader(), traj.DefaultAtomType); err != nil {
			return err
		}
	}
	if !R.s.Export.STF {
		return nil
	}
	u, err := jfsd.Unwrap(t, R.p.BoxLength())
	if err != nil {
		return err
	}
	return stf.Dump(R.out(report.STFFile(R.name)), u.Reader(), R.s.Export.Precision, R.p.BoxLength())
}

func (R *run) lve() error {
	name := R.out(report.MSDFile(R.name, true))
	if _, err := os.Stat(name); err != nil {
		return fmt.Errorf("the LVE spectrum needs the windowed MSD file: %w", err)
	}
	time, m, err := lve.ReadMSD(name)
	if err != nil {
		return err
	}
	S, err := lve.FromMSD(time, m)
	if err != nil {
		return err
	}
	return report.WriteColumns(R.out(report.LVEFile(R.name)), report.LVEHeader, S.Omega, S.Gp, S.Gpp)
}
