package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/jfsdtools/jfsd"
)

// DefaultInputFile is the simulation input file looked for in the run directory.
const DefaultInputFile = "input.toml"

// inputFile mirrors the part of the simulation input file that the
// post-processing needs.
type inputFile struct {
	General struct {
		Dt float64 `toml:"dt"`
	} `toml:"general"`
	Output struct {
		WritingPeriod int `toml:"writing_period"`
	} `toml:"output"`
	Physics struct {
		KT        float64 `toml:"kT"`
		ShearRate float64 `toml:"shear_rate"`
	} `toml:"physics"`
	Box struct {
		Lx float64 `toml:"Lx"`
	} `toml:"box"`
}

func (f *inputFile) input() jfsd.Input {
	return jfsd.Input{
		Dt:        f.General.Dt,
		Period:    f.Output.WritingPeriod,
		KT:        f.Physics.KT,
		ShearRate: f.Physics.ShearRate,
		BoxLength: f.Box.Lx,
	}
}

// ReadInput reads the simulation input file name. Every other key in the
// file is ignored. The values are checked when building the jfsd.Params.
func ReadInput(name string) (jfsd.Input, error) {
	var f inputFile
	if _, err := toml.DecodeFile(name, &f); err != nil {
		return jfsd.Input{}, fmt.Errorf("config.ReadInput: %w", err)
	}
	return f.input(), nil
}

// DecodeInput reads the simulation input from a TOML document.
func DecodeInput(doc string) (jfsd.Input, error) {
	var f inputFile
	if _, err := toml.Decode(doc, &f); err != nil {
		return jfsd.Input{}, fmt.Errorf("config.DecodeInput: %w", err)
	}
	return f.input(), nil
}
