package traj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jfsdtools/jfsd"
	v3 "github.com/jfsdtools/jfsd/v3"
)

// DefaultAtomType is the element symbol given to every particle in XYZ files.
const DefaultAtomType = "C"

// WriteXYZ writes every remaining frame of traj to w in the multi-frame XYZ
// format read by OVITO. Frames are numbered from 1 in the comment line.
func WriteXYZ(w io.Writer, traj jfsd.Traj, atomType string) error {
	if atomType == "" {
		atomType = DefaultAtomType
	}
	out := bufio.NewWriter(w)
	n := traj.Len()
	coord := v3.Zeros(n)
	for frame := 0; ; frame++ {
		err := traj.Next(coord)
		if err != nil {
			var last jfsd.LastFrameError
			if errors.As(err, &last) {
				break
			}
			return jfsd.ErrDecorate(err, "traj.WriteXYZ")
		}
		fmt.Fprintf(out, "%d\n", n)
		fmt.Fprintf(out, "Frame %d\n", frame+1)
		for i := 0; i < n; i++ {
			_, err = fmt.Fprintf(out, "%s %.3f %.3f %.3f\n", atomType, coord.At(i, 0), coord.At(i, 1), coord.At(i, 2))
			if err != nil {
				return err
			}
		}
	}
	return out.Flush()
}

// WriteXYZFile writes traj to the XYZ file name, which is created or overwritten.
func WriteXYZFile(name string, traj jfsd.Traj, atomType string) error {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = WriteXYZ(out, traj, atomType); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
