package stf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jfsdtools/jfsd"
	v3 "github.com/jfsdtools/jfsd/v3"
	"github.com/klauspost/compress/zstd"
)

// DefaultPrecision is the number of decimals kept when no precision is given.
const DefaultPrecision = 3

// StfW writes an STF trajectory.
type StfW struct {
	f         *os.File
	h         *zstd.Encoder
	w         *bufio.Writer
	n         int
	filename  string
	writeable bool
	prec      int
	mult      float64
}

// NewWriter creates the file name and writes the header of an STF trajectory
// with n particles per frame. header can be nil. The "prec" key of header, if
// present, sets the precision. Otherwise DefaultPrecision is used.
func NewWriter(name string, n int, header map[string]string) (*StfW, error) {
	S := &StfW{filename: name, n: n, prec: DefaultPrecision}
	if header == nil {
		header = make(map[string]string)
	}
	if p, ok := header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec < 1 {
			log.Printf("Invalid precision %q for trajectory %s. Will use the default", p, name)
			delete(header, "prec")
		} else {
			S.prec = prec
		}
	}
	header["prec"] = strconv.Itoa(S.prec)
	S.mult = math.Pow(10, float64(S.prec))
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	S.h, err = zstd.NewWriter(S.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		S.f.Close()
		return nil, &Error{"Can't start compression " + err.Error(), name, []string{"NewWriter"}}
	}
	S.w = bufio.NewWriter(S.h)
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(S.w, "%s=%s\n", k, header[k])
	}
	fmt.Fprintf(S.w, "** %d\n", n)
	S.writeable = true
	return S, nil
}

// Len returns the number of particles per frame.
func (S *StfW) Len() int {
	return S.n
}

// WNext writes the frame coord, and the box vectors if given.
func (S *StfW) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !S.writeable {
		return &Error{TrajUnIniWrite, S.filename, []string{"WNext"}}
	}
	if coord == nil {
		return &Error{NilCoordinates, S.filename, []string{"WNext"}}
	}
	if v := coord.NVecs(); v != S.n {
		return &Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.n), S.filename, []string{"WNext"}}
	}
	for i := 0; i < S.n; i++ {
		fmt.Fprintf(S.w, "%d %d %d\n", S.encode(coord.At(i, 0)), S.encode(coord.At(i, 1)), S.encode(coord.At(i, 2)))
	}
	var err error
	if len(box) > 0 && len(box[0]) >= 9 {
		b := box[0]
		_, err = fmt.Fprintf(S.w, "* %g %g %g %g %g %g %g %g %g\n", b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7], b[8])
	} else {
		_, err = S.w.WriteString("*\n")
	}
	if err != nil {
		return &Error{err.Error(), S.filename, []string{"WNext"}}
	}
	return nil
}

func (S *StfW) encode(v float64) int {
	return int(math.RoundToEven(v * S.mult))
}

// Close flushes and closes the file. The writer can't be used after this call.
func (S *StfW) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	err := S.w.Flush()
	if err2 := S.h.Close(); err == nil {
		err = err2
	}
	if err2 := S.f.Close(); err == nil {
		err = err2
	}
	return err
}

// StfR reads an STF trajectory. It implements jfsd.Traj.
type StfR struct {
	f        *os.File
	dec      *zstd.Decoder
	h        *bufio.Reader
	n        int
	filename string
	div      float64
	box      []float64
	readable bool
}

// New opens a STF trajectory for reading, and returns the handle and the
// metadata in its header.
func New(name string) (*StfR, map[string]string, error) {
	S := &StfR{filename: name, n: -1}
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	S.dec, err = zstd.NewReader(bufio.NewReader(S.f))
	if err != nil {
		S.f.Close()
		return nil, nil, &Error{"Can't start decompression " + err.Error(), name, []string{"New"}}
	}
	S.h = bufio.NewReader(S.dec)
	m := make(map[string]string)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			S.close()
			return nil, nil, &Error{"Can't read header " + err.Error(), name, []string{"New"}}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				S.close()
				return nil, nil, &Error{fmt.Sprintf("Can't read the particle number from '%s'", str), name, []string{"New"}}
			}
			S.n, err = strconv.Atoi(nat[1])
			if err != nil {
				S.close()
				return nil, nil, &Error{fmt.Sprintf("Can't read the particle number from '%s': %s", nat[1], err.Error()), name, []string{"New"}}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			S.close()
			return nil, nil, &Error{"Malformed header line " + str, name, []string{"New"}}
		}
		m[kv[0]] = kv[1]
	}
	prec := DefaultPrecision
	if p, ok := m["prec"]; ok {
		prec, err = strconv.Atoi(p)
		if err != nil || prec < 1 {
			S.close()
			return nil, nil, &Error{"Invalid precision " + p, name, []string{"New"}}
		}
	}
	S.div = math.Pow(10, float64(prec))
	S.box = make([]float64, 9)
	S.readable = true
	return S, m, nil
}

// Readable returns true if it is possible to call Next on the handle.
func (S *StfR) Readable() bool {
	return S.readable
}

// Len returns the number of particles in each frame.
func (S *StfR) Len() int {
	return S.n
}

// Box returns the box vectors of the last frame read, or zeros if the frame
// had none.
func (S *StfR) Box() []float64 {
	return append([]float64(nil), S.box...)
}

// Next puts the coordinates of the next frame in c. If c is nil, the frame is
// read and checked, but discarded. At the end of the trajectory it returns an
// error satisfying jfsd.LastFrameError and closes the handle.
func (S *StfR) Next(c *v3.Matrix) error {
	if !S.readable {
		return &Error{TrajUnIniRead, S.filename, []string{"Next"}}
	}
	if c != nil && c.NVecs() != S.n {
		return &Error{fmt.Sprintf("%d coordinates given, but %d expected", c.NVecs(), S.n), S.filename, []string{"Next"}}
	}
	var temp [3]float64
	for i := 0; i < S.n; i++ {
		b, err := S.h.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && i == 0 && b == "" {
				//the trajectory just ended.
				S.Close()
				return newlastFrameError(S.filename, "Next")
			}
			return &Error{err.Error(), S.filename, []string{"Next"}}
		}
		if err = S.decode(strings.TrimSuffix(b, "\n"), &temp); err != nil {
			return &Error{err.Error(), S.filename, []string{"Next"}}
		}
		if c == nil {
			continue
		}
		for j, v := range temp {
			c.Set(i, j, v)
		}
	}
	s, err := S.h.ReadString('\n')
	if err != nil && s == "" {
		return &Error{"Can't read the frame termination mark " + err.Error(), S.filename, []string{"Next"}}
	}
	if !strings.HasPrefix(s, "*") {
		return &Error{WrongFormat, S.filename, []string{"Next"}}
	}
	for i := range S.box {
		S.box[i] = 0
	}
	fields := strings.Fields(s)
	if len(fields) >= 10 {
		for j, v := range fields[1:10] {
			S.box[j], err = strconv.ParseFloat(v, 64)
			if err != nil {
				log.Printf("Failed to read box in a frame from %s", S.filename)
				break
			}
		}
	}
	return nil
}

func (S *StfR) decode(str string, temp *[3]float64) error {
	s := strings.Fields(str)
	if len(s) != 3 {
		return fmt.Errorf("Ill formated coordinates line in stf: %d fields in %q", len(s), str)
	}
	for i, v := range s {
		f, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("Can't parse coordinate %d (%s). Error: %s", i, v, err.Error())
		}
		temp[i] = float64(f) / S.div
	}
	return nil
}

func (S *StfR) close() {
	S.dec.Close()
	S.f.Close()
}

// Close closes the object, and marks it as unreadable.
func (S *StfR) Close() {
	if !S.readable {
		return
	}
	S.close()
	S.readable = false
}

// Dump writes every remaining frame of traj to the STF file name, with the
// given precision (DefaultPrecision if prec < 1) and cubic box edge (no box
// if boxLength <= 0).
func Dump(name string, traj jfsd.Traj, prec int, boxLength float64) error {
	header := map[string]string{}
	if prec > 0 {
		header["prec"] = strconv.Itoa(prec)
	}
	w, err := NewWriter(name, traj.Len(), header)
	if err != nil {
		return err
	}
	var box [][]float64
	if boxLength > 0 {
		box = append(box, []float64{boxLength, 0, 0, 0, boxLength, 0, 0, 0, boxLength})
	}
	coord := v3.Zeros(traj.Len())
	for {
		err = traj.Next(coord)
		if err != nil {
			var last jfsd.LastFrameError
			if errors.As(err, &last) {
				break
			}
			w.Close()
			return jfsd.ErrDecorate(err, "Dump")
		}
		if err = w.WNext(coord, box...); err != nil {
			w.Close()
			return jfsd.ErrDecorate(err, "Dump")
		}
	}
	return w.Close()
}

// Error is the error type for STF trajectories. It fulfills jfsd.Decorator.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
}

func (err *Error) Error() string {
	return fmt.Sprintf("stf file %s error: %s", err.filename, err.message)
}

// Decorate adds the name of a caller to the error.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the failing trajectory was associated
func (err *Error) FileName() string { return err.filename }

// Critical is always true for Error.
func (err *Error) Critical() bool { return true }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the STF file or frame"
)

// lastFrameError implements jfsd.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}
