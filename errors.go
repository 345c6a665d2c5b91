/*
 * errors.go, part of jfsd.
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

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every *Error unwraps to exactly one of them.
var (
	// ErrInvalidDomain: a parameter or data set on which the calculation is not defined.
	ErrInvalidDomain = errors.New("invalid domain")

	// ErrOutOfRange: a frame index or a spatial range outside what the data covers.
	ErrOutOfRange = errors.New("out of range")

	// ErrShapeMismatch: arrays whose frame or particle dimensions disagree.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Error is the error type returned by the jfsd packages. It fulfills Decorator.
type Error struct {
	kind    error
	message string
	deco    []string
}

// Errorf returns a new *Error of the given kind, decorated with the caller name.
func Errorf(kind error, caller, format string, args ...interface{}) *Error {
	e := &Error{kind: kind, message: fmt.Sprintf(format, args...)}
	e.Decorate(caller)
	return e
}

func (err *Error) Error() string {
	if len(err.deco) == 0 {
		return fmt.Sprintf("jfsd: %v: %s", err.kind, err.message)
	}
	return fmt.Sprintf("jfsd: %s: %v: %s", strings.Join(err.deco, "/"), err.kind, err.message)
}

// Unwrap returns the kind of the error.
func (err *Error) Unwrap() error { return err.kind }

// Decorate adds dec to the trail of callers and returns the trail.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical is always true. None of the errors in this library can be ignored.
func (err *Error) Critical() bool { return true }

// ErrDecorate decorates err with the caller's name if err is a Decorator,
// and returns it unchanged otherwise. A nil err gives nil.
func ErrDecorate(err error, caller string) error {
	var d Decorator
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}
