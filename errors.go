/*
 * errors.go, part of golfd.
 *
 * Copyright 2026 The golfd authors
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

package lfd

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for the failure classes of a frame file. Every error returned
// by this package for one of these conditions satisfies errors.Is with the
// corresponding sentinel.
var (
	//The end_header line is missing, or a recognized key has a non-numeric value.
	ErrMalformedHeader = errors.New("malformed header")
	//Fewer bytes remain in the body than a full frame needs.
	ErrTruncatedFrame = errors.New("truncated frame")
	//rows or columns is zero or negative.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")
	//All the frames announced in the header have been consumed.
	ErrLastFrame = errors.New("EOF")
)

const (
	ReaderUnInit  = "Frame reader uninitialized"
	NoSentinel    = "end_header line not found"
	BadValue      = "Can't parse header value"
	ShortGrid     = "Not enough bytes for a full grid"
	BadDimensions = "Grid dimensions must be positive"
	TooLarge      = "Grid dimensions out of range"
)

// Error is the error type for frame file problems. It carries the file involved,
// a trail of the functions it went through, and the failure class it belongs to.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
	kind     error
	cause    error
}

func (err *Error) Error() string {
	msg := fmt.Sprintf("lfd file %s error: %s: %s", err.filename, err.kind, err.message)
	if err.cause != nil {
		msg += ": " + err.cause.Error()
	}
	if len(err.deco) > 0 {
		msg += " (" + strings.Join(err.deco, " <- ") + ")"
	}
	return msg
}

// Unwrap returns the failure class and, if present, the underlying error.
func (err *Error) Unwrap() []error {
	ret := []error{err.kind}
	if err.cause != nil {
		ret = append(ret, err.cause)
	}
	return ret
}

// Decorate adds the name of a caller to the error trail and returns the trail.
// An empty string leaves the trail untouched.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file the failing reader was associated to.
func (err *Error) FileName() string { return err.filename }

// Format returns the format of the file (always "lfd").
func (err *Error) Format() string { return "lfd" }

// Critical returns true if the reader can't be used after the error.
func (err *Error) Critical() bool { return err.critical }

func newError(kind error, message, filename, caller string, cause error) *Error {
	return &Error{
		message:  message,
		filename: filename,
		deco:     []string{caller},
		critical: true,
		kind:     kind,
		cause:    cause,
	}
}

// LastFrameError is implemented by the harmless error returned when a reader
// has no frames left, so it can be told apart from real failures in a type switch.
type LastFrameError interface {
	error
	FileName() string
	NormalLastFrameTermination()
}

type lastFrameError struct {
	deco     []string
	fileName string
}

// NormalLastFrameTermination does nothing.
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "lfd" }

func (E *lastFrameError) Unwrap() error { return ErrLastFrame }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newLastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}

// errDecorate adds caller to the trail of err if err is one of this package's
// errors, and returns err.
func errDecorate(err error, caller string) error {
	switch e := err.(type) {
	case *Error:
		e.Decorate(caller)
	case *lastFrameError:
		e.Decorate(caller)
	}
	return err
}
