/*
 * policy.go, part of golfd.
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

// LastFrame skips all the frames but the last one announced in the header,
// and returns that one.
func LastFrame(R *Reader) (*Frame, error) {
	for R.Consumed() < R.Header().NFrames-1 {
		if err := R.SkipFrame(); err != nil {
			return nil, errDecorate(err, "LastFrame")
		}
	}
	F, err := R.ReadFrame()
	if err != nil {
		return nil, errDecorate(err, "LastFrame")
	}
	return F, nil
}

// EachFrame reads every remaining frame, in order, and gives it to fn.
// It stops at the first error, from R or from fn, and returns it.
func EachFrame(R *Reader, fn func(*Frame) error) error {
	for F, err := range R.Frames() {
		if err != nil {
			return err
		}
		if err := fn(F); err != nil {
			return err
		}
	}
	return nil
}

// Policy selects which frames Walk reads and what display bounds go with them.
type Policy struct {
	//Only the last frame is read.
	Last bool
	//If not nil, used instead of the bounds in the header.
	Bounds *Bounds
	//If larger than 1, only every Stride-th frame, starting with the first one, is
	//decoded. The others are skipped. Ignored if Last is true.
	Stride int
}

// Walk reads the frames selected by p and calls fn with each of them and its display
// bounds. fn is not called for skipped frames. It stops at the first error.
func Walk(R *Reader, p Policy, fn func(*Frame, Bounds) error) error {
	bounds := R.Header().Bounds()
	if p.Bounds != nil {
		bounds = *p.Bounds
	}
	if p.Last {
		F, err := LastFrame(R)
		if err != nil {
			return errDecorate(err, "Walk")
		}
		return fn(F, bounds)
	}
	for F, err := range R.every(p.Stride, "Walk") {
		if err != nil {
			return err
		}
		if err := fn(F, bounds); err != nil {
			return err
		}
	}
	return nil
}

// IsLastFrame tells whether err only means that there were no frames left.
func IsLastFrame(err error) bool {
	_, ok := err.(LastFrameError)
	return ok
}
