/*
 * header.go, part of golfd.
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// EndHeader is the line that closes the header. The body starts right after its newline.
const EndHeader = "end_header"

// Header holds the recognized fields of a frame file header.
type Header struct {
	NFrames int
	Rows    int
	Columns int
	VMin1   float64
	VMax1   float64
	VMin2   float64
	VMax2   float64
	//All the header lines before end_header, in file order, without the newline.
	Lines []string
}

// ZeroDefaults leaves every field absent from the header at zero.
var ZeroDefaults = Header{}

// FourierDefaults are the display bounds assumed by the Fourier figure
// when the header doesn't carry them.
var FourierDefaults = Header{VMin1: 1.0, VMax1: 4.0, VMin2: 2.0, VMax2: 6.0}

// Bounds returns the display bounds stored in the header.
func (h Header) Bounds() Bounds {
	return Bounds{VMin1: h.VMin1, VMax1: h.VMax1, VMin2: h.VMin2, VMax2: h.VMax2}
}

// Len returns the number of values in each grid.
func (h Header) Len() int {
	return h.Rows * h.Columns
}

// frameBytes is the size of one A+B pair in the body.
func (h Header) frameBytes() int64 {
	return 2 * 8 * int64(h.Rows) * int64(h.Columns)
}

func (h Header) String() string {
	return fmt.Sprintf("%d x %d x %d", h.NFrames, h.Rows, h.Columns)
}

// ParseHeader reads lines from r until the end_header line, which is consumed
// with its newline, so r is left at the first byte of the body. The fields
// not present in the header keep the values they have in defaults. If a key
// appears more than once, the last occurrence wins.
func ParseHeader(r *bufio.Reader, defaults Header) (Header, error) {
	h := defaults
	h.Lines = nil
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return h, newError(ErrMalformedHeader, NoSentinel, "", "ParseHeader", nil)
			}
			return h, newError(ErrMalformedHeader, "Can't read header", "", "ParseHeader", err)
		}
		line = strings.TrimSuffix(line, "\n")
		if line == EndHeader {
			break
		}
		h.Lines = append(h.Lines, line)
	}
	for _, line := range h.Lines {
		if err := h.setField(line); err != nil {
			return h, errDecorate(err, "ParseHeader")
		}
	}
	return h, nil
}

// setField decodes one "key = value" line. Lines with no '=' and unknown keys
// are ignored.
func (h *Header) setField(line string) error {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return nil
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	var err error
	switch key {
	case "nframes":
		h.NFrames, err = strconv.Atoi(value)
	case "rows":
		h.Rows, err = strconv.Atoi(value)
	case "columns":
		h.Columns, err = strconv.Atoi(value)
	case "vmin1":
		h.VMin1, err = strconv.ParseFloat(value, 64)
	case "vmax1":
		h.VMax1, err = strconv.ParseFloat(value, 64)
	case "vmin2":
		h.VMin2, err = strconv.ParseFloat(value, 64)
	case "vmax2":
		h.VMax2, err = strconv.ParseFloat(value, 64)
	default:
		return nil
	}
	if err != nil {
		return newError(ErrMalformedHeader, fmt.Sprintf("%s for key %q", BadValue, key), "", "setField", err)
	}
	return nil
}
