/*
 * export.go, part of golfd.
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

package colorscheme

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Format is the layout of an exported table.
type Format int

const (
	//C writes one "r, g, b," line per colour, components in [0, 1] with a float
	//suffix, ready to be pasted in a C/C++ array initializer.
	C Format = iota
	//Hex writes one #rrggbb per line.
	Hex
	//JSON writes an array of {"r": , "g": , "b": } objects, components in [0, 1].
	JSON
)

// ParseFormat returns the format called s ("c", "hex" or "json").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "c", "":
		return C, nil
	case "hex":
		return Hex, nil
	case "json":
		return JSON, nil
	}
	return C, fmt.Errorf("colorscheme: unknown table format %q", s)
}

func (f Format) String() string {
	switch f {
	case Hex:
		return "hex"
	case JSON:
		return "json"
	}
	return "c"
}

type rgb struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Export samples the gradient called name at n evenly spaced points and writes
// the colours to w in format f.
func Export(w io.Writer, name string, n int, f Format) error {
	g, err := Get(name)
	if err != nil {
		return err
	}
	return WriteTable(w, Sample(g, n), f)
}

// WriteTable writes colours to w in format f.
func WriteTable(w io.Writer, colors []colorful.Color, f Format) error {
	if f == JSON {
		table := make([]rgb, len(colors))
		for i, c := range colors {
			table[i] = rgb{R: c.R, G: c.G, B: c.B}
		}
		return json.NewEncoder(w).Encode(table)
	}
	bw := bufio.NewWriter(w)
	for _, c := range colors {
		switch f {
		case Hex:
			fmt.Fprintln(bw, c.Hex())
		default:
			fmt.Fprintf(bw, "                %7.6ff, %7.6ff, %7.6ff,\n", c.R, c.G, c.B)
		}
	}
	return bw.Flush()
}
