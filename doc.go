/*
 * doc.go, part of golfd.
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

/*
Package lfd reads the frame files written by two-dimensional reaction-diffusion
simulations: a text header followed by a sequence of frames, each holding the
concentration grids of the two compounds, A and B.

	**Format**

A frame file starts with a header made of newline-terminated text lines. The
header ends with a line that contains exactly

	end_header

The body starts at the byte right after that line's newline.

Header lines are "key = value" pairs. The keys understood are nframes, rows and
columns (integers) and vmin1, vmax1, vmin2 and vmax2 (floating point display
ranges for A and B). Other keys, and lines without a '=', are ignored. If a key
appears more than once, the last value is used.

The body has nframes frames with no delimiters or padding. Each frame is the
A grid followed by the B grid, each rows*columns IEEE-754 64-bit floats in
row-major order. The format doesn't record the byte order; little endian is
assumed unless the reader is told otherwise.

Files ending in .zst (zstd), .gz (gzip) or .lzw are decompressed on the fly.

	**Reading**

	R, err := lfd.Open("run.lfd")
	if err != nil {
		...
	}
	defer R.Close()
	for F, err := range R.Frames() {
		if err != nil {
			...
		}
		//F.A and F.B are *mat.Dense
	}

LastFrame, EachFrame and Walk implement the usual ways of going through a file.
Errors can be matched against ErrMalformedHeader, ErrTruncatedFrame and
ErrInvalidDimensions with errors.Is.
*/
package lfd
