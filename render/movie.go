/*
 * movie.go, part of golfd.
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

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// Movie writes figures as the frames of an MJPEG AVI file. All the frames must
// have the size of the first one.
type Movie struct {
	name    string
	fps     int
	quality int
	w       mjpeg.AviWriter
	size    image.Point
	buf     bytes.Buffer
	frames  int
}

// NewMovie returns a movie that will be written to name at fps frames per second,
// with JPEG quality quality (1 to 100). The file is created with the first frame.
func NewMovie(name string, fps, quality int) *Movie {
	if fps <= 0 {
		fps = 10
	}
	if quality <= 0 || quality > 100 {
		quality = 90
	}
	return &Movie{name: name, fps: fps, quality: quality}
}

// AddImage appends img to the movie.
func (M *Movie) AddImage(img image.Image) error {
	size := img.Bounds().Size()
	if M.w == nil {
		w, err := mjpeg.New(M.name, int32(size.X), int32(size.Y), int32(M.fps))
		if err != nil {
			return fmt.Errorf("render: creating movie %s: %w", M.name, err)
		}
		M.w = w
		M.size = size
	}
	if size != M.size {
		return fmt.Errorf("render: frame %d of %s is %v, the movie is %v", M.frames, M.name, size, M.size)
	}
	M.buf.Reset()
	if err := jpeg.Encode(&M.buf, img, &jpeg.Options{Quality: M.quality}); err != nil {
		return err
	}
	if err := M.w.AddFrame(M.buf.Bytes()); err != nil {
		return fmt.Errorf("render: adding frame %d to %s: %w", M.frames, M.name, err)
	}
	M.frames++
	return nil
}

// Add draws F and appends it to the movie.
func (M *Movie) Add(F *Figure) error {
	img, err := F.Image()
	if err != nil {
		return err
	}
	return M.AddImage(img)
}

// Frames returns the number of frames written so far.
func (M *Movie) Frames() int {
	return M.frames
}

// Close finishes the AVI file. A movie with no frames leaves no file behind.
func (M *Movie) Close() error {
	if M.w == nil {
		return nil
	}
	err := M.w.Close()
	M.w = nil
	return err
}
