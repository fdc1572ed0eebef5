/*
 * reader.go, part of golfd.
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
	"compress/gzip"
	"compress/lzw"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

const (
	lzwOrder        = lzw.MSB
	lzwLitwidth int = 8
)

// ErrClosed is returned when reading from a reader that was closed, or that
// can't be used anymore after a critical error.
var ErrClosed = errors.New("reader not readable")

// Reader reads the frames of a frame file, strictly forward. It is not safe
// for concurrent use.
type Reader struct {
	f        *os.File      //nil if the reader was built over a stream
	dec      io.ReadCloser //decompressor, nil for plain files
	h        *bufio.Reader
	header   Header
	filename string
	order    binary.ByteOrder
	consumed int
	readable bool
	closed   bool
	chunk    []byte    //raw bytes, read chunkBytes at a time
	vals     []float64 //decoded values of the frame being read
}

// chunkBytes is the most body bytes read in one call, so the memory used
// for a frame grows only with the bytes actually present in the body.
const chunkBytes = 1 << 16

type options struct {
	defaults Header
	order    binary.ByteOrder
}

// Option changes how a Reader is built.
type Option func(*options)

// WithDefaults sets the values used for the recognized header keys absent from the file.
// The default is ZeroDefaults.
func WithDefaults(h Header) Option {
	return func(o *options) { o.defaults = h }
}

// WithByteOrder sets the byte order of the floats in the body. The format
// doesn't record it, the default is little endian.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.order = order
		}
	}
}

// zstdCloser makes a *zstd.Decoder an io.ReadCloser.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// prepSource returns a reader that decompresses what it reads from f, if the
// extension of name says the file is compressed: .zst/.zstd (zstd), .gz (gzip)
// or .lzw. Any other extension is read as is, and a nil ReadCloser is returned.
func prepSource(f *os.File, name string) (io.Reader, io.ReadCloser, error) {
	reader := bufio.NewReader(f)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		d, err := zstd.NewReader(reader)
		if err != nil {
			return nil, nil, err
		}
		z := zstdCloser{d}
		return z, z, nil
	case ".gz":
		g, err := gzip.NewReader(reader)
		if err != nil {
			return nil, nil, err
		}
		return g, g, nil
	case ".lzw":
		l := lzw.NewReader(reader, lzwOrder, lzwLitwidth)
		return l, l, nil
	default:
		return reader, nil, nil
	}
}

// Open opens the frame file name for reading and parses its header. The reader
// is positioned at the first frame. The file is closed if anything fails.
// Errors opening the file are returned unchanged.
func Open(name string, opts ...Option) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	src, dec, err := prepSource(f, name)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("lfd file %s: can't start decompression: %w", name, err)
	}
	R, err := NewReader(src, name, opts...)
	if err != nil {
		if dec != nil {
			dec.Close()
		}
		f.Close()
		return nil, errDecorate(err, "Open")
	}
	R.f = f
	R.dec = dec
	return R, nil
}

// NewReader parses the header of a frame file from r and returns a reader
// positioned at the first frame. name is only used in error messages.
// Closing the returned Reader doesn't close r.
func NewReader(r io.Reader, name string, opts ...Option) (*Reader, error) {
	o := options{defaults: ZeroDefaults, order: binary.LittleEndian}
	for _, opt := range opts {
		opt(&o)
	}
	R := new(Reader)
	R.filename = name
	R.order = o.order
	if b, ok := r.(*bufio.Reader); ok {
		R.h = b
	} else {
		R.h = bufio.NewReader(r)
	}
	var err error
	R.header, err = ParseHeader(R.h, o.defaults)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.filename = name
		}
		return nil, errDecorate(err, "NewReader")
	}
	R.readable = true
	return R, nil
}

// Header returns the parsed header.
func (R *Reader) Header() Header {
	return R.header
}

// Len returns the number of values in each grid of a frame.
func (R *Reader) Len() int {
	return R.header.Len()
}

// Readable returns true if frames can still be requested from R.
// It doesn't guarantee that there is something left to read.
func (R *Reader) Readable() bool {
	return R.readable
}

// Consumed returns the number of frames read or skipped so far.
func (R *Reader) Consumed() int {
	return R.consumed
}

// FileName returns the name the reader was opened with.
func (R *Reader) FileName() string {
	return R.filename
}

// Close closes the decompressor and the file, if R opened them.
// It can be called more than once.
func (R *Reader) Close() error {
	if R == nil || R.closed {
		return nil
	}
	R.closed = true
	R.readable = false
	var err error
	if R.dec != nil {
		err = R.dec.Close()
	}
	if R.f != nil {
		if err2 := R.f.Close(); err == nil {
			err = err2
		}
	}
	return err
}

// check returns an error if no frame can be requested from R.
func (R *Reader) check(caller string) error {
	if !R.readable {
		return newError(ErrClosed, ReaderUnInit, R.filename, caller, nil)
	}
	rows, cols := R.header.Rows, R.header.Columns
	if rows <= 0 || cols <= 0 {
		return newError(ErrInvalidDimensions, fmt.Sprintf("%s, got %d rows and %d columns", BadDimensions, rows, cols), R.filename, caller, nil)
	}
	//a frame of 2*rows*cols float64 must be addressable.
	if rows > math.MaxInt/cols || rows*cols > math.MaxInt/16 {
		return newError(ErrInvalidDimensions, fmt.Sprintf("%s, %d rows and %d columns is too large", TooLarge, rows, cols), R.filename, caller, nil)
	}
	if R.consumed >= R.header.NFrames {
		return newLastFrameError(R.filename, caller)
	}
	return nil
}

// truncated builds the error for a frame with got of want bytes and
// marks R as no longer readable.
func (R *Reader) truncated(got, want int64, caller string) error {
	R.readable = false
	msg := fmt.Sprintf("%s: frame %d has %d of %d bytes", ShortGrid, R.consumed, got, want)
	return newError(ErrTruncatedFrame, msg, R.filename, caller, nil)
}

// next reads the next frame into dst, or discards it if dst is nil. It returns the
// number of body bytes it could get. dst is only touched if the whole frame was read,
// and its grids are only allocated then.
func (R *Reader) next(dst *Frame) (int64, error) {
	size := R.header.frameBytes()
	if dst == nil {
		got, err := R.h.Discard(int(size))
		if err != nil {
			if errors.Is(err, io.EOF) {
				return int64(got), R.truncated(int64(got), size, "SkipFrame")
			}
			R.readable = false
			return int64(got), fmt.Errorf("lfd file %s: skipping frame %d: %w", R.filename, R.consumed, err)
		}
		R.consumed++
		return size, nil
	}
	if R.chunk == nil {
		R.chunk = make([]byte, chunkBytes)
	}
	R.vals = R.vals[:0]
	var got int64
	for got < size {
		buf := R.chunk[:min(int64(len(R.chunk)), size-got)]
		n, err := io.ReadFull(R.h, buf)
		got += int64(n)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return got, R.truncated(got, size, "ReadFrame")
			}
			R.readable = false
			return got, fmt.Errorf("lfd file %s: reading frame %d: %w", R.filename, R.consumed, err)
		}
		for off := 0; off < n; off += 8 {
			R.vals = append(R.vals, math.Float64frombits(R.order.Uint64(buf[off:])))
		}
	}
	rows, cols := R.header.Rows, R.header.Columns
	n := rows * cols
	a := mat.NewDense(rows, cols, R.vals[:n])
	b := mat.NewDense(rows, cols, R.vals[n:])
	if dst.fits(rows, cols) {
		dst.A.Copy(a)
		dst.B.Copy(b)
	} else {
		dst.A = mat.NewDense(rows, cols, append([]float64(nil), R.vals[:n]...))
		dst.B = mat.NewDense(rows, cols, append([]float64(nil), R.vals[n:]...))
	}
	dst.Index = R.consumed
	R.consumed++
	return size, nil
}

// ReadFrame reads the next frame. It fails with ErrTruncatedFrame if the body doesn't
// hold a full frame, with ErrInvalidDimensions if the header has no usable grid shape,
// and with a LastFrameError if the nframes frames in the header were already consumed.
func (R *Reader) ReadFrame() (*Frame, error) {
	if err := R.check("ReadFrame"); err != nil {
		return nil, err
	}
	F := new(Frame)
	if _, err := R.next(F); err != nil {
		return nil, err
	}
	return F, nil
}

// Next puts the next frame in dst, reallocating its grids if their shape doesn't match
// the file. If dst is nil, the frame is skipped. Errors are those of ReadFrame.
func (R *Reader) Next(dst *Frame) error {
	caller := "Next"
	if dst == nil {
		caller = "SkipFrame"
	}
	if err := R.check(caller); err != nil {
		return err
	}
	_, err := R.next(dst)
	if err != nil {
		return errDecorate(err, "Next")
	}
	return nil
}

// SkipFrame moves past the next frame without decoding it.
func (R *Reader) SkipFrame() error {
	if err := R.check("SkipFrame"); err != nil {
		return err
	}
	_, err := R.next(nil)
	return err
}

// Frames returns the remaining frames in file order. The sequence ends when nframes
// frames have been consumed, or when the body ends cleanly between two frames.
// A partial frame is yielded as an ErrTruncatedFrame error, after which the
// sequence stops. The sequence can't be restarted.
func (R *Reader) Frames() iter.Seq2[*Frame, error] {
	return R.every(1, "Frames")
}

// every works like Frames, but only decodes the frames whose index is a multiple of
// stride. The others are skipped.
func (R *Reader) every(stride int, caller string) iter.Seq2[*Frame, error] {
	if stride < 1 {
		stride = 1
	}
	return func(yield func(*Frame, error) bool) {
		for {
			if err := R.check(caller); err != nil {
				if !errors.Is(err, ErrLastFrame) {
					yield(nil, err)
				}
				return
			}
			var F *Frame
			if R.consumed%stride == 0 {
				F = new(Frame)
			}
			got, err := R.next(F)
			if err != nil {
				if got == 0 && errors.Is(err, ErrTruncatedFrame) {
					log.Printf("Frame file %s ended after %d of the %d frames announced in its header", R.filename, R.consumed, R.header.NFrames)
					return
				}
				yield(nil, errDecorate(err, caller))
				return
			}
			if F == nil {
				continue
			}
			if !yield(F, nil) {
				return
			}
		}
	}
}
