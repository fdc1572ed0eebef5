/*
 * reader_test.go, part of golfd.
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
	"bytes"
	"compress/gzip"
	"compress/lzw"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

// synthetic builds a frame file in memory. Value k of grid g (0 for A, 1 for B)
// of frame f is f*1000 + g*100 + k.
func synthetic(rows, cols, nframes int, order binary.ByteOrder) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# made by the tests\nrows = %d\ncolumns = %d\nnframes = %d\nvmin1 = 0.5\n%s\n", rows, cols, nframes, EndHeader)
	w := make([]byte, 8)
	for f := 0; f < nframes; f++ {
		for g := 0; g < 2; g++ {
			for k := 0; k < rows*cols; k++ {
				order.PutUint64(w, math.Float64bits(float64(f*1000+g*100+k)))
				b.Write(w)
			}
		}
	}
	return b.Bytes()
}

func checkSynthetic(Te *testing.T, F *Frame, rows, cols int) {
	Te.Helper()
	r, c := F.Dims()
	if r != rows || c != cols {
		Te.Fatalf("frame %d has shape %dx%d, expected %dx%d", F.Index, r, c, rows, cols)
	}
	for g, grid := range []*mat.Dense{F.A, F.B} {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				want := float64(F.Index*1000 + g*100 + i*cols + j)
				if got := grid.At(i, j); got != want {
					Te.Fatalf("frame %d grid %d (%d,%d): got %v, expected %v", F.Index, g, i, j, got, want)
				}
			}
		}
	}
}

func TestConcreteFrame(Te *testing.T) {
	var b bytes.Buffer
	b.WriteString("rows = 2\ncolumns = 2\nnframes = 1\nend_header\n")
	binary.Write(&b, binary.LittleEndian, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	R, err := NewReader(&b, "concrete")
	if err != nil {
		Te.Fatal(err)
	}
	F, err := R.ReadFrame()
	if err != nil {
		Te.Fatal(err)
	}
	A := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	B := mat.NewDense(2, 2, []float64{5, 6, 7, 8})
	if !mat.Equal(F.A, A) || !mat.Equal(F.B, B) {
		Te.Errorf("wrong frame:\nA=%v\nB=%v", mat.Formatted(F.A), mat.Formatted(F.B))
	}
	if _, err := R.ReadFrame(); !IsLastFrame(err) {
		Te.Errorf("expected a last frame error after the only frame, got %v", err)
	}
}

func TestRoundTrip(Te *testing.T) {
	rows, cols, nframes := 3, 5, 4
	R, err := NewReader(bytes.NewReader(synthetic(rows, cols, nframes, binary.LittleEndian)), "roundtrip")
	if err != nil {
		Te.Fatal(err)
	}
	n := 0
	for F, err := range R.Frames() {
		if err != nil {
			Te.Fatal(err)
		}
		if F.Index != n {
			Te.Errorf("frame %d came with index %d", n, F.Index)
		}
		checkSynthetic(Te, F, rows, cols)
		n++
	}
	if n != nframes {
		Te.Errorf("read %d frames, expected %d", n, nframes)
	}
	if R.Consumed() != nframes {
		Te.Errorf("reader says %d frames consumed, expected %d", R.Consumed(), nframes)
	}
}

func TestBigEndian(Te *testing.T) {
	R, err := NewReader(bytes.NewReader(synthetic(2, 2, 2, binary.BigEndian)), "bigendian", WithByteOrder(binary.BigEndian))
	if err != nil {
		Te.Fatal(err)
	}
	err = EachFrame(R, func(F *Frame) error {
		checkSynthetic(Te, F, 2, 2)
		return nil
	})
	if err != nil {
		Te.Error(err)
	}
}

func TestSkipThenRead(Te *testing.T) {
	rows, cols, nframes := 4, 3, 5
	data := synthetic(rows, cols, nframes, binary.LittleEndian)
	var all []*Frame
	R, err := NewReader(bytes.NewReader(data), "all")
	if err != nil {
		Te.Fatal(err)
	}
	for F, err := range R.Frames() {
		if err != nil {
			Te.Fatal(err)
		}
		all = append(all, F)
	}
	for skip := 0; skip < nframes; skip++ {
		R, err := NewReader(bytes.NewReader(data), "skip")
		if err != nil {
			Te.Fatal(err)
		}
		for i := 0; i < skip; i++ {
			if err := R.SkipFrame(); err != nil {
				Te.Fatal(err)
			}
		}
		F, err := R.ReadFrame()
		if err != nil {
			Te.Fatal(err)
		}
		if F.Index != skip || !mat.Equal(F.A, all[skip].A) || !mat.Equal(F.B, all[skip].B) {
			Te.Errorf("skipping %d frames didn't give frame %d", skip, skip)
		}
	}
}

func TestNextReusesFrame(Te *testing.T) {
	R, err := NewReader(bytes.NewReader(synthetic(2, 3, 3, binary.LittleEndian)), "next")
	if err != nil {
		Te.Fatal(err)
	}
	F := NewFrame(2, 3)
	A := F.A
	for i := 0; ; i++ {
		err := R.Next(F)
		if err != nil {
			if IsLastFrame(err) {
				if i != 3 {
					Te.Errorf("last frame error after %d frames", i)
				}
				break
			}
			Te.Fatal(err)
		}
		if F.A != A {
			Te.Errorf("Next replaced a grid of the right shape")
		}
		checkSynthetic(Te, F, 2, 3)
	}
	//a frame of the wrong shape gets new grids.
	R, _ = NewReader(bytes.NewReader(synthetic(2, 3, 1, binary.LittleEndian)), "next")
	G := NewFrame(5, 5)
	if err := R.Next(G); err != nil {
		Te.Fatal(err)
	}
	checkSynthetic(Te, G, 2, 3)
}

func TestTruncated(Te *testing.T) {
	rows, cols, nframes := 2, 2, 2
	data := synthetic(rows, cols, nframes, binary.LittleEndian)
	body := bytes.Index(data, []byte(EndHeader+"\n")) + len(EndHeader) + 1
	frame := 2 * 8 * rows * cols
	for _, cut := range []int{1, 8, frame/2 + 3, frame - 1} {
		short := data[:body+frame+cut]
		R, err := NewReader(bytes.NewReader(short), "short")
		if err != nil {
			Te.Fatal(err)
		}
		if _, err := R.ReadFrame(); err != nil {
			Te.Fatalf("first frame should be complete, got %v", err)
		}
		F, err := R.ReadFrame()
		if !errors.Is(err, ErrTruncatedFrame) {
			Te.Errorf("cut %d: expected a truncated frame error, got %v", cut, err)
		}
		if F != nil {
			Te.Errorf("cut %d: got a frame together with the error", cut)
		}
		if R.Readable() {
			Te.Errorf("cut %d: reader still readable after a truncated frame", cut)
		}
		//SkipFrame must fail the same way.
		R, _ = NewReader(bytes.NewReader(short), "short")
		R.SkipFrame()
		if err := R.SkipFrame(); !errors.Is(err, ErrTruncatedFrame) {
			Te.Errorf("cut %d: expected SkipFrame to fail with a truncated frame, got %v", cut, err)
		}
		//and so must the iterator.
		R, _ = NewReader(bytes.NewReader(short), "short")
		n := 0
		var last error
		for _, err := range R.Frames() {
			if err != nil {
				last = err
				break
			}
			n++
		}
		if n != 1 || !errors.Is(last, ErrTruncatedFrame) {
			Te.Errorf("cut %d: iterator gave %d frames and error %v", cut, n, last)
		}
	}
	//A body that ends exactly between frames ends the sequence, but a direct read fails.
	R, _ := NewReader(bytes.NewReader(data[:body+frame]), "short")
	n := 0
	for _, err := range R.Frames() {
		if err != nil {
			Te.Fatal(err)
		}
		n++
	}
	if n != 1 {
		Te.Errorf("expected 1 frame before the clean end, got %d", n)
	}
	R, _ = NewReader(bytes.NewReader(data[:body+frame]), "short")
	R.SkipFrame()
	if _, err := R.ReadFrame(); !errors.Is(err, ErrTruncatedFrame) {
		Te.Errorf("reading past the body should fail with a truncated frame, got %v", err)
	}
}

func TestInvalidDimensions(Te *testing.T) {
	for _, header := range []string{
		"nframes = 1\nrows = 0\ncolumns = 4\nend_header\n",
		"nframes = 1\nrows = 4\nend_header\n",
		"nframes = 1\nrows = -2\ncolumns = 4\nend_header\n",
	} {
		R, err := NewReader(strings.NewReader(header+strings.Repeat("\x00", 64)), "dims")
		if err != nil {
			Te.Fatal(err)
		}
		if _, err := R.ReadFrame(); !errors.Is(err, ErrInvalidDimensions) {
			Te.Errorf("%q: expected invalid dimensions, got %v", header, err)
		}
		if err := R.SkipFrame(); !errors.Is(err, ErrInvalidDimensions) {
			Te.Errorf("%q: expected invalid dimensions on skip, got %v", header, err)
		}
	}
}

func TestHugeDimensions(Te *testing.T) {
	if math.MaxInt == math.MaxInt32 {
		Te.Skip("the dimensions below don't parse as 32-bit ints")
	}
	body := strings.Repeat("\x00", 8)
	//rows*columns*16 doesn't fit in an int.
	for _, dims := range []string{
		"rows = 2147483648\ncolumns = 2147483648\n",
		"rows = 4294967296\ncolumns = 4294967296\n",
		"rows = 1\ncolumns = 9223372036854775807\n",
	} {
		header := "nframes = 1\n" + dims + "end_header\n"
		R, err := NewReader(strings.NewReader(header+body), "huge")
		if err != nil {
			Te.Fatal(err)
		}
		if _, err := R.ReadFrame(); !errors.Is(err, ErrInvalidDimensions) {
			Te.Errorf("%q: expected invalid dimensions on read, got %v", dims, err)
		}
		if err := R.SkipFrame(); !errors.Is(err, ErrInvalidDimensions) {
			Te.Errorf("%q: expected invalid dimensions on skip, got %v", dims, err)
		}
	}
	//Large but valid dimensions over a short body fail without allocating the frame.
	header := "nframes = 1\nrows = 50000\ncolumns = 50000\nend_header\n"
	R, _ := NewReader(strings.NewReader(header+body), "large")
	if _, err := R.ReadFrame(); !errors.Is(err, ErrTruncatedFrame) {
		Te.Errorf("expected a truncated frame, got %v", err)
	}
	R, _ = NewReader(strings.NewReader(header+body), "large")
	if err := R.SkipFrame(); !errors.Is(err, ErrTruncatedFrame) {
		Te.Errorf("expected a truncated frame on skip, got %v", err)
	}
	R, _ = NewReader(strings.NewReader(header+body), "large")
	for _, err := range R.Frames() {
		if !errors.Is(err, ErrTruncatedFrame) {
			Te.Errorf("expected the iterator to yield a truncated frame, got %v", err)
		}
	}
}

func TestStopsAtNFrames(Te *testing.T) {
	//the body holds 3 frames but the header announces 2.
	data := synthetic(2, 3, 3, binary.LittleEndian)
	data = bytes.Replace(data, []byte("nframes = 3"), []byte("nframes = 2"), 1)
	R, err := NewReader(bytes.NewReader(data), "extra")
	if err != nil {
		Te.Fatal(err)
	}
	n := 0
	for F, err := range R.Frames() {
		if err != nil {
			Te.Fatal(err)
		}
		checkSynthetic(Te, F, 2, 3)
		n++
	}
	if n != 2 || R.Consumed() != 2 {
		Te.Errorf("expected 2 frames, got %d (%d consumed)", n, R.Consumed())
	}
	if _, err := R.ReadFrame(); !IsLastFrame(err) {
		Te.Errorf("expected a last frame error, got %v", err)
	}
	R, _ = NewReader(bytes.NewReader(data), "extra")
	var got []int
	err = Walk(R, Policy{}, func(F *Frame, b Bounds) error {
		got = append(got, F.Index)
		return nil
	})
	if err != nil || fmt.Sprint(got) != "[0 1]" {
		Te.Errorf("walk gave frames %v, error %v", got, err)
	}
	R, _ = NewReader(bytes.NewReader(data), "extra")
	F, err := LastFrame(R)
	if err != nil || F.Index != 1 {
		Te.Errorf("last frame should be the last announced one, got %v, %v", F, err)
	}
}

func TestClosedReader(Te *testing.T) {
	R, err := NewReader(bytes.NewReader(synthetic(2, 2, 2, binary.LittleEndian)), "closed")
	if err != nil {
		Te.Fatal(err)
	}
	if err := R.Close(); err != nil {
		Te.Error(err)
	}
	if err := R.Close(); err != nil {
		Te.Errorf("second close failed: %v", err)
	}
	if _, err := R.ReadFrame(); !errors.Is(err, ErrClosed) {
		Te.Errorf("expected ErrClosed, got %v", err)
	}
}

func writeFile(Te *testing.T, name string, data []byte, compress func(io.Writer) io.WriteCloser) string {
	Te.Helper()
	path := filepath.Join(Te.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	var w io.Writer = f
	var c io.WriteCloser
	if compress != nil {
		c = compress(f)
		w = c
	}
	if _, err := w.Write(data); err != nil {
		Te.Fatal(err)
	}
	if c != nil {
		if err := c.Close(); err != nil {
			Te.Fatal(err)
		}
	}
	return path
}

func TestOpen(Te *testing.T) {
	data := synthetic(3, 3, 3, binary.LittleEndian)
	files := []string{
		writeFile(Te, "plain.lfd", data, nil),
		writeFile(Te, "frames.lfd.gz", data, func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }),
		writeFile(Te, "frames.lfd.lzw", data, func(w io.Writer) io.WriteCloser { return lzw.NewWriter(w, lzw.MSB, 8) }),
		writeFile(Te, "frames.lfd.zst", data, func(w io.Writer) io.WriteCloser {
			z, err := zstd.NewWriter(w)
			if err != nil {
				Te.Fatal(err)
			}
			return z
		}),
	}
	for _, name := range files {
		R, err := Open(name)
		if err != nil {
			Te.Fatal(err)
		}
		F, err := LastFrame(R)
		if err != nil {
			Te.Fatal(err)
		}
		if F.Index != 2 {
			Te.Errorf("%s: last frame has index %d", name, F.Index)
		}
		checkSynthetic(Te, F, 3, 3)
		if err := R.Close(); err != nil {
			Te.Error(err)
		}
	}
	if _, err := Open(filepath.Join(Te.TempDir(), "missing.lfd")); !errors.Is(err, os.ErrNotExist) {
		Te.Errorf("expected a not-exist error, got %v", err)
	}
	bad := writeFile(Te, "bad.lfd", []byte("nframes = 3\n"), nil)
	if _, err := Open(bad); !errors.Is(err, ErrMalformedHeader) {
		Te.Errorf("expected a malformed header, got %v", err)
	} else {
		var e *Error
		if !errors.As(err, &e) || e.FileName() != bad {
			Te.Errorf("the error doesn't name the file: %v", err)
		}
	}
}

func TestWalk(Te *testing.T) {
	data := synthetic(2, 2, 5, binary.LittleEndian)
	R, _ := NewReader(bytes.NewReader(data), "walk")
	var got []int
	err := Walk(R, Policy{Stride: 2}, func(F *Frame, b Bounds) error {
		checkSynthetic(Te, F, 2, 2)
		if b.VMin1 != 0.5 {
			Te.Errorf("header bounds not used: %v", b)
		}
		got = append(got, F.Index)
		return nil
	})
	if err != nil {
		Te.Fatal(err)
	}
	if fmt.Sprint(got) != "[0 2 4]" {
		Te.Errorf("stride 2 gave frames %v", got)
	}
	R, _ = NewReader(bytes.NewReader(data), "walk")
	override := Bounds{VMin1: -1, VMax1: 1, VMin2: -2, VMax2: 2}
	calls := 0
	err = Walk(R, Policy{Last: true, Bounds: &override}, func(F *Frame, b Bounds) error {
		calls++
		if F.Index != 4 || b != override {
			Te.Errorf("last frame policy gave frame %d with bounds %v", F.Index, b)
		}
		return nil
	})
	if err != nil || calls != 1 {
		Te.Errorf("last frame policy: %d calls, error %v", calls, err)
	}
	//errors from the callback stop the walk.
	R, _ = NewReader(bytes.NewReader(data), "walk")
	stop := errors.New("stop")
	calls = 0
	err = Walk(R, Policy{}, func(F *Frame, b Bounds) error {
		calls++
		return stop
	})
	if err != stop || calls != 1 {
		Te.Errorf("callback error not propagated: %d calls, error %v", calls, err)
	}
}

func TestBufferedSource(Te *testing.T) {
	//A *bufio.Reader given to NewReader is used as is, so the caller can keep reading it.
	data := synthetic(2, 2, 1, binary.LittleEndian)
	data = append(data, []byte("trailer")...)
	b := bufio.NewReader(bytes.NewReader(data))
	R, err := NewReader(b, "buffered")
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := R.ReadFrame(); err != nil {
		Te.Fatal(err)
	}
	rest, _ := io.ReadAll(b)
	if string(rest) != "trailer" {
		Te.Errorf("reader consumed past the frames: %q left", rest)
	}
}
