package spectral

import (
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// naiveDFT is the textbook O(n^4) 2D transform.
func naiveDFT(g mat.Matrix) *mat.CDense {
	r, c := g.Dims()
	out := mat.NewCDense(r, c, nil)
	for u := 0; u < r; u++ {
		for v := 0; v < c; v++ {
			var sum complex128
			for i := 0; i < r; i++ {
				for j := 0; j < c; j++ {
					angle := -2 * math.Pi * (float64(u*i)/float64(r) + float64(v*j)/float64(c))
					sum += complex(g.At(i, j), 0) * cmplx.Exp(complex(0, angle))
				}
			}
			out.Set(u, v, sum)
		}
	}
	return out
}

func closeTo(a, b complex128) bool {
	return cmplx.Abs(a-b) < 1e-9
}

func TestFFT2AgainstDFT(Te *testing.T) {
	data := make([]float64, 3*5)
	for i := range data {
		data[i] = math.Sin(float64(i)*0.7) + float64(i%4)
	}
	g := mat.NewDense(3, 5, data)
	got := FFT2(g)
	want := naiveDFT(g)
	for i := 0; i < 3; i++ {
		for j := 0; j < 5; j++ {
			if !closeTo(got.At(i, j), want.At(i, j)) {
				Te.Errorf("(%d,%d): got %v, expected %v", i, j, got.At(i, j), want.At(i, j))
			}
		}
	}
	back := IFFT2(got)
	for i := 0; i < 3; i++ {
		for j := 0; j < 5; j++ {
			if !closeTo(back.At(i, j), complex(g.At(i, j), 0)) {
				Te.Errorf("inverse (%d,%d): got %v, expected %v", i, j, back.At(i, j), g.At(i, j))
			}
		}
	}
}

func TestShiftedMagnitude(Te *testing.T) {
	//a constant grid only has the zero frequency term, which must end up in the center.
	for _, dims := range [][2]int{{4, 4}, {5, 3}} {
		r, c := dims[0], dims[1]
		ones := make([]float64, r*c)
		for i := range ones {
			ones[i] = 1
		}
		m := ShiftedMagnitude(mat.NewDense(r, c, ones))
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				want := 0.0
				if i == r/2 && j == c/2 {
					want = float64(r * c)
				}
				if math.Abs(m.At(i, j)-want) > 1e-9 {
					Te.Errorf("%dx%d (%d,%d): got %v, expected %v", r, c, i, j, m.At(i, j), want)
				}
			}
		}
	}
}

func TestShiftOdd(Te *testing.T) {
	//numpy.fft.fftshift([0, 1, 2, 3, 4]) == [3, 4, 0, 1, 2]
	c := mat.NewCDense(1, 5, []complex128{0, 1, 2, 3, 4})
	s := Shift(c)
	want := []complex128{3, 4, 0, 1, 2}
	for j, v := range want {
		if s.At(0, j) != v {
			Te.Errorf("position %d: got %v, expected %v", j, s.At(0, j), v)
		}
	}
}
