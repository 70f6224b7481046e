package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/meshmodel/internal/dynamo"
)

// Spectrum returns the magnitude of the first len(data)/2 Fourier bins.
// Any length is accepted.
func Spectrum(data []float64) []float64 {
	if len(data) < 2 {
		return []float64{}
	}
	coeffs := fft.FFTReal(data)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// RowSpectrum is the spectrum of row i of f. Rows wrap, matching the torus.
func RowSpectrum(f dynamo.Field, i int) []float64 {
	i = ((i % f.Ny) + f.Ny) % f.Ny
	row := make([]float64, f.Nx)
	copy(row, f.Row(i))
	return Spectrum(row)
}

// DominantBin returns the index of the strongest non-DC bin, or 0 when the
// spectrum has none.
func DominantBin(ps []float64) int {
	best := 0
	for k := 1; k < len(ps); k++ {
		if best == 0 || ps[k] > ps[best] {
			best = k
		}
	}
	return best
}
