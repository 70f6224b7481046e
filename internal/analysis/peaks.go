package analysis

import (
	"sort"

	"github.com/san-kum/meshmodel/internal/dynamo"
)

// Peak is a strict local maximum of a field.
type Peak struct {
	Row, Col int
	Value    float64
}

// LocalMaxima returns the samples of f that are at least minHeight and
// strictly greater than their four periodic neighbours, highest first.
func LocalMaxima(f dynamo.Field, minHeight float64) []Peak {
	nx, ny := f.Nx, f.Ny
	peaks := make([]Peak, 0)
	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			v := f.At(i, j)
			if v < minHeight {
				continue
			}
			if v > f.At((i+ny-1)%ny, j) && v > f.At((i+1)%ny, j) &&
				v > f.At(i, (j+nx-1)%nx) && v > f.At(i, (j+1)%nx) {
				peaks = append(peaks, Peak{Row: i, Col: j, Value: v})
			}
		}
	}
	sort.SliceStable(peaks, func(a, b int) bool { return peaks[a].Value > peaks[b].Value })
	return peaks
}
