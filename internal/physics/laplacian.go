package physics

import "github.com/san-kum/meshmodel/internal/dynamo"

// Laplacian returns the 5-point discrete Laplacian of f normalised by dx*dy.
// Both axes wrap around: the neighbour of an edge sample is taken from the
// opposite edge.
func Laplacian(f dynamo.Field, dx, dy float64) dynamo.Field {
	out := dynamo.NewField(f.Nx, f.Ny)
	LaplacianInto(out, f, dx, dy)
	return out
}

// LaplacianFunc computes the Laplacian of f into dst.
type LaplacianFunc func(dst, f dynamo.Field, dx, dy float64)

// LaplacianInto writes the Laplacian of f into dst, which must have the same
// shape and must not alias f.
func LaplacianInto(dst, f dynamo.Field, dx, dy float64) {
	LaplacianRows(dst, f, dx, dy, 0, f.Ny)
}

// LaplacianRows fills rows [lo, hi) of dst. Rows only read f, so disjoint
// ranges may be filled concurrently.
func LaplacianRows(dst, f dynamo.Field, dx, dy float64, lo, hi int) {
	nx, ny := f.Nx, f.Ny
	h := dx * dy
	src := f.Data
	for i := lo; i < hi; i++ {
		up := (i - 1 + ny) % ny
		down := (i + 1) % ny
		row, rowUp, rowDown := i*nx, up*nx, down*nx
		for j := 0; j < nx; j++ {
			left := (j - 1 + nx) % nx
			right := (j + 1) % nx
			c := src[row+j]
			dst.Data[row+j] = (src[rowUp+j] + src[rowDown+j] + src[row+left] + src[row+right] - 4*c) / h
		}
	}
}
