package dynamo

import "fmt"

// Grid is a fixed Nx by Ny lattice spanning [0, Lx] x [0, Ly].
// Coordinates are built once and never change.
type Grid struct {
	Nx, Ny int
	Lx, Ly float64
	Dx, Dy float64

	xs, ys []float64
}

// NewGrid builds the lattice. It panics on dimensions below 2 or non-positive
// extents; callers validate user input first (see config.Validate).
func NewGrid(nx, ny int, lx, ly float64) *Grid {
	if nx < 2 || ny < 2 || lx <= 0 || ly <= 0 {
		panic(fmt.Sprintf("%v: nx=%d ny=%d lx=%g ly=%g", ErrInvalidGrid, nx, ny, lx, ly))
	}
	g := &Grid{
		Nx: nx, Ny: ny,
		Lx: lx, Ly: ly,
		Dx: lx / float64(nx-1),
		Dy: ly / float64(ny-1),
		xs: linspace(lx, nx),
		ys: linspace(ly, ny),
	}
	return g
}

func linspace(length float64, n int) []float64 {
	step := length / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * step
	}
	out[n-1] = length
	return out
}

func (g *Grid) Shape() (ny, nx int) { return g.Ny, g.Nx }
func (g *Grid) Size() int           { return g.Nx * g.Ny }

// XAt returns the physical x coordinate of column j.
func (g *Grid) XAt(j int) float64 { return g.xs[j] }

// YAt returns the physical y coordinate of row i.
func (g *Grid) YAt(i int) float64 { return g.ys[i] }

// X returns a copy of the x coordinate array, shape (Ny, Nx).
func (g *Grid) X() Field {
	f := NewField(g.Nx, g.Ny)
	for i := 0; i < g.Ny; i++ {
		copy(f.Data[i*g.Nx:(i+1)*g.Nx], g.xs)
	}
	return f
}

// Y returns a copy of the y coordinate array, shape (Ny, Nx).
func (g *Grid) Y() Field {
	f := NewField(g.Nx, g.Ny)
	for i := 0; i < g.Ny; i++ {
		row := f.Row(i)
		for j := range row {
			row[j] = g.ys[i]
		}
	}
	return f
}

// NewField allocates a zero field shaped like the grid.
func (g *Grid) NewField() Field { return NewField(g.Nx, g.Ny) }

func (g *Grid) String() string {
	return fmt.Sprintf("%dx%d over %.3fx%.3f (dx=%.4f dy=%.4f)", g.Nx, g.Ny, g.Lx, g.Ly, g.Dx, g.Dy)
}
