package physics

import "github.com/san-kum/meshmodel/internal/dynamo"

// Shape widths of the particle bump.
const (
	particleCore = 0.05
	particleHalo = 3.0
)

// Particle is a Gaussian bump at mid height that sweeps right one column per
// tick and wraps every Nx ticks.
type Particle struct{}

func (Particle) Center(g *dynamo.Grid, t int) (x, y float64) {
	return float64(t%g.Nx) * g.Dx, g.Ly / 2
}

func (p Particle) Generate(g *dynamo.Grid, t int, fs *dynamo.FieldState) {
	cx, cy := p.Center(g, t)
	fill(g, fs, func(x, y float64) (float64, float64, float64) {
		core := gaussian(x, y, cx, cy, particleCore)
		return 2.0 * core, 1.0 + core, 0.1 * gaussian(x, y, cx, cy, particleHalo)
	})
}
