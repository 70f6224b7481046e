package physics

import (
	"math"

	"github.com/san-kum/meshmodel/internal/dynamo"
)

// Generator assigns psi, Phi and K for tick t directly, overwriting whatever
// the fields held. Generators never touch v.
type Generator interface {
	Generate(g *dynamo.Grid, t int, fs *dynamo.FieldState)
}

// Resetter is implemented by generators that carry state across ticks.
type Resetter interface {
	Reset()
}

// NewGenerators returns a fresh generator for every scripted entity mode.
// Wave has no generator; it is driven by [Wave].
func NewGenerators() map[dynamo.EntityMode]Generator {
	return map[dynamo.EntityMode]Generator{
		dynamo.Particle:      Particle{},
		dynamo.HiggsDecay:    &HiggsDecay{},
		dynamo.PhotonTrail:   PhotonTrail{},
		dynamo.EntangledPair: EntangledPair{},
	}
}

// gaussian returns exp(-r²/width) for the distance between (x, y) and (cx, cy).
func gaussian(x, y, cx, cy, width float64) float64 {
	ddx, ddy := x-cx, y-cy
	return math.Exp(-(ddx*ddx + ddy*ddy) / width)
}

// fill evaluates fn at every sample and stores the three results.
func fill(g *dynamo.Grid, fs *dynamo.FieldState, fn func(x, y float64) (psi, phi, k float64)) {
	for i := 0; i < g.Ny; i++ {
		y := g.YAt(i)
		base := i * g.Nx
		for j := 0; j < g.Nx; j++ {
			psi, phi, k := fn(g.XAt(j), y)
			fs.Psi.Data[base+j] = psi
			fs.Phi.Data[base+j] = phi
			fs.K.Data[base+j] = k
		}
	}
}
