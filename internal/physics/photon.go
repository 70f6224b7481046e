package physics

import "github.com/san-kum/meshmodel/internal/dynamo"

// PhotonTrail is a narrow front leaving x = Lx/4 at half a cell per tick.
type PhotonTrail struct{}

func (PhotonTrail) Center(g *dynamo.Grid, t int) (x, y float64) {
	return g.Lx/4 + float64(t)*g.Dx*0.5, g.Ly / 2
}

func (p PhotonTrail) Generate(g *dynamo.Grid, t int, fs *dynamo.FieldState) {
	cx, cy := p.Center(g, t)
	fill(g, fs, func(x, y float64) (float64, float64, float64) {
		return 1.8 * gaussian(x, y, cx, cy, gammaWidth), 1.0 + gaussian(x, y, cx, cy, particleCore), 0
	})
}
