package physics

import "github.com/san-kum/meshmodel/internal/dynamo"

// EntangledPair is two fronts leaving the origin column together, advancing
// in x while separating symmetrically about y = Ly/2.
type EntangledPair struct{}

func (EntangledPair) Offset(g *dynamo.Grid, t int) float64 {
	return float64(t) * g.Dx * 0.5
}

func (e EntangledPair) Generate(g *dynamo.Grid, t int, fs *dynamo.FieldState) {
	off := e.Offset(g, t)
	mid := g.Ly / 2
	fill(g, fs, func(x, y float64) (float64, float64, float64) {
		s := gaussian(x, y, off, mid-off, gammaWidth) + gaussian(x, y, off, mid+off, gammaWidth)
		return s, 1.0 + gammaCoupling*s, 0
	})
}
