package physics

import (
	"math"

	"github.com/san-kum/meshmodel/internal/dynamo"
)

const (
	gammaWidth    = 0.02
	gammaCoupling = 0.3
)

var (
	cos30 = math.Cos(30 * math.Pi / 180)
	sin30 = math.Sin(30 * math.Pi / 180)
)

// HiggsDecay behaves like Particle until tick Nx/3, then latches into the
// decayed phase: two gamma fronts leave the decay point at ±30 degrees. The
// latch only clears on Reset, so rewinding t does not undo the decay.
type HiggsDecay struct {
	triggered bool
}

func (h *HiggsDecay) Reset()          { h.triggered = false }
func (h *HiggsDecay) Triggered() bool { return h.triggered }

// DecayTick is the first tick of the decayed phase.
func DecayTick(g *dynamo.Grid) int { return g.Nx / 3 }

func (h *HiggsDecay) Generate(g *dynamo.Grid, t int, fs *dynamo.FieldState) {
	if !h.triggered && t >= DecayTick(g) {
		h.triggered = true
	}
	if !h.triggered {
		Particle{}.Generate(g, t, fs)
		return
	}

	x0, y0 := float64(DecayTick(g))*g.Dx, g.Ly/2
	dist := g.Dx * float64(t-DecayTick(g)) * 0.5
	fx := x0 + dist*cos30
	fy1, fy2 := y0+dist*sin30, y0-dist*sin30
	fill(g, fs, func(x, y float64) (float64, float64, float64) {
		s := gaussian(x, y, fx, fy1, gammaWidth) + gaussian(x, y, fx, fy2, gammaWidth)
		return s, 1.0 + gammaCoupling*s, 0
	})
}
