package physics

import (
	"math"

	"github.com/san-kum/meshmodel/internal/dynamo"
)

const (
	DefaultDt       = 0.05
	DefaultC0       = 1.0
	DefaultFeedback = 0.01
	PhiMin          = 0.1
	PhiMax          = 2.0
)

// Wave advances psi and v under a wave equation whose local speed is C0*Phi,
// injects K as forcing and feeds |psi| back into Phi. Phi is clamped to
// [PhiMin, PhiMax] after every step; that clamp is the only guard against
// runaway wave speed.
type Wave struct {
	Dt, C0, Feedback float64
	PhiMin, PhiMax   float64

	// Laplacian overrides the serial stencil, nil means LaplacianInto.
	Laplacian LaplacianFunc

	lap dynamo.Field
}

func NewWave() *Wave {
	return &Wave{Dt: DefaultDt, C0: DefaultC0, Feedback: DefaultFeedback, PhiMin: PhiMin, PhiMax: PhiMax}
}

// Step advances fs by one explicit step of size Dt. K is read, never written.
func (w *Wave) Step(g *dynamo.Grid, fs *dynamo.FieldState) {
	if !w.lap.SameShape(fs.Psi) {
		w.lap = dynamo.NewField(fs.Psi.Nx, fs.Psi.Ny)
	}
	if w.Laplacian != nil {
		w.Laplacian(w.lap, fs.Psi, g.Dx, g.Dy)
	} else {
		LaplacianInto(w.lap, fs.Psi, g.Dx, g.Dy)
	}

	dt := w.Dt
	psi, v, phi, k, lap := fs.Psi.Data, fs.V.Data, fs.Phi.Data, fs.K.Data, w.lap.Data
	for n := range psi {
		ws := w.C0 * phi[n]
		v[n] += dt * (ws * ws) * lap[n]
		psi[n] += dt * v[n]
		psi[n] += dt * k[n]
		p := phi[n] + w.Feedback*math.Abs(psi[n])
		phi[n] = clamp(p, w.PhiMin, w.PhiMax)
	}
}

// Energy is the discrete wave energy: kinetic plus gradient terms summed over
// the torus. It is not conserved because of the K forcing and Phi feedback.
func (w *Wave) Energy(g *dynamo.Grid, fs *dynamo.FieldState) float64 {
	nx, ny := g.Nx, g.Ny
	ke, pe := 0.0, 0.0
	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			v := fs.V.At(i, j)
			ke += 0.5 * v * v
			c := w.C0 * fs.Phi.At(i, j)
			gx := (fs.Psi.At(i, (j+1)%nx) - fs.Psi.At(i, j)) / g.Dx
			gy := (fs.Psi.At((i+1)%ny, j) - fs.Psi.At(i, j)) / g.Dy
			pe += 0.5 * c * c * (gx*gx + gy*gy)
		}
	}
	return (ke + pe) * g.Dx * g.Dy
}

func (w *Wave) GetParams() map[string]float64 {
	return map[string]float64{"dt": w.Dt, "c0": w.C0, "feedback": w.Feedback}
}

func (w *Wave) SetParam(n string, v float64) error {
	switch n {
	case "dt":
		if v <= 0 {
			return dynamo.ErrParameterBounds
		}
		w.Dt = v
	case "c0":
		w.C0 = v
	case "feedback":
		w.Feedback = v
	default:
		return dynamo.ErrParameterBounds
	}
	return nil
}

// clamp pins v to [lo, hi]. A NaN, which only appears once the wave has
// already run away, is pinned to hi.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return hi
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
