package analysis

import (
	"math"

	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/physics"
)

// DivergenceRate estimates the largest growth rate of a small disturbance
// under the wave integrator, in log units per unit time. Two copies of
// start are stepped side by side, the second with psi raised by
// perturbation at (row, col). After every step the separation over psi, v
// and Phi is measured and the copy is pulled back to distance perturbation
// along the same direction. A positive value means nearby states separate.
// start is not modified.
func DivergenceRate(g *dynamo.Grid, w *physics.Wave, start *dynamo.FieldState, row, col int, perturbation float64, ticks int) float64 {
	if ticks <= 0 || !(perturbation > 0) {
		return 0
	}

	a, b := start.Clone(), start.Clone()
	b.Psi.Set(row, col, b.Psi.At(row, col)+perturbation)
	d0 := perturbation

	sumLog := 0.0
	count := 0
	for n := 0; n < ticks; n++ {
		w.Step(g, a)
		w.Step(g, b)

		sep := math.Sqrt(sqDiff(a.Psi, b.Psi) + sqDiff(a.V, b.V) + sqDiff(a.Phi, b.Phi))
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		renormalize(a.Psi, b.Psi, scale)
		renormalize(a.V, b.V, scale)
		renormalize(a.Phi, b.Phi, scale)
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * w.Dt)
}

func sqDiff(a, b dynamo.Field) float64 {
	s := 0.0
	for k, v := range a.Data {
		d := b.Data[k] - v
		s += d * d
	}
	return s
}

func renormalize(ref, f dynamo.Field, scale float64) {
	for k, v := range ref.Data {
		f.Data[k] = v + (f.Data[k]-v)*scale
	}
}
