package metrics

import (
	"github.com/san-kum/meshmodel/internal/physics"
	"github.com/san-kum/meshmodel/internal/sim"
)

// Defaults returns the metric set the frame drivers attach to a session.
// ClampHits uses the bounds of w; nil means the package defaults.
func Defaults(w *physics.Wave) []sim.Metric {
	lo, hi := physics.PhiMin, physics.PhiMax
	if w != nil {
		lo, hi = w.PhiMin, w.PhiMax
	}
	return []sim.Metric{
		NewPeak(),
		NewEnergy(),
		NewCoherence(),
		NewClampHits(lo, hi),
	}
}
