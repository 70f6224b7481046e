package metrics

import "github.com/san-kum/meshmodel/internal/dynamo"

// Coherence reports the mean of Phi at the latest tick.
type Coherence struct {
	mean float64
}

func NewCoherence() *Coherence { return &Coherence{} }

func (c *Coherence) Name() string { return "coherence" }

func (c *Coherence) Observe(_ *dynamo.Grid, fs *dynamo.FieldState) {
	c.mean = fs.Phi.Mean()
}

func (c *Coherence) Value() float64 { return c.mean }
func (c *Coherence) Reset()         { c.mean = 0 }
