package metrics

import "github.com/san-kum/meshmodel/internal/dynamo"

// ClampHits is the fraction of Phi samples sitting on either clamp bound,
// averaged over ticks. A value approaching 1 means the wave speed has
// saturated everywhere.
type ClampHits struct {
	name     string
	lo, hi   float64
	fraction float64
	samples  int
}

func NewClampHits(lo, hi float64) *ClampHits {
	return &ClampHits{name: "clamp_hits", lo: lo, hi: hi}
}

func (c *ClampHits) Name() string { return c.name }

func (c *ClampHits) Observe(_ *dynamo.Grid, fs *dynamo.FieldState) {
	if fs.Phi.Len() == 0 {
		return
	}
	hits := 0
	for _, v := range fs.Phi.Data {
		if v <= c.lo || v >= c.hi {
			hits++
		}
	}
	c.fraction += float64(hits) / float64(fs.Phi.Len())
	c.samples++
}

func (c *ClampHits) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.fraction / float64(c.samples)
}

func (c *ClampHits) Reset() {
	c.fraction = 0
	c.samples = 0
}
