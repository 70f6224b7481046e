package metrics

import "github.com/san-kum/meshmodel/internal/dynamo"

// Peak tracks the largest |psi| seen since the last reset, plus the latest.
type Peak struct {
	name    string
	latest  float64
	highest float64
}

func NewPeak() *Peak { return &Peak{name: "peak"} }

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(_ *dynamo.Grid, fs *dynamo.FieldState) {
	p.latest = fs.Psi.MaxAbs()
	if p.latest > p.highest {
		p.highest = p.latest
	}
}

func (p *Peak) Value() float64  { return p.highest }
func (p *Peak) Latest() float64 { return p.latest }

func (p *Peak) Reset() {
	p.latest = 0
	p.highest = 0
}
