package metrics

import "github.com/san-kum/meshmodel/internal/dynamo"

// Energy averages the per-sample quantity ½v² + ½psi² over samples and
// ticks. It is a bookkeeping number, not a conserved quantity.
type Energy struct {
	name    string
	samples int
	total   float64
	latest  float64
}

func NewEnergy() *Energy { return &Energy{name: "energy"} }

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(_ *dynamo.Grid, fs *dynamo.FieldState) {
	sum := 0.0
	for k, psi := range fs.Psi.Data {
		v := fs.V.Data[k]
		sum += 0.5*v*v + 0.5*psi*psi
	}
	if n := fs.Psi.Len(); n > 0 {
		e.latest = sum / float64(n)
	}
	e.total += e.latest
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Latest() float64 { return e.latest }

func (e *Energy) Reset() {
	e.total = 0
	e.latest = 0
	e.samples = 0
}
