package sim

import "github.com/san-kum/meshmodel/internal/dynamo"

// Metric accumulates a scalar summary of the fields over many ticks.
type Metric interface {
	Name() string
	Observe(g *dynamo.Grid, fs *dynamo.FieldState)
	Value() float64
	Reset()
}

// Observer is notified after every tick that mutated the fields.
type Observer interface {
	OnStep(fs *dynamo.FieldState, mode dynamo.EntityMode, tick int)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(fs *dynamo.FieldState, mode dynamo.EntityMode, tick int)

func (f ObserverFunc) OnStep(fs *dynamo.FieldState, mode dynamo.EntityMode, tick int) {
	f(fs, mode, tick)
}
