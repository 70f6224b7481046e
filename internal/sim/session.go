package sim

import (
	"fmt"

	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/physics"
)

// Session owns one simulation: the fields, the active modes and the Higgs
// latch. It is driven from a single goroutine and is not safe for concurrent
// use.
type Session struct {
	grid       *dynamo.Grid
	wave       *physics.Wave
	generators map[dynamo.EntityMode]physics.Generator

	state  *dynamo.FieldState
	entity dynamo.EntityMode
	view   dynamo.ViewMode
	paused bool
	ticks  int

	metrics   []Metric
	observers []Observer
}

// New creates a running session on g in Wave mode with the Tension view.
func New(g *dynamo.Grid, wave *physics.Wave) *Session {
	if wave == nil {
		wave = physics.NewWave()
	}
	s := &Session{
		grid:       g,
		wave:       wave,
		generators: physics.NewGenerators(),
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
	s.reset(dynamo.Wave)
	return s
}

func (s *Session) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Session) Grid() *dynamo.Grid        { return s.grid }
func (s *Session) Wave() *physics.Wave       { return s.wave }
func (s *Session) State() *dynamo.FieldState { return s.state }
func (s *Session) Entity() dynamo.EntityMode { return s.entity }
func (s *Session) View() dynamo.ViewMode     { return s.view }
func (s *Session) Paused() bool              { return s.paused }
func (s *Session) Ticks() int                { return s.ticks }
func (s *Session) TimeStep() int             { return s.state.TimeStep }

// Reset switches to mode and rebuilds the fields from scratch: counter at
// zero, latch cleared, psi=v=K=0, Phi uniform, then the mode's seed.
// An unknown mode is rejected before anything changes.
func (s *Session) Reset(mode dynamo.EntityMode) (*dynamo.FieldState, error) {
	if !mode.Valid() {
		return s.state, &dynamo.ModeError{Kind: "entity mode", Value: fmt.Sprint(int(mode))}
	}
	s.reset(mode)
	return s.state, nil
}

func (s *Session) reset(mode dynamo.EntityMode) {
	s.entity = mode
	s.ticks = 0
	for _, gen := range s.generators {
		if r, ok := gen.(physics.Resetter); ok {
			r.Reset()
		}
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	g := s.grid
	fs := dynamo.NewFieldState(g)
	cy := g.Ny / 2
	switch mode {
	case dynamo.Wave:
		fs.Psi.Set(cy, g.Nx/2, 1)
	case dynamo.Particle, dynamo.HiggsDecay:
		s.generators[mode].Generate(g, 0, fs)
	case dynamo.PhotonTrail:
		fs.Psi.Set(cy, g.Nx/4, 1)
	case dynamo.EntangledPair:
		fs.Psi.Set(wrapRow(cy-PairSeedRows, g.Ny), g.Nx/4, 1)
		fs.Psi.Set(wrapRow(cy+PairSeedRows, g.Ny), g.Nx/4, 1)
	}
	s.state = fs
}

// PairSeedRows is the row offset of each entangled seed from the centre row.
const PairSeedRows = 10

func wrapRow(i, n int) int {
	return ((i % n) + n) % n
}

// Step advances one tick and returns the state. While paused it changes
// nothing. Wave mode integrates and leaves TimeStep alone; scripted modes
// advance TimeStep and then render the fields for the new value.
func (s *Session) Step() *dynamo.FieldState {
	if s.paused {
		return s.state
	}

	if s.entity == dynamo.Wave {
		s.wave.Step(s.grid, s.state)
	} else {
		s.state.TimeStep++
		s.generators[s.entity].Generate(s.grid, s.state.TimeStep, s.state)
	}
	s.ticks++

	for _, m := range s.metrics {
		m.Observe(s.grid, s.state)
	}
	for _, o := range s.observers {
		o.OnStep(s.state, s.entity, s.ticks)
	}
	return s.state
}

// Run advances n ticks and returns the final state.
func (s *Session) Run(n int) *dynamo.FieldState {
	for i := 0; i < n; i++ {
		s.Step()
	}
	return s.state
}

func (s *Session) SetViewMode(v dynamo.ViewMode) error {
	if !v.Valid() {
		return &dynamo.ModeError{Kind: "view mode", Value: fmt.Sprint(int(v))}
	}
	s.view = v
	return nil
}

func (s *Session) SetPaused(p bool) { s.paused = p }
func (s *Session) TogglePause()     { s.paused = !s.paused }

// HiggsTriggered reports whether this session's Higgs generator has decayed.
func (s *Session) HiggsTriggered() bool {
	h, ok := s.generators[dynamo.HiggsDecay].(*physics.HiggsDecay)
	return ok && h.Triggered()
}

// SelectField returns the field shown by the current view.
func (s *Session) SelectField() dynamo.Field {
	f, _ := SelectField(s.state, s.view)
	return f
}

// Metrics returns the current value of every registered metric.
func (s *Session) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// SelectField maps a view mode to its field: Tension -> psi,
// Curvature -> K, Coherence -> Phi.
func SelectField(fs *dynamo.FieldState, v dynamo.ViewMode) (dynamo.Field, error) {
	switch v {
	case dynamo.Tension:
		return fs.Psi, nil
	case dynamo.Curvature:
		return fs.K, nil
	case dynamo.Coherence:
		return fs.Phi, nil
	}
	return dynamo.Field{}, &dynamo.ModeError{Kind: "view mode", Value: fmt.Sprint(int(v))}
}
