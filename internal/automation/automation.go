package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/metrics"
	"github.com/san-kum/meshmodel/internal/physics"
	"github.com/san-kum/meshmodel/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of mode switches replayed against one
// session.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep applies its optional mode changes, then advances Ticks
// frames. Params are written to the wave integrator before stepping.
type ScenarioStep struct {
	Entity *dynamo.EntityMode `yaml:"entity,omitempty"`
	View   *dynamo.ViewMode   `yaml:"view,omitempty"`
	Paused *bool              `yaml:"paused,omitempty"`
	Reset  bool               `yaml:"reset,omitempty"`
	Params map[string]float64 `yaml:"params,omitempty"`
	Ticks  int                `yaml:"ticks"`
}

// StepResult is the session state after a step.
type StepResult struct {
	Step     int
	Entity   dynamo.EntityMode
	View     dynamo.ViewMode
	TimeStep int
	Ticks    int
	Higgs    bool
	Metrics  map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	for i, st := range scenario.Steps {
		if st.Ticks < 0 {
			return nil, fmt.Errorf("step %d: %w: negative ticks", i+1, dynamo.ErrParameterBounds)
		}
	}
	return &scenario, nil
}

// RunScenario executes every step of scenario on s. It stops at the first
// failing step, or when ctx is cancelled, returning the results so far.
func RunScenario(ctx context.Context, s *sim.Session, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := applyStep(s, step); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		for n := 0; n < step.Ticks; n++ {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			s.Step()
		}
		results = append(results, StepResult{
			Step:     i + 1,
			Entity:   s.Entity(),
			View:     s.View(),
			TimeStep: s.TimeStep(),
			Ticks:    s.Ticks(),
			Higgs:    s.HiggsTriggered(),
			Metrics:  s.Metrics(),
		})
	}

	return results, nil
}

func applyStep(s *sim.Session, step ScenarioStep) error {
	for k, v := range step.Params {
		if err := s.Wave().SetParam(k, v); err != nil {
			return fmt.Errorf("param %s: %w", k, err)
		}
	}
	if step.Entity != nil {
		if err := s.Apply(sim.EntityEvent{Mode: *step.Entity}); err != nil {
			return err
		}
	} else if step.Reset {
		if err := s.Apply(sim.ResetEvent{}); err != nil {
			return err
		}
	}
	if step.View != nil {
		if err := s.Apply(sim.ViewEvent{Mode: *step.View}); err != nil {
			return err
		}
	}
	if step.Paused != nil {
		if err := s.Apply(sim.PauseEvent{Paused: *step.Paused}); err != nil {
			return err
		}
	}
	return nil
}

// ParameterSweep runs the wave mode once per value of one integrator
// parameter, from a fresh session each time. Base supplies the other
// parameters; nil means the defaults.
type ParameterSweep struct {
	Grid      *dynamo.Grid
	Base      *physics.Wave
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Ticks     int
}

func newWave(base *physics.Wave) *physics.Wave {
	if base == nil {
		return physics.NewWave()
	}
	return &physics.Wave{
		Dt: base.Dt, C0: base.C0, Feedback: base.Feedback,
		PhiMin: base.PhiMin, PhiMax: base.PhiMax,
		Laplacian: base.Laplacian,
	}
}

type SweepResult struct {
	ParamValue float64
	MaxPeak    float64
	Energy     float64
	Coherence  float64
	ClampHits  float64
	Valid      bool
}

func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", dynamo.ErrParameterBounds)
	}
	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		val := sweep.ParamMin + float64(i)*paramStep
		wave := newWave(sweep.Base)
		if err := wave.SetParam(sweep.ParamName, val); err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, val, err)
		}

		s := sim.New(sweep.Grid, wave)
		peak := metrics.NewPeak()
		energy := metrics.NewEnergy()
		coherence := metrics.NewCoherence()
		clamp := metrics.NewClampHits(wave.PhiMin, wave.PhiMax)
		for _, m := range []sim.Metric{peak, energy, coherence, clamp} {
			s.AddMetric(m)
		}

		for n := 0; n < sweep.Ticks; n++ {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			s.Step()
		}

		results = append(results, SweepResult{
			ParamValue: val,
			MaxPeak:    peak.Value(),
			Energy:     energy.Latest(),
			Coherence:  coherence.Value(),
			ClampHits:  clamp.Value(),
			Valid:      s.State().IsValid(),
		})
	}
	return results, nil
}

// MonteCarloConfig drives the wave mode from random impulse seeds. Workers
// bounds the number of trials run at once, 0 means one per CPU.
type MonteCarloConfig struct {
	Grid      *dynamo.Grid
	Base      *physics.Wave
	NumTrials int
	Impulses  int
	Amplitude float64
	Ticks     int
	Bound     float64
	Seed      int64
	Workers   int
}

type MonteCarloResult struct {
	TrialID int
	Peak    float64
	Stable  bool
}

type impulse struct {
	i, j int
	amp  float64
}

// RunMonteCarlo seeds each trial with Impulses point impulses at random
// samples with amplitudes in [-Amplitude, Amplitude]. A trial is stable
// when the state stays valid and |psi| stays under Bound. Trials run
// concurrently; all impulses are drawn before any trial starts, so a given
// Seed always yields the same results.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 0 || cfg.Impulses < 0 || cfg.Ticks < 0 {
		return nil, fmt.Errorf("%w: trials, impulses and ticks must not be negative, got %d, %d, %d",
			dynamo.ErrParameterBounds, cfg.NumTrials, cfg.Impulses, cfg.Ticks)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	bound := cfg.Bound
	if bound <= 0 {
		bound = 1e6
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	seeds := make([][]impulse, cfg.NumTrials)
	for trial := range seeds {
		seeds[trial] = make([]impulse, cfg.Impulses)
		for k := range seeds[trial] {
			i, j := rng.Intn(cfg.Grid.Ny), rng.Intn(cfg.Grid.Nx)
			seeds[trial][k] = impulse{i, j, (rng.Float64()*2 - 1) * cfg.Amplitude}
		}
	}

	results := make([]MonteCarloResult, cfg.NumTrials)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for trial := range seeds {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			s := sim.New(cfg.Grid, newWave(cfg.Base))
			psi := s.State().Psi
			psi.Fill(0)
			for _, imp := range seeds[idx] {
				psi.Set(imp.i, imp.j, imp.amp)
			}

			stable := true
			for n := 0; n < cfg.Ticks && stable; n++ {
				if ctx.Err() != nil {
					return
				}
				fs := s.Step()
				stable = fs.IsValid() && fs.Psi.MaxAbs() < bound
			}
			results[idx] = MonteCarloResult{TrialID: idx, Peak: s.State().Psi.MaxAbs(), Stable: stable}
		}(trial)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
