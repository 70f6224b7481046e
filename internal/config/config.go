package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/meshmodel/internal/compute"
	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultN     = 100
	DefaultL     = 2 * math.Pi
	DefaultFPS   = 60
	DefaultTheme = "cyberpunk"
)

type Config struct {
	Grid   GridConfig        `yaml:"grid"`
	Wave   WaveConfig        `yaml:"wave"`
	Entity dynamo.EntityMode `yaml:"entity"`
	View   dynamo.ViewMode   `yaml:"view"`
	FPS    int               `yaml:"fps"`
	Theme  string            `yaml:"theme"`
}

type GridConfig struct {
	Nx int     `yaml:"nx"`
	Ny int     `yaml:"ny"`
	Lx float64 `yaml:"lx"`
	Ly float64 `yaml:"ly"`
}

type WaveConfig struct {
	Dt       float64 `yaml:"dt"`
	C0       float64 `yaml:"c0"`
	Feedback float64 `yaml:"feedback"`
	Parallel bool    `yaml:"parallel"`
	PhiMin   float64 `yaml:"phi_min"`
	PhiMax   float64 `yaml:"phi_max"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{Nx: DefaultN, Ny: DefaultN, Lx: DefaultL, Ly: DefaultL},
		Wave: WaveConfig{
			Dt:       physics.DefaultDt,
			C0:       physics.DefaultC0,
			Feedback: physics.DefaultFeedback,
			PhiMin:   physics.PhiMin,
			PhiMax:   physics.PhiMax,
		},
		Entity: dynamo.Wave,
		View:   dynamo.Tension,
		FPS:    DefaultFPS,
		Theme:  DefaultTheme,
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the simulator cannot run.
func (c *Config) Validate() error {
	g := c.Grid
	if g.Nx < 2 || g.Ny < 2 || !(g.Lx > 0) || !(g.Ly > 0) {
		return fmt.Errorf("%w: got nx=%d ny=%d lx=%g ly=%g", dynamo.ErrInvalidGrid, g.Nx, g.Ny, g.Lx, g.Ly)
	}
	w := c.Wave
	switch {
	case !(w.Dt > 0):
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrParameterBounds, w.Dt)
	case !(w.PhiMin > 0) || !(w.PhiMax > w.PhiMin):
		return fmt.Errorf("%w: need 0 < phi_min < phi_max, got [%g, %g]", dynamo.ErrParameterBounds, w.PhiMin, w.PhiMax)
	case math.IsNaN(w.C0) || math.IsNaN(w.Feedback):
		return fmt.Errorf("%w: c0 and feedback must be numbers", dynamo.ErrParameterBounds)
	}
	if !c.Entity.Valid() {
		return &dynamo.ModeError{Kind: "entity mode", Value: c.Entity.String()}
	}
	if !c.View.Valid() {
		return &dynamo.ModeError{Kind: "view mode", Value: c.View.String()}
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", dynamo.ErrParameterBounds, c.FPS)
	}
	return nil
}

// BuildGrid constructs the lattice. Call Validate first.
func (c *Config) BuildGrid() *dynamo.Grid {
	return dynamo.NewGrid(c.Grid.Nx, c.Grid.Ny, c.Grid.Lx, c.Grid.Ly)
}

// WaveIntegrator builds the integrator. With Parallel set the Laplacian
// runs on the active compute backend.
func (c *Config) WaveIntegrator() *physics.Wave {
	w := &physics.Wave{
		Dt:       c.Wave.Dt,
		C0:       c.Wave.C0,
		Feedback: c.Wave.Feedback,
		PhiMin:   c.Wave.PhiMin,
		PhiMax:   c.Wave.PhiMax,
	}
	if c.Wave.Parallel {
		w.Laplacian = compute.GetBackend().Laplacian
	}
	return w
}
