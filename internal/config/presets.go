package config

import (
	"sort"

	"github.com/san-kum/meshmodel/internal/dynamo"
)

var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"coarse": func() *Config {
		c := DefaultConfig()
		c.Grid.Nx, c.Grid.Ny = 50, 50
		c.FPS = 30
		return c
	},
	"fine": func() *Config {
		c := DefaultConfig()
		c.Grid.Nx, c.Grid.Ny = 160, 160
		c.Wave.Dt = 0.03
		c.Wave.Parallel = true
		return c
	},
	"higgs": func() *Config {
		c := DefaultConfig()
		c.Entity = dynamo.HiggsDecay
		c.Theme = "sunset"
		return c
	},
	"photon": func() *Config {
		c := DefaultConfig()
		c.Entity = dynamo.PhotonTrail
		c.View = dynamo.Coherence
		c.Theme = "ocean"
		return c
	},
	"entangled": func() *Config {
		c := DefaultConfig()
		c.Entity = dynamo.EntangledPair
		return c
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
