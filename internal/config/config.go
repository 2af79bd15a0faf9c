package config

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/orbitlab/orbitsim/internal/body"
	"github.com/orbitlab/orbitsim/internal/engine"
	"github.com/orbitlab/orbitsim/internal/field"
	"github.com/orbitlab/orbitsim/internal/physics"
	"github.com/orbitlab/orbitsim/internal/view"
)

const DefaultBodies = 12

// Config holds the user-tunable simulation settings. Zero values are
// filled in by Normalize so a partial YAML file works.
type Config struct {
	Preset      string  `yaml:"preset"`
	SystemFile  string  `yaml:"system_file"`
	Bodies      int     `yaml:"bodies"`
	Seed        int64   `yaml:"seed"`
	ForcePower  float64 `yaml:"force_power"`
	Dt          float64 `yaml:"dt"`
	Scale       float64 `yaml:"scale"`
	TraceCap    int     `yaml:"trace_cap"`
	TracePeriod int     `yaml:"trace_period"`
	ContourStep float64 `yaml:"contour_step"`
	ContourRes  float64 `yaml:"contour_res"`
}

func DefaultConfig() *Config {
	return &Config{
		Bodies:      DefaultBodies,
		ForcePower:  physics.InverseSquare,
		Dt:          engine.DefaultDt,
		Scale:       view.DefaultScale,
		TraceCap:    engine.DefaultTraceCap,
		TracePeriod: engine.DefaultTracePeriod,
		ContourStep: field.DefaultStep,
		ContourRes:  field.DefaultTol,
	}
}

// Load reads a YAML settings file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Normalize fills unset fields with defaults.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.Bodies <= 0 {
		c.Bodies = d.Bodies
	}
	if c.ForcePower == 0 {
		c.ForcePower = d.ForcePower
	}
	if c.Dt == 0 {
		c.Dt = d.Dt
	}
	if c.Scale <= 0 {
		c.Scale = d.Scale
	}
	if c.TraceCap <= 0 {
		c.TraceCap = d.TraceCap
	}
	if c.TracePeriod <= 0 {
		c.TracePeriod = d.TracePeriod
	}
	if c.ContourStep <= 0 {
		c.ContourStep = d.ContourStep
	}
	if c.ContourRes <= 0 {
		c.ContourRes = d.ContourRes
	}
}

// Records resolves the initial system description: a named preset
// first, then a semicolon system file, then randomized generation.
func (c *Config) Records() ([]body.Record, error) {
	if c.Preset != "" {
		records := GetPreset(c.Preset)
		if records == nil {
			return nil, fmt.Errorf("unknown preset %q", c.Preset)
		}
		return records, nil
	}
	if c.SystemFile != "" {
		f, err := os.Open(c.SystemFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		records, err := body.ParseSystem(f)
		if err != nil {
			return nil, fmt.Errorf("system file %s: %w", c.SystemFile, err)
		}
		return records, nil
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return body.RandomRecords(c.Bodies, rand.New(rand.NewSource(seed))), nil
}

// EngineOptions maps the config onto engine construction parameters.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		ForcePower:  c.ForcePower,
		Dt:          c.Dt,
		TraceCap:    c.TraceCap,
		TracePeriod: c.TracePeriod,
	}
}

// Sampler maps the config onto contour sampling parameters.
func (c *Config) Sampler(m physics.Model) field.Sampler {
	return field.Sampler{Model: m, Step: c.ContourStep, Tol: c.ContourRes}
}
