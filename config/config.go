package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ksahoo/cellsim/core/model"
	"github.com/ksahoo/cellsim/core/profile"
)

// Config is the full simulation input: cell parameters, run settings, load
// profile, and output destinations.
type Config struct {
	Cell   CellConfig   `json:"cell"`
	Sim    SimConfig    `json:"sim"`
	Load   LoadConfig   `json:"load"`
	Output OutputConfig `json:"output"`
}

// CellConfig describes the cell under test. Either a full OCV table or the
// linear v0/v1 shorthand must be given.
type CellConfig struct {
	CapacityAh         float64          `json:"capacity_ah"`
	InternalResistance float64          `json:"internal_resistance"`
	VMin               float64          `json:"v_min"`
	SOCWarn            float64          `json:"soc_warn"`
	PeukertExponent    float64          `json:"peukert_exponent"`
	OCV                []model.OCVPoint `json:"ocv"`
	LinearOCV          *LinearOCV       `json:"linear_ocv"`
}

// LinearOCV is the two-point curve shorthand.
type LinearOCV struct {
	V0 float64 `json:"v0"`
	V1 float64 `json:"v1"`
}

// SimConfig holds the loop settings.
type SimConfig struct {
	InitialSOC     float64 `json:"initial_soc"`
	DtSeconds      float64 `json:"dt_seconds"`
	MaxTimeSeconds float64 `json:"max_time_seconds"`
}

// LoadConfig selects and parameterizes the discharge profile.
type LoadConfig struct {
	// Profile is one of "constant", "pulsed", "ramp", "random".
	Profile string  `json:"profile"`
	Amps    float64 `json:"amps"`
	// PeriodSeconds applies to the pulsed profile.
	PeriodSeconds float64 `json:"period_seconds"`
	// RampSeconds applies to the ramp profile.
	RampSeconds float64 `json:"ramp_seconds"`
	// Seed drives the random profile and noise; fixed seeds reproduce runs.
	Seed int64 `json:"seed"`
	// NoiseFraction adds gaussian load noise as a fraction of Amps; 0
	// disables it.
	NoiseFraction float64 `json:"noise_fraction"`
}

// OutputConfig names optional export destinations; empty paths skip that
// output.
type OutputConfig struct {
	CSVPath  string `json:"csv_path"`
	JSONPath string `json:"json_path"`
	PlotPath string `json:"plot_path"`
}

// Load reads configuration from a yaml or json file with CELLSIM_ environment
// overrides, applies defaults and validates. Errors here are fatal before any
// simulation step runs.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("CELLSIM_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "cellsim_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Sim.InitialSOC == 0 {
		c.Sim.InitialSOC = 1
	}
	if c.Sim.DtSeconds == 0 {
		c.Sim.DtSeconds = 1
	}
	if c.Load.Profile == "" {
		c.Load.Profile = "constant"
	}
	if c.Load.Seed == 0 {
		c.Load.Seed = 1
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Cell.CapacityAh <= 0 {
		return errors.New("cell.capacity_ah must be positive")
	}
	if c.Cell.OCV == nil && c.Cell.LinearOCV == nil {
		return errors.New("cell needs either ocv table or linear_ocv")
	}
	if c.Sim.DtSeconds <= 0 {
		return errors.New("sim.dt_seconds must be positive")
	}
	if c.Sim.MaxTimeSeconds <= 0 {
		return errors.New("sim.max_time_seconds must be positive")
	}
	switch c.Load.Profile {
	case "constant", "random":
	case "pulsed":
		if c.Load.PeriodSeconds <= 0 {
			return errors.New("load.period_seconds must be positive for pulsed profile")
		}
	case "ramp":
		if c.Load.RampSeconds <= 0 {
			return errors.New("load.ramp_seconds must be positive for ramp profile")
		}
	default:
		return fmt.Errorf("unknown load profile %q", c.Load.Profile)
	}
	return nil
}

// CellParams builds the validated model parameters.
func (c CellConfig) CellParams() (model.CellParams, error) {
	var (
		curve model.OCVCurve
		err   error
	)
	if c.OCV != nil {
		curve, err = model.NewOCVCurve(c.OCV)
	} else if c.LinearOCV != nil {
		curve, err = model.LinearOCV(c.LinearOCV.V0, c.LinearOCV.V1)
	} else {
		err = errors.New("no ocv curve configured")
	}
	if err != nil {
		return model.CellParams{}, fmt.Errorf("ocv curve: %w", err)
	}
	p := model.CellParams{
		CapacityAs:         c.CapacityAh * 3600,
		InternalResistance: c.InternalResistance,
		OCV:                curve,
		VMin:               c.VMin,
		SOCWarn:            c.SOCWarn,
		PeukertExponent:    c.PeukertExponent,
	}
	if err := p.Validate(); err != nil {
		return model.CellParams{}, err
	}
	return p, nil
}

// BuildLoad constructs the configured load profile, wrapping it with noise
// when a noise fraction is set. The noise generator is seeded one past the
// profile seed so both streams stay independent but reproducible.
func (c LoadConfig) BuildLoad() (profile.Load, error) {
	var load profile.Load
	switch c.Profile {
	case "constant":
		load = profile.Constant(c.Amps)
	case "pulsed":
		load = profile.Pulsed(c.Amps, c.PeriodSeconds)
	case "ramp":
		load = profile.Ramp(c.Amps, c.RampSeconds)
	case "random":
		load = profile.Random(c.Amps, c.Seed)
	default:
		return nil, fmt.Errorf("unknown load profile %q", c.Profile)
	}
	if c.NoiseFraction > 0 {
		load = profile.WithNoise(load, c.Amps, c.NoiseFraction, c.Seed+1)
	}
	return load, nil
}
