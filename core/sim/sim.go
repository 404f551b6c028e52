package sim

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/ksahoo/cellsim/core/logger"
	"github.com/ksahoo/cellsim/core/model"
	"github.com/ksahoo/cellsim/core/profile"
)

// Reason records why a run completed. Completion is never an error.
type Reason string

const (
	// ReasonDepleted fires when state of charge reaches zero.
	ReasonDepleted Reason = "depleted"
	// ReasonUnderVoltage fires when terminal voltage drops below the cutoff.
	ReasonUnderVoltage Reason = "under_voltage"
	// ReasonTimeLimit fires when the configured horizon is reached.
	ReasonTimeLimit Reason = "time_limit_reached"
)

// Warning flags a non-terminating condition on a single sample.
type Warning string

// WarnLowSOC is attached to the first sample at or below the warning
// threshold, once per run.
const WarnLowSOC Warning = "low_soc"

// Sample is one time step of the discharge trace. Records are immutable once
// appended.
type Sample struct {
	T        float64   `json:"t"`
	SOC      float64   `json:"soc"`
	Current  float64   `json:"current_a"`
	Voltage  float64   `json:"voltage_v"`
	Power    float64   `json:"power_w"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Result is the sole output artifact of a run, owned by the caller.
type Result struct {
	RunID    string   `json:"run_id"`
	Samples  []Sample `json:"samples"`
	Reason   Reason   `json:"reason"`
	TFinal   float64  `json:"t_final"`
	SOCFinal float64  `json:"soc_final"`
}

// Config gathers everything a run needs. Cell parameters are read-only for
// the whole run; mutable state lives inside Run.
type Config struct {
	Cell model.CellParams

	// Load produces the discharge current at each step. Stochastic profiles
	// must be seeded so runs are reproducible.
	Load profile.Load

	InitialSOC float64 // starting state of charge, in (0,1]
	Dt         float64 // fixed timestep in seconds
	MaxTime    float64 // simulation horizon in seconds

	// Log is optional; nil disables logging.
	Log logger.Logger
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

func (c Config) validate() error {
	if err := c.Cell.Validate(); err != nil {
		return fmt.Errorf("cell: %w", err)
	}
	if c.Load == nil {
		return fmt.Errorf("%w: load profile is required", model.ErrInvalidParameter)
	}
	if c.InitialSOC <= 0 || c.InitialSOC > 1 {
		return fmt.Errorf("%w: initial soc must be in (0,1], got %v", model.ErrInvalidParameter, c.InitialSOC)
	}
	if c.Dt <= 0 || math.IsInf(c.Dt, 0) || math.IsNaN(c.Dt) {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", model.ErrInvalidParameter, c.Dt)
	}
	if c.MaxTime <= 0 || math.IsInf(c.MaxTime, 0) || math.IsNaN(c.MaxTime) {
		return fmt.Errorf("%w: max time must be positive and finite, got %v", model.ErrInvalidParameter, c.MaxTime)
	}
	return nil
}

// Run marches the discharge in fixed steps and returns the ordered trace.
//
// Each sample reports the pre-update state: V(t) and P(t) are computed from
// SOC(t), then coulomb counting advances SOC for the next step. The first
// record therefore carries the initial state of charge exactly.
//
// Termination is checked per step, first match wins: depleted, then
// under-voltage, then time limit. The step a condition fires on is still
// recorded. SOC is clamped to [0,1] after every update and the clamped value
// feeds the next step.
//
// Configuration errors surface before any step runs; no partial results.
func Run(cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = nopLogger{}
	}

	res := &Result{RunID: uuid.NewString()}
	soc := cfg.InitialSOC
	t := 0.0
	warned := false

	log.Debugw("run start", map[string]any{
		"run_id":      res.RunID,
		"capacity_as": cfg.Cell.CapacityAs,
		"initial_soc": soc,
		"dt":          cfg.Dt,
		"max_time":    cfg.MaxTime,
	})

	for {
		current := cfg.Load(t)
		voltage := cfg.Cell.OCV.VoltageClamped(soc) - current*cfg.Cell.InternalResistance
		power := model.Power(voltage, current)

		s := Sample{T: t, SOC: soc, Current: current, Voltage: voltage, Power: power}
		if !warned && soc <= cfg.Cell.SOCWarn {
			warned = true
			s.Warnings = append(s.Warnings, WarnLowSOC)
			log.Warnf("soc %.3f at or below warning threshold %.3f at t=%.1fs", soc, cfg.Cell.SOCWarn, t)
		}
		res.Samples = append(res.Samples, s)

		switch {
		case soc <= 0:
			res.Reason = ReasonDepleted
		case voltage < cfg.Cell.VMin:
			res.Reason = ReasonUnderVoltage
		case t >= cfg.MaxTime:
			res.Reason = ReasonTimeLimit
		}
		if res.Reason != "" {
			res.TFinal = t
			res.SOCFinal = soc
			log.Infof("run %s finished: %s at t=%.1fs soc=%.3f", res.RunID, res.Reason, t, soc)
			return res, nil
		}

		soc = clamp(soc - current*cfg.Dt/cfg.Cell.EffectiveCapacity(current))
		t += cfg.Dt
	}
}

func clamp(soc float64) float64 {
	if soc < 0 {
		return 0
	}
	if soc > 1 {
		return 1
	}
	return soc
}
