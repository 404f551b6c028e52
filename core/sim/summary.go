package sim

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// RunSummary aggregates a finished trace for reporting.
type RunSummary struct {
	Reason   Reason  `json:"reason"`
	Steps    int     `json:"steps"`
	TFinal   float64 `json:"t_final"`
	SOCFinal float64 `json:"soc_final"`

	AvgCurrent float64 `json:"avg_current_a"`
	MaxCurrent float64 `json:"max_current_a"`
	MinCurrent float64 `json:"min_current_a"`
	AvgVoltage float64 `json:"avg_voltage_v"`
	// EnergyWh is the energy delivered over the run, the trapezoidal
	// integral of power over time.
	EnergyWh float64 `json:"energy_wh"`
}

// Summarize reduces a result to headline figures.
func Summarize(res *Result) RunSummary {
	s := RunSummary{
		Reason:   res.Reason,
		Steps:    len(res.Samples),
		TFinal:   res.TFinal,
		SOCFinal: res.SOCFinal,
	}
	if len(res.Samples) == 0 {
		return s
	}

	ts := make([]float64, len(res.Samples))
	currents := make([]float64, len(res.Samples))
	voltages := make([]float64, len(res.Samples))
	powers := make([]float64, len(res.Samples))
	for i, sm := range res.Samples {
		ts[i] = sm.T
		currents[i] = sm.Current
		voltages[i] = sm.Voltage
		powers[i] = sm.Power
	}

	s.AvgCurrent = stat.Mean(currents, nil)
	s.MaxCurrent = floats.Max(currents)
	s.MinCurrent = floats.Min(currents)
	s.AvgVoltage = stat.Mean(voltages, nil)
	if len(res.Samples) > 1 {
		s.EnergyWh = integrate.Trapezoidal(ts, powers) / 3600
	}
	return s
}
