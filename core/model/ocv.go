package model

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidSOC is returned when a state of charge outside [0,1] is passed to
// a curve lookup that does not clamp.
var ErrInvalidSOC = errors.New("soc out of range [0,1]")

// ErrInvalidParameter wraps every construction-time validation failure. It
// fires before any simulation step runs.
var ErrInvalidParameter = errors.New("invalid parameter")

// OCVPoint is one entry of a SOC to open-circuit-voltage table.
type OCVPoint struct {
	SOC     float64 `json:"soc"`
	Voltage float64 `json:"voltage"`
}

// OCVCurve maps state of charge to open-circuit voltage by piecewise-linear
// interpolation over a monotonic table.
type OCVCurve struct {
	socs  []float64
	volts []float64
}

// NewOCVCurve validates and builds a curve from table points. The table needs
// at least two points, SOC values strictly increasing from 0 to 1, and
// voltages monotonically non-decreasing.
func NewOCVCurve(points []OCVPoint) (OCVCurve, error) {
	if len(points) < 2 {
		return OCVCurve{}, fmt.Errorf("%w: ocv curve needs at least 2 points, got %d", ErrInvalidParameter, len(points))
	}
	if points[0].SOC != 0 || points[len(points)-1].SOC != 1 {
		return OCVCurve{}, fmt.Errorf("%w: ocv curve must span soc 0 to 1", ErrInvalidParameter)
	}
	c := OCVCurve{
		socs:  make([]float64, len(points)),
		volts: make([]float64, len(points)),
	}
	for i, p := range points {
		if i > 0 {
			if p.SOC <= points[i-1].SOC {
				return OCVCurve{}, fmt.Errorf("%w: ocv soc values must be strictly increasing at index %d", ErrInvalidParameter, i)
			}
			if p.Voltage < points[i-1].Voltage {
				return OCVCurve{}, fmt.Errorf("%w: ocv voltage must be non-decreasing at index %d", ErrInvalidParameter, i)
			}
		}
		c.socs[i] = p.SOC
		c.volts[i] = p.Voltage
	}
	return c, nil
}

// LinearOCV builds the two-point curve V_oc(soc) = v0 + (v1-v0)*soc.
func LinearOCV(v0, v1 float64) (OCVCurve, error) {
	return NewOCVCurve([]OCVPoint{{SOC: 0, Voltage: v0}, {SOC: 1, Voltage: v1}})
}

// Voltage returns the open-circuit voltage for soc in [0,1]. Inputs outside
// the range return ErrInvalidSOC; the simulator never produces such values
// because it clamps, so this guards direct callers only.
func (c OCVCurve) Voltage(soc float64) (float64, error) {
	if soc < 0 || soc > 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSOC, soc)
	}
	return c.interpolate(soc), nil
}

// VoltageClamped returns the open-circuit voltage with soc clamped to [0,1].
func (c OCVCurve) VoltageClamped(soc float64) float64 {
	if soc < 0 {
		soc = 0
	} else if soc > 1 {
		soc = 1
	}
	return c.interpolate(soc)
}

func (c OCVCurve) interpolate(soc float64) float64 {
	// Index of the first table soc >= input.
	i := sort.SearchFloat64s(c.socs, soc)
	if i == 0 {
		return c.volts[0]
	}
	if i == len(c.socs) {
		return c.volts[len(c.volts)-1]
	}
	lo, hi := c.socs[i-1], c.socs[i]
	frac := (soc - lo) / (hi - lo)
	return c.volts[i-1] + frac*(c.volts[i]-c.volts[i-1])
}

// IsZero reports whether the curve was never initialised.
func (c OCVCurve) IsZero() bool { return len(c.socs) == 0 }
