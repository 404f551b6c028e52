package model

import (
	"fmt"
	"math"
)

// peukertReferenceHours is the discharge duration defining the reference
// current for Peukert derating (the C/20 rate).
const peukertReferenceHours = 20

// CellParams holds the physical parameters of a single cell. It is built once
// per run and read-only afterwards.
type CellParams struct {
	CapacityAs         float64  // nominal capacity in ampere-seconds
	InternalResistance float64  // ohms, fixed for the whole run
	OCV                OCVCurve // state of charge to open-circuit voltage
	VMin               float64  // low-voltage cutoff threshold in volts
	SOCWarn            float64  // low state-of-charge warning threshold

	// PeukertExponent derates capacity at high discharge rates. Values at or
	// below 1 disable the effect. Typical cells sit between 1.0 and 1.3.
	PeukertExponent float64
}

// Validate checks that the cell configuration is sound. It runs before any
// simulation step, so a bad configuration never yields partial results.
func (p CellParams) Validate() error {
	if p.CapacityAs <= 0 || math.IsInf(p.CapacityAs, 0) || math.IsNaN(p.CapacityAs) {
		return fmt.Errorf("%w: capacity must be positive and finite", ErrInvalidParameter)
	}
	if p.InternalResistance < 0 {
		return fmt.Errorf("%w: internal resistance must not be negative", ErrInvalidParameter)
	}
	if p.OCV.IsZero() {
		return fmt.Errorf("%w: ocv curve is required", ErrInvalidParameter)
	}
	if p.SOCWarn < 0 || p.SOCWarn > 1 {
		return fmt.Errorf("%w: soc warning threshold must be within [0,1], got %v", ErrInvalidParameter, p.SOCWarn)
	}
	if p.PeukertExponent != 0 && p.PeukertExponent < 1 {
		return fmt.Errorf("%w: peukert exponent must be >= 1, got %v", ErrInvalidParameter, p.PeukertExponent)
	}
	return nil
}

// TerminalVoltage computes V = V_oc(soc) - I*R. Current is signed, positive
// means discharge. Pure function of the inputs and the immutable parameters.
func (p CellParams) TerminalVoltage(soc, current float64) (float64, error) {
	ocv, err := p.OCV.Voltage(soc)
	if err != nil {
		return 0, err
	}
	return ocv - current*p.InternalResistance, nil
}

// EffectiveCapacity applies Peukert's law: capacity shrinks at discharge
// rates above the C/20 reference, C_eff = C*(I_ref/I)^(k-1). The factor is
// bounded to [0.3, 2.0] as extreme rates leave the model's validity range.
// Charging or idle current, or a disabled exponent, return the nominal value.
func (p CellParams) EffectiveCapacity(current float64) float64 {
	if current <= 0 || p.PeukertExponent <= 1 {
		return p.CapacityAs
	}
	refAmps := p.CapacityAs / 3600 / peukertReferenceHours
	factor := math.Pow(refAmps/current, p.PeukertExponent-1)
	factor = math.Max(0.3, math.Min(2.0, factor))
	return p.CapacityAs * factor
}

// Power computes instantaneous power P = V*I.
func Power(voltage, current float64) float64 {
	return voltage * current
}
