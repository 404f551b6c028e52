package model

import (
	"math"
	"testing"
)

func testParams(t *testing.T) CellParams {
	t.Helper()
	ocv, err := LinearOCV(3.0, 3.7)
	if err != nil {
		t.Fatalf("linear ocv: %v", err)
	}
	return CellParams{
		CapacityAs:         3600,
		InternalResistance: 0.1,
		OCV:                ocv,
		VMin:               3.0,
		SOCWarn:            0.1,
	}
}

func TestTerminalVoltage(t *testing.T) {
	p := testParams(t)
	v, err := p.TerminalVoltage(1, 10)
	if err != nil {
		t.Fatalf("terminal voltage: %v", err)
	}
	// 3.0 + 0.7*1 - 10*0.1
	if math.Abs(v-2.7) > 1e-12 {
		t.Fatalf("expected 2.7 got %v", v)
	}
}

func TestTerminalVoltageIdle(t *testing.T) {
	p := testParams(t)
	v, err := p.TerminalVoltage(0.5, 0)
	if err != nil {
		t.Fatalf("terminal voltage: %v", err)
	}
	if math.Abs(v-3.35) > 1e-12 {
		t.Fatalf("expected open-circuit 3.35 got %v", v)
	}
}

func TestPower(t *testing.T) {
	if got := Power(3.5, 2); got != 7 {
		t.Fatalf("expected 7 got %v", got)
	}
	if got := Power(3.5, 0); got != 0 {
		t.Fatalf("zero current must yield zero power, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	p := testParams(t)
	if err := p.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	bad := p
	bad.CapacityAs = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("zero capacity accepted")
	}
	bad = p
	bad.InternalResistance = -0.1
	if err := bad.Validate(); err == nil {
		t.Fatal("negative resistance accepted")
	}
	bad = p
	bad.OCV = OCVCurve{}
	if err := bad.Validate(); err == nil {
		t.Fatal("missing ocv curve accepted")
	}
	bad = p
	bad.PeukertExponent = 0.8
	if err := bad.Validate(); err == nil {
		t.Fatal("peukert exponent below 1 accepted")
	}
}

func TestEffectiveCapacityDisabled(t *testing.T) {
	p := testParams(t)
	if got := p.EffectiveCapacity(50); got != p.CapacityAs {
		t.Fatalf("exponent unset must return nominal capacity, got %v", got)
	}
	p.PeukertExponent = 1.1
	if got := p.EffectiveCapacity(0); got != p.CapacityAs {
		t.Fatalf("idle current must return nominal capacity, got %v", got)
	}
	if got := p.EffectiveCapacity(-5); got != p.CapacityAs {
		t.Fatalf("charging current must return nominal capacity, got %v", got)
	}
}

func TestEffectiveCapacityDerates(t *testing.T) {
	p := testParams(t)
	p.PeukertExponent = 1.1
	// Reference current is 1Ah/20 = 0.05A; drawing more derates capacity.
	high := p.EffectiveCapacity(10)
	if high >= p.CapacityAs {
		t.Fatalf("high current must derate capacity: %v >= %v", high, p.CapacityAs)
	}
	if high < 0.3*p.CapacityAs {
		t.Fatalf("derating factor must be bounded below at 0.3: %v", high)
	}
	// Drawing below the reference boosts capacity, bounded at 2x.
	low := p.EffectiveCapacity(0.01)
	if low <= p.CapacityAs || low > 2*p.CapacityAs {
		t.Fatalf("low current capacity out of bounds: %v", low)
	}
}
