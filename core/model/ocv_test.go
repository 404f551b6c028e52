package model

import (
	"errors"
	"math"
	"testing"
)

func TestOCVCurveInterpolation(t *testing.T) {
	c, err := NewOCVCurve([]OCVPoint{
		{SOC: 0, Voltage: 3.0},
		{SOC: 0.5, Voltage: 3.5},
		{SOC: 1, Voltage: 4.2},
	})
	if err != nil {
		t.Fatalf("build curve: %v", err)
	}
	cases := []struct {
		soc, want float64
	}{
		{0, 3.0},
		{0.25, 3.25},
		{0.5, 3.5},
		{0.75, 3.85},
		{1, 4.2},
	}
	for _, tc := range cases {
		got, err := c.Voltage(tc.soc)
		if err != nil {
			t.Fatalf("voltage(%v): %v", tc.soc, err)
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("voltage(%v) = %v, want %v", tc.soc, got, tc.want)
		}
	}
}

func TestOCVCurveMonotonic(t *testing.T) {
	c, err := NewOCVCurve([]OCVPoint{
		{SOC: 0, Voltage: 3.0},
		{SOC: 0.2, Voltage: 3.3},
		{SOC: 0.6, Voltage: 3.3},
		{SOC: 1, Voltage: 4.1},
	})
	if err != nil {
		t.Fatalf("build curve: %v", err)
	}
	// V_oc(soc1) >= V_oc(soc2) whenever soc1 > soc2.
	prev := math.Inf(-1)
	for soc := 0.0; soc <= 1.0; soc += 0.01 {
		v, err := c.Voltage(soc)
		if err != nil {
			t.Fatalf("voltage(%v): %v", soc, err)
		}
		if v < prev {
			t.Fatalf("voltage decreased at soc %v: %v < %v", soc, v, prev)
		}
		prev = v
	}
}

func TestOCVCurveRejectsBadTables(t *testing.T) {
	cases := []struct {
		name   string
		points []OCVPoint
	}{
		{"too short", []OCVPoint{{SOC: 0, Voltage: 3}}},
		{"missing endpoints", []OCVPoint{{SOC: 0.1, Voltage: 3}, {SOC: 1, Voltage: 4}}},
		{"non-increasing soc", []OCVPoint{{SOC: 0, Voltage: 3}, {SOC: 0.5, Voltage: 3.5}, {SOC: 0.5, Voltage: 3.6}, {SOC: 1, Voltage: 4}}},
		{"decreasing voltage", []OCVPoint{{SOC: 0, Voltage: 3}, {SOC: 0.5, Voltage: 2.9}, {SOC: 1, Voltage: 4}}},
	}
	for _, tc := range cases {
		if _, err := NewOCVCurve(tc.points); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestOCVCurveInvalidSOC(t *testing.T) {
	c, err := LinearOCV(3.0, 4.2)
	if err != nil {
		t.Fatalf("linear ocv: %v", err)
	}
	for _, soc := range []float64{-0.01, 1.01, 5} {
		if _, err := c.Voltage(soc); !errors.Is(err, ErrInvalidSOC) {
			t.Fatalf("voltage(%v): expected ErrInvalidSOC, got %v", soc, err)
		}
	}
	if got := c.VoltageClamped(-1); got != 3.0 {
		t.Fatalf("clamped low = %v, want 3.0", got)
	}
	if got := c.VoltageClamped(2); got != 4.2 {
		t.Fatalf("clamped high = %v, want 4.2", got)
	}
}
