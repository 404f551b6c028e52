// Package profile provides discharge current generators fed to the simulator.
// A profile is an opaque function of elapsed time; stochastic profiles draw
// from an injected seeded generator so runs stay reproducible.
package profile

import (
	"math"
	"math/rand"
)

// Load produces the discharge current in amps at elapsed time t in seconds.
// Positive values discharge the cell. The simulator calls it once per step in
// time order, which is the only calling pattern stochastic profiles support.
type Load func(t float64) float64

// Constant draws a fixed current.
func Constant(amps float64) Load {
	return func(float64) float64 { return amps }
}

// Pulsed alternates between full current and rest over the given period,
// 50% duty cycle starting with the on phase.
func Pulsed(amps, period float64) Load {
	return func(t float64) float64 {
		if math.Mod(t, period) < period/2 {
			return amps
		}
		return 0
	}
}

// Ramp rises linearly from half current at t=0 to full current at the given
// duration, then holds.
func Ramp(amps, duration float64) Load {
	return func(t float64) float64 {
		if t >= duration {
			return amps
		}
		return amps * (0.5 + 0.5*t/duration)
	}
}

// Random varies around the baseline with gaussian spread, clipped to
// [0.1*amps, 2*amps]. Deterministic for a fixed seed.
func Random(amps float64, seed int64) Load {
	rng := rand.New(rand.NewSource(seed))
	return func(float64) float64 {
		i := amps * (0.7 + 0.6*rng.NormFloat64())
		return clip(i, 0.1*amps, 2*amps)
	}
}

// WithNoise adds zero-mean gaussian noise with the given standard deviation
// expressed as a fraction of scale. The result never goes negative, so noise
// cannot turn a discharge profile into a charge.
func WithNoise(base Load, scale, frac float64, seed int64) Load {
	rng := rand.New(rand.NewSource(seed))
	return func(t float64) float64 {
		i := base(t) + frac*scale*rng.NormFloat64()
		if i < 0 {
			return 0
		}
		return i
	}
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
