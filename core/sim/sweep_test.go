package sim

import (
	"testing"

	"github.com/ksahoo/cellsim/core/profile"
)

func TestSweepRunsAllCases(t *testing.T) {
	base := Config{
		Cell:       cellParams(t, 0.05),
		InitialSOC: 1,
		Dt:         1,
		MaxTime:    200,
	}
	cases := []Case{
		{Name: "constant", Load: profile.Constant(5)},
		{Name: "pulsed", Load: profile.Pulsed(8, 60)},
		{Name: "ramp", Load: profile.Ramp(10, 200)},
		{Name: "random", Load: profile.Random(5, 42)},
	}
	results := Sweep(base, cases)
	if len(results) != len(cases) {
		t.Fatalf("got %d results, want %d", len(results), len(cases))
	}
	for i, r := range results {
		if r.Name != cases[i].Name {
			t.Fatalf("result %d out of order: %s", i, r.Name)
		}
		if r.Err != nil {
			t.Fatalf("case %s failed: %v", r.Name, r.Err)
		}
		if len(r.Result.Samples) == 0 {
			t.Fatalf("case %s produced no samples", r.Name)
		}
	}
}

func TestSweepIsolatesRuns(t *testing.T) {
	base := Config{
		Cell:       cellParams(t, 0),
		InitialSOC: 1,
		Dt:         1,
		MaxTime:    100,
	}
	cases := []Case{
		{Name: "idle", Load: profile.Constant(0)},
		{Name: "heavy", Load: profile.Constant(50)},
	}
	results := Sweep(base, cases)
	idle, heavy := results[0].Result, results[1].Result
	if idle.SOCFinal != 1 {
		t.Fatalf("idle run soc drifted: %v", idle.SOCFinal)
	}
	if heavy.SOCFinal >= idle.SOCFinal {
		t.Fatalf("heavy run did not discharge: %v", heavy.SOCFinal)
	}
	if idle.RunID == heavy.RunID {
		t.Fatal("runs shared an id")
	}
}

func TestSweepSurfacesCaseErrors(t *testing.T) {
	base := Config{
		Cell:       cellParams(t, 0),
		InitialSOC: 1,
		Dt:         1,
		MaxTime:    10,
	}
	results := Sweep(base, []Case{{Name: "missing-load"}})
	if results[0].Err == nil {
		t.Fatal("expected error for nil load")
	}
}
