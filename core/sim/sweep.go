package sim

import (
	"sync"

	"github.com/ksahoo/cellsim/core/profile"
)

// Case names one load profile of a sweep.
type Case struct {
	Name string
	Load profile.Load
}

// CaseResult pairs a case with its outcome.
type CaseResult struct {
	Name   string
	Result *Result
	Err    error
}

// Sweep runs the base configuration once per case, each with its own load
// profile. Runs are independent, so they execute in parallel across runs;
// within a run the time march stays strictly sequential. Results come back
// in case order.
func Sweep(base Config, cases []Case) []CaseResult {
	out := make([]CaseResult, len(cases))
	var wg sync.WaitGroup
	for i, c := range cases {
		wg.Add(1)
		go func(i int, c Case) {
			defer wg.Done()
			cfg := base
			cfg.Load = c.Load
			res, err := Run(cfg)
			out[i] = CaseResult{Name: c.Name, Result: res, Err: err}
		}(i, c)
	}
	wg.Wait()
	return out
}
