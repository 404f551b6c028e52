package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksahoo/cellsim/config"
	"github.com/ksahoo/cellsim/core/profile"
	"github.com/ksahoo/cellsim/core/sim"
	"github.com/ksahoo/cellsim/infra/logger"
)

var sweepProfiles []string

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the configured cell against several load profiles in parallel",
	RunE:  runSweep,
}

func init() {
	sweepCmd.Flags().StringSliceVarP(&sweepProfiles, "profiles", "p",
		[]string{"constant", "pulsed", "ramp", "random"}, "load profiles to sweep")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("sweep")

	base, err := buildSimConfig(cfg, logg)
	if err != nil {
		return err
	}

	cases := make([]sim.Case, 0, len(sweepProfiles))
	for _, name := range sweepProfiles {
		load, err := sweepLoad(name, cfg.Load)
		if err != nil {
			return err
		}
		cases = append(cases, sim.Case{Name: name, Load: load})
	}

	results := sim.Sweep(base, cases)
	var failed bool
	for _, r := range results {
		if r.Err != nil {
			failed = true
			logg.Errorf("case %s: %v", r.Name, r.Err)
			continue
		}
		s := sim.Summarize(r.Result)
		logg.Infof("case %s: %s after %.1fs, final soc=%.3f, avg current=%.2fA, energy=%.2fWh",
			r.Name, s.Reason, s.TFinal, s.SOCFinal, s.AvgCurrent, s.EnergyWh)
	}
	if failed {
		return fmt.Errorf("sweep encountered errors")
	}
	return nil
}

// sweepLoad builds a named profile reusing the configured amplitude, period,
// and seed so cases differ only in shape.
func sweepLoad(name string, lc config.LoadConfig) (profile.Load, error) {
	c := lc
	c.Profile = name
	switch name {
	case "pulsed":
		if c.PeriodSeconds <= 0 {
			c.PeriodSeconds = 3600
		}
	case "ramp":
		if c.RampSeconds <= 0 {
			c.RampSeconds = 3600
		}
	}
	return c.BuildLoad()
}
