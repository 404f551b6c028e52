package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ksahoo/cellsim/config"
	"github.com/ksahoo/cellsim/core/sim"
	"github.com/ksahoo/cellsim/infra/logger"
	"github.com/ksahoo/cellsim/infra/render"
	"github.com/ksahoo/cellsim/pkg/export"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one discharge simulation",
	RunE:  runSimulation,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("run")

	simCfg, err := buildSimConfig(cfg, logg)
	if err != nil {
		return err
	}
	res, err := sim.Run(simCfg)
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	if err := writeOutputs(cfg, res, simCfg); err != nil {
		return err
	}

	summary := sim.Summarize(res)
	logg.Infof("run %s: %s after %.1fs, %d samples", res.RunID, summary.Reason, summary.TFinal, summary.Steps)
	logg.Infof("current avg=%.2fA max=%.2fA min=%.2fA", summary.AvgCurrent, summary.MaxCurrent, summary.MinCurrent)
	logg.Infof("voltage avg=%.3fV, final soc=%.3f, energy delivered=%.2fWh", summary.AvgVoltage, summary.SOCFinal, summary.EnergyWh)
	return nil
}

func buildSimConfig(cfg *config.Config, logg logger.Logger) (sim.Config, error) {
	params, err := cfg.Cell.CellParams()
	if err != nil {
		return sim.Config{}, fmt.Errorf("cell config: %w", err)
	}
	load, err := cfg.Load.BuildLoad()
	if err != nil {
		return sim.Config{}, fmt.Errorf("load config: %w", err)
	}
	return sim.Config{
		Cell:       params,
		Load:       load,
		InitialSOC: cfg.Sim.InitialSOC,
		Dt:         cfg.Sim.DtSeconds,
		MaxTime:    cfg.Sim.MaxTimeSeconds,
		Log:        logg,
	}, nil
}

func writeOutputs(cfg *config.Config, res *sim.Result, simCfg sim.Config) error {
	if path := cfg.Output.CSVPath; path != "" {
		if err := writeFile(path, func(f *os.File) error { return export.WriteCSV(f, res) }); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
	}
	if path := cfg.Output.JSONPath; path != "" {
		if err := writeFile(path, func(f *os.File) error { return export.WriteJSON(f, res) }); err != nil {
			return fmt.Errorf("json export: %w", err)
		}
	}
	if path := cfg.Output.PlotPath; path != "" {
		if err := render.WritePNG(path, res, simCfg.Cell); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
