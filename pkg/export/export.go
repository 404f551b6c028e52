// Package export serializes simulation traces for downstream tooling. It is
// a thin collaborator: the simulator core owns the data, callers own where
// it goes.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/ksahoo/cellsim/core/sim"
)

// WriteJSON writes the full result, samples and termination metadata, to w.
func WriteJSON(w io.Writer, res *sim.Result) error {
	enc := json.NewEncoder(w)
	return enc.Encode(res)
}

// WriteCSV writes the sample series to w, one row per timestep. Warnings are
// joined with ';' in the last column.
func WriteCSV(w io.Writer, res *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t_s", "soc", "current_a", "voltage_v", "power_w", "warnings"}); err != nil {
		return err
	}
	for _, s := range res.Samples {
		warns := make([]string, len(s.Warnings))
		for i, wk := range s.Warnings {
			warns[i] = string(wk)
		}
		rec := []string{
			strconv.FormatFloat(s.T, 'f', -1, 64),
			strconv.FormatFloat(s.SOC, 'f', -1, 64),
			strconv.FormatFloat(s.Current, 'f', -1, 64),
			strconv.FormatFloat(s.Voltage, 'f', -1, 64),
			strconv.FormatFloat(s.Power, 'f', -1, 64),
			strings.Join(warns, ";"),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
