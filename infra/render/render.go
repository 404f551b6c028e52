// Package render draws discharge traces as a four-panel figure: state of
// charge, current, terminal voltage, and power against time, with the
// configured warning and cutoff thresholds as rule lines.
package render

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ksahoo/cellsim/core/model"
	"github.com/ksahoo/cellsim/core/sim"
)

var (
	traceColor = color.RGBA{B: 180, A: 255}
	ruleColor  = color.RGBA{R: 200, A: 255}
)

// WritePNG renders the result to a PNG file at path.
func WritePNG(path string, res *sim.Result, params model.CellParams) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer f.Close()

	soc, cur, volt, pow := series(res)

	socPlot, err := panel("State of Charge", "SOC", soc)
	if err != nil {
		return err
	}
	if err := addRule(socPlot, soc, params.SOCWarn, "warn"); err != nil {
		return err
	}
	curPlot, err := panel("Discharge Current", "Current (A)", cur)
	if err != nil {
		return err
	}
	voltPlot, err := panel("Terminal Voltage", "Voltage (V)", volt)
	if err != nil {
		return err
	}
	if err := addRule(voltPlot, volt, params.VMin, "cutoff"); err != nil {
		return err
	}
	powPlot, err := panel("Power Delivery", "Power (W)", pow)
	if err != nil {
		return err
	}

	img := vgimg.New(vg.Points(900), vg.Points(650))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	plots := [][]*plot.Plot{
		{socPlot, curPlot},
		{voltPlot, powPlot},
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j, p := range plots[i] {
			p.Draw(canvases[i][j])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func series(res *sim.Result) (soc, cur, volt, pow plotter.XYs) {
	n := len(res.Samples)
	soc = make(plotter.XYs, n)
	cur = make(plotter.XYs, n)
	volt = make(plotter.XYs, n)
	pow = make(plotter.XYs, n)
	for i, s := range res.Samples {
		soc[i] = plotter.XY{X: s.T, Y: s.SOC}
		cur[i] = plotter.XY{X: s.T, Y: s.Current}
		volt[i] = plotter.XY{X: s.T, Y: s.Voltage}
		pow[i] = plotter.XY{X: s.T, Y: s.Power}
	}
	return soc, cur, volt, pow
}

func panel(title, ylabel string, xys plotter.XYs) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = ylabel
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("%s line: %w", title, err)
	}
	line.Color = traceColor
	p.Add(line, plotter.NewGrid())
	return p, nil
}

func addRule(p *plot.Plot, xys plotter.XYs, y float64, label string) error {
	if len(xys) == 0 {
		return nil
	}
	rule := plotter.XYs{
		{X: xys[0].X, Y: y},
		{X: xys[len(xys)-1].X, Y: y},
	}
	line, err := plotter.NewLine(rule)
	if err != nil {
		return fmt.Errorf("%s rule: %w", label, err)
	}
	line.Color = ruleColor
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}
