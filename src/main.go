// Launch records report entrypoint.
//
// Evaluates the dashboard's two panels for one selection without a UI:
//   - prints a short summary to stdout,
//   - optionally writes the full report (summary, selector options, pie and scatter
//     results) as JSON (-report-json),
//   - optionally renders both charts as SVG files (-charts-dir).
//
// Design notes:
//   - The dataset is loaded once; a missing or malformed file is fatal (exit 1).
//   - An unknown -site is not an error: the panels are simply empty, as in the viewer.
//   - Payload bounds left unset (negative) default to the dataset's own min/max.
//   - Dependency direction: main -> analysis (pure results) -> launchdata; charts only renders.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/charts"
	"github.com/iafilius/LaunchRecordsDashboard/src/launchdata"
	"github.com/iafilius/LaunchRecordsDashboard/src/uihelpers"
)

func main() {
	var (
		file       string
		site       string
		low, high  float64
		reportJSON string
		chartsDir  string
		width      int
		logLevel   string
	)
	flag.StringVar(&file, "file", "", "Path to the launch records (.csv or .xlsx); empty uses the bundled "+launchdata.DefaultDatasetFile)
	flag.StringVar(&site, "site", analysis.AllSites, "Launch site to report on (ALL for every site)")
	flag.Float64Var(&low, "payload-low", -1, "Payload range lower bound in kg (negative = dataset minimum)")
	flag.Float64Var(&high, "payload-high", -1, "Payload range upper bound in kg (negative = dataset maximum)")
	flag.StringVar(&reportJSON, "report-json", "", "Write the JSON report to this path")
	flag.StringVar(&chartsDir, "charts-dir", "", "Write pie.svg and scatter.svg into this directory")
	flag.IntVar(&width, "width", 1100, "Chart width in pixels for -charts-dir")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flag.Parse()

	if !launchdata.SetLogLevel(logLevel) {
		fmt.Fprintf(os.Stderr, "unknown -log-level %q\n", logLevel)
		os.Exit(2)
	}
	start := time.Now()
	ds, err := launchdata.LoadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load dataset: %v\n", err)
		os.Exit(1)
	}
	launchdata.TimeTrack(start, "load "+ds.Source())
	if !analysis.HasSite(ds, site) {
		launchdata.Warnf("site %q does not occur in %s; panels will be empty", site, ds.Source())
	}
	rng := analysis.RangeOrDefault(ds, low, high)
	rep := analysis.BuildReport(ds, site, rng)

	fmt.Printf("%s: %d launches, %d successful (%.1f%%)\n", ds.Source(), rep.Summary.Launches, rep.Summary.Successes, rep.Summary.SuccessRatePct)
	fmt.Printf("%s: %d slices, %d launches\n", rep.PieTitle, len(rep.Pie.Slices), rep.Pie.Total())
	fmt.Printf("%s [%s – %s]: %d points\n", rep.ScatterTitle, uihelpers.FormatKg(rng.Low), uihelpers.FormatKg(rng.High), len(rep.Scatter.Points))

	if reportJSON != "" {
		if err := analysis.WriteReportFile(reportJSON, rep); err != nil {
			fmt.Fprintf(os.Stderr, "report: %v\n", err)
			os.Exit(1)
		}
		launchdata.Infof("report written to %s", reportJSON)
	}
	if chartsDir != "" {
		if err := writeChartsSVG(chartsDir, rep, width); err != nil {
			fmt.Fprintf(os.Stderr, "charts: %v\n", err)
			os.Exit(1)
		}
		launchdata.Infof("charts written to %s", chartsDir)
	}
}

// writeChartsSVG renders pie.svg and scatter.svg for rep. Empty panels are skipped
// with a warning since go-chart cannot draw them.
func writeChartsSVG(dir string, rep analysis.Report, width int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create charts dir: %w", err)
	}
	pw, ph := uihelpers.ComputePieDimensions(width)
	cw, chh := uihelpers.ComputeChartDimensions(width)
	pie, pieErr := charts.Pie(rep.Pie, rep.PieTitle, pw, ph)
	scatter, scatterErr := charts.Scatter(rep.Scatter, rep.ScatterTitle, cw, chh)
	for _, item := range []struct {
		name string
		c    charts.Renderable
		err  error
	}{
		{"pie.svg", pie, pieErr},
		{"scatter.svg", scatter, scatterErr},
	} {
		if item.err != nil {
			launchdata.Warnf("skip %s: %v", item.name, item.err)
			continue
		}
		if err := writeSVGFile(filepath.Join(dir, item.name), item.c); err != nil {
			return err
		}
	}
	return nil
}

func writeSVGFile(path string, c charts.Renderable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := charts.WriteSVG(f, c); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
