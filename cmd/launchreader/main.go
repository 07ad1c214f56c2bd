// Command launchreader prints a plain-text summary of a launch records file and,
// optionally, the pie and scatter figures for one selection.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/launchdata"
	"github.com/iafilius/LaunchRecordsDashboard/src/uihelpers"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("launchreader", flag.ContinueOnError)
	var file, site, logLevel string
	var low, high float64
	fs.StringVar(&file, "file", "", "Path to the launch records (.csv or .xlsx); empty uses the bundled dataset")
	fs.StringVar(&site, "site", "", "Also print the chart figures for this site (ALL for every site)")
	fs.Float64Var(&low, "low", -1, "Payload range lower bound in kg (negative = dataset minimum)")
	fs.Float64Var(&high, "high", -1, "Payload range upper bound in kg (negative = dataset maximum)")
	fs.StringVar(&logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !launchdata.SetLogLevel(logLevel) {
		return fmt.Errorf("unknown -log-level %q", logLevel)
	}
	ds, err := launchdata.LoadFile(file)
	if err != nil {
		return err
	}

	sum := analysis.Summarize(ds)
	fmt.Fprintf(out, "Source: %s\n", sum.Source)
	fmt.Fprintf(out, "Total launches: %d, successes: %d (%.1f%%)\n", sum.Launches, sum.Successes, sum.SuccessRatePct)
	fmt.Fprintf(out, "Payload range: %s – %s\n", uihelpers.FormatKg(sum.DefaultRange.Low), uihelpers.FormatKg(sum.DefaultRange.High))
	for _, s := range sum.Sites {
		fmt.Fprintf(out, "%-14s launches=%-3d success=%-3d failure=%-3d rate=%5.1f%% payload=%s..%s boosters=%s\n",
			s.LaunchSite, s.Launches, s.Successes, s.Failures, s.SuccessRatePct,
			uihelpers.FormatKg(s.MinPayloadKg), uihelpers.FormatKg(s.MaxPayloadKg),
			strings.Join(s.BoosterCategories, ","))
	}

	site = strings.TrimSpace(site)
	if site == "" {
		return nil
	}
	if !analysis.HasSite(ds, site) {
		launchdata.Warnf("site %q does not occur in %s; charts will be empty", site, ds.Source())
	}
	rng := analysis.RangeOrDefault(ds, low, high)
	pie := analysis.Aggregate(ds, site)
	fmt.Fprintf(out, "\n%s\n", analysis.PieTitle(site))
	if pie.Empty() {
		fmt.Fprintln(out, "  (no data)")
	}
	for _, sl := range pie.Slices {
		fmt.Fprintf(out, "  %s: %d\n", sl.Label, sl.Count)
	}
	sc := analysis.Filter(ds, site, rng)
	fmt.Fprintf(out, "\n%s (%s – %s)\n", analysis.ScatterTitle(site), uihelpers.FormatKg(rng.Low), uihelpers.FormatKg(rng.High))
	fmt.Fprintf(out, "  points: %d\n", len(sc.Points))
	for _, g := range sc.ByCategory() {
		ok := 0
		for _, p := range g.Points {
			if p.Outcome == launchdata.Success {
				ok++
			}
		}
		fmt.Fprintf(out, "  %s: %d points, %d successful\n", g.Category, len(g.Points), ok)
	}
	return nil
}
