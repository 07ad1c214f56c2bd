package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/iafilius/LaunchRecordsDashboard/src/launchdata"
)

// SiteSummary captures aggregate figures for one launch site.
type SiteSummary struct {
	LaunchSite     string  `json:"launch_site"`
	Launches       int     `json:"launches"`
	Successes      int     `json:"successes"`
	Failures       int     `json:"failures"`
	SuccessRatePct float64 `json:"success_rate_pct"`
	MinPayloadKg   float64 `json:"min_payload_kg"`
	MaxPayloadKg   float64 `json:"max_payload_kg"`
	AvgPayloadKg   float64 `json:"avg_payload_kg"`
	// Booster categories flown from this site, first occurrence order.
	BoosterCategories []string `json:"booster_categories,omitempty"`
}

// Summary is the whole-dataset overview written by the report mode.
type Summary struct {
	Source         string        `json:"source"`
	Launches       int           `json:"launches"`
	Successes      int           `json:"successes"`
	SuccessRatePct float64       `json:"success_rate_pct"`
	DefaultRange   PayloadRange  `json:"default_payload_range"`
	Sites          []SiteSummary `json:"sites"`
}

// Summarize computes per-site figures in site first-occurrence order.
func Summarize(ds *launchdata.Dataset) Summary {
	sum := Summary{Source: ds.Source(), DefaultRange: DefaultPayloadRange(ds)}
	pos := map[string]int{}
	payloadTotals := map[string]float64{}
	seenCat := map[string]map[string]bool{}
	for _, r := range ds.All() {
		i, ok := pos[r.LaunchSite]
		if !ok {
			i = len(sum.Sites)
			pos[r.LaunchSite] = i
			sum.Sites = append(sum.Sites, SiteSummary{
				LaunchSite:   r.LaunchSite,
				MinPayloadKg: r.PayloadMassKg,
				MaxPayloadKg: r.PayloadMassKg,
			})
			seenCat[r.LaunchSite] = map[string]bool{}
		}
		s := &sum.Sites[i]
		s.Launches++
		if r.Outcome == launchdata.Success {
			s.Successes++
		} else {
			s.Failures++
		}
		if r.PayloadMassKg < s.MinPayloadKg {
			s.MinPayloadKg = r.PayloadMassKg
		}
		if r.PayloadMassKg > s.MaxPayloadKg {
			s.MaxPayloadKg = r.PayloadMassKg
		}
		payloadTotals[r.LaunchSite] += r.PayloadMassKg
		if c := r.BoosterVersionCategory; c != "" && !seenCat[r.LaunchSite][c] {
			seenCat[r.LaunchSite][c] = true
			s.BoosterCategories = append(s.BoosterCategories, c)
		}
	}
	for i := range sum.Sites {
		s := &sum.Sites[i]
		s.SuccessRatePct = pct(s.Successes, s.Launches)
		s.AvgPayloadKg = payloadTotals[s.LaunchSite] / float64(s.Launches)
		sum.Launches += s.Launches
		sum.Successes += s.Successes
	}
	sum.SuccessRatePct = pct(sum.Successes, sum.Launches)
	return sum
}

func pct(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}

// Report bundles what the dashboard shows for one selection, for JSON export.
type Report struct {
	Summary      Summary       `json:"summary"`
	SiteOptions  []SiteOption  `json:"site_options"`
	PieTitle     string        `json:"pie_title"`
	Pie          PieResult     `json:"pie"`
	ScatterTitle string        `json:"scatter_title"`
	Scatter      ScatterResult `json:"scatter"`
}

// BuildReport evaluates both panels for the given selection.
func BuildReport(ds *launchdata.Dataset, site string, rng PayloadRange) Report {
	return Report{
		Summary:      Summarize(ds),
		SiteOptions:  SiteOptions(ds),
		PieTitle:     PieTitle(site),
		Pie:          Aggregate(ds, site),
		ScatterTitle: ScatterTitle(site),
		Scatter:      Filter(ds, site, rng),
	}
}

// WriteReportJSON encodes rep as indented JSON.
func WriteReportJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteReportFile writes rep to path, creating or truncating it.
func WriteReportFile(path string, rep Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteReportJSON(f, rep); err != nil {
		f.Close()
		return fmt.Errorf("encode report: %w", err)
	}
	return f.Close()
}
