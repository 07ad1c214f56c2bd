// Package analysis computes what the dashboard charts show from a launch dataset.
//
// Every function here is pure: it takes the read-only *launchdata.Dataset plus the current
// control values and returns a fresh result, so the viewer, the reader CLI and the report
// generator all share one implementation and tests need no UI.
package analysis

import (
	"sort"

	"github.com/iafilius/LaunchRecordsDashboard/src/launchdata"
)

// AllSites is the selector value meaning "no site restriction".
const AllSites = "ALL"

// AllSitesLabel is the display label paired with AllSites in the selector.
const AllSitesLabel = "All Sites"

// Nominal payload slider domain (kg).
const (
	PayloadDomainMin = 0.0
	PayloadDomainMax = 10000.0
)

// PayloadRange is an inclusive [Low, High] payload mass window in kg. It is not
// validated: an inverted or out-of-domain range simply matches fewer (or no) records.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether kg lies inside the inclusive range.
func (r PayloadRange) Contains(kg float64) bool { return r.Low <= kg && kg <= r.High }

// DefaultPayloadRange returns the dataset's [min, max] payload, or the full slider
// domain for an empty dataset.
func DefaultPayloadRange(ds *launchdata.Dataset) PayloadRange {
	lo, hi, ok := ds.PayloadBounds()
	if !ok {
		return PayloadRange{Low: PayloadDomainMin, High: PayloadDomainMax}
	}
	return PayloadRange{Low: lo, High: hi}
}

// RangeOrDefault fills a negative bound from DefaultPayloadRange, so command-line
// callers can leave either side unset.
func RangeOrDefault(ds *launchdata.Dataset, low, high float64) PayloadRange {
	rng := DefaultPayloadRange(ds)
	if low >= 0 {
		rng.Low = low
	}
	if high >= 0 {
		rng.High = high
	}
	return rng
}

// PieMode tells which breakdown a PieResult holds.
type PieMode string

const (
	PieBySite    PieMode = "by_site"    // successes per launch site (selection = ALL)
	PieByOutcome PieMode = "by_outcome" // success vs failure for one site
)

// PieSlice is one labelled wedge.
type PieSlice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PieResult is the input of the pie panel.
type PieResult struct {
	Site   string     `json:"site"`
	Mode   PieMode    `json:"mode"`
	Slices []PieSlice `json:"slices"`
}

// Total sums the slice counts.
func (p PieResult) Total() int {
	n := 0
	for _, s := range p.Slices {
		n += s.Count
	}
	return n
}

// Empty reports whether there is nothing to draw.
func (p PieResult) Empty() bool { return len(p.Slices) == 0 }

// Aggregate builds the pie breakdown for the selected site.
//
// For AllSites it counts successful launches per site; sites without a success are
// left out and slices are ordered by site name. For a specific site it counts each
// outcome present at that site, largest first (Success wins ties). A site that does
// not occur in the dataset yields an empty result.
func Aggregate(ds *launchdata.Dataset, site string) PieResult {
	if site == AllSites {
		return PieResult{Site: site, Mode: PieBySite, Slices: successesBySite(ds)}
	}
	return PieResult{Site: site, Mode: PieByOutcome, Slices: outcomesForSite(ds, site)}
}

func successesBySite(ds *launchdata.Dataset) []PieSlice {
	counts := map[string]int{}
	for _, r := range ds.All() {
		if r.Outcome == launchdata.Success {
			counts[r.LaunchSite]++
		}
	}
	out := make([]PieSlice, 0, len(counts))
	for site, n := range counts {
		out = append(out, PieSlice{Label: site, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func outcomesForSite(ds *launchdata.Dataset, site string) []PieSlice {
	var success, failure int
	for _, r := range ds.All() {
		if r.LaunchSite != site {
			continue
		}
		switch r.Outcome {
		case launchdata.Success:
			success++
		case launchdata.Failure:
			failure++
		}
	}
	out := make([]PieSlice, 0, 2)
	if success > 0 {
		out = append(out, PieSlice{Label: launchdata.Success.Label(), Count: success})
	}
	if failure > 0 {
		out = append(out, PieSlice{Label: launchdata.Failure.Label(), Count: failure})
	}
	if len(out) == 2 && failure > success {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// ScatterPoint is one plotted launch.
type ScatterPoint struct {
	FlightNumber           int                `json:"flight_number,omitempty"`
	LaunchSite             string             `json:"launch_site"`
	PayloadMassKg          float64            `json:"payload_mass_kg"`
	Outcome                launchdata.Outcome `json:"class"`
	BoosterVersionCategory string             `json:"booster_version_category"`
}

// ScatterResult is the input of the scatter panel. Points keep dataset order.
type ScatterResult struct {
	Site   string         `json:"site"`
	Range  PayloadRange   `json:"payload_range"`
	Points []ScatterPoint `json:"points"`
}

// CategoryPoints groups the points of one booster version category.
type CategoryPoints struct {
	Category string
	Points   []ScatterPoint
}

// ByCategory splits the points per booster version category. Groups appear in the
// order their category first occurs; points inside a group keep their order.
func (s ScatterResult) ByCategory() []CategoryPoints {
	var out []CategoryPoints
	pos := map[string]int{}
	for _, p := range s.Points {
		i, ok := pos[p.BoosterVersionCategory]
		if !ok {
			i = len(out)
			pos[p.BoosterVersionCategory] = i
			out = append(out, CategoryPoints{Category: p.BoosterVersionCategory})
		}
		out[i].Points = append(out[i].Points, p)
	}
	return out
}

// Filter selects the launches plotted on the scatter chart: payload inside rng
// (inclusive) and, unless site is AllSites, launched from site. Order is preserved;
// an empty result is valid.
func Filter(ds *launchdata.Dataset, site string, rng PayloadRange) ScatterResult {
	res := ScatterResult{Site: site, Range: rng, Points: []ScatterPoint{}}
	for _, r := range ds.All() {
		if !rng.Contains(r.PayloadMassKg) {
			continue
		}
		if site != AllSites && r.LaunchSite != site {
			continue
		}
		res.Points = append(res.Points, ScatterPoint{
			FlightNumber:           r.FlightNumber,
			LaunchSite:             r.LaunchSite,
			PayloadMassKg:          r.PayloadMassKg,
			Outcome:                r.Outcome,
			BoosterVersionCategory: r.BoosterVersionCategory,
		})
	}
	return res
}

// PieTitle is the pie panel title for the selection.
func PieTitle(site string) string {
	if site == AllSites {
		return "Total Successful Launches By Site"
	}
	return "Total Success vs. Failure Launches for site " + site
}

// ScatterTitle is the scatter panel title for the selection.
func ScatterTitle(site string) string {
	if site == AllSites {
		return "Correlation between Payload and Success for All Sites"
	}
	return "Correlation between Payload and Success for site " + site
}
