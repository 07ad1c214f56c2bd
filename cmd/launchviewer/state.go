package main

import (
	"fmt"
	"image"
	"math"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/charts"
	"github.com/iafilius/LaunchRecordsDashboard/src/launchdata"
	"github.com/iafilius/LaunchRecordsDashboard/src/uihelpers"
)

type uiState struct {
	app      fyne.App
	window   fyne.Window
	filePath string

	ds      *launchdata.Dataset
	options []analysis.SiteOption
	site    string
	payload analysis.PayloadRange

	showHints bool

	// widgets
	siteSelect       *widget.Select
	lowSlider        *widget.Slider
	highSlider       *widget.Slider
	rangeLabel       *widget.Label
	summaryLabel     *widget.Label
	fileLabel        *widget.Label
	pieImgCanvas     *canvas.Image
	scatterImgCanvas *canvas.Image
}

// screenshotWidthOverride forces chartSize when headless (tests, screenshot mode).
var screenshotWidthOverride int

// setDataset swaps in a freshly loaded dataset: options are rebuilt, the payload
// window resets to the dataset bounds and the site falls back to ALL when the
// previous selection does not exist in the new data.
func (s *uiState) setDataset(ds *launchdata.Dataset) {
	s.ds = ds
	s.options = analysis.SiteOptions(ds)
	s.payload = analysis.DefaultPayloadRange(ds)
	if s.site == "" || !analysis.HasSite(ds, s.site) {
		s.site = analysis.AllSites
	}
}

func (s *uiState) optionLabels() []string {
	out := make([]string, 0, len(s.options))
	for _, o := range s.options {
		out = append(out, o.Label)
	}
	return out
}

func (s *uiState) siteLabel() string { return analysis.OptionLabel(s.options, s.site) }

// selectSiteLabel applies a selector change; returns false when nothing changed.
func (s *uiState) selectSiteLabel(label string) bool {
	v := analysis.OptionValue(s.options, label)
	if v == "" || v == s.site {
		return false
	}
	s.site = v
	return true
}

// setPayloadLow moves the lower bound; the upper bound is dragged along so the
// window never inverts. Reports whether anything changed.
func (s *uiState) setPayloadLow(v float64) bool {
	if v == s.payload.Low {
		return false
	}
	s.payload.Low = v
	if s.payload.High < v {
		s.payload.High = v
	}
	return true
}

func (s *uiState) setPayloadHigh(v float64) bool {
	if v == s.payload.High {
		return false
	}
	s.payload.High = v
	if s.payload.Low > v {
		s.payload.Low = v
	}
	return true
}

// resetPayload restores the dataset's own payload bounds.
func (s *uiState) resetPayload() { s.payload = analysis.DefaultPayloadRange(s.ds) }

// sliderBounds returns the payload slider domain: the nominal 0..10000 kg, stretched
// to whole kilograms around the data if any payload lies outside it.
func (s *uiState) sliderBounds() (float64, float64) {
	lo, hi := analysis.PayloadDomainMin, analysis.PayloadDomainMax
	if dmin, dmax, ok := s.ds.PayloadBounds(); ok {
		lo = math.Min(lo, math.Floor(dmin))
		hi = math.Max(hi, math.Ceil(dmax))
	}
	return lo, hi
}

func (s *uiState) pieResult() analysis.PieResult { return analysis.Aggregate(s.ds, s.site) }

func (s *uiState) scatterResult() analysis.ScatterResult {
	return analysis.Filter(s.ds, s.site, s.payload)
}

func (s *uiState) renderPie(w, h int) image.Image {
	img := charts.PieImage(s.pieResult(), analysis.PieTitle(s.site), w, h)
	if s.showHints {
		if s.site == analysis.AllSites {
			return charts.DrawHint(img, "Hint: successful launches per site. Pick a site to see its success vs. failure split.")
		}
		return charts.DrawHint(img, "Hint: share of successful and failed launches from "+s.site+".")
	}
	return img
}

func (s *uiState) renderScatter(w, h int) image.Image {
	img := charts.ScatterImage(s.scatterResult(), analysis.ScatterTitle(s.site), w, h)
	if s.showHints {
		return charts.DrawHint(img, "Hint: 1 = success, 0 = failure. Colours are booster version categories.")
	}
	return img
}

func (s *uiState) rangeText() string {
	return fmt.Sprintf("%s – %s", uihelpers.FormatKg(s.payload.Low), uihelpers.FormatKg(s.payload.High))
}

func (s *uiState) summaryText() string {
	if s.ds.Len() == 0 {
		return "No dataset loaded"
	}
	sc := s.scatterResult()
	pie := s.pieResult()
	var parts []string
	parts = append(parts, fmt.Sprintf("%d launches loaded", s.ds.Len()))
	parts = append(parts, fmt.Sprintf("%d in payload range", len(sc.Points)))
	if s.site == analysis.AllSites {
		parts = append(parts, fmt.Sprintf("%d successes", pie.Total()))
	} else {
		parts = append(parts, fmt.Sprintf("%d launches from %s", pie.Total(), s.site))
	}
	return strings.Join(parts, " · ")
}

// chartSize computes a chart size based on the current window width.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		if screenshotWidthOverride > 0 {
			return uihelpers.ComputeChartDimensions(screenshotWidthOverride)
		}
		return uihelpers.ComputeChartDimensions(1100)
	}
	sz := state.window.Canvas().Size()
	return uihelpers.ComputeChartDimensions(int(sz.Width*0.95) - 12)
}

// pieSize is the pie panel size for the current chart width.
func pieSize(state *uiState) (int, int) {
	w, _ := chartSize(state)
	return uihelpers.ComputePieDimensions(w)
}
