// Package charts turns analysis results into go-chart charts and images.
//
// Builders (Pie, Scatter) return the chart value so callers can pick the output
// format; PieImage/ScatterImage always return a drawable image, falling back to a
// placeholder with a hint when there is nothing to plot or rendering fails.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/launchdata"
	"github.com/iafilius/LaunchRecordsDashboard/src/uihelpers"
)

// ErrEmpty is returned by the builders when the result has nothing to draw.
var ErrEmpty = errors.New("nothing to plot")

// EmptyHint is shown on placeholder images for empty results.
const EmptyHint = "No launches match the current selection."

// Renderable is satisfied by chart.Chart and chart.PieChart.
type Renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// maxWedgeLabel caps site names on pie wedges.
const maxWedgeLabel = 24

var (
	colorSuccess = chart.ColorGreen
	colorFailure = chart.ColorRed
)

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		StrokeColor: col,
		DotWidth:    5,
		DotColor:    col,
	}
}

// Pie builds the pie chart for res. Outcome breakdowns use fixed green/red wedges;
// per-site breakdowns use the default palette.
func Pie(res analysis.PieResult, title string, w, h int) (*chart.PieChart, error) {
	if res.Empty() {
		return nil, ErrEmpty
	}
	values := make([]chart.Value, 0, len(res.Slices))
	for _, s := range res.Slices {
		v := chart.Value{Value: float64(s.Count), Label: fmt.Sprintf("%s (%d)", uihelpers.TruncateLabel(s.Label, maxWedgeLabel), s.Count)}
		if res.Mode == analysis.PieByOutcome {
			switch s.Label {
			case launchdata.Success.Label():
				v.Style = chart.Style{FillColor: colorSuccess, StrokeColor: chart.ColorWhite}
			case launchdata.Failure.Label():
				v.Style = chart.Style{FillColor: colorFailure, StrokeColor: chart.ColorWhite}
			}
		}
		values = append(values, v)
	}
	return &chart.PieChart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Values:     values,
	}, nil
}

// Scatter builds the payload vs. outcome scatter chart, one coloured series per booster
// version category. The X axis spans the selected payload range so the view does not
// jump when points drop out.
func Scatter(res analysis.ScatterResult, title string, w, h int) (*chart.Chart, error) {
	groups := res.ByCategory()
	if len(groups) == 0 {
		return nil, ErrEmpty
	}
	series := make([]chart.Series, 0, len(groups))
	for i, g := range groups {
		xs := make([]float64, len(g.Points))
		ys := make([]float64, len(g.Points))
		for j, p := range g.Points {
			xs[j] = p.PayloadMassKg
			ys[j] = float64(p.Outcome)
		}
		name := g.Category
		if name == "" {
			name = "(unknown)"
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(chart.GetDefaultColor(i)),
		})
	}
	xMin, xMax := xDomain(res)
	var xTicks []chart.Tick
	for _, v := range uihelpers.BuildNumericTicks(xMin, xMax, 6) {
		xTicks = append(xTicks, chart.Tick{Value: v, Label: uihelpers.FormatNumericTick(v)})
	}
	if len(xTicks) >= 2 {
		xMin, xMax = xTicks[0].Value, xTicks[len(xTicks)-1].Value
	}
	ch := &chart.Chart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:  launchdata.ColPayloadMass,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  launchdata.ColClass,
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{
				{Value: -0.25, Label: ""},
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
				{Value: 1.25, Label: ""},
			},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch, nil
}

// xDomain picks the X axis span: the requested range when it is sane, otherwise the
// span of the plotted points, widened when it collapses to a single value.
func xDomain(res analysis.ScatterResult) (float64, float64) {
	lo, hi := res.Range.Low, res.Range.High
	if hi <= lo {
		lo, hi = res.Points[0].PayloadMassKg, res.Points[0].PayloadMassKg
		for _, p := range res.Points[1:] {
			lo = min(lo, p.PayloadMassKg)
			hi = max(hi, p.PayloadMassKg)
		}
	}
	if hi <= lo {
		lo, hi = lo-500, hi+500
	}
	return lo, hi
}

// RenderImage renders c as PNG and decodes it.
func RenderImage(c Renderable) (image.Image, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return img, nil
}

// WriteSVG renders c as SVG into w.
func WriteSVG(w io.Writer, c Renderable) error {
	if err := c.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	return nil
}

// PieImage renders the pie panel; never nil.
func PieImage(res analysis.PieResult, title string, w, h int) image.Image {
	pc, err := Pie(res, title, w, h)
	if err != nil {
		return Placeholder(w, h, title, EmptyHint)
	}
	return imageOrPlaceholder(pc, w, h, title, "pie")
}

// ScatterImage renders the scatter panel; never nil.
func ScatterImage(res analysis.ScatterResult, title string, w, h int) image.Image {
	ch, err := Scatter(res, title, w, h)
	if err != nil {
		return Placeholder(w, h, title, EmptyHint)
	}
	return imageOrPlaceholder(ch, w, h, title, "scatter")
}

func imageOrPlaceholder(c Renderable, w, h int, title, kind string) image.Image {
	img, err := RenderImage(c)
	if err != nil {
		// keep the panel visibly updated even when go-chart rejects the data
		launchdata.Warnf("%s chart render error: %v; showing placeholder", kind, err)
		return Placeholder(w, h, title, "Chart could not be rendered.")
	}
	return img
}
