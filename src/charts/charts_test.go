package charts

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/launchdata"
)

func sampleDataset() *launchdata.Dataset {
	return launchdata.NewDataset("sample", []launchdata.LaunchRecord{
		{LaunchSite: "CCAFS LC-40", PayloadMassKg: 525, BoosterVersionCategory: "v1.0", Outcome: launchdata.Failure},
		{LaunchSite: "CCAFS LC-40", PayloadMassKg: 2477, BoosterVersionCategory: "FT", Outcome: launchdata.Success},
		{LaunchSite: "KSC LC-39A", PayloadMassKg: 5300, BoosterVersionCategory: "FT", Outcome: launchdata.Success},
		{LaunchSite: "KSC LC-39A", PayloadMassKg: 6070, BoosterVersionCategory: "B4", Outcome: launchdata.Failure},
		{LaunchSite: "VAFB SLC-4E", PayloadMassKg: 9600, BoosterVersionCategory: "B4", Outcome: launchdata.Success},
	})
}

func TestPie_BuildsOneValuePerSlice(t *testing.T) {
	ds := sampleDataset()
	res := analysis.Aggregate(ds, analysis.AllSites)
	pc, err := Pie(res, analysis.PieTitle(analysis.AllSites), 900, 400)
	if err != nil {
		t.Fatalf("Pie: %v", err)
	}
	if len(pc.Values) != 3 {
		t.Fatalf("values=%d want 3", len(pc.Values))
	}
	if pc.Values[0].Label != "CCAFS LC-40 (1)" || pc.Values[0].Value != 1 {
		t.Fatalf("first value = %+v", pc.Values[0])
	}
	if pc.Title != "Total Successful Launches By Site" {
		t.Fatalf("title=%q", pc.Title)
	}
}

func TestPie_OutcomeColors(t *testing.T) {
	res := analysis.Aggregate(sampleDataset(), "KSC LC-39A")
	pc, err := Pie(res, "t", 900, 400)
	if err != nil {
		t.Fatalf("Pie: %v", err)
	}
	for _, v := range pc.Values {
		switch {
		case strings.HasPrefix(v.Label, "Success"):
			if v.Style.FillColor != colorSuccess {
				t.Fatalf("success wedge color %v", v.Style.FillColor)
			}
		case strings.HasPrefix(v.Label, "Failure"):
			if v.Style.FillColor != colorFailure {
				t.Fatalf("failure wedge color %v", v.Style.FillColor)
			}
		default:
			t.Fatalf("unexpected wedge %q", v.Label)
		}
	}
}

func TestBuilders_EmptyResults(t *testing.T) {
	ds := sampleDataset()
	if _, err := Pie(analysis.Aggregate(ds, "Z"), "t", 800, 400); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Pie on empty result: %v", err)
	}
	if _, err := Scatter(analysis.Filter(ds, "Z", analysis.PayloadRange{Low: 0, High: 10000}), "t", 800, 400); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Scatter on empty result: %v", err)
	}
}

func TestScatter_SeriesPerCategory(t *testing.T) {
	res := analysis.Filter(sampleDataset(), analysis.AllSites, analysis.PayloadRange{Low: 0, High: 10000})
	ch, err := Scatter(res, analysis.ScatterTitle(analysis.AllSites), 1000, 400)
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	if len(ch.Series) != 3 {
		t.Fatalf("series=%d want 3 (v1.0, FT, B4)", len(ch.Series))
	}
	if got := ch.Series[1].GetName(); got != "FT" {
		t.Fatalf("second series=%q want FT", got)
	}
	if ch.XAxis.Range.GetMin() > 0 || ch.XAxis.Range.GetMax() < 10000 {
		t.Fatalf("x range %v..%v should cover the requested payload range", ch.XAxis.Range.GetMin(), ch.XAxis.Range.GetMax())
	}
}

func TestXDomain(t *testing.T) {
	pts := []analysis.ScatterPoint{{PayloadMassKg: 3000}, {PayloadMassKg: 1000}}
	if lo, hi := xDomain(analysis.ScatterResult{Range: analysis.PayloadRange{Low: 0, High: 5000}, Points: pts}); lo != 0 || hi != 5000 {
		t.Fatalf("sane range not kept: %v..%v", lo, hi)
	}
	one := []analysis.ScatterPoint{{PayloadMassKg: 500}}
	if lo, hi := xDomain(analysis.ScatterResult{Range: analysis.PayloadRange{Low: 500, High: 500}, Points: one}); lo != 0 || hi != 1000 {
		t.Fatalf("collapsed range not widened: %v..%v", lo, hi)
	}
}

func TestImages_SizeAndPlaceholder(t *testing.T) {
	ds := sampleDataset()
	full := analysis.PayloadRange{Low: 0, High: 10000}
	cases := []struct {
		name string
		img  func(w, h int) (int, int)
	}{
		{"pie all", func(w, h int) (int, int) {
			b := PieImage(analysis.Aggregate(ds, analysis.AllSites), "pie", w, h).Bounds()
			return b.Dx(), b.Dy()
		}},
		{"pie empty", func(w, h int) (int, int) {
			b := PieImage(analysis.Aggregate(ds, "Z"), "pie", w, h).Bounds()
			return b.Dx(), b.Dy()
		}},
		{"scatter all", func(w, h int) (int, int) {
			b := ScatterImage(analysis.Filter(ds, analysis.AllSites, full), "scatter", w, h).Bounds()
			return b.Dx(), b.Dy()
		}},
		{"scatter empty", func(w, h int) (int, int) {
			b := ScatterImage(analysis.Filter(ds, analysis.AllSites, analysis.PayloadRange{Low: 9000, High: 100}), "scatter", w, h).Bounds()
			return b.Dx(), b.Dy()
		}},
	}
	for _, c := range cases {
		w, h := c.img(960, 420)
		if w != 960 || h != 420 {
			t.Fatalf("%s: got %dx%d want 960x420", c.name, w, h)
		}
	}
}

func TestWriteSVG(t *testing.T) {
	res := analysis.Filter(sampleDataset(), "KSC LC-39A", analysis.PayloadRange{Low: 0, High: 10000})
	ch, err := Scatter(res, analysis.ScatterTitle("KSC LC-39A"), 900, 400)
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, ch); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Fatalf("output is not SVG: %.80s", buf.String())
	}
}

func TestPlaceholderAndHint(t *testing.T) {
	img := Placeholder(400, 200, "Title", EmptyHint)
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Fatalf("placeholder size %v", b)
	}
	// hint box is drawn near the bottom-left and is dark
	r, g, bl, _ := img.At(3, 180).RGBA()
	if r > 0x8000 || g > 0x8000 || bl > 0x8000 {
		t.Fatalf("expected dark hint background at bottom-left, got %v", img.At(3, 180))
	}
	// top-right corner stays white
	if c := color.RGBAModel.Convert(img.At(399, 0)).(color.RGBA); c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("expected white background, got %v", c)
	}
	if DrawHint(nil, "x") != nil {
		t.Fatalf("DrawHint(nil) should return nil")
	}
	base := Blank(10, 10)
	if DrawHint(base, "  ") != base {
		t.Fatalf("blank hint should return the input image")
	}
	if b := Blank(0, -1).Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Fatalf("Blank should clamp to 1x1, got %v", b)
	}
}
