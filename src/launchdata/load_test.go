package launchdata

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `,Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
0,1,A,1,500.0,F9 v1.0 B0003,v1.0
1,2,B,0,0.0,F9 v1.1,v1.1
2,3,A,0,9600,F9 FT B1019,FT
`

func TestParseCSV_Sample(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(sampleCSV), "sample")
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	want := []LaunchRecord{
		{FlightNumber: 1, LaunchSite: "A", PayloadMassKg: 500, BoosterVersion: "F9 v1.0 B0003", BoosterVersionCategory: "v1.0", Outcome: Success},
		{FlightNumber: 2, LaunchSite: "B", PayloadMassKg: 0, BoosterVersion: "F9 v1.1", BoosterVersionCategory: "v1.1", Outcome: Failure},
		{FlightNumber: 3, LaunchSite: "A", PayloadMassKg: 9600, BoosterVersion: "F9 FT B1019", BoosterVersionCategory: "FT", Outcome: Failure},
	}
	if diff := cmp.Diff(want, ds.Records()); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if ds.Source() != "sample" {
		t.Fatalf("source=%q", ds.Source())
	}
}

func TestParseCSV_MinimalColumnsAnyOrder(t *testing.T) {
	in := "class,Booster Version Category,Payload Mass (kg),Launch Site\n1,B5,3000,KSC LC-39A\n"
	ds, err := ParseCSV(strings.NewReader(in), "minimal")
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("len=%d want 1", ds.Len())
	}
	r := ds.At(0)
	if r.LaunchSite != "KSC LC-39A" || r.PayloadMassKg != 3000 || r.Outcome != Success || r.BoosterVersionCategory != "B5" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.FlightNumber != 0 || r.BoosterVersion != "" {
		t.Fatalf("optional fields should be zero: %+v", r)
	}
}

func TestParseCSV_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrNoHeader},
		{"missing class", "Launch Site,Payload Mass (kg),Booster Version Category\nA,1,FT\n", ErrMissingColumn},
		{"header only", "Launch Site,Payload Mass (kg),Booster Version Category,class\n", ErrNoRecords},
		{"bad payload", "Launch Site,Payload Mass (kg),Booster Version Category,class\nA,heavy,FT,1\n", ErrMalformedRow},
		{"empty payload", "Launch Site,Payload Mass (kg),Booster Version Category,class\nA,,FT,1\n", ErrMalformedRow},
		{"bad class", "Launch Site,Payload Mass (kg),Booster Version Category,class\nA,10,FT,2\n", ErrMalformedRow},
		{"empty site", "Launch Site,Payload Mass (kg),Booster Version Category,class\n,10,FT,1\n", ErrMalformedRow},
		{"short row", "Launch Site,Payload Mass (kg),Booster Version Category,class\nA,10\n", ErrMalformedRow},
		{"bad flight", "Flight Number,Launch Site,Payload Mass (kg),Booster Version Category,class\n1.5,A,10,FT,1\n", ErrMalformedRow},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(c.in), c.name)
			if !errors.Is(err, c.want) {
				t.Fatalf("got err %v want %v", err, c.want)
			}
		})
	}
}

func TestParseCSV_ErrorNamesLine(t *testing.T) {
	in := "Launch Site,Payload Mass (kg),Booster Version Category,class\nA,1,FT,1\nA,x,FT,1\n"
	_, err := ParseCSV(strings.NewReader(in), "lines.csv")
	if err == nil || !strings.Contains(err.Error(), "lines.csv: line 3") {
		t.Fatalf("expected error naming line 3, got %v", err)
	}
}

func TestParseCSV_SkipsBlankRowsAndBOM(t *testing.T) {
	in := "\ufeffLaunch Site,Payload Mass (kg),Booster Version Category,class\nA,1,FT,1\n,,,\nB,2,FT,0\n"
	ds, err := ParseCSV(strings.NewReader(in), "bom")
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if ds.Len() != 2 || ds.At(1).LaunchSite != "B" {
		t.Fatalf("unexpected dataset: %+v", ds.Records())
	}
}

func TestLoadBundled(t *testing.T) {
	ds, err := LoadBundled()
	if err != nil {
		t.Fatalf("LoadBundled: %v", err)
	}
	if ds.Len() != 56 {
		t.Fatalf("bundled dataset len=%d want 56", ds.Len())
	}
	lo, hi, ok := ds.PayloadBounds()
	if !ok || lo != 0 || hi != 9600 {
		t.Fatalf("payload bounds = %v..%v ok=%v want 0..9600", lo, hi, ok)
	}
	successes := 0
	for _, r := range ds.All() {
		if r.Outcome == Success {
			successes++
		}
	}
	if successes != 24 {
		t.Fatalf("successes=%d want 24", successes)
	}
}

func TestLoadFile_CSVAndFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "launches.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if ds.Len() != 3 || ds.Source() != path {
		t.Fatalf("len=%d source=%q", ds.Len(), ds.Source())
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	txt := filepath.Join(dir, "launches.txt")
	os.WriteFile(txt, []byte(sampleCSV), 0o644)
	if _, err := LoadFile(txt); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	bundled, err := LoadFile("  ")
	if err != nil || bundled.Len() != 56 {
		t.Fatalf("empty path should load bundled dataset: len=%d err=%v", bundled.Len(), err)
	}
}

func TestLoadFile_Excel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Flight Number", "Launch Site", "class", "Payload Mass (kg)", "Booster Version Category"},
		{1, "CCAFS LC-40", 0, 525.0, "v1.0"},
		{2, "KSC LC-39A", 1, 2490.5, "FT"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "launches.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	ds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile xlsx: %v", err)
	}
	want := []LaunchRecord{
		{FlightNumber: 1, LaunchSite: "CCAFS LC-40", PayloadMassKg: 525, BoosterVersionCategory: "v1.0", Outcome: Failure},
		{FlightNumber: 2, LaunchSite: "KSC LC-39A", PayloadMassKg: 2490.5, BoosterVersionCategory: "FT", Outcome: Success},
	}
	if diff := cmp.Diff(want, ds.Records()); diff != "" {
		t.Fatalf("xlsx records mismatch (-want +got):\n%s", diff)
	}
}
