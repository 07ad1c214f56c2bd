package launchdata

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DefaultDatasetFile is the dataset file name looked up next to the binaries; the same
// file is embedded and used by LoadBundled when no path is given.
const DefaultDatasetFile = "spacex_launch_dash.csv"

// Column headers recognised by the loaders. Other columns (including the unnamed pandas
// index column) are ignored.
const (
	ColLaunchSite      = "Launch Site"
	ColPayloadMass     = "Payload Mass (kg)"
	ColBoosterCategory = "Booster Version Category"
	ColClass           = "class"
	ColFlightNumber    = "Flight Number"
	ColBoosterVersion  = "Booster Version"
)

var (
	ErrNoHeader          = errors.New("no header row")
	ErrMissingColumn     = errors.New("missing required column")
	ErrMalformedRow      = errors.New("malformed row")
	ErrNoRecords         = errors.New("no launch records")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

//go:embed spacex_launch_dash.csv
var bundledCSV []byte

// LoadBundled parses the dataset compiled into the binary.
func LoadBundled() (*Dataset, error) {
	return ParseCSV(bytes.NewReader(bundledCSV), "bundled:"+DefaultDatasetFile)
}

// LoadFile reads a dataset from a .csv or .xlsx file. An empty path falls back to the
// bundled dataset.
func LoadFile(path string) (*Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return LoadBundled()
	}
	defer TimeTrack(time.Now(), "load "+path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(f, path)
	case ".xlsx", ".xlsm":
		return ParseExcel(f, path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// ParseCSV reads a CSV dataset. The first row must be the header.
func ParseCSV(r io.Reader, source string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: read csv: %w", source, err)
	}
	return parseRows(rows, source)
}

// ParseExcel reads the first sheet of a workbook laid out like the CSV.
func ParseExcel(r io.Reader, source string) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: open workbook: %w", source, err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s: no sheets: %w", source, ErrNoHeader)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: read sheet %q: %w", source, sheet, err)
	}
	return parseRows(rows, source)
}

type columnIndex struct {
	site, payload, category, class int
	flight, booster               int // -1 when absent
}

func indexColumns(header []string) (columnIndex, error) {
	pos := map[string]int{}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	idx := columnIndex{flight: -1, booster: -1}
	var missing []string
	need := func(name string, dst *int) {
		if i, ok := pos[name]; ok {
			*dst = i
			return
		}
		missing = append(missing, strconv.Quote(name))
	}
	need(ColLaunchSite, &idx.site)
	need(ColPayloadMass, &idx.payload)
	need(ColBoosterCategory, &idx.category)
	need(ColClass, &idx.class)
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	if i, ok := pos[ColFlightNumber]; ok {
		idx.flight = i
	}
	if i, ok := pos[ColBoosterVersion]; ok {
		idx.booster = i
	}
	return idx, nil
}

func parseRows(rows [][]string, source string) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoHeader)
	}
	idx, err := indexColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	records := make([]LaunchRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		line := n + 2 // 1-based, header is line 1
		rec, err := parseRecord(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", source, line, err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoRecords)
	}
	Debugf("loaded %d launch records from %s", len(records), source)
	return &Dataset{source: source, records: records}, nil
}

func parseRecord(row []string, idx columnIndex) (LaunchRecord, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	var rec LaunchRecord
	rec.LaunchSite = cell(idx.site)
	if rec.LaunchSite == "" {
		return rec, fmt.Errorf("%w: empty %q", ErrMalformedRow, ColLaunchSite)
	}
	payload, err := strconv.ParseFloat(cell(idx.payload), 64)
	if err != nil || math.IsNaN(payload) || math.IsInf(payload, 0) {
		return rec, fmt.Errorf("%w: %q=%q is not a number", ErrMalformedRow, ColPayloadMass, cell(idx.payload))
	}
	rec.PayloadMassKg = payload
	rec.BoosterVersionCategory = cell(idx.category)
	class, err := strconv.ParseFloat(cell(idx.class), 64)
	if err != nil || (class != 0 && class != 1) {
		return rec, fmt.Errorf("%w: %q=%q must be 0 or 1", ErrMalformedRow, ColClass, cell(idx.class))
	}
	rec.Outcome = Outcome(int(class))
	if v := cell(idx.flight); v != "" {
		fn, err := strconv.ParseFloat(v, 64)
		if err != nil || fn != math.Trunc(fn) {
			return rec, fmt.Errorf("%w: %q=%q is not an integer", ErrMalformedRow, ColFlightNumber, v)
		}
		rec.FlightNumber = int(fn)
	}
	rec.BoosterVersion = cell(idx.booster)
	return rec, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
