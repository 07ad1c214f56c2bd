// Package launchdata holds the launch-records dataset: the record type, the read-only
// Dataset container, the CSV/XLSX loaders and the package logger shared by the binaries.
package launchdata

import (
	"fmt"
	"iter"
)

// Outcome is the launch result stored in the "class" column.
type Outcome int

const (
	Failure Outcome = 0
	Success Outcome = 1
)

// Label returns the display name used by the charts ("Success" / "Failure").
func (o Outcome) Label() string {
	switch o {
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// LaunchRecord is one row of the dataset.
type LaunchRecord struct {
	FlightNumber           int     `json:"flight_number,omitempty"`
	LaunchSite             string  `json:"launch_site"`
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	BoosterVersion         string  `json:"booster_version,omitempty"`
	BoosterVersionCategory string  `json:"booster_version_category"`
	Outcome                Outcome `json:"class"`
}

// Dataset is an ordered, immutable sequence of launch records. It is built once by a
// loader (or NewDataset) and only exposes read accessors, so a single value can be
// shared by every chart computation without copying.
type Dataset struct {
	source  string
	records []LaunchRecord
}

// NewDataset copies records into a new Dataset. source is a free-form label (usually
// the file path) reported in logs.
func NewDataset(source string, records []LaunchRecord) *Dataset {
	cp := make([]LaunchRecord, len(records))
	copy(cp, records)
	return &Dataset{source: source, records: cp}
}

// Source returns the label the dataset was loaded from.
func (d *Dataset) Source() string {
	if d == nil {
		return ""
	}
	return d.source
}

// Len returns the number of records. A nil Dataset is empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns the i-th record in load order.
func (d *Dataset) At(i int) LaunchRecord { return d.records[i] }

// All iterates records in load order.
func (d *Dataset) All() iter.Seq2[int, LaunchRecord] {
	return func(yield func(int, LaunchRecord) bool) {
		if d == nil {
			return
		}
		for i, r := range d.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Records returns a copy of all records; callers may modify it freely.
func (d *Dataset) Records() []LaunchRecord {
	if d == nil {
		return nil
	}
	out := make([]LaunchRecord, len(d.records))
	copy(out, d.records)
	return out
}

// PayloadBounds returns the minimum and maximum payload mass. ok is false for an empty dataset.
func (d *Dataset) PayloadBounds() (min, max float64, ok bool) {
	if d.Len() == 0 {
		return 0, 0, false
	}
	min, max = d.records[0].PayloadMassKg, d.records[0].PayloadMassKg
	for _, r := range d.records[1:] {
		if r.PayloadMassKg < min {
			min = r.PayloadMassKg
		}
		if r.PayloadMassKg > max {
			max = r.PayloadMassKg
		}
	}
	return min, max, true
}
