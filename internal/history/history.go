// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

// Package history stores per-run snapshots of metric values and encodes them
// into time series for the trend charts in the HTML report.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/davetashner/qualitydash/internal/testable"
)

// DateLayout is the layout of the date field of a snapshot record.
const DateLayout = "2006-01-02 15:04:05"

// maxRecords is the FIFO cap for stored snapshots.
const maxRecords = 1000

// FS is the file system implementation used by this package.
// Override in tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

// Record is one snapshot: a timestamp plus metric values keyed by stable id.
// On disk it is a flat JSON object: {"date": ..., "run_id": ..., "<id>": value}.
type Record struct {
	Date   string
	RunID  string
	Values map[string]float64
}

// NewRecord returns a record stamped with t and a fresh run id.
func NewRecord(t time.Time, values map[string]float64) Record {
	return Record{
		Date:   t.Format(DateLayout),
		RunID:  uuid.NewString(),
		Values: values,
	}
}

// MarshalJSON writes the record as a flat object with sorted value keys.
func (r Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Values)+2)
	for k, v := range r.Values {
		flat[k] = v
	}
	flat["date"] = r.Date
	if r.RunID != "" {
		flat["run_id"] = r.RunID
	}
	return json.Marshal(flat)
}

// UnmarshalJSON reads a flat record. Numeric values stored as strings by
// older writers are accepted.
func (r *Record) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	rec := Record{Values: make(map[string]float64, len(flat))}
	for k, raw := range flat {
		switch k {
		case "date":
			if err := json.Unmarshal(raw, &rec.Date); err != nil {
				return fmt.Errorf("date: %w", err)
			}
		case "run_id":
			if err := json.Unmarshal(raw, &rec.RunID); err != nil {
				return fmt.Errorf("run_id: %w", err)
			}
		default:
			v, err := decodeValue(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			rec.Values[k] = v
		}
	}
	*r = rec
	return nil
}

func decodeValue(raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("value %s is neither a number nor a numeric string", raw)
	}
	return strconv.ParseFloat(s, 64)
}

// Load reads the snapshot file at path. A missing file yields no records.
func Load(path string) ([]Record, error) {
	data, err := FS.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", path, err)
	}
	return records, nil
}

// Save writes records to path, creating the parent directory when needed.
func Save(path string, records []Record) error {
	if err := FS.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if err := FS.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

// Append adds rec and enforces the FIFO cap.
func Append(records []Record, rec Record) []Record {
	records = append(records, rec)
	if len(records) > maxRecords {
		records = records[len(records)-maxRecords:]
	}
	return records
}
