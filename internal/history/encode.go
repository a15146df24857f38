// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package history

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CategoryIDs holds the stable metric ids under which the five status
// percentages are stored in a snapshot record.
type CategoryIDs struct {
	Green   string
	Red     string
	Yellow  string
	Grey    string
	Missing string
}

// Row is one point of the trend chart: the record's date and time, with a
// zero-based month, followed by the five category percentages.
type Row struct {
	Date    [6]int // year, month (0-11), day, hour, minute, second
	Green   float64
	Yellow  float64
	Red     float64
	Grey    float64
	Missing float64
}

// dateSeparators splits "YYYY-MM-DD HH:MM:SS" and tolerates fractional seconds.
var dateSeparators = regexp.MustCompile(`[-: .]`)

// Encode converts snapshot records into chart rows, one per record and in
// input order. Records written before yellow, grey and missing were tracked
// get yellow = 100 - green - red and zero for grey and missing.
func Encode(records []Record, ids CategoryIDs) ([]Row, error) {
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		date, err := parseDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("history record %d: %w", i, err)
		}
		row := Row{Date: date}

		var ok bool
		if row.Green, ok = rec.Values[ids.Green]; !ok {
			return nil, fmt.Errorf("history record %d (%s): missing green percentage %q", i, rec.Date, ids.Green)
		}
		if row.Red, ok = rec.Values[ids.Red]; !ok {
			return nil, fmt.Errorf("history record %d (%s): missing red percentage %q", i, rec.Date, ids.Red)
		}
		if row.Yellow, ok = rec.Values[ids.Yellow]; !ok {
			row.Yellow = 100 - row.Green - row.Red
		}
		row.Grey = rec.Values[ids.Grey]
		row.Missing = rec.Values[ids.Missing]
		rows = append(rows, row)
	}
	return rows, nil
}

func parseDate(s string) ([6]int, error) {
	var date [6]int
	parts := dateSeparators.Split(strings.TrimSpace(s), -1)
	if len(parts) < 6 {
		return date, fmt.Errorf("invalid date %q: want YYYY-MM-DD HH:MM:SS", s)
	}
	for i := range date {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return date, fmt.Errorf("invalid date %q: %w", s, err)
		}
		date[i] = n
	}
	date[1]-- // months are zero-based for the chart library
	return date, nil
}

// JS renders the row as a JavaScript array literal with a Date constructor.
func (r Row) JS() string {
	return fmt.Sprintf("[new Date(%d, %d, %d, %d, %d, %d), %s, %s, %s, %s, %s]",
		r.Date[0], r.Date[1], r.Date[2], r.Date[3], r.Date[4], r.Date[5],
		num(r.Green), num(r.Yellow), num(r.Red), num(r.Grey), num(r.Missing))
}

// MarshalJSON renders [[y, m, d, h, mi, s], [green, yellow, red, grey, missing]].
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{
		r.Date,
		[5]float64{r.Green, r.Yellow, r.Red, r.Grey, r.Missing},
	})
}

// JS renders all rows as one JavaScript array literal.
func JS(rows []Row) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = r.JS()
	}
	return "[" + strings.Join(parts, ",\n") + "]"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
