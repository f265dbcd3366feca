// Package parse implements the feed loader: it reads a directory of
// GTFS CSV files, coerces rows per the schema registry, and loads
// them into storage as one atomic unit per agency.
package parse

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spkg/bom"

	"github.com/urbanatlas/gtfsdb/model"
	"github.com/urbanatlas/gtfsdb/schema"
	"github.com/urbanatlas/gtfsdb/storage"
)

// Summary reports what one import did: rows loaded and dropped per
// table, plus the non-fatal warnings collected along the way.
type Summary struct {
	AgencyKey   string
	RowCounts   map[string]int
	SkippedRows map[string]int
	Warnings    []error
}

// ImportFeed loads the GTFS feed in dir into storage under the given
// agency key, replacing any previous import for that key. Tables in
// exclude are skipped, even when the standard marks them required.
//
// The write is atomic: on any fatal error the previous dataset for
// the agency remains fully intact.
func ImportFeed(s storage.Storage, dir string, exclude []string, agencyKey string) (*Summary, error) {
	excluded := map[string]bool{}
	for _, name := range exclude {
		excluded[name] = true
	}

	paths := map[string]string{}
	for _, name := range schema.AllTables() {
		if excluded[name] {
			continue
		}
		t, _ := schema.Describe(name)
		if path, ok := findTableFile(dir, t.Filename); ok {
			paths[name] = path
		} else if t.Required {
			return nil, &model.MissingRequiredTableError{Table: name}
		}
	}

	// At least one of calendar.txt and calendar_dates.txt must be
	// present, unless both were deliberately excluded.
	_, hasCalendar := paths["calendar"]
	_, hasCalendarDates := paths["calendar_dates"]
	if !hasCalendar && !hasCalendarDates && !(excluded["calendar"] && excluded["calendar_dates"]) {
		return nil, &model.MissingRequiredTableError{Table: "calendar"}
	}

	summary := &Summary{
		AgencyKey:   agencyKey,
		RowCounts:   map[string]int{},
		SkippedRows: map[string]int{},
	}

	// Parse everything up front. Nothing touches storage until all
	// tables have passed the fatal checks.
	rowsByTable := map[string][]model.Row{}
	for _, name := range schema.AllTables() {
		path, ok := paths[name]
		if !ok {
			continue
		}
		t, _ := schema.Describe(name)
		rows, err := parseTable(t, path, summary)
		if err != nil {
			return nil, err
		}
		rowsByTable[name] = rows
		summary.RowCounts[name] = len(rows)
	}

	tx, err := s.Begin()
	if err != nil {
		return nil, errors.Wrap(err, "beginning import transaction")
	}
	defer tx.Rollback()

	// Replace semantics: a re-import of the same agency drops the
	// previous dataset inside the same transaction.
	if err := tx.DeleteAgency(agencyKey); err != nil {
		return nil, errors.Wrapf(err, "replacing agency '%s'", agencyKey)
	}

	for _, name := range schema.AllTables() {
		rows, ok := rowsByTable[name]
		if !ok {
			continue
		}
		if err := tx.BulkInsert(name, agencyKey, rows); err != nil {
			return nil, errors.Wrapf(err, "loading %s", name)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing import")
	}

	return summary, nil
}

// findTableFile locates a table's file in dir, accepting both the
// standard .txt name and a .csv variant.
func findTableFile(dir string, filename string) (string, bool) {
	candidates := []string{
		filename,
		strings.TrimSuffix(filename, ".txt") + ".csv",
	}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func parseTable(t schema.Table, path string, summary *Summary) ([]model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", t.Filename)
	}
	defer f.Close()

	// The lazy reader survives sloppy quoting, which is rampant in
	// real feeds. The BOM reader strips unicode BOMs if present.
	r := gocsv.LazyCSVReader(bom.NewReader(f))

	header, err := r.Read()
	if err == io.EOF {
		return []model.Row{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s header", t.Filename)
	}

	// Header-driven column mapping. Unknown columns are ignored;
	// columns the schema knows but the file lacks become nulls.
	columnIndex := map[string]int{}
	for i, name := range header {
		columnIndex[strings.TrimSpace(name)] = i
	}

	pk := t.PrimaryKey()
	seenKeys := map[string]bool{}

	rows := []model.Row{}
	line := 1
	for {
		record, err := r.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok && record == nil {
				summary.SkippedRows[t.Name]++
				summary.Warnings = append(summary.Warnings, &model.MalformedRowError{
					Table:  t.Name,
					Line:   line,
					Reason: err.Error(),
				})
				continue
			}
			if record == nil {
				return nil, errors.Wrapf(err, "reading %s", t.Filename)
			}
			// A record plus an error (e.g. field count
			// mismatch) is still usable; missing cells
			// become nulls.
		}

		row, reason := coerceRow(t, columnIndex, record)
		if reason != "" {
			summary.SkippedRows[t.Name]++
			summary.Warnings = append(summary.Warnings, &model.MalformedRowError{
				Table:  t.Name,
				Line:   line,
				Reason: reason,
			})
			continue
		}

		if len(pk) > 0 {
			if key, ok := rowKey(row, pk); ok {
				if seenKeys[key] {
					return nil, &model.DuplicateKeyError{Table: t.Name, Key: key}
				}
				seenKeys[key] = true
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// coerceRow builds a typed row from one CSV record. A non-empty
// reason means the row is malformed and should be dropped.
func coerceRow(t schema.Table, columnIndex map[string]int, record []string) (model.Row, string) {
	row := model.Row{}
	for _, c := range t.Columns {
		raw := ""
		if i, ok := columnIndex[c.Name]; ok && i < len(record) {
			raw = record[i]
		}

		v, err := coerceValue(c, raw)
		if err != nil {
			return nil, c.Name + ": " + err.Error()
		}
		if v.IsNull() && c.Required {
			return nil, "missing required value for " + c.Name
		}
		row[c.Name] = v
	}
	return row, ""
}

// rowKey joins a row's primary key values. Reports false when every
// part is null, in which case uniqueness is not enforced (e.g. a
// single-agency feed omitting agency_id).
func rowKey(row model.Row, pk []string) (string, bool) {
	parts := make([]string, 0, len(pk))
	allNull := true
	for _, col := range pk {
		v := row[col]
		if !v.IsNull() {
			allNull = false
		}
		parts = append(parts, v.String())
	}
	if allNull {
		return "", false
	}
	return strings.Join(parts, "\x1f"), true
}
