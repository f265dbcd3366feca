// Package export serializes an agency's dataset back to GTFS CSV
// files, the inverse of the feed loader.
package export

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/urbanatlas/gtfsdb/model"
	"github.com/urbanatlas/gtfsdb/parse"
	"github.com/urbanatlas/gtfsdb/schema"
	"github.com/urbanatlas/gtfsdb/storage"
)

// ExportAgency writes one CSV file per populated table for the given
// agency into destDir, using the standard GTFS filenames. Row content
// round-trips through the loader; column order follows the schema.
func ExportAgency(s storage.Storage, agencyKey string, destDir string) error {
	counts, err := s.RowCounts(agencyKey)
	if err != nil {
		return &model.ExportError{AgencyKey: agencyKey, Err: err}
	}
	if len(counts) == 0 {
		return &model.ExportError{
			AgencyKey: agencyKey,
			Err:       errors.New("no data for agency"),
		}
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return &model.ExportError{AgencyKey: agencyKey, Err: err}
	}

	for _, name := range schema.AllTables() {
		if counts[name] == 0 {
			continue
		}
		t, _ := schema.Describe(name)
		if err := exportTable(s, t, agencyKey, destDir); err != nil {
			return &model.ExportError{AgencyKey: agencyKey, Err: err}
		}
	}

	return nil
}

func exportTable(s storage.Storage, t schema.Table, agencyKey string, destDir string) error {
	rows, err := s.Query(t.Name, storage.Spec{AgencyKey: agencyKey})
	if err != nil {
		return errors.Wrapf(err, "reading %s", t.Name)
	}

	f, err := os.Create(filepath.Join(destDir, t.Filename))
	if err != nil {
		return errors.Wrapf(err, "creating %s", t.Filename)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		header = append(header, c.Name)
	}
	if err := w.Write(header); err != nil {
		return errors.Wrapf(err, "writing %s header", t.Filename)
	}

	record := make([]string, len(t.Columns))
	for _, row := range rows {
		for i, c := range t.Columns {
			record[i] = parse.FormatValue(c, row[c.Name])
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "writing %s row", t.Filename)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "flushing %s", t.Filename)
	}

	return f.Close()
}
