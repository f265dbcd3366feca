package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanatlas/gtfsdb/model"
	"github.com/urbanatlas/gtfsdb/parse"
	"github.com/urbanatlas/gtfsdb/storage"
	"github.com/urbanatlas/gtfsdb/testutil"
)

func sqliteStorage(t *testing.T) storage.Storage {
	s, err := storage.NewSQLiteStorage()
	require.NoError(t, err)
	require.NoError(t, s.CreateTables())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestExportAgency(t *testing.T) {
	s := sqliteStorage(t)
	dir := testutil.BuildFeed(t, map[string][]string{
		"stop_times.txt": {
			"trip_id,stop_sequence,stop_id,arrival_time,departure_time",
			"T1,1,S1,08:00:00,08:00:30",
			"T1,2,S2,26:10:00,26:10:30",
		},
	})

	_, err := parse.ImportFeed(s, dir, nil, "a1")
	require.NoError(t, err)

	dest := t.TempDir()
	require.NoError(t, ExportAgency(s, "a1", dest))

	// Only populated tables are written.
	names, err := filepath.Glob(filepath.Join(dest, "*"))
	require.NoError(t, err)
	base := []string{}
	for _, name := range names {
		base = append(base, filepath.Base(name))
	}
	assert.ElementsMatch(t, []string{
		"agency.txt", "stops.txt", "routes.txt", "trips.txt",
		"stop_times.txt", "calendar.txt",
	}, base)

	// Rollover times come back as time-of-day strings.
	buf, err := os.ReadFile(filepath.Join(dest, "stop_times.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(buf), "26:10:00")
	assert.Contains(t, string(buf), "08:00:30")
}

func TestExportUnknownAgency(t *testing.T) {
	s := sqliteStorage(t)

	err := ExportAgency(s, "nope", t.TempDir())
	var ee *model.ExportError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "nope", ee.AgencyKey)
}

func TestExportRoundTrip(t *testing.T) {
	s := sqliteStorage(t)
	dir := testutil.BuildFeed(t, map[string][]string{
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type,route_color",
			"A1,a,Alpha,3,FF0000",
			"B2,,Beta,1,",
		},
		"shapes.txt": {
			"shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence",
			"SH1,40.70,-74.10,1",
			"SH1,40.71,-74.11,2",
		},
	})

	_, err := parse.ImportFeed(s, dir, nil, "a1")
	require.NoError(t, err)

	dest := t.TempDir()
	require.NoError(t, ExportAgency(s, "a1", dest))

	// Importing the export again yields identical row sets.
	s2 := sqliteStorage(t)
	_, err = parse.ImportFeed(s2, dest, nil, "a1")
	require.NoError(t, err)

	counts, err := s.RowCounts("a1")
	require.NoError(t, err)
	counts2, err := s2.RowCounts("a1")
	require.NoError(t, err)
	assert.Equal(t, counts, counts2)

	for table := range counts {
		rows, err := s.Query(table, storage.Spec{AgencyKey: "a1"})
		require.NoError(t, err)
		rows2, err := s2.Query(table, storage.Spec{AgencyKey: "a1"})
		require.NoError(t, err)
		assert.ElementsMatch(t, rows, rows2, "table %s", table)
	}
}
