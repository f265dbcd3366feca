package gtfsdb

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanatlas/gtfsdb/model"
	"github.com/urbanatlas/gtfsdb/testutil"
)

func openTestStore(t *testing.T) *Store {
	s, err := Open(Config{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func importFeed(t *testing.T, s *Store, agencyKey string, files map[string][]string) {
	dir := testutil.BuildFeed(t, files)
	_, err := s.Import(AgencyConfig{AgencyKey: agencyKey, Path: dir})
	require.NoError(t, err)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Config{Backend: "etcd"})
	assert.Error(t, err)
}

func TestCloseLifecycle(t *testing.T) {
	s, err := Open(Config{})
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Close(), ErrNotOpen)

	_, err = s.GetStops(Query{})
	assert.ErrorIs(t, err, ErrNotOpen)

	_, err = s.Import(AgencyConfig{AgencyKey: "a1", Path: t.TempDir()})
	assert.ErrorIs(t, err, ErrNotOpen)

	assert.ErrorIs(t, s.Export("a1", t.TempDir()), ErrNotOpen)
}

func TestDefaultStorePolicy(t *testing.T) {
	require.Nil(t, Default())

	s, err := OpenDefault(Config{})
	require.NoError(t, err)
	assert.Equal(t, s, Default())

	// Reopening is refused, not silently ignored.
	_, err = OpenDefault(Config{})
	assert.ErrorIs(t, err, ErrAlreadyOpen)

	// Independent handles are unrestricted.
	other, err := Open(Config{})
	require.NoError(t, err)
	require.NoError(t, other.Close())

	require.NoError(t, CloseDefault())
	assert.Nil(t, Default())
	assert.ErrorIs(t, CloseDefault(), ErrNotOpen)
}

func TestImportAndQuery(t *testing.T) {
	s := openTestStore(t)
	importFeed(t, s, "caltrain", map[string][]string{
		"routes.txt": {
			"route_id,route_short_name,route_type",
			"A1,a,3",
			"B2,b,1",
		},
	})

	rows, err := s.GetRoutes(Query{AgencyKey: "caltrain"})
	require.NoError(t, err)
	assert.Equal(t, 2, len(rows))
}

func TestImportReplaces(t *testing.T) {
	s := openTestStore(t)
	importFeed(t, s, "a1", map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon",
			"OLD,Old St,40.70,-74.10",
		},
	})
	importFeed(t, s, "a1", map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon",
			"NEW,New St,40.72,-74.12",
		},
	})

	rows, err := s.GetStops(Query{AgencyKey: "a1"})
	require.NoError(t, err)
	require.Equal(t, 1, len(rows))
	assert.Equal(t, model.String("NEW"), rows[0]["stop_id"])
}

func TestMultipleAgencies(t *testing.T) {
	s := openTestStore(t)
	importFeed(t, s, "a1", nil)
	importFeed(t, s, "a2", nil)

	rows, err := s.GetStops(Query{AgencyKey: "a1"})
	require.NoError(t, err)
	assert.Equal(t, 2, len(rows))

	rows, err = s.GetStops(Query{})
	require.NoError(t, err)
	assert.Equal(t, 4, len(rows))
}

func TestExportThroughStore(t *testing.T) {
	s := openTestStore(t)
	importFeed(t, s, "a1", nil)

	dest := t.TempDir()
	require.NoError(t, s.Export("a1", dest))

	// The export is itself a loadable feed.
	s2 := openTestStore(t)
	_, err := s2.Import(AgencyConfig{AgencyKey: "a1", Path: dest})
	require.NoError(t, err)

	rows, err := s2.GetStops(Query{AgencyKey: "a1"})
	require.NoError(t, err)
	assert.Equal(t, 2, len(rows))
}

func TestConcurrentQueries(t *testing.T) {
	s := openTestStore(t)
	importFeed(t, s, "a1", nil)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows, err := s.GetStops(Query{AgencyKey: "a1"})
			if err != nil {
				errs <- err
				return
			}
			if len(rows) != 2 {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestConcurrentImports(t *testing.T) {
	s := openTestStore(t)

	dirs := map[string]string{
		"a1": testutil.BuildFeed(t, nil),
		"a2": testutil.BuildFeed(t, nil),
		"a3": testutil.BuildFeed(t, nil),
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(dirs))
	for agency, dir := range dirs {
		wg.Add(1)
		go func(agency, dir string) {
			defer wg.Done()
			if _, err := s.Import(AgencyConfig{AgencyKey: agency, Path: dir}); err != nil {
				errs <- err
			}
		}(agency, dir)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	for agency := range dirs {
		rows, err := s.GetStops(Query{AgencyKey: agency})
		require.NoError(t, err)
		assert.Equal(t, 2, len(rows), "agency %s", agency)
	}
}
