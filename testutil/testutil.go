package testutil

// Helpers for building GTFS feed fixtures on disk.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// BuildFeedDir writes the given files into a fresh temp directory and
// returns its path. Each file is a slice of CSV lines.
func BuildFeedDir(t testing.TB, files map[string][]string) string {
	dir := t.TempDir()
	for name, lines := range files {
		err := os.WriteFile(
			filepath.Join(dir, name),
			[]byte(strings.Join(lines, "\n")+"\n"),
			0o644,
		)
		require.NoError(t, err)
	}
	return dir
}

// BuildFeed fills in missing required tables with small valid
// defaults, then writes the feed to disk.
func BuildFeed(t testing.TB, files map[string][]string) string {
	if files == nil {
		files = map[string][]string{}
	}
	if files["agency.txt"] == nil {
		files["agency.txt"] = []string{
			"agency_id,agency_name,agency_url,agency_timezone",
			"FA,Foo Agency,http://example.com,UTC",
		}
	}
	if files["calendar.txt"] == nil && files["calendar_dates.txt"] == nil {
		files["calendar.txt"] = []string{
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"always,1,1,1,1,1,1,1,20200101,20301231",
		}
	}
	if files["routes.txt"] == nil {
		files["routes.txt"] = []string{
			"route_id,route_short_name,route_type",
			"R1,r1,3",
		}
	}
	if files["trips.txt"] == nil {
		files["trips.txt"] = []string{
			"route_id,service_id,trip_id",
			"R1,always,T1",
		}
	}
	if files["stops.txt"] == nil {
		files["stops.txt"] = []string{
			"stop_id,stop_name,stop_lat,stop_lon",
			"S1,First St,40.70,-74.10",
			"S2,Second St,40.71,-74.11",
		}
	}
	if files["stop_times.txt"] == nil {
		files["stop_times.txt"] = []string{
			"trip_id,stop_sequence,stop_id,arrival_time,departure_time",
			"T1,1,S1,08:00:00,08:00:30",
			"T1,2,S2,08:10:00,08:10:30",
		}
	}

	return BuildFeedDir(t, files)
}
