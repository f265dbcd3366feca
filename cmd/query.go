package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/urbanatlas/gtfsdb"
	"github.com/urbanatlas/gtfsdb/model"
)

var queryCmd = &cobra.Command{
	Use:   "query <table>",
	Short: "Queries a GTFS table, printing rows as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

var geojsonCmd = &cobra.Command{
	Use:   "geojson <stops|shapes>",
	Short: "Queries stops or shapes as a GeoJSON FeatureCollection",
	Args:  cobra.ExactArgs(1),
	RunE:  runGeoJSON,
}

var (
	queryAgency string
	queryWhere  []string
	queryFields []string
	queryOrder  []string
)

func init() {
	for _, cmd := range []*cobra.Command{queryCmd, geojsonCmd} {
		cmd.Flags().StringVarP(&queryAgency, "agency", "a", "", "limit to one agency key")
		cmd.Flags().StringSliceVarP(&queryWhere, "where", "w", []string{}, "filter on form field=value (empty value means IS NULL, commas mean IN)")
		cmd.Flags().StringSliceVarP(&queryOrder, "order", "o", []string{}, "sort key on form field or field:desc")
		rootCmd.AddCommand(cmd)
	}
	queryCmd.Flags().StringSliceVarP(&queryFields, "fields", "f", []string{}, "columns to return")
}

func buildQuery() (gtfsdb.Query, error) {
	q := gtfsdb.Query{
		AgencyKey: queryAgency,
		Fields:    queryFields,
	}

	if len(queryWhere) > 0 {
		q.Where = model.Where{}
		for _, w := range queryWhere {
			parts := strings.SplitN(w, "=", 2)
			if len(parts) != 2 {
				return q, fmt.Errorf("'%s' is not on form field=value", w)
			}
			switch {
			case parts[1] == "":
				q.Where[parts[0]] = nil
			case strings.Contains(parts[1], ","):
				q.Where[parts[0]] = strings.Split(parts[1], ",")
			default:
				q.Where[parts[0]] = parts[1]
			}
		}
	}

	for _, o := range queryOrder {
		field, dir, _ := strings.Cut(o, ":")
		q.OrderBy = append(q.OrderBy, model.SortKey{
			Field: field,
			Desc:  dir == "desc",
		})
	}

	return q, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	q, err := buildQuery()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ops := map[string]func(gtfsdb.Query) ([]model.Row, error){
		"agency":                     store.GetAgencies,
		"stops":                      store.GetStops,
		"routes":                     store.GetRoutes,
		"trips":                      store.GetTrips,
		"stop_times":                 store.GetStoptimes,
		"calendar":                   store.GetCalendars,
		"calendar_dates":             store.GetCalendarDates,
		"fare_attributes":            store.GetFareAttributes,
		"fare_rules":                 store.GetFareRules,
		"shapes":                     store.GetShapes,
		"frequencies":                store.GetFrequencies,
		"transfers":                  store.GetTransfers,
		"pathways":                   store.GetPathways,
		"levels":                     store.GetLevels,
		"feed_info":                  store.GetFeedInfo,
		"translations":               store.GetTranslations,
		"attributions":               store.GetAttributions,
		"directions":                 store.GetDirections,
		"stop_attributes":            store.GetStopAttributes,
		"timetables":                 store.GetTimetables,
		"timetable_pages":            store.GetTimetablePages,
		"timetable_stop_order":       store.GetTimetableStopOrders,
		"timetable_notes":            store.GetTimetableNotes,
		"timetable_notes_references": store.GetTimetableNotesReferences,
		"board_alights":              store.GetBoardAlights,
		"ride_feed_info":             store.GetRideFeedInfo,
		"rider_trips":                store.GetRiderTrips,
		"riderships":                 store.GetRiderships,
		"trip_capacities":            store.GetTripCapacities,
	}

	op, ok := ops[args[0]]
	if !ok {
		return fmt.Errorf("unknown table %q", args[0])
	}

	rows, err := op(q)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func runGeoJSON(cmd *cobra.Command, args []string) error {
	q, err := buildQuery()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var fc *model.FeatureCollection
	switch args[0] {
	case "stops":
		fc, err = store.GetStopsAsGeoJSON(q)
	case "shapes":
		fc, err = store.GetShapesAsGeoJSON(q)
	default:
		return fmt.Errorf("geojson supports stops and shapes, not %q", args[0])
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
