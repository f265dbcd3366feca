// Package schema describes every GTFS table this module understands:
// the standard tables, the timetable/direction extensions, and the
// GTFS-ride extensions. It is pure metadata, no I/O.
package schema

type ColumnType int

const (
	Text ColumnType = iota
	Integer
	Float

	// Date is a GTFS service date on the form YYYYMMDD. Stored as
	// text, validated on import.
	Date

	// Time is a GTFS time of day, e.g. "08:10:00". Hours may
	// exceed 24 for trips running past midnight. Stored as seconds
	// since noon minus 12h, i.e. seconds since midnight with
	// rollover preserved.
	Time
)

type Column struct {
	Name       string
	Type       ColumnType
	Required   bool
	PrimaryKey bool
}

type Table struct {
	Name     string
	Filename string
	Required bool

	// Extension tables are not part of the core GTFS standard.
	Extension bool

	Columns []Column
}

// PrimaryKey returns the names of the table's primary key columns, in
// column order. Empty for tables without a natural key.
func (t Table) PrimaryKey() []string {
	var pk []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pk = append(pk, c.Name)
		}
	}
	return pk
}

// Column returns the named column's spec.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func col(name string, typ ColumnType) Column {
	return Column{Name: name, Type: typ}
}

func req(name string, typ ColumnType) Column {
	return Column{Name: name, Type: typ, Required: true}
}

func pk(name string, typ ColumnType) Column {
	return Column{Name: name, Type: typ, Required: true, PrimaryKey: true}
}

// Tables in deterministic order: standard tables first, then
// extensions, then the GTFS-ride extensions.
var tables = []Table{
	{
		Name:     "agency",
		Filename: "agency.txt",
		Required: true,
		Columns: []Column{
			// agency_id is optional in single-agency feeds, so
			// it is not marked as a key for uniqueness checks.
			col("agency_id", Text),
			req("agency_name", Text),
			req("agency_url", Text),
			req("agency_timezone", Text),
			col("agency_lang", Text),
			col("agency_phone", Text),
			col("agency_fare_url", Text),
			col("agency_email", Text),
		},
	},
	{
		Name:     "stops",
		Filename: "stops.txt",
		Required: true,
		Columns: []Column{
			pk("stop_id", Text),
			col("stop_code", Text),
			col("stop_name", Text),
			col("tts_stop_name", Text),
			col("stop_desc", Text),
			col("stop_lat", Float),
			col("stop_lon", Float),
			col("zone_id", Text),
			col("stop_url", Text),
			col("location_type", Integer),
			col("parent_station", Text),
			col("stop_timezone", Text),
			col("wheelchair_boarding", Integer),
			col("level_id", Text),
			col("platform_code", Text),
		},
	},
	{
		Name:     "routes",
		Filename: "routes.txt",
		Required: true,
		Columns: []Column{
			pk("route_id", Text),
			col("agency_id", Text),
			col("route_short_name", Text),
			col("route_long_name", Text),
			col("route_desc", Text),
			req("route_type", Integer),
			col("route_url", Text),
			col("route_color", Text),
			col("route_text_color", Text),
			col("route_sort_order", Integer),
			col("continuous_pickup", Integer),
			col("continuous_drop_off", Integer),
			col("network_id", Text),
		},
	},
	{
		Name:     "trips",
		Filename: "trips.txt",
		Required: true,
		Columns: []Column{
			req("route_id", Text),
			req("service_id", Text),
			pk("trip_id", Text),
			col("trip_headsign", Text),
			col("trip_short_name", Text),
			col("direction_id", Integer),
			col("block_id", Text),
			col("shape_id", Text),
			col("wheelchair_accessible", Integer),
			col("bikes_allowed", Integer),
		},
	},
	{
		Name:     "stop_times",
		Filename: "stop_times.txt",
		Required: true,
		Columns: []Column{
			pk("trip_id", Text),
			col("arrival_time", Time),
			col("departure_time", Time),
			col("stop_id", Text),
			pk("stop_sequence", Integer),
			col("stop_headsign", Text),
			col("start_pickup_drop_off_window", Time),
			col("end_pickup_drop_off_window", Time),
			col("pickup_type", Integer),
			col("drop_off_type", Integer),
			col("continuous_pickup", Integer),
			col("continuous_drop_off", Integer),
			col("shape_dist_traveled", Float),
			col("timepoint", Integer),
		},
	},
	{
		Name:     "calendar",
		Filename: "calendar.txt",
		Columns: []Column{
			pk("service_id", Text),
			req("monday", Integer),
			req("tuesday", Integer),
			req("wednesday", Integer),
			req("thursday", Integer),
			req("friday", Integer),
			req("saturday", Integer),
			req("sunday", Integer),
			req("start_date", Date),
			req("end_date", Date),
		},
	},
	{
		Name:     "calendar_dates",
		Filename: "calendar_dates.txt",
		Columns: []Column{
			pk("service_id", Text),
			pk("date", Date),
			req("exception_type", Integer),
		},
	},
	{
		Name:     "fare_attributes",
		Filename: "fare_attributes.txt",
		Columns: []Column{
			pk("fare_id", Text),
			req("price", Float),
			req("currency_type", Text),
			req("payment_method", Integer),
			col("transfers", Integer),
			col("agency_id", Text),
			col("transfer_duration", Integer),
		},
	},
	{
		Name:     "fare_rules",
		Filename: "fare_rules.txt",
		Columns: []Column{
			req("fare_id", Text),
			col("route_id", Text),
			col("origin_id", Text),
			col("destination_id", Text),
			col("contains_id", Text),
		},
	},
	{
		Name:     "shapes",
		Filename: "shapes.txt",
		Columns: []Column{
			pk("shape_id", Text),
			req("shape_pt_lat", Float),
			req("shape_pt_lon", Float),
			pk("shape_pt_sequence", Integer),
			col("shape_dist_traveled", Float),
		},
	},
	{
		Name:     "frequencies",
		Filename: "frequencies.txt",
		Columns: []Column{
			pk("trip_id", Text),
			pk("start_time", Time),
			req("end_time", Time),
			req("headway_secs", Integer),
			col("exact_times", Integer),
		},
	},
	{
		Name:     "transfers",
		Filename: "transfers.txt",
		Columns: []Column{
			col("from_stop_id", Text),
			col("to_stop_id", Text),
			col("from_route_id", Text),
			col("to_route_id", Text),
			col("from_trip_id", Text),
			col("to_trip_id", Text),
			req("transfer_type", Integer),
			col("min_transfer_time", Integer),
		},
	},
	{
		Name:     "pathways",
		Filename: "pathways.txt",
		Columns: []Column{
			pk("pathway_id", Text),
			req("from_stop_id", Text),
			req("to_stop_id", Text),
			req("pathway_mode", Integer),
			req("is_bidirectional", Integer),
			col("length", Float),
			col("traversal_time", Integer),
			col("stair_count", Integer),
			col("max_slope", Float),
			col("min_width", Float),
			col("signposted_as", Text),
			col("reversed_signposted_as", Text),
		},
	},
	{
		Name:     "levels",
		Filename: "levels.txt",
		Columns: []Column{
			pk("level_id", Text),
			req("level_index", Float),
			col("level_name", Text),
		},
	},
	{
		Name:     "feed_info",
		Filename: "feed_info.txt",
		Columns: []Column{
			req("feed_publisher_name", Text),
			req("feed_publisher_url", Text),
			req("feed_lang", Text),
			col("default_lang", Text),
			col("feed_start_date", Date),
			col("feed_end_date", Date),
			col("feed_version", Text),
			col("feed_contact_email", Text),
			col("feed_contact_url", Text),
		},
	},
	{
		Name:     "translations",
		Filename: "translations.txt",
		Columns: []Column{
			req("table_name", Text),
			req("field_name", Text),
			req("language", Text),
			req("translation", Text),
			col("record_id", Text),
			col("record_sub_id", Text),
			col("field_value", Text),
		},
	},
	{
		Name:     "attributions",
		Filename: "attributions.txt",
		Columns: []Column{
			col("attribution_id", Text),
			col("agency_id", Text),
			col("route_id", Text),
			col("trip_id", Text),
			req("organization_name", Text),
			col("is_producer", Integer),
			col("is_operator", Integer),
			col("is_authority", Integer),
			col("attribution_url", Text),
			col("attribution_email", Text),
			col("attribution_phone", Text),
		},
	},

	// Extensions: rider-facing direction names and timetable
	// publishing metadata.
	{
		Name:      "directions",
		Filename:  "directions.txt",
		Extension: true,
		Columns: []Column{
			req("route_id", Text),
			col("direction_id", Integer),
			req("direction", Text),
		},
	},
	{
		Name:      "stop_attributes",
		Filename:  "stop_attributes.txt",
		Extension: true,
		Columns: []Column{
			pk("stop_id", Text),
			col("accessibility_id", Integer),
			col("cardinal_direction", Text),
			col("relative_position", Text),
			col("stop_city", Text),
		},
	},
	{
		Name:      "timetables",
		Filename:  "timetables.txt",
		Extension: true,
		Columns: []Column{
			col("timetable_id", Text),
			col("route_id", Text),
			col("direction_id", Integer),
			col("start_date", Date),
			col("end_date", Date),
			req("monday", Integer),
			req("tuesday", Integer),
			req("wednesday", Integer),
			req("thursday", Integer),
			req("friday", Integer),
			req("saturday", Integer),
			req("sunday", Integer),
			col("start_time", Time),
			col("end_time", Time),
			col("timetable_label", Text),
			col("service_notes", Text),
			col("orientation", Text),
			col("timetable_page_id", Text),
			col("timetable_sequence", Integer),
			col("direction_name", Text),
			col("include_exceptions", Integer),
			col("show_trip_continuation", Integer),
		},
	},
	{
		Name:      "timetable_pages",
		Filename:  "timetable_pages.txt",
		Extension: true,
		Columns: []Column{
			pk("timetable_page_id", Text),
			col("timetable_page_label", Text),
			col("filename", Text),
		},
	},
	{
		Name:      "timetable_stop_order",
		Filename:  "timetable_stop_order.txt",
		Extension: true,
		Columns: []Column{
			req("timetable_id", Text),
			req("stop_id", Text),
			req("stop_sequence", Integer),
		},
	},
	{
		Name:      "timetable_notes",
		Filename:  "timetable_notes.txt",
		Extension: true,
		Columns: []Column{
			pk("note_id", Text),
			col("symbol", Text),
			col("note", Text),
		},
	},
	{
		Name:      "timetable_notes_references",
		Filename:  "timetable_notes_references.txt",
		Extension: true,
		Columns: []Column{
			col("note_id", Text),
			col("timetable_id", Text),
			col("route_id", Text),
			col("trip_id", Text),
			col("stop_id", Text),
			col("stop_sequence", Integer),
			col("show_on_stoptime", Integer),
		},
	},

	// GTFS-ride extensions.
	{
		Name:      "board_alights",
		Filename:  "board_alight.txt",
		Extension: true,
		Columns: []Column{
			req("trip_id", Text),
			req("stop_id", Text),
			req("stop_sequence", Integer),
			req("record_use", Integer),
			col("schedule_relationship", Integer),
			col("boardings", Integer),
			col("alightings", Integer),
			col("current_load", Integer),
			col("load_count", Integer),
			col("load_type", Integer),
			col("rack_down", Integer),
			col("bike_boardings", Integer),
			col("bike_alightings", Integer),
			col("ramp_used", Integer),
			col("ramp_boardings", Integer),
			col("ramp_alightings", Integer),
			col("service_date", Date),
			col("service_arrival_time", Time),
			col("service_departure_time", Time),
			col("source", Integer),
		},
	},
	{
		Name:      "ride_feed_info",
		Filename:  "ride_feed_info.txt",
		Extension: true,
		Columns: []Column{
			req("ride_files", Integer),
			col("ride_start_date", Date),
			col("ride_end_date", Date),
			col("gtfs_feed_date", Date),
			col("default_currency_type", Text),
			col("ride_feed_version", Text),
		},
	},
	{
		Name:      "rider_trips",
		Filename:  "rider_trip.txt",
		Extension: true,
		Columns: []Column{
			pk("rider_id", Text),
			col("agency_id", Text),
			col("trip_id", Text),
			col("boarding_stop_id", Text),
			col("boarding_stop_sequence", Integer),
			col("alighting_stop_id", Text),
			col("alighting_stop_sequence", Integer),
			col("service_date", Date),
			col("boarding_time", Time),
			col("alighting_time", Time),
			col("rider_type", Integer),
			col("rider_type_description", Text),
			col("fare_paid", Float),
			col("transaction_type", Integer),
			col("fare_media", Integer),
			col("accompanying_device", Integer),
			col("transfer_status", Integer),
		},
	},
	{
		Name:      "riderships",
		Filename:  "ridership.txt",
		Extension: true,
		Columns: []Column{
			req("total_boardings", Integer),
			req("total_alightings", Integer),
			col("ridership_start_date", Date),
			col("ridership_end_date", Date),
			col("ridership_start_time", Time),
			col("ridership_end_time", Time),
			col("service_id", Text),
			col("monday", Integer),
			col("tuesday", Integer),
			col("wednesday", Integer),
			col("thursday", Integer),
			col("friday", Integer),
			col("saturday", Integer),
			col("sunday", Integer),
			col("agency_id", Text),
			col("route_id", Text),
			col("direction_id", Integer),
			col("trip_id", Text),
			col("stop_id", Text),
		},
	},
	{
		Name:      "trip_capacities",
		Filename:  "trip_capacity.txt",
		Extension: true,
		Columns: []Column{
			col("agency_id", Text),
			col("trip_id", Text),
			col("service_date", Date),
			col("vehicle_description", Text),
			col("seated_capacity", Integer),
			col("standing_capacity", Integer),
			col("wheelchair_capacity", Integer),
			col("bike_capacity", Integer),
		},
	},
}

var byName = func() map[string]Table {
	m := make(map[string]Table, len(tables))
	for _, t := range tables {
		m[t.Name] = t
	}
	return m
}()

// Describe returns the spec for the named table.
func Describe(name string) (Table, bool) {
	t, ok := byName[name]
	return t, ok
}

// AllTables returns every recognized table name, standard tables
// first, in a stable order.
func AllTables() []string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
	}
	return names
}

// RequiredTables returns the tables a feed must provide. calendar and
// calendar_dates are conditionally required (at least one of the two)
// and are not included here.
func RequiredTables() []string {
	var names []string
	for _, t := range tables {
		if t.Required {
			names = append(names, t.Name)
		}
	}
	return names
}
