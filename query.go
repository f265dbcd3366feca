package gtfsdb

import (
	"github.com/urbanatlas/gtfsdb/model"
	"github.com/urbanatlas/gtfsdb/storage"
)

// Query is the filter/projection/order specification accepted by
// every get operation. The zero value means: all agencies, no
// constraint, all fields, insertion order.
type Query struct {
	AgencyKey string
	Where     model.Where
	Fields    []string
	OrderBy   model.OrderBy
}

func (s *Store) query(table string, q Query) ([]model.Row, error) {
	st, err := s.backend()
	if err != nil {
		return nil, err
	}
	return st.Query(table, storage.Spec{
		AgencyKey: q.AgencyKey,
		Where:     q.Where,
		Fields:    q.Fields,
		OrderBy:   q.OrderBy,
	})
}

func (s *Store) GetAgencies(q Query) ([]model.Row, error) {
	return s.query("agency", q)
}

func (s *Store) GetStops(q Query) ([]model.Row, error) {
	return s.query("stops", q)
}

func (s *Store) GetRoutes(q Query) ([]model.Row, error) {
	return s.query("routes", q)
}

func (s *Store) GetTrips(q Query) ([]model.Row, error) {
	return s.query("trips", q)
}

func (s *Store) GetStoptimes(q Query) ([]model.Row, error) {
	return s.query("stop_times", q)
}

func (s *Store) GetCalendars(q Query) ([]model.Row, error) {
	return s.query("calendar", q)
}

func (s *Store) GetCalendarDates(q Query) ([]model.Row, error) {
	return s.query("calendar_dates", q)
}

func (s *Store) GetFareAttributes(q Query) ([]model.Row, error) {
	return s.query("fare_attributes", q)
}

func (s *Store) GetFareRules(q Query) ([]model.Row, error) {
	return s.query("fare_rules", q)
}

func (s *Store) GetShapes(q Query) ([]model.Row, error) {
	return s.query("shapes", q)
}

func (s *Store) GetFrequencies(q Query) ([]model.Row, error) {
	return s.query("frequencies", q)
}

func (s *Store) GetTransfers(q Query) ([]model.Row, error) {
	return s.query("transfers", q)
}

func (s *Store) GetPathways(q Query) ([]model.Row, error) {
	return s.query("pathways", q)
}

func (s *Store) GetLevels(q Query) ([]model.Row, error) {
	return s.query("levels", q)
}

func (s *Store) GetFeedInfo(q Query) ([]model.Row, error) {
	return s.query("feed_info", q)
}

func (s *Store) GetTranslations(q Query) ([]model.Row, error) {
	return s.query("translations", q)
}

func (s *Store) GetAttributions(q Query) ([]model.Row, error) {
	return s.query("attributions", q)
}

func (s *Store) GetDirections(q Query) ([]model.Row, error) {
	return s.query("directions", q)
}

func (s *Store) GetStopAttributes(q Query) ([]model.Row, error) {
	return s.query("stop_attributes", q)
}

func (s *Store) GetTimetables(q Query) ([]model.Row, error) {
	return s.query("timetables", q)
}

func (s *Store) GetTimetablePages(q Query) ([]model.Row, error) {
	return s.query("timetable_pages", q)
}

func (s *Store) GetTimetableStopOrders(q Query) ([]model.Row, error) {
	return s.query("timetable_stop_order", q)
}

func (s *Store) GetTimetableNotes(q Query) ([]model.Row, error) {
	return s.query("timetable_notes", q)
}

func (s *Store) GetTimetableNotesReferences(q Query) ([]model.Row, error) {
	return s.query("timetable_notes_references", q)
}

func (s *Store) GetBoardAlights(q Query) ([]model.Row, error) {
	return s.query("board_alights", q)
}

func (s *Store) GetRideFeedInfo(q Query) ([]model.Row, error) {
	return s.query("ride_feed_info", q)
}

func (s *Store) GetRiderTrips(q Query) ([]model.Row, error) {
	return s.query("rider_trips", q)
}

func (s *Store) GetRiderships(q Query) ([]model.Row, error) {
	return s.query("riderships", q)
}

func (s *Store) GetTripCapacities(q Query) ([]model.Row, error) {
	return s.query("trip_capacities", q)
}
