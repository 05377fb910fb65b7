package planner

import (
	"github.com/ptvplanner/pkg/table"
)

// StopsForRoute derives the ordered list of distinct stops served by the
// route with the given rider-facing short code, outbound stops first, then
// inbound. An unknown code or a route with no trips yields an empty table.
func (s *Session) StopsForRoute(shortName string) *table.Table {
	route, ok := s.tables.Routes.Where("route_short_name", shortName).First()
	if !ok {
		return table.New(nil)
	}

	trips := s.tables.Trips.Where("route_id", route["route_id"])
	if trips.Len() == 0 {
		return table.New(nil)
	}

	// Direction is the primary sort key so the outbound and inbound halves
	// do not interleave; with stable sorts the secondary key goes first.
	combined := trips.
		Join(s.tables.StopTimes, "trip_id").
		Join(s.tables.Stops, "stop_id").
		SortBy("stop_sequence").
		SortBy("direction_id")

	outbound := combined.
		Filter(func(r table.Row) bool { return r["direction_id"] != "1" }).
		DistinctBy("stop_id")
	inbound := combined.
		Where("direction_id", "1").
		DistinctBy("stop_id")

	stops := outbound.Concat(inbound)

	// A loop route repeats its terminus as both the first and last entry.
	rows := stops.Rows()
	if len(rows) >= 2 && rows[0]["stop_id"] == rows[len(rows)-1]["stop_id"] {
		stops = table.New(rows[:len(rows)-1])
	}
	return stops
}
