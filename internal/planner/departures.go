package planner

import (
	"strconv"
	"strings"
	"time"

	"github.com/ptvplanner/pkg/table"
)

// Departure pairs an origin stop_time inside the lookahead window with the
// same trip's stop_time at the destination.
type Departure struct {
	Origin      table.Row
	Destination table.Row // nil when the trip does not serve the destination
	Trip        table.Row
	Route       table.Row
	RouteID     string
}

// UpcomingDepartures enumerates the scheduled departures from the origin
// stop that fall inside [now, now+lookahead], both ends inclusive, on a
// service that runs on now's date and a trip belonging to the requested
// route. Result order follows the stop_times table's insertion order.
func (s *Session) UpcomingDepartures(originStopID, destStopID, routeCode string, now time.Time) []Departure {
	windowEnd := now.Add(s.lookahead)

	var departures []Departure
	for _, st := range s.tables.StopTimes.Where("stop_id", originStopID).Rows() {
		trip, ok := s.tables.Trips.Where("trip_id", st["trip_id"]).First()
		if !ok {
			continue
		}
		if !s.calendar.IsRunning(trip["service_id"], now) {
			continue
		}
		// Other routes' trips share the origin stop; keep only the
		// requested route.
		route, ok := s.tables.Routes.Where("route_id", trip["route_id"]).First()
		if !ok || route["route_short_name"] != routeCode {
			continue
		}

		clock := st["departure_time"]
		if clock == "" {
			clock = st["arrival_time"]
		}
		departs, ok := clockOnDate(clock, now, s.loc)
		if !ok {
			continue
		}
		if departs.Before(now) || departs.After(windowEnd) {
			continue
		}

		dep := Departure{
			Origin:  st,
			Trip:    trip,
			Route:   route,
			RouteID: trip["route_id"],
		}
		if dst, ok := s.tables.StopTimes.
			Where("trip_id", st["trip_id"]).
			Where("stop_id", destStopID).
			First(); ok {
			dep.Destination = dst
		}
		departures = append(departures, dep)
	}
	return departures
}

// clockOnDate projects an HH:MM:SS clock reading (seconds optional) onto
// day's calendar date. Hour values of 24 and above normalize into the
// following day.
func clockOnDate(clock string, day time.Time, loc *time.Location) (time.Time, bool) {
	hour, min, sec, ok := parseClock(clock)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, sec, 0, loc), true
}

func parseClock(clock string) (hour, min, sec int, ok bool) {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0, 0, 0, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 {
		return 0, 0, 0, false
	}
	min, err = strconv.Atoi(parts[1])
	if err != nil || min < 0 || min > 59 {
		return 0, 0, 0, false
	}
	if len(parts) >= 3 {
		if v, err := strconv.Atoi(parts[2]); err == nil {
			sec = v
		}
	}
	return hour, min, sec, true
}
