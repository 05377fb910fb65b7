// Package planner implements the schedule-matching and live-correlation
// query engine: route topology, service calendar, departure window
// filtering, realtime enrichment and travel-time computation over an
// immutable in-memory schedule snapshot.
package planner

import (
	"time"

	"github.com/ptvplanner/internal/common/logger"
	"github.com/ptvplanner/internal/gtfs-realtime/feed"
	"github.com/ptvplanner/pkg/gtfs"
	"github.com/ptvplanner/pkg/table"
)

// Session holds the loaded schedule tables and the query configuration.
// It is constructed once per process and serves sequential queries; it
// never mutates the tables.
type Session struct {
	tables    *gtfs.Tables
	calendar  *ServiceCalendar
	loc       *time.Location
	lookahead time.Duration
	logger    logger.Logger
}

// Options are the explicit query tunables.
type Options struct {
	Lookahead time.Duration // zero means the 10 minute default
	Location  *time.Location
}

func NewSession(tables *gtfs.Tables, opts Options, log logger.Logger) *Session {
	lookahead := opts.Lookahead
	if lookahead <= 0 {
		lookahead = 10 * time.Minute
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Session{
		tables:    tables,
		calendar:  NewServiceCalendar(tables),
		loc:       loc,
		lookahead: lookahead,
		logger:    log,
	}
}

// Calendar exposes the session's service calendar.
func (s *Session) Calendar() *ServiceCalendar {
	return s.calendar
}

// Result is one display-ready row of a planning query.
type Result struct {
	RouteShortName     string
	RouteLongName      string
	ServiceID          string
	Headsign           string
	ScheduledDeparture string
	ScheduledArrival   string
	LiveArrival        string
	LivePosition       string
	TravelTime         string
}

// Plan runs the full query pipeline for one route / stop pair / instant:
// window filtering, realtime correlation and travel-time computation.
// Fields with no data carry the Unavailable sentinel.
func (s *Session) Plan(routeCode, originStopID, destStopID string, now time.Time, tripUpdates []feed.TripUpdate, positions []feed.VehiclePosition) []Result {
	departures := s.UpcomingDepartures(originStopID, destStopID, routeCode, now)
	s.logger.Debug("Matched scheduled departures",
		"route", routeCode,
		"origin", originStopID,
		"count", len(departures),
	)

	results := make([]Result, 0, len(departures))
	for _, dep := range departures {
		res := Result{
			RouteShortName:     dep.Route["route_short_name"],
			RouteLongName:      dep.Route["route_long_name"],
			ServiceID:          dep.Trip["service_id"],
			Headsign:           dep.Trip["trip_headsign"],
			ScheduledDeparture: originClock(dep.Origin),
			ScheduledArrival:   Unavailable,
			TravelTime:         Unavailable,
		}

		live := MatchLiveData(tripUpdates, positions, dep.Origin, dep.RouteID, dep.Trip["trip_id"], now, s.loc)
		res.LiveArrival = live.ArrivalTime
		res.LivePosition = live.Position

		if dep.Destination != nil {
			arrival := dep.Destination["arrival_time"]
			if arrival == "" {
				arrival = dep.Destination["departure_time"]
			}
			if arrival != "" {
				res.ScheduledArrival = arrival
				res.TravelTime = Duration(originClock(dep.Origin), arrival)
			}
		}

		results = append(results, res)
	}
	return results
}

func originClock(origin table.Row) string {
	if v := origin["departure_time"]; v != "" {
		return v
	}
	return origin["arrival_time"]
}
