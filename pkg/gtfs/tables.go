// Package gtfs names the static schedule tables the planner operates on.
// Rows keep the column names of the GTFS files they were loaded from
// (route_id, stop_sequence, ...), so one generic table type serves every
// schema.
package gtfs

import (
	"github.com/ptvplanner/pkg/table"
)

// GTFS file names recognised by the loader.
const (
	FileRoutes        = "routes.txt"
	FileStops         = "stops.txt"
	FileTrips         = "trips.txt"
	FileStopTimes     = "stop_times.txt"
	FileCalendar      = "calendar.txt"
	FileCalendarDates = "calendar_dates.txt"
)

// Tables is the loaded schedule snapshot, immutable for the session.
type Tables struct {
	Routes        *table.Table
	Stops         *table.Table
	Trips         *table.Table
	StopTimes     *table.Table
	Calendar      *table.Table
	CalendarDates *table.Table
}

// Empty returns a Tables with six empty tables; used as the starting point
// by the loader and as a convenient base in tests.
func Empty() *Tables {
	return &Tables{
		Routes:        table.New(nil),
		Stops:         table.New(nil),
		Trips:         table.New(nil),
		StopTimes:     table.New(nil),
		Calendar:      table.New(nil),
		CalendarDates: table.New(nil),
	}
}
