package planner

import (
	"testing"
	"time"

	"github.com/ptvplanner/internal/common/logger"
	"github.com/ptvplanner/pkg/gtfs"
	"github.com/ptvplanner/pkg/table"
)

// aest matches the schedule's local clock in the fixtures below.
var aest = time.FixedZone("AEST", 10*60*60)

// routeFixture is a small schedule around tram route 66: one weekday
// service, two trips (one per direction) plus a foreign route sharing a
// stop. 2024-08-29 is a Thursday.
func routeFixture(t *testing.T) *gtfs.Tables {
	t.Helper()

	tables := gtfs.Empty()
	tables.Routes = table.New([]table.Row{
		{"route_id": "66-3734", "route_short_name": "66", "route_long_name": "East Brighton - Box Hill"},
		{"route_id": "70-3734", "route_short_name": "70", "route_long_name": "Waterfront City - Wattle Park"},
	})
	tables.Stops = table.New([]table.Row{
		{"stop_id": "S1", "stop_name": "Stop One", "stop_lat": "-37.81", "stop_lon": "144.96"},
		{"stop_id": "S2", "stop_name": "Stop Two", "stop_lat": "-37.82", "stop_lon": "144.97"},
		{"stop_id": "S3", "stop_name": "Stop Three", "stop_lat": "-37.83", "stop_lon": "144.98"},
	})
	tables.Trips = table.New([]table.Row{
		{"trip_id": "TRIP-OUT", "route_id": "66-3734", "service_id": "T1", "trip_headsign": "Box Hill", "direction_id": "0"},
		{"trip_id": "TRIP-IN", "route_id": "66-3734", "service_id": "T1", "trip_headsign": "East Brighton", "direction_id": "1"},
		{"trip_id": "TRIP-70", "route_id": "70-3734", "service_id": "T1", "trip_headsign": "Wattle Park", "direction_id": "0"},
	})
	tables.StopTimes = table.New([]table.Row{
		{"trip_id": "TRIP-OUT", "stop_id": "S1", "stop_sequence": "1", "arrival_time": "10:00:00", "departure_time": "10:00:00"},
		{"trip_id": "TRIP-OUT", "stop_id": "S2", "stop_sequence": "2", "arrival_time": "10:12:00", "departure_time": "10:12:00"},
		{"trip_id": "TRIP-OUT", "stop_id": "S3", "stop_sequence": "3", "arrival_time": "10:20:00", "departure_time": "10:20:00"},
		{"trip_id": "TRIP-IN", "stop_id": "S3", "stop_sequence": "1", "arrival_time": "10:05:00", "departure_time": "10:05:00"},
		{"trip_id": "TRIP-IN", "stop_id": "S2", "stop_sequence": "2", "arrival_time": "10:13:00", "departure_time": "10:13:00"},
		{"trip_id": "TRIP-IN", "stop_id": "S1", "stop_sequence": "3", "arrival_time": "10:21:00", "departure_time": "10:21:00"},
		{"trip_id": "TRIP-70", "stop_id": "S1", "stop_sequence": "1", "arrival_time": "10:03:00", "departure_time": "10:03:00"},
	})
	tables.Calendar = table.New([]table.Row{
		{
			"service_id": "T1",
			"monday":     "1", "tuesday": "1", "wednesday": "1",
			"thursday": "1", "friday": "1",
			"saturday": "0", "sunday": "0",
			"start_date": "20240101", "end_date": "20241231",
		},
	})
	return tables
}

func testSession(t *testing.T, tables *gtfs.Tables) *Session {
	t.Helper()
	return NewSession(tables, Options{Location: aest}, logger.Nop())
}
