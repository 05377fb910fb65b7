package planner

import (
	"testing"
	"time"

	"github.com/ptvplanner/pkg/table"
)

// 2024-08-29 09:55 local, a Thursday; the window closes at 10:05:00.
func windowNow() time.Time {
	return time.Date(2024, time.August, 29, 9, 55, 0, 0, aest)
}

func TestUpcomingDeparturesWindowInclusive(t *testing.T) {
	tables := routeFixture(t)
	tables.StopTimes = table.New([]table.Row{
		{"trip_id": "TRIP-OUT", "stop_id": "S1", "stop_sequence": "1", "arrival_time": "10:00:00", "departure_time": "10:00:00"},
		{"trip_id": "TRIP-IN", "stop_id": "S1", "stop_sequence": "3", "arrival_time": "10:05:00", "departure_time": "10:05:00"},
	})

	got := testSession(t, tables).UpcomingDepartures("S1", "S3", "66", windowNow())

	if len(got) != 2 {
		t.Fatalf("both window-edge departures should be included, got %d", len(got))
	}
}

func TestUpcomingDeparturesWindowEdges(t *testing.T) {
	tables := routeFixture(t)
	tables.StopTimes = table.New([]table.Row{
		{"trip_id": "TRIP-OUT", "stop_id": "S1", "stop_sequence": "1", "departure_time": "09:55:00"},
		{"trip_id": "TRIP-IN", "stop_id": "S1", "stop_sequence": "3", "departure_time": "10:05:01"},
	})

	got := testSession(t, tables).UpcomingDepartures("S1", "S3", "66", windowNow())

	if len(got) != 1 {
		t.Fatalf("expected only the departure at the window start, got %d", len(got))
	}
	if got[0].Origin["departure_time"] != "09:55:00" {
		t.Errorf("a departure exactly at now is inside the closed window")
	}
}

func TestUpcomingDeparturesPastDeparturesExcluded(t *testing.T) {
	tables := routeFixture(t)
	tables.StopTimes = table.New([]table.Row{
		{"trip_id": "TRIP-OUT", "stop_id": "S1", "stop_sequence": "1", "departure_time": "09:54:00"},
	})

	if got := testSession(t, tables).UpcomingDepartures("S1", "S3", "66", windowNow()); len(got) != 0 {
		t.Errorf("departures before now must be excluded, got %d", len(got))
	}
}

func TestUpcomingDeparturesSkipsInactiveService(t *testing.T) {
	tables := routeFixture(t)
	// Saturday: the weekday service does not run
	saturday := time.Date(2024, time.August, 31, 9, 55, 0, 0, aest)

	if got := testSession(t, tables).UpcomingDepartures("S1", "S3", "66", saturday); len(got) != 0 {
		t.Errorf("departures of an inactive service must be excluded, got %d", len(got))
	}
}

func TestUpcomingDeparturesSkipsOtherRoutes(t *testing.T) {
	tables := routeFixture(t)
	tables.StopTimes = table.New([]table.Row{
		// Route 70 shares stop S1 and departs inside the window
		{"trip_id": "TRIP-70", "stop_id": "S1", "stop_sequence": "1", "departure_time": "10:03:00"},
	})

	if got := testSession(t, tables).UpcomingDepartures("S1", "S3", "66", windowNow()); len(got) != 0 {
		t.Errorf("trips of other routes sharing the stop must be excluded, got %d", len(got))
	}
}

func TestUpcomingDeparturesSkipsDanglingStopTime(t *testing.T) {
	tables := routeFixture(t)
	tables.StopTimes = table.New([]table.Row{
		{"trip_id": "GONE", "stop_id": "S1", "stop_sequence": "1", "departure_time": "10:00:00"},
	})

	if got := testSession(t, tables).UpcomingDepartures("S1", "S3", "66", windowNow()); len(got) != 0 {
		t.Errorf("stop_times referencing a missing trip must be skipped, got %d", len(got))
	}
}

func TestUpcomingDeparturesArrivalFallback(t *testing.T) {
	tables := routeFixture(t)
	tables.StopTimes = table.New([]table.Row{
		{"trip_id": "TRIP-OUT", "stop_id": "S1", "stop_sequence": "1", "arrival_time": "10:02:00"},
	})

	got := testSession(t, tables).UpcomingDepartures("S1", "S3", "66", windowNow())

	if len(got) != 1 {
		t.Fatalf("arrival_time must serve as fallback when departure_time is absent, got %d", len(got))
	}
}

func TestUpcomingDeparturesDestinationRow(t *testing.T) {
	got := testSession(t, routeFixture(t)).UpcomingDepartures("S1", "S3", "66", windowNow())

	if len(got) != 1 {
		t.Fatalf("expected the 10:00 outbound departure, got %d", len(got))
	}
	dep := got[0]
	if dep.Destination == nil {
		t.Fatalf("destination stop_time of the same trip should be attached")
	}
	if dep.Destination["arrival_time"] != "10:20:00" {
		t.Errorf("wrong destination row: %v", dep.Destination)
	}
	if dep.Trip["trip_headsign"] != "Box Hill" {
		t.Errorf("trip row should be carried along, got %v", dep.Trip)
	}
	if dep.RouteID != "66-3734" {
		t.Errorf("expected route id 66-3734, got %s", dep.RouteID)
	}
}

func TestUpcomingDeparturesMissingDestinationIsNotAnError(t *testing.T) {
	tables := routeFixture(t)
	tables.StopTimes = table.New([]table.Row{
		{"trip_id": "TRIP-OUT", "stop_id": "S1", "stop_sequence": "1", "departure_time": "10:00:00"},
	})

	got := testSession(t, tables).UpcomingDepartures("S1", "S3", "66", windowNow())

	if len(got) != 1 {
		t.Fatalf("expected 1 departure, got %d", len(got))
	}
	if got[0].Destination != nil {
		t.Errorf("absent destination row should be nil, got %v", got[0].Destination)
	}
}
