package planner

import (
	"testing"

	"github.com/ptvplanner/internal/gtfs-realtime/feed"
)

func TestPlanScheduleOnly(t *testing.T) {
	session := testSession(t, routeFixture(t))

	got := session.Plan("66", "S1", "S3", windowNow(), nil, nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	res := got[0]
	if res.RouteShortName != "66" || res.RouteLongName != "East Brighton - Box Hill" {
		t.Errorf("unexpected route naming: %+v", res)
	}
	if res.ServiceID != "T1" || res.Headsign != "Box Hill" {
		t.Errorf("unexpected trip fields: %+v", res)
	}
	if res.ScheduledDeparture != "10:00:00" || res.ScheduledArrival != "10:20:00" {
		t.Errorf("unexpected scheduled times: %+v", res)
	}
	if res.TravelTime != "20 minutes" {
		t.Errorf("expected a 20 minute trip, got %q", res.TravelTime)
	}
	if res.LiveArrival != Unavailable || res.LivePosition != Unavailable {
		t.Errorf("without feeds the live fields must be sentinels: %+v", res)
	}
}

func TestPlanWithLiveEnrichment(t *testing.T) {
	session := testSession(t, routeFixture(t))

	updates := []feed.TripUpdate{
		{
			TripID:  "TRIP-OUT",
			RouteID: "66-3735",
			StopTimes: []feed.StopTimeUpdate{
				{StopID: "S1", Arrival: i64(epochAt(10, 2))},
			},
		},
	}
	positions := []feed.VehiclePosition{
		{TripID: "TRIP-OUT", RouteID: "66-3735", Latitude: f64(-37.81), Longitude: f64(144.96)},
	}

	got := session.Plan("66", "S1", "S3", windowNow(), updates, positions)

	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].LiveArrival != "10:02:00" {
		t.Errorf("expected live arrival 10:02:00, got %q", got[0].LiveArrival)
	}
	if got[0].LivePosition != "-37.81,144.96" {
		t.Errorf("expected live position, got %q", got[0].LivePosition)
	}
}

func TestPlanMissingDestinationLeavesTravelTimeUnavailable(t *testing.T) {
	session := testSession(t, routeFixture(t))

	// S9 is not on the route; travel time cannot be computed.
	got := session.Plan("66", "S1", "S9", windowNow(), nil, nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].TravelTime != Unavailable || got[0].ScheduledArrival != Unavailable {
		t.Errorf("expected sentinels for an unreachable destination: %+v", got[0])
	}
}
