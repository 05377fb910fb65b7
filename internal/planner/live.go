package planner

import (
	"strconv"
	"strings"
	"time"

	"github.com/ptvplanner/internal/gtfs-realtime/feed"
	"github.com/ptvplanner/pkg/table"
)

// Unavailable is the sentinel shown for any live field that cannot be
// resolved. Missing realtime data is the expected common case, never an
// error.
const Unavailable = "Unavailable"

// LiveData carries the realtime enrichment for one scheduled departure.
type LiveData struct {
	ArrivalTime string
	Position    string
}

// RoutesMatch reports whether two route ids name the same line. The static
// schedule encodes a variant suffix after the first hyphen that the
// realtime feeds may omit or disagree on, so only the prefix is compared.
func RoutesMatch(a, b string) bool {
	return routePrefix(a) == routePrefix(b)
}

func routePrefix(id string) string {
	if i := strings.Index(id, "-"); i >= 0 {
		return id[:i]
	}
	return id
}

// MatchLiveData correlates one scheduled stop_time against the realtime
// feeds. Trip updates are filtered by normalized route and by presence of
// the stop; when tripID is non-empty it must match exactly. Among several
// candidates the one predicting the time closest to the scheduled arrival
// on now's date wins, first seen breaking ties. The vehicle position is
// looked up independently by normalized route and the chosen candidate's
// trip id. Either feed being nil simply leaves its field Unavailable.
func MatchLiveData(tripUpdates []feed.TripUpdate, positions []feed.VehiclePosition, stopTime table.Row, routeID, tripID string, now time.Time, loc *time.Location) LiveData {
	live := LiveData{ArrivalTime: Unavailable, Position: Unavailable}

	stopID := stopTime["stop_id"]
	var candidates []feed.TripUpdate
	for _, tu := range tripUpdates {
		if !RoutesMatch(tu.RouteID, routeID) {
			continue
		}
		if _, ok := tu.StopTimeFor(stopID); !ok {
			continue
		}
		if tripID != "" && tu.TripID != tripID {
			continue
		}
		candidates = append(candidates, tu)
	}
	if len(candidates) == 0 {
		return live
	}

	chosen := candidates[0]
	if len(candidates) > 1 {
		if sched, ok := scheduledEpoch(stopTime, now, loc); ok {
			bestDelta := int64(-1)
			for _, cand := range candidates {
				stu, _ := cand.StopTimeFor(stopID)
				predicted, ok := stu.PredictedTime()
				if !ok {
					continue
				}
				delta := predicted - sched
				if delta < 0 {
					delta = -delta
				}
				if bestDelta < 0 || delta < bestDelta {
					bestDelta = delta
					chosen = cand
				}
			}
		}
	}

	if stu, ok := chosen.StopTimeFor(stopID); ok {
		if predicted, ok := stu.PredictedTime(); ok {
			live.ArrivalTime = time.Unix(predicted, 0).In(loc).Format("15:04:05")
		}
	}

	for _, vp := range positions {
		if !RoutesMatch(vp.RouteID, routeID) || vp.TripID != chosen.TripID {
			continue
		}
		if vp.Latitude != nil && vp.Longitude != nil {
			live.Position = strconv.FormatFloat(*vp.Latitude, 'f', -1, 64) +
				"," + strconv.FormatFloat(*vp.Longitude, 'f', -1, 64)
		}
		break
	}

	return live
}

// scheduledEpoch interprets the stop_time's scheduled arrival (falling back
// to departure) on now's calendar date.
func scheduledEpoch(stopTime table.Row, now time.Time, loc *time.Location) (int64, bool) {
	clock := stopTime["arrival_time"]
	if clock == "" {
		clock = stopTime["departure_time"]
	}
	t, ok := clockOnDate(clock, now, loc)
	if !ok {
		return 0, false
	}
	return t.Unix(), true
}
