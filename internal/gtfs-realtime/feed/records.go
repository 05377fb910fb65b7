package feed

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// TripUpdate is one trip-update feed entry reduced to the fields the query
// engine reads. Optional predictions are pointers; nil means the feed did
// not carry that value.
type TripUpdate struct {
	TripID    string
	RouteID   string
	StopTimes []StopTimeUpdate
}

// StopTimeUpdate is a per-stop prediction within a TripUpdate, epoch seconds.
type StopTimeUpdate struct {
	StopID    string
	Arrival   *int64
	Departure *int64
}

// VehiclePosition is one vehicle-position feed entry.
type VehiclePosition struct {
	TripID    string
	RouteID   string
	Latitude  *float64
	Longitude *float64
}

// StopTimeFor returns the prediction for stopID, if the update carries one.
func (u TripUpdate) StopTimeFor(stopID string) (StopTimeUpdate, bool) {
	for _, stu := range u.StopTimes {
		if stu.StopID == stopID {
			return stu, true
		}
	}
	return StopTimeUpdate{}, false
}

// PredictedTime is the stop's predicted arrival, falling back to departure.
func (s StopTimeUpdate) PredictedTime() (int64, bool) {
	if s.Arrival != nil {
		return *s.Arrival, true
	}
	if s.Departure != nil {
		return *s.Departure, true
	}
	return 0, false
}

// TripUpdatesFromFeed flattens a FeedMessage into trip-update records.
// Entities missing a trip descriptor are skipped; every nested optional is
// nil-checked so a sparse feed never faults.
func TripUpdatesFromFeed(fm *gtfsrtpb.FeedMessage) []TripUpdate {
	if fm == nil {
		return nil
	}
	updates := make([]TripUpdate, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		tu := e.GetTripUpdate()
		if tu == nil || tu.GetTrip() == nil {
			continue
		}
		rec := TripUpdate{
			TripID:  tu.GetTrip().GetTripId(),
			RouteID: tu.GetTrip().GetRouteId(),
		}
		for _, stu := range tu.GetStopTimeUpdate() {
			if stu.GetStopId() == "" {
				continue
			}
			item := StopTimeUpdate{StopID: stu.GetStopId()}
			if arr := stu.GetArrival(); arr != nil && arr.Time != nil {
				t := arr.GetTime()
				item.Arrival = &t
			}
			if dep := stu.GetDeparture(); dep != nil && dep.Time != nil {
				t := dep.GetTime()
				item.Departure = &t
			}
			rec.StopTimes = append(rec.StopTimes, item)
		}
		updates = append(updates, rec)
	}
	return updates
}

// VehiclePositionsFromFeed flattens a FeedMessage into position records.
func VehiclePositionsFromFeed(fm *gtfsrtpb.FeedMessage) []VehiclePosition {
	if fm == nil {
		return nil
	}
	positions := make([]VehiclePosition, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		v := e.GetVehicle()
		if v == nil {
			continue
		}
		rec := VehiclePosition{
			TripID:  v.GetTrip().GetTripId(),
			RouteID: v.GetTrip().GetRouteId(),
		}
		if pos := v.GetPosition(); pos != nil {
			if pos.Latitude != nil {
				lat := float64(pos.GetLatitude())
				rec.Latitude = &lat
			}
			if pos.Longitude != nil {
				lon := float64(pos.GetLongitude())
				rec.Longitude = &lon
			}
		}
		positions = append(positions, rec)
	}
	return positions
}
