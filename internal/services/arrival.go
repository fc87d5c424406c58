// Package services holds the business rules: schedule admission,
// ordered stop maintenance and the CRUD around them. Controllers stay
// thin; everything here fails fast and returns apperr-classified
// errors for anything a caller can act on.
package services

import (
	"time"

	"bus_logistics/internal/models"
)

const (
	// fallbackTripDuration is assumed for a route with no stops yet.
	fallbackTripDuration = time.Hour
	// defaultLegMinutes stands in for a missing travel-time-from-previous.
	defaultLegMinutes = 30
	// perStopBufferMinutes covers boarding and alighting at every stop,
	// the origin included.
	perStopBufferMinutes = 5
)

// EstimateArrival derives the estimated arrival timestamp for a trip
// departing at departure over the given ordered stop list. The first
// stop's travel time is skipped (it is the origin); missing leg times
// default to 30 minutes. Pure function; callers pass a freshly read
// stop list so recent sequence edits are reflected.
func EstimateArrival(departure time.Time, stops []models.RouteStop) time.Time {
	if len(stops) == 0 {
		return departure.Add(fallbackTripDuration)
	}

	travelMinutes := 0
	for _, rs := range stops[1:] {
		if rs.TravelTimeFromPrevMin != nil {
			travelMinutes += *rs.TravelTimeFromPrevMin
		} else {
			travelMinutes += defaultLegMinutes
		}
	}
	bufferMinutes := len(stops) * perStopBufferMinutes

	return departure.Add(time.Duration(travelMinutes+bufferMinutes) * time.Minute)
}
