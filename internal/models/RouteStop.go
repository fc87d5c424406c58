package models

import (
	"gorm.io/gorm"
)

// RouteStop binds a Stop to a Route at a position. Within one route the
// StopOrder values are unique and, once compacted, run 1..N with no
// gaps; insertion shifts neighbours up and removal closes the hole.
type RouteStop struct {
	gorm.Model

	RouteID uint  `json:"route_id" gorm:"index"`
	StopID  uint  `json:"stop_id" gorm:"index"`
	Stop    *Stop `json:"stop,omitempty" gorm:"foreignKey:StopID"`

	// Uniqueness per route is enforced by the shift/compact logic, not a
	// DB constraint; a plain unique index would reject the bulk +1 shift
	// mid-statement.
	StopOrder int `json:"stop_order"`

	// Optional timetable metadata, "HH:MM" wall-clock strings.
	ArrivalTime   *string `json:"arrival_time,omitempty"`
	DepartureTime *string `json:"departure_time,omitempty"`

	DistanceFromStartKm   *float64 `json:"distance_from_start_km,omitempty"`
	TravelTimeFromPrevMin *int     `json:"travel_time_from_prev_min,omitempty"`
	Remarks               string   `json:"remarks"`
}
