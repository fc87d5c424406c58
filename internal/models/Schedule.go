package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultScheduleStatus is applied when a request never sets one.
const DefaultScheduleStatus = "SCHEDULED"

// Schedule is a single committed (driver, bus, route, time window)
// assignment. For any two schedules sharing a driver or a bus, the
// [DepartureDateTime, EstimatedArrivalDateTime) intervals never overlap.
type Schedule struct {
	gorm.Model

	DriverID uint  `json:"driver_id" gorm:"index"`
	Driver   *User `json:"driver,omitempty" gorm:"foreignKey:DriverID"`

	BusID uint `json:"bus_id" gorm:"index"`
	Bus   *Bus `json:"bus,omitempty" gorm:"foreignKey:BusID"`

	RouteID uint   `json:"route_id" gorm:"index"`
	Route   *Route `json:"route,omitempty" gorm:"foreignKey:RouteID"`

	DepartureDateTime        time.Time `json:"departure_date_time"`
	EstimatedArrivalDateTime time.Time `json:"estimated_arrival_date_time"`

	Status string `json:"status"`
}
