package models

import (
	"gorm.io/gorm"
)

// Route represents a service path between two endpoints.
// RouteCode is globally unique, as is the (name, direction) pair;
// the same corridor can exist once per direction.
type Route struct {
	gorm.Model

	RouteCode   string `json:"route_code" binding:"required" gorm:"uniqueIndex"`
	Name        string `json:"name" binding:"required" gorm:"uniqueIndex:idx_routes_name_direction"`
	Direction   string `json:"direction" gorm:"uniqueIndex:idx_routes_name_direction"` // e.g. "Northbound", "Southbound"
	Description string `json:"description"`

	// Geometry stored as a LINESTRING in WKB (SRID 4326).
	// API payloads carry GeoJSON; conversion happens at the controller.
	Geometry []byte `json:"-" gorm:"type:bytea"`

	// Associations
	RouteStops []RouteStop `json:"route_stops,omitempty" gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
