package models

import (
	"strings"

	"gorm.io/gorm"
)

// Bus is a vehicle in the fleet. Status is free text by convention;
// only a bus whose status equals "ACTIVE" (case-insensitive) can be
// committed to new schedules.
type Bus struct {
	gorm.Model
	BusNumber        string `json:"bus_number" gorm:"uniqueIndex"`
	PlateNumber      string `json:"plate_number" gorm:"uniqueIndex"`
	SeatingCapacity  int    `json:"seating_capacity"`
	Type             string `json:"type"`
	BusModel         string `json:"bus_model"`
	Manufacturer     string `json:"manufacturer"`
	YearManufactured int    `json:"year_manufactured"`
	Status           string `json:"status" gorm:"default:Active"`
}

// IsActive reports whether the bus is eligible for scheduling.
func (b *Bus) IsActive() bool {
	return strings.EqualFold(b.Status, "ACTIVE")
}
