package models

import (
	"gorm.io/gorm"
)

// Stop is a named boarding point with geocoordinates. Names are
// globally unique.
type Stop struct {
	gorm.Model
	Name        string  `json:"name" binding:"required" gorm:"uniqueIndex"`
	Address     string  `json:"address"`
	Street      string  `json:"street"`
	Landmark    string  `json:"landmark"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}
