package models

import (
	"gorm.io/gorm"
)

type Waypoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type TrekDay struct {
	gorm.Model
	TripID         uint       `json:"trip_id" gorm:"uniqueIndex:idx_trip_day"`
	DayNumber      int        `json:"day_number" gorm:"uniqueIndex:idx_trip_day"`
	Date           string     `json:"date"` // YYYY-MM-DD
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Waypoints      []Waypoint `json:"waypoints" gorm:"serializer:json"`
	DistanceKm     float64    `json:"distance_km"`
	ElevationGainM int        `json:"elevation_gain_m"`
}

type Trip struct {
	gorm.Model
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Days        []TrekDay `json:"days" gorm:"constraint:OnDelete:CASCADE"`
}
