package entity

import (
	"time"

	"github.com/google/uuid"
)

// LocationType distinguishes the purpose of a company address.
type LocationType string

const (
	LocationHeadquarters LocationType = "headquarters"
	LocationWakeHouse    LocationType = "wake_house"
	LocationShowroom     LocationType = "showroom"
)

// GeoPoint is a GeoJSON point. Coordinates are ordered [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Location is a physical address of a company.
type Location struct {
	ID        uuid.UUID    `json:"id"`
	CompanyID uuid.UUID    `json:"company_id"`
	Address   string       `json:"address"`
	City      *string      `json:"city,omitempty"`
	County    *string      `json:"county,omitempty"`
	CountyID  *int         `json:"county_id,omitempty"`
	Latitude  *float64     `json:"latitude,omitempty"`
	Longitude *float64     `json:"longitude,omitempty"`
	GeoPoint  *GeoPoint    `json:"geo_point,omitempty"`
	Type      LocationType `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
}

// CityName returns the city or an empty string.
func (l Location) CityName() string {
	if l.City == nil {
		return ""
	}
	return *l.City
}

// CountyName returns the county or an empty string.
func (l Location) CountyName() string {
	if l.County == nil {
		return ""
	}
	return *l.County
}
