// Package geo resolves map coordinates for directory companies and models
// the map viewport behaviour.
package geo

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/octobees/funeral-directory/internal/entity"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Precision tells whether coordinates come from the company itself or from a city centre.
type Precision string

const (
	PrecisionExact       Precision = "exact"
	PrecisionApproximate Precision = "approximate"
)

// Resolution is a resolved position and how it was obtained.
type Resolution struct {
	Coordinates
	Precision Precision `json:"precision"`
}

const (
	goldenAngleDegrees = 137.5
	offsetBaseRadius   = 0.003
	offsetRadiusStep   = 0.001
	offsetRadiusSteps  = 5
	seedDigits         = 4
)

// Resolve finds the map position of a company from its first location, trying
// explicit latitude/longitude, then the GeoJSON point, then the city table.
// It returns false when nothing matches; such companies are left off the map.
func Resolve(company *entity.Company) (Resolution, bool) {
	loc, ok := company.PrimaryLocation()
	if !ok {
		return Resolution{}, false
	}
	return ResolveLocation(loc)
}

// ResolveLocation applies the resolution order to a single location.
func ResolveLocation(loc entity.Location) (Resolution, bool) {
	if loc.Latitude != nil && loc.Longitude != nil {
		return Resolution{
			Coordinates: Coordinates{Lat: *loc.Latitude, Lng: *loc.Longitude},
			Precision:   PrecisionExact,
		}, true
	}
	if loc.GeoPoint != nil && len(loc.GeoPoint.Coordinates) >= 2 {
		// GeoJSON order is [longitude, latitude]
		return Resolution{
			Coordinates: Coordinates{Lat: loc.GeoPoint.Coordinates[1], Lng: loc.GeoPoint.Coordinates[0]},
			Precision:   PrecisionExact,
		}, true
	}
	if center, ok := CityCenter(loc.CityName()); ok {
		return Resolution{Coordinates: center, Precision: PrecisionApproximate}, true
	}
	return Resolution{}, false
}

// ResolveWithOffset resolves like Resolve and, for city-level approximations
// only, shifts the point by a small deterministic offset so that companies of
// the same city do not share a marker. index is the seed when the company has
// no identifier.
func ResolveWithOffset(company *entity.Company, index int) (Resolution, bool) {
	res, ok := Resolve(company)
	if !ok || res.Precision == PrecisionExact {
		return res, ok
	}
	res.Coordinates = Declutter(res.Coordinates, offsetSeed(company.ID, index))
	return res, true
}

// Declutter moves c by an offset of roughly 300-800 m derived from seed,
// spreading consecutive seeds by the golden angle.
func Declutter(c Coordinates, seed int) Coordinates {
	angle := math.Mod(float64(seed)*goldenAngleDegrees, 360) * math.Pi / 180
	radius := offsetBaseRadius + float64(seed%offsetRadiusSteps)*offsetRadiusStep
	return Coordinates{
		Lat: c.Lat + radius*math.Cos(angle),
		Lng: c.Lng + radius*math.Sin(angle),
	}
}

func offsetSeed(id uuid.UUID, index int) int {
	if id == uuid.Nil {
		return index
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, id.String())
	if len(digits) > seedDigits {
		digits = digits[len(digits)-seedDigits:]
	}
	seed, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return seed
}
