package geo

import "github.com/octobees/funeral-directory/internal/entity"

// Bounds is a rectangular map viewport.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Contains reports whether c lies inside the bounds, edges included.
func (b Bounds) Contains(c Coordinates) bool {
	return c.Lat >= b.South && c.Lat <= b.North &&
		c.Lng >= b.West && c.Lng <= b.East
}

// InBounds reports whether the resolved (un-offset) position of a company is
// inside the bounds. Companies without a position are never inside.
func InBounds(company *entity.Company, b Bounds) bool {
	res, ok := Resolve(company)
	if !ok {
		return false
	}
	return b.Contains(res.Coordinates)
}

// FilterInBounds keeps the companies positioned inside the bounds.
func FilterInBounds(companies []entity.Company, b Bounds) []entity.Company {
	visible := make([]entity.Company, 0, len(companies))
	for i := range companies {
		if InBounds(&companies[i], b) {
			visible = append(visible, companies[i])
		}
	}
	return visible
}

func enclose(points []Coordinates) Bounds {
	b := Bounds{North: points[0].Lat, South: points[0].Lat, East: points[0].Lng, West: points[0].Lng}
	for _, p := range points[1:] {
		b.North = max(b.North, p.Lat)
		b.South = min(b.South, p.Lat)
		b.East = max(b.East, p.Lng)
		b.West = min(b.West, p.Lng)
	}
	return b
}
