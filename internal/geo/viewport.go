package geo

import (
	"github.com/google/uuid"

	"github.com/octobees/funeral-directory/internal/entity"
)

// RomaniaCenter is the default view when there is nothing to frame.
var RomaniaCenter = Coordinates{Lat: 45.9432, Lng: 25.0094}

const (
	DefaultZoom = 7
	FocusZoom   = 13
	FitMaxZoom  = 14
	FitPadding  = 50

	// The map emits its first bounds changes while initialising; only later
	// ones come from the user panning or zooming.
	programmaticBoundsEvents = 2
)

// Marker is a company placed on the map.
type Marker struct {
	CompanyID uuid.UUID   `json:"company_id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Position  Coordinates `json:"position"`
	Precision Precision   `json:"precision"`
	Selected  bool        `json:"selected"`
}

// View is what the map should display: either a centre and zoom, or bounds to fit.
type View struct {
	Center  Coordinates `json:"center"`
	Zoom    int         `json:"zoom"`
	Fit     *Bounds     `json:"fit,omitempty"`
	MaxZoom int         `json:"max_zoom,omitempty"`
	Padding int         `json:"padding,omitempty"`
}

// Markers builds one marker per company that can be positioned, applying the
// declutter offset to approximate positions. Two identifiers can map to the
// same offset; the later marker is then nudged again until its spot is free.
func Markers(companies []entity.Company, selectedID uuid.UUID) []Marker {
	markers := make([]Marker, 0, len(companies))
	taken := make(map[Coordinates]struct{}, len(companies))
	for i := range companies {
		c := &companies[i]
		res, ok := ResolveWithOffset(c, i)
		if !ok {
			continue
		}
		if res.Precision == PrecisionApproximate {
			origin := res.Coordinates
			for attempt := 1; ; attempt++ {
				if _, dup := taken[res.Coordinates]; !dup {
					break
				}
				res.Coordinates = Declutter(origin, attempt)
			}
			taken[res.Coordinates] = struct{}{}
		}
		markers = append(markers, Marker{
			CompanyID: c.ID,
			Name:      c.Name,
			Slug:      c.Slug,
			Position:  res.Coordinates,
			Precision: res.Precision,
			Selected:  selectedID != uuid.Nil && c.ID == selectedID,
		})
	}
	return markers
}

// FitView frames all markers.
func FitView(markers []Marker) View {
	switch len(markers) {
	case 0:
		return View{Center: RomaniaCenter, Zoom: DefaultZoom}
	case 1:
		return View{Center: markers[0].Position, Zoom: FocusZoom}
	}
	points := make([]Coordinates, 0, len(markers))
	for _, m := range markers {
		points = append(points, m.Position)
	}
	b := enclose(points)
	return View{
		Center:  Coordinates{Lat: (b.North + b.South) / 2, Lng: (b.East + b.West) / 2},
		Zoom:    DefaultZoom,
		Fit:     &b,
		MaxZoom: FitMaxZoom,
		Padding: FitPadding,
	}
}

// InitialView is the view before any auto-fit: the selected company when it
// can be positioned, else a lone marker, else the whole country.
func InitialView(selected *entity.Company, markers []Marker) View {
	if selected != nil {
		if res, ok := Resolve(selected); ok {
			return View{Center: res.Coordinates, Zoom: FocusZoom}
		}
	}
	if len(markers) == 1 {
		return View{Center: markers[0].Position, Zoom: FocusZoom}
	}
	return View{Center: RomaniaCenter, Zoom: DefaultZoom}
}

// Viewport tracks whether the user has taken control of the map. Once they
// have, auto-fit stops so the map does not fight their pan and zoom.
type Viewport struct {
	boundsEvents    int
	autoFitDisabled bool
	fitted          bool
	fittedCount     int
	bounds          *Bounds
}

// NewViewport returns a viewport in auto-fit mode.
func NewViewport() *Viewport {
	return &Viewport{}
}

// RestoreViewport rebuilds a viewport from the state a stateless client echoes back.
func RestoreViewport(boundsEvents int, autoFitDisabled bool) *Viewport {
	if boundsEvents < 0 {
		boundsEvents = 0
	}
	return &Viewport{boundsEvents: boundsEvents, autoFitDisabled: autoFitDisabled}
}

// ReportBounds records a bounds change and reports whether it was caused by the user.
func (v *Viewport) ReportBounds(b Bounds) bool {
	v.boundsEvents++
	v.bounds = &b
	return v.UserInteracted()
}

// UserInteracted reports whether bounds changes beyond the initial programmatic ones were seen.
func (v *Viewport) UserInteracted() bool {
	return v.boundsEvents > programmaticBoundsEvents
}

// Bounds returns the last reported bounds.
func (v *Viewport) Bounds() (Bounds, bool) {
	if v.bounds == nil {
		return Bounds{}, false
	}
	return *v.bounds, true
}

// DisableAutoFit suppresses auto-fit regardless of the event count.
func (v *Viewport) DisableAutoFit() {
	v.autoFitDisabled = true
}

// AutoFitEnabled reports whether the viewport may still reframe itself.
func (v *Viewport) AutoFitEnabled() bool {
	return !v.autoFitDisabled && !v.UserInteracted()
}

// MarkFitted records that the client already framed count markers.
func (v *Viewport) MarkFitted(count int) {
	v.fitted = true
	v.fittedCount = count
}

// FittedCount returns the marker count of the last fit and whether a fit happened.
func (v *Viewport) FittedCount() (int, bool) {
	return v.fittedCount, v.fitted
}

// BoundsEvents returns the number of bounds changes seen so far.
func (v *Viewport) BoundsEvents() int {
	return v.boundsEvents
}

// AutoFit returns the view framing markers on the first call and whenever the
// number of markers changes. It returns false when auto-fit is suppressed or
// nothing changed.
func (v *Viewport) AutoFit(markers []Marker) (View, bool) {
	if !v.AutoFitEnabled() {
		return View{}, false
	}
	if v.fitted && v.fittedCount == len(markers) {
		return View{}, false
	}
	v.fitted = true
	v.fittedCount = len(markers)
	return FitView(markers), true
}
