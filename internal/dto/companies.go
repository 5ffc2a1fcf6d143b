package dto

import (
	"github.com/google/uuid"

	"github.com/octobees/funeral-directory/internal/directory"
	"github.com/octobees/funeral-directory/internal/entity"
	"github.com/octobees/funeral-directory/internal/geo"
)

// CompanyQuery contains the query parameters of the listing and map endpoints.
type CompanyQuery struct {
	Criteria    directory.Criteria
	Limit       int
	Shuffle     bool
	ShuffleSeed uint64
	Bounds      *geo.Bounds
}

// ServiceLabel is a service tag with its display labels.
type ServiceLabel struct {
	Tag entity.ServiceTag `json:"tag"`
	RO  string            `json:"ro"`
	EN  string            `json:"en"`
}

// PhoneView is a phone contact formatted for display and dialing.
type PhoneView struct {
	Value   string `json:"value"`
	Display string `json:"display"`
	DialURI string `json:"dial_uri"`
}

// CompanySummary is the card representation of a company in listings.
type CompanySummary struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Motto        *string         `json:"motto,omitempty"`
	IsVerified   bool            `json:"is_verified"`
	IsNonStop    bool            `json:"is_non_stop"`
	City         string          `json:"city,omitempty"`
	County       string          `json:"county,omitempty"`
	Address      *string         `json:"address,omitempty"`
	PrimaryPhone *PhoneView      `json:"primary_phone,omitempty"`
	Services     []ServiceLabel  `json:"services"`
	Rating       *float64        `json:"rating,omitempty"`
	ReviewCount  *int            `json:"review_count,omitempty"`
	Position     *geo.Resolution `json:"position,omitempty"`
}

// CompanyPage is the response of the listing endpoint.
type CompanyPage struct {
	Companies    []CompanySummary   `json:"companies"`
	Total        int                `json:"total"`
	Shown        int                `json:"shown"`
	HasMore      bool               `json:"has_more"`
	DisplayLimit int                `json:"display_limit"`
	Criteria     directory.Criteria `json:"criteria"`
	// ShuffleSeed is set on shuffled pages. Sending it back with a larger
	// limit grows the same order instead of drawing a new one.
	ShuffleSeed  uint64             `json:"shuffle_seed,omitempty"`
}

// CompanyDetail is the full representation of a single company.
type CompanyDetail struct {
	entity.Company
	PrimaryPhone    *PhoneView       `json:"primary_phone,omitempty"`
	PrimaryEmail    *string          `json:"primary_email,omitempty"`
	Headquarters    *entity.Location `json:"headquarters,omitempty"`
	ServiceLabels   []ServiceLabel   `json:"service_labels"`
	SentimentLabels []string         `json:"sentiment_labels,omitempty"`
	Position        *geo.Resolution  `json:"position,omitempty"`
}

// CityResponse is one selectable city.
type CityResponse struct {
	Name string `json:"name"`
}

// CitiesResponse lists the cities of a county.
type CitiesResponse struct {
	County string         `json:"county"`
	Cities []CityResponse `json:"cities"`
}

// MapResponse carries the markers and the view the map should apply.
type MapResponse struct {
	Markers        []geo.Marker `json:"markers"`
	InitialView    geo.View     `json:"initial_view"`
	View           *geo.View    `json:"view,omitempty"`
	AutoFitEnabled bool         `json:"auto_fit_enabled"`
	UserInteracted bool         `json:"user_interacted"`
	BoundsEvents   int          `json:"bounds_events"`
	FittedCount    *int         `json:"fitted_count,omitempty"`
}
