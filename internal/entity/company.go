package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a funeral-service business listed in the directory.
type Company struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Motto         *string        `json:"motto,omitempty"`
	Description   *string        `json:"description,omitempty"`
	FiscalCode    *string        `json:"fiscal_code,omitempty"`
	Website       *string        `json:"website,omitempty"`
	FacebookURL   *string        `json:"facebook_url,omitempty"`
	InstagramURL  *string        `json:"instagram_url,omitempty"`
	FoundedYear   *int           `json:"founded_year,omitempty"`
	IsVerified    bool           `json:"is_verified"`
	IsNonStop     bool           `json:"is_non_stop"`
	Metadata      Metadata       `json:"metadata"`
	Contacts      []Contact      `json:"contacts"`
	Services      []Service      `json:"services"`
	Locations     []Location     `json:"locations"`
	Reviews       []Review       `json:"reviews,omitempty"`
	ReviewSummary *ReviewSummary `json:"review_summary,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Metadata holds the optional enrichment attributes imported alongside a company.
type Metadata struct {
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"review_count,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Source      *string  `json:"source,omitempty"`
	PriceFrom   *float64 `json:"price_from,omitempty"`
	PriceTo     *float64 `json:"price_to,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
}

// HasPricing reports whether an indicative price range is known.
func (m Metadata) HasPricing() bool {
	return m.PriceFrom != nil || m.PriceTo != nil
}

// PrimaryPhone returns the first primary phone contact, falling back to the first phone of any kind.
func (c *Company) PrimaryPhone() (Contact, bool) {
	for _, contact := range c.Contacts {
		if contact.IsPrimary && contact.Type.IsPhone() {
			return contact, true
		}
	}
	for _, contact := range c.Contacts {
		if contact.Type.IsPhone() {
			return contact, true
		}
	}
	return Contact{}, false
}

// PrimaryEmail returns the first email contact.
func (c *Company) PrimaryEmail() (Contact, bool) {
	for _, contact := range c.Contacts {
		if contact.Type == ContactEmail {
			return contact, true
		}
	}
	return Contact{}, false
}

// Headquarters returns the canonical address of the company: the first
// headquarters location, or the first location when none is flagged.
func (c *Company) Headquarters() (Location, bool) {
	for _, loc := range c.Locations {
		if loc.Type == LocationHeadquarters {
			return loc, true
		}
	}
	if len(c.Locations) > 0 {
		return c.Locations[0], true
	}
	return Location{}, false
}

// PrimaryLocation returns the first location as stored, used for map placement.
func (c *Company) PrimaryLocation() (Location, bool) {
	if len(c.Locations) == 0 {
		return Location{}, false
	}
	return c.Locations[0], true
}
