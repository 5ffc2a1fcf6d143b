// Package directory filters, searches and paginates the in-memory company list.
package directory

import "strings"

// Criteria is the set of search filters applied to the directory.
// Exact selections (County, City) take precedence over their free-text
// counterparts (CountyQuery, CityQuery).
type Criteria struct {
	NameQuery    string `json:"search,omitempty"`
	County       string `json:"county,omitempty"`
	CountyQuery  string `json:"county_q,omitempty"`
	City         string `json:"city,omitempty"`
	CityQuery    string `json:"city_q,omitempty"`
	VerifiedOnly bool   `json:"is_verified,omitempty"`
	NonStopOnly  bool   `json:"is_non_stop,omitempty"`
}

// Active reports whether any criterion narrows the result set.
func (c Criteria) Active() bool {
	return c.NameQuery != "" ||
		c.County != "" ||
		c.CountyQuery != "" ||
		c.City != "" ||
		c.CityQuery != "" ||
		c.VerifiedOnly ||
		c.NonStopOnly
}

// Trimmed returns a copy with surrounding whitespace removed from every text field.
func (c Criteria) Trimmed() Criteria {
	c.NameQuery = strings.TrimSpace(c.NameQuery)
	c.County = strings.TrimSpace(c.County)
	c.CountyQuery = strings.TrimSpace(c.CountyQuery)
	c.City = strings.TrimSpace(c.City)
	c.CityQuery = strings.TrimSpace(c.CityQuery)
	return c
}
