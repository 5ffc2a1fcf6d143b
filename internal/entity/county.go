package entity

// County is a Romanian administrative county (județ).
type County struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Slug   string  `json:"slug"`
	Region *string `json:"region,omitempty"`
}
