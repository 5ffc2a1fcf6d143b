package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContactType enumerates the kinds of contact channels a company exposes.
type ContactType string

const (
	ContactPhoneMobile   ContactType = "phone_mobile"
	ContactPhoneLandline ContactType = "phone_landline"
	ContactEmail         ContactType = "email"
	ContactFax           ContactType = "fax"
)

// IsPhone reports whether the contact can be dialled.
func (t ContactType) IsPhone() bool {
	return t == ContactPhoneMobile || t == ContactPhoneLandline
}

// Contact is a single phone number, email address or fax line of a company.
type Contact struct {
	ID        uuid.UUID   `json:"id"`
	CompanyID uuid.UUID   `json:"company_id"`
	Type      ContactType `json:"type"`
	Value     string      `json:"value"`
	IsPrimary bool        `json:"is_primary"`
	CreatedAt time.Time   `json:"created_at"`
}
