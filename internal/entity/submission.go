package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReportType classifies an abuse or correction report.
type ReportType string

const (
	ReportIncorrectInfo  ReportType = "incorrect_info"
	ReportClosedBusiness ReportType = "closed_business"
	ReportSpam           ReportType = "spam"
	ReportOther          ReportType = "other"
)

// Relationship describes how a removal requester relates to the company.
type Relationship string

const (
	RelationshipOwner               Relationship = "owner"
	RelationshipEmployee            Relationship = "employee"
	RelationshipLegalRepresentative Relationship = "legal_representative"
	RelationshipOther               Relationship = "other"
)

// Moderation statuses.
const (
	StatusPending   = "pending"
	StatusReviewed  = "reviewed"
	StatusResolved  = "resolved"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

// ContactMessage is a message sent through the public contact form.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Report flags incorrect or abusive information about a company.
type Report struct {
	ID            uuid.UUID  `json:"id"`
	CompanyID     uuid.UUID  `json:"company_id"`
	ReportType    ReportType `json:"report_type"`
	Description   string     `json:"description"`
	ReporterEmail *string    `json:"reporter_email,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// RemovalRequest asks for a company listing to be deleted under GDPR.
type RemovalRequest struct {
	ID             uuid.UUID    `json:"id"`
	CompanyID      *uuid.UUID   `json:"company_id,omitempty"`
	CompanyName    string       `json:"company_name"`
	RequesterName  string       `json:"requester_name"`
	RequesterEmail string       `json:"requester_email"`
	RequesterPhone *string      `json:"requester_phone,omitempty"`
	Relationship   Relationship `json:"relationship"`
	Reason         string       `json:"reason"`
	AdditionalInfo *string      `json:"additional_info,omitempty"`
	Status         string       `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
}
