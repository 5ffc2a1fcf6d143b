package dto

// ContactRequest is the payload of the public contact form.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Subject string `json:"subject" validate:"required,max=300"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ReportRequest flags a listing. The company is identified by id or slug.
type ReportRequest struct {
	CompanyID     string `json:"company_id" validate:"omitempty,uuid"`
	CompanySlug   string `json:"company_slug" validate:"required_without=CompanyID"`
	ReportType    string `json:"report_type" validate:"required,oneof=incorrect_info closed_business spam other"`
	Description   string `json:"description" validate:"required,max=5000"`
	ReporterEmail string `json:"reporter_email" validate:"omitempty,email,max=320"`
}

// RemovalRequest asks for a listing to be removed under GDPR.
type RemovalRequest struct {
	CompanyName    string `json:"company_name" validate:"required,max=300"`
	CompanySlug    string `json:"company_slug"`
	RequesterName  string `json:"requester_name" validate:"required,max=200"`
	RequesterEmail string `json:"requester_email" validate:"required,email,max=320"`
	RequesterPhone string `json:"requester_phone" validate:"omitempty,phone"`
	Relationship   string `json:"relationship" validate:"required,oneof=owner employee legal_representative other"`
	Reason         string `json:"reason" validate:"required,max=5000"`
	AdditionalInfo string `json:"additional_info" validate:"max=5000"`
}

// SubmissionResponse acknowledges a stored submission. Reference is empty
// when the submission could only be logged.
type SubmissionResponse struct {
	Reference string `json:"reference,omitempty"`
}

// StatusUpdateRequest moves a submission through moderation.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}
