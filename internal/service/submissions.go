package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/octobees/funeral-directory/internal/dto"
	"github.com/octobees/funeral-directory/internal/entity"
	"github.com/octobees/funeral-directory/internal/logger"
	"github.com/octobees/funeral-directory/internal/metrics"
	"github.com/octobees/funeral-directory/internal/repository"
)

// Acknowledgements shown to the submitter.
const (
	ContactAcknowledgement = "Vă mulțumim pentru mesaj. Vom răspunde în cel mai scurt timp posibil."
	ReportAcknowledgement  = "Raportul a fost înregistrat. Vă mulțumim!"
	RemovalAcknowledgement = "Cererea dvs. de eliminare a fost înregistrată și va fi procesată în conformitate cu GDPR în maxim 30 de zile."
)

// Submission kinds, used for notifications and metrics.
const (
	KindContact = "contact"
	KindReport  = "report"
	KindRemoval = "removal_request"
)

var (
	reportStatuses  = []string{entity.StatusPending, entity.StatusReviewed, entity.StatusResolved}
	removalStatuses = []string{entity.StatusPending, entity.StatusApproved, entity.StatusRejected, entity.StatusCompleted}
	contactStatuses = []string{entity.StatusPending, entity.StatusReviewed, entity.StatusResolved}
)

// CompanyResolver maps a public slug to a company identifier.
type CompanyResolver interface {
	FindCompanyID(ctx context.Context, slug string) (uuid.UUID, error)
}

// SubmissionService validates and stores the public forms and serves their moderation.
type SubmissionService struct {
	repo      repository.SubmissionsRepository
	companies CompanyResolver
	notifier  *Notifier
	validate  *validator.Validate
	region    string
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// SubmissionOption customises a SubmissionService.
type SubmissionOption func(*SubmissionService)

// WithNotifier forwards stored submissions to a worker.
func WithNotifier(n *Notifier) SubmissionOption {
	return func(s *SubmissionService) { s.notifier = n }
}

// WithSubmissionLogger sets the logger.
func WithSubmissionLogger(log *logger.Logger) SubmissionOption {
	return func(s *SubmissionService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSubmissionMetrics counts submissions by kind and outcome.
func WithSubmissionMetrics(m *metrics.Metrics) SubmissionOption {
	return func(s *SubmissionService) { s.metrics = m }
}

// WithSubmissionPhoneRegion sets the default region of requester phone numbers.
func WithSubmissionPhoneRegion(region string) SubmissionOption {
	return func(s *SubmissionService) {
		if region != "" {
			s.region = region
		}
	}
}

// NewSubmissionService builds a new SubmissionService instance.
func NewSubmissionService(repo repository.SubmissionsRepository, companies CompanyResolver, opts ...SubmissionOption) *SubmissionService {
	s := &SubmissionService{
		repo:      repo,
		companies: companies,
		region:    defaultPhoneRegion,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validate = newValidator(s.region)
	return s
}

// SubmitContact stores a contact form message.
func (s *SubmissionService) SubmitContact(ctx context.Context, req dto.ContactRequest, requestID string) (dto.SubmissionResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if err := validateStruct(s.validate, req); err != nil {
		s.metrics.IncSubmission(KindContact, "invalid")
		return dto.SubmissionResponse{}, err
	}
	email, ok := normalizeEmail(req.Email)
	if !ok {
		s.metrics.IncSubmission(KindContact, "invalid")
		return dto.SubmissionResponse{}, fieldError("email", "must be a valid email")
	}

	msg := &entity.ContactMessage{
		Name:    req.Name,
		Email:   email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  entity.StatusPending,
	}
	err := s.repo.CreateContactMessage(ctx, msg)
	if resp, handled := s.finish(ctx, KindContact, err, req); handled {
		return resp, nil
	}
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("store contact message: %w", err)
	}

	s.notifier.Notify(ctx, Notification{
		Kind:      KindContact,
		Reference: msg.ID.String(),
		Summary:   msg.Subject,
		Email:     msg.Email,
		CreatedAt: msg.CreatedAt,
	}, requestID)
	return dto.SubmissionResponse{Reference: msg.ID.String()}, nil
}

// SubmitReport stores a report against a company given by id or slug. An
// unknown slug yields repository.ErrCompanyNotFound.
func (s *SubmissionService) SubmitReport(ctx context.Context, req dto.ReportRequest, requestID string) (dto.SubmissionResponse, error) {
	req.CompanyID = strings.TrimSpace(req.CompanyID)
	req.CompanySlug = strings.TrimSpace(req.CompanySlug)
	req.Description = strings.TrimSpace(req.Description)
	req.ReporterEmail = strings.TrimSpace(req.ReporterEmail)
	if err := validateStruct(s.validate, req); err != nil {
		s.metrics.IncSubmission(KindReport, "invalid")
		return dto.SubmissionResponse{}, err
	}

	report := &entity.Report{
		ReportType:  entity.ReportType(req.ReportType),
		Description: req.Description,
		Status:      entity.StatusPending,
	}
	if req.CompanyID != "" {
		report.CompanyID = uuid.MustParse(req.CompanyID)
	} else {
		id, err := s.companies.FindCompanyID(ctx, req.CompanySlug)
		if err != nil {
			if errors.Is(err, repository.ErrCompanyNotFound) {
				s.metrics.IncSubmission(KindReport, "not_found")
			}
			return dto.SubmissionResponse{}, err
		}
		report.CompanyID = id
	}
	if req.ReporterEmail != "" {
		email, ok := normalizeEmail(req.ReporterEmail)
		if !ok {
			s.metrics.IncSubmission(KindReport, "invalid")
			return dto.SubmissionResponse{}, fieldError("reporter_email", "must be a valid email")
		}
		report.ReporterEmail = &email
	}

	err := s.repo.CreateReport(ctx, report)
	if resp, handled := s.finish(ctx, KindReport, err, req); handled {
		return resp, nil
	}
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("store report: %w", err)
	}

	s.notifier.Notify(ctx, Notification{
		Kind:      KindReport,
		Reference: report.ID.String(),
		Summary:   string(report.ReportType),
		CreatedAt: report.CreatedAt,
	}, requestID)
	return dto.SubmissionResponse{Reference: report.ID.String()}, nil
}

// SubmitRemovalRequest stores a GDPR removal request. A slug that matches no
// company is ignored and the request is stored without a company.
func (s *SubmissionService) SubmitRemovalRequest(ctx context.Context, req dto.RemovalRequest, requestID string) (dto.SubmissionResponse, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.CompanySlug = strings.TrimSpace(req.CompanySlug)
	req.RequesterName = strings.TrimSpace(req.RequesterName)
	req.RequesterEmail = strings.TrimSpace(req.RequesterEmail)
	req.RequesterPhone = strings.TrimSpace(req.RequesterPhone)
	req.Reason = strings.TrimSpace(req.Reason)
	req.AdditionalInfo = strings.TrimSpace(req.AdditionalInfo)
	if err := validateStruct(s.validate, req); err != nil {
		s.metrics.IncSubmission(KindRemoval, "invalid")
		return dto.SubmissionResponse{}, err
	}
	email, ok := normalizeEmail(req.RequesterEmail)
	if !ok {
		s.metrics.IncSubmission(KindRemoval, "invalid")
		return dto.SubmissionResponse{}, fieldError("requester_email", "must be a valid email")
	}

	removal := &entity.RemovalRequest{
		CompanyName:    req.CompanyName,
		RequesterName:  req.RequesterName,
		RequesterEmail: email,
		Relationship:   entity.Relationship(req.Relationship),
		Reason:         req.Reason,
		Status:         entity.StatusPending,
	}
	if req.CompanySlug != "" {
		id, err := s.companies.FindCompanyID(ctx, req.CompanySlug)
		switch {
		case err == nil:
			removal.CompanyID = &id
		case errors.Is(err, repository.ErrCompanyNotFound):
		default:
			return dto.SubmissionResponse{}, err
		}
	}
	if req.RequesterPhone != "" {
		phone := normalizePhone(req.RequesterPhone, s.region)
		removal.RequesterPhone = &phone
	}
	if req.AdditionalInfo != "" {
		info := req.AdditionalInfo
		removal.AdditionalInfo = &info
	}

	err := s.repo.CreateRemovalRequest(ctx, removal)
	if resp, handled := s.finish(ctx, KindRemoval, err, req); handled {
		return resp, nil
	}
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("store removal request: %w", err)
	}

	s.notifier.Notify(ctx, Notification{
		Kind:      KindRemoval,
		Reference: removal.ID.String(),
		Summary:   removal.CompanyName,
		Email:     removal.RequesterEmail,
		CreatedAt: removal.CreatedAt,
	}, requestID)
	return dto.SubmissionResponse{Reference: removal.ID.String()}, nil
}

// finish records the outcome of a store. A missing table is acknowledged
// without a reference after logging the submission.
func (s *SubmissionService) finish(ctx context.Context, kind string, err error, payload any) (dto.SubmissionResponse, bool) {
	switch {
	case err == nil:
		s.metrics.IncSubmission(kind, "stored")
		return dto.SubmissionResponse{}, false
	case errors.Is(err, repository.ErrTableMissing):
		s.metrics.IncSubmission(kind, "logged")
		s.log.InfoFields(ctx, "submission table missing, submission logged only", map[string]any{
			"kind":    kind,
			"payload": payload,
		})
		return dto.SubmissionResponse{}, true
	default:
		s.metrics.IncSubmission(kind, "error")
		return dto.SubmissionResponse{}, false
	}
}

// ListContactMessages returns contact messages, optionally restricted to status.
func (s *SubmissionService) ListContactMessages(ctx context.Context, status string) ([]entity.ContactMessage, error) {
	if err := checkStatusFilter(status, contactStatuses); err != nil {
		return nil, err
	}
	return s.repo.ListContactMessages(ctx, status)
}

// ListReports returns reports, optionally restricted to status.
func (s *SubmissionService) ListReports(ctx context.Context, status string) ([]entity.Report, error) {
	if err := checkStatusFilter(status, reportStatuses); err != nil {
		return nil, err
	}
	return s.repo.ListReports(ctx, status)
}

// ListRemovalRequests returns removal requests, optionally restricted to status.
func (s *SubmissionService) ListRemovalRequests(ctx context.Context, status string) ([]entity.RemovalRequest, error) {
	if err := checkStatusFilter(status, removalStatuses); err != nil {
		return nil, err
	}
	return s.repo.ListRemovalRequests(ctx, status)
}

// UpdateContactMessageStatus moves a contact message to status.
func (s *SubmissionService) UpdateContactMessageStatus(ctx context.Context, id uuid.UUID, req dto.StatusUpdateRequest) error {
	status, err := checkStatus(req.Status, contactStatuses)
	if err != nil {
		return err
	}
	return s.repo.UpdateContactMessageStatus(ctx, id, status)
}

// UpdateReportStatus moves a report to status.
func (s *SubmissionService) UpdateReportStatus(ctx context.Context, id uuid.UUID, req dto.StatusUpdateRequest) error {
	status, err := checkStatus(req.Status, reportStatuses)
	if err != nil {
		return err
	}
	return s.repo.UpdateReportStatus(ctx, id, status)
}

// UpdateRemovalRequestStatus moves a removal request to status.
func (s *SubmissionService) UpdateRemovalRequestStatus(ctx context.Context, id uuid.UUID, req dto.StatusUpdateRequest) error {
	status, err := checkStatus(req.Status, removalStatuses)
	if err != nil {
		return err
	}
	return s.repo.UpdateRemovalRequestStatus(ctx, id, status)
}

func checkStatusFilter(status string, allowed []string) error {
	if status == "" {
		return nil
	}
	_, err := checkStatus(status, allowed)
	return err
}

func checkStatus(status string, allowed []string) (string, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return "", fieldError("status", "is required")
	}
	for _, candidate := range allowed {
		if candidate == status {
			return status, nil
		}
	}
	return "", fieldError("status", "must be one of: "+strings.Join(allowed, ", "))
}
