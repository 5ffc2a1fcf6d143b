package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/funeral-directory/internal/dto"
	"github.com/octobees/funeral-directory/internal/entity"
	"github.com/octobees/funeral-directory/internal/repository"
)

type mockSubmissionsRepository struct {
	createContact func(ctx context.Context, msg *entity.ContactMessage) error
	createReport  func(ctx context.Context, report *entity.Report) error
	createRemoval func(ctx context.Context, req *entity.RemovalRequest) error
	listReports   func(ctx context.Context, status string) ([]entity.Report, error)
	updateReport  func(ctx context.Context, id uuid.UUID, status string) error
	updateRemoval func(ctx context.Context, id uuid.UUID, status string) error
	updateContact func(ctx context.Context, id uuid.UUID, status string) error
	listContacts  func(ctx context.Context, status string) ([]entity.ContactMessage, error)
	listRemovals  func(ctx context.Context, status string) ([]entity.RemovalRequest, error)
}

func (m *mockSubmissionsRepository) CreateContactMessage(ctx context.Context, msg *entity.ContactMessage) error {
	if m.createContact != nil {
		return m.createContact(ctx, msg)
	}
	return errors.New("create contact not implemented")
}

func (m *mockSubmissionsRepository) CreateReport(ctx context.Context, report *entity.Report) error {
	if m.createReport != nil {
		return m.createReport(ctx, report)
	}
	return errors.New("create report not implemented")
}

func (m *mockSubmissionsRepository) CreateRemovalRequest(ctx context.Context, req *entity.RemovalRequest) error {
	if m.createRemoval != nil {
		return m.createRemoval(ctx, req)
	}
	return errors.New("create removal not implemented")
}

func (m *mockSubmissionsRepository) ListContactMessages(ctx context.Context, status string) ([]entity.ContactMessage, error) {
	if m.listContacts != nil {
		return m.listContacts(ctx, status)
	}
	return nil, errors.New("list contacts not implemented")
}

func (m *mockSubmissionsRepository) ListReports(ctx context.Context, status string) ([]entity.Report, error) {
	if m.listReports != nil {
		return m.listReports(ctx, status)
	}
	return nil, errors.New("list reports not implemented")
}

func (m *mockSubmissionsRepository) ListRemovalRequests(ctx context.Context, status string) ([]entity.RemovalRequest, error) {
	if m.listRemovals != nil {
		return m.listRemovals(ctx, status)
	}
	return nil, errors.New("list removals not implemented")
}

func (m *mockSubmissionsRepository) UpdateContactMessageStatus(ctx context.Context, id uuid.UUID, status string) error {
	if m.updateContact != nil {
		return m.updateContact(ctx, id, status)
	}
	return errors.New("update contact not implemented")
}

func (m *mockSubmissionsRepository) UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) error {
	if m.updateReport != nil {
		return m.updateReport(ctx, id, status)
	}
	return errors.New("update report not implemented")
}

func (m *mockSubmissionsRepository) UpdateRemovalRequestStatus(ctx context.Context, id uuid.UUID, status string) error {
	if m.updateRemoval != nil {
		return m.updateRemoval(ctx, id, status)
	}
	return errors.New("update removal not implemented")
}

type resolverStub map[string]uuid.UUID

func (r resolverStub) FindCompanyID(ctx context.Context, slug string) (uuid.UUID, error) {
	if id, ok := r[slug]; ok {
		return id, nil
	}
	return uuid.Nil, repository.ErrCompanyNotFound
}

var (
	storedID  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	companyID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	storedAt  = time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC)
)

func validRemoval() dto.RemovalRequest {
	return dto.RemovalRequest{
		CompanyName:    "Funerare Timiș",
		CompanySlug:    "funerare-timis",
		RequesterName:  "Ion Popescu",
		RequesterEmail: "Ion@Example.RO",
		RequesterPhone: "0722 123 457",
		Relationship:   "owner",
		Reason:         "Firma s-a închis.",
	}
}

func TestSubmissionService_SubmitContact(t *testing.T) {
	var stored *entity.ContactMessage
	worker := &workerStub{}
	repo := &mockSubmissionsRepository{createContact: func(ctx context.Context, msg *entity.ContactMessage) error {
		msg.ID = storedID
		msg.CreatedAt = storedAt
		stored = msg
		return nil
	}}
	service := NewSubmissionService(repo, resolverStub{}, WithNotifier(NewNotifier(worker, nil)))

	resp, err := service.SubmitContact(context.Background(), dto.ContactRequest{
		Name:    "  Maria ",
		Email:   " Maria@Example.com ",
		Subject: "Întrebare",
		Message: "Bună ziua",
	}, "req-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reference != storedID.String() {
		t.Fatalf("unexpected reference %q", resp.Reference)
	}
	if stored.Name != "Maria" || stored.Email != "maria@example.com" || stored.Status != entity.StatusPending {
		t.Fatalf("unexpected stored message: %+v", stored)
	}
	if len(worker.calls) != 1 || worker.calls[0].Kind != KindContact || worker.calls[0].Reference != storedID.String() {
		t.Fatalf("expected one contact notification, got %+v", worker.calls)
	}
}

func TestSubmissionService_SubmitContact_Validation(t *testing.T) {
	service := NewSubmissionService(&mockSubmissionsRepository{}, resolverStub{})

	_, err := service.SubmitContact(context.Background(), dto.ContactRequest{Email: "not-an-email"}, "")
	vErr, ok := IsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"name", "email", "subject", "message"} {
		if _, ok := vErr.Fields[field]; !ok {
			t.Fatalf("expected %s to be rejected, got %v", field, vErr.Fields)
		}
	}
}

func TestSubmissionService_SubmitReport_BySlug(t *testing.T) {
	var stored *entity.Report
	repo := &mockSubmissionsRepository{createReport: func(ctx context.Context, report *entity.Report) error {
		report.ID = storedID
		stored = report
		return nil
	}}
	service := NewSubmissionService(repo, resolverStub{"funerare-timis": companyID})

	resp, err := service.SubmitReport(context.Background(), dto.ReportRequest{
		CompanySlug:   "funerare-timis",
		ReportType:    "closed_business",
		Description:   "Nu mai există.",
		ReporterEmail: "x@example.com",
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reference != storedID.String() {
		t.Fatalf("unexpected reference %q", resp.Reference)
	}
	if stored.CompanyID != companyID || stored.ReportType != entity.ReportClosedBusiness {
		t.Fatalf("unexpected stored report: %+v", stored)
	}
	if stored.ReporterEmail == nil || *stored.ReporterEmail != "x@example.com" {
		t.Fatalf("unexpected reporter email: %v", stored.ReporterEmail)
	}
}

func TestSubmissionService_SubmitReport_ByID(t *testing.T) {
	var stored *entity.Report
	repo := &mockSubmissionsRepository{createReport: func(ctx context.Context, report *entity.Report) error {
		stored = report
		return nil
	}}
	service := NewSubmissionService(repo, resolverStub{})

	_, err := service.SubmitReport(context.Background(), dto.ReportRequest{
		CompanyID:   companyID.String(),
		ReportType:  "spam",
		Description: "Reclame.",
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.CompanyID != companyID || stored.ReporterEmail != nil {
		t.Fatalf("unexpected stored report: %+v", stored)
	}
}

func TestSubmissionService_SubmitReport_UnknownSlug(t *testing.T) {
	service := NewSubmissionService(&mockSubmissionsRepository{}, resolverStub{})

	_, err := service.SubmitReport(context.Background(), dto.ReportRequest{
		CompanySlug: "ghost",
		ReportType:  "other",
		Description: "?",
	}, "")
	if !errors.Is(err, repository.ErrCompanyNotFound) {
		t.Fatalf("expected company not found, got %v", err)
	}
}

func TestSubmissionService_SubmitReport_Validation(t *testing.T) {
	service := NewSubmissionService(&mockSubmissionsRepository{}, resolverStub{})

	cases := map[string]struct {
		req   dto.ReportRequest
		field string
	}{
		"missing company": {dto.ReportRequest{ReportType: "spam", Description: "x"}, "company_slug"},
		"bad type":        {dto.ReportRequest{CompanySlug: "a", ReportType: "rude", Description: "x"}, "report_type"},
		"bad id":          {dto.ReportRequest{CompanyID: "42", ReportType: "spam", Description: "x"}, "company_id"},
		"no description":  {dto.ReportRequest{CompanySlug: "a", ReportType: "spam"}, "description"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := service.SubmitReport(context.Background(), tc.req, "")
			vErr, ok := IsValidationError(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := vErr.Fields[tc.field]; !ok {
				t.Fatalf("expected %s to be rejected, got %v", tc.field, vErr.Fields)
			}
		})
	}
}

func TestSubmissionService_SubmitReport_TableMissingIsAcknowledged(t *testing.T) {
	worker := &workerStub{}
	repo := &mockSubmissionsRepository{createReport: func(ctx context.Context, report *entity.Report) error {
		return repository.ErrTableMissing
	}}
	service := NewSubmissionService(repo, resolverStub{"a": companyID}, WithNotifier(NewNotifier(worker, nil)))

	resp, err := service.SubmitReport(context.Background(), dto.ReportRequest{
		CompanySlug: "a",
		ReportType:  "spam",
		Description: "x",
	}, "")
	if err != nil {
		t.Fatalf("expected acknowledgement, got %v", err)
	}
	if resp.Reference != "" {
		t.Fatalf("expected no reference, got %q", resp.Reference)
	}
	if len(worker.calls) != 0 {
		t.Fatalf("expected no notification for an unstored report")
	}
}

func TestSubmissionService_SubmitReport_StoreFailure(t *testing.T) {
	repo := &mockSubmissionsRepository{createReport: func(ctx context.Context, report *entity.Report) error {
		return errors.New("connection reset")
	}}
	service := NewSubmissionService(repo, resolverStub{"a": companyID})

	_, err := service.SubmitReport(context.Background(), dto.ReportRequest{CompanySlug: "a", ReportType: "spam", Description: "x"}, "")
	if err == nil {
		t.Fatalf("expected store error")
	}
	if _, ok := IsValidationError(err); ok {
		t.Fatalf("store failure must not look like a validation error")
	}
}

func TestSubmissionService_SubmitRemovalRequest(t *testing.T) {
	var stored *entity.RemovalRequest
	repo := &mockSubmissionsRepository{createRemoval: func(ctx context.Context, req *entity.RemovalRequest) error {
		req.ID = storedID
		stored = req
		return nil
	}}
	service := NewSubmissionService(repo, resolverStub{"funerare-timis": companyID})

	resp, err := service.SubmitRemovalRequest(context.Background(), validRemoval(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reference != storedID.String() {
		t.Fatalf("unexpected reference %q", resp.Reference)
	}
	if stored.CompanyID == nil || *stored.CompanyID != companyID {
		t.Fatalf("expected company to be resolved, got %v", stored.CompanyID)
	}
	if stored.RequesterEmail != "ion@example.ro" {
		t.Fatalf("unexpected email %q", stored.RequesterEmail)
	}
	if stored.RequesterPhone == nil || *stored.RequesterPhone != "+40722123457" {
		t.Fatalf("expected E.164 phone, got %v", stored.RequesterPhone)
	}
	if stored.AdditionalInfo != nil {
		t.Fatalf("expected no additional info, got %v", *stored.AdditionalInfo)
	}
}

func TestSubmissionService_SubmitRemovalRequest_UnknownSlugIsIgnored(t *testing.T) {
	var stored *entity.RemovalRequest
	repo := &mockSubmissionsRepository{createRemoval: func(ctx context.Context, req *entity.RemovalRequest) error {
		stored = req
		return nil
	}}
	service := NewSubmissionService(repo, resolverStub{})

	req := validRemoval()
	req.CompanySlug = "ghost"
	req.RequesterPhone = ""
	req.AdditionalInfo = " detalii "
	if _, err := service.SubmitRemovalRequest(context.Background(), req, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.CompanyID != nil || stored.RequesterPhone != nil {
		t.Fatalf("unexpected stored request: %+v", stored)
	}
	if stored.AdditionalInfo == nil || *stored.AdditionalInfo != "detalii" {
		t.Fatalf("unexpected additional info: %v", stored.AdditionalInfo)
	}
}

func TestSubmissionService_SubmitRemovalRequest_Validation(t *testing.T) {
	service := NewSubmissionService(&mockSubmissionsRepository{}, resolverStub{})

	req := validRemoval()
	req.RequesterPhone = "123"
	req.Relationship = "cousin"
	_, err := service.SubmitRemovalRequest(context.Background(), req, "")
	vErr, ok := IsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.Fields["requester_phone"] != "must be a valid phone number" {
		t.Fatalf("unexpected phone message: %v", vErr.Fields)
	}
	if vErr.Fields["relationship"] != "must be one of: owner, employee, legal_representative, other" {
		t.Fatalf("unexpected relationship message: %v", vErr.Fields)
	}
}

func TestSubmissionService_ListReports_StatusFilter(t *testing.T) {
	received := "unset"
	repo := &mockSubmissionsRepository{listReports: func(ctx context.Context, status string) ([]entity.Report, error) {
		received = status
		return []entity.Report{{ID: storedID}}, nil
	}}
	service := NewSubmissionService(repo, resolverStub{})

	reports, err := service.ListReports(context.Background(), "")
	if err != nil || len(reports) != 1 || received != "" {
		t.Fatalf("unexpected result: %v %v %q", reports, err, received)
	}
	if _, err := service.ListReports(context.Background(), "approved"); err == nil {
		t.Fatalf("expected approved to be rejected for reports")
	}
}

func TestSubmissionService_UpdateStatus(t *testing.T) {
	var gotStatus string
	repo := &mockSubmissionsRepository{
		updateRemoval: func(ctx context.Context, id uuid.UUID, status string) error {
			gotStatus = status
			return nil
		},
		updateReport: func(ctx context.Context, id uuid.UUID, status string) error {
			return repository.ErrSubmissionNotFound
		},
	}
	service := NewSubmissionService(repo, resolverStub{})

	if err := service.UpdateRemovalRequestStatus(context.Background(), storedID, dto.StatusUpdateRequest{Status: " Completed "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != entity.StatusCompleted {
		t.Fatalf("expected normalized status, got %q", gotStatus)
	}

	err := service.UpdateRemovalRequestStatus(context.Background(), storedID, dto.StatusUpdateRequest{Status: "resolved"})
	if _, ok := IsValidationError(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}

	err = service.UpdateReportStatus(context.Background(), storedID, dto.StatusUpdateRequest{Status: "reviewed"})
	if !errors.Is(err, repository.ErrSubmissionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	err = service.UpdateContactMessageStatus(context.Background(), storedID, dto.StatusUpdateRequest{})
	if vErr, ok := IsValidationError(err); !ok || vErr.Fields["status"] != "is required" {
		t.Fatalf("expected required status, got %v", err)
	}
}
