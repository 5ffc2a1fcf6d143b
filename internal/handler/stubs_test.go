package handler

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/octobees/funeral-directory/internal/entity"
	"github.com/octobees/funeral-directory/internal/repository"
)

type stubUsersRepo struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	create      func(ctx context.Context, email, passwordHash, role string) (*entity.User, error)
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.findByEmail != nil {
		return s.findByEmail(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
	if s.create != nil {
		return s.create(ctx, email, passwordHash, role)
	}
	return nil, errors.New("not implemented")
}

type stubCompaniesRepo struct {
	companies []entity.Company
	err       error
}

func (s *stubCompaniesRepo) ListDirectory(ctx context.Context) ([]entity.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.companies, nil
}

func (s *stubCompaniesRepo) FindIDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	for _, c := range s.companies {
		if c.Slug == slug {
			return c.ID, nil
		}
	}
	return uuid.Nil, repository.ErrCompanyNotFound
}

type stubCountiesRepo struct {
	counties []entity.County
}

func (s *stubCountiesRepo) List(ctx context.Context) ([]entity.County, error) {
	return s.counties, nil
}

type stubSubmissionsRepo struct {
	err           error
	reports       []entity.Report
	removals      []entity.RemovalRequest
	contacts      []entity.ContactMessage
	lastStatus    string
	lastID        uuid.UUID
	storedReport  *entity.Report
	storedRemoval *entity.RemovalRequest
	storedContact *entity.ContactMessage
}

var stubStoredID = uuid.MustParse("33333333-3333-3333-3333-333333333333")

func (s *stubSubmissionsRepo) CreateContactMessage(ctx context.Context, msg *entity.ContactMessage) error {
	if s.err != nil {
		return s.err
	}
	msg.ID = stubStoredID
	s.storedContact = msg
	return nil
}

func (s *stubSubmissionsRepo) CreateReport(ctx context.Context, report *entity.Report) error {
	if s.err != nil {
		return s.err
	}
	report.ID = stubStoredID
	s.storedReport = report
	return nil
}

func (s *stubSubmissionsRepo) CreateRemovalRequest(ctx context.Context, req *entity.RemovalRequest) error {
	if s.err != nil {
		return s.err
	}
	req.ID = stubStoredID
	s.storedRemoval = req
	return nil
}

func (s *stubSubmissionsRepo) ListContactMessages(ctx context.Context, status string) ([]entity.ContactMessage, error) {
	s.lastStatus = status
	return s.contacts, s.err
}

func (s *stubSubmissionsRepo) ListReports(ctx context.Context, status string) ([]entity.Report, error) {
	s.lastStatus = status
	return s.reports, s.err
}

func (s *stubSubmissionsRepo) ListRemovalRequests(ctx context.Context, status string) ([]entity.RemovalRequest, error) {
	s.lastStatus = status
	return s.removals, s.err
}

func (s *stubSubmissionsRepo) UpdateContactMessageStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.update(id, status)
}

func (s *stubSubmissionsRepo) UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.update(id, status)
}

func (s *stubSubmissionsRepo) UpdateRemovalRequestStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.update(id, status)
}

func (s *stubSubmissionsRepo) update(id uuid.UUID, status string) error {
	if s.err != nil {
		return s.err
	}
	s.lastID, s.lastStatus = id, status
	return nil
}
