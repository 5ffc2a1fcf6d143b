package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/funeral-directory/internal/entity"
	"github.com/octobees/funeral-directory/internal/repository"
	"github.com/octobees/funeral-directory/internal/service"
)

func newAdminHandler(t *testing.T, repo *stubSubmissionsRepo, companies *stubCompaniesRepo) *AdminHandler {
	t.Helper()
	directory := service.NewDirectoryService(companies, &stubCountiesRepo{})
	if err := directory.Load(context.Background()); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	return NewAdminHandler(service.NewSubmissionService(repo, directory), directory)
}

func patchStatus(id, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPatch, "/admin/reports/"+id, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestAdminHandler_ListReports(t *testing.T) {
	repo := &stubSubmissionsRepo{reports: []entity.Report{{ID: stubStoredID, Status: entity.StatusPending}}}
	handler := newAdminHandler(t, repo, &stubCompaniesRepo{})

	t.Run("filters by status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/reports?status=Pending", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		if err := handler.ListReports(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if repo.lastStatus != entity.StatusPending {
			t.Fatalf("expected pending filter, got %q", repo.lastStatus)
		}
		var reports []entity.Report
		decodeEnvelope(t, rec, &reports)
		if len(reports) != 1 {
			t.Fatalf("expected 1 report, got %d", len(reports))
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/reports?status=approved", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		_ = handler.ListReports(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAdminHandler_UpdateRemovalRequest(t *testing.T) {
	id := "44444444-4444-4444-4444-444444444444"

	t.Run("updates status", func(t *testing.T) {
		repo := &stubSubmissionsRepo{}
		handler := newAdminHandler(t, repo, &stubCompaniesRepo{})
		c, rec := patchStatus(id, `{"status":"approved"}`)

		if err := handler.UpdateRemovalRequest(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if repo.lastID.String() != id || repo.lastStatus != entity.StatusApproved {
			t.Fatalf("unexpected update id=%s status=%q", repo.lastID, repo.lastStatus)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		handler := newAdminHandler(t, &stubSubmissionsRepo{}, &stubCompaniesRepo{})
		c, rec := patchStatus("not-a-uuid", `{"status":"approved"}`)

		_ = handler.UpdateRemovalRequest(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("status not allowed", func(t *testing.T) {
		handler := newAdminHandler(t, &stubSubmissionsRepo{}, &stubCompaniesRepo{})
		c, rec := patchStatus(id, `{"status":"reviewed"}`)

		_ = handler.UpdateRemovalRequest(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := &stubSubmissionsRepo{err: repository.ErrSubmissionNotFound}
		handler := newAdminHandler(t, repo, &stubCompaniesRepo{})
		c, rec := patchStatus(id, `{"status":"rejected"}`)

		_ = handler.UpdateRemovalRequest(c)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestAdminHandler_ListContactMessages_TableMissing(t *testing.T) {
	repo := &stubSubmissionsRepo{err: fmt.Errorf("list: %w", repository.ErrTableMissing)}
	handler := newAdminHandler(t, repo, &stubCompaniesRepo{})

	req := httptest.NewRequest(http.MethodGet, "/admin/contact-messages", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	_ = handler.ListContactMessages(c)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestAdminHandler_ReloadDirectory(t *testing.T) {
	companies := &stubCompaniesRepo{}
	handler := newAdminHandler(t, &stubSubmissionsRepo{}, companies)
	companies.companies = handlerDirectory()

	req := httptest.NewRequest(http.MethodPost, "/admin/directory/reload", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := handler.ReloadDirectory(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp reloadResponse
	decodeEnvelope(t, rec, &resp)
	if resp.Companies != 3 {
		t.Fatalf("expected 3 companies after reload, got %d", resp.Companies)
	}

	companies.err = fmt.Errorf("db down")
	rec = httptest.NewRecorder()
	c = echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/admin/directory/reload", nil), rec)
	_ = handler.ReloadDirectory(c)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
