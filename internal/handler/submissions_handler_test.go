package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/funeral-directory/internal/dto"
	"github.com/octobees/funeral-directory/internal/middleware"
	"github.com/octobees/funeral-directory/internal/repository"
	"github.com/octobees/funeral-directory/internal/service"
)

func newSubmissionsHandler(t *testing.T, repo *stubSubmissionsRepo) *SubmissionsHandler {
	t.Helper()
	directory := newDirectoryService(t, handlerDirectory())
	return NewSubmissionsHandler(service.NewSubmissionService(repo, directory))
}

func postJSON(t *testing.T, path string, payload any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set(middleware.ContextKeyRequestID, "req-1")
	return c, rec
}

func TestSubmissionsHandler_Contact(t *testing.T) {
	t.Run("stored", func(t *testing.T) {
		repo := &stubSubmissionsRepo{}
		handler := newSubmissionsHandler(t, repo)
		c, rec := postJSON(t, "/contact", dto.ContactRequest{
			Name:    "Ana Popescu",
			Email:   "Ana@Example.com",
			Subject: "Program",
			Message: "Care este programul de lucru?",
		})

		if err := handler.Contact(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		var resp dto.SubmissionResponse
		env := decodeEnvelope(t, rec, &resp)
		if env.Message != service.ContactAcknowledgement {
			t.Fatalf("unexpected message %q", env.Message)
		}
		if resp.Reference != stubStoredID.String() {
			t.Fatalf("unexpected reference %q", resp.Reference)
		}
		if repo.storedContact == nil || repo.storedContact.Email != "ana@example.com" {
			t.Fatalf("expected normalized email to be stored, got %+v", repo.storedContact)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		handler := newSubmissionsHandler(t, &stubSubmissionsRepo{})
		c, rec := postJSON(t, "/contact", dto.ContactRequest{Name: "Ana", Email: "not-an-email"})

		_ = handler.Contact(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var fields map[string]string
		decodeEnvelope(t, rec, &fields)
		if _, ok := fields["email"]; !ok {
			t.Fatalf("expected email field error, got %v", fields)
		}
	})

	t.Run("table missing", func(t *testing.T) {
		repo := &stubSubmissionsRepo{err: fmt.Errorf("insert: %w", repository.ErrTableMissing)}
		handler := newSubmissionsHandler(t, repo)
		c, rec := postJSON(t, "/contact", dto.ContactRequest{
			Name:    "Ana Popescu",
			Email:   "ana@example.com",
			Subject: "Program",
			Message: "Mesaj",
		})

		if err := handler.Contact(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		handler := newSubmissionsHandler(t, &stubSubmissionsRepo{})
		req := httptest.NewRequest(http.MethodPost, "/contact", bytes.NewBufferString("{"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		_ = handler.Contact(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if env := decodeEnvelope(t, rec, nil); env.Message != "contact form is not valid JSON" {
			t.Fatalf("unexpected message %q", env.Message)
		}
	})
}

func TestSubmissionsHandler_Report(t *testing.T) {
	t.Run("resolves slug", func(t *testing.T) {
		repo := &stubSubmissionsRepo{}
		handler := newSubmissionsHandler(t, repo)
		c, rec := postJSON(t, "/reports", dto.ReportRequest{
			CompanySlug: "servicii-cluj",
			ReportType:  "closed_business",
			Description: "Firma s-a închis.",
		})

		if err := handler.Report(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if repo.storedReport == nil || repo.storedReport.CompanyID.String() != "00000000-0000-0000-0000-00000000000c" {
			t.Fatalf("expected report for servicii-cluj, got %+v", repo.storedReport)
		}
	})

	t.Run("unknown company", func(t *testing.T) {
		handler := newSubmissionsHandler(t, &stubSubmissionsRepo{})
		c, rec := postJSON(t, "/reports", dto.ReportRequest{
			CompanySlug: "missing",
			ReportType:  "spam",
			Description: "Spam",
		})

		_ = handler.Report(c)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		handler := newSubmissionsHandler(t, &stubSubmissionsRepo{err: fmt.Errorf("connection reset")})
		c, rec := postJSON(t, "/reports", dto.ReportRequest{
			CompanySlug: "servicii-cluj",
			ReportType:  "other",
			Description: "Telefon greșit",
		})

		_ = handler.Report(c)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestSubmissionsHandler_RemovalRequest(t *testing.T) {
	repo := &stubSubmissionsRepo{}
	handler := newSubmissionsHandler(t, repo)
	c, rec := postJSON(t, "/removal-request", dto.RemovalRequest{
		CompanyName:    "Funerare Timiș",
		CompanySlug:    "funerare-timis",
		RequesterName:  "Ion Ionescu",
		RequesterEmail: "ion@example.com",
		Relationship:   "owner",
		Reason:         "Firma nu mai există.",
	})

	if err := handler.RemovalRequest(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec, nil)
	if env.Message != service.RemovalAcknowledgement {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if repo.storedRemoval == nil || repo.storedRemoval.CompanyID == nil {
		t.Fatalf("expected company to be linked, got %+v", repo.storedRemoval)
	}
}
