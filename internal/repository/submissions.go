package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/funeral-directory/internal/entity"
)

// ErrSubmissionNotFound is returned when a moderated row does not exist.
var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionsRepository persists the public forms and their moderation state.
type SubmissionsRepository interface {
	CreateContactMessage(ctx context.Context, msg *entity.ContactMessage) error
	CreateReport(ctx context.Context, report *entity.Report) error
	CreateRemovalRequest(ctx context.Context, req *entity.RemovalRequest) error
	ListContactMessages(ctx context.Context, status string) ([]entity.ContactMessage, error)
	ListReports(ctx context.Context, status string) ([]entity.Report, error)
	ListRemovalRequests(ctx context.Context, status string) ([]entity.RemovalRequest, error)
	UpdateContactMessageStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateRemovalRequestStatus(ctx context.Context, id uuid.UUID, status string) error
}

// PGXSubmissionsRepository implements SubmissionsRepository using pgx.
type PGXSubmissionsRepository struct {
	pool pgxPool
}

// NewPGXSubmissionsRepository wires a pgx backed repository.
func NewPGXSubmissionsRepository(pool *pgxpool.Pool) *PGXSubmissionsRepository {
	return &PGXSubmissionsRepository{pool: pool}
}

// CreateContactMessage inserts msg and fills its id, status and timestamp.
func (r *PGXSubmissionsRepository) CreateContactMessage(ctx context.Context, msg *entity.ContactMessage) error {
	if msg == nil {
		return fmt.Errorf("contact message payload is nil")
	}
	row := r.pool.QueryRow(ctx, `
        INSERT INTO contact_messages (name, email, subject, message, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, status, created_at
    `, msg.Name, msg.Email, msg.Subject, msg.Message, entity.StatusPending)

	if err := row.Scan(&msg.ID, &msg.Status, &msg.CreatedAt); err != nil {
		return wrapPgError("insert contact message", err)
	}
	return nil
}

// CreateReport inserts report and fills its id, status and timestamp.
func (r *PGXSubmissionsRepository) CreateReport(ctx context.Context, report *entity.Report) error {
	if report == nil {
		return fmt.Errorf("report payload is nil")
	}
	row := r.pool.QueryRow(ctx, `
        INSERT INTO reports (company_id, report_type, description, reporter_email, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, status, created_at
    `, report.CompanyID, string(report.ReportType), report.Description, stringOrNil(report.ReporterEmail), entity.StatusPending)

	if err := row.Scan(&report.ID, &report.Status, &report.CreatedAt); err != nil {
		return wrapPgError("insert report", err)
	}
	return nil
}

// CreateRemovalRequest inserts req and fills its id, status and timestamp.
func (r *PGXSubmissionsRepository) CreateRemovalRequest(ctx context.Context, req *entity.RemovalRequest) error {
	if req == nil {
		return fmt.Errorf("removal request payload is nil")
	}
	var companyID any
	if req.CompanyID != nil {
		companyID = *req.CompanyID
	}
	row := r.pool.QueryRow(ctx, `
        INSERT INTO removal_requests (
            company_id,
            company_name,
            requester_name,
            requester_email,
            requester_phone,
            relationship,
            reason,
            additional_info,
            status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, status, created_at
    `,
		companyID,
		req.CompanyName,
		req.RequesterName,
		req.RequesterEmail,
		stringOrNil(req.RequesterPhone),
		string(req.Relationship),
		req.Reason,
		stringOrNil(req.AdditionalInfo),
		entity.StatusPending,
	)

	if err := row.Scan(&req.ID, &req.Status, &req.CreatedAt); err != nil {
		return wrapPgError("insert removal request", err)
	}
	return nil
}

// ListContactMessages returns messages newest first, optionally filtered by status.
func (r *PGXSubmissionsRepository) ListContactMessages(ctx context.Context, status string) ([]entity.ContactMessage, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, email, subject, message, status, created_at
        FROM contact_messages
        WHERE ($1::text = '' OR status = $1::text)
        ORDER BY created_at DESC
    `, status)
	if err != nil {
		return nil, wrapPgError("list contact messages", err)
	}
	defer rows.Close()

	messages := []entity.ContactMessage{}
	for rows.Next() {
		var msg entity.ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.Status, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact messages: %w", err)
	}
	return messages, nil
}

// ListReports returns reports newest first, optionally filtered by status.
func (r *PGXSubmissionsRepository) ListReports(ctx context.Context, status string) ([]entity.Report, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, company_id, report_type, description, reporter_email, status, created_at
        FROM reports
        WHERE ($1::text = '' OR status = $1::text)
        ORDER BY created_at DESC
    `, status)
	if err != nil {
		return nil, wrapPgError("list reports", err)
	}
	defer rows.Close()

	reports := []entity.Report{}
	for rows.Next() {
		var (
			report        entity.Report
			reporterEmail sql.NullString
		)
		if err := rows.Scan(&report.ID, &report.CompanyID, &report.ReportType, &report.Description, &reporterEmail, &report.Status, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		report.ReporterEmail = nullStringToPtr(reporterEmail)
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

// ListRemovalRequests returns requests newest first, optionally filtered by status.
func (r *PGXSubmissionsRepository) ListRemovalRequests(ctx context.Context, status string) ([]entity.RemovalRequest, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT
            id,
            company_id,
            company_name,
            requester_name,
            requester_email,
            requester_phone,
            relationship,
            reason,
            additional_info,
            status,
            created_at
        FROM removal_requests
        WHERE ($1::text = '' OR status = $1::text)
        ORDER BY created_at DESC
    `, status)
	if err != nil {
		return nil, wrapPgError("list removal requests", err)
	}
	defer rows.Close()

	requests := []entity.RemovalRequest{}
	for rows.Next() {
		var (
			req            entity.RemovalRequest
			companyID      uuid.NullUUID
			requesterPhone sql.NullString
			additionalInfo sql.NullString
		)
		err := rows.Scan(
			&req.ID,
			&companyID,
			&req.CompanyName,
			&req.RequesterName,
			&req.RequesterEmail,
			&requesterPhone,
			&req.Relationship,
			&req.Reason,
			&additionalInfo,
			&req.Status,
			&req.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan removal request: %w", err)
		}
		if companyID.Valid {
			id := companyID.UUID
			req.CompanyID = &id
		}
		req.RequesterPhone = nullStringToPtr(requesterPhone)
		req.AdditionalInfo = nullStringToPtr(additionalInfo)
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate removal requests: %w", err)
	}
	return requests, nil
}

// UpdateContactMessageStatus sets the moderation status of a contact message.
func (r *PGXSubmissionsRepository) UpdateContactMessageStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.updateStatus(ctx, "contact_messages", id, status)
}

// UpdateReportStatus sets the moderation status of a report.
func (r *PGXSubmissionsRepository) UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.updateStatus(ctx, "reports", id, status)
}

// UpdateRemovalRequestStatus sets the moderation status of a removal request.
func (r *PGXSubmissionsRepository) UpdateRemovalRequestStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.updateStatus(ctx, "removal_requests", id, status)
}

func (r *PGXSubmissionsRepository) updateStatus(ctx context.Context, table string, id uuid.UUID, status string) error {
	query := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = NOW() WHERE id = $2`, pgx.Identifier{table}.Sanitize())
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return wrapPgError("update "+table+" status", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
