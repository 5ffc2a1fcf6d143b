package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/funeral-directory/internal/entity"
)

// CompaniesRepository describes read operations for the directory.
type CompaniesRepository interface {
	ListDirectory(ctx context.Context) ([]entity.Company, error)
	FindIDBySlug(ctx context.Context, slug string) (uuid.UUID, error)
}

// ErrCompanyNotFound indicates no active company has the requested slug.
var ErrCompanyNotFound = errors.New("company not found")

// PGXCompaniesRepository implements CompaniesRepository using pgx.
type PGXCompaniesRepository struct {
	pool pgxPool
}

// NewPGXCompaniesRepository wires a pgx backed repository.
func NewPGXCompaniesRepository(pool *pgxpool.Pool) *PGXCompaniesRepository {
	return &PGXCompaniesRepository{pool: pool}
}

const (
	listCompaniesSQL = `
        SELECT
            id,
            name,
            slug,
            motto,
            description,
            fiscal_code,
            website,
            facebook_url,
            instagram_url,
            founded_year,
            is_verified,
            is_non_stop,
            metadata,
            created_at,
            updated_at
        FROM companies
        WHERE status = 'active'
        ORDER BY name ASC
    `

	listContactsSQL = `
        SELECT id, company_id, type, value, is_primary, created_at
        FROM contacts
        ORDER BY is_primary DESC, created_at ASC
    `

	listServicesSQL = `
        SELECT id, company_id, service_tag, created_at
        FROM services
        ORDER BY created_at ASC
    `

	listLocationsSQL = `
        SELECT
            l.id,
            l.company_id,
            l.address,
            l.city,
            COALESCE(l.county, co.name) AS county,
            l.county_id,
            l.latitude,
            l.longitude,
            l.geo_point,
            l.type,
            l.created_at
        FROM locations l
        LEFT JOIN counties co ON co.id = l.county_id
        ORDER BY l.created_at ASC
    `

	listReviewSummariesSQL = `
        SELECT
            company_id,
            total_reviews,
            average_rating,
            google_rating,
            facebook_rating,
            top_sentiment_tags,
            last_scraped_at,
            updated_at
        FROM review_summaries
    `
)

// ListDirectory loads every active company ordered by name together with its
// contacts, services, locations and review summary. All reads share one
// read-only snapshot transaction.
func (r *PGXCompaniesRepository) ListDirectory(ctx context.Context) ([]entity.Company, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("start directory tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, listCompaniesSQL)
	if err != nil {
		return nil, wrapPgError("list companies", err)
	}
	companies, err := scanCompanies(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	index := make(map[uuid.UUID]int, len(companies))
	for i := range companies {
		index[companies[i].ID] = i
	}

	if err := attachContacts(ctx, tx, companies, index); err != nil {
		return nil, err
	}
	if err := attachServices(ctx, tx, companies, index); err != nil {
		return nil, err
	}
	if err := attachLocations(ctx, tx, companies, index); err != nil {
		return nil, err
	}
	if err := attachReviewSummaries(ctx, tx, companies, index); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit directory tx: %w", err)
	}
	return companies, nil
}

// FindIDBySlug resolves the identifier of an active company.
func (r *PGXCompaniesRepository) FindIDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT id FROM companies WHERE slug = $1 AND status = 'active'`, slug).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrCompanyNotFound
		}
		return uuid.Nil, wrapPgError("find company by slug", err)
	}
	return id, nil
}

func scanCompanies(rows pgx.Rows) ([]entity.Company, error) {
	companies := []entity.Company{}
	for rows.Next() {
		var (
			c            entity.Company
			motto        sql.NullString
			description  sql.NullString
			fiscalCode   sql.NullString
			website      sql.NullString
			facebookURL  sql.NullString
			instagramURL sql.NullString
			foundedYear  sql.NullInt64
			metadata     []byte
		)

		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Slug,
			&motto,
			&description,
			&fiscalCode,
			&website,
			&facebookURL,
			&instagramURL,
			&foundedYear,
			&c.IsVerified,
			&c.IsNonStop,
			&metadata,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}

		c.Motto = nullStringToPtr(motto)
		c.Description = nullStringToPtr(description)
		c.FiscalCode = nullStringToPtr(fiscalCode)
		c.Website = nullStringToPtr(website)
		c.FacebookURL = nullStringToPtr(facebookURL)
		c.InstagramURL = nullStringToPtr(instagramURL)
		c.FoundedYear = nullIntToPtr(foundedYear)

		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &c.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata of %s: %w", c.Slug, err)
			}
		}

		c.Contacts = []entity.Contact{}
		c.Services = []entity.Service{}
		c.Locations = []entity.Location{}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return companies, nil
}

func attachContacts(ctx context.Context, tx pgx.Tx, companies []entity.Company, index map[uuid.UUID]int) error {
	rows, err := tx.Query(ctx, listContactsSQL)
	if err != nil {
		return wrapPgError("list contacts", err)
	}
	defer rows.Close()

	for rows.Next() {
		var contact entity.Contact
		if err := rows.Scan(&contact.ID, &contact.CompanyID, &contact.Type, &contact.Value, &contact.IsPrimary, &contact.CreatedAt); err != nil {
			return fmt.Errorf("scan contact: %w", err)
		}
		if i, ok := index[contact.CompanyID]; ok {
			companies[i].Contacts = append(companies[i].Contacts, contact)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate contacts: %w", err)
	}
	return nil
}

func attachServices(ctx context.Context, tx pgx.Tx, companies []entity.Company, index map[uuid.UUID]int) error {
	rows, err := tx.Query(ctx, listServicesSQL)
	if err != nil {
		return wrapPgError("list services", err)
	}
	defer rows.Close()

	for rows.Next() {
		var service entity.Service
		if err := rows.Scan(&service.ID, &service.CompanyID, &service.ServiceTag, &service.CreatedAt); err != nil {
			return fmt.Errorf("scan service: %w", err)
		}
		if i, ok := index[service.CompanyID]; ok {
			companies[i].Services = append(companies[i].Services, service)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate services: %w", err)
	}
	return nil
}

func attachLocations(ctx context.Context, tx pgx.Tx, companies []entity.Company, index map[uuid.UUID]int) error {
	rows, err := tx.Query(ctx, listLocationsSQL)
	if err != nil {
		return wrapPgError("list locations", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			loc       entity.Location
			address   sql.NullString
			city      sql.NullString
			county    sql.NullString
			countyID  sql.NullInt64
			latitude  sql.NullFloat64
			longitude sql.NullFloat64
			geoPoint  []byte
		)
		err := rows.Scan(
			&loc.ID,
			&loc.CompanyID,
			&address,
			&city,
			&county,
			&countyID,
			&latitude,
			&longitude,
			&geoPoint,
			&loc.Type,
			&loc.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("scan location: %w", err)
		}

		loc.Address = address.String
		loc.City = nullStringToPtr(city)
		loc.County = nullStringToPtr(county)
		loc.CountyID = nullIntToPtr(countyID)
		loc.Latitude = nullFloatToPtr(latitude)
		loc.Longitude = nullFloatToPtr(longitude)
		if len(geoPoint) > 0 {
			var point entity.GeoPoint
			if err := json.Unmarshal(geoPoint, &point); err != nil {
				return fmt.Errorf("unmarshal geo point: %w", err)
			}
			loc.GeoPoint = &point
		}

		if i, ok := index[loc.CompanyID]; ok {
			companies[i].Locations = append(companies[i].Locations, loc)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate locations: %w", err)
	}
	return nil
}

func attachReviewSummaries(ctx context.Context, tx pgx.Tx, companies []entity.Company, index map[uuid.UUID]int) error {
	rows, err := tx.Query(ctx, listReviewSummariesSQL)
	if err != nil {
		return wrapPgError("list review summaries", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			summary        entity.ReviewSummary
			averageRating  sql.NullFloat64
			googleRating   sql.NullFloat64
			facebookRating sql.NullFloat64
			lastScrapedAt  sql.NullTime
		)
		err := rows.Scan(
			&summary.CompanyID,
			&summary.TotalReviews,
			&averageRating,
			&googleRating,
			&facebookRating,
			&summary.TopSentimentTags,
			&lastScrapedAt,
			&summary.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("scan review summary: %w", err)
		}
		summary.AverageRating = nullFloatToPtr(averageRating)
		summary.GoogleRating = nullFloatToPtr(googleRating)
		summary.FacebookRating = nullFloatToPtr(facebookRating)
		if lastScrapedAt.Valid {
			ts := lastScrapedAt.Time
			summary.LastScrapedAt = &ts
		}

		if i, ok := index[summary.CompanyID]; ok {
			s := summary
			companies[i].ReviewSummary = &s
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate review summaries: %w", err)
	}
	return nil
}
