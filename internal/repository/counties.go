package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/funeral-directory/internal/entity"
)

// CountiesRepository lists the Romanian counties.
type CountiesRepository interface {
	List(ctx context.Context) ([]entity.County, error)
}

// PGXCountiesRepository implements CountiesRepository using pgx.
type PGXCountiesRepository struct {
	pool pgxPool
}

// NewPGXCountiesRepository wires a pgx backed repository.
func NewPGXCountiesRepository(pool *pgxpool.Pool) *PGXCountiesRepository {
	return &PGXCountiesRepository{pool: pool}
}

// List returns every county ordered by name.
func (r *PGXCountiesRepository) List(ctx context.Context) ([]entity.County, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, slug, region FROM counties ORDER BY name ASC`)
	if err != nil {
		return nil, wrapPgError("list counties", err)
	}
	defer rows.Close()

	counties := []entity.County{}
	for rows.Next() {
		var (
			county entity.County
			region sql.NullString
		)
		if err := rows.Scan(&county.ID, &county.Name, &county.Slug, &region); err != nil {
			return nil, fmt.Errorf("scan county: %w", err)
		}
		county.Region = nullStringToPtr(region)
		counties = append(counties, county)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counties: %w", err)
	}
	return counties, nil
}
