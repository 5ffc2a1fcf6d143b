package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxPool is the subset of *pgxpool.Pool used by the repositories.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// ErrTableMissing is returned when the backing table has not been created yet.
var ErrTableMissing = errors.New("table does not exist")

const pgUndefinedTable = "42P01"

// wrapPgError annotates err and maps undefined-table errors to ErrTableMissing.
func wrapPgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return fmt.Errorf("%s: %w: %s", op, ErrTableMissing, pgErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid {
		val := value.String
		return &val
	}
	return nil
}

func nullFloatToPtr(value sql.NullFloat64) *float64 {
	if value.Valid {
		val := value.Float64
		return &val
	}
	return nil
}

func nullIntToPtr(value sql.NullInt64) *int {
	if value.Valid {
		cast := int(value.Int64)
		return &cast
	}
	return nil
}

func stringOrNil(value *string) any {
	if value == nil {
		return nil
	}
	if *value == "" {
		return nil
	}
	return *value
}
