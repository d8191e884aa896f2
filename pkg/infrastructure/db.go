package infrastructure

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// NewPool connects to PostgreSQL. An empty DSN returns a nil pool, which the
// repository layer treats as "persistence disabled".
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, nil
	}
	return pgxpool.Connect(ctx, dsn)
}
