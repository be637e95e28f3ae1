package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orderflow-io/orderflow/pkg/apperr"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// IncrementAndGet upserts the counter row and increments it in one
// statement; the RETURNING clause makes read-modify-write atomic.
func (r *Repository) IncrementAndGet(ctx context.Context, sequenceName string) (int, error) {
	var value int
	err := r.pool.QueryRow(ctx, `
		INSERT INTO counters (sequence_name, sequence_value)
		VALUES ($1, 1)
		ON CONFLICT (sequence_name)
		DO UPDATE SET sequence_value = counters.sequence_value + 1
		RETURNING sequence_value
	`, sequenceName).Scan(&value)
	if err != nil {
		r.log.Error("increment counter failed", "sequence", sequenceName, "err", err)
		return 0, apperr.NewDataAccess("CounterRepository:IncrementAndGet", err)
	}
	return value, nil
}
