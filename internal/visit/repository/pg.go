package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/waitlist-site/backend/internal/common/constants"
	"github.com/waitlist-site/backend/internal/common/db"
	"github.com/waitlist-site/backend/internal/visit/domain"
)

const countersTable = "visit_counters"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Increment(ctx context.Context) (int64, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO visit_counters (id, count) VALUES ($1, 1)
		 ON CONFLICT (id) DO UPDATE SET count = visit_counters.count + 1
		 RETURNING count`,
		constants.VisitCounterID,
	)

	var count int64
	if err := db.HandleExecError(row.Scan(&count), "increment visit counter", countersTable, start); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PgRepository) Get(ctx context.Context) (domain.Counter, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, count FROM visit_counters WHERE id = $1`,
		constants.VisitCounterID,
	)

	var counter domain.Counter
	err := row.Scan(&counter.ID, &counter.Count)
	if err := db.HandleQueryError(err, ErrCounterNotFound, "get visit counter", countersTable, start); err != nil {
		return domain.Counter{}, err
	}
	return counter, nil
}
