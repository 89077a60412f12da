package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/waitlist-site/backend/internal/observability/metrics"
)

const backend = "postgres"

func HandleQueryError(err error, notFoundErr error, operation, table string, startTime time.Time) error {
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.ObserveStoreQuery(backend, operation, table, time.Since(startTime).Seconds(), nil)
		return notFoundErr
	}
	return HandleExecError(err, operation, table, startTime)
}

func HandleExecError(err error, operation, table string, startTime time.Time) error {
	metrics.ObserveStoreQuery(backend, operation, table, time.Since(startTime).Seconds(), err)

	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("failed to %s: sqlstate %s: %w", operation, pgErr.Code, err)
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}
