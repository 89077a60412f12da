package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/waitlist-site/backend/internal/common/logger"
)

//go:embed schema.sql
var schemaSQL string

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// EnsureSchemaInBackground keeps retrying until the schema is applied or ctx
// is cancelled.
func EnsureSchemaInBackground(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := EnsureSchema(ctx, pool); err != nil {
				log.Warnf("schema retry failed: %v", err)
				continue
			}
			log.Infof("database schema applied")
			return
		}
	}
}
