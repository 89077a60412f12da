package mongostore

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/waitlist-site/backend/internal/observability/metrics"
)

const backend = "mongo"

func HandleQueryError(err error, notFoundErr error, operation, collection string, startTime time.Time) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		metrics.ObserveStoreQuery(backend, operation, collection, time.Since(startTime).Seconds(), nil)
		return notFoundErr
	}
	return HandleExecError(err, operation, collection, startTime)
}

func HandleExecError(err error, operation, collection string, startTime time.Time) error {
	metrics.ObserveStoreQuery(backend, operation, collection, time.Since(startTime).Seconds(), err)

	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}
