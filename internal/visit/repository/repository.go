package repository

import (
	"context"
	"errors"

	"github.com/waitlist-site/backend/internal/visit/domain"
)

type Repository interface {
	// Increment adds one to the counter, creating it at 1 if absent, and
	// returns the new value in a single atomic store operation.
	Increment(ctx context.Context) (int64, error)
	Get(ctx context.Context) (domain.Counter, error)
}

var ErrCounterNotFound = errors.New("visit counter not found")
