package repository

import (
	"context"

	"github.com/waitlist-site/backend/internal/user/domain"
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	ListNewestFirst(ctx context.Context) ([]domain.User, error)
}
