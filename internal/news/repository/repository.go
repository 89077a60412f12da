package repository

import (
	"context"

	"github.com/waitlist-site/backend/internal/news/domain"
)

type Repository interface {
	Create(ctx context.Context, post domain.Post) error
	ListNewestFirst(ctx context.Context) ([]domain.Post, error)
}
