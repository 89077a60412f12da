package service

import (
	"context"
	"fmt"

	"github.com/waitlist-site/backend/internal/common/clock"
	"github.com/waitlist-site/backend/internal/common/crypto"
	commonerrors "github.com/waitlist-site/backend/internal/common/errors"
	"github.com/waitlist-site/backend/internal/common/logger"
	"github.com/waitlist-site/backend/internal/common/validation"
	newsdomain "github.com/waitlist-site/backend/internal/news/domain"
	newsrepo "github.com/waitlist-site/backend/internal/news/repository"
	"github.com/waitlist-site/backend/internal/observability/metrics"
)

type PublishInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type NewsService struct {
	repo  newsrepo.Repository
	ids   crypto.IDGenerator
	clock clock.Clock
	log   *logger.Logger
}

func NewNewsService(repo newsrepo.Repository, ids crypto.IDGenerator, clk clock.Clock, log *logger.Logger) *NewsService {
	return &NewsService{
		repo:  repo,
		ids:   ids,
		clock: clk,
		log:   log,
	}
}

func (s *NewsService) Publish(ctx context.Context, input PublishInput) (newsdomain.Post, error) {
	missing, err := validation.MissingFields(input)
	if err != nil {
		return newsdomain.Post{}, fmt.Errorf("failed to validate news post: %w", err)
	}
	if len(missing) > 0 {
		s.log.WithFields(ctx, logger.Fields{
			"missing": missing,
			"action":  "publish_news_invalid",
		}).Debug("publish news rejected: title and content required")
		return newsdomain.Post{}, commonerrors.ErrTitleContentRequired
	}

	id, err := s.ids.NewID()
	if err != nil {
		return newsdomain.Post{}, fmt.Errorf("failed to generate news post id: %w", err)
	}

	post := newsdomain.Post{
		ID:        newsdomain.ID(id),
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "publish_news_failed",
		}).Errorf("publish news failed: %v", err)
		return newsdomain.Post{}, fmt.Errorf("failed to create news post: %w", err)
	}

	metrics.NewsPostsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"post_id": id,
		"action":  "news_published",
	}).Info("news post published")

	return post, nil
}

func (s *NewsService) List(ctx context.Context) ([]newsdomain.Post, error) {
	posts, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_news_failed",
		}).Errorf("list news failed: %v", err)
		return nil, fmt.Errorf("failed to list news posts: %w", err)
	}
	return posts, nil
}
