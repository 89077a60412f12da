package service

import (
	"context"
	"fmt"

	"github.com/waitlist-site/backend/internal/common/clock"
	"github.com/waitlist-site/backend/internal/common/crypto"
	commonerrors "github.com/waitlist-site/backend/internal/common/errors"
	"github.com/waitlist-site/backend/internal/common/logger"
	"github.com/waitlist-site/backend/internal/common/validation"
	"github.com/waitlist-site/backend/internal/observability/metrics"
	userdomain "github.com/waitlist-site/backend/internal/user/domain"
	userrepo "github.com/waitlist-site/backend/internal/user/repository"
)

type SignupInput struct {
	Email string `json:"email" validate:"required"`
}

type UserService struct {
	repo  userrepo.Repository
	ids   crypto.IDGenerator
	clock clock.Clock
	log   *logger.Logger
}

func NewUserService(repo userrepo.Repository, ids crypto.IDGenerator, clk clock.Clock, log *logger.Logger) *UserService {
	return &UserService{
		repo:  repo,
		ids:   ids,
		clock: clk,
		log:   log,
	}
}

func (s *UserService) Signup(ctx context.Context, input SignupInput) (userdomain.User, error) {
	missing, err := validation.MissingFields(input)
	if err != nil {
		return userdomain.User{}, fmt.Errorf("failed to validate signup: %w", err)
	}
	if len(missing) > 0 {
		s.log.WithFields(ctx, logger.Fields{
			"action": "signup_email_missing",
		}).Debug("signup rejected: email required")
		return userdomain.User{}, commonerrors.ErrEmailRequired
	}

	id, err := s.ids.NewID()
	if err != nil {
		return userdomain.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	user := userdomain.User{
		ID:        userdomain.ID(id),
		Email:     input.Email,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "signup_failed",
		}).Errorf("signup failed: %v", err)
		return userdomain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.SignupsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": id,
		"action":  "signup_success",
	}).Info("user signed up")

	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]userdomain.User, error) {
	users, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_users_failed",
		}).Errorf("list users failed: %v", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"count":  len(users),
		"action": "list_users",
	}).Debug("users listed")
	return users, nil
}
