package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/waitlist-site/backend/internal/common/logger"
	"github.com/waitlist-site/backend/internal/observability/metrics"
	visitrepo "github.com/waitlist-site/backend/internal/visit/repository"
)

type VisitService struct {
	repo visitrepo.Repository
	log  *logger.Logger
}

func NewVisitService(repo visitrepo.Repository, log *logger.Logger) *VisitService {
	return &VisitService{
		repo: repo,
		log:  log,
	}
}

// Record counts one visit and returns the total including it.
func (s *VisitService) Record(ctx context.Context) (int64, error) {
	count, err := s.repo.Increment(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "record_visit_failed",
		}).Errorf("record visit failed: %v", err)
		return 0, fmt.Errorf("failed to record visit: %w", err)
	}

	metrics.VisitsRecordedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"count":  count,
		"action": "visit_recorded",
	}).Debug("visit recorded")
	return count, nil
}

// Count reads the total without creating the counter; an absent counter is 0.
func (s *VisitService) Count(ctx context.Context) (int64, error) {
	counter, err := s.repo.Get(ctx)
	if errors.Is(err, visitrepo.ErrCounterNotFound) {
		return 0, nil
	}
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "get_visits_failed",
		}).Errorf("get visits failed: %v", err)
		return 0, fmt.Errorf("failed to get visit count: %w", err)
	}
	return counter.Count, nil
}
