package service

import (
	"context"

	"github.com/waitlist-site/backend/internal/common/crypto"
	commonerrors "github.com/waitlist-site/backend/internal/common/errors"
	"github.com/waitlist-site/backend/internal/common/logger"
	"github.com/waitlist-site/backend/internal/observability/metrics"
)

// Gate admits a request only when the supplied secret matches the
// configured admin secret. It keeps no state between calls.
type Gate struct {
	secret crypto.SecretMatcher
	log    *logger.Logger
}

func NewGate(secret crypto.SecretMatcher, log *logger.Logger) *Gate {
	return &Gate{
		secret: secret,
		log:    log,
	}
}

func (g *Gate) Check(ctx context.Context, operation, secret string) error {
	if g.secret.Matches(secret) {
		return nil
	}

	metrics.AdminAuthFailuresTotal.WithLabelValues(operation).Inc()
	g.log.WithFields(ctx, logger.Fields{
		"operation": operation,
		"empty":     secret == "",
		"action":    "admin_auth_failed",
	}).Warn("admin secret rejected")
	return commonerrors.ErrUnauthorized
}
