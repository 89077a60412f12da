package http

import (
	"net/http"

	"github.com/waitlist-site/backend/internal/common/constants"
	"github.com/waitlist-site/backend/internal/common/httpmetrics"
	"github.com/waitlist-site/backend/internal/common/logger"
)

func BuildBaseHandler(log *logger.Logger, corsOrigins []string, csp string, handler http.Handler) http.Handler {
	collector := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	corsMiddleware := CORSMiddleware(corsOrigins)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	cspMiddleware := ContentSecurityPolicyMiddleware(csp, "/api/")

	return SecurityHeadersMiddleware(cspMiddleware(TraceIDMiddleware(recovery(corsMiddleware(maxRequestSize(collector.Wrap(handler)))))))
}
