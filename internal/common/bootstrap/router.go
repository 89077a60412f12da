package bootstrap

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminhttp "github.com/waitlist-site/backend/internal/admin/http"
	adminservice "github.com/waitlist-site/backend/internal/admin/service"
	"github.com/waitlist-site/backend/internal/common/clock"
	"github.com/waitlist-site/backend/internal/common/config"
	"github.com/waitlist-site/backend/internal/common/constants"
	"github.com/waitlist-site/backend/internal/common/crypto"
	commonhttp "github.com/waitlist-site/backend/internal/common/http"
	"github.com/waitlist-site/backend/internal/common/logger"
	newshttp "github.com/waitlist-site/backend/internal/news/http"
	newsservice "github.com/waitlist-site/backend/internal/news/service"
	userhttp "github.com/waitlist-site/backend/internal/user/http"
	userservice "github.com/waitlist-site/backend/internal/user/service"
	visithttp "github.com/waitlist-site/backend/internal/visit/http"
	visitservice "github.com/waitlist-site/backend/internal/visit/service"
)

type Deps struct {
	Stores Stores
	Secret crypto.SecretMatcher
	IDs    crypto.IDGenerator
	Clock  clock.Clock
}

// NewHandler wires services over the given stores and returns the full
// middleware-wrapped handler tree.
func NewHandler(cfg config.SiteConfig, log *logger.Logger, deps Deps) http.Handler {
	admin := adminhttp.NewHandler(adminservice.NewGate(deps.Secret, log), log)
	users := userhttp.NewHandler(userservice.NewUserService(deps.Stores.Users, deps.IDs, deps.Clock, log), log)
	visits := visithttp.NewHandler(visitservice.NewVisitService(deps.Stores.Visits, log), log)
	news := newshttp.NewHandler(newsservice.NewNewsService(deps.Stores.News, deps.IDs, deps.Clock, log), log)

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Get("/health", commonhttp.HealthHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(commonhttp.WithTimeout(timeout))
		admin.Register(r)
		users.Register(r, admin.RequireAdmin)
		visits.Register(r, admin.RequireAdmin)
		news.Register(r, admin.RequireAdmin)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", commonhttp.TraceIDFromContext(r.Context()))
	})
	r.NotFound(notFound(staticFiles(cfg.StaticDir, log)))

	return commonhttp.BuildBaseHandler(log, cfg.CORSAllowedOrigins, cfg.ContentSecurityPolicy, r)
}

func staticFiles(dir string, log *logger.Logger) http.Handler {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Infof("static directory %q not found, serving API only", dir)
		return nil
	}
	log.Infof("serving static files from %s", dir)
	return http.FileServer(http.Dir(dir))
}

// notFound hands unmatched GET and HEAD requests outside /api/ to the static
// file server when one is configured.
func notFound(static http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isRead := r.Method == http.MethodGet || r.Method == http.MethodHead
		if static != nil && isRead && !strings.HasPrefix(r.URL.Path, "/api/") {
			static.ServeHTTP(w, r)
			return
		}
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeNotFound, "not found", commonhttp.TraceIDFromContext(r.Context()))
	}
}
