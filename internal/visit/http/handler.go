package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	commonhttp "github.com/waitlist-site/backend/internal/common/http"
	"github.com/waitlist-site/backend/internal/common/logger"
	"github.com/waitlist-site/backend/internal/visit/service"
)

type countResponse struct {
	Count int64 `json:"count"`
}

type Handler struct {
	visits *service.VisitService
	log    *logger.Logger
}

func NewHandler(visits *service.VisitService, log *logger.Logger) *Handler {
	return &Handler{
		visits: visits,
		log:    log,
	}
}

func (h *Handler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Post("/api/visit", h.record)
	r.With(requireAdmin).Post("/api/admin/visits", h.count)
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	count, err := h.visits.Record(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *Handler) count(w http.ResponseWriter, r *http.Request) {
	count, err := h.visits.Count(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, countResponse{Count: count})
}
