package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	commonhttp "github.com/waitlist-site/backend/internal/common/http"
	"github.com/waitlist-site/backend/internal/common/logger"
	newsdomain "github.com/waitlist-site/backend/internal/news/domain"
	"github.com/waitlist-site/backend/internal/news/service"
)

type postResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Handler struct {
	news *service.NewsService
	log  *logger.Logger
}

func NewHandler(news *service.NewsService, log *logger.Logger) *Handler {
	return &Handler{
		news: news,
		log:  log,
	}
}

func (h *Handler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Get("/api/news", h.list)
	r.With(requireAdmin).Post("/api/admin/news", h.publish)
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	var req service.PublishInput
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.HandleError(w, r, commonhttp.BodyError(err), h.log)
		return
	}

	if _, err := h.news.Publish(r.Context(), req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteSuccess(w)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	posts, err := h.news.List(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toResponse(p))
	}
	commonhttp.WriteJSON(w, http.StatusOK, out)
}

func toResponse(p newsdomain.Post) postResponse {
	return postResponse{
		ID:        string(p.ID),
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}
