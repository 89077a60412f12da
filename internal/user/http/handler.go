package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	commonhttp "github.com/waitlist-site/backend/internal/common/http"
	"github.com/waitlist-site/backend/internal/common/logger"
	userdomain "github.com/waitlist-site/backend/internal/user/domain"
	"github.com/waitlist-site/backend/internal/user/service"
)

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Handler struct {
	users *service.UserService
	log   *logger.Logger
}

func NewHandler(users *service.UserService, log *logger.Logger) *Handler {
	return &Handler{
		users: users,
		log:   log,
	}
}

// Register mounts the public signup route and the admin listing behind
// requireAdmin.
func (h *Handler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Post("/api/users", h.signup)
	r.With(requireAdmin).Post("/api/admin/users", h.list)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupInput
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.HandleError(w, r, commonhttp.BodyError(err), h.log)
		return
	}

	if _, err := h.users.Signup(r.Context(), req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteSuccess(w)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toResponses(users))
}

func toResponses(users []userdomain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{
			ID:        string(u.ID),
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		})
	}
	return out
}
