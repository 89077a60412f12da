package http

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/waitlist-site/backend/internal/admin/service"
	commonhttp "github.com/waitlist-site/backend/internal/common/http"
	"github.com/waitlist-site/backend/internal/common/logger"
)

type credentials struct {
	Password json.RawMessage `json:"password"`
}

// secret returns the password when it is a JSON string. Any other value
// yields "", which never matches.
func (c credentials) secret() string {
	var s string
	if len(c.Password) == 0 || json.Unmarshal(c.Password, &s) != nil {
		return ""
	}
	return s
}

type Handler struct {
	gate *service.Gate
	log  *logger.Logger
}

func NewHandler(gate *service.Gate, log *logger.Logger) *Handler {
	return &Handler{
		gate: gate,
		log:  log,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/api/admin/login", h.login)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.HandleError(w, r, commonhttp.BodyError(err), h.log)
		return
	}

	if err := h.gate.Check(r.Context(), "login", req.secret()); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteSuccess(w)
}

// RequireAdmin checks the "password" field of the JSON body before any other
// field is looked at. The body is restored so the next handler can decode the
// rest of it.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		if err != nil {
			commonhttp.HandleError(w, r, commonhttp.BodyError(err), h.log)
			return
		}

		var req credentials
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				commonhttp.HandleError(w, r, commonhttp.BodyError(err), h.log)
				return
			}
		}

		if err := h.gate.Check(r.Context(), operationName(r.URL.Path), req.secret()); err != nil {
			commonhttp.HandleError(w, r, err, h.log)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func operationName(path string) string {
	return strings.TrimPrefix(path, "/api/admin/")
}
