package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/waitlist-site/backend/internal/common/constants"
)

func TestDecodeJSON_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	v := struct {
		Email string `json:"email"`
	}{Email: "unchanged"}

	if err := DecodeJSON(req, &v); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if v.Email != "unchanged" {
		t.Errorf("expected value untouched, got %q", v.Email)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	var v map[string]any
	if err := DecodeJSON(req, &v); err == nil {
		t.Error("expected error for malformed body")
	}
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"success":true}` {
		t.Errorf("unexpected body %s", got)
	}
}

func TestWithTimeout_SetsDeadline(t *testing.T) {
	var deadline time.Time
	var ok bool
	h := WithTimeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !ok {
		t.Fatal("expected a deadline")
	}
	if time.Until(deadline) > time.Second {
		t.Errorf("expected deadline within 1s, got %v", time.Until(deadline))
	}
}

func TestTraceIDMiddleware(t *testing.T) {
	var seen string
	h := TraceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "abc" || rec.Header().Get("X-Trace-ID") != "abc" {
		t.Errorf("expected incoming trace id to be kept, got ctx=%q header=%q", seen, rec.Header().Get("X-Trace-ID"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || seen == "abc" {
		t.Errorf("expected a generated trace id, got %q", seen)
	}
}

func TestTraceIDFromContext_Missing(t *testing.T) {
	if got := TraceIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty trace id, got %q", got)
	}
	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "x")
	if got := TraceIDFromContext(ctx); got != "x" {
		t.Errorf("expected x, got %q", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(nopLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}

func TestMaxRequestSizeMiddleware_DeclaredLength(t *testing.T) {
	called := false
	h := MaxRequestSizeMiddleware(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long")))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status 413, got %d", rec.Code)
	}
	if called {
		t.Error("expected handler not to run")
	}
}

func TestContentSecurityPolicyMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	testCases := []struct {
		name string
		csp  string
		path string
		want string
	}{
		{name: "api default", path: "/api/news", want: defaultContentSecurityPolicy},
		{name: "api custom", csp: "default-src 'none'", path: "/api/users", want: "default-src 'none'"},
		{name: "static", path: "/index.html", want: ""},
		{name: "root", csp: "default-src 'none'", path: "/", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ContentSecurityPolicyMiddleware(tc.csp, "/api/")(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if got := rec.Header().Get("Content-Security-Policy"); got != tc.want {
				t.Errorf("expected csp %q, got %q", tc.want, got)
			}
		})
	}
}
