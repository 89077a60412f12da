package bootstrap_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/waitlist-site/backend/internal/common/bootstrap"
	"github.com/waitlist-site/backend/internal/common/clock"
	"github.com/waitlist-site/backend/internal/common/config"
	"github.com/waitlist-site/backend/internal/common/crypto"
	"github.com/waitlist-site/backend/internal/common/logger"
)

const adminSecret = "secret"

type site struct {
	handler http.Handler
	users   *memoryUsers
	visits  *memoryVisits
	news    *memoryNews
	clock   *clock.MockClock
}

func newSite(t *testing.T) *site {
	t.Helper()

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>waitlist</h1>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	log, _ := logger.New("", "test", "error")
	s := &site{
		users:  &memoryUsers{},
		visits: &memoryVisits{},
		news:   &memoryNews{},
		clock:  clock.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
	cfg := config.SiteConfig{
		RequestTimeout:     5 * time.Second,
		StaticDir:          staticDir,
		CORSAllowedOrigins: []string{"*"},
	}
	s.handler = bootstrap.NewHandler(cfg, log, bootstrap.Deps{
		Stores: bootstrap.Stores{Users: s.users, Visits: s.visits, News: s.news},
		Secret: crypto.NewPlainSecret(adminSecret),
		IDs:    crypto.NewUUIDGenerator(),
		Clock:  s.clock,
	})
	return s
}

func (s *site) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestSite_LaunchScenario(t *testing.T) {
	s := newSite(t)

	rec := s.do(t, http.MethodPost, "/api/admin/news", `{"password":"secret","title":"Launch","content":"We shipped."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[map[string]bool](t, rec); !got["success"] {
		t.Errorf("expected success true, got %v", got)
	}

	rec = s.do(t, http.MethodGet, "/api/news", "")
	posts := decode[[]map[string]any](t, rec)
	if len(posts) == 0 {
		t.Fatal("expected at least one post")
	}
	if posts[0]["title"] != "Launch" || posts[0]["content"] != "We shipped." {
		t.Errorf("unexpected first post: %v", posts[0])
	}
}

func TestSite_SignupAndList(t *testing.T) {
	s := newSite(t)

	if rec := s.do(t, http.MethodPost, "/api/users", `{"email":"a@x.io"}`); rec.Code != http.StatusOK {
		t.Fatalf("signup a: expected 200, got %d", rec.Code)
	}
	s.clock.Advance(time.Second)
	if rec := s.do(t, http.MethodPost, "/api/users", `{"email":"b@x.io"}`); rec.Code != http.StatusOK {
		t.Fatalf("signup b: expected 200, got %d", rec.Code)
	}

	rec := s.do(t, http.MethodPost, "/api/users", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing email, got %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec); got["error"] != "Email required" {
		t.Errorf("expected 'Email required', got %v", got)
	}
	if len(s.users.users) != 2 {
		t.Fatalf("expected 2 stored users, got %d", len(s.users.users))
	}

	rec = s.do(t, http.MethodPost, "/api/admin/users", `{"password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	users := decode[[]map[string]any](t, rec)
	if len(users) != 2 || users[0]["email"] != "b@x.io" || users[1]["email"] != "a@x.io" {
		t.Errorf("expected [b, a], got %v", users)
	}
}

func TestSite_AdminEndpointsRejectWrongSecret(t *testing.T) {
	paths := []string{"/api/admin/users", "/api/admin/visits", "/api/admin/news", "/api/admin/login"}
	secrets := []string{
		`{"password":"wrong"}`,
		`{"password":""}`,
		`{}`,
		``,
		`{"password":123}`,
		`{"password":true}`,
		`{"password":["secret"]}`,
		`{"password":null}`,
		`{"password":["secret"],"title":"T","content":"C"}`,
	}

	for _, path := range paths {
		for _, body := range secrets {
			t.Run(path+" "+body, func(t *testing.T) {
				s := newSite(t)
				rec := s.do(t, http.MethodPost, path, body)
				if rec.Code != http.StatusUnauthorized {
					t.Fatalf("expected 401, got %d", rec.Code)
				}
				if got := decode[map[string]string](t, rec); got["error"] != "Unauthorized" {
					t.Errorf("expected 'Unauthorized', got %v", got)
				}
				if len(s.news.posts) != 0 || s.visits.counter != nil {
					t.Error("expected no mutation")
				}
			})
		}
	}
}

func TestSite_AdminGateRunsBeforeValidation(t *testing.T) {
	s := newSite(t)

	rec := s.do(t, http.MethodPost, "/api/admin/news", `{"password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/api/admin/news", `{"password":"secret","title":"only"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if len(s.news.posts) != 0 {
		t.Errorf("expected no posts stored, got %d", len(s.news.posts))
	}
}

func TestSite_AdminLogin(t *testing.T) {
	s := newSite(t)

	rec := s.do(t, http.MethodPost, "/api/admin/login", `{"password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decode[map[string]bool](t, rec); !got["success"] {
		t.Errorf("expected success true, got %v", got)
	}
}

func TestSite_VisitCounter(t *testing.T) {
	s := newSite(t)

	rec := s.do(t, http.MethodPost, "/api/admin/visits", `{"password":"secret"}`)
	if got := decode[map[string]int64](t, rec); got["count"] != 0 {
		t.Errorf("expected count 0 before any visit, got %v", got)
	}
	if s.visits.counter != nil {
		t.Fatal("expected admin read not to create the counter")
	}

	for want := int64(1); want <= 5; want++ {
		rec := s.do(t, http.MethodPost, "/api/visit", "")
		if got := decode[map[string]int64](t, rec); got["count"] != want {
			t.Errorf("visit %d: expected count %d, got %v", want, want, got)
		}
	}

	rec = s.do(t, http.MethodPost, "/api/admin/visits", `{"password":"secret"}`)
	if got := decode[map[string]int64](t, rec); got["count"] != 5 {
		t.Errorf("expected count 5, got %v", got)
	}
}

func TestSite_NewsNewestFirst(t *testing.T) {
	s := newSite(t)

	s.do(t, http.MethodPost, "/api/admin/news", `{"password":"secret","title":"A","content":"first"}`)
	s.do(t, http.MethodPost, "/api/admin/news", `{"password":"secret","title":"B","content":"second"}`)

	posts := decode[[]map[string]any](t, s.do(t, http.MethodGet, "/api/news", ""))
	if len(posts) != 2 || posts[0]["title"] != "B" || posts[1]["title"] != "A" {
		t.Errorf("expected [B, A], got %v", posts)
	}
}

func TestSite_StaticAndFallbacks(t *testing.T) {
	s := newSite(t)

	rec := s.do(t, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "waitlist") {
		t.Errorf("expected index.html, got %d %q", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/unknown", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown api path, got %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec); got["code"] != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %v", got)
	}

	rec = s.do(t, http.MethodGet, "/api/users", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected health 200, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "site_http_requests_total") {
		t.Errorf("expected metrics exposition, got %d", rec.Code)
	}
}

func TestSite_ContentSecurityPolicyScopedToAPI(t *testing.T) {
	s := newSite(t)

	rec := s.do(t, http.MethodGet, "/", "")
	if got := rec.Header().Get("Content-Security-Policy"); got != "" {
		t.Errorf("expected no csp on static page, got %q", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff on static page, got %q", got)
	}

	rec = s.do(t, http.MethodGet, "/api/news", "")
	if got := rec.Header().Get("Content-Security-Policy"); !strings.Contains(got, "default-src 'self'") {
		t.Errorf("expected csp on api response, got %q", got)
	}
}

func TestSite_TraceIDEchoed(t *testing.T) {
	s := newSite(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"nope"}`))
	req.Header.Set("X-Trace-ID", "trace-123")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Trace-ID"); got != "trace-123" {
		t.Errorf("expected trace header echoed, got %q", got)
	}
	if got := decode[map[string]string](t, rec); got["trace_id"] != "trace-123" {
		t.Errorf("expected trace_id in body, got %v", got)
	}
}

func TestSecretFromConfig(t *testing.T) {
	hash, err := crypto.HashSecret("hashed")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	plain := bootstrap.SecretFromConfig(config.SiteConfig{AdminPassword: "plain"})
	if !plain.Matches("plain") {
		t.Error("expected plain secret to match")
	}

	preferHash := bootstrap.SecretFromConfig(config.SiteConfig{AdminPassword: "plain", AdminPasswordHash: hash})
	if preferHash.Matches("plain") {
		t.Error("expected hash to take precedence over plaintext")
	}
	if !preferHash.Matches("hashed") {
		t.Error("expected hashed secret to match")
	}
}
