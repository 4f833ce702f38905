package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ninamwrites/bookstore-backend/pkg/config"
)

func TestVisitorSessionIssuesCookie(t *testing.T) {
	cfg := config.CartConfig{SessionTTL: time.Hour, CookieName: "bs_session"}

	var seen string
	handler := VisitorSession(cfg, false, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen == "" {
		t.Fatal("expected session id in context")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected uuid session id, got %q", seen)
	}

	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "bs_session" || cookies[0].Value != seen {
		t.Fatalf("expected bs_session cookie with value %s, got %+v", seen, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}
}

func TestVisitorSessionReusesExistingCookie(t *testing.T) {
	cfg := config.CartConfig{SessionTTL: time.Hour, CookieName: "bs_session"}
	existing := uuid.NewString()

	var seen string
	handler := VisitorSession(cfg, false, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "bs_session", Value: existing})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen != existing {
		t.Fatalf("expected session %s, got %s", existing, seen)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie when a valid one exists")
	}
}

func TestVisitorSessionReplacesMalformedCookie(t *testing.T) {
	cfg := config.CartConfig{SessionTTL: time.Hour, CookieName: "bs_session"}

	var seen string
	handler := VisitorSession(cfg, false, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "bs_session", Value: "not-a-uuid"})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen == "not-a-uuid" {
		t.Fatal("expected malformed session id to be replaced")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected fresh uuid session id, got %q", seen)
	}
}
