package routing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-autowire/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── Routes ───────────────────────────────────────────────────────────────────

func TestRouter_Get(t *testing.T) {
	r := routing.New(zap.NewNop())
	r.Get("/hello", okHandler)

	rr := do(t, r, http.MethodGet, "/hello")
	if rr.Code != http.StatusOK {
		t.Errorf("GET /hello: got %d want 200", rr.Code)
	}

	rr = do(t, r, http.MethodPost, "/hello")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /hello: got %d want 405", rr.Code)
	}
}

func TestRouter_NotFound(t *testing.T) {
	r := routing.New(nil)
	rr := do(t, r, http.MethodGet, "/not-registered")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestRouter_Param(t *testing.T) {
	r := routing.New(nil)
	r.Get("/types/{type}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(routing.Param(req, "type")))
	})

	rr := do(t, r, http.MethodGet, "/types/.app.mailer")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	if rr.Body.String() != ".app.mailer" {
		t.Errorf("got body %q want %q", rr.Body.String(), ".app.mailer")
	}
}

func TestRouter_Prefix(t *testing.T) {
	r := routing.New(nil)
	r.Prefix("/container", func(sub *routing.Router) {
		sub.Get("/types", okHandler)
	})

	rr := do(t, r, http.MethodGet, "/container/types")
	if rr.Code != http.StatusOK {
		t.Errorf("GET /container/types: got %d want 200", rr.Code)
	}

	// Root must 404
	rr2 := do(t, r, http.MethodGet, "/types")
	if rr2.Code != http.StatusNotFound {
		t.Errorf("GET /types: expected 404, got %d", rr2.Code)
	}
}

func TestRouter_Group_Middleware(t *testing.T) {
	called := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	r := routing.New(nil)
	r.Group(func(g *routing.Router) {
		g.Middleware(mw)
		g.Get("/protected", okHandler)
	})

	do(t, r, http.MethodGet, "/protected")
	if !called {
		t.Error("expected middleware to be called")
	}
}

// ── Middleware stack ─────────────────────────────────────────────────────────

func TestRouter_LogsRequests(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := routing.New(zap.New(core))
	r.Get("/ping", okHandler)

	do(t, r, http.MethodGet, "/ping")

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/ping" {
		t.Errorf("path: got %v want /ping", fields["path"])
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Errorf("status: got %v want 200", fields["status"])
	}
	if fields["request_id"] == "" {
		t.Error("request_id should be set")
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New(nil)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rr := do(t, r, http.MethodGet, "/boom")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("got %d want 500", rr.Code)
	}
}

func TestRouter_HandlerInterface(t *testing.T) {
	r := routing.New(nil)
	r.Get("/ping", okHandler)
	var _ http.Handler = r.Handler()
}
