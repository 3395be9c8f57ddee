package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gohttp "github.com/km-arc/go-autowire/framework/http"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newResponse(t *testing.T) (*gohttp.Response, *httptest.ResponseRecorder) {
	t.Helper()
	rr := httptest.NewRecorder()
	return gohttp.NewResponse(rr), rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&m); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	return m
}

// ── JSON ──────────────────────────────────────────────────────────────────────

func TestResponse_JSON(t *testing.T) {
	res, rr := newResponse(t)
	res.JSON(http.StatusOK, map[string]any{"key": "val"})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q want application/json", ct)
	}
	m := decodeJSON(t, rr)
	if m["key"] != "val" {
		t.Errorf("body key: got %v want val", m["key"])
	}
}

func TestResponse_Success(t *testing.T) {
	res, rr := newResponse(t)
	res.Success(map[string]any{"id": float64(1)})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	m := decodeJSON(t, rr)
	data, ok := m["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data envelope, got %T", m["data"])
	}
	if data["id"] != float64(1) {
		t.Errorf("data.id: got %v want 1", data["id"])
	}
}

// ── Error helpers ─────────────────────────────────────────────────────────────

func TestResponse_Error(t *testing.T) {
	res, rr := newResponse(t)
	res.Error(http.StatusBadRequest, "bad input")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d want 400", rr.Code)
	}
	m := decodeJSON(t, rr)
	if m["message"] != "bad input" {
		t.Errorf("message: got %v want 'bad input'", m["message"])
	}
	if _, ok := m["code"]; ok {
		t.Error("code should be omitted when empty")
	}
}

func TestResponse_Error_WithCode(t *testing.T) {
	res, rr := newResponse(t)
	res.Error(http.StatusConflict, "cycle", "DEPENDENCY_CYCLE")

	m := decodeJSON(t, rr)
	if m["code"] != "DEPENDENCY_CYCLE" {
		t.Errorf("code: got %v want DEPENDENCY_CYCLE", m["code"])
	}
}

func TestResponse_NotFound(t *testing.T) {
	res, rr := newResponse(t)
	res.NotFound()

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d want 404", rr.Code)
	}
	if m := decodeJSON(t, rr); m["message"] != "Not found." {
		t.Errorf("message: got %v", m["message"])
	}
}

func TestResponse_ServerError(t *testing.T) {
	res, rr := newResponse(t)
	res.ServerError("db down")

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d want 500", rr.Code)
	}
	if m := decodeJSON(t, rr); m["message"] != "db down" {
		t.Errorf("message: got %v want 'db down'", m["message"])
	}
}
