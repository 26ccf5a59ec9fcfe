package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/subsplits/subsplits/splits/internal/api"
	"github.com/subsplits/subsplits/splits/internal/compute"
	"github.com/subsplits/subsplits/splits/internal/store"
)

// --- test helpers -----------------------------------------------------------

func newStore(names ...string) *store.Store {
	st := store.New(5 * time.Minute)
	for i, n := range names {
		st.Put(i, compute.DisplayState{Segment: i, Name: compute.Cell{Text: n}}, true)
	}
	return st
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON: %v (body: %s)", err, rr.Body.String())
	}
}

// --- /api/v1/health ---------------------------------------------------------

func TestHealth_NoStatus(t *testing.T) {
	rr := get(t, api.New(newStore(), nil), "/api/v1/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp api.HealthResponse
	decode(t, rr, &resp)
	if resp.Status != "ok" || resp.Phase != "unknown" || resp.Rows != 0 {
		t.Errorf("health: got %+v", resp)
	}
}

func TestHealth_BoardStatus(t *testing.T) {
	status := func() api.BoardStatus {
		return api.BoardStatus{Phase: "running", CurrentSplit: 2, Comparison: "Personal Best"}
	}
	rr := get(t, api.New(newStore("A", "B"), status), "/api/v1/health")
	var resp api.HealthResponse
	decode(t, rr, &resp)

	if resp.Phase != "running" || resp.CurrentSplit != 2 || resp.Comparison != "Personal Best" {
		t.Errorf("health: got %+v", resp)
	}
	if resp.Rows != 2 {
		t.Errorf("rows: got %d, want 2", resp.Rows)
	}
}

func TestHealth_SourceError(t *testing.T) {
	status := func() api.BoardStatus { return api.BoardStatus{Err: errors.New("timer unreachable")} }
	rr := get(t, api.New(newStore(), status), "/api/v1/health")
	var resp api.HealthResponse
	decode(t, rr, &resp)
	if resp.Status != "degraded" || resp.Error != "timer unreachable" {
		t.Errorf("health: got %+v", resp)
	}
}

// --- /api/v1/frames ---------------------------------------------------------

func TestFrames_List(t *testing.T) {
	rr := get(t, api.New(newStore("Intro", "Castle", "Exit"), nil), "/api/v1/frames")
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	var resp api.FramesResponse
	decode(t, rr, &resp)

	if len(resp.Rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(resp.Rows))
	}
	if resp.Rows[1].Frame.Name.Text != "Castle" {
		t.Errorf("rows[1] name: got %q", resp.Rows[1].Frame.Name.Text)
	}
	if resp.Version != 3 {
		t.Errorf("version: got %d, want 3", resp.Version)
	}
	if resp.GeneratedAt == "" {
		t.Error("generated_at: missing")
	}
}

func TestFrames_Get(t *testing.T) {
	h := api.New(newStore("Intro", "Castle"), nil)
	tests := []struct {
		path string
		code int
	}{
		{"/api/v1/frames/1", http.StatusOK},
		{"/api/v1/frames/7", http.StatusNotFound},
		{"/api/v1/frames/boss", http.StatusBadRequest},
		{"/api/v1/frames/-1", http.StatusBadRequest},
		{"/api/v1/frames/", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if rr := get(t, h, tc.path); rr.Code != tc.code {
				t.Errorf("status: got %d, want %d", rr.Code, tc.code)
			}
		})
	}

	var row api.RowResponse
	decode(t, get(t, h, "/api/v1/frames/1"), &row)
	if row.Row != 1 || row.Frame.Name.Text != "Castle" || row.Repaints != 1 {
		t.Errorf("row: got %+v", row)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := api.New(newStore(), nil)
	for _, path := range []string{"/api/v1/health", "/api/v1/frames", "/api/v1/frames/0"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, nil))
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s: got %d, want 405", path, rr.Code)
		}
	}
}
