package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/subsplits/subsplits/splits/internal/store"
)

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	store  *store.Store
	status func() BoardStatus
	mux    *http.ServeMux
}

// New creates a Handler reading frames from st. status may be nil.
func New(st *store.Store, status func() BoardStatus) http.Handler {
	h := &Handler{store: st, status: status, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/frames", h.listFrames)
	h.mux.HandleFunc("/api/v1/frames/", h.getFrame) // subtree, extracts {row}

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := HealthResponse{
		Status:       "ok",
		Rows:         len(h.store.List()),
		Version:      h.store.Version(),
		Phase:        "unknown",
		CurrentSplit: -1,
	}
	if h.status != nil {
		s := h.status()
		resp.Phase = s.Phase
		resp.CurrentSplit = s.CurrentSplit
		resp.Comparison = s.Comparison
		resp.LastFrameAt = s.LastFrameAt
		if s.Err != nil {
			resp.Status = "degraded"
			resp.Error = s.Err.Error()
		}
	}
	jsonResp(w, http.StatusOK, resp)
}

func (h *Handler) listFrames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, BuildFrames(h.store))
}

func (h *Handler) getFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/v1/frames/")
	if raw == "" {
		h.listFrames(w, r)
		return
	}
	row, err := strconv.Atoi(raw)
	if err != nil || row < 0 {
		jsonErr(w, http.StatusBadRequest, "row must be a non-negative integer")
		return
	}

	e, ok := h.store.Get(row)
	if !ok || !h.store.Fresh(e) {
		jsonErr(w, http.StatusNotFound, "row not found")
		return
	}
	jsonResp(w, http.StatusOK, toRowResponse(e))
}

// BuildFrames assembles the frames payload from the live store entries.
func BuildFrames(st *store.Store) FramesResponse {
	entries := st.List()
	rows := make([]RowResponse, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, toRowResponse(e))
	}
	return FramesResponse{
		Version:     st.Version(),
		Rows:        rows,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func toRowResponse(e store.Entry) RowResponse {
	return RowResponse{
		Row:       e.Row,
		Repaints:  e.Repaints,
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Frame:     e.State,
	}
}

func jsonResp(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
