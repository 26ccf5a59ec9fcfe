package api

import "github.com/subsplits/subsplits/splits/internal/compute"

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status       string `json:"status"`
	Rows         int    `json:"rows"`
	Version      uint64 `json:"version"`
	Phase        string `json:"phase"`
	CurrentSplit int    `json:"current_split"`
	Comparison   string `json:"comparison,omitempty"`
	LastFrameAt  string `json:"last_frame_at,omitempty"`
	Error        string `json:"error,omitempty"`
}

// BoardStatus is what the board reports about its last tick.
type BoardStatus struct {
	Phase        string
	CurrentSplit int
	Comparison   string
	LastFrameAt  string
	Err          error
}

// RowResponse is one row frame.
type RowResponse struct {
	Row       int                  `json:"row"`
	Repaints  uint64               `json:"repaints"`
	UpdatedAt string               `json:"updated_at"`
	Frame     compute.DisplayState `json:"frame"`
}

// FramesResponse is the payload for GET /api/v1/frames and the websocket
// broadcast.
type FramesResponse struct {
	Version     uint64        `json:"version"`
	Rows        []RowResponse `json:"rows"`
	GeneratedAt string        `json:"generated_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}
