package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/subsplits/subsplits/pkg/types"
)

// maxStateBytes bounds one timer state response.
const maxStateBytes = 4 << 20

type httpSource struct {
	endpoint string
	client   *http.Client
}

// Snapshot fetches the timer's JSON state document.
func (s *httpSource) Snapshot(ctx context.Context) (*types.Live, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("source: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Warn("source: timer fetch failed", "endpoint", s.endpoint, "err", err)
		return nil, fmt.Errorf("source: http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source: unexpected status %d from %s", resp.StatusCode, s.endpoint)
	}

	var doc Document
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxStateBytes)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("source: decode state: %w", err)
	}
	return doc.Live()
}

func (s *httpSource) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
