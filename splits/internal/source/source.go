package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/subsplits/subsplits/pkg/types"
	"github.com/subsplits/subsplits/splits/internal/config"
)

var (
	// ErrUnsupportedType is returned by New for an unknown source type.
	ErrUnsupportedType = errors.New("source: unsupported type")
	// ErrRunNotFound is returned when a stored run does not exist.
	ErrRunNotFound = errors.New("source: run not found")
)

// Source produces live state snapshots. A returned *types.Live must be
// treated as read-only by the caller.
type Source interface {
	Snapshot(ctx context.Context) (*types.Live, error)
	Close() error
}

// Watcher is implemented by sources that can push change notifications.
// Watch blocks until ctx is cancelled.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// New returns the Source for the given configuration.
func New(src config.Source) (Source, error) {
	switch src.Type {
	case "file":
		return NewFile(src.Path), nil
	case "http":
		return &httpSource{endpoint: src.Endpoint, client: buildHTTPClient(src)}, nil
	case "sqlite":
		return OpenSQLite(src.Path, src.Run)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedType, src.Type)
	}
}

// authRoundTripper injects authentication headers into every outgoing request.
type authRoundTripper struct {
	base http.RoundTripper
	auth config.AuthConfig
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	switch t.auth.Mode {
	case "apikey":
		header := t.auth.Header
		if header == "" {
			header = "X-API-Key"
		}
		req = req.Clone(req.Context())
		req.Header.Set(header, t.auth.Key())
	case "bearer":
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+t.auth.Token())
	case "basic":
		req = req.Clone(req.Context())
		req.SetBasicAuth(t.auth.Username, t.auth.Password())
	}
	return t.base.RoundTrip(req)
}

func buildHTTPClient(src config.Source) *http.Client {
	timeout := src.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &http.Client{
		Transport: &authRoundTripper{base: http.DefaultTransport, auth: src.Auth},
		Timeout:   timeout,
	}
}
