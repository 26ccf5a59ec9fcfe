package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/subsplits/subsplits/pkg/types"
	"github.com/subsplits/subsplits/splits/internal/config"
)

// FileSource reads a YAML Document from disk. The parsed state is cached
// until the file's modification time changes.
type FileSource struct {
	path string

	mu      sync.Mutex
	live    *types.Live
	modTime time.Time
}

// NewFile returns a source for the YAML document at path.
func NewFile(path string) *FileSource {
	return &FileSource{path: path}
}

// Snapshot returns the document's live state, rereading the file when it
// changed.
func (s *FileSource) Snapshot(ctx context.Context) (*types.Live, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("source: stat %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live != nil && info.ModTime().Equal(s.modTime) {
		return s.live, nil
	}

	live, err := ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	s.live, s.modTime = live, info.ModTime()
	slog.Debug("source: file reloaded", "path", s.path, "segments", live.Run.Len())
	return live, nil
}

// Watch calls onChange whenever the file is written.
func (s *FileSource) Watch(ctx context.Context, onChange func()) error {
	return config.WatchFile(ctx, s.path, func() {
		s.mu.Lock()
		s.live = nil
		s.mu.Unlock()
		onChange()
	})
}

func (s *FileSource) Close() error { return nil }

// ReadFile parses the YAML document at path.
func ReadFile(path string) (*types.Live, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read file: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("source: parse yaml %s: %w", path, err)
	}
	return doc.Live()
}

// WriteFile stores live as a YAML document at path.
func WriteFile(path string, live *types.Live) error {
	data, err := yaml.Marshal(DocumentOf(live))
	if err != nil {
		return fmt.Errorf("source: encode yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("source: write file: %w", err)
	}
	return nil
}
