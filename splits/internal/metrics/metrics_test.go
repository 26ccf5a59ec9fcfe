package metrics

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRecorder_ObserveTick(t *testing.T) {
	r := New()
	r.ObserveTick(8, 3, 6, 2*time.Millisecond)
	r.ObserveTick(8, 1, 5, 4*time.Millisecond)

	s, err := r.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.Frames != 16 {
		t.Errorf("Frames: got %v, want 16", s.Frames)
	}
	if s.Repaints != 4 {
		t.Errorf("Repaints: got %v, want 4", s.Repaints)
	}
	if s.Rows != 5 {
		t.Errorf("Rows: got %v, want 5 (gauge keeps the last tick)", s.Rows)
	}
	if s.Ticks != 2 {
		t.Errorf("Ticks: got %d, want 2", s.Ticks)
	}
	if s.MeanTick < 0.0029 || s.MeanTick > 0.0031 {
		t.Errorf("MeanTick: got %v, want ~0.003", s.MeanTick)
	}
	if got := s.RepaintRatio(); got != 0.25 {
		t.Errorf("RepaintRatio: got %v, want 0.25", got)
	}
}

func TestRecorder_SourceErrorsByLabel(t *testing.T) {
	r := New()
	r.SourceError("file")
	r.SourceError("file")
	r.SourceError("http")

	s, err := r.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.SourceErrors != 3 {
		t.Errorf("SourceErrors: got %v, want 3", s.SourceErrors)
	}
}

func TestRecorder_TrackClients(t *testing.T) {
	r := New()
	n := 2
	if err := r.TrackClients(func() int { return n }); err != nil {
		t.Fatalf("TrackClients: %v", err)
	}
	n = 4
	s, _ := r.Stats()
	if s.Clients != 4 {
		t.Errorf("Clients: got %v, want 4", s.Clients)
	}

	if err := r.TrackClients(func() int { return 0 }); err == nil {
		t.Error("second TrackClients: want duplicate registration error, got nil")
	}
}

func TestRecorder_WriteText(t *testing.T) {
	r := New()
	r.ObserveTick(2, 1, 2, time.Millisecond)

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# TYPE splits_frames_total counter",
		"splits_frames_total 2",
		"splits_repaints_total 1",
		"splits_tick_duration_seconds_count 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteText output missing %q", want)
		}
	}
	if i, j := strings.Index(out, FramesTotal), strings.Index(out, RowsVisible); i > j {
		t.Error("families not sorted by name")
	}
}

func TestParse_RoundTripsWriteText(t *testing.T) {
	r := New()
	r.ObserveTick(3, 2, 3, time.Millisecond)

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	mfs, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := Summarize(mfs)
	if s.Frames != 3 || s.Repaints != 2 || s.Ticks != 1 {
		t.Errorf("Summarize: got %+v", s)
	}
}

func TestSummarize_MissingFamilies(t *testing.T) {
	s := Summarize(Families{})
	if s != (Summary{}) {
		t.Errorf("got %+v, want zero Summary", s)
	}
	if s.RepaintRatio() != 0 {
		t.Errorf("RepaintRatio of empty summary: got %v, want 0", s.RepaintRatio())
	}
}

func TestFetch(t *testing.T) {
	r := New()
	r.ObserveTick(5, 5, 5, time.Millisecond)
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	mfs, err := Fetch(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := Summarize(mfs).Frames; got != 5 {
		t.Errorf("Frames: got %v, want 5", got)
	}
}

func TestFetch_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Error("expected error for 401, got nil")
	}
}
