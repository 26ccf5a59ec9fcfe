package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/subsplits/subsplits/pkg/types"
	"github.com/subsplits/subsplits/splits/internal/api"
	"github.com/subsplits/subsplits/splits/internal/compute"
	"github.com/subsplits/subsplits/splits/internal/config"
	"github.com/subsplits/subsplits/splits/internal/layout"
	"github.com/subsplits/subsplits/splits/internal/metrics"
	"github.com/subsplits/subsplits/splits/internal/source"
	"github.com/subsplits/subsplits/splits/internal/store"
)

// Board computes the frames of every visible row.
type Board struct {
	src     source.Source
	srcType string
	st      *store.Store
	rec     *metrics.Recorder

	mu        sync.Mutex
	settings  compute.Settings
	columns   []compute.ColumnSpec
	opts      layout.Options
	engines   []*compute.Engine
	highlight int
	live      *types.Live
	frames    []compute.DisplayState
	status    api.BoardStatus
	listeners []func()

	wake chan struct{}
}

// New creates a Board reading from src. srcType labels source errors in
// metrics.
func New(src source.Source, srcType string, l config.Layout, st *store.Store, rec *metrics.Recorder) (*Board, error) {
	b := &Board{
		src:       src,
		srcType:   srcType,
		st:        st,
		rec:       rec,
		highlight: compute.NoSegment,
		status:    api.BoardStatus{Phase: types.NotRunning.String(), CurrentSplit: -1},
		wake:      make(chan struct{}, 1),
	}
	if err := b.Apply(l); err != nil {
		return nil, err
	}
	return b, nil
}

// Apply swaps in new layout settings. Existing engines are kept; the row
// count grows or shrinks to the new visible row count.
func (b *Board) Apply(l config.Layout) error {
	settings, err := l.Settings()
	if err != nil {
		return fmt.Errorf("board: apply layout: %w", err)
	}
	columns, err := l.ColumnSpecs()
	if err != nil {
		return fmt.Errorf("board: apply layout: %w", err)
	}
	opts := l.RowOptions()

	b.mu.Lock()
	b.settings, b.columns, b.opts = settings, columns, opts
	for len(b.engines) < opts.Visible {
		b.engines = append(b.engines, compute.NewEngine())
	}
	shrunk := len(b.engines) > opts.Visible
	if shrunk {
		b.engines = b.engines[:opts.Visible]
	}
	b.mu.Unlock()

	if shrunk {
		b.st.Truncate(opts.Visible)
	}
	b.Wake()
	return nil
}

// Rows returns the number of visible rows.
func (b *Board) Rows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.engines)
}

// SetHighlight selects segment i, or clears the selection with
// compute.NoSegment.
func (b *Board) SetHighlight(i int) {
	b.mu.Lock()
	b.highlight = i
	b.mu.Unlock()
	b.Wake()
}

// MoveHighlight moves the selection by delta segments, clamped to the run.
// With nothing selected it starts from the current segment.
func (b *Board) MoveHighlight(delta int) {
	b.mu.Lock()
	if b.live == nil || b.live.Run.Len() == 0 {
		b.mu.Unlock()
		return
	}
	n := b.live.Run.Len()
	i := b.highlight
	if i == compute.NoSegment {
		i = b.live.CurrentSplitIndex
	} else {
		i += delta
	}
	b.highlight = min(max(i, 0), n-1)
	b.mu.Unlock()
	b.Wake()
}

// Highlight returns the selected segment or compute.NoSegment.
func (b *Board) Highlight() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.highlight
}

// OnTick registers fn to be called after every successful tick.
func (b *Board) OnTick(fn func()) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

// Wake requests a tick before the next interval. It never blocks.
func (b *Board) Wake() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Status reports the outcome of the last tick.
func (b *Board) Status() api.BoardStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Frames returns the frames of the last successful tick, one per row.
func (b *Board) Frames() []compute.DisplayState {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]compute.DisplayState, len(b.frames))
	copy(out, b.frames)
	return out
}

// Tick computes one frame for every row and returns them.
//
// On a snapshot error the previous frames stay in place and the error is
// reported through Status.
func (b *Board) Tick(ctx context.Context) ([]compute.DisplayState, error) {
	start := time.Now()
	live, err := b.src.Snapshot(ctx)

	b.mu.Lock()
	if err != nil {
		b.status.Err = err
		b.mu.Unlock()
		b.rec.SourceError(b.srcType)
		return nil, fmt.Errorf("board: snapshot: %w", err)
	}

	plan := layout.Build(live, b.opts)
	frames := make([]compute.DisplayState, len(b.engines))
	repaints := 0
	for r, eng := range b.engines {
		row := compute.Row{Segment: compute.NoSegment}
		if r < len(plan.Rows) {
			row = plan.Rows[r]
		}
		ds, changed := eng.Frame(compute.FrameInput{
			Live:          live,
			Row:           row,
			Columns:       b.columns,
			Settings:      b.settings,
			Highlight:     b.highlight,
			ActiveSection: plan.ActiveSection,
		})
		b.st.Put(r, ds, changed)
		if changed {
			repaints++
		}
		frames[r] = ds
	}

	b.live = live
	b.frames = frames
	b.status = api.BoardStatus{
		Phase:        live.Phase.String(),
		CurrentSplit: live.CurrentSplitIndex,
		Comparison:   live.CurrentComparison,
		LastFrameAt:  time.Now().UTC().Format(time.RFC3339),
	}
	listeners := append([]func(){}, b.listeners...)
	rows := min(len(plan.Rows), len(b.engines))
	b.mu.Unlock()

	b.rec.ObserveTick(len(frames), repaints, rows, time.Since(start))
	if repaints > 0 {
		slog.Debug("board: rows repainted", "count", repaints, "phase", live.Phase.String())
	}
	for _, fn := range listeners {
		fn()
	}
	return frames, nil
}

// Run ticks every interval, or sooner when woken, until ctx is cancelled.
// Sources that push change notifications wake the board themselves.
func (b *Board) Run(ctx context.Context, interval time.Duration) {
	if w, ok := b.src.(source.Watcher); ok {
		go func() {
			if err := w.Watch(ctx, b.Wake); err != nil {
				slog.Warn("board: source watch stopped, polling only", "err", err)
			}
		}()
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		if _, err := b.Tick(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("board: source snapshot failed", "source", b.srcType, "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		case <-b.wake:
		}
	}
}
