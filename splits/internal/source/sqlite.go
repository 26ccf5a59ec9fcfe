package source

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/subsplits/subsplits/pkg/types"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// SQLiteSource serves a run stored in a SQLite database. Times are stored
// as nanoseconds; NULL is unknown.
type SQLiteSource struct {
	db  *sql.DB
	run string

	mu       sync.Mutex
	live     *types.Live
	revision int64
}

// OpenSQLite opens (creating if needed) the database at path. run names the
// run Snapshot serves; it may be empty when the database is only imported
// into.
func OpenSQLite(path, run string) (*SQLiteSource, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("source: create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("source: open sqlite: %w", err)
	}
	// One connection keeps imports and reads serialized on the file.
	db.SetMaxOpenConns(1)
	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("source: migrate: %w", err)
	}
	return &SQLiteSource{db: db, run: run}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return err
	}
	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), -1) FROM schema_version`).Scan(&current); err != nil {
		return err
	}
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}
	for i := current + 1; i < len(entries); i++ {
		ddl, err := schemaFS.ReadFile("schema/" + entries[i].Name())
		if err != nil {
			return fmt.Errorf("read migration %d: %w", i, err)
		}
		if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, i); err != nil {
			return fmt.Errorf("migration %d record: %w", i, err)
		}
	}
	return nil
}

// Snapshot loads the configured run, reusing the last result while the
// stored revision is unchanged.
func (s *SQLiteSource) Snapshot(ctx context.Context) (*types.Live, error) {
	var id, revision int64
	err := s.db.QueryRowContext(ctx, `SELECT id, revision FROM runs WHERE name = ?`, s.run).Scan(&id, &revision)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrRunNotFound, s.run)
	}
	if err != nil {
		return nil, fmt.Errorf("source: query run: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live != nil && revision == s.revision {
		return s.live, nil
	}
	live, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.live, s.revision = live, revision
	slog.Debug("source: sqlite run loaded", "run", s.run, "revision", revision)
	return live, nil
}

func (s *SQLiteSource) load(ctx context.Context, id int64) (*types.Live, error) {
	run := &types.Run{}
	var comparisons, variables string
	if err := s.db.QueryRowContext(ctx, `SELECT comparisons, variables FROM runs WHERE id = ?`, id).
		Scan(&comparisons, &variables); err != nil {
		return nil, fmt.Errorf("source: load run: %w", err)
	}
	if err := json.Unmarshal([]byte(comparisons), &run.Comparisons); err != nil {
		return nil, fmt.Errorf("source: decode comparisons: %w", err)
	}
	if err := json.Unmarshal([]byte(variables), &run.Metadata); err != nil {
		return nil, fmt.Errorf("source: decode variables: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT name, icon, icon_frames, split_real, split_game, variables
FROM segments WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("source: load segments: %w", err)
	}
	for rows.Next() {
		var (
			seg        types.Segment
			icon, vars string
			frames     int
			rt, gt     sql.NullInt64
		)
		if err := rows.Scan(&seg.Name, &icon, &frames, &rt, &gt, &vars); err != nil {
			rows.Close()
			return nil, fmt.Errorf("source: scan segment: %w", err)
		}
		seg.SplitTime = times(rt, gt)
		if icon != "" {
			seg.Icon = &types.Icon{Ref: icon, Frames: frames}
		}
		if err := json.Unmarshal([]byte(vars), &seg.CustomVariables); err != nil {
			rows.Close()
			return nil, fmt.Errorf("source: decode segment variables: %w", err)
		}
		run.Segments = append(run.Segments, seg)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source: load segments: %w", err)
	}

	if err := s.loadComparisons(ctx, id, run); err != nil {
		return nil, err
	}

	var (
		doc    StateDoc
		rt, gt sql.NullInt64
	)
	err = s.db.QueryRowContext(ctx, `
SELECT phase, current_split, current_real, current_game, comparison, timing_method
FROM states WHERE run_id = ?`, id).
		Scan(&doc.Phase, &doc.CurrentSplit, &rt, &gt, &doc.Comparison, &doc.TimingMethod)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("source: load state: %w", err)
	}
	doc.CurrentTime = timesDoc(times(rt, gt))

	return doc.live(run)
}

func (s *SQLiteSource) loadComparisons(ctx context.Context, id int64, run *types.Run) error {
	rows, err := s.db.QueryContext(ctx, `
SELECT idx, comparison, real_time, game_time FROM segment_comparisons WHERE run_id = ?`, id)
	if err != nil {
		return fmt.Errorf("source: load comparisons: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			idx    int
			name   string
			rt, gt sql.NullInt64
		)
		if err := rows.Scan(&idx, &name, &rt, &gt); err != nil {
			return fmt.Errorf("source: scan comparison: %w", err)
		}
		if idx < 0 || idx >= run.Len() {
			continue
		}
		seg := &run.Segments[idx]
		if seg.Comparisons == nil {
			seg.Comparisons = make(map[string]types.Times)
		}
		seg.Comparisons[name] = times(rt, gt)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("source: load comparisons: %w", err)
	}
	return nil
}

// Import stores live under name, replacing any run with that name.
func (s *SQLiteSource) Import(ctx context.Context, name string, live *types.Live) error {
	if live == nil || live.Run == nil {
		return fmt.Errorf("source: import %q: no run", name)
	}
	comparisons, err := json.Marshal(orEmpty(live.Run.Comparisons))
	if err != nil {
		return fmt.Errorf("source: encode comparisons: %w", err)
	}
	variables, err := json.Marshal(orEmptyMap(live.Run.Metadata))
	if err != nil {
		return fmt.Errorf("source: encode variables: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("source: begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	const upsert = `
INSERT INTO runs (name, comparisons, variables, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
  comparisons=excluded.comparisons,
  variables=excluded.variables,
  revision=runs.revision + 1,
  updated_at=excluded.updated_at;
`
	if _, err := tx.ExecContext(ctx, upsert, name, string(comparisons), string(variables),
		time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("source: upsert run: %w", err)
	}
	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM runs WHERE name = ?`, name).Scan(&id); err != nil {
		return fmt.Errorf("source: run id: %w", err)
	}
	for _, table := range []string{"segments", "segment_comparisons", "states"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE run_id = ?`, id); err != nil {
			return fmt.Errorf("source: clear %s: %w", table, err)
		}
	}

	for i, seg := range live.Run.Segments {
		vars, err := json.Marshal(orEmptyMap(seg.CustomVariables))
		if err != nil {
			return fmt.Errorf("source: encode segment variables: %w", err)
		}
		var icon string
		var frames int
		if seg.Icon != nil {
			icon, frames = seg.Icon.Ref, seg.Icon.Frames
		}
		rt, gt := nullable(seg.SplitTime)
		if _, err := tx.ExecContext(ctx, `
INSERT INTO segments (run_id, idx, name, icon, icon_frames, split_real, split_game, variables)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, id, i, seg.Name, icon, frames, rt, gt, string(vars)); err != nil {
			return fmt.Errorf("source: insert segment %d: %w", i, err)
		}
		for cmp, t := range seg.Comparisons {
			rt, gt := nullable(t)
			if _, err := tx.ExecContext(ctx, `
INSERT INTO segment_comparisons (run_id, idx, comparison, real_time, game_time)
VALUES (?, ?, ?, ?, ?)`, id, i, cmp, rt, gt); err != nil {
				return fmt.Errorf("source: insert comparison %q of segment %d: %w", cmp, i, err)
			}
		}
	}

	state := DocumentOf(live).State
	rt, gt := nullable(live.CurrentTime)
	if _, err := tx.ExecContext(ctx, `
INSERT INTO states (run_id, phase, current_split, current_real, current_game, comparison, timing_method)
VALUES (?, ?, ?, ?, ?, ?, ?)`, id, state.Phase, state.CurrentSplit, rt, gt, state.Comparison, state.TimingMethod); err != nil {
		return fmt.Errorf("source: insert state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("source: commit import: %w", err)
	}
	slog.Info("source: run imported", "run", name, "segments", live.Run.Len())
	return nil
}

// Runs lists stored run names in name order.
func (s *SQLiteSource) Runs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM runs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("source: list runs: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("source: scan run: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *SQLiteSource) Close() error { return s.db.Close() }

func times(rt, gt sql.NullInt64) types.Times {
	var t types.Times
	if rt.Valid {
		t[types.RealTime] = types.Known(time.Duration(rt.Int64))
	}
	if gt.Valid {
		t[types.GameTime] = types.Known(time.Duration(gt.Int64))
	}
	return t
}

func nullable(t types.Times) (rt, gt sql.NullInt64) {
	if r := t.Get(types.RealTime); r.Known {
		rt = sql.NullInt64{Int64: int64(r.D), Valid: true}
	}
	if g := t.Get(types.GameTime); g.Known {
		gt = sql.NullInt64{Int64: int64(g.D), Valid: true}
	}
	return rt, gt
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
