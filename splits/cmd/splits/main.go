package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/subsplits/subsplits/splits/internal/board"
	"github.com/subsplits/subsplits/splits/internal/config"
	"github.com/subsplits/subsplits/splits/internal/metrics"
	"github.com/subsplits/subsplits/splits/internal/source"
	"github.com/subsplits/subsplits/splits/internal/store"
	"github.com/subsplits/subsplits/splits/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:           "splits",
		Short:         "Compute and serve the rows of a timed-run splits display",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "splits.yaml", "path to config file")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "info", "debug|info|warn|error")

	root.AddCommand(newRenderCmd(&f))
	root.AddCommand(newTUICmd(&f))
	root.AddCommand(newServeCmd(&f))
	root.AddCommand(newImportCmd())
	root.AddCommand(newStatsCmd(&f))
	return root
}

// app is everything one board needs, built from a config file.
type app struct {
	cfg   *config.Config
	src   source.Source
	store *store.Store
	rec   *metrics.Recorder
	board *board.Board
}

// loadApp reads the config and wires a board. runFile, when set, replaces
// the configured source with a YAML run document.
func loadApp(configPath, runFile string) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if runFile != "" {
		cfg.Source = config.Source{Type: "file", Path: runFile}
	}

	src, err := source.New(cfg.Source)
	if err != nil {
		return nil, err
	}
	st := store.New(cfg.Server.FrameTTL)
	rec := metrics.New()
	b, err := board.New(src, cfg.Source.Type, cfg.Layout, st, rec)
	if err != nil {
		src.Close()
		return nil, err
	}
	slog.Debug("board ready",
		"source", cfg.Source.Type,
		"rows", b.Rows(),
		"columns", len(cfg.Layout.Columns),
	)
	return &app{cfg: cfg, src: src, store: st, rec: rec, board: b}, nil
}

// loadConfig falls back to defaults when the config file is absent, so
// `splits render --run run.yaml` works without one.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("config file not found, using defaults", "path", path)
		return config.Defaults(), nil
	}
	return config.Load(path)
}

func (a *app) columnTitles() []string {
	titles := make([]string, len(a.cfg.Layout.Columns))
	for i, c := range a.cfg.Layout.Columns {
		titles[i] = c.Name
	}
	return titles
}

// watchConfig applies layout changes to the running board.
func (a *app) watchConfig(ctx context.Context, path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	go func() {
		err := config.Watch(ctx, path, func(updated *config.Config) {
			if err := a.board.Apply(updated.Layout); err != nil {
				slog.Error("layout reload rejected", "err", err)
				return
			}
			slog.Info("layout hot-reloaded", "rows", a.board.Rows())
		})
		if err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()
}

func newRenderCmd(f *rootFlags) *cobra.Command {
	var runFile, format string
	var highlight int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Compute one frame of every row and print it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(f.configPath, runFile)
			if err != nil {
				return err
			}
			defer a.src.Close()

			a.board.SetHighlight(highlight)
			frames, err := a.board.Tick(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(frames)
			case "text":
				_, err := fmt.Fprint(out, tui.RenderFrames(frames, a.columnTitles()))
				return err
			default:
				return fmt.Errorf("--format: unknown format %q (want json|text)", format)
			}
		},
	}
	cmd.Flags().StringVar(&runFile, "run", "", "YAML run document to render instead of the configured source")
	cmd.Flags().StringVar(&format, "format", "text", "output format: json|text")
	cmd.Flags().IntVar(&highlight, "highlight", -1, "segment index to highlight")
	return cmd
}

func newTUICmd(f *rootFlags) *cobra.Command {
	var runFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Show the splits in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(f.configPath, runFile)
			if err != nil {
				return err
			}
			defer a.src.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			a.watchConfig(ctx, f.configPath)

			m := tui.New(a.board, a.cfg.RefreshInterval, a.columnTitles())
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&runFile, "run", "", "YAML run document to show instead of the configured source")
	return cmd
}

func newImportCmd() *cobra.Command {
	var dbPath, name string

	cmd := &cobra.Command{
		Use:   "import <run.yaml>",
		Short: "Store a YAML run document in a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			live, err := source.ReadFile(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}
			db, err := source.OpenSQLite(dbPath, name)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Import(cmd.Context(), name, live); err != nil {
				return err
			}
			runs, err := db.Runs(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d segments) into %s\nstored runs: %s\n",
				name, live.Run.Len(), dbPath, strings.Join(runs, ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "splits.db", "SQLite database path")
	cmd.Flags().StringVar(&name, "name", "", "run name (defaults to the file name)")
	return cmd
}

func newStatsCmd(f *rootFlags) *cobra.Command {
	var runFile, url string
	var ticks int
	var raw bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print board metrics, locally measured or scraped from a running server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if url != "" {
				client := &http.Client{Timeout: 10 * time.Second}
				mfs, err := metrics.Fetch(cmd.Context(), client, url)
				if err != nil {
					return err
				}
				return printSummary(out, metrics.Summarize(mfs))
			}

			a, err := loadApp(f.configPath, runFile)
			if err != nil {
				return err
			}
			defer a.src.Close()
			for i := 0; i < ticks; i++ {
				if _, err := a.board.Tick(cmd.Context()); err != nil {
					return err
				}
			}
			if raw {
				return a.rec.WriteText(out)
			}
			s, err := a.rec.Stats()
			if err != nil {
				return err
			}
			return printSummary(out, s)
		},
	}
	cmd.Flags().StringVar(&runFile, "run", "", "YAML run document to measure instead of the configured source")
	cmd.Flags().StringVar(&url, "url", "", "scrape this /metrics endpoint instead of measuring locally")
	cmd.Flags().IntVar(&ticks, "ticks", 10, "ticks to run when measuring locally")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the Prometheus text exposition")
	return cmd
}
