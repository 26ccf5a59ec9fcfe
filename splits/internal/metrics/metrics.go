package metrics

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Metric family names.
const (
	FramesTotal       = "splits_frames_total"
	RepaintsTotal     = "splits_repaints_total"
	RowsVisible       = "splits_rows_visible"
	TickDuration      = "splits_tick_duration_seconds"
	SourceErrorsTotal = "splits_source_errors_total"
	ClientsConnected  = "splits_ws_clients"
)

// Recorder owns a private registry so several boards (and tests) never
// collide on the default one.
type Recorder struct {
	reg *prometheus.Registry

	frames       prometheus.Counter
	repaints     prometheus.Counter
	rows         prometheus.Gauge
	tickDuration prometheus.Histogram
	sourceErrors *prometheus.CounterVec
}

// New creates a Recorder with all board metrics registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		frames: f.NewCounter(prometheus.CounterOpts{
			Name: FramesTotal,
			Help: "Row frames computed",
		}),
		repaints: f.NewCounter(prometheus.CounterOpts{
			Name: RepaintsTotal,
			Help: "Row frames that requested a redraw",
		}),
		rows: f.NewGauge(prometheus.GaugeOpts{
			Name: RowsVisible,
			Help: "Rows with a segment assigned on the last tick",
		}),
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    TickDuration,
			Help:    "Time to compute every row of one tick",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		}),
		sourceErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: SourceErrorsTotal,
			Help: "Failed source snapshots by source type",
		}, []string{"source"}),
	}
}

// ObserveTick records one board tick.
func (r *Recorder) ObserveTick(frames, repaints, rows int, d time.Duration) {
	r.frames.Add(float64(frames))
	r.repaints.Add(float64(repaints))
	r.rows.Set(float64(rows))
	r.tickDuration.Observe(d.Seconds())
}

// SourceError counts a failed snapshot from the given source type.
func (r *Recorder) SourceError(source string) {
	r.sourceErrors.WithLabelValues(source).Inc()
}

// TrackClients exposes a live client count, typically the websocket hub's.
func (r *Recorder) TrackClients(count func() int) error {
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: ClientsConnected,
		Help: "Connected websocket clients",
	}, func() float64 { return float64(count()) })
	if err := r.reg.Register(g); err != nil {
		return fmt.Errorf("metrics: register clients gauge: %w", err)
	}
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// WriteText writes every metric family as Prometheus text, sorted by name.
func (r *Recorder) WriteText(w io.Writer) error {
	mfs, err := r.reg.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	sort.Slice(mfs, func(i, j int) bool { return mfs[i].GetName() < mfs[j].GetName() })
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Stats reads the local registry back into a Summary.
func (r *Recorder) Stats() (Summary, error) {
	mfs, err := r.reg.Gather()
	if err != nil {
		return Summary{}, fmt.Errorf("metrics: gather: %w", err)
	}
	byName := make(Families, len(mfs))
	for _, mf := range mfs {
		byName[mf.GetName()] = mf
	}
	return Summarize(byName), nil
}
