package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Families maps metric family names to their parsed values.
type Families map[string]*dto.MetricFamily

// Summary is the condensed view printed by `splits stats`.
type Summary struct {
	Frames       float64 `json:"frames"`
	Repaints     float64 `json:"repaints"`
	Rows         float64 `json:"rows"`
	Ticks        uint64  `json:"ticks"`
	MeanTick     float64 `json:"mean_tick_seconds"`
	SourceErrors float64 `json:"source_errors"`
	Clients      float64 `json:"clients"`
}

// RepaintRatio is the share of computed frames that requested a redraw.
func (s Summary) RepaintRatio() float64 {
	if s.Frames == 0 {
		return 0
	}
	return s.Repaints / s.Frames
}

// Fetch scrapes url and returns the parsed metric families.
func Fetch(ctx context.Context, client *http.Client, url string) (Families, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("metrics: build request: %w", err)
	}
	req.Header.Set("Accept", string(expfmt.NewFormat(expfmt.TypeTextPlain)))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metrics: http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metrics: unexpected status %d", resp.StatusCode)
	}
	return Parse(resp.Body)
}

// Parse decodes a Prometheus text exposition. A partial result with a parse
// warning still counts as success.
func Parse(r io.Reader) (Families, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(r)
	if err != nil && len(mfs) == 0 {
		return nil, fmt.Errorf("metrics: parse prometheus text: %w", err)
	}
	return mfs, nil
}

// Summarize condenses the board families. Missing families read as zero.
func Summarize(mfs Families) Summary {
	s := Summary{
		Frames:       sumFamily(mfs[FramesTotal]),
		Repaints:     sumFamily(mfs[RepaintsTotal]),
		Rows:         sumFamily(mfs[RowsVisible]),
		SourceErrors: sumFamily(mfs[SourceErrorsTotal]),
		Clients:      sumFamily(mfs[ClientsConnected]),
	}
	if mf := mfs[TickDuration]; mf != nil {
		for _, m := range mf.GetMetric() {
			h := m.GetHistogram()
			s.Ticks += h.GetSampleCount()
			s.MeanTick += h.GetSampleSum()
		}
		if s.Ticks > 0 {
			s.MeanTick /= float64(s.Ticks)
		}
	}
	return s
}

// sumFamily adds up all counter, gauge or untyped values in mf.
func sumFamily(mf *dto.MetricFamily) float64 {
	if mf == nil {
		return 0
	}
	var total float64
	for _, m := range mf.GetMetric() {
		switch {
		case m.Counter != nil:
			total += m.Counter.GetValue()
		case m.Gauge != nil:
			total += m.Gauge.GetValue()
		case m.Untyped != nil:
			total += m.Untyped.GetValue()
		}
	}
	return total
}
