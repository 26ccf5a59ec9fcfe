package main

import (
	"fmt"
	"io"

	"github.com/subsplits/subsplits/splits/internal/metrics"
)

func printSummary(w io.Writer, s metrics.Summary) error {
	_, err := fmt.Fprintf(w,
		"frames:        %.0f\nrepaints:      %.0f (%.1f%%)\nrows:          %.0f\nticks:         %d\nmean tick:     %.3fms\nsource errors: %.0f\nws clients:    %.0f\n",
		s.Frames, s.Repaints, 100*s.RepaintRatio(), s.Rows, s.Ticks, s.MeanTick*1000, s.SourceErrors, s.Clients)
	return err
}
