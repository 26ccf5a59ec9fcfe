package compute

import (
	"log/slog"

	"github.com/subsplits/subsplits/pkg/types"
)

// clampTop keeps top within [0, i]. A top past the row is a caller bug.
func clampTop(top, i int) int {
	if top > i {
		slog.Debug("compute: section top past row, clamping", "top", top, "row", i)
		return i
	}
	if top < 0 {
		return 0
	}
	return top
}

func inRange(run *types.Run, i int) bool {
	return i >= 0 && i < run.Len()
}

// SectionTime is the time spent from the end of segment top-1 to the end of
// segment i. A row at or past the current segment is measured up to the
// timer's current time; a section that has not started yet is unknown.
func SectionTime(live *types.Live, top, i int, m types.TimingMethod) types.Time {
	run := live.Run
	if !inRange(run, i) {
		return types.Unknown()
	}
	top = clampTop(top, i)
	if top > live.CurrentSplitIndex {
		return types.Unknown()
	}

	boundary := types.Zero
	if top > 0 {
		boundary = run.Segments[top-1].SplitTime.Get(m)
	}
	if i < live.CurrentSplitIndex {
		return run.Segments[i].SplitTime.Get(m).Sub(boundary)
	}
	return live.CurrentTime.Get(m).Sub(boundary)
}

// SectionComparison is the comparison's target time for the same section.
func SectionComparison(run *types.Run, top, i int, comparison string, m types.TimingMethod) types.Time {
	if !inRange(run, i) {
		return types.Unknown()
	}
	top = clampTop(top, i)

	boundary := types.Zero
	if top > 0 {
		boundary = run.Segments[top-1].Comparison(comparison, m)
	}
	return run.Segments[i].Comparison(comparison, m).Sub(boundary)
}

// SectionDelta is SectionTime minus SectionComparison.
func SectionDelta(live *types.Live, top, i int, comparison string, m types.TimingMethod) types.Time {
	return SectionTime(live, top, i, m).Sub(SectionComparison(live.Run, top, i, comparison, m))
}
