package compute

import "github.com/subsplits/subsplits/pkg/types"

// LiveDelta estimates the delta of row i while it is being timed.
//
// It stays unknown until there is evidence of a deviation: the timer has
// passed the row's split target (split-level columns), or the section
// measured from top is already behind. Split-level columns get the delta to
// the split target; section columns get the section delta.
func LiveDelta(live *types.Live, i, top int, splitDelta bool, comparison string, m types.TimingMethod) types.Time {
	if live == nil || !live.Phase.InProgress() || !inRange(live.Run, i) {
		return types.Unknown()
	}

	target := live.Run.Segments[i].Comparison(comparison, m)
	current := live.CurrentTime.Get(m)
	sectionDelta := SectionDelta(live, top, i, comparison, m)

	if (splitDelta && current.Greater(target)) || sectionDelta.Positive() {
		if splitDelta {
			return current.Sub(target)
		}
		return sectionDelta
	}
	return types.Unknown()
}
