package compute

import (
	"github.com/subsplits/subsplits/pkg/types"
	"github.com/subsplits/subsplits/splits/internal/format"
)

// headerCells formats the time and section-timer cells of a header row
// whose section runs from top to the row's segment.
func headerCells(rc rowContext, top int, hs HeaderSettings) (timeCell, deltaCell Cell) {
	live, i, p := rc.live, rc.index, rc.palette
	comparison := resolveComparison(live, hs.Comparison)
	m := resolveMethod(live, hs.Method)
	top = clampTop(top, i)
	finished := i < live.CurrentSplitIndex

	delta := SectionDelta(live, top, i, comparison, m)
	if !finished && delta.Negative() {
		// An ahead delta is shown only once the section is finished.
		delta = types.Unknown()
	}

	timeCell.Color = classifyColor(p, types.Unknown(), delta, RoleHeaderTimes)
	switch {
	case delta.Known:
		timeCell.Text = rc.fmts.Delta.Format(delta)
	case finished:
		timeCell.Text = format.Dash
	default:
		timeCell.Text = rc.fmts.Header.Format(SectionComparison(live.Run, top, i, comparison, m))
	}

	deltaCell.Text = rc.fmts.Section.Format(SectionTime(live, top, i, m))
	if finished {
		deltaCell.Color = p.Color(RoleHeaderTimes)
	} else {
		deltaCell.Color = p.Color(RoleSectionTimer)
	}

	if !hs.Times {
		timeCell.Text = ""
	}
	if !hs.SectionTimer {
		deltaCell.Text = ""
	}
	return timeCell, deltaCell
}
