package compute

import (
	"github.com/subsplits/subsplits/pkg/types"
	"github.com/subsplits/subsplits/splits/internal/format"
)

// Boundary picks the top of the section a row is measured over.
type Boundary interface {
	// Top is the section top for elapsed times and deltas of row i.
	Top(live *types.Live, i int, m types.TimingMethod) int
	// ComparisonTop is the section top for comparison targets of row i.
	ComparisonTop(live *types.Live, i int, comparison string, m types.TimingMethod) int
	// DeltaTop is the section top for segment deltas of row i.
	DeltaTop(live *types.Live, i int, comparison string, m types.TimingMethod) int
}

// flatBoundary measures a row against the nearest earlier segment that has
// a known value, so skipped splits fold into the next segment.
type flatBoundary struct{}

func (flatBoundary) Top(live *types.Live, i int, m types.TimingMethod) int {
	for j := i - 1; j >= 0; j-- {
		if live.Run.Segments[j].SplitTime.Get(m).Known {
			return j + 1
		}
	}
	return 0
}

func (flatBoundary) ComparisonTop(live *types.Live, i int, comparison string, m types.TimingMethod) int {
	for j := i - 1; j >= 0; j-- {
		if live.Run.Segments[j].Comparison(comparison, m).Known {
			return j + 1
		}
	}
	return 0
}

// DeltaTop needs both the split and the comparison known at the boundary,
// otherwise the section delta would be unknown.
func (flatBoundary) DeltaTop(live *types.Live, i int, comparison string, m types.TimingMethod) int {
	for j := i - 1; j >= 0; j-- {
		seg := &live.Run.Segments[j]
		if seg.SplitTime.Get(m).Known && seg.Comparison(comparison, m).Known {
			return j + 1
		}
	}
	return 0
}

// sectionBoundary measures a collapsed row from its configured top split.
type sectionBoundary struct{ top int }

func (b sectionBoundary) Top(_ *types.Live, i int, _ types.TimingMethod) int {
	return clampTop(b.top, i)
}

func (b sectionBoundary) ComparisonTop(_ *types.Live, i int, _ string, _ types.TimingMethod) int {
	return clampTop(b.top, i)
}

func (b sectionBoundary) DeltaTop(_ *types.Live, i int, _ string, _ types.TimingMethod) int {
	return clampTop(b.top, i)
}

// boundaryFor returns the strategy for the grouping mode.
func boundaryFor(g Grouping, top int) Boundary {
	if g == Collapsed {
		return sectionBoundary{top: top}
	}
	return flatBoundary{}
}

// Grouping is how a row aggregates segments.
type Grouping int

const (
	Flat Grouping = iota
	Collapsed
)

// rowContext is everything a column pass needs about one row.
type rowContext struct {
	live     *types.Live
	index    int
	active   bool
	boundary Boundary
	fmts     *format.Set
	palette  Palette
}

// formatColumn computes the cell of one column for the row.
func formatColumn(rc rowContext, col ColumnSpec) Cell {
	live, i := rc.live, rc.index
	seg := &live.Run.Segments[i]
	comparison := resolveComparison(live, col.Comparison)
	m := resolveMethod(live, col.Method)
	p := rc.palette

	if i < live.CurrentSplitIndex {
		return finishedCell(rc, seg, col, comparison, m)
	}

	var cell Cell
	if rc.active {
		cell.Color = p.Color(RoleCurrentTimes)
	} else {
		cell.Color = p.Color(RoleAfterTimes)
	}

	switch col.Kind {
	case SplitTime, DeltaOrSplitTime:
		cell.Text = rc.fmts.Split.Format(seg.Comparison(comparison, m))
	case SegmentTime, SegmentDeltaOrSegmentTime:
		top := rc.boundary.ComparisonTop(live, i, comparison, m)
		cell.Text = rc.fmts.Split.Format(SectionComparison(live.Run, top, i, comparison, m))
	case CustomVariable:
		if i == live.CurrentSplitIndex {
			cell.Text = live.Run.CustomVariable(col.Variable)
		}
	}

	if rc.active && col.Kind.showsDelta() {
		top := rc.boundary.DeltaTop(live, i, comparison, m)
		if d := LiveDelta(live, i, top, col.Kind.splitDelta(), comparison, m); d.Known {
			return Cell{Text: rc.fmts.Delta.Format(d), Color: p.Color(RoleLiveDelta)}
		}
	}
	if col.Kind == Delta || col.Kind == SegmentDelta {
		cell.Text = ""
	}
	return cell
}

// finishedCell formats a column for a segment that has already been split.
func finishedCell(rc rowContext, seg *types.Segment, col ColumnSpec, comparison string, m types.TimingMethod) Cell {
	live, i, p := rc.live, rc.index, rc.palette
	top := rc.boundary.Top(live, i, m)
	deltaTop := rc.boundary.DeltaTop(live, i, comparison, m)
	split := seg.SplitTime.Get(m)

	switch col.Kind {
	case SplitTime:
		return Cell{Text: rc.fmts.Split.Format(split), Color: p.Color(RoleBeforeTimes)}
	case SegmentTime:
		return Cell{Text: rc.fmts.Split.Format(SectionTime(live, top, i, m)), Color: p.Color(RoleBeforeTimes)}
	case CustomVariable:
		return Cell{Text: seg.CustomVariables[col.Variable], Color: p.Color(RoleBeforeTimes)}

	case Delta, DeltaOrSplitTime:
		delta := split.Sub(seg.Comparison(comparison, m))
		sectionDelta := SectionDelta(live, deltaTop, i, comparison, m)
		cell := Cell{Color: classifyColor(p, delta, sectionDelta, RoleBeforeTimes)}
		if col.Kind == DeltaOrSplitTime && !delta.Known {
			cell.Text = rc.fmts.Split.Format(split)
		} else {
			cell.Text = rc.fmts.Delta.Format(delta)
		}
		return cell

	default: // SegmentDelta, SegmentDeltaOrSegmentTime
		sectionDelta := SectionDelta(live, deltaTop, i, comparison, m)
		cell := Cell{Color: classifyColor(p, types.Unknown(), sectionDelta, RoleBeforeTimes)}
		if col.Kind == SegmentDeltaOrSegmentTime && !sectionDelta.Known {
			cell.Text = rc.fmts.Split.Format(SectionTime(live, top, i, m))
		} else {
			cell.Text = rc.fmts.Delta.Format(sectionDelta)
		}
		return cell
	}
}
