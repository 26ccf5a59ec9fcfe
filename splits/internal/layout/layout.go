package layout

import (
	"github.com/subsplits/subsplits/pkg/types"
	"github.com/subsplits/subsplits/splits/internal/compute"
	"github.com/subsplits/subsplits/splits/internal/naming"
)

// Options controls how rows are chosen.
type Options struct {
	// Visible is the maximum number of rows returned.
	Visible int
	// Preview is the number of upcoming rows kept below the current one.
	Preview int
	// AlwaysShowLast pins the final segment to the bottom row.
	AlwaysShowLast bool
	// HideSubsplits collapses the current section too.
	HideSubsplits bool
	// ShowHeader adds a header row above the expanded current section.
	ShowHeader bool
}

// Section is a contiguous range of segments [Start, End]; End is the
// closing regular segment.
type Section struct {
	Start, End int
}

// HasSubsplits reports whether the section groups more than one segment.
func (s Section) HasSubsplits() bool { return s.End > s.Start }

// Contains reports whether segment i belongs to the section.
func (s Section) Contains(i int) bool { return i >= s.Start && i <= s.End }

// Result is the row plan for one frame.
type Result struct {
	Rows []compute.Row
	// ActiveSection is the collapsed row standing in for the current
	// section, or compute.NoSegment.
	ActiveSection int
}

// Sections groups the run's segments. The last segment always closes a
// section.
func Sections(run *types.Run) []Section {
	var out []Section
	start := 0
	for i := 0; i < run.Len(); i++ {
		if naming.IsSubsplit(run.Segments[i].Name, i == run.Len()-1) {
			continue
		}
		out = append(out, Section{Start: start, End: i})
		start = i + 1
	}
	return out
}

// Build plans the rows for the live state.
func Build(live *types.Live, opts Options) Result {
	res := Result{ActiveSection: compute.NoSegment}
	if live == nil || live.Run.Len() == 0 || opts.Visible <= 0 {
		return res
	}
	current := clamp(live.CurrentSplitIndex, 0, live.Run.Len()-1)

	var rows []compute.Row
	focus := 0
	for _, sec := range Sections(live.Run) {
		holdsCurrent := sec.Contains(current)
		switch {
		case holdsCurrent && sec.HasSubsplits() && !opts.HideSubsplits:
			if opts.ShowHeader {
				rows = append(rows, compute.Row{Segment: sec.End, TopSplit: sec.Start, Header: true})
			}
			for j := sec.Start; j <= sec.End; j++ {
				if j == current {
					focus = len(rows)
				}
				rows = append(rows, compute.Row{
					Segment:     j,
					TopSplit:    sec.Start,
					ForceIndent: opts.ShowHeader && j == sec.End,
				})
			}
		case sec.HasSubsplits():
			if holdsCurrent {
				focus = len(rows)
				if opts.HideSubsplits {
					res.ActiveSection = sec.End
				}
			}
			rows = append(rows, compute.Row{Segment: sec.End, TopSplit: sec.Start, Collapsed: true})
		default:
			if holdsCurrent {
				focus = len(rows)
				if opts.HideSubsplits {
					res.ActiveSection = sec.End
				}
			}
			rows = append(rows, compute.Row{Segment: sec.End, TopSplit: sec.Start})
		}
	}

	res.Rows = window(rows, focus, opts)
	for i := range res.Rows {
		res.Rows[i].Odd = i%2 == 1
	}
	return res
}

// window keeps at most opts.Visible rows around focus.
func window(rows []compute.Row, focus int, opts Options) []compute.Row {
	if len(rows) <= opts.Visible {
		return rows
	}
	body := rows
	avail := opts.Visible
	pinLast := opts.AlwaysShowLast && opts.Visible > 1
	if pinLast {
		body = rows[:len(rows)-1]
		avail--
	}
	start := clamp(focus+opts.Preview+1-avail, 0, len(body)-avail)

	out := make([]compute.Row, 0, opts.Visible)
	out = append(out, body[start:start+avail]...)
	if pinLast {
		out = append(out, rows[len(rows)-1])
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
