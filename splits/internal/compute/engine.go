package compute

import (
	"log/slog"
	"strconv"

	"github.com/subsplits/subsplits/pkg/types"
	"github.com/subsplits/subsplits/splits/internal/cache"
	"github.com/subsplits/subsplits/splits/internal/format"
	"github.com/subsplits/subsplits/splits/internal/naming"
)

// NoSegment marks a row, highlight or active section with nothing assigned.
const NoSegment = -1

// Row describes what one displayed row shows.
type Row struct {
	// Segment is the index of the row's segment, or NoSegment.
	Segment int
	// TopSplit is the first segment of the row's section. Used by collapsed
	// and header rows.
	TopSplit    int
	Collapsed   bool
	Header      bool
	ForceIndent bool
	Odd         bool
}

// FrameInput is everything one frame of one row is computed from.
type FrameInput struct {
	Live     *types.Live
	Row      Row
	Columns  []ColumnSpec
	Settings Settings
	// Highlight is the segment the user has selected, or NoSegment.
	Highlight int
	// ActiveSection is the segment standing in for the current section when
	// subsplits are hidden, or NoSegment.
	ActiveSection int
}

// DisplayState is the computed content of one row.
type DisplayState struct {
	Blank         bool     `json:"blank"`
	Segment       int      `json:"segment"`
	Header        bool     `json:"header"`
	Collapsed     bool     `json:"collapsed"`
	Name          Cell     `json:"name"`
	Abbreviations []string `json:"abbreviations,omitempty"`
	Columns       []Cell   `json:"columns,omitempty"`
	Time          Cell     `json:"time"`
	Delta         Cell     `json:"delta"`
	Active        bool     `json:"active"`
	Highlight     bool     `json:"highlight"`
	Subsplit      bool     `json:"subsplit"`
	Indent        bool     `json:"indent"`
	Odd           bool     `json:"odd"`
	Icon          string   `json:"icon,omitempty"`
	IconFrames    int      `json:"icon_frames,omitempty"`
}

// Engine computes frames for one displayed row and remembers what the row
// showed last frame.
//
// An Engine is not safe for concurrent use; one frame may be in flight at a
// time.
type Engine struct {
	cache    *cache.Cache
	formats  format.Options
	fmts     *format.Set
	name     string
	abbrevs  []string
	frames   int
	blankOut bool
}

// NewEngine returns an Engine for a row that has not been drawn yet.
func NewEngine() *Engine {
	return &Engine{cache: cache.New()}
}

// Frame computes the row and reports whether it must be redrawn.
//
// A row with no segment (or no run) yields a blank state; the first blank
// frame reports a change so the renderer clears the row, later ones do not.
func (e *Engine) Frame(in FrameInput) (DisplayState, bool) {
	live := in.Live
	if live == nil || !inRange(live.Run, in.Row.Segment) {
		return e.blank()
	}
	e.applyFormats(in.Settings.Formats)

	s := in.Settings
	p := s.Colors
	run := live.Run
	i := in.Row.Segment
	seg := &run.Segments[i]

	view := naming.ViewRow
	if in.Row.Collapsed || in.Row.Header {
		view = naming.ViewSection
	}
	name := naming.Resolve(seg.Name, i == run.Len()-1, view)
	e.updateAbbreviations(name.Text, s.AutomaticAbbreviation)

	active := live.Phase.InProgress() &&
		((!s.HideSubsplits && live.CurrentSplitIndex == i) || in.ActiveSection == i)

	ds := DisplayState{
		Segment:       i,
		Header:        in.Row.Header,
		Collapsed:     in.Row.Collapsed,
		Name:          Cell{Text: name.Text},
		Abbreviations: e.abbrevs,
		Active:        active,
		Highlight:     in.Highlight == i,
		Subsplit:      name.Subsplit,
		Indent:        s.IndentSubsplits && (name.Subsplit || in.Row.ForceIndent),
		Odd:           in.Row.Odd,
	}
	if seg.Icon != nil {
		ds.Icon = seg.Icon.Ref
		ds.IconFrames = seg.Icon.Frames
	}

	grouping := Flat
	if in.Row.Collapsed {
		grouping = Collapsed
	}
	rc := rowContext{
		live:     live,
		index:    i,
		active:   active,
		boundary: boundaryFor(grouping, in.Row.TopSplit),
		fmts:     e.fmts,
		palette:  p,
	}

	if in.Row.Header {
		ds.Time, ds.Delta = headerCells(rc, in.Row.TopSplit, s.Header)
		ds.Name.Color = p.Color(RoleHeaderText)
		if !s.Header.Text {
			ds.Name.Text = ""
		}
	} else {
		switch {
		case i < live.CurrentSplitIndex:
			ds.Name.Color = p.Color(RoleBeforeNames)
		case active:
			ds.Name.Color = p.Color(RoleCurrentNames)
		default:
			ds.Name.Color = p.Color(RoleAfterNames)
		}
		ds.Columns = make([]Cell, len(in.Columns))
		for idx, col := range in.Columns {
			ds.Columns[idx] = formatColumn(rc, col)
		}
	}

	return ds, e.record(ds, len(in.Columns), seg.Icon)
}

func (e *Engine) blank() (DisplayState, bool) {
	ds := DisplayState{Blank: true, Segment: NoSegment}
	if e.blankOut {
		return ds, false
	}
	e.blankOut = true
	return ds, true
}

// applyFormats rebuilds the formatters when the format settings changed.
func (e *Engine) applyFormats(o format.Options) {
	if e.fmts != nil && o == e.formats {
		return
	}
	if e.fmts != nil {
		slog.Debug("compute: format settings changed, rebuilding formatters",
			"split_times", o.SplitTimes, "deltas", o.Deltas, "drop_decimals", o.DropDecimals)
	}
	e.formats = o
	e.fmts = format.NewSet(o)
}

func (e *Engine) updateAbbreviations(text string, enabled bool) {
	switch {
	case !enabled:
		e.abbrevs = nil
	case text != e.name || len(e.abbrevs) == 0:
		e.abbrevs = naming.Abbreviations(text)
	}
	e.name = text
}

// record writes the visible state into the change cache. columns is the
// configured column count, which header rows track without rendering.
func (e *Engine) record(ds DisplayState, columns int, icon *types.Icon) bool {
	c := e.cache
	c.Restart()

	c.Set("Icon", ds.Icon)
	if c.Changed() {
		e.frames = 0
		if icon != nil {
			e.frames = icon.Frames
		}
	}

	c.Set("SplitName", ds.Name.Text)
	c.Set("DeltaLabel", ds.Delta.Text)
	c.Set("TimeLabel", ds.Time.Text)
	c.Set("IsActive", ds.Active)
	c.Set("IsHighlight", ds.Highlight)
	c.Set("NameColor", ds.Name.Color.Hex)
	c.Set("TimeColor", ds.Time.Color.Hex)
	c.Set("DeltaColor", ds.Delta.Color.Hex)
	c.Set("Indent", ds.Indent)
	c.Set("DisplayIcon", ds.Icon != "")
	c.Set("ColumnsCount", columns)
	for idx, col := range ds.Columns {
		n := strconv.Itoa(idx)
		c.Set("Columns"+n+"Text", col.Text)
		c.Set("Columns"+n+"Color", col.Color.Hex)
	}
	c.Set("Header", ds.Header)

	changed := c.Changed() || e.frames > 1 || e.blankOut
	e.blankOut = false
	return changed
}
