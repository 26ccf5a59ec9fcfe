package compute

import (
	"testing"

	"github.com/subsplits/subsplits/pkg/types"
	"github.com/subsplits/subsplits/splits/internal/format"
)

var deltaAndSplit = []ColumnSpec{
	{Name: "+/-", Kind: Delta},
	{Name: "Time", Kind: SplitTime},
}

func frameInput(live *types.Live, row Row) FrameInput {
	return FrameInput{
		Live:          live,
		Row:           row,
		Columns:       deltaAndSplit,
		Settings:      DefaultSettings(),
		Highlight:     NoSegment,
		ActiveSection: NoSegment,
	}
}

func columnTexts(ds DisplayState) []string {
	out := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		out[i] = c.Text
	}
	return out
}

func TestEngine_FinishedRow(t *testing.T) {
	e := NewEngine()
	ds, changed := e.Frame(frameInput(threeSegmentLive(sec(30)), Row{Segment: 1}))
	if !changed {
		t.Error("first frame should report a change")
	}
	if ds.Name.Text != "Middle" || ds.Name.Color.Role != RoleBeforeNames {
		t.Errorf("name = %+v, want Middle in before_names", ds.Name)
	}
	got := columnTexts(ds)
	if got[0] != "−1.0" || got[1] != "24.00" {
		t.Errorf("columns = %q, want [−1.0 24.00]", got)
	}
	if ds.Columns[0].Color.Role != RoleAheadGaining {
		t.Errorf("delta role = %s, want %s", ds.Columns[0].Color.Role, RoleAheadGaining)
	}
	if ds.Active {
		t.Error("finished row should not be active")
	}

	if _, changed := e.Frame(frameInput(threeSegmentLive(sec(31)), Row{Segment: 1})); changed {
		t.Error("finished row should not change while the timer advances")
	}
}

func TestEngine_ActiveRowRedrawsOnlyWhenVisible(t *testing.T) {
	e := NewEngine()
	ds, _ := e.Frame(frameInput(threeSegmentLive(sec(30)), Row{Segment: 2}))
	if !ds.Active || ds.Name.Color.Role != RoleCurrentNames {
		t.Errorf("row 2 active = %v, name role %s", ds.Active, ds.Name.Color.Role)
	}
	if got := columnTexts(ds); got[0] != "" || got[1] != "40.00" {
		t.Errorf("columns = %q, want [\"\" 40.00]", got)
	}

	if _, changed := e.Frame(frameInput(threeSegmentLive(sec(35)), Row{Segment: 2})); changed {
		t.Error("nothing visible changed, frame should not need a redraw")
	}

	ds, changed := e.Frame(frameInput(threeSegmentLive(sec(45)), Row{Segment: 2}))
	if !changed {
		t.Error("live delta appeared, frame should need a redraw")
	}
	if ds.Columns[0].Text != "+5.0" || ds.Columns[0].Color.Role != RoleLiveDelta {
		t.Errorf("delta = %+v, want +5.0 live delta", ds.Columns[0])
	}
}

func TestEngine_BlankOut(t *testing.T) {
	e := NewEngine()
	none := Row{Segment: NoSegment}

	ds, changed := e.Frame(frameInput(threeSegmentLive(sec(30)), none))
	if !ds.Blank || !changed {
		t.Errorf("first blank frame = %+v changed=%v, want blank and changed", ds, changed)
	}
	if _, changed := e.Frame(frameInput(threeSegmentLive(sec(30)), none)); changed {
		t.Error("second blank frame should not report a change")
	}
	if _, changed := e.Frame(frameInput(threeSegmentLive(sec(30)), Row{Segment: 0})); !changed {
		t.Error("row coming back from blank should report a change")
	}
	if _, changed := e.Frame(frameInput(threeSegmentLive(sec(30)), Row{Segment: 7})); !changed {
		t.Error("out of range segment should blank the row once")
	}
	if _, changed := e.Frame(frameInput(nil, Row{Segment: 0})); changed {
		t.Error("missing live state keeps the row blank")
	}
}

func TestEngine_AnimatedIcon(t *testing.T) {
	tests := []struct {
		name        string
		frames      int
		wantChanged bool
	}{
		{"static", 1, false},
		{"animated", 4, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			live := threeSegmentLive(sec(30))
			live.Run.Segments[0].Icon = &types.Icon{Ref: "icons/start.gif", Frames: tc.frames}

			e := NewEngine()
			ds, _ := e.Frame(frameInput(live, Row{Segment: 0}))
			if ds.Icon != "icons/start.gif" || ds.IconFrames != tc.frames {
				t.Errorf("icon = %q/%d", ds.Icon, ds.IconFrames)
			}
			if _, changed := e.Frame(frameInput(live, Row{Segment: 0})); changed != tc.wantChanged {
				t.Errorf("second frame changed = %v, want %v", changed, tc.wantChanged)
			}
		})
	}
}

func TestEngine_FormatSettingsChange(t *testing.T) {
	e := NewEngine()
	in := frameInput(threeSegmentLive(sec(30)), Row{Segment: 1})
	e.Frame(in)

	in.Settings.Formats.SplitTimes = format.Seconds
	ds, changed := e.Frame(in)
	if !changed {
		t.Error("new accuracy should report a change")
	}
	if ds.Columns[1].Text != "24" {
		t.Errorf("split time = %q, want 24", ds.Columns[1].Text)
	}
}

func TestEngine_Abbreviations(t *testing.T) {
	live := threeSegmentLive(sec(30))
	live.Run.Segments[0].Name = "Hyrule Castle: Ganon Fight"

	e := NewEngine()
	in := frameInput(live, Row{Segment: 0})
	ds, _ := e.Frame(in)
	if len(ds.Abbreviations) < 2 || ds.Abbreviations[0] != "Hyrule Castle: Ganon Fight" {
		t.Errorf("abbreviations = %q", ds.Abbreviations)
	}

	in.Settings.AutomaticAbbreviation = false
	ds, _ = e.Frame(in)
	if ds.Abbreviations != nil {
		t.Errorf("abbreviations disabled, got %q", ds.Abbreviations)
	}
}

func TestEngine_Subsplits(t *testing.T) {
	live := castleLive(1, sec(25))

	ds, _ := NewEngine().Frame(frameInput(live, Row{Segment: 0}))
	if ds.Name.Text != "Door" || !ds.Subsplit || !ds.Indent {
		t.Errorf("subsplit row = %+v", ds)
	}

	in := frameInput(live, Row{Segment: 1})
	in.Settings.HideSubsplits = true
	if ds, _ := NewEngine().Frame(in); ds.Active {
		t.Error("hidden subsplit should not be the active row")
	}

	in = frameInput(live, Row{Segment: 2, TopSplit: 0, Collapsed: true})
	in.Settings.HideSubsplits = true
	in.ActiveSection = 2
	ds, _ = NewEngine().Frame(in)
	if !ds.Active || !ds.Collapsed || ds.Name.Text != "Castle" {
		t.Errorf("collapsed section row = %+v", ds)
	}

	in = frameInput(live, Row{Segment: 3, ForceIndent: true})
	if ds, _ := NewEngine().Frame(in); !ds.Indent {
		t.Error("forced indent ignored")
	}
	in.Settings.IndentSubsplits = false
	if ds, _ := NewEngine().Frame(in); ds.Indent {
		t.Error("indent applied with indentation disabled")
	}
}

func TestEngine_HeaderRow(t *testing.T) {
	in := frameInput(castleLive(1, sec(25)), Row{Segment: 2, TopSplit: 0, Header: true})
	ds, _ := NewEngine().Frame(in)
	if !ds.Header || ds.Name.Text != "Castle" || ds.Name.Color.Role != RoleHeaderText {
		t.Errorf("header row = %+v", ds)
	}
	if ds.Time.Text != "30" || ds.Delta.Text != "25.0" {
		t.Errorf("header cells = %q/%q, want 30/25.0", ds.Time.Text, ds.Delta.Text)
	}
	if len(ds.Columns) != 0 {
		t.Errorf("header row has %d columns, want none", len(ds.Columns))
	}

	in.Settings.Header.Text = false
	if ds, _ := NewEngine().Frame(in); ds.Name.Text != "" {
		t.Errorf("header text hidden, got %q", ds.Name.Text)
	}
}

func TestEngine_HeaderRowColumnChange(t *testing.T) {
	in := frameInput(castleLive(1, sec(25)), Row{Segment: 2, TopSplit: 0, Header: true})
	e := NewEngine()
	if _, changed := e.Frame(in); !changed {
		t.Fatal("first frame: changed = false, want true")
	}
	if _, changed := e.Frame(in); changed {
		t.Error("repeat frame: changed = true, want false")
	}

	in.Columns = deltaAndSplit[:1]
	if _, changed := e.Frame(in); !changed {
		t.Error("column removed on header row: changed = false, want true")
	}
}

func TestEngine_PhaseAndHighlight(t *testing.T) {
	live := threeSegmentLive(sec(0))
	live.Phase = types.NotRunning
	live.CurrentSplitIndex = 0
	for i := range live.Run.Segments {
		live.Run.Segments[i].SplitTime = types.Times{}
	}

	in := frameInput(live, Row{Segment: 0})
	in.Highlight = 0
	ds, _ := NewEngine().Frame(in)
	if ds.Active {
		t.Error("no row is active before the run starts")
	}
	if !ds.Highlight {
		t.Error("highlighted row not flagged")
	}
	if ds.Columns[0].Text != "" || ds.Columns[1].Text != "10.00" {
		t.Errorf("columns = %q, want [\"\" 10.00]", columnTexts(ds))
	}
}
