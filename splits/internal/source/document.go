package source

import (
	"fmt"

	"github.com/subsplits/subsplits/pkg/types"
)

// Document is a run together with the timer's state.
type Document struct {
	Run   RunDoc   `yaml:"run" json:"run"`
	State StateDoc `yaml:"state" json:"state"`
}

// RunDoc is the run half of a Document.
type RunDoc struct {
	Name        string            `yaml:"name,omitempty" json:"name,omitempty"`
	Comparisons []string          `yaml:"comparisons" json:"comparisons"`
	Metadata    map[string]string `yaml:"variables,omitempty" json:"variables,omitempty"`
	Segments    []SegmentDoc      `yaml:"segments" json:"segments"`
}

// SegmentDoc is one segment.
type SegmentDoc struct {
	Name        string              `yaml:"name" json:"name"`
	Icon        string              `yaml:"icon,omitempty" json:"icon,omitempty"`
	IconFrames  int                 `yaml:"icon_frames,omitempty" json:"icon_frames,omitempty"`
	Split       TimesDoc            `yaml:"split,omitempty" json:"split"`
	Comparisons map[string]TimesDoc `yaml:"comparisons,omitempty" json:"comparisons,omitempty"`
	Variables   map[string]string   `yaml:"variables,omitempty" json:"variables,omitempty"`
}

// TimesDoc holds one time per timing method.
type TimesDoc struct {
	Real Clock `yaml:"real,omitempty" json:"real"`
	Game Clock `yaml:"game,omitempty" json:"game"`
}

// IsZero reports that neither time is known.
func (t TimesDoc) IsZero() bool { return t.Real.IsZero() && t.Game.IsZero() }

// StateDoc is the timer half of a Document.
type StateDoc struct {
	// Phase is one of: not_running | running | paused | ended.
	Phase        string   `yaml:"phase" json:"phase"`
	CurrentSplit int      `yaml:"current_split" json:"current_split"`
	CurrentTime  TimesDoc `yaml:"current_time" json:"current_time"`
	Comparison   string   `yaml:"comparison" json:"comparison"`
	// TimingMethod is one of: real | game.
	TimingMethod string `yaml:"timing_method" json:"timing_method"`
}

var phases = map[string]types.Phase{
	"":            types.NotRunning,
	"not_running": types.NotRunning,
	"running":     types.Running,
	"paused":      types.Paused,
	"ended":       types.Ended,
}

func (t TimesDoc) times() types.Times {
	return types.Times{types.RealTime: t.Real.T, types.GameTime: t.Game.T}
}

func timesDoc(t types.Times) TimesDoc {
	return TimesDoc{Real: ClockOf(t.Get(types.RealTime)), Game: ClockOf(t.Get(types.GameTime))}
}

// Live converts the document into a live state.
func (d *Document) Live() (*types.Live, error) {
	run := &types.Run{
		Comparisons: d.Run.Comparisons,
		Metadata:    d.Run.Metadata,
		Segments:    make([]types.Segment, len(d.Run.Segments)),
	}
	for i, s := range d.Run.Segments {
		seg := types.Segment{
			Name:            s.Name,
			SplitTime:       s.Split.times(),
			CustomVariables: s.Variables,
		}
		if len(s.Comparisons) > 0 {
			seg.Comparisons = make(map[string]types.Times, len(s.Comparisons))
			for name, t := range s.Comparisons {
				seg.Comparisons[name] = t.times()
			}
		}
		if s.Icon != "" {
			seg.Icon = &types.Icon{Ref: s.Icon, Frames: s.IconFrames}
		}
		run.Segments[i] = seg
	}
	return d.State.live(run)
}

// live validates the timer state against run.
func (st StateDoc) live(run *types.Run) (*types.Live, error) {
	phase, ok := phases[st.Phase]
	if !ok {
		return nil, fmt.Errorf("source: unknown phase %q", st.Phase)
	}
	var method types.TimingMethod
	switch st.TimingMethod {
	case "", "real":
		method = types.RealTime
	case "game":
		method = types.GameTime
	default:
		return nil, fmt.Errorf("source: unknown timing method %q", st.TimingMethod)
	}

	current := st.CurrentSplit
	switch phase {
	case types.NotRunning:
		current = -1
	case types.Ended:
		current = run.Len()
	default:
		if current < 0 || current >= run.Len() {
			return nil, fmt.Errorf("source: current split %d outside run of %d segments", current, run.Len())
		}
	}

	comparison := st.Comparison
	if comparison == "" && len(run.Comparisons) > 0 {
		comparison = run.Comparisons[0]
	}
	return &types.Live{
		Phase:               phase,
		CurrentSplitIndex:   current,
		CurrentTime:         st.CurrentTime.times(),
		CurrentComparison:   comparison,
		CurrentTimingMethod: method,
		Run:                 run,
	}, nil
}

// DocumentOf converts a live state back into a Document.
func DocumentOf(live *types.Live) *Document {
	doc := &Document{}
	if live == nil {
		return doc
	}
	for name, p := range phases {
		if p == live.Phase && name != "" {
			doc.State.Phase = name
		}
	}
	doc.State.CurrentSplit = live.CurrentSplitIndex
	doc.State.CurrentTime = timesDoc(live.CurrentTime)
	doc.State.Comparison = live.CurrentComparison
	doc.State.TimingMethod = live.CurrentTimingMethod.String()
	if live.Run == nil {
		return doc
	}
	doc.Run.Comparisons = live.Run.Comparisons
	doc.Run.Metadata = live.Run.Metadata
	for _, s := range live.Run.Segments {
		sd := SegmentDoc{Name: s.Name, Split: timesDoc(s.SplitTime), Variables: s.CustomVariables}
		if len(s.Comparisons) > 0 {
			sd.Comparisons = make(map[string]TimesDoc, len(s.Comparisons))
			for name, t := range s.Comparisons {
				sd.Comparisons[name] = timesDoc(t)
			}
		}
		if s.Icon != nil {
			sd.Icon, sd.IconFrames = s.Icon.Ref, s.Icon.Frames
		}
		doc.Run.Segments = append(doc.Run.Segments, sd)
	}
	return doc
}
