package compute

import (
	"github.com/subsplits/subsplits/pkg/types"
	"github.com/subsplits/subsplits/splits/internal/format"
)

// CurrentComparison selects the timer's current comparison.
const CurrentComparison = "Current Comparison"

// ColumnKind is what a column shows.
type ColumnKind int

const (
	SplitTime ColumnKind = iota
	SegmentTime
	Delta
	DeltaOrSplitTime
	SegmentDelta
	SegmentDeltaOrSegmentTime
	CustomVariable
)

var columnKindNames = map[ColumnKind]string{
	SplitTime:                 "split_time",
	SegmentTime:               "segment_time",
	Delta:                     "delta",
	DeltaOrSplitTime:          "delta_or_split_time",
	SegmentDelta:              "segment_delta",
	SegmentDeltaOrSegmentTime: "segment_delta_or_segment_time",
	CustomVariable:            "custom_variable",
}

func (k ColumnKind) String() string { return columnKindNames[k] }

// ParseColumnKind maps a config name to a ColumnKind.
func ParseColumnKind(s string) (ColumnKind, bool) {
	for k, name := range columnKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// splitDelta reports whether the column's deltas are measured against the
// whole run rather than the section.
func (k ColumnKind) splitDelta() bool { return k == Delta || k == DeltaOrSplitTime }

func (k ColumnKind) showsDelta() bool {
	return k == Delta || k == DeltaOrSplitTime || k == SegmentDelta || k == SegmentDeltaOrSegmentTime
}

// MethodChoice selects the timing method of a column or header.
type MethodChoice int

const (
	MethodCurrent MethodChoice = iota
	MethodRealTime
	MethodGameTime
)

// fixedMethods is the lookup table for choices that do not follow the timer.
var fixedMethods = map[MethodChoice]types.TimingMethod{
	MethodRealTime: types.RealTime,
	MethodGameTime: types.GameTime,
}

// ParseMethodChoice maps a config name to a MethodChoice.
func ParseMethodChoice(s string) (MethodChoice, bool) {
	switch s {
	case "", "current":
		return MethodCurrent, true
	case "real":
		return MethodRealTime, true
	case "game":
		return MethodGameTime, true
	}
	return 0, false
}

// ColumnSpec configures one column.
type ColumnSpec struct {
	Name       string
	Kind       ColumnKind
	Comparison string
	Method     MethodChoice
	Variable   string
}

// HeaderSettings configures section header rows.
type HeaderSettings struct {
	Text         bool
	Times        bool
	SectionTimer bool
	Comparison   string
	Method       MethodChoice
}

// Settings is the immutable layout snapshot a frame is computed with.
type Settings struct {
	Formats               format.Options
	IndentSubsplits       bool
	HideSubsplits         bool
	AutomaticAbbreviation bool
	Header                HeaderSettings
	Colors                Palette
}

// DefaultSettings mirrors the defaults of a fresh splits layout.
func DefaultSettings() Settings {
	return Settings{
		Formats: format.Options{
			SplitTimes:   format.Hundredths,
			Deltas:       format.Tenths,
			Header:       format.Seconds,
			SectionTimer: format.Tenths,
			DropDecimals: true,
		},
		IndentSubsplits:       true,
		AutomaticAbbreviation: true,
		Header: HeaderSettings{
			Text:         true,
			Times:        true,
			SectionTimer: true,
			Comparison:   CurrentComparison,
		},
		Colors: DefaultPalette(),
	}
}

// resolveComparison applies the current-comparison sentinel and the
// fallback for names the run does not know.
func resolveComparison(live *types.Live, name string) string {
	if name == "" || name == CurrentComparison || !live.Run.HasComparison(name) {
		return live.CurrentComparison
	}
	return name
}

func resolveMethod(live *types.Live, choice MethodChoice) types.TimingMethod {
	if m, ok := fixedMethods[choice]; ok {
		return m
	}
	return live.CurrentTimingMethod
}
