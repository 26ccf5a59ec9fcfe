package types

// TimingMethod selects which clock a time was measured with.
type TimingMethod int

const (
	RealTime TimingMethod = iota
	GameTime
)

func (m TimingMethod) String() string {
	if m == GameTime {
		return "game"
	}
	return "real"
}

// Times holds one optional time per timing method.
type Times [2]Time

// Get returns the time for m. Out-of-range methods are unknown.
func (t Times) Get(m TimingMethod) Time {
	if m < RealTime || m > GameTime {
		return Time{}
	}
	return t[m]
}

// Icon is an opaque reference to a segment image owned by the host.
// Frames > 1 marks an animated image.
type Icon struct {
	Ref    string
	Frames int
}

// Segment is one timed step of a run.
type Segment struct {
	Name            string
	SplitTime       Times
	Comparisons     map[string]Times
	CustomVariables map[string]string
	Icon            *Icon
}

// Comparison returns the target time of comparison name for method m.
// An unknown comparison name yields an unknown time.
func (s *Segment) Comparison(name string, m TimingMethod) Time {
	if s.Comparisons == nil {
		return Time{}
	}
	return s.Comparisons[name].Get(m)
}

// Run is the ordered sequence of segments plus its comparison names and
// run-scope metadata.
type Run struct {
	Segments    []Segment
	Comparisons []string
	Metadata    map[string]string
}

// Len returns the number of segments; a nil run has none.
func (r *Run) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Segments)
}

// HasComparison reports whether name is one of the run's comparisons.
func (r *Run) HasComparison(name string) bool {
	if r == nil {
		return false
	}
	for _, c := range r.Comparisons {
		if c == name {
			return true
		}
	}
	return false
}

// CustomVariable returns the run-scope value of a custom variable.
func (r *Run) CustomVariable(name string) string {
	if r == nil || r.Metadata == nil {
		return ""
	}
	return r.Metadata[name]
}

// Phase is the timer's run-progress phase.
type Phase int

const (
	NotRunning Phase = iota
	Running
	Paused
	Ended
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "not_running"
	}
}

// InProgress reports whether a segment is currently being timed.
func (p Phase) InProgress() bool { return p == Running || p == Paused }

// Live is the timer-owned progress state for one run attempt.
type Live struct {
	Phase               Phase
	CurrentSplitIndex   int
	CurrentTime         Times
	CurrentComparison   string
	CurrentTimingMethod TimingMethod
	Run                 *Run
}
