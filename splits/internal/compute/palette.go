package compute

// Role is the semantic color of a cell.
type Role string

const (
	RoleText          Role = "text"
	RoleAheadGaining  Role = "ahead_gaining"
	RoleAheadLosing   Role = "ahead_losing"
	RoleBehindGaining Role = "behind_gaining"
	RoleBehindLosing  Role = "behind_losing"
	RoleBeforeNames   Role = "before_names"
	RoleCurrentNames  Role = "current_names"
	RoleAfterNames    Role = "after_names"
	RoleBeforeTimes   Role = "before_times"
	RoleCurrentTimes  Role = "current_times"
	RoleAfterTimes    Role = "after_times"
	RoleLiveDelta     Role = "live_delta"
	RoleHeaderText    Role = "header_text"
	RoleHeaderTimes   Role = "header_times"
	RoleSectionTimer  Role = "section_timer"
)

// Color is a role together with the color it resolved to.
type Color struct {
	Role Role   `json:"role"`
	Hex  string `json:"hex"`
}

// Cell is one piece of text on a row.
type Cell struct {
	Text  string `json:"text"`
	Color Color  `json:"color"`
}

// Palette holds the configured colors. Roles whose override flag is off
// resolve to Text.
type Palette struct {
	OverrideText   bool
	OverrideTimes  bool
	OverrideDeltas bool
	OverrideHeader bool

	Text          string
	AheadGaining  string
	AheadLosing   string
	BehindGaining string
	BehindLosing  string
	BeforeNames   string
	CurrentNames  string
	AfterNames    string
	BeforeTimes   string
	CurrentTimes  string
	AfterTimes    string
	Deltas        string
	HeaderText    string
	HeaderTimes   string
	SectionTimer  string
}

// DefaultPalette returns the stock dark-layout colors.
func DefaultPalette() Palette {
	return Palette{
		Text:          "#FFFFFF",
		AheadGaining:  "#00CC36",
		AheadLosing:   "#52CC73",
		BehindGaining: "#CC5C52",
		BehindLosing:  "#CC1200",
		BeforeNames:   "#FFFFFF",
		CurrentNames:  "#FFFFFF",
		AfterNames:    "#FFFFFF",
		BeforeTimes:   "#FFFFFF",
		CurrentTimes:  "#FFFFFF",
		AfterTimes:    "#FFFFFF",
		Deltas:        "#FFFFFF",
		HeaderText:    "#FFFFFF",
		HeaderTimes:   "#FFFFFF",
		SectionTimer:  "#777777",
	}
}

// Color resolves r.
func (p Palette) Color(r Role) Color {
	return Color{Role: r, Hex: p.hex(r)}
}

func (p Palette) hex(r Role) string {
	pick := func(override bool, c string) string {
		if override {
			return c
		}
		return p.Text
	}
	switch r {
	case RoleAheadGaining:
		return p.AheadGaining
	case RoleAheadLosing:
		return p.AheadLosing
	case RoleBehindGaining:
		return p.BehindGaining
	case RoleBehindLosing:
		return p.BehindLosing
	case RoleBeforeNames:
		return pick(p.OverrideText, p.BeforeNames)
	case RoleCurrentNames:
		return pick(p.OverrideText, p.CurrentNames)
	case RoleAfterNames:
		return pick(p.OverrideText, p.AfterNames)
	case RoleBeforeTimes:
		return pick(p.OverrideTimes, p.BeforeTimes)
	case RoleCurrentTimes:
		return pick(p.OverrideTimes, p.CurrentTimes)
	case RoleAfterTimes:
		return pick(p.OverrideTimes, p.AfterTimes)
	case RoleLiveDelta:
		return pick(p.OverrideDeltas, p.Deltas)
	case RoleHeaderText:
		return pick(p.OverrideHeader, p.HeaderText)
	case RoleHeaderTimes:
		return pick(p.OverrideHeader, p.HeaderTimes)
	case RoleSectionTimer:
		return p.SectionTimer
	default:
		return p.Text
	}
}
