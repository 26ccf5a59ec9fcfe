package compute

import "github.com/subsplits/subsplits/pkg/types"

// Category is the ahead/behind classification of a time.
type Category int

const (
	CategoryNone Category = iota
	AheadGaining
	AheadLosing
	BehindGaining
	BehindLosing
)

var categoryRoles = map[Category]Role{
	AheadGaining:  RoleAheadGaining,
	AheadLosing:   RoleAheadLosing,
	BehindGaining: RoleBehindGaining,
	BehindLosing:  RoleBehindLosing,
}

func (c Category) String() string {
	if r, ok := categoryRoles[c]; ok {
		return string(r)
	}
	return "none"
}

// Role returns the color role for c; ok is false for CategoryNone.
func (c Category) Role() (Role, bool) {
	r, ok := categoryRoles[c]
	return r, ok
}

// Classify maps the difference to the comparison (negative = ahead) and the
// delta gained or lost over the section to a Category.
func Classify(timeDifference, delta types.Time) Category {
	if timeDifference.Known {
		if timeDifference.Negative() {
			if delta.Positive() {
				return AheadLosing
			}
			return AheadGaining
		}
		if delta.Negative() {
			return BehindGaining
		}
		return BehindLosing
	}
	if delta.Known {
		if delta.Negative() {
			return AheadGaining
		}
		return BehindLosing
	}
	return CategoryNone
}

// classifyColor resolves Classify through the palette, falling back to
// the fallback role when there is nothing to classify.
func classifyColor(p Palette, timeDifference, delta types.Time, fallback Role) Color {
	if r, ok := Classify(timeDifference, delta).Role(); ok {
		return p.Color(r)
	}
	return p.Color(fallback)
}
