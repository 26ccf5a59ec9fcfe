package types

import "time"

// Time is an optional duration. The zero value is unknown.
type Time struct {
	D     time.Duration
	Known bool
}

// Zero is a known zero duration, used as the boundary before the first segment.
var Zero = Time{Known: true}

// Known wraps d as a known Time.
func Known(d time.Duration) Time { return Time{D: d, Known: true} }

// Unknown returns an absent Time.
func Unknown() Time { return Time{} }

// Ptr converts a nullable duration (as decoded from YAML/JSON) into a Time.
func Ptr(d *time.Duration) Time {
	if d == nil {
		return Time{}
	}
	return Known(*d)
}

// Sub returns t − u; unknown if either operand is unknown.
func (t Time) Sub(u Time) Time {
	if !t.Known || !u.Known {
		return Time{}
	}
	return Known(t.D - u.D)
}

// Add returns t + u; unknown if either operand is unknown.
func (t Time) Add(u Time) Time {
	if !t.Known || !u.Known {
		return Time{}
	}
	return Known(t.D + u.D)
}

// Less reports t < u. Comparisons involving an unknown operand are false.
func (t Time) Less(u Time) bool {
	return t.Known && u.Known && t.D < u.D
}

// Greater reports t > u. Comparisons involving an unknown operand are false.
func (t Time) Greater(u Time) bool {
	return t.Known && u.Known && t.D > u.D
}

// Sign returns -1, 0 or 1 for a known value and ok=false for an unknown one.
func (t Time) Sign() (sign int, ok bool) {
	if !t.Known {
		return 0, false
	}
	switch {
	case t.D < 0:
		return -1, true
	case t.D > 0:
		return 1, true
	default:
		return 0, true
	}
}

// Negative reports whether t is known and below zero.
func (t Time) Negative() bool { return t.Known && t.D < 0 }

// Positive reports whether t is known and above zero.
func (t Time) Positive() bool { return t.Known && t.D > 0 }

// Or returns t when known, otherwise fallback.
func (t Time) Or(fallback Time) Time {
	if t.Known {
		return t
	}
	return fallback
}

func (t Time) String() string {
	if !t.Known {
		return "unknown"
	}
	return t.D.String()
}
