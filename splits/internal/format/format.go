package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/subsplits/subsplits/pkg/types"
)

// Dash is shown in place of an unknown time.
const Dash = "-"

// minus is the typographic minus sign used for negative times.
const minus = "−"

// Accuracy is the number of decimal places shown.
type Accuracy int

const (
	Seconds Accuracy = iota
	Tenths
	Hundredths
	Milliseconds
)

// ParseAccuracy maps a config name to an Accuracy.
func ParseAccuracy(s string) (Accuracy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seconds":
		return Seconds, nil
	case "tenths":
		return Tenths, nil
	case "hundredths", "":
		return Hundredths, nil
	case "milliseconds":
		return Milliseconds, nil
	default:
		return 0, fmt.Errorf("unknown accuracy %q", s)
	}
}

func (a Accuracy) String() string {
	switch a {
	case Seconds:
		return "seconds"
	case Tenths:
		return "tenths"
	case Milliseconds:
		return "milliseconds"
	default:
		return "hundredths"
	}
}

// Formatter renders one optional time.
type Formatter interface {
	Format(t types.Time) string
}

// Options selects accuracies for every formatter a row uses.
type Options struct {
	SplitTimes   Accuracy
	Deltas       Accuracy
	Header       Accuracy
	SectionTimer Accuracy
	DropDecimals bool
}

// Set is the group of formatters built from one Options value.
type Set struct {
	Split   Formatter
	Delta   Formatter
	Header  Formatter
	Section Formatter
}

// NewSet builds the formatters for o.
func NewSet(o Options) *Set {
	return &Set{
		Split:   TimeFormatter{Accuracy: o.SplitTimes},
		Delta:   DeltaFormatter{Accuracy: o.Deltas, DropDecimals: o.DropDecimals},
		Header:  TimeFormatter{Accuracy: o.Header},
		Section: TimeFormatter{Accuracy: o.SectionTimer},
	}
}

// TimeFormatter renders an unsigned-looking time; negatives get a minus sign.
type TimeFormatter struct {
	Accuracy Accuracy
}

func (f TimeFormatter) Format(t types.Time) string {
	if !t.Known {
		return Dash
	}
	sign := ""
	d := t.D
	if d < 0 {
		sign = minus
		d = -d
	}
	return sign + clock(d, f.Accuracy, true)
}

// DeltaFormatter renders a signed delta.
type DeltaFormatter struct {
	Accuracy     Accuracy
	DropDecimals bool
}

func (f DeltaFormatter) Format(t types.Time) string {
	if !t.Known {
		return Dash
	}
	sign := "+"
	d := t.D
	if d < 0 {
		sign = minus
		d = -d
	}
	decimals := !(f.DropDecimals && d >= time.Minute)
	return sign + clock(d, f.Accuracy, decimals)
}

// clock formats a non-negative duration as h:mm:ss, m:ss or s, truncating
// to the requested accuracy.
func clock(d time.Duration, acc Accuracy, decimals bool) string {
	h := int64(d / time.Hour)
	m := int64(d % time.Hour / time.Minute)
	s := int64(d % time.Minute / time.Second)

	var b strings.Builder
	switch {
	case h > 0:
		fmt.Fprintf(&b, "%d:%02d:%02d", h, m, s)
	case m > 0:
		fmt.Fprintf(&b, "%d:%02d", m, s)
	default:
		fmt.Fprintf(&b, "%d", s)
	}
	if decimals && acc > Seconds {
		b.WriteString(fraction(d%time.Second, acc))
	}
	return b.String()
}

func fraction(rem time.Duration, acc Accuracy) string {
	switch acc {
	case Tenths:
		return fmt.Sprintf(".%01d", int64(rem/(100*time.Millisecond)))
	case Hundredths:
		return fmt.Sprintf(".%02d", int64(rem/(10*time.Millisecond)))
	default:
		return fmt.Sprintf(".%03d", int64(rem/time.Millisecond))
	}
}
