package source

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/subsplits/subsplits/pkg/types"
)

// Clock is an optional time in a Document.
type Clock struct {
	T types.Time
}

// ClockOf wraps t.
func ClockOf(t types.Time) Clock { return Clock{T: t} }

// IsZero reports an unknown time; yaml omitempty uses it.
func (c Clock) IsZero() bool { return !c.T.Known }

func (c Clock) String() string {
	if !c.T.Known {
		return ""
	}
	d := c.T.D
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := int64(d / time.Hour)
	m := int64(d % time.Hour / time.Minute)
	s := float64(d%time.Minute) / float64(time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%s%d:%02d:%06.3f", sign, h, m, s)
	case m > 0:
		return fmt.Sprintf("%s%d:%06.3f", sign, m, s)
	default:
		return fmt.Sprintf("%s%.3f", sign, s)
	}
}

// ParseClock parses "h:mm:ss.fff", "m:ss.ff", "ss.f" or a Go duration.
// An empty string or "-" is unknown.
func ParseClock(s string) (types.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return types.Unknown(), nil
	}
	if strings.ContainsAny(s, "hmnsuµ") {
		d, err := time.ParseDuration(s)
		if err != nil {
			return types.Unknown(), fmt.Errorf("parse clock %q: %w", s, err)
		}
		return types.Known(d), nil
	}

	neg := strings.HasPrefix(s, "-")
	parts := strings.Split(strings.TrimPrefix(s, "-"), ":")
	if len(parts) > 3 {
		return types.Unknown(), fmt.Errorf("parse clock %q: too many fields", s)
	}
	var total float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return types.Unknown(), fmt.Errorf("parse clock %q: bad field %q", s, p)
		}
		if i < len(parts)-1 && strings.Contains(p, ".") {
			return types.Unknown(), fmt.Errorf("parse clock %q: fraction before last field", s)
		}
		total = total*60 + v
	}
	d := time.Duration(math.Round(total * float64(time.Second)))
	if neg {
		d = -d
	}
	return types.Known(d), nil
}

func (c *Clock) UnmarshalYAML(n *yaml.Node) error {
	if n.Tag == "!!null" {
		c.T = types.Unknown()
		return nil
	}
	t, err := ParseClock(n.Value)
	if err != nil {
		return err
	}
	c.T = t
	return nil
}

func (c Clock) MarshalYAML() (any, error) {
	if !c.T.Known {
		return nil, nil
	}
	return c.String(), nil
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		c.T = types.Unknown()
		return nil
	}
	var secs float64
	if err := json.Unmarshal(b, &secs); err == nil {
		c.T = types.Known(time.Duration(math.Round(secs * float64(time.Second))))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("clock: want number or string, got %s", b)
	}
	t, err := ParseClock(s)
	if err != nil {
		return err
	}
	c.T = t
	return nil
}

func (c Clock) MarshalJSON() ([]byte, error) {
	if !c.T.Known {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}
