package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Marker prefixes the name of a subsplit.
const Marker = "-"

// View selects which half of a "{header} body" name is shown.
type View int

const (
	// ViewRow shows the body of a grouped name.
	ViewRow View = iota
	// ViewSection shows the header; used by header rows and collapsed rows.
	ViewSection
)

// Name is the resolved display name of one segment.
type Name struct {
	Text     string
	Subsplit bool
	Header   string
	Body     string
	Grouped  bool
}

// Resolve resolves raw for a segment; last marks the final segment of the run.
func Resolve(raw string, last bool, view View) Name {
	if IsSubsplit(raw, last) {
		return Name{Text: strings.TrimPrefix(raw, Marker), Subsplit: true}
	}
	header, body, ok := SplitHeader(raw)
	if !ok {
		return Name{Text: raw}
	}
	n := Name{Header: header, Body: body, Grouped: true, Text: body}
	if view == ViewSection {
		n.Text = header
	}
	return n
}

// IsSubsplit reports whether raw names a subsplit.
func IsSubsplit(raw string, last bool) bool {
	return !last && strings.HasPrefix(raw, Marker)
}

// SplitHeader splits "{header} body" names. It matches the same strings as
// ^{(.+)}\s*(.+)$ with a greedy header group.
func SplitHeader(raw string) (header, body string, ok bool) {
	if !strings.HasPrefix(raw, "{") || strings.Contains(raw, "\n") {
		return "", "", false
	}
	for k := strings.LastIndexByte(raw, '}'); k >= 2; k = strings.LastIndexByte(raw[:k], '}') {
		rest := raw[k+1:]
		if rest == "" {
			continue
		}
		body = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if body == "" {
			// \s* gives back one character so that (.+) can match.
			_, size := utf8.DecodeLastRuneInString(rest)
			body = rest[len(rest)-size:]
		}
		return raw[1:k], body, true
	}
	return "", "", false
}
