// Package naming resolves how a segment's name is shown on its row.
//
// A segment whose name starts with Marker is a subsplit (unless it is the
// last segment of the run) and is shown without the marker. Other names may
// carry a section header in braces, "{Area 1} Boss Fight": header and
// collapsed rows show "Area 1", ordinary rows show "Boss Fight".
//
// Abbreviations builds the shorter name candidates a renderer falls back to
// on narrow layouts. Everything here is a pure function.
package naming
