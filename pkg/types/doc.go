// Package types defines the run model shared by the row engine and its hosts.
//
// time.go provides Time, an optional duration whose combinators (Add, Sub,
// Less, Greater, Sign) propagate "unknown" instead of treating it as zero.
//
// run.go holds the read-only run snapshot: Run (ordered Segments, comparison
// names, run-scope custom variables), Segment, TimingMethod, Phase and Live,
// the timer-owned progress state. The engine never writes to any of these;
// they are owned by whatever timer feeds the display.
package types
