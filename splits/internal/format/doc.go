// Package format turns optional times into display text.
//
// TimeFormatter renders split, header and section-timer times
// ("1:02:03.45", "4:05.6", "24.00"); DeltaFormatter renders signed deltas
// ("+1.2", "−0:30") and can drop decimals once a delta reaches a minute.
// Unknown times always render as Dash.
//
// Options is the comparable subset of the layout settings that formatters
// depend on; the engine rebuilds its Set only when Options differs from the
// previous frame.
package format
