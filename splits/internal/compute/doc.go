// Package compute derives the text and color of every cell of one display
// row from a read-only run snapshot.
//
// section.go holds the section arithmetic: elapsed time, comparison time and
// delta over the segments between a top boundary and a row.
//
// color.go maps the signs of a time difference and a delta to one of four
// ahead/behind, gaining/losing categories; palette.go resolves categories
// and row roles to concrete colors honoring the override settings.
//
// live.go estimates a provisional delta for the segment being timed, once
// there is evidence the runner has fallen behind.
//
// column.go formats one configured column. Flat and collapsed rows share a
// single algorithm; they differ only in the Boundary that picks the section
// top. header.go formats section header rows.
//
// engine.go provides Engine, the per-row stateful wrapper: it resolves the
// row's name, runs the column or header pass, feeds every visible value into
// the row's change cache and reports whether a repaint is needed.
package compute
