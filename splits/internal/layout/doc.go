// Package layout decides which rows the splits list shows for a run.
//
// Segments are grouped into sections: a run of subsplits closed by the next
// regular segment. The section holding the current segment is expanded into
// an optional header row plus one row per segment; every other section with
// subsplits becomes a single collapsed row measured from the section start.
// Build then windows the rows around the current one.
package layout
