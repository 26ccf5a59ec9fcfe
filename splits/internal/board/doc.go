// Package board drives the row engines.
//
// A Board owns one compute.Engine per visible row. Each tick it takes a
// snapshot from its source, plans the rows with layout.Build, computes every
// row, stores the frames and records metrics. Layout settings can be swapped
// between ticks; the engines survive the swap so their change caches keep
// working.
package board
