// Package tui renders the board in a terminal with Bubble Tea.
//
// The model ticks the board on an interval and draws one line per row. Cell
// colors come straight from the computed frames. Names that do not fit fall
// back to the row's abbreviation candidates.
package tui
