// Package cache implements the per-row change detector that decides whether
// a frame needs a repaint.
//
// A Cache holds the value last assigned to each key. Restart begins a new
// frame without forgetting the previous values; each Set compares the new
// value with the stored one (value equality) and marks the frame changed on
// any difference, including the first assignment of a key. Changed reports
// the result once every key for the frame has been set.
//
// A Cache is not safe for concurrent use; hosts keep one per displayed row.
package cache
