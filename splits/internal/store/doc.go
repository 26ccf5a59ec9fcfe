// Package store keeps the latest computed frame of every board row. It is a
// thread-safe map keyed by row position with TTL eviction, so rows that
// stopped being computed (the list shrank) drop out of API responses.
package store
