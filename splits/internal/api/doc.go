// Package api implements the HTTP REST API of the splits server.
//
// New(store, status) returns an http.Handler that serves:
//
//	GET /api/v1/health         board status: phase, current split, last frame
//	GET /api/v1/frames         every live row frame, ordered by row
//	GET /api/v1/frames/{row}   a single row; 404 if unknown or stale
//
// All endpoints respond with Content-Type: application/json and return 405
// for non-GET methods. JSON types are defined in types.go.
package api
