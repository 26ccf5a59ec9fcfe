// Package auth provides HTTP middleware that enforces API-key authentication
// on the splits server's REST and websocket endpoints.
package auth
