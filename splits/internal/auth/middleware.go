package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// DefaultHeader carries the API key when no header is configured.
const DefaultHeader = "X-API-Key"

// QueryParam carries the API key for clients that cannot set headers, such
// as browser websocket connections.
const QueryParam = "api_key"

// APIKey returns middleware that enforces API-key authentication.
//
// If mode != "apikey" or key == "", every request passes through. Otherwise
// the key is read from header (or the api_key query parameter); a missing
// or wrong key is answered with 401.
func APIKey(mode, header, key string) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultHeader
	}
	return func(next http.Handler) http.Handler {
		if mode != "apikey" || key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(header)
			if got == "" {
				got = r.URL.Query().Get(QueryParam)
			}
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "invalid api key"}) //nolint:errcheck
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
