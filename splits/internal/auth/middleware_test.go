package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func call(h http.Handler, target, header, key string) int {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if key != "" {
		req.Header.Set(header, key)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Code
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name   string
		mode   string
		key    string
		target string
		header string
		sent   string
		want   int
	}{
		{"mode none passes through", "none", "secret", "/api/v1/frames", DefaultHeader, "", http.StatusOK},
		{"unset key passes through", "apikey", "", "/api/v1/frames", DefaultHeader, "", http.StatusOK},
		{"correct key", "apikey", "secret", "/api/v1/frames", DefaultHeader, "secret", http.StatusOK},
		{"wrong key", "apikey", "secret", "/api/v1/frames", DefaultHeader, "wrong", http.StatusUnauthorized},
		{"missing key", "apikey", "secret", "/api/v1/frames", DefaultHeader, "", http.StatusUnauthorized},
		{"query parameter", "apikey", "secret", "/ws/frames?api_key=secret", DefaultHeader, "", http.StatusOK},
		{"wrong query parameter", "apikey", "secret", "/ws/frames?api_key=nope", DefaultHeader, "", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := APIKey(tc.mode, "", tc.key)(ok)
			if got := call(h, tc.target, tc.header, tc.sent); got != tc.want {
				t.Errorf("status: got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAPIKey_CustomHeader(t *testing.T) {
	h := APIKey("apikey", "X-Splits-Key", "secret")(ok)
	if got := call(h, "/", "X-Splits-Key", "secret"); got != http.StatusOK {
		t.Errorf("custom header: got %d, want 200", got)
	}
	if got := call(h, "/", DefaultHeader, "secret"); got != http.StatusUnauthorized {
		t.Errorf("default header ignored when custom set: got %d, want 401", got)
	}
}
