package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func secureResponse(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/profiles", nil))
	return rr
}

func TestSecureHeaders(t *testing.T) {
	rr := secureResponse(t)

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"Cache-Control":          "no-store",
	}
	for header, value := range want {
		if got := rr.Header().Get(header); got != value {
			t.Errorf("%s: got %q, want %q", header, got, value)
		}
	}
}

func TestSecureHeadersPassesBodyThrough(t *testing.T) {
	rr := secureResponse(t)
	if rr.Body.String() != `{"ok":true}` {
		t.Errorf("body: got %q", rr.Body.String())
	}
}
