package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriterCapturesStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusNotFound)
	if rw.statusCode != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rw.statusCode)
	}

	// Later calls must not overwrite the captured status.
	rw.WriteHeader(http.StatusOK)
	if rw.statusCode != http.StatusNotFound {
		t.Errorf("status after second WriteHeader: got %d, want 404", rw.statusCode)
	}
}

func TestResponseWriterDefaultsTo200(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr}

	if _, err := rw.Write([]byte("hi")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rw.statusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", rw.statusCode)
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("done"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/profiles", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rr.Code)
	}
	if rr.Body.String() != "done" {
		t.Errorf("body: got %q", rr.Body.String())
	}
}
