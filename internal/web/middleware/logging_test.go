package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogger_CapturesStatus(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestResponseWriter_DefaultsTo200OnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := &responseWriter{ResponseWriter: rec, status: http.StatusOK}

	if _, err := ww.Write([]byte("ok")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if ww.status != http.StatusOK {
		t.Errorf("status = %d, want 200", ww.status)
	}

	// A later WriteHeader must not override the first.
	ww.WriteHeader(http.StatusInternalServerError)
	if ww.status != http.StatusOK {
		t.Errorf("status after late WriteHeader = %d, want 200", ww.status)
	}
}
