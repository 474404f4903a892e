package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"appointment-slot-service/internal/services"
)

func TestRouterHealth(t *testing.T) {
	router := NewRouter(nil, nil, nil, services.PlannerConfig{}, "Consultation")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("status field = %q, want ok", body["status"])
	}
	if body["timestamp"] == "" {
		t.Fatal("timestamp should be set")
	}
}

func TestRouterUnknownPath(t *testing.T) {
	router := NewRouter(nil, nil, nil, services.PlannerConfig{}, "Consultation")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
