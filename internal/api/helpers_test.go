// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/phonographus/internal/models"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "wakhra swag", "wakhra swag"},
		{"newline", "line1\nline2", "line1\\x0aline2"},
		{"carriage return", "a\rb", "a\\x0db"},
		{"tab", "a\tb", "a\\x09b"},
		{"null byte", "a\x00b", "a\\x00b"},
		{"delete", "a\x7fb", "a\\x7fb"},
		{"unicode kept", "नमस्ते", "नमस्ते"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLogValue(tt.input); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGenerateETag(t *testing.T) {
	a := generateETag([]byte(`{"status":"success"}`))
	b := generateETag([]byte(`{"status":"success"}`))
	c := generateETag([]byte(`{"status":"error"}`))

	if a != b {
		t.Errorf("Expected identical ETags for identical bodies, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected different ETags for different bodies")
	}
	if a == "" {
		t.Error("Expected non-empty ETag")
	}
}

func TestRespondJSONHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]interface{}{"ok": true},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", got)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("Expected ETag header")
	}
	if !strings.Contains(rec.Header().Get("Cache-Control"), "max-age=60") {
		t.Errorf("Expected Cache-Control with max-age, got %q", rec.Header().Get("Cache-Control"))
	}
}

func TestRespondErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, http.StatusBadRequest, "VALIDATION_ERROR", "q must be at most 200 characters", nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var env searchEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode error envelope: %v", err)
	}
	if env.Status != "error" {
		t.Errorf("Expected status error, got %s", env.Status)
	}
	if env.Error == nil {
		t.Fatal("Expected error payload")
	}
	if env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", env.Error.Code)
	}
	if env.Error.Message != "q must be at most 200 characters" {
		t.Errorf("Unexpected message: %s", env.Error.Message)
	}
	if env.Metadata.Timestamp.IsZero() {
		t.Error("Expected metadata timestamp on error responses")
	}
}

func TestValidateRequestPassesThrough(t *testing.T) {
	req := searchQueryRequest{Query: "fine"}
	if apiErr := validateRequest(&req); apiErr != nil {
		t.Errorf("Expected validation to pass, got %+v", apiErr)
	}

	long := searchQueryRequest{Query: strings.Repeat("x", maxQueryLength+1)}
	apiErr := validateRequest(&long)
	if apiErr == nil {
		t.Fatal("Expected validation error for oversized query")
	}
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %s", apiErr.Code)
	}
	if apiErr.Details["field"] != "Query" {
		t.Errorf("Expected failing field Query, got %v", apiErr.Details["field"])
	}
}
