// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/phonographus/internal/config"
)

func TestClientIPKey(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		xff        string
		xRealIP    string
		want       string
	}{
		{
			name:       "direct client",
			remoteAddr: "203.0.113.5:1234",
			want:       "203.0.113.5",
		},
		{
			name:       "forwarded header ignored from untrusted peer",
			remoteAddr: "203.0.113.5:1234",
			xff:        "10.1.2.3",
			want:       "203.0.113.5",
		},
		{
			name:       "forwarded header honored behind trusted proxy",
			trusted:    []string{"10.0.0.1"},
			remoteAddr: "10.0.0.1:8080",
			xff:        "203.0.113.9",
			want:       "203.0.113.9",
		},
		{
			name:       "first hop wins in multi-proxy chain",
			trusted:    []string{"10.0.0.1"},
			remoteAddr: "10.0.0.1:8080",
			xff:        "203.0.113.9, 10.0.0.2",
			want:       "203.0.113.9",
		},
		{
			name:       "invalid forwarded value falls back to real ip header",
			trusted:    []string{"10.0.0.1"},
			remoteAddr: "10.0.0.1:8080",
			xff:        "not-an-ip",
			xRealIP:    "203.0.113.12",
			want:       "203.0.113.12",
		},
		{
			name:       "trusted proxy without headers uses proxy address",
			trusted:    []string{"10.0.0.1"},
			remoteAddr: "10.0.0.1:8080",
			want:       "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewChiMiddleware(&config.SecurityConfig{
				RateLimitReqs:   100,
				RateLimitWindow: time.Minute,
				CORSOrigins:     []string{"*"},
				TrustedProxies:  tt.trusted,
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}

			got, err := mw.clientIPKey(req)
			if err != nil {
				t.Fatalf("clientIPKey returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected key %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSecurityHeadersHSTSOnlyOverTLS(t *testing.T) {
	handler := SecurityHeaders()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Plain HTTP: no HSTS.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("Expected no HSTS header over plain HTTP")
	}

	// Behind a TLS-terminating proxy: HSTS present.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("Expected HSTS header when X-Forwarded-Proto is https")
	}
}
