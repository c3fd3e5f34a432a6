// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package api

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/phonographus/internal/config"
	"github.com/tomtom215/phonographus/internal/metrics"
)

// healthRateLimit is deliberately permissive so monitoring can poll the
// probes every few seconds without tripping the limiter.
const (
	healthRateLimitRequests = 1000
	healthRateLimitWindow   = time.Minute
)

// ChiMiddleware builds Chi-compatible middleware from the security section of
// the configuration: CORS and per-client rate limiting.
type ChiMiddleware struct {
	cfg            *config.SecurityConfig
	cors           func(http.Handler) http.Handler
	trustedProxies map[string]bool
}

// NewChiMiddleware creates the middleware factory. The CORS handler is built
// once; rate limiters are built per route group so each keeps its own window.
func NewChiMiddleware(cfg *config.SecurityConfig) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         86400,
	})

	trusted := make(map[string]bool, len(cfg.TrustedProxies))
	for _, proxy := range cfg.TrustedProxies {
		trusted[proxy] = true
	}

	return &ChiMiddleware{
		cfg:            cfg,
		cors:           corsHandler,
		trustedProxies: trusted,
	}
}

// CORS returns the CORS middleware.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns the per-client limiter for API routes, keyed by client IP.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.limiter(m.cfg.RateLimitReqs, m.cfg.RateLimitWindow)
}

// RateLimitHealth returns the permissive limiter for the health probes.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.limiter(healthRateLimitRequests, healthRateLimitWindow)
}

func (m *ChiMiddleware) limiter(requests int, window time.Duration) func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(m.clientIPKey),
		httprate.WithLimitHandler(rateLimitExceeded),
	)
}

// clientIPKey keys the limiter by client IP. Forwarding headers are only
// honored when the direct peer is a configured trusted proxy; otherwise a
// client could spoof X-Forwarded-For to dodge its budget.
func (m *ChiMiddleware) clientIPKey(r *http.Request) (string, error) {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !m.trustedProxies[remoteIP] {
		return remoteIP, nil
	}

	if ip := forwardedClientIP(r); ip != "" {
		return ip, nil
	}
	return remoteIP, nil
}

// forwardedClientIP extracts the originating client IP from proxy headers,
// preferring X-Forwarded-For over X-Real-IP.
func forwardedClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" && net.ParseIP(xri) != nil {
		return xri
	}
	return ""
}

// rateLimitExceeded responds in the API envelope instead of httprate's plain
// text default.
func rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
	respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
		"Too many requests, retry later", nil)
}

// SecurityHeaders adds baseline security headers to API responses.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler form.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}
