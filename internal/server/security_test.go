package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	appconfig "github.com/agbru/qcalc/internal/config"
	"github.com/agbru/qcalc/internal/orchestration"
	"github.com/agbru/qcalc/internal/orchestration/mocks"
)

func TestDefaultSecurityConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultSecurityConfig()
	if !cfg.EnableCORS || len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("CORS = %v %v, want enabled for every origin", cfg.EnableCORS, cfg.AllowedOrigins)
	}
	if cfg.MaxNValue != appconfig.DefaultServerMaxN {
		t.Errorf("MaxNValue = %d, want %d", cfg.MaxNValue, appconfig.DefaultServerMaxN)
	}
}

func TestComputeSizeLimit(t *testing.T) {
	t.Parallel()
	security := DefaultSecurityConfig()
	security.MaxNValue = 12
	s := New(Config{Workers: 2, Timeout: 5 * time.Second, Security: security}, orchestration.NewDefaultFactory(), newTestLogger())
	h := s.Handler()

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"binomial at the limit", "/compute?function=q_binomial&args=12,5", http.StatusOK},
		{"binomial over the limit", "/compute?function=q_binomial&args=13,5", http.StatusBadRequest},
		{"negative over the limit", "/compute?function=q_int&args=-13", http.StatusBadRequest},
		{"factorial over the limit", "/compute?function=q_factorial&args=100", http.StatusBadRequest},
		{"partition over the limit", "/compute?function=q_jordan&args=7,6", http.StatusBadRequest},
		{"catalan over the limit", "/compute?function=q_catalan_number&args=40", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := get(t, h, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status != http.StatusBadRequest {
				return
			}
			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !strings.Contains(body.Error, "exceeds the limit of 12") {
				t.Errorf("error = %q", body.Error)
			}
		})
	}
}

func TestComputeRequestCarriesSizeLimit(t *testing.T) {
	t.Parallel()
	security := DefaultSecurityConfig()
	security.MaxNValue = 10
	s := New(Config{Workers: 1, Timeout: time.Second, Security: security}, orchestration.NewDefaultFactory(), newTestLogger())

	req, _, err := s.parseComputeRequest(httptest.NewRequest(http.MethodGet, "/compute?function=q_binomial&args=11,2", http.NoBody))
	if err != nil {
		t.Fatal(err)
	}
	if req.MaxN != 10 {
		t.Errorf("request MaxN = %d, want the configured 10", req.MaxN)
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()
	h := newTestServer(orchestration.NewDefaultFactory()).Handler()

	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	}
	for _, target := range []string{
		"/compute?function=q_int&args=3",
		"/compute?function=q_int&args=x",
		"/health",
		"/metrics",
	} {
		rec := get(t, h, target)
		for header, value := range want {
			if got := rec.Header().Get(header); got != value {
				t.Errorf("%s: %s = %q, want %q", target, header, got, value)
			}
		}
	}
}

func TestSecurityMiddlewareCORS(t *testing.T) {
	t.Parallel()
	restricted := DefaultSecurityConfig()
	restricted.AllowedOrigins = []string{"https://qcalc.example"}
	disabled := DefaultSecurityConfig()
	disabled.EnableCORS = false

	tests := []struct {
		name      string
		cfg       SecurityConfig
		origin    string
		allow     string
		wantVary  bool
		wantMeths bool
	}{
		{"wildcard", DefaultSecurityConfig(), "https://any.example", "*", false, true},
		{"wildcard without origin", DefaultSecurityConfig(), "", "*", false, true},
		{"listed origin", restricted, "https://qcalc.example", "https://qcalc.example", true, true},
		{"unlisted origin", restricted, "https://evil.example", "", false, false},
		{"disabled", disabled, "https://any.example", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := SecurityMiddleware(tt.cfg, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodGet, "/compute?function=q_int&args=3", http.NoBody)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.allow {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.allow)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Errorf("Vary: Origin = %v, want %v", got, tt.wantVary)
			}
			if got := rec.Header().Get("Access-Control-Allow-Methods") == "GET, OPTIONS"; got != tt.wantMeths {
				t.Errorf("Allow-Methods = %q", rec.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestComputePreflight(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: a preflight must not reach the factory.
	factory := mocks.NewMockCalculatorFactory(ctrl)
	h := newTestServer(factory).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/compute?function=q_binomial&args=4,2", http.NoBody)
	req.Header.Set("Origin", "https://qcalc.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Errorf("status = %d, body = %q, want an empty 204", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Access-Control-Max-Age") != "86400" {
		t.Errorf("Max-Age = %q", rec.Header().Get("Access-Control-Max-Age"))
	}
}
