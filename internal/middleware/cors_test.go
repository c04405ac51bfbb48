package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	config := CORSConfig{
		AllowedOrigins: []string{
			"https://localhost:5173",
			"https://app.example.com/",
		},
	}

	tests := []struct {
		name        string
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		wantAllowed bool
	}{
		{
			name:       "request without origin passes untouched",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
		{
			name:        "allowed origin gets CORS headers",
			method:      http.MethodPost,
			origin:      "https://localhost:5173",
			wantStatus:  http.StatusOK,
			wantAllowed: true,
		},
		{
			name:        "allowed origin matches case-insensitively",
			method:      http.MethodGet,
			origin:      "https://APP.example.com",
			wantStatus:  http.StatusOK,
			wantAllowed: true,
		},
		{
			name:       "unknown origin is served without CORS headers",
			method:     http.MethodGet,
			origin:     "https://evil.com",
			wantStatus: http.StatusOK,
		},
		{
			name:        "preflight from allowed origin",
			method:      http.MethodOptions,
			origin:      "https://localhost:5173",
			preflight:   true,
			wantStatus:  http.StatusNoContent,
			wantAllowed: true,
		},
		{
			name:       "preflight from unknown origin is rejected",
			method:     http.MethodOptions,
			origin:     "https://evil.com",
			preflight:  true,
			wantStatus: http.StatusForbidden,
		},
		{
			name:        "plain OPTIONS is not a preflight",
			method:      http.MethodOptions,
			origin:      "https://localhost:5173",
			wantStatus:  http.StatusOK,
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(config))
			router.Handle(tt.method, "/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			gotOrigin := w.Header().Get("Access-Control-Allow-Origin")
			if tt.wantAllowed && gotOrigin != tt.origin {
				t.Errorf("expected Access-Control-Allow-Origin %q, got %q", tt.origin, gotOrigin)
			}
			if !tt.wantAllowed && gotOrigin != "" {
				t.Errorf("expected no Access-Control-Allow-Origin, got %q", gotOrigin)
			}
			if tt.preflight && tt.wantAllowed && w.Header().Get("Access-Control-Allow-Methods") == "" {
				t.Error("preflight response should list allowed methods")
			}
		})
	}
}

func TestCORS_Wildcard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORS(CORSConfig{AllowedOrigins: []string{"*", "https://app.example.com"}}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name            string
		origin          string
		wantOrigin      string
		wantCredentials string
	}{
		{"unlisted origin gets wildcard without credentials", "https://anywhere.example", "*", ""},
		{"listed origin is echoed with credentials", "https://app.example.com", "https://app.example.com", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected Access-Control-Allow-Origin %q, got %q", tt.wantOrigin, got)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCredentials {
				t.Errorf("expected Access-Control-Allow-Credentials %q, got %q", tt.wantCredentials, got)
			}
		})
	}
}

func TestNormalizeOrigin(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com", "https://example.com"},
		{"https://example.com/", "https://example.com"},
		{"HTTPS://Example.COM", "https://example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := normalizeOrigin(tt.input); got != tt.expected {
				t.Errorf("normalizeOrigin(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
