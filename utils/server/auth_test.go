package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/processforge/bpmn-architect/utils/config"
)

func TestCheckAuth(t *testing.T) {
	tests := []struct {
		name       string
		enabled    bool
		token      string
		authHeader string
		want       bool
	}{
		{"auth disabled passes without header", false, "secret", "", true},
		{"auth disabled ignores wrong token", false, "secret", "Bearer wrong", true},
		{"valid token", true, "secret", "Bearer secret", true},
		{"missing header", true, "secret", "", false},
		{"wrong token", true, "secret", "Bearer wrong", false},
		{"malformed header", true, "secret", "secret", false},
		{"wrong scheme", true, "secret", "Basic secret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serverConfig := &config.ServerConfig{
				Enabled:     tt.enabled,
				BearerToken: tt.token,
			}

			r := httptest.NewRequest(http.MethodGet, "/refine", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			got := checkAuth(serverConfig, w, r)
			if got != tt.want {
				t.Errorf("checkAuth() = %v, want %v", got, tt.want)
			}
			if !got && w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "****"},
		{"abc", "****"},
		{"abcdefgh", "abcd****"},
	}

	for _, tt := range tests {
		if got := maskToken(tt.token); got != tt.expected {
			t.Errorf("maskToken(%q) = %q, want %q", tt.token, got, tt.expected)
		}
	}
}
