package config

import (
	"os"
	"testing"
)

func TestGetVersion(t *testing.T) {
	originalVersion := os.Getenv("APP_VERSION")
	defer func() {
		if originalVersion != "" {
			os.Setenv("APP_VERSION", originalVersion)
		} else {
			os.Unsetenv("APP_VERSION")
		}
	}()

	tests := []struct {
		name       string
		envVersion string
		expect     string
	}{
		{
			name:       "version from environment variable",
			envVersion: "1.2.3",
			expect:     "1.2.3",
		},
		{
			name:       "version from environment with build number",
			envVersion: "2.0.0-beta.1",
			expect:     "2.0.0-beta.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("APP_VERSION", tt.envVersion)
			if got := GetVersion(); got != tt.expect {
				t.Errorf("Expected version '%s', got '%s'", tt.expect, got)
			}
		})
	}
}

func TestGetVersionFallback(t *testing.T) {
	os.Unsetenv("APP_VERSION")
	v := GetVersion()
	if v == "" {
		t.Error("Expected a non-empty fallback version")
	}
}
