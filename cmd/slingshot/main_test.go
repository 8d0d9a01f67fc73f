// cmd/slingshot/main_test.go
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-slingshot/pkg/config"
)

func TestRun_WritesDefaultConfig(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "ERROR")
	path := filepath.Join(t.TempDir(), "slingshot.yaml")

	assert.Equal(t, 0, run("", path, "null", 0, false))

	_, err := os.Stat(path)
	require.NoError(t, err)
	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Launch, loaded.Launch)
}

func TestRun_ExitCodes(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "ERROR")

	tests := []struct {
		name       string
		configPath string
		renderer   string
		want       int
	}{
		{"unknown renderer", "", "opengl", 2},
		{"missing config file", filepath.Join(t.TempDir(), "absent.yaml"), "null", 1},
		{"headless run", "", "null", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(tt.configPath, "", tt.renderer, 30, false))
		})
	}
}

func TestRun_InvalidConfigReturnsInsteadOfExiting(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "ERROR")
	t.Setenv(config.EnvMaxDrag, "-5")

	assert.Equal(t, 1, run("", "", "null", 30, false))
}
