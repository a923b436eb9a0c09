package server

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-space-mcp/internal/canvas"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := ConfigFromEnv(envFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	cfg, err := ConfigFromEnv(envFrom(map[string]string{
		EnvSteps:      "16",
		EnvShape:      "8x4x1",
		EnvRenderSize: "0",
		EnvSeed:       "99",
		EnvLogLevel:   "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Steps)
	assert.Equal(t, canvas.Shape{Height: 8, Width: 4, Channels: 1}, cfg.Shape)
	assert.Equal(t, 0, cfg.RenderSize)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(99), *cfg.Seed)
	assert.True(t, cfg.Debug)
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"steps not a number", map[string]string{EnvSteps: "eight"}},
		{"bad shape", map[string]string{EnvShape: "64x64x"}},
		{"shape too large", map[string]string{EnvShape: "2147483648x2147483648x3"}},
		{"negative render size", map[string]string{EnvRenderSize: "-1"}},
		{"bad seed", map[string]string{EnvSeed: "-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConfigFromEnv(envFrom(tt.env))
			assert.True(t, errors.Is(err, canvas.ErrConfig), "got %v, want ErrConfig", err)
		})
	}
}
