package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 10, cfg.TimeoutSeconds)
		assert.Equal(t, 10*time.Second, cfg.Timeout())
		assert.False(t, cfg.Debug)
		assert.Equal(t, ProdBaseURL, cfg.BaseURL())
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("CLASSPILOT_API_URL", "https://staging.classpilot.app/api/v1")
		t.Setenv("CLASSPILOT_TIMEOUT_SECONDS", "30")
		t.Setenv("CLASSPILOT_DEBUG", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "https://staging.classpilot.app/api/v1", cfg.BaseURL())
		assert.Equal(t, 30*time.Second, cfg.Timeout())
		assert.True(t, cfg.Debug)
	})

	t.Run("debug without explicit URL uses the dev backend", func(t *testing.T) {
		t.Setenv("CLASSPILOT_DEBUG", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, DevBaseURL, cfg.BaseURL())
	})
}
