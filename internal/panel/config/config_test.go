package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(filepath.Join(t.TempDir(), "missing.env"), nil)
	require.NoError(t, err)

	require.Equal(t, "info", cfg.EnvLogsLevel)
	require.Equal(t, ":8080", cfg.PanelAddr)
	require.Equal(t, "http://localhost:5000", cfg.ControlAPIURL)
	require.Equal(t, 3*time.Second, cfg.PollInterval)
	require.Equal(t, 5*time.Second, cfg.MessageTTL)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, time.Second, cfg.PageRefresh)
	require.Equal(t, "en", cfg.DefaultLanguage)
	require.False(t, cfg.VerifyToken)
}

func TestNewConfig_EnvFileEnvAndFlags(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "panel.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CONTROL_API_URL=http://bot:5000\nPOLL_INTERVAL=1s\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CONTROL_API_URL") })
	t.Setenv("VERIFY_TOKEN", "true")
	t.Setenv("PANEL_ADDR", ":9000")
	// godotenv.Load does not override variables already set
	t.Setenv("POLL_INTERVAL", "2s")

	cfg, err := NewConfig(envFile, []string{"-a", ":9100", "-l", "debug"})
	require.NoError(t, err)

	require.Equal(t, "http://bot:5000", cfg.ControlAPIURL)
	require.Equal(t, 2*time.Second, cfg.PollInterval)
	require.True(t, cfg.VerifyToken)
	require.Equal(t, ":9100", cfg.PanelAddr)
	require.Equal(t, "debug", cfg.EnvLogsLevel)
}

func TestNewConfig_Invalid(t *testing.T) {
	t.Run("relative api url", func(t *testing.T) {
		t.Setenv("CONTROL_API_URL", "localhost")
		_, err := NewConfig("", nil)
		require.ErrorContains(t, err, "CONTROL_API_URL")
	})

	t.Run("zero interval", func(t *testing.T) {
		t.Setenv("POLL_INTERVAL", "0s")
		_, err := NewConfig("", nil)
		require.Error(t, err)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := NewConfig("", []string{"-nope"})
		require.Error(t, err)
	})
}
