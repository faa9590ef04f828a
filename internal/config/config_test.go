package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultEnv, cfg.Primary.Env)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultReadTimeout, cfg.Server.ReadTimeout)
	assert.EqualValues(t, DefaultMaxUploadBytes, cfg.Server.MaxUploadBytes)
	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, "ledgerdesk", cfg.Observability.ServiceName)
	assert.False(t, cfg.Observability.NewRelicEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("LEDGERDESK_PRIMARY.ENV", "production")
	t.Setenv("LEDGERDESK_SERVER.PORT", "8081")
	t.Setenv("LEDGERDESK_SERVER.MAX_UPLOAD_BYTES", "2048")
	t.Setenv("LEDGERDESK_OBSERVABILITY.LOGGING.LEVEL", "debug")
	t.Setenv("LEDGERDESK_OBSERVABILITY.LOGGING.FORMAT", "json")
	t.Setenv("LEDGERDESK_OBSERVABILITY.NEW_RELIC.LICENSE_KEY", "abc")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.EqualValues(t, 2048, cfg.Server.MaxUploadBytes)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.NewRelicEnabled())
	assert.Equal(t, "ledgerdesk", cfg.Observability.NewRelicAppName())
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LEDGERDESK_SERVER.PORT=9090\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LEDGERDESK_SERVER.PORT") })

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{name: "port", key: "LEDGERDESK_SERVER.PORT", value: "http"},
		{name: "level", key: "LEDGERDESK_OBSERVABILITY.LOGGING.LEVEL", value: "loud"},
		{name: "format", key: "LEDGERDESK_OBSERVABILITY.LOGGING.FORMAT", value: "xml"},
		{name: "timeout", key: "LEDGERDESK_SERVER.READ_TIMEOUT", value: "-5"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
