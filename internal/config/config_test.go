package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 7.0, cfg.VATPercent)
	assert.Equal(t, "7", cfg.VAT().String())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Empty(t, cfg.Input)

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadConfig_Env(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("FINREPORT_VAT_PERCENT", "10")
	t.Setenv("FINREPORT_LOG_LEVEL", "debug")
	t.Setenv("FINREPORT_INPUT", "/data/june.yaml")
	t.Setenv("FINREPORT_TIMEZONE", "Asia/Bangkok")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.VATPercent)
	assert.Equal(t, "/data/june.yaml", cfg.Input)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Bangkok", loc.String())
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "finreport.env")
	require.NoError(t, os.WriteFile(path, []byte("FINREPORT_VAT_PERCENT=0\nFINREPORT_INPUT=batch.yaml\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.VATPercent)
	assert.Equal(t, "batch.yaml", cfg.Input)

	t.Setenv("FINREPORT_INPUT", "override.yaml")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "override.yaml", cfg.Input)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"vat above 100", "FINREPORT_VAT_PERCENT", "150"},
		{"negative vat", "FINREPORT_VAT_PERCENT", "-1"},
		{"log level", "FINREPORT_LOG_LEVEL", "chatty"},
		{"timezone", "FINREPORT_TIMEZONE", "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig("")
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
