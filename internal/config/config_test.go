package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 6*time.Second, cfg.UI.ToastDuration)
	require.Equal(t, ExporterNone, cfg.Tracing.Exporter)
	require.Zero(t, cfg.API.Timeout, "no client-side timeout by default")
}

func TestLoad_FromFile(t *testing.T) {
	path := writeFile(t, `
api:
  endpoint: https://example.com/graphql
  timeout: 15s
  headers:
    Authorization: Bearer token
ui:
  toast_duration: 2s
tracing:
  exporter: stdout
`)

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/graphql", cfg.API.Endpoint)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
	require.Equal(t, "Bearer token", cfg.API.Headers["authorization"], "viper lower-cases map keys")
	require.Equal(t, 2*time.Second, cfg.UI.ToastDuration)
	require.Equal(t, ExporterStdout, cfg.Tracing.Exporter)
	// Untouched keys keep their defaults
	require.Equal(t, DefaultLogBufferSize, cfg.Log.BufferSize)
}

func TestLoad_Theme(t *testing.T) {
	path := writeFile(t, "ui:\n  theme:\n    preset: high-contrast\n    colors:\n      text_primary: \"#112233\"\n")

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	require.Equal(t, "high-contrast", cfg.UI.Theme.Preset)
	require.Equal(t, "#112233", cfg.UI.Theme.Colors["text_primary"])
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "api:\n  endpoint: https://file.example.com/graphql\n")
	t.Setenv("CONTACTUS_API_ENDPOINT", "https://env.example.com/graphql")
	t.Setenv("CONTACTUS_LOG_DEBUG", "true")

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com/graphql", cfg.API.Endpoint)
	require.True(t, cfg.Log.Debug)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty endpoint", "api:\n  endpoint: \"\"\n", ErrMissingEndpoint},
		{"relative endpoint", "api:\n  endpoint: /graphql\n", ErrInvalidEndpoint},
		{"ftp endpoint", "api:\n  endpoint: ftp://example.com\n", ErrInvalidEndpoint},
		{"zero toast", "ui:\n  toast_duration: 0s\n", ErrInvalidToastTime},
		{"unknown exporter", "tracing:\n  exporter: zipkin\n", ErrUnknownExporter},
		{"unknown theme", "ui:\n  theme:\n    preset: solarized\n", ErrUnknownPreset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(NewViper(), writeFile(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWriteDefault_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefault(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "toast_duration: 6s")

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	require.Equal(t, Defaults().UI, cfg.UI)
	require.Equal(t, Defaults().Tracing, cfg.Tracing)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := writeFile(t, "api:\n  endpoint: https://keep.example.com/graphql\n")

	err := WriteDefault(path, false)
	require.Error(t, err)

	require.NoError(t, WriteDefault(path, true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "keep.example.com")
}
