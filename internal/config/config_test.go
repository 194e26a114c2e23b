package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bbernstein/nstravel/internal/ns"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENV", "LOG_LEVEL", "HTTP_TIMEOUT", "NS_BASE_URL", "NS_API_KEY", "LISTEN_ADDR", "PORT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestNewConfigWithDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, ns.DefaultBaseURL, cfg.NSBaseURL)
	assert.Equal(t, "", cfg.NSAPIKey)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestOptions(t *testing.T) {
	cfg := New(
		WithEnvironment("development"),
		WithLogLevel("debug"),
		WithHTTPTimeout(30*time.Second),
		WithNSBaseURL("http://localhost:9999"),
		WithNSAPIKey("secret"),
		WithListenAddr("127.0.0.1:3000"),
	)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "http://localhost:9999", cfg.NSBaseURL)
	assert.Equal(t, "secret", cfg.NSAPIKey)
	assert.Equal(t, "127.0.0.1:3000", cfg.ListenAddr)
}

func TestWithLogLevelFallsBackToInfo(t *testing.T) {
	cfg := New(WithLogLevel("loud"))

	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestInitializeLogging(t *testing.T) {
	cfg := New(WithEnvironment("local"), WithLogLevel("debug"))
	cfg.InitializeLogging()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("NS_API_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("NS_BASE_URL", "http://ns.test")
	t.Setenv("PORT", "9000")

	cfg := LoadFromEnv()

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.NSAPIKey)
	assert.Equal(t, "http://ns.test", cfg.NSBaseURL)
	assert.Equal(t, ":9000", cfg.ListenAddr)
}

func TestLoadFromEnvListenAddrWinsOverPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LISTEN_ADDR", "0.0.0.0:7000")

	assert.Equal(t, "0.0.0.0:7000", LoadFromEnv().ListenAddr)
}

func TestLoadFromEnvBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_TIMEOUT", "soon")

	assert.Equal(t, 10*time.Second, LoadFromEnv().HTTPTimeout)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nsmcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
environment: development
log_level: debug
http_timeout: 15s
listen_addr: ":3000"
ns:
  base_url: http://file.test
  api_key: from-file
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "http://file.test", cfg.NSBaseURL)
	assert.Equal(t, "from-file", cfg.NSAPIKey)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "ns:\n  api_key: from-file\nlog_level: debug\n")
	t.Setenv("NS_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.NSAPIKey)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "ns: [not, a, map"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "http_timeout: sometime"))
	assert.Error(t, err)
}

func TestLoadWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestIsValidAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"0123456789abcdef0123456789abcdef", true},
		{"0123456789ABCDEF0123456789ABCDEF", true},
		{"0123456789abcdef", false},
		{"0123456789abcdef0123456789abcdeg", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidAPIKey(tt.key))
		})
	}
}
