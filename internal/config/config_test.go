package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseClient(t *testing.T) {
	tests := []struct {
		env     map[string]string
		check   func(t *testing.T, cfg *Client)
		name    string
		args    []string
		wantErr bool
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *Client) {
				assert.Equal(t, DefaultClient(), *cfg)
			},
		},
		{
			name: "env overrides defaults",
			env: map[string]string{
				"DOCSYNC_SERVER":        "http://relay:9000",
				"DOCSYNC_POLL_INTERVAL": "5s",
				"DOCSYNC_TOKEN":         "secret",
			},
			check: func(t *testing.T, cfg *Client) {
				assert.Equal(t, "http://relay:9000", cfg.ServerURL)
				assert.Equal(t, 5*time.Second, cfg.BaseInterval)
				assert.Equal(t, "secret", cfg.Token)
			},
		},
		{
			name: "flag overrides env",
			env:  map[string]string{"DOCSYNC_SERVER": "http://env"},
			args: []string{"-server", "http://flag", "-fast-interval", "250ms", "-version"},
			check: func(t *testing.T, cfg *Client) {
				assert.Equal(t, "http://flag", cfg.ServerURL)
				assert.Equal(t, 250*time.Millisecond, cfg.FastInterval)
				assert.True(t, cfg.ShowVersion)
			},
		},
		{
			name:    "bad env duration",
			env:     map[string]string{"DOCSYNC_MAX_INTERVAL": "soon"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"-bogus"},
			wantErr: true,
		},
		{
			name:    "max below base",
			args:    []string{"-poll-interval", "10s", "-max-interval", "5s"},
			wantErr: true,
		},
		{
			name:    "bad log level",
			args:    []string{"-log-level", "loud"},
			wantErr: true,
		},
		{
			name:    "zero timeout",
			args:    []string{"-request-timeout", "0s"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseClient(tt.args, envMap(tt.env), io.Discard)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestParseServer(t *testing.T) {
	tests := []struct {
		env     map[string]string
		check   func(t *testing.T, cfg *Server)
		name    string
		args    []string
		wantErr bool
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *Server) {
				assert.Equal(t, DefaultServer(), *cfg)
				assert.Equal(t, 50, cfg.CompactionThreshold)
				assert.Equal(t, 30*time.Second, cfg.AwarenessTTL)
			},
		},
		{
			name: "env and flags",
			env: map[string]string{
				"DOCSYNC_COMPACTION_THRESHOLD": "10",
				"DOCSYNC_ADDR":                 ":9000",
			},
			args: []string{"-addr", ":7000", "-db", ":memory:"},
			check: func(t *testing.T, cfg *Server) {
				assert.Equal(t, 10, cfg.CompactionThreshold)
				assert.Equal(t, ":7000", cfg.Addr)
				assert.Equal(t, ":memory:", cfg.DBPath)
			},
		},
		{
			name: "token and rate limit",
			env:  map[string]string{"DOCSYNC_TOKEN": "s3cret"},
			args: []string{"-rate-limit", "0"},
			check: func(t *testing.T, cfg *Server) {
				assert.Equal(t, "s3cret", cfg.Token)
				assert.Equal(t, 0, cfg.RateLimit)
			},
		},
		{
			name:    "negative rate limit",
			env:     map[string]string{"DOCSYNC_RATE_LIMIT": "-5"},
			wantErr: true,
		},
		{
			name:    "bad threshold env",
			env:     map[string]string{"DOCSYNC_COMPACTION_THRESHOLD": "many"},
			wantErr: true,
		},
		{
			name:    "threshold too small",
			args:    []string{"-compaction-threshold", "1"},
			wantErr: true,
		},
		{
			name:    "negative ttl",
			args:    []string{"-awareness-ttl", "-1s"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseServer(tt.args, envMap(tt.env), io.Discard)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: " warn ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	// отсутствующий файл не ошибка
	require.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DOCSYNC_TEST_VALUE=from-file\n"), 0600))

	t.Setenv("DOCSYNC_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("DOCSYNC_TEST_VALUE"))
	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("DOCSYNC_TEST_VALUE"))

	// уже заданная переменная не перезаписывается
	t.Setenv("DOCSYNC_TEST_VALUE", "from-env")
	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-env", os.Getenv("DOCSYNC_TEST_VALUE"))
}
