package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/docsearch/internal/terms"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil, io.Discard)
	require.NoError(t, err)

	assert.True(t, cfg.CaseSensitive)
	assert.Equal(t, "extended", cfg.Delimiters)
	assert.Equal(t, "styled", cfg.Display)
	assert.True(t, cfg.Watch)
	assert.Equal(t, 200*time.Millisecond, cfg.WatchDelay)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 200, cfg.Cache.SizeMB)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "delimiters: lines\ndisplay: plain\ncase_sensitive: false\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load([]string{"--config", path, "-f", "doc.txt", "--display", "styled", "-t", "a b"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "doc.txt", cfg.File)
	assert.Equal(t, "a b", cfg.Terms)
	assert.Equal(t, "styled", cfg.Display)
	assert.Equal(t, terms.DelimitersLines, cfg.DelimiterSet())
	assert.False(t, cfg.CaseSensitive)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadDefaultConfigLocation(t *testing.T) {
	isolate(t)

	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "docsearch")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("show_missing: true\n"), 0o644))

	cfg, err := Load(nil, io.Discard)
	require.NoError(t, err)
	assert.True(t, cfg.ShowMissing)
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("DOCSEARCH_WATCH", "false")
	t.Setenv("DOCSEARCH_LOG_FILE", "/tmp/docsearch.log")

	cfg, err := Load(nil, io.Discard)
	require.NoError(t, err)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "/tmp/docsearch.log", cfg.Log.File)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}, io.Discard)
	assert.Error(t, err)
}

func TestLoadBadFlag(t *testing.T) {
	isolate(t)

	_, err := Load([]string{"--no-such-flag"}, io.Discard)
	assert.Error(t, err)
}

func TestLoadVersion(t *testing.T) {
	isolate(t)

	cfg, err := Load([]string{"--version"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, cfg.ShowVersion)
}

func TestValidate(t *testing.T) {
	base := Config{Delimiters: "extended", Display: "plain"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "bad delimiters", mutate: func(c *Config) { c.Delimiters = "words" }, wantErr: true},
		{name: "bad display", mutate: func(c *Config) { c.Display = "html" }, wantErr: true},
		{name: "print without terms", mutate: func(c *Config) { c.Print = true }, wantErr: true},
		{name: "print with terms", mutate: func(c *Config) { c.Print = true; c.Terms = "x" }},
		{name: "negative delay", mutate: func(c *Config) { c.WatchDelay = -time.Second }, wantErr: true},
		{name: "cache without size", mutate: func(c *Config) { c.Cache.Enabled = true }, wantErr: true},
		{name: "cache with size", mutate: func(c *Config) { c.Cache = Cache{Enabled: true, SizeMB: 10} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadCacheFlag(t *testing.T) {
	isolate(t)

	cfg, err := Load([]string{"--cache=false"}, io.Discard)
	require.NoError(t, err)
	assert.False(t, cfg.Cache.Enabled)
}

func TestCacheDir(t *testing.T) {
	explicit := Config{Cache: Cache{Dir: "/var/cache/ds"}}
	assert.Equal(t, "/var/cache/ds", explicit.CacheDir())

	isolate(t)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	assert.Equal(t, filepath.Join(os.Getenv("XDG_CACHE_HOME"), "docsearch"), Config{}.CacheDir())
}

func TestLoadCacheAndLogFlags(t *testing.T) {
	isolate(t)

	cfg, err := Load([]string{
		"--cache-dir", "/tmp/docsearch-cache",
		"--cache-size", "50",
		"--cache-ttl", "2h",
		"--log-format", "console",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/docsearch-cache", cfg.CacheDir())
	assert.Equal(t, 50, cfg.Cache.SizeMB)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadCacheFlagsKeepFileValues(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "cache:\n  size_mb: 10\n  ttl: 1h\nlog:\n  format: console\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load([]string{"--config", path}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Cache.SizeMB)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "console", cfg.Log.Format)
}
