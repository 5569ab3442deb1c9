package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a fresh directory so no stray addressbook.yaml is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "addressbook.json", cfg.DataFile)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdir(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileInWorkingDir(t *testing.T) {
	dir := chdir(t)
	content := "data_file: book.json\nmax_retries: 5\nlog:\n  level: debug\n  format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "addressbook.yaml"), []byte(content), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "book.json", cfg.DataFile)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "addressbook.yaml"), []byte("data_file: book.json\n"), 0644))
	t.Setenv("ADDRESSBOOK_DATA_FILE", "env.json")
	t.Setenv("ADDRESSBOOK_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env.json", cfg.DataFile)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	dir := chdir(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_retries: 0\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "max_retries")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data file", func(c *Config) { c.DataFile = " " }},
		{"zero retries", func(c *Config) { c.MaxRetries = 0 }},
		{"bad level", func(c *Config) { c.Log.Level = "chatty" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWriteDefault(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "conf", "addressbook.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	// Never overwrites.
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.ErrorIs(t, WriteDefault(path), ErrConfigExists)
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "addressbook", "addressbook.yaml"), path)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/ada")
	path, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/ada", ".config", "addressbook", "addressbook.yaml"), path)
}

func TestDefaultPath_NoHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	_, err := DefaultPath()
	assert.Error(t, err)
}
