// Copyright © 2021 Io FinNet Group, Inc.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "127.0.0.1:5000", cfg.Listen)
}

func TestLoadINI(t *testing.T) {
	path := writeFile(t, "dhlab.ini", `
[server]
listen = 0.0.0.0:8080
read_timeout = 2s
write_timeout = 3s
language = de

[log]
level = debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Listen)
	assert.Equal(t, 2*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
	assert.Equal(t, defaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "dhlab.yaml", `
server:
  listen: ":9000"
  shutdown_timeout: 1m
log:
  level: warn
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
	assert.Equal(t, defaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "en", cfg.Language)
}

func TestLoadYAMLBadDuration(t *testing.T) {
	path := writeFile(t, "dhlab.yml", `
server:
  read_timeout: soon
  write_timeout: later
`)
	_, err := Load(path)
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
}

func TestLoadINIBadDuration(t *testing.T) {
	path := writeFile(t, "dhlab.ini", `
[server]
read_timeout = soon
write_timeout = later
shutdown_timeout = 2s
`)
	_, err := Load(path)
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), "server.read_timeout")
	assert.Contains(t, err.Error(), "server.write_timeout")
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "dhlab.toml", "listen = 1")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	assert.Error(t, err)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := &Config{
		Listen:          "no-port",
		ReadTimeout:     0,
		WriteTimeout:    time.Second,
		ShutdownTimeout: -time.Second,
		LogLevel:        "verbose",
		Language:        "fr",
	}
	err := cfg.Validate()
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 5)
	assert.NoError(t, Default().Validate())
}
