/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "redis", cfg.Engine)
	require.Equal(t, ":", cfg.Delimiter)
	require.Equal(t, "registry", cfg.Redis.Prefix)
	require.Equal(t, "sqlite", cfg.SQL.Driver)
	require.Zero(t, cfg.Cache.TTL)
	require.False(t, cfg.Tracing.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SETTINGSTORE_ENGINE", "sql")
	t.Setenv("SETTINGSTORE_SQL_DSN", "/tmp/settings.db")
	t.Setenv("SETTINGSTORE_REDIS_DB", "3")
	t.Setenv("SETTINGSTORE_CACHE_TTL", "30s")
	t.Setenv("SETTINGSTORE_TRACING_ENABLED", "true")
	t.Setenv("SETTINGSTORE_DYNAMODB_ACCESS_KEY", "AKIA")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "sql", cfg.Engine)
	require.Equal(t, "/tmp/settings.db", cfg.SQL.DSN)
	require.Equal(t, 3, cfg.Redis.DB)
	require.Equal(t, 30*time.Second, cfg.Cache.TTL)
	require.True(t, cfg.Tracing.Enabled)
	require.Equal(t, "AKIA", cfg.DynamoDB.AccessKey)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
engine: dynamodb
delimiter: "|"
default_values: /etc/settings/defaults.yaml
dynamodb:
  table: prefs
  endpoint: http://localhost:8000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "dynamodb", cfg.Engine)
	require.Equal(t, "|", cfg.Delimiter)
	require.Equal(t, "/etc/settings/defaults.yaml", cfg.DefaultValues)
	require.Equal(t, "prefs", cfg.DynamoDB.Table)
	require.Equal(t, "http://localhost:8000", cfg.DynamoDB.Endpoint)
	require.Equal(t, "us-east-1", cfg.DynamoDB.Region)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settingstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: sql\n"), 0o600))
	t.Setenv("SETTINGSTORE_ENGINE", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Engine)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Delimiter = ""
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Cache.TTL = -time.Second
	require.Error(t, cfg.Validate())
}
