package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/mapcode/pkg/cache"
	"github.com/ssargent/mapcode/pkg/config"
)

func TestServeCommand(t *testing.T) {
	t.Run("flags override config", func(t *testing.T) {
		starter := useFakeServer(t)
		dataDir := t.TempDir()

		_, _, err := run(t, "", "serve", "--port", "9090", "--bind", "0.0.0.0", "--api-key", "k", "--data-dir", dataDir)
		require.NoError(t, err)
		require.Equal(t, 1, starter.calls)

		assert.Equal(t, 9090, starter.config.Port)
		assert.Equal(t, "0.0.0.0", starter.config.Bind)
		assert.Equal(t, "k", starter.config.APIKey)
		assert.Equal(t, 4, starter.config.BatchWorkers)
		assert.Equal(t, 10000, starter.config.BatchMaxItems)

		require.NotNil(t, starter.deps.Engine)
		assert.Equal(t, 11, starter.deps.Engine.Table().Count())
		assert.NotNil(t, starter.deps.Jobs)
		assert.IsType(t, cache.Noop{}, starter.deps.Cache)
		assert.DirExists(t, filepath.Join(dataDir, "jobs"))
	})

	t.Run("config file", func(t *testing.T) {
		starter := useFakeServer(t)
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.yaml")
		cfg := config.DefaultConfig()
		cfg.DataDir = filepath.Join(dir, "data")
		cfg.Port = 7070
		cfg.Security.APIKey = "from-file"
		cfg.Batch.Workers = 2
		require.NoError(t, config.SaveConfig(cfg, configPath))

		_, _, err := run(t, configPath, "serve")
		require.NoError(t, err)
		assert.Equal(t, 7070, starter.config.Port)
		assert.Equal(t, "from-file", starter.config.APIKey)
		assert.Equal(t, 2, starter.config.BatchWorkers)
	})

	t.Run("auto api key", func(t *testing.T) {
		starter := useFakeServer(t)
		out, _, err := run(t, "", "serve", "--data-dir", t.TempDir())
		require.NoError(t, err)
		assert.Len(t, starter.config.APIKey, 64)
		assert.Contains(t, out, starter.config.APIKey)
	})

	t.Run("invalid config", func(t *testing.T) {
		starter := useFakeServer(t)
		_, _, err := run(t, "", "serve", "--port", "70000", "--data-dir", t.TempDir())
		assert.Error(t, err)
		assert.Zero(t, starter.calls)
	})

	t.Run("no container", func(t *testing.T) {
		prev := container
		SetContainer(nil)
		t.Cleanup(func() { SetContainer(prev) })

		_, _, err := run(t, "", "serve", "--data-dir", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "container")
	})
}

func TestUpCommand(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	dataDir := filepath.Join(dir, "data")

	t.Run("bootstrap and config creation", func(t *testing.T) {
		starter := useFakeServer(t)

		out, _, err := run(t, configPath, "up", "--data-dir", dataDir, "--print-keys")
		require.NoError(t, err)
		assert.Contains(t, out, "First run detected")
		assert.True(t, config.ConfigExists(configPath))

		loaded, err := config.LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, dataDir, loaded.DataDir)
		assert.Len(t, loaded.Security.APIKey, 64)
		assert.Equal(t, loaded.Security.APIKey, starter.config.APIKey)
		assert.Contains(t, out, "API Key: "+loaded.Security.APIKey)
		assert.DirExists(t, filepath.Join(dataDir, "jobs"))
	})

	t.Run("load existing config", func(t *testing.T) {
		starter := useFakeServer(t)
		loaded, err := config.LoadConfig(configPath)
		require.NoError(t, err)

		out, _, err := run(t, configPath, "up", "--port", "9001")
		require.NoError(t, err)
		assert.Contains(t, out, "Loaded existing configuration from "+configPath)
		assert.False(t, strings.Contains(out, "First run detected"))
		assert.Equal(t, loaded.Security.APIKey, starter.config.APIKey)
		assert.Equal(t, 9001, starter.config.Port)
	})

	t.Run("environment api key wins", func(t *testing.T) {
		starter := useFakeServer(t)
		t.Setenv("MAPCODE_API_KEY", "from-env")
		fresh := filepath.Join(t.TempDir(), "config.yaml")

		_, _, err := run(t, fresh, "up", "--data-dir", filepath.Join(t.TempDir(), "data"))
		require.NoError(t, err)
		assert.Equal(t, "from-env", starter.config.APIKey)
		assert.True(t, config.ConfigExists(fresh))
	})
}
