package config_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngcc-go/packages/compiler-cli/config"
	"ngcc-go/packages/compiler-cli/logging"
	"ngcc-go/packages/compiler-cli/ngtsc/annotations"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ngcc-go.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("should use defaults without a file", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.Workers)
		assert.Equal(t, annotations.DefaultHandlerNames, cfg.Handlers)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("should read the toml file", func(t *testing.T) {
		path := writeConfig(t, `
workers = 4
resource_root = "src"
handlers = ["component", "ng-module"]
strict_decorator_import = true

[logging]
level = "debug"
format = "json"
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Workers)
		assert.Equal(t, "src", cfg.ResourceRoot)
		assert.Equal(t, []string{"component", "ng-module"}, cfg.Handlers)
		assert.True(t, cfg.StrictDecoratorImport)
		assert.Equal(t, logging.Config{Level: "debug", Format: logging.FormatJSON}, cfg.Logging)
	})

	t.Run("should apply environment then options", func(t *testing.T) {
		t.Setenv(config.EnvWorkers, "8")
		t.Setenv(config.EnvLogLevel, "warn")

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.Workers)
		assert.Equal(t, "warn", cfg.Logging.Level)

		cfg, err = config.Load("", config.WithWorkers(2), config.WithLogLevel("error"))
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, "error", cfg.Logging.Level)
	})

	t.Run("should reject a non-numeric worker count in the environment", func(t *testing.T) {
		t.Setenv(config.EnvWorkers, "many")

		_, err := config.Load("")
		require.Error(t, err)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
		assert.Contains(t, err.Error(), config.EnvWorkers)
	})

	t.Run("should report missing files", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("should report malformed files", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "workers = ["))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		opt  config.Option
	}{
		{"zero workers", config.WithWorkers(0)},
		{"too many workers", config.WithWorkers(65)},
		{"unknown handler", config.WithHandlers("component", "router")},
		{"duplicate handler", config.WithHandlers("pipe", "pipe")},
		{"unknown log level", config.WithLogLevel("verbose")},
	}
	for _, c := range cases {
		t.Run("should reject "+c.name, func(t *testing.T) {
			_, err := config.Load("", c.opt)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}

	t.Run("should accept a resource root override", func(t *testing.T) {
		cfg, err := config.Load("", config.WithResourceRoot("/srv/app"))
		require.NoError(t, err)
		assert.Equal(t, "/srv/app", cfg.ResourceRoot)
	})
}
