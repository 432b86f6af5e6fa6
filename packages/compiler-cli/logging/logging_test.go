package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngcc-go/packages/compiler-cli/logging"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("should write structured json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewWithWriter(logging.Config{Level: "debug", Format: logging.FormatJSON}, &buf)
		logger.Debug().Str("class", "AppCmp").Msg("matched")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "AppCmp", entry["class"])
		assert.Equal(t, "matched", entry["message"])
	})

	t.Run("should filter entries below the level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewWithWriter(logging.Config{Level: "warn", Format: logging.FormatJSON}, &buf)
		logger.Info().Msg("hidden")
		assert.Zero(t, buf.Len())

		logger.Warn().Msg("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("should render text by default", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewWithWriter(logging.Config{}, &buf)
		logger.Info().Str("file", "app.yaml").Msg("analyzed")
		assert.Contains(t, buf.String(), "analyzed")
		assert.Contains(t, buf.String(), "app.yaml")
	})
}
