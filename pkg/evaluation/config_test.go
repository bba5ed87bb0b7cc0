package evaluation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestConfigFromJson(t *testing.T) {
	t.Run("Partial config", func(t *testing.T) {
		config, err := ConfigFromJson(writeConfig(t, `{"workers": 3}`))

		require.NoError(t, err)
		assert.Equal(t, Config{Workers: 3, FullReport: true}, config)
	})

	t.Run("Full config", func(t *testing.T) {
		config, err := ConfigFromJson(writeConfig(t, `{"workers": 1, "fullReport": false}`))

		require.NoError(t, err)
		assert.Equal(t, Config{Workers: 1, FullReport: false}, config)
	})

	t.Run("No workers", func(t *testing.T) {
		_, err := ConfigFromJson(writeConfig(t, `{"workers": 0}`))
		assert.Error(t, err)
	})

	t.Run("Malformed config", func(t *testing.T) {
		_, err := ConfigFromJson(writeConfig(t, `{"workers": "many"}`))
		assert.Error(t, err)
	})

	t.Run("Missing config", func(t *testing.T) {
		_, err := ConfigFromJson(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})
}
