package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PLANT_ID_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL",
		"PLANT_ID_BASE_URL", "WIKIPEDIA_BASE_URL", "TARGET_LANGUAGES",
		"CLASSIFY_TIMEOUT", "SUMMARY_TIMEOUT", "TRANSLATE_TIMEOUT",
		"SERVER_URL", "LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "FORMAT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "gemini-1.5-flash", config.GeminiModel)
	assert.Equal(t, "https://api.plant.id/v3", config.PlantIDBaseURL)
	assert.Equal(t, "https://en.wikipedia.org/api/rest_v1", config.WikipediaBaseURL)
	assert.Equal(t, []string{"hi", "ta", "kn"}, config.TargetLanguages)
	assert.Equal(t, 30*time.Second, config.ClassifyTimeout)
	assert.Equal(t, 8*time.Second, config.SummaryTimeout)
	assert.Equal(t, 8*time.Second, config.TranslateTimeout)
	assert.Equal(t, "http://localhost:5000", config.ServerURL)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.PlantIDAPIKey)
	assert.Empty(t, config.GeminiAPIKey)
}

func TestLoadConfigEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLANT_ID_API_KEY", "p-key")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("TARGET_LANGUAGES", "ta, te ,")
	t.Setenv("SUMMARY_TIMEOUT", "2s")
	t.Setenv("SERVER_URL", "http://plants.internal:5000")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "p-key", config.PlantIDAPIKey)
	assert.Equal(t, "g-key", config.GeminiAPIKey)
	assert.Equal(t, []string{"ta", "te"}, config.TargetLanguages)
	assert.Equal(t, 2*time.Second, config.SummaryTimeout)
	assert.Equal(t, "http://plants.internal:5000", config.ServerURL)
}

func TestLoadConfigGoogleAPIKeyAlias(t *testing.T) {
	tests := []struct {
		name   string
		gemini string
		google string
		want   string
	}{
		{"gemini only", "gemini", "", "gemini"},
		{"google only", "", "google", "google"},
		{"gemini wins", "gemini", "google", "gemini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.gemini != "" {
				t.Setenv("GEMINI_API_KEY", tt.gemini)
			}
			if tt.google != "" {
				t.Setenv("GOOGLE_API_KEY", tt.google)
			}

			config, err := LoadConfig()
			require.NoError(t, err)
			assert.Equal(t, tt.want, config.GeminiAPIKey)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "plantid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
gemini_model: gemini-2.0-flash
target_languages:
  - ta
  - kn
translate_timeout: 3s
`), 0o600))
	viper.Set("config", path)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, "gemini-2.0-flash", config.GeminiModel)
	assert.Equal(t, []string{"ta", "kn"}, config.TargetLanguages)
	assert.Equal(t, 3*time.Second, config.TranslateTimeout)
}

func TestLoadConfigNegativeTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLASSIFY_TIMEOUT", "-1s")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfigUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "warn"}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "warn", config.LogLevel)

	config.UpdateFromFlags(false, false, false, "json", "debug")
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
}
