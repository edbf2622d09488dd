package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/verdantlabs/plantid/pkg/constants"
	"github.com/verdantlabs/plantid/pkg/plants"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Upstream credentials
	PlantIDAPIKey string
	GeminiAPIKey  string

	// Upstream endpoints
	GeminiModel      string
	PlantIDBaseURL   string
	WikipediaBaseURL string

	// Identification settings. The classify and summary timeouts also set the
	// Plant.id and Wikipedia HTTP client timeouts, so neither is capped by
	// the 30s transport default.
	TargetLanguages  []string
	ClassifyTimeout  time.Duration
	SummaryTimeout   time.Duration
	TranslateTimeout time.Duration

	// Client settings
	ServerURL string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.plantid.yaml or ./.plantid.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up Viper for environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults()
	bindAPIKeys()

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".plantid")
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no_color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		PlantIDAPIKey: viper.GetString("plant_id_api_key"),
		GeminiAPIKey:  viper.GetString("gemini_api_key"),

		GeminiModel:      viper.GetString("gemini_model"),
		PlantIDBaseURL:   viper.GetString("plant_id_base_url"),
		WikipediaBaseURL: viper.GetString("wikipedia_base_url"),

		TargetLanguages:  stringList("target_languages"),
		ClassifyTimeout:  viper.GetDuration("classify_timeout"),
		SummaryTimeout:   viper.GetDuration("summary_timeout"),
		TranslateTimeout: viper.GetDuration("translate_timeout"),

		ServerURL: viper.GetString("server_url"),

		LogLevel:  viper.GetString("log_level"),
		LogFormat: viper.GetString("log_format"),
		LogOutput: viper.GetString("log_output"),
	}

	if config.ClassifyTimeout < 0 || config.SummaryTimeout < 0 || config.TranslateTimeout < 0 {
		return nil, fmt.Errorf("step timeouts must not be negative")
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// setDefaults registers the defaults viper falls back to.
func setDefaults() {
	viper.SetDefault("gemini_model", constants.DefaultGeminiModel)
	viper.SetDefault("plant_id_base_url", constants.PlantIDBaseURL)
	viper.SetDefault("wikipedia_base_url", constants.WikipediaBaseURL)
	viper.SetDefault("target_languages", strings.Join(plants.DefaultLanguageTags, ","))
	viper.SetDefault("classify_timeout", constants.ClassifyTimeout)
	viper.SetDefault("summary_timeout", constants.SummaryTimeout)
	viper.SetDefault("translate_timeout", constants.TranslateTimeout)
	viper.SetDefault("server_url", constants.DefaultServerURL)
	viper.SetDefault("log_format", "auto")
	viper.SetDefault("log_output", "stderr")
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden.
func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindAPIKeys explicitly binds the credential environment variables to Viper.
// GOOGLE_API_KEY is accepted when GEMINI_API_KEY is unset.
func bindAPIKeys() {
	bindings := map[string][]string{
		"plant_id_api_key": {"PLANT_ID_API_KEY"},
		"gemini_api_key":   {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	}

	for key, envVars := range bindings {
		args := append([]string{key}, envVars...)
		if err := viper.BindEnv(args...); err != nil {
			// Log warning but continue - this isn't critical
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}

// stringList reads a list that may be a YAML sequence or a comma-separated string.
func stringList(key string) []string {
	switch v := viper.Get(key).(type) {
	case nil:
		return nil
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return viper.GetStringSlice(key)
	}
}
