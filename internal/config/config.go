package config

import (
	"os"
	"strconv"

	"dataqc/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings. URL may be empty, in
// which case the server falls back to the in-memory rule store.
type DatabaseConfig struct {
	URL string
}

// AnalysisConfig holds engine tuning knobs. The defaults are the documented
// behavior; changing the threshold changes every quality score users see.
type AnalysisConfig struct {
	SampleSize        int
	ZScoreThreshold   float64
	MinOutlierSamples int
}

// DefaultAnalysisConfig returns the engine defaults
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		SampleSize:        100,
		ZScoreThreshold:   2.5,
		MinOutlierSamples: 5,
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Analysis: loadAnalysisConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadAnalysisConfig() AnalysisConfig {
	cfg := DefaultAnalysisConfig()
	cfg.SampleSize = getEnvIntOrDefault("ANALYSIS_SAMPLE_SIZE", cfg.SampleSize)
	cfg.ZScoreThreshold = getEnvFloatOrDefault("ANALYSIS_ZSCORE_THRESHOLD", cfg.ZScoreThreshold)
	cfg.MinOutlierSamples = getEnvIntOrDefault("ANALYSIS_MIN_OUTLIER_SAMPLES", cfg.MinOutlierSamples)
	return cfg
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Analysis.SampleSize <= 0 {
		return errors.ConfigInvalid("analysis sample size must be positive")
	}
	if config.Analysis.ZScoreThreshold <= 0 {
		return errors.ConfigInvalid("z-score threshold must be positive")
	}
	if config.Analysis.MinOutlierSamples < 2 {
		return errors.ConfigInvalid("minimum outlier sample size must be at least 2")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
