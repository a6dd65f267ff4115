package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Catalog   CatalogConfig
	Extractor ExtractorConfig
	Validator ValidatorConfig
	LLM       LLMConfig
}

// CatalogConfig holds catalog fetch/cache configuration
type CatalogConfig struct {
	URL       string
	FilePath  string
	CacheDB   string
	CacheTTL  time.Duration
	Delimiter string
	Timeout   time.Duration
}

// ExtractorConfig holds extraction parameters
type ExtractorConfig struct {
	CodeLength int
	MaxPages   int
}

// ValidatorConfig holds validation thresholds
type ValidatorConfig struct {
	Tolerance     float64 // relative bound on |total - qty*unit|
	AbsoluteFloor float64 // sub-cent rounding floor
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			URL:       getEnv("CATALOG_URL", ""),
			FilePath:  getEnv("CATALOG_FILE", ""),
			CacheDB:   getEnv("CATALOG_CACHE_DB", "./trcheck-catalog.db"),
			CacheTTL:  getEnvAsDuration("CATALOG_CACHE_TTL", time.Hour),
			Delimiter: getEnv("CATALOG_DELIMITER", ";"),
			Timeout:   getEnvAsDuration("CATALOG_TIMEOUT", 30*time.Second),
		},
		Extractor: ExtractorConfig{
			CodeLength: getEnvAsInt("TRCHECK_CODE_LENGTH", 6),
			MaxPages:   getEnvAsInt("TRCHECK_MAX_PAGES", 0),
		},
		Validator: ValidatorConfig{
			Tolerance:     getEnvAsFloat64("TRCHECK_TOLERANCE", 0.02),
			AbsoluteFloor: getEnvAsFloat64("TRCHECK_TOLERANCE_FLOOR", 0.01),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Catalog.URL == "" && c.Catalog.FilePath == "" {
		return NewAppError("CONFIG_ERROR", "CATALOG_URL or CATALOG_FILE is required", ErrInvalidInput)
	}
	if c.Extractor.CodeLength <= 0 {
		return NewAppError("CONFIG_ERROR", "TRCHECK_CODE_LENGTH must be positive", ErrInvalidInput)
	}
	if c.Validator.Tolerance < 0 {
		return NewAppError("CONFIG_ERROR", "TRCHECK_TOLERANCE must be non-negative", ErrInvalidInput)
	}
	return nil
}
