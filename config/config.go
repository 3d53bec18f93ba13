package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/snosratiershad/avasho-go/avasho"
)

type Config struct {
	GatewayToken   string
	GatewayBaseURL string
	GatewayTimeout time.Duration
	DefaultSpeaker avasho.Speaker
	Port           string
	LogLevel       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	JobTTL         time.Duration
	S3Bucket       string
	S3Region       string
	LocalMode      bool
}

// ArchiveEnabled reports whether short-speech audio should be copied to S3.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

// JobsEnabled reports whether long-speech jobs should be tracked in Redis.
func (c *Config) JobsEnabled() bool {
	return c.RedisAddr != ""
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	speaker, err := avasho.ParseSpeaker(getEnv("AVASHO_DEFAULT_SPEAKER", "afra"))
	if err != nil {
		return nil, fmt.Errorf("AVASHO_DEFAULT_SPEAKER: %w", err)
	}

	cfg := &Config{
		GatewayToken:   getEnv("AVASHO_TOKEN", ""),
		GatewayBaseURL: getEnv("AVASHO_BASE_URL", avasho.DefaultBaseURL),
		GatewayTimeout: time.Duration(getEnvInt("AVASHO_TIMEOUT_SECONDS", 60)) * time.Second,
		DefaultSpeaker: speaker,
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		JobTTL:         time.Duration(getEnvInt("JOB_TTL_HOURS", 24)) * time.Hour,
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		LocalMode:      getEnvBool("LOCAL_MODE", false),
	}

	// Local mode never reaches the gateway, so it runs without a token.
	if cfg.GatewayToken == "" && !cfg.LocalMode {
		return nil, errors.New("AVASHO_TOKEN environment variable is required")
	}

	if cfg.GatewayTimeout <= 0 {
		return nil, errors.New("AVASHO_TIMEOUT_SECONDS must be positive")
	}

	if cfg.JobTTL <= 0 {
		return nil, errors.New("JOB_TTL_HOURS must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer environment value")
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-boolean environment value")
	}
	return defaultValue
}
