package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/edibulb/glucocoach/internal/logger"
)

// Storage driver names accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTP   HTTPConfig
	DB     DBConfig
	AI     AIConfig
	Redis  RedisConfig
	Logger LoggerConfig
}

type HTTPConfig struct {
	Port string
}

type DBConfig struct {
	Driver string // "postgres" or "sqlite"

	// Postgres
	Host     string
	Port     string
	User     string
	Password string
	DBName   string

	// SQLite
	Path string
}

type AIConfig struct {
	GeminiAPIKey string
	OpenAIAPIKey string
	Timeout      time.Duration
}

type RedisConfig struct {
	Host    string
	Port    string
	Enabled bool
	TTL     time.Duration
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func parseSeconds(key string, defaultSec int) time.Duration {
	raw := getEnvOrDefault(key, strconv.Itoa(defaultSec))
	sec, err := strconv.Atoi(raw)
	if err != nil || sec <= 0 {
		sec = defaultSec
	}
	return time.Duration(sec) * time.Second
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Port: getEnvOrDefault("HTTP_PORT", "3001"),
		},
		DB: DBConfig{
			Driver:   getEnvOrDefault("DB_DRIVER", DriverSQLite),
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "glucocoach"),
			Path:     getEnvOrDefault("SQLITE_PATH", "data.db"),
		},
		AI: AIConfig{
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
			Timeout:      parseSeconds("AI_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Host:    getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:    getEnvOrDefault("REDIS_PORT", "6379"),
			Enabled: getEnvOrDefault("REDIS_ENABLED", "false") == "true",
			TTL:     parseSeconds("SUMMARY_CACHE_TTL_SECONDS", 6*3600),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	if cfg.DB.Driver != DriverPostgres && cfg.DB.Driver != DriverSQLite {
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DB.Driver)
	}

	return cfg, nil
}
