package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// MaxTicksPerSecond bounds the game loop rate so the tick interval stays positive
const MaxTicksPerSecond = 1000

// Config holds all configuration for the application
type Config struct {
	Redis  RedisConfig
	Armory ArmoryConfig
	Log    LogConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string // Optional: definitions stay in memory when empty
}

// ArmoryConfig holds game loop configuration
type ArmoryConfig struct {
	Locale         string
	TicksPerSecond int
}

// TickInterval returns the wall-clock duration of one tick
func (c ArmoryConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TicksPerSecond)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json", "text"
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Armory: ArmoryConfig{
			Locale:         getEnvOrDefault("ARMORY_LOCALE", "en-US"),
			TicksPerSecond: getEnvAsIntOrDefault("TICKS_PER_SECOND", 20),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	// Validate
	if cfg.Armory.TicksPerSecond <= 0 || cfg.Armory.TicksPerSecond > MaxTicksPerSecond {
		return nil, fmt.Errorf("TICKS_PER_SECOND must be between 1 and %d, got %d",
			MaxTicksPerSecond, cfg.Armory.TicksPerSecond)
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be json or text, got %q", cfg.Log.Format)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
