package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"songboard/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port                string
	DBPath              string
	RatingMax           int
	WeekAnchor          string
	RolloverCron        string
	DiscordChannelID    string
	SpotifyClientID     string
	SpotifyClientSecret string
	LogLevel            string
	LogFormat           string
}

// Load loads configuration from the environment, reading a .env file first
// if one is present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                getEnv("PORT", constants.DefaultPort),
		DBPath:              getEnv("DB_PATH", constants.DefaultDBPath),
		RatingMax:           getEnvInt("RATING_MAX", constants.DefaultRatingMax),
		WeekAnchor:          getEnv("WEEK_ANCHOR", constants.DefaultWeekAnchor),
		RolloverCron:        getEnv("ROLLOVER_CRON", constants.DefaultRolloverCron),
		DiscordChannelID:    getEnv("DISCORD_CHANNEL_ID", ""),
		SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
	}
}

// AnchorWeekday resolves the configured anchor day name to a time.Weekday.
// Validate has already checked the name is valid.
func (c *Config) AnchorWeekday() time.Weekday {
	wd, _ := parseWeekday(c.WeekAnchor)
	return wd
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	if c.RatingMax < 2 {
		errors = append(errors, fmt.Sprintf("RATING_MAX must be at least 2, got: %d", c.RatingMax))
	}

	if _, err := parseWeekday(c.WeekAnchor); err != nil {
		errors = append(errors, fmt.Sprintf("WEEK_ANCHOR must be a weekday name, got: %s", c.WeekAnchor))
	}

	if _, err := cron.ParseStandard(c.RolloverCron); err != nil {
		errors = append(errors, fmt.Sprintf("ROLLOVER_CRON is not a valid cron expression: %s", c.RolloverCron))
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %s", name)
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
