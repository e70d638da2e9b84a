package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the bot and its web surface.
type Config struct {
	TelegramToken string
	DatabaseURL   string
	// DatabaseSet records whether DATABASE_URL was provided explicitly,
	// as opposed to the local SQLite fallback. The status page reports it.
	DatabaseSet bool
	ListenAddr  string
	// BaseURL is this deployment's public URL; the Telegram webhook is
	// registered as BaseURL + "/api/webhook". Empty skips registration.
	BaseURL       string
	CollectAPIKey string
	LogLevel      string
	// JoinWelcome controls whether an acknowledgement message is sent to
	// users when their join request arrives. Off by default: operators
	// verify requests manually.
	JoinWelcome bool
	// DigestTime is the local HH:MM for the daily favorites digest.
	// Empty disables the digest.
	DigestTime string
}

// Load reads configuration from environment variables, preferring a
// local .env file when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ListenAddr:    strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		BaseURL:       strings.TrimRight(strings.TrimSpace(os.Getenv("BASE_URL")), "/"),
		CollectAPIKey: strings.TrimSpace(os.Getenv("COLLECT_API_KEY")),
		LogLevel:      strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		JoinWelcome:   parseBool(os.Getenv("JOIN_WELCOME")),
		DigestTime:    strings.TrimSpace(os.Getenv("DIGEST_TIME")),
	}

	cfg.DatabaseSet = cfg.DatabaseURL != ""
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "borsabot.db"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return v
}
