package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress             string
	Environment            string
	LogLevel               string
	DatabaseURI            string
	AdminSecret            string
	AdminSecretHash        string
	TelegramBotToken       string
	TelegramChatID         string
	TelegramAPIURL         string
	NotifyTimeout          time.Duration
	NotifyConcurrency      int
	ShutdownTimeout        time.Duration
	RejectOrdersWhenClosed bool
}

const (
	defaultRunAddress        = ":8080"
	defaultEnvironment       = "development"
	defaultLogLevel          = "info"
	defaultTelegramAPIURL    = "https://api.telegram.org"
	defaultNotifyTimeout     = 10 * time.Second
	defaultNotifyConcurrency = 8
	defaultShutdownTimeout   = 10 * time.Second
	defaultEnvFile           = ".env"

	// EnvironmentProduction requires a durable database.
	EnvironmentProduction = "production"
)

// Load parses configuration from flags, environment variables and an optional .env file.
func Load() (*Config, error) {
	lookup, err := withDotenv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

// withDotenv layers values from ENV_FILE (default .env) under the process environment.
func withDotenv(base envLookup) (envLookup, error) {
	path := getString(base, "ENV_FILE", defaultEnvFile)
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := base(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:             getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		Environment:            getString(lookup, "APP_ENV", defaultEnvironment),
		LogLevel:               getString(lookup, "LOG_LEVEL", defaultLogLevel),
		DatabaseURI:            getString(lookup, "DATABASE_URI", ""),
		AdminSecret:            getString(lookup, "ADMIN_SECRET", ""),
		AdminSecretHash:        getString(lookup, "ADMIN_SECRET_HASH", ""),
		TelegramBotToken:       getString(lookup, "TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:         getString(lookup, "TELEGRAM_CHAT_ID", ""),
		TelegramAPIURL:         getString(lookup, "TELEGRAM_API_URL", defaultTelegramAPIURL),
		NotifyTimeout:          getDuration(lookup, "NOTIFY_TIMEOUT", defaultNotifyTimeout),
		NotifyConcurrency:      getInt(lookup, "NOTIFY_CONCURRENCY", defaultNotifyConcurrency),
		ShutdownTimeout:        getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		RejectOrdersWhenClosed: getBool(lookup, "REJECT_ORDERS_WHEN_CLOSED", false),
	}

	flags := flag.NewFlagSet("reelorders", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		notifyTimeoutStr   = cfg.NotifyTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.Environment, "env", cfg.Environment, "Deployment environment name")
	flags.StringVar(&cfg.AdminSecret, "admin-secret", cfg.AdminSecret, "Shared admin secret")
	flags.IntVar(&cfg.NotifyConcurrency, "notify-concurrency", cfg.NotifyConcurrency, "Maximum in-flight notifications")
	flags.StringVar(&notifyTimeoutStr, "notify-timeout", notifyTimeoutStr, "Timeout of a single notification call")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.BoolVar(&cfg.RejectOrdersWhenClosed, "reject-when-closed", cfg.RejectOrdersWhenClosed, "Refuse new orders while server status is closed")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.NotifyTimeout, err = time.ParseDuration(notifyTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid notify timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("ADMIN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read admin secret file: %w", err)
		}
		cfg.AdminSecret = strings.TrimSpace(string(content))
	}

	if cfg.NotifyConcurrency <= 0 {
		cfg.NotifyConcurrency = defaultNotifyConcurrency
	}

	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = defaultNotifyTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.AdminSecret == "" && cfg.AdminSecretHash == "" {
		return nil, fmt.Errorf("admin secret or admin secret hash must be provided")
	}

	if cfg.Environment == EnvironmentProduction && cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided in %s", EnvironmentProduction)
	}

	return cfg, nil
}

// NotificationsEnabled reports whether Telegram credentials are configured.
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
