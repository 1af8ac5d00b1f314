package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"base64-converter/internal/converter"
)

type Config struct {
	Port                     string
	MaxImageBytes            int64
	CopyFeedbackMillis       int
	DefaultImageMIME         string
	AutoDetect               bool
	RequireImagePrefix       bool
	ClipboardTimeoutSeconds  int
	SessionIdleMinutes       int
	DatabaseURL              string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
}

func Default() Config {
	return Config{
		Port:                     "8080",
		MaxImageBytes:            converter.DefaultMaxImageBytes,
		CopyFeedbackMillis:       int(converter.DefaultCopyFeedback / time.Millisecond),
		DefaultImageMIME:         converter.DefaultImageMIME,
		AutoDetect:               true,
		ClipboardTimeoutSeconds:  5,
		SessionIdleMinutes:       60,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Port = raw
	}
	if raw := os.Getenv("MAX_IMAGE_BYTES"); raw != "" {
		if value, err := strconv.ParseInt(raw, 10, 64); err == nil && value > 0 {
			cfg.MaxImageBytes = value
		}
	}
	if raw := os.Getenv("COPY_FEEDBACK_MS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.CopyFeedbackMillis = value
		}
	}
	if raw := os.Getenv("DEFAULT_IMAGE_MIME"); raw != "" && strings.HasPrefix(raw, "image/") {
		cfg.DefaultImageMIME = raw
	}
	if raw := os.Getenv("AUTO_DETECT"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.AutoDetect = value
		}
	}
	if raw := os.Getenv("REQUIRE_IMAGE_PREFIX"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.RequireImagePrefix = value
		}
	}
	if raw := os.Getenv("CLIPBOARD_TIMEOUT_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.ClipboardTimeoutSeconds = value
		}
	}
	if raw := os.Getenv("SESSION_IDLE_MINUTES"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.SessionIdleMinutes = value
		}
	}
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		cfg.DatabaseURL = raw
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	return cfg
}

// SessionOptions maps the config onto converter options. Clipboard and
// Tracker are left for the front-end to fill in.
func (c Config) SessionOptions() converter.Options {
	opts := converter.DefaultOptions()
	opts.MaxImageBytes = c.MaxImageBytes
	opts.DefaultImageMIME = c.DefaultImageMIME
	opts.CopyFeedback = time.Duration(c.CopyFeedbackMillis) * time.Millisecond
	opts.AutoDetect = c.AutoDetect
	opts.RequireImagePrefix = c.RequireImagePrefix
	return opts
}

func (c Config) ClipboardTimeout() time.Duration {
	return time.Duration(c.ClipboardTimeoutSeconds) * time.Second
}

func (c Config) SessionIdle() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}
