package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultDBTimeout = 30 * time.Second

// Config represents environment-derived settings.
type Config struct {
	// AudioExtensions replaces the built-in allow-list when non-empty.
	AudioExtensions []string
	// IgnorePatterns are doublestar patterns, relative to a crate directory,
	// for audio files that should not appear in playlists.
	IgnorePatterns []string
	MixxxDir       string
	LogLevel       string
	LogFile        string
	DBTimeout      time.Duration
}

// Load reads .env (if present) and validates the settings.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AudioExtensions: splitList(os.Getenv("CRATES_AUDIO_EXTENSIONS"), func(s string) string {
			return strings.TrimPrefix(s, ".")
		}),
		IgnorePatterns: splitList(os.Getenv("CRATES_IGNORE_FILES"), nil),
		MixxxDir:       strings.TrimSpace(os.Getenv("MIXXX_DIR")),
		LogLevel:       strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		LogFile:        strings.TrimSpace(os.Getenv("LOG_FILE")),
		DBTimeout:      defaultDBTimeout,
	}

	switch strings.ToLower(strings.TrimSpace(os.Getenv("DEBUG"))) {
	case "1", "true", "yes", "on":
		cfg.LogLevel = "debug"
	}
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	case "warning":
		cfg.LogLevel = "warn"
	default:
		return cfg, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", cfg.LogLevel)
	}

	if cfg.MixxxDir != "" && !filepath.IsAbs(cfg.MixxxDir) {
		return cfg, fmt.Errorf("MIXXX_DIR must be an absolute path: %q", cfg.MixxxDir)
	}

	if raw := strings.TrimSpace(os.Getenv("DB_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("DB_TIMEOUT %q: %w", raw, err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("DB_TIMEOUT must be positive, got %s", d)
		}
		cfg.DBTimeout = d
	}

	return cfg, nil
}

func splitList(raw string, normalize func(string) string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if normalize != nil {
			item = normalize(item)
		}
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
