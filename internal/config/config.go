package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every application setting so they travel as one value.
type Config struct {
	DBPath      string
	SeedFile    string
	HistoryFile string
	Logging     Logging
}

// Logging configures slog: level and output format.
type Logging struct {
	Level  string
	Format string
}

// Load reads the .env file and fills Config.
func Load() (*Config, error) {
	// 1. Load .env into the process environment.
	// A missing file is fine: whatever the OS has set is used.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Info: no .env file found, using OS environment")
	}

	// 2. Read variables
	dbPath := os.Getenv("BOOKSTORE_DB")
	seedFile := os.Getenv("BOOKSTORE_SEED_FILE")
	historyFile := os.Getenv("BOOKSTORE_HISTORY")
	level := strings.ToLower(withDefault(os.Getenv("LOG_LEVEL"), "warn"))
	format := strings.ToLower(withDefault(os.Getenv("LOG_FORMAT"), "text"))

	// 3. Validate
	switch level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return nil, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", level)
	}
	switch format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT %q is not one of text, json", format)
	}

	// 4. Done
	return &Config{
		DBPath:      resolvePath(withDefault(dbPath, "data/ebookstore_db")),
		SeedFile:    resolvePath(seedFile),
		HistoryFile: resolvePath(historyFile),
		Logging: Logging{
			Level:  level,
			Format: format,
		},
	}, nil
}

func withDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// resolvePath makes a relative path absolute against the working directory.
func resolvePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	if filepath.IsAbs(p) {
		return p
	}

	if cwd, err := os.Getwd(); err == nil {
		return filepath.Clean(filepath.Join(cwd, p))
	}

	return p
}
