// Package config provides shared configuration constants and settings
// for the music log application
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName is used for the config directory and as the binary name
	AppName = "mlog"

	// DatabaseFileName is the SQLite file created inside the config directory
	DatabaseFileName = "mlog.db"

	// DatabaseFileDescription is the help text description for the database file flag
	DatabaseFileDescription = "Path to SQLite database file (overrides " + EnvDBPath + ")"

	// EnvDBPath overrides the database location
	EnvDBPath = "MLOG_DB_PATH"

	// EnvPrefix is prepended to every environment variable viper binds
	EnvPrefix = "MLOG"

	// DefaultLogLevel keeps the CLI quiet unless something goes wrong
	DefaultLogLevel = "warn"
)

// Config holds the resolved settings for a single invocation
type Config struct {
	DBPath   string
	LogLevel string
	LogFile  string
}

// Dir returns the directory holding the config file and the default database
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("can't get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Load resolves settings from, in order of precedence, the dbFlag argument,
// MLOG_* environment variables (also read from a .env file in the working
// directory), ~/.config/mlog/config.yaml and built-in defaults
func Load(dbFlag string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed loading .env file: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")

	// MLOG_DB_PATH must keep working even when the home directory is unknown
	if err := v.BindEnv("db_path", EnvDBPath); err != nil {
		return Config{}, err
	}

	dir, dirErr := Dir()
	if dirErr == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := Config{
		DBPath:   strings.TrimSpace(dbFlag),
		LogLevel: v.GetString("log.level"),
		LogFile:  expandHome(v.GetString("log.file")),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = expandHome(v.GetString("db_path"))
	}
	if cfg.DBPath == "" {
		if dirErr != nil {
			return Config{}, dirErr
		}
		cfg.DBPath = filepath.Join(dir, DatabaseFileName)
	}

	return cfg, nil
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
