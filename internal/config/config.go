// Package config loads application configuration from command-line flags,
// environment variables, and an optional .env file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Server  ServerConfig
	Storage StorageConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	// DataPath is the directory holding the sqlite database and the
	// search index.
	DataPath string
}

// FlagSet is the subset of flag.FlagSet used by Load, so tests can supply
// their own parsed sets.
type FlagSet interface {
	String(name, value, usage string) *string
	Parse(arguments []string) error
}

// Load builds configuration with precedence:
//  1. command-line flags
//  2. environment variables
//  3. .env file
//  4. defaults
func Load(fs FlagSet, args []string) (*Config, error) {
	env := fs.String("env", "", "Environment (development, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	port := fs.String("port", "", "Server port (default: 8080)")
	dataPath := fs.String("data-path", "", "Directory for database and search index")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// .env values only fill unset environment variables.
	if err := loadEnvFile(*envFile); err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Environment: resolve(*env, "LOREKEEP_ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: resolve(*logLevel, "LOREKEEP_LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: resolve(*port, "LOREKEEP_PORT", "8080"),
		},
		Storage: StorageConfig{
			DataPath: resolve(*dataPath, "LOREKEEP_DATA_PATH", "./data"),
		},
	}

	var err error
	cfg.Server.ReadTimeout, err = resolveDuration(*readTimeout, "LOREKEEP_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Server.WriteTimeout, err = resolveDuration(*writeTimeout, "LOREKEEP_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Server.IdleTimeout, err = resolveDuration(*idleTimeout, "LOREKEEP_IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolve picks the first non-empty value among flag, environment
// variable, and default.
func resolve(flagValue, envKey, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}

func resolveDuration(flagValue, envKey string, fallback time.Duration) (time.Duration, error) {
	raw := resolve(flagValue, envKey, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s duration %q: %w", envKey, raw, err)
	}
	return d, nil
}

// loadEnvFile reads KEY=VALUE lines into the process environment without
// overriding variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open env file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("set %s from env file: %w", key, err)
			}
		}
	}
	return scanner.Err()
}
