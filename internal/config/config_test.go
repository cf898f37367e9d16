package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("test", flag.ContinueOnError)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlagSet(), []string{"-env-file", "does-not-exist.env"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.App.Environment)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Storage.DataPath != "./data" {
		t.Errorf("DataPath = %q, want ./data", cfg.Storage.DataPath)
	}
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	t.Setenv("LOREKEEP_PORT", "9000")

	cfg, err := Load(newFlagSet(), []string{"-port", "7070", "-env-file", "none.env"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("Port = %q, want flag value 7070", cfg.Server.Port)
	}
}

func TestLoadEnvVariable(t *testing.T) {
	t.Setenv("LOREKEEP_LOG_LEVEL", "debug")

	cfg, err := Load(newFlagSet(), []string{"-env-file", "none.env"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Logger.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logger.Level)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment line\nLOREKEEP_DATA_PATH=/srv/lorekeep\nLOREKEEP_PORT=\"6060\"\n"
	if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// Ensure the process env does not mask the file values.
	t.Setenv("LOREKEEP_DATA_PATH", "")
	os.Unsetenv("LOREKEEP_DATA_PATH")
	t.Setenv("LOREKEEP_PORT", "")
	os.Unsetenv("LOREKEEP_PORT")

	cfg, err := Load(newFlagSet(), []string{"-env-file", envPath})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.DataPath != "/srv/lorekeep" {
		t.Errorf("DataPath = %q, want /srv/lorekeep", cfg.Storage.DataPath)
	}
	if cfg.Server.Port != "6060" {
		t.Errorf("Port = %q, want 6060 (quotes stripped)", cfg.Server.Port)
	}
}

func TestLoadBadDuration(t *testing.T) {
	t.Setenv("LOREKEEP_READ_TIMEOUT", "not-a-duration")

	if _, err := Load(newFlagSet(), []string{"-env-file", "none.env"}); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}
