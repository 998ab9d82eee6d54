// Package config resolves process-level configuration for cadcopilot.
//
// Values come from the environment, optionally seeded from a .env file in
// the working directory. Command-line flags override them in cmd.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhubert/cadcopilot/internal/errors"
)

// Environment variable names.
const (
	EnvBridgeCmd    = "CADCOPILOT_BRIDGE_CMD"
	EnvSettingsPath = "CADCOPILOT_SETTINGS_PATH"
	EnvSettingsDB   = "CADCOPILOT_SETTINGS_DB"
	EnvLogPath      = "CADCOPILOT_LOG_PATH"
	EnvCallTimeout  = "CADCOPILOT_CALL_TIMEOUT"
	EnvFixtureFail  = "CADCOPILOT_FIXTURE_FAIL"
	EnvNotify       = "CADCOPILOT_NOTIFY"
)

// DefaultCallTimeout bounds a single bridge call.
const DefaultCallTimeout = 60 * time.Second

// Config holds the resolved configuration.
type Config struct {
	// BridgeCmd is the command line of the host bridge process. Empty
	// selects the built-in fixture bridge.
	BridgeCmd string

	SettingsPath string // JSON settings file; empty means the default location
	SettingsDB   string // SQLite settings database; takes the place of SettingsPath
	LogPath      string

	CallTimeout time.Duration
	FixtureFail bool // fixture bridge reports an execution failure
	Notify      bool // desktop notification when an execution finishes
}

// LoadEnvFile loads a .env file if one exists. A missing file is not an error.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load reads configuration from environment variables. It does not
// validate: flags may still override values, so callers run Validate on
// the final result.
func Load() *Config {
	return &Config{
		BridgeCmd:    strings.TrimSpace(getEnv(EnvBridgeCmd, "")),
		SettingsPath: getEnv(EnvSettingsPath, ""),
		SettingsDB:   getEnv(EnvSettingsDB, ""),
		LogPath:      getEnv(EnvLogPath, ""),
		CallTimeout:  getEnvDuration(EnvCallTimeout, DefaultCallTimeout),
		FixtureFail:  getEnvBool(EnvFixtureFail, false),
		Notify:       getEnvBool(EnvNotify, false),
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.CallTimeout <= 0 {
		return errors.ConfigInvalid("call timeout must be positive")
	}
	if c.SettingsPath != "" && c.SettingsDB != "" {
		return errors.ConfigInvalid("settings file and settings database are mutually exclusive")
	}
	return nil
}

// BridgeArgs splits BridgeCmd into a program and its arguments.
func (c *Config) BridgeArgs() []string {
	return strings.Fields(c.BridgeCmd)
}

// UsesFixture reports whether the built-in fixture bridge should be used.
func (c *Config) UsesFixture() bool {
	return len(c.BridgeArgs()) == 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// getEnvDuration accepts Go duration strings ("90s") or bare seconds ("90").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
