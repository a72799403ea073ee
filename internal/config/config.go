// ABOUTME: Sunshine configuration management with backend selection.
// ABOUTME: Handles file settings, SUNSHINE_* env overrides, validation, and store factories.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/harperreed/sunshine/internal/charm"
	"github.com/harperreed/sunshine/internal/prefs"
	"github.com/harperreed/sunshine/internal/storage"
	forecastsync "github.com/harperreed/sunshine/internal/sync"
	"github.com/joho/godotenv"
)

// Preference backends.
const (
	PrefsBadger = "badger"
	PrefsCharm  = "charm"
)

// Environment overrides.
const (
	EnvDataDir        = "SUNSHINE_DATA_DIR"
	EnvPrefsBackend   = "SUNSHINE_PREFS_BACKEND"
	EnvUseTodayLayout = "SUNSHINE_TODAY_LAYOUT"
	EnvLanguage       = "SUNSHINE_LANGUAGE"
	EnvLogLevel       = "SUNSHINE_LOG_LEVEL"
	EnvSyncDays       = "SUNSHINE_SYNC_DAYS"
)

var validate = validator.New()

// Config stores sunshine configuration.
type Config struct {
	// DataDir is the root directory for data storage.
	// weather.db and the local prefs database live here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/sunshine.
	DataDir string `json:"data_dir,omitempty"`

	// PrefsBackend selects the preference store: "badger" (default) or "charm".
	PrefsBackend string `json:"prefs_backend,omitempty" validate:"omitempty,oneof=badger charm"`

	// UseTodayLayout enlarges the first list row. Defaults to true.
	UseTodayLayout *bool `json:"use_today_layout,omitempty"`

	// Language is a BCP 47 tag for labels and number formatting.
	Language string `json:"language,omitempty" validate:"omitempty,bcp47_language_tag"`

	LogLevel string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`

	// SyncDays is how many forecast days a sync fetches.
	SyncDays int `json:"sync_days,omitempty" validate:"omitempty,min=1,max=16"`
}

// GetPrefsBackend returns the configured preference backend, defaulting to "badger".
func (c *Config) GetPrefsBackend() string {
	if c.PrefsBackend == "" {
		return PrefsBadger
	}
	return c.PrefsBackend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the weather database path.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "weather.db")
}

// PrefsDir returns the local preference database directory.
func (c *Config) PrefsDir() string {
	return filepath.Join(c.GetDataDir(), "prefs")
}

// TodayLayout reports whether the first row uses the today layout.
func (c *Config) TodayLayout() bool {
	if c.UseTodayLayout == nil {
		return true
	}
	return *c.UseTodayLayout
}

// GetLanguage returns the configured language, defaulting to "en".
func (c *Config) GetLanguage() string {
	if c.Language == "" {
		return "en"
	}
	return c.Language
}

// GetLogLevel returns the configured log level, defaulting to warn.
func (c *Config) GetLogLevel() log.Level {
	if c.LogLevel == "" {
		return log.WarnLevel
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

// GetSyncDays returns the number of days to sync, defaulting to the syncer default.
func (c *Config) GetSyncDays() int {
	if c.SyncDays <= 0 {
		return forecastsync.DefaultDays
	}
	return c.SyncDays
}

// Validate checks field values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from SUNSHINE_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvPrefsBackend); v != "" {
		c.PrefsBackend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvUseTodayLayout); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvUseTodayLayout, err)
		}
		c.UseTodayLayout = &b
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		c.Language = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvSyncDays); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSyncDays, err)
		}
		c.SyncDays = n
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// NewLogger creates a structured logger at the configured level.
func (c *Config) NewLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           c.GetLogLevel(),
		ReportTimestamp: true,
		Prefix:          "sunshine",
	})
}

// OpenProvider opens the weather database and wraps it in the data access facade.
func (c *Config) OpenProvider(logger *log.Logger) (*storage.Provider, error) {
	db, err := storage.Open(c.DBPath())
	if err != nil {
		return nil, err
	}
	return storage.NewProvider(db, logger), nil
}

// OpenPrefs opens the preference store for the configured backend.
func (c *Config) OpenPrefs() (prefs.Store, error) {
	switch backend := c.GetPrefsBackend(); backend {
	case PrefsBadger:
		kv, err := prefs.OpenBadger(c.PrefsDir())
		if err != nil {
			return nil, err
		}
		return prefs.NewKVStore(kv), nil
	case PrefsCharm:
		client, err := charm.InitClient()
		if err != nil {
			return nil, fmt.Errorf("open charm prefs: %w", err)
		}
		return prefs.NewKVStore(client), nil
	default:
		return nil, fmt.Errorf("unknown prefs backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "sunshine", "config.json")
}

// LoadDotEnv loads .env files into the environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads config from disk, applies env overrides, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(GetConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
