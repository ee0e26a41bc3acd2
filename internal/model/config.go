package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Backend drivers understood by the collection client.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverREST     = "rest"
)

// BackendConfig selects and addresses the data service.
type BackendConfig struct {
	// Driver is one of "sqlite", "postgres" or "rest".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// DSN is the database file (sqlite) or connection string (postgres).
	DSN string `mapstructure:"dsn" yaml:"dsn"`

	// URL is the root URL of the hosted REST data service.
	URL string `mapstructure:"url" yaml:"url"`

	// ServiceKey authenticates against the REST data service. It is
	// normally kept in the system keyring rather than in the file.
	ServiceKey string `mapstructure:"service_key" yaml:"service_key,omitempty"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// LogConfig controls log verbosity and destination.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// envPrefix namespaces environment overrides, e.g. TRACKER_BACKEND_DRIVER.
const envPrefix = "TRACKER"

// DefaultConfigDir returns ~/.config/tracker.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "tracker")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tracker/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	dir := DefaultConfigDir()
	return &AppConfig{
		Backend: BackendConfig{
			Driver: DriverSQLite,
			DSN:    filepath.Join(dir, "tracker.db"),
		},
		Display: DisplayConfig{
			Theme: "default",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "tracker.log"),
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper,
// then applies TRACKER_* environment overrides. A missing file is not an
// error: defaults plus environment are used instead.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can resolve it on Unmarshal.
	def := DefaultAppConfig()
	v.SetDefault("backend.driver", def.Backend.Driver)
	v.SetDefault("backend.dsn", def.Backend.DSN)
	v.SetDefault("backend.url", "")
	v.SetDefault("backend.service_key", "")
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)

	// The service key also answers to the shorter TRACKER_SERVICE_KEY.
	if err := v.BindEnv("backend.service_key", envPrefix+"_BACKEND_SERVICE_KEY", envPrefix+"_SERVICE_KEY"); err != nil {
		return nil, fmt.Errorf("binding service key env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Backend.Driver = strings.ToLower(strings.TrimSpace(cfg.Backend.Driver))
	if cfg.Backend.Driver != DriverPostgres {
		cfg.Backend.DSN = ExpandPath(cfg.Backend.DSN)
	}
	cfg.Log.File = ExpandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the selected backend is fully addressed.
func (c *AppConfig) Validate() error {
	switch c.Backend.Driver {
	case DriverSQLite, DriverPostgres:
		if c.Backend.DSN == "" {
			return fmt.Errorf("backend.dsn is required for driver %q", c.Backend.Driver)
		}
	case DriverREST:
		if c.Backend.URL == "" {
			return errors.New("backend.url is required for driver \"rest\"")
		}
	default:
		return fmt.Errorf("unknown backend.driver %q", c.Backend.Driver)
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed. The service key is never written.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("backend.driver", cfg.Backend.Driver)
	v.Set("backend.dsn", cfg.Backend.DSN)
	v.Set("backend.url", cfg.Backend.URL)
	v.Set("display", cfg.Display)
	v.Set("server", cfg.Server)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
