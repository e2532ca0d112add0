package startup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"multi-image-viewer/internal/keyrule"
	"multi-image-viewer/internal/logging"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Folders []string `yaml:"folders"`
	// KeyPattern is nil when unset (DefaultPattern applies); an empty
	// string selects the full-name rule.
	KeyPattern *string `yaml:"key_pattern"`
	OnNoMatch  string  `yaml:"on_no_match"`

	BindAddress    string `yaml:"bind_address"`
	Port           string `yaml:"port"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	MetricsPort    string `yaml:"metrics_port"`

	Watch         bool          `yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	PreviewMaxDimension int `yaml:"preview_max_dimension"`

	LogHTTP  bool   `yaml:"log_http"`
	LogLevel string `yaml:"log_level"`

	// Source is the config file that was read, or "" when none was.
	Source string `yaml:"-"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		OnNoMatch:           string(keyrule.UseFullName),
		BindAddress:         "127.0.0.1",
		Port:                "8080",
		MetricsEnabled:      false,
		MetricsPort:         "9090",
		Watch:               false,
		WatchDebounce:       500 * time.Millisecond,
		PreviewMaxDimension: 1600,
		LogHTTP:             true,
	}
}

// DefaultConfigPath returns ~/.config/multi-image-viewer/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "multi-image-viewer", "config.yaml"), nil
}

// LoadConfig builds the configuration from defaults, the YAML file at path
// and environment variables, in that order. An empty path reads the default
// location, which may be absent; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			logging.Debug("No home directory, skipping config file: %v", err)
		}
		path = p
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if !explicit && errors.Is(err, os.ErrNotExist) {
				logging.Debug("No config file at %s", path)
			} else {
				return nil, err
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadFile overlays the YAML document at path onto cfg. Keys absent from
// the file keep their current values.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("IMAGE_FOLDERS"); v != "" {
		c.Folders = splitFolders(v)
	}
	// An empty KEY_PATTERN is meaningful: it selects the full-name rule.
	if v, ok := os.LookupEnv("KEY_PATTERN"); ok {
		c.KeyPattern = &v
	}
	c.OnNoMatch = getEnv("ON_NO_MATCH", c.OnNoMatch)
	c.BindAddress = getEnv("BIND_ADDRESS", c.BindAddress)
	c.Port = getEnv("PORT", c.Port)
	c.MetricsEnabled = getEnvBool("METRICS_ENABLED", c.MetricsEnabled)
	c.MetricsPort = getEnv("METRICS_PORT", c.MetricsPort)
	c.Watch = getEnvBool("WATCH_FOLDERS", c.Watch)
	c.LogHTTP = getEnvBool("LOG_HTTP", c.LogHTTP)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("WATCH_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid WATCH_DEBOUNCE %q: %w", v, err)
		}
		c.WatchDebounce = d
	}
	if v := os.Getenv("PREVIEW_MAX_DIMENSION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PREVIEW_MAX_DIMENSION %q: %w", v, err)
		}
		c.PreviewMaxDimension = n
	}
	return nil
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if _, err := keyrule.ParsePolicy(c.OnNoMatch); err != nil {
		return err
	}
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			return err
		}
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative")
	}
	if c.PreviewMaxDimension < 0 {
		return fmt.Errorf("preview_max_dimension must not be negative")
	}
	for _, p := range []struct{ name, value string }{{"port", c.Port}, {"metrics_port", c.MetricsPort}} {
		if n, err := strconv.Atoi(p.value); err != nil || n < 0 || n > 65535 {
			return fmt.Errorf("%s %q is not a valid port", p.name, p.value)
		}
	}
	return nil
}

// Rule compiles the configured key rule.
func (c *Config) Rule() (keyrule.Rule, error) {
	policy, err := keyrule.ParsePolicy(c.OnNoMatch)
	if err != nil {
		return keyrule.Rule{}, err
	}
	pattern := keyrule.DefaultPattern
	if c.KeyPattern != nil {
		pattern = *c.KeyPattern
	}
	return keyrule.Compile(pattern, policy)
}

// ListenAddress returns host:port for the application server.
func (c *Config) ListenAddress() string {
	return c.BindAddress + ":" + c.Port
}

// LogConfig logs the effective configuration.
func LogConfig(c *Config) {
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	if c.Source != "" {
		logging.Info("  Config file:           %s", c.Source)
	} else {
		logging.Info("  Config file:           (none)")
	}
	logging.Info("  IMAGE_FOLDERS:         %s", strings.Join(c.Folders, string(os.PathListSeparator)))
	if c.KeyPattern != nil {
		logging.Info("  KEY_PATTERN:           %q", *c.KeyPattern)
	} else {
		logging.Info("  KEY_PATTERN:           (default) %q", keyrule.DefaultPattern)
	}
	logging.Info("  ON_NO_MATCH:           %s", c.OnNoMatch)
	logging.Info("  BIND_ADDRESS:          %s", c.BindAddress)
	logging.Info("  PORT:                  %s", c.Port)
	logging.Info("  METRICS_ENABLED:       %v", c.MetricsEnabled)
	logging.Info("  METRICS_PORT:          %s", c.MetricsPort)
	logging.Info("  WATCH_FOLDERS:         %v", c.Watch)
	logging.Info("  WATCH_DEBOUNCE:        %v", c.WatchDebounce)
	logging.Info("  PREVIEW_MAX_DIMENSION: %d", c.PreviewMaxDimension)
	logging.Info("  LOG_HTTP:              %v", c.LogHTTP)
	logging.Info("  LOG_LEVEL:             %s", logging.GetLevel())
	logging.Info("")
}

func splitFolders(v string) []string {
	var folders []string
	for _, f := range filepath.SplitList(v) {
		if f = strings.TrimSpace(f); f != "" {
			folders = append(folders, f)
		}
	}
	return folders
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
