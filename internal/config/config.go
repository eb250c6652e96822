package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/stateview-dev/stateview/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "stateview.json"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"
)

// Config represents the complete stateview.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Port is the server port.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Static contains static file serving configuration.
	Static StaticConfig `json:"static,omitempty"`

	// StateURLs contains bookmark redirect configuration.
	StateURLs StateURLsConfig `json:"stateUrls,omitempty"`

	// Observability contains metrics and tracing configuration.
	Observability ObservabilityConfig `json:"observability,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// StaticConfig contains static file serving configuration.
type StaticConfig struct {
	// Dir is the directory containing static files.
	Dir string `json:"dir,omitempty"`

	// Prefix is the URL prefix for static files (default: "/").
	Prefix string `json:"prefix,omitempty"`
}

// StateURLsConfig contains bookmark redirect configuration.
type StateURLsConfig struct {
	// Disabled turns bookmark redirects off for page routes.
	Disabled bool `json:"disabled,omitempty"`

	// Denylist appends cookie names to the built-in URL denylist.
	Denylist []string `json:"denylist,omitempty"`
}

// ObservabilityConfig contains metrics and tracing configuration.
type ObservabilityConfig struct {
	// Metrics enables the Prometheus middleware and /metrics endpoint.
	Metrics bool `json:"metrics,omitempty"`

	// MetricsPath is where the Prometheus handler is mounted.
	MetricsPath string `json:"metricsPath,omitempty"`

	// Tracing enables the OpenTelemetry middleware.
	Tracing bool `json:"tracing,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// HotReload enables the live reload channel in development.
	HotReload bool `json:"hotReload,omitempty"`

	// Watch contains paths to watch for changes.
	Watch []string `json:"watch,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Port:    DefaultPort,
		Host:    DefaultHost,
		Static: StaticConfig{
			Dir:    "public",
			Prefix: "/",
		},
		Observability: ObservabilityConfig{
			MetricsPath: "/metrics",
		},
		Dev: DevConfig{
			HotReload: true,
			Watch:     []string{"views", "public"},
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for stateview.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E201").
				WithDetail("No stateview.json found in %s", filepath.Dir(path)).
				WithSuggestion("Create stateview.json at the project root or pass --config")
		}
		return nil, errors.New("E201").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E202").
			WithDetail("Failed to parse stateview.json: %s", err.Error()).
			WithSuggestion("Check that stateview.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E202").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E201").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Static.Dir == "" {
		c.Static.Dir = "public"
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = "/"
	}
	if c.Observability.MetricsPath == "" {
		c.Observability.MetricsPath = "/metrics"
	}
	if c.Dev.Watch == nil {
		c.Dev.Watch = []string{"views", "public"}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.New("E203").
			WithDetail("Port must be between 0 and 65535, got %d", c.Port)
	}
	return nil
}

// Address returns the listen address string.
func (c *Config) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// URL returns the full base URL for the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// StaticPath returns the absolute path to the static files directory.
func (c *Config) StaticPath() string {
	if filepath.IsAbs(c.Static.Dir) {
		return c.Static.Dir
	}
	return filepath.Join(c.Dir(), c.Static.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing stateview.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E201").
				WithDetail("No stateview.json found in %s or any parent directory", startDir)
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
