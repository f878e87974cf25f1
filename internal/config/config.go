package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the development server the client talks to out of the box
const DefaultAPIURL = "https://localhost:7169/api"

// Config holds runtime settings
type Config struct {
	APIURL      string `yaml:"api_url"`
	InsecureTLS bool   `yaml:"insecure_tls"`
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level"`
	DataDir     string `yaml:"data_dir"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		APIURL:   DefaultAPIURL,
		LogLevel: "info",
		DataDir:  defaultDataDir(),
	}
}

// Load builds the configuration from defaults, the YAML file at path, a
// .env file in the working directory and KANBAN_* environment variables,
// in that order. An empty path means DefaultPath(). Missing files are
// skipped.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.APIURL = getEnv("KANBAN_API_URL", c.APIURL)
	c.LogFile = getEnv("KANBAN_LOG_FILE", c.LogFile)
	c.LogLevel = getEnv("KANBAN_LOG_LEVEL", c.LogLevel)
	c.DataDir = getEnv("KANBAN_DATA_DIR", c.DataDir)

	if v, ok := os.LookupEnv("KANBAN_INSECURE_TLS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("KANBAN_INSECURE_TLS: %w", err)
		}
		c.InsecureTLS = b
	}
	return nil
}

// Validate checks the settings that would otherwise fail late
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api_url is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("api_url %q must be an absolute URL", c.APIURL)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: expected debug, info, warn or error", c.LogLevel)
	}
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/kanban/config.yml
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.yml"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "kanban", "config.yml")
}

func defaultDataDir() string {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".kanban"
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "kanban")
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}
