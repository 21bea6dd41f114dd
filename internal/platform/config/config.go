package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultBaseURL = "http://localhost:5000"

type Config struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	LogLevel string        `yaml:"log_level"`
	LogPath  string        `yaml:"log_file"`
}

// Default returns a config pointing at a local advisory backend with no
// request timeout.
func Default() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		LogLevel: "info",
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func New(baseURL string, timeout time.Duration, logLevel, logPath string) (Config, error) {
	cfg := Config{
		BaseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Timeout:  timeout,
		LogLevel: logLevel,
		LogPath:  logPath,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url must be an absolute http(s) url, got %q", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}
