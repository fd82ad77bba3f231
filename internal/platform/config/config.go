package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL         = "https://www.easistent.com"
	DefaultJSONFile        = "meals.json"
	DefaultHTMLFile        = "index.html"
	DefaultEnvFile         = ".env"
	DefaultTimeout         = 30 * time.Second
	DefaultListenAddr      = ":3000"
	DefaultShutdownTimeout = 10 * time.Second
)

// ClientIdentity is sent on every API request so the vendor treats the
// tool like its mobile app.
type ClientIdentity struct {
	AppName   string `yaml:"app_name" env:"APP_NAME"`
	Version   string `yaml:"version" env:"VERSION"`
	Platform  string `yaml:"platform" env:"PLATFORM"`
	UserAgent string `yaml:"user_agent" env:"USER_AGENT"`
}

type Config struct {
	Dir             string         `yaml:"dir" env:"MEALSYNC_DIR"`
	BaseURL         string         `yaml:"base_url" env:"MEALSYNC_BASE_URL"`
	JSONPath        string         `yaml:"json_path" env:"MEALSYNC_JSON_PATH"`
	HTMLPath        string         `yaml:"html_path" env:"MEALSYNC_HTML_PATH"`
	EnvFile         string         `yaml:"env_file" env:"MEALSYNC_ENV_FILE"`
	Timeout         time.Duration  `yaml:"timeout" env:"MEALSYNC_TIMEOUT"`
	ListenAddr      string         `yaml:"listen_addr" env:"MEALSYNC_LISTEN_ADDR"`
	ShutdownTimeout time.Duration  `yaml:"shutdown_timeout" env:"MEALSYNC_SHUTDOWN_TIMEOUT"`
	LogLevel        string         `yaml:"log_level" env:"MEALSYNC_LOG_LEVEL"`
	Client          ClientIdentity `yaml:"client" envPrefix:"MEALSYNC_CLIENT_"`

	// File is the YAML file the config was read from, if any.
	File string `yaml:"-"`
}

// Overrides carries command-line values. Empty fields leave the loaded
// value alone.
type Overrides struct {
	Dir        string
	BaseURL    string
	JSONPath   string
	HTMLPath   string
	EnvFile    string
	ListenAddr string
	LogLevel   string
}

type Options struct {
	File      string
	Environ   map[string]string
	Overrides Overrides
}

func Default() Config {
	return Config{
		Dir:             ".",
		BaseURL:         DefaultBaseURL,
		JSONPath:        DefaultJSONFile,
		HTMLPath:        DefaultHTMLFile,
		EnvFile:         DefaultEnvFile,
		Timeout:         DefaultTimeout,
		ListenAddr:      DefaultListenAddr,
		ShutdownTimeout: DefaultShutdownTimeout,
		LogLevel:        "info",
		Client: ClientIdentity{
			AppName:   "child",
			Version:   "11101",
			Platform:  "android",
			UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		},
	}
}

// Load layers defaults, the optional YAML file, the environment and flag
// overrides, in that order, then resolves relative paths against Dir.
func Load(opts Options) (Config, error) {
	cfg := Default()
	if opts.File != "" {
		if err := decodeFile(opts.File, &cfg); err != nil {
			return Config{}, err
		}
		cfg.File = opts.File
	}
	environ := opts.Environ
	if environ == nil {
		environ = map[string]string{}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.apply(opts.Overrides)
	cfg.resolvePaths()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) apply(o Overrides) {
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&c.Dir, o.Dir)
	set(&c.BaseURL, o.BaseURL)
	set(&c.JSONPath, o.JSONPath)
	set(&c.HTMLPath, o.HTMLPath)
	set(&c.EnvFile, o.EnvFile)
	set(&c.ListenAddr, o.ListenAddr)
	set(&c.LogLevel, o.LogLevel)
}

func (c *Config) resolvePaths() {
	if c.Dir == "" {
		c.Dir = "."
	}
	c.JSONPath = c.resolve(c.JSONPath)
	c.HTMLPath = c.resolve(c.HTMLPath)
	c.EnvFile = c.resolve(c.EnvFile)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JSONPath) == "" {
		return fmt.Errorf("json output path is required")
	}
	if strings.TrimSpace(c.HTMLPath) == "" {
		return fmt.Errorf("html output path is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base url %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// SiteDir is the directory served by the site server.
func (c Config) SiteDir() string {
	return filepath.Dir(c.HTMLPath)
}

// PrivateFiles lists files the site server must never serve, even when
// they live inside SiteDir.
func (c Config) PrivateFiles() []string {
	var files []string
	for _, path := range []string{c.EnvFile, c.File} {
		if strings.TrimSpace(path) != "" {
			files = append(files, path)
		}
	}
	return files
}
