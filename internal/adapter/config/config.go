package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yourusername/bbrepo/internal/domain"
	"gopkg.in/yaml.v3"
)

// Default values used when neither the file nor the environment set a key.
const (
	DefaultBaseURL     = "http://localhost:3000/api/bitbucket"
	DefaultProxyAddr   = ":3000"
	DefaultUpstreamURL = "https://api.bitbucket.org/2.0"
	DefaultTheme       = "warm"
)

// TokenEnv names the environment variable that overrides the stored token.
const TokenEnv = "BITBUCKET_TOKEN"

// Config represents the application configuration.
type Config struct {
	BaseURL     string      `mapstructure:"base_url" yaml:"base_url"`
	AppMode     string      `mapstructure:"app_mode" yaml:"app_mode"`
	AppSlug     string      `mapstructure:"app_slug" yaml:"app_slug,omitempty"`
	StoragePath string      `mapstructure:"storage_path" yaml:"storage_path,omitempty"`
	Theme       string      `mapstructure:"theme" yaml:"theme"`
	Proxy       ProxyConfig `mapstructure:"proxy" yaml:"proxy"`

	// Token is only ever read from BITBUCKET_TOKEN and never written.
	Token string `mapstructure:"-" yaml:"-"`
}

// ProxyConfig configures the bundled BitBucket proxy.
type ProxyConfig struct {
	Addr        string `mapstructure:"addr" yaml:"addr"`
	UpstreamURL string `mapstructure:"upstream_url" yaml:"upstream_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		AppMode: string(domain.ModeOSS),
		Theme:   DefaultTheme,
		Proxy: ProxyConfig{
			Addr:        DefaultProxyAddr,
			UpstreamURL: DefaultUpstreamURL,
		},
	}
}

// Validate checks if the configuration is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url cannot be empty")
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL: %q", c.BaseURL)
	}
	if _, err := domain.ParseAppMode(c.AppMode); err != nil {
		return fmt.Errorf("app_mode: %w", err)
	}
	if !domain.IsThemeName(c.Theme) {
		return fmt.Errorf("theme must be one of %s: %q", strings.Join(domain.ThemeNames, ", "), c.Theme)
	}
	if c.Proxy.UpstreamURL == "" {
		return fmt.Errorf("proxy.upstream_url cannot be empty")
	}
	return nil
}

// AppConfig returns the selector-facing subset of the configuration.
func (c Config) AppConfig() domain.AppConfig {
	mode, err := domain.ParseAppMode(c.AppMode)
	if err != nil {
		mode = domain.ModeOSS
	}
	return domain.AppConfig{Mode: mode, Slug: c.AppSlug}
}

// Manager handles configuration persistence.
type Manager struct {
	configPath string
}

// NewManager creates a config manager for ~/.bbrepo/config.yaml.
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewManagerAt(filepath.Join(homeDir, ".bbrepo", "config.yaml")), nil
}

// NewManagerAt creates a config manager for an explicit path.
func NewManagerAt(path string) *Manager {
	return &Manager{configPath: path}
}

// Load reads the file (if any), applies defaults and environment overrides
// (APP_MODE, APP_SLUG, BBR_BASE_URL, BITBUCKET_TOKEN).
func (m *Manager) Load() (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigFile(m.configPath)
	v.SetConfigType("yaml")
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("app_mode", def.AppMode)
	v.SetDefault("app_slug", def.AppSlug)
	v.SetDefault("storage_path", def.StoragePath)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("proxy.addr", def.Proxy.Addr)
	v.SetDefault("proxy.upstream_url", def.Proxy.UpstreamURL)

	bindings := map[string]string{
		"app_mode": "APP_MODE",
		"app_slug": "APP_SLUG",
		"base_url": "BBR_BASE_URL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if _, err := os.Stat(m.configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Token = os.Getenv(TokenEnv)
	if cfg.StoragePath == "" {
		cfg.StoragePath = filepath.Join(filepath.Dir(m.configPath), "storage.yaml")
	}
	return cfg, nil
}

// Save writes the configuration to disk.
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ConfigPath returns the path to the config file.
func (m *Manager) ConfigPath() string {
	return m.configPath
}
