package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL      = "http://127.0.0.1:30707/apis"
	DefaultRedirectPath = "/"
	DefaultListenAddr   = "127.0.0.1:8080"
	DefaultTimeout      = 30 * time.Second
	DefaultLoginRate    = 1.0
	DefaultLoginBurst   = 5
)

var ErrNoConfigFile = errors.New("no config file found")

// DefaultSuccessCodes are the envelope codes accepted as success. Strings
// match string codes, numbers match numeric codes.
var DefaultSuccessCodes = []any{"io.tkeel.SUCCESS", 200}

type API struct {
	BaseURL      string        `yaml:"base_url" json:"base_url" env:"CONSOLE_API_BASE_URL"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" env:"CONSOLE_API_TIMEOUT"`
	RedirectPath string        `yaml:"redirect_path" json:"redirect_path" env:"CONSOLE_REDIRECT_PATH"`
	SuccessCodes []any         `yaml:"success_codes" json:"success_codes"`
}

type Store struct {
	// Backend is one of "file", "redis" or "memory".
	Backend     string        `yaml:"backend" json:"backend" env:"CONSOLE_STORE_BACKEND"`
	Dir         string        `yaml:"dir" json:"dir" env:"CONSOLE_STORE_DIR"`
	RedisAddr   string        `yaml:"redis_addr" json:"redis_addr" env:"CONSOLE_REDIS_ADDR"`
	RedisDB     int           `yaml:"redis_db" json:"redis_db" env:"CONSOLE_REDIS_DB"`
	RedisPrefix string        `yaml:"redis_prefix" json:"redis_prefix" env:"CONSOLE_REDIS_PREFIX"`
	RedisTTL    time.Duration `yaml:"redis_ttl" json:"redis_ttl" env:"CONSOLE_REDIS_TTL"`
}

type Shell struct {
	ListenAddr    string `yaml:"listen_addr" json:"listen_addr" env:"CONSOLE_SHELL_LISTEN"`
	BundleBaseURL string `yaml:"bundle_base_url" json:"bundle_base_url" env:"CONSOLE_BUNDLE_BASE_URL"`
	Title         string `yaml:"title" json:"title" env:"CONSOLE_SHELL_TITLE"`
	// LoginRate is the number of login attempts per second allowed per
	// client address.
	LoginRate  float64 `yaml:"login_rate" json:"login_rate" env:"CONSOLE_SHELL_LOGIN_RATE"`
	LoginBurst int     `yaml:"login_burst" json:"login_burst" env:"CONSOLE_SHELL_LOGIN_BURST"`
}

type FileConfig struct {
	API      API    `yaml:"api" json:"api"`
	Store    Store  `yaml:"store" json:"store"`
	Shell    Shell  `yaml:"shell" json:"shell"`
	LogLevel string `yaml:"log_level" json:"log_level" env:"CONSOLE_LOG_LEVEL"`
}

type Config struct {
	ConfigDir string
	Raw       *FileConfig
}

func NewConfig() (*Config, error) {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return Load(getEnv("CONSOLE_CONFIG_DIR", filepath.Join(userHome, ".config", "consolectl")))
}

// Load reads the config file from dir, then applies .env and CONSOLE_*
// environment overrides and fills defaults.
func Load(dir string) (*Config, error) {
	cfg := &Config{ConfigDir: dir}

	fileConfig, err := loadConfigFile(cfg)
	if err != nil {
		if !errors.Is(err, ErrNoConfigFile) {
			return nil, err
		}
		fileConfig = &FileConfig{}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	if err := envdecode.Decode(fileConfig); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment overrides: %w", err)
	}

	fileConfig.applyDefaults(dir)
	cfg.Raw = fileConfig
	return cfg, nil
}

func loadConfigFile(cfg *Config) (*FileConfig, error) {
	configFilePath, err := FindConfigFile(cfg)
	if err != nil {
		return nil, err
	}

	fileData, err := os.ReadFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var parsedConfig FileConfig
	if err := yaml.Unmarshal(fileData, &parsedConfig); err != nil {
		if err := json.Unmarshal(fileData, &parsedConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return &parsedConfig, nil
}

func FindConfigFile(cfg *Config) (string, error) {
	extensions := []string{"config.yml", "config.yaml", "config.json"}

	if _, err := os.Stat(cfg.ConfigDir); os.IsNotExist(err) {
		return "", ErrNoConfigFile
	} else if err != nil {
		return "", fmt.Errorf("failed to stat directory %s: %w", cfg.ConfigDir, err)
	}

	for _, ext := range extensions {
		possiblePath := filepath.Join(cfg.ConfigDir, ext)
		if _, err := os.Stat(possiblePath); err == nil {
			return possiblePath, nil
		}
	}

	return "", ErrNoConfigFile
}

func (c *Config) Save() error {
	configFilePath := filepath.Join(c.ConfigDir, "config.yaml")
	if err := os.MkdirAll(c.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c.Raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (f *FileConfig) applyDefaults(dir string) {
	if f.API.BaseURL == "" {
		f.API.BaseURL = DefaultBaseURL
	}
	if f.API.Timeout <= 0 {
		f.API.Timeout = DefaultTimeout
	}
	if f.API.RedirectPath == "" {
		f.API.RedirectPath = DefaultRedirectPath
	}
	if len(f.API.SuccessCodes) == 0 {
		f.API.SuccessCodes = DefaultSuccessCodes
	}
	if f.Store.Backend == "" {
		f.Store.Backend = "file"
	}
	if f.Store.Dir == "" {
		f.Store.Dir = filepath.Join(dir, "state")
	}
	if f.Store.RedisPrefix == "" {
		f.Store.RedisPrefix = "consolectl:"
	}
	if f.Shell.ListenAddr == "" {
		f.Shell.ListenAddr = DefaultListenAddr
	}
	if f.Shell.BundleBaseURL == "" {
		f.Shell.BundleBaseURL = f.API.BaseURL
	}
	if f.Shell.Title == "" {
		f.Shell.Title = "Console"
	}
	if f.Shell.LoginRate <= 0 {
		f.Shell.LoginRate = DefaultLoginRate
	}
	if f.Shell.LoginBurst <= 0 {
		f.Shell.LoginBurst = DefaultLoginBurst
	}
	if f.LogLevel == "" {
		f.LogLevel = "info"
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
