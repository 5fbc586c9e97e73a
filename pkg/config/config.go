package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the mapcode service configuration
type Config struct {
	DataDir  string   `yaml:"data_dir"`
	Port     int      `yaml:"port"`
	Bind     string   `yaml:"bind"`
	Dataset  string   `yaml:"dataset"`
	Security Security `yaml:"security"`
	Logging  Logging  `yaml:"logging"`
	Cache    Cache    `yaml:"cache"`
	Batch    Batch    `yaml:"batch"`
}

// Security contains security-related configuration
type Security struct {
	APIKey string `yaml:"api_key"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Cache configures the Redis decode cache. An empty RedisAddr disables it.
type Cache struct {
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	TTLSeconds    int    `yaml:"ttl_seconds"`
}

// TTL returns the cache entry lifetime.
func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Batch configures the batch encode worker pool
type Batch struct {
	Workers  int `yaml:"workers"`
	MaxItems int `yaml:"max_items"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Security: Security{
			APIKey: "auto",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Cache: Cache{
			TTLSeconds: 3600,
		},
		Batch: Batch{
			Workers:  4,
			MaxItems: 10000,
		},
	}
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file holds the API key.
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated API key and
// saves it
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	apiKey, err := GenerateSecureKey(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Security.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./mapcode.yaml"
	}

	// ~/.config/mapcode/config.yaml
	return filepath.Join(homeDir, ".config", "mapcode", "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}

// LoadEnvFiles loads .env files into the process environment. Missing
// files are skipped; variables already set are kept.
func LoadEnvFiles(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		_ = godotenv.Load(p)
	}
}

// ApplyEnv overrides config fields from MAPCODE_* environment variables.
// Malformed numbers are reported and leave the field unchanged.
func ApplyEnv(config *Config) error {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}
	var firstErr error
	num := func(name string, dst *int) {
		v, ok := os.LookupEnv(name)
		if !ok {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("invalid %s %q: %w", name, v, err)
			}
			return
		}
		*dst = n
	}

	str("MAPCODE_DATA_DIR", &config.DataDir)
	num("MAPCODE_PORT", &config.Port)
	str("MAPCODE_BIND", &config.Bind)
	str("MAPCODE_DATASET", &config.Dataset)
	str("MAPCODE_API_KEY", &config.Security.APIKey)
	str("MAPCODE_LOG_LEVEL", &config.Logging.Level)
	str("MAPCODE_LOG_FORMAT", &config.Logging.Format)
	str("MAPCODE_REDIS_ADDR", &config.Cache.RedisAddr)
	str("MAPCODE_REDIS_PASSWORD", &config.Cache.RedisPassword)
	num("MAPCODE_REDIS_DB", &config.Cache.RedisDB)
	num("MAPCODE_CACHE_TTL_SECONDS", &config.Cache.TTLSeconds)
	num("MAPCODE_BATCH_WORKERS", &config.Batch.Workers)
	num("MAPCODE_BATCH_MAX_ITEMS", &config.Batch.MaxItems)
	return firstErr
}

// Validate checks that the configuration can be served.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch workers must be positive, got %d", c.Batch.Workers)
	}
	if c.Batch.MaxItems < 1 {
		return fmt.Errorf("batch max items must be positive, got %d", c.Batch.MaxItems)
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("negative cache TTL %d", c.Cache.TTLSeconds)
	}
	return nil
}
