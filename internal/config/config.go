package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout"`
	ChatTimeout    time.Duration `mapstructure:"chat_timeout"`
}

type StorageConfig struct {
	// Path of the local state database (endpoint cache, token, snapshots).
	Path string `mapstructure:"path"`
	// Optional base64 AES key; when set the token is encrypted at rest.
	EncryptionKey string `mapstructure:"encryption_key"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	configPath := os.Getenv("VITAWISE_CONFIG")
	if configPath == "" {
		configPath = filepath.Join(dataDir(), "config.yaml")
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
		// Config file not found, use defaults and env vars
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vitawise"
	}
	return filepath.Join(home, ".vitawise")
}

func setDefaults(v *viper.Viper) {
	// API
	v.SetDefault("api.base_url", "https://api.vitawise.app")
	v.SetDefault("api.request_timeout", "5s")
	v.SetDefault("api.probe_timeout", "3s")
	v.SetDefault("api.chat_timeout", "90s")

	// Storage
	v.SetDefault("storage.path", filepath.Join(dataDir(), "state.db"))

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", filepath.Join(dataDir(), "vitawise.log"))
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("api.base_url", "VITAWISE_API_URL")
	v.BindEnv("storage.path", "VITAWISE_STATE_PATH")
	v.BindEnv("storage.encryption_key", "VITAWISE_STATE_KEY")
	v.BindEnv("logging.level", "VITAWISE_LOG_LEVEL")
}
