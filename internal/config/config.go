package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kerimovok/go-pkg-utils/config"
	"gopkg.in/yaml.v3"
)

// StorageConfig holds blob storage settings
type StorageConfig struct {
	UploadDir       string `yaml:"upload_dir"`
	CreateDirs      bool   `yaml:"create_dirs"`
	MaxFileSize     int64  `yaml:"max_file_size"`
	FilePermissions string `yaml:"file_permissions"`
}

// RetentionConfig holds file expiry settings
type RetentionConfig struct {
	DefaultDays int `yaml:"default_days"`
	ExtendMin   int `yaml:"extend_min_days"`
	ExtendMax   int `yaml:"extend_max_days"`
}

// ValidationConfig holds upload validation settings
type ValidationConfig struct {
	BlockedExtensions []string `yaml:"blocked_extensions"`
}

// ShareConfig holds the complete service configuration
type ShareConfig struct {
	Storage    StorageConfig    `yaml:"storage"`
	Retention  RetentionConfig  `yaml:"retention"`
	Validation ValidationConfig `yaml:"validation"`
}

// MainConfig holds the root configuration
type MainConfig struct {
	Share ShareConfig `yaml:"share"`
}

var (
	Config MainConfig
)

// LoadConfig loads the configuration from config/share.yaml
func LoadConfig() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if config.GetEnv("GO_ENV") != "production" {
			log.Println("Warning: Failed to load .env file")
		}
	}

	// Read config file
	data, err := os.ReadFile("config/share.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg MainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(&cfg)

	// Store config globally
	Config = cfg

	log.Println("Share configuration loaded successfully from config/share.yaml")
	return nil
}

// ApplyDefaults fills unset settings with their defaults
func ApplyDefaults(cfg *MainConfig) {
	if cfg.Share.Storage.UploadDir == "" {
		cfg.Share.Storage.UploadDir = "./uploads"
	}
	if cfg.Share.Retention.DefaultDays <= 0 {
		cfg.Share.Retention.DefaultDays = 15
	}
	if cfg.Share.Retention.ExtendMin <= 0 {
		cfg.Share.Retention.ExtendMin = 1
	}
	if cfg.Share.Retention.ExtendMax <= 0 {
		cfg.Share.Retention.ExtendMax = 365
	}
}

// GetConfig returns the current configuration
func GetConfig() MainConfig {
	return Config
}
