package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Market   MarketConfig
	Feed     FeedConfig
	Admin    AdminConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// MarketConfig holds the market's fixed local timezone
type MarketConfig struct {
	Timezone string
}

// FeedConfig holds the live-results feed configuration
type FeedConfig struct {
	BaseURL          string
	SnapshotInterval time.Duration
}

// AdminConfig names the operator account
type AdminConfig struct {
	Username string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "twod")
	viper.SetDefault("JWT.ExpiresIn", 15*24*60*60) // 15 days
	viper.SetDefault("Market.Timezone", "Asia/Yangon")
	viper.SetDefault("Feed.BaseURL", "https://api.thaistock2d.com")
	viper.SetDefault("Feed.SnapshotInterval", 5*time.Minute)
	viper.SetDefault("Admin.Username", "admin")
	viper.SetDefault("LogLevel", "info")
}
