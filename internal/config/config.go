package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig  `mapstructure:"server"`
	MongoDB   MongoDBConfig `mapstructure:"mongodb"`
	JWT       JWTConfig     `mapstructure:"jwt"`
	Points    PointsConfig  `mapstructure:"points"`
	Storage   StorageConfig `mapstructure:"storage"`
	LogLevel  string        `mapstructure:"logLevel"`
	LogFormat string        `mapstructure:"logFormat"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	AllowedHosts []string `mapstructure:"allowedHosts"`
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string `mapstructure:"secret"`
	ExpiresIn int    `mapstructure:"expiresIn"` // seconds
}

// PointsConfig holds point-award configuration. Question and reward point
// values are administrator-set per record; the referral bonus is system-wide.
type PointsConfig struct {
	ReferralBonus int `mapstructure:"referralBonus"`
}

// StorageConfig holds file storage configuration for uploaded materials
type StorageConfig struct {
	UploadDir string `mapstructure:"uploadDir"`
	BaseURL   string `mapstructure:"baseUrl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("server.port", "4000")
	viper.SetDefault("server.allowedHosts", []string{"localhost:3000"})
	viper.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongodb.database", "engagehq")
	viper.SetDefault("jwt.expiresIn", 24*60*60) // 24 hours
	viper.SetDefault("points.referralBonus", 100)
	viper.SetDefault("storage.uploadDir", "./uploads")
	viper.SetDefault("storage.baseUrl", "/uploads")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "text")
}
