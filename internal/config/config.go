package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Scan policies for redemption codes. The historical behavior is that a code
// stays valid forever; singleUse burns it on the first successful scan.
const (
	ScanPolicyReusable  = "reusable"
	ScanPolicySingleUse = "singleUse"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Loyalty  LoyaltyConfig
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

// LoyaltyConfig holds the points and redemption-code rules
type LoyaltyConfig struct {
	// EarnRate is how many currency units earn one point (total / EarnRate,
	// floored). Totals below the rate award nothing.
	EarnRate int
	// CodeLength is the length of generated redemption tokens
	CodeLength int
	// CodeMaxAttempts bounds the retry loop on token collisions
	CodeMaxAttempts int
	// ScanPolicy is ScanPolicyReusable or ScanPolicySingleUse
	ScanPolicy string
}

// Load loads configuration from config.yaml and environment variables
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; environment variables and defaults apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.Loyalty.EarnRate <= 0 {
		return fmt.Errorf("config: Loyalty.EarnRate must be positive, got %d", c.Loyalty.EarnRate)
	}
	if c.Loyalty.CodeLength <= 0 {
		return fmt.Errorf("config: Loyalty.CodeLength must be positive, got %d", c.Loyalty.CodeLength)
	}
	if c.Loyalty.CodeMaxAttempts <= 0 {
		return fmt.Errorf("config: Loyalty.CodeMaxAttempts must be positive, got %d", c.Loyalty.CodeMaxAttempts)
	}
	switch c.Loyalty.ScanPolicy {
	case ScanPolicyReusable, ScanPolicySingleUse:
	default:
		return fmt.Errorf("config: unknown Loyalty.ScanPolicy %q", c.Loyalty.ScanPolicy)
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", GetEnv("PORT", "4000"))
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", GetEnv("MONGODB_URI", "mongodb://localhost:27017"))
	viper.SetDefault("MongoDB.Database", GetEnv("MONGODB_DATABASE", "fidelease"))
	viper.SetDefault("JWT.Secret", GetEnv("JWT_SECRET", ""))
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Loyalty.EarnRate", GetEnvAsInt("LOYALTY_EARN_RATE", 50))
	viper.SetDefault("Loyalty.CodeLength", 12)
	viper.SetDefault("Loyalty.CodeMaxAttempts", 10)
	viper.SetDefault("Loyalty.ScanPolicy", GetEnv("LOYALTY_SCAN_POLICY", ScanPolicyReusable))
	viper.SetDefault("LogLevel", GetEnv("LOG_LEVEL", "info"))
}
