package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type ServerConfig struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
}

type JWTConfig struct {
	Secret             string `yaml:"secret"`
	RefreshSecret      string `yaml:"refresh_secret"`
	ExpiryHours        int    `yaml:"expiry_hours"`
	RefreshExpiryHours int    `yaml:"refresh_expiry_hours"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// ConflictConfig controls how vehicle conflict detection treats lookup
// failures. The default is fail-open: an unverifiable assignment proceeds
// flagged as unchecked. Fail-closed blocks it instead.
type ConflictConfig struct {
	FailClosed bool `yaml:"fail_closed"`
}

type StorageConfig struct {
	MediaRoot  string `yaml:"media_root"`
	BackupRoot string `yaml:"backup_root"`
}

type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type SecurityConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Redis     RedisConfig     `yaml:"redis"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Conflict  ConflictConfig  `yaml:"conflict"`
	Storage   StorageConfig   `yaml:"storage"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Security  SecurityConfig  `yaml:"security"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Container deployments override connection details per environment.
	if host := os.Getenv("DB_HOST"); host != "" {
		config.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		config.Database.Port, _ = strconv.Atoi(port)
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.Database.Password = password
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.JWT.Secret = secret
	}
	if secret := os.Getenv("JWT_REFRESH_SECRET"); secret != "" {
		config.JWT.RefreshSecret = secret
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		config.Redis.URL = url
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 10 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 30 * time.Second
	}
	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = 25 * time.Second
	}
	if config.JWT.ExpiryHours == 0 {
		config.JWT.ExpiryHours = 24
	}
	if config.JWT.RefreshExpiryHours == 0 {
		config.JWT.RefreshExpiryHours = 24 * 7
	}
	if config.RateLimit.RequestsPerSecond == 0 {
		config.RateLimit.RequestsPerSecond = 50
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = 100
	}
	if config.Storage.MediaRoot == "" {
		config.Storage.MediaRoot = "./data/media"
	}
	if config.Storage.BackupRoot == "" {
		config.Storage.BackupRoot = "./data/backups"
	}
}
