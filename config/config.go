package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/nirban/hms-api/pkg/messaging/redis"
)

type DatabaseConfig struct {
	Host     string `yaml:"host" mapstructure:"host" envconfig:"DB_HOST"`
	Port     int    `yaml:"port" mapstructure:"port" envconfig:"DB_PORT"`
	User     string `yaml:"user" mapstructure:"user" envconfig:"DB_USER"`
	Password string `yaml:"password" mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `yaml:"name" mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
}

type ServerConfig struct {
	Port           int           `yaml:"port" mapstructure:"port" envconfig:"SERVER_PORT"`
	ReadTimeout    time.Duration `yaml:"read_timeout" mapstructure:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	MaxHeaderBytes int           `yaml:"max_header_bytes" mapstructure:"max_header_bytes"`
}

type JWTConfig struct {
	Secret             string `yaml:"secret" mapstructure:"secret" envconfig:"JWT_SECRET"`
	RefreshSecret      string `yaml:"refresh_secret" mapstructure:"refresh_secret" envconfig:"JWT_REFRESH_SECRET"`
	ExpiryHours        int    `yaml:"expiry_hours" mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
	RefreshExpiryHours int    `yaml:"refresh_expiry_hours" mapstructure:"refresh_expiry_hours" envconfig:"JWT_REFRESH_EXPIRY_HOURS"`
}

type RedisConfig struct {
	URL          string        `yaml:"url" mapstructure:"url" envconfig:"REDIS_URL"`
	MaxRetries   int           `yaml:"max_retries" mapstructure:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff" mapstructure:"retry_backoff"`
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
}

type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

type EmailConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled" envconfig:"SMTP_ENABLED"`
	Host     string `yaml:"host" mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `yaml:"port" mapstructure:"port" envconfig:"SMTP_PORT"`
	Username string `yaml:"username" mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `yaml:"password" mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `yaml:"from" mapstructure:"from" envconfig:"SMTP_FROM"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool   `yaml:"prometheus_enabled" mapstructure:"prometheus_enabled"`
	MetricsPath       string `yaml:"metrics_path" mapstructure:"metrics_path"`
}

type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Database   DatabaseConfig   `yaml:"database" mapstructure:"database"`
	JWT        JWTConfig        `yaml:"jwt" mapstructure:"jwt"`
	Redis      RedisConfig      `yaml:"redis" mapstructure:"redis"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit" mapstructure:"rate_limit"`
	Email      EmailConfig      `yaml:"email" mapstructure:"email"`
	Monitoring MonitoringConfig `yaml:"monitoring" mapstructure:"monitoring"`
}

// LoadConfig reads config.yml and then applies environment overrides,
// so deployments can keep secrets out of the file.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	return &config, nil
}

func (c *RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}
