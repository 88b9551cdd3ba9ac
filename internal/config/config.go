package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
	MinIO      MinIOConfig      `mapstructure:"minio"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Contact    ContactConfig    `mapstructure:"contact"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port      int    `mapstructure:"port"`
	Debug     bool   `mapstructure:"debug"`
	SecretKey string `mapstructure:"secret_key"`
}

// DatabaseConfig contains connection options for SQLite (development) or PostgreSQL (production).
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Name       string `mapstructure:"name"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	SSLMode    string `mapstructure:"sslmode"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// SMTPConfig contains credentials for the contact notification mailer.
// An empty host means the mailer is not configured; the worker then only logs.
type SMTPConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	FromEmail string `mapstructure:"from_email"`
	ToEmail   string `mapstructure:"to_email"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
// Storage is optional: when Enabled is false the CV endpoint falls back to the static path.
type MinIOConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
}

// PaginationConfig 定义列表接口的分页边界。
type PaginationConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}

// CacheConfig 定义 Redis 响应缓存的过期时间（秒）。
type CacheConfig struct {
	MediumTTLSeconds int `mapstructure:"medium_ttl_seconds"`
	LongTTLSeconds   int `mapstructure:"long_ttl_seconds"`
}

// ContactConfig 定义联系表单的限流配置。
type ContactConfig struct {
	MaxPerHour int `mapstructure:"max_per_hour"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// MediumTTL 返回列表缓存的过期时长。
func (c CacheConfig) MediumTTL() time.Duration {
	return time.Duration(c.MediumTTLSeconds) * time.Second
}

// LongTTL 返回站点设置缓存的过期时长。
func (c CacheConfig) LongTTL() time.Duration {
	return time.Duration(c.LongTTLSeconds) * time.Second
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.debug", false)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite_path", "portfolio.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "portfolio")
	v.SetDefault("database.user", "portfolio")
	v.SetDefault("database.password", "portfolio")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("minio.enabled", false)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "portfolio-assets")
	v.SetDefault("pagination.default_page_size", 10)
	v.SetDefault("pagination.max_page_size", 50)
	v.SetDefault("cache.medium_ttl_seconds", 300)
	v.SetDefault("cache.long_ttl_seconds", 3600)
	v.SetDefault("contact.max_per_hour", 5)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                     "API_PORT",
		"api.debug":                    "DEBUG",
		"api.secret_key":               "SECRET_KEY",
		"database.driver":              "DATABASE_DRIVER",
		"database.sqlite_path":         "SQLITE_PATH",
		"database.host":                "DATABASE_HOST",
		"database.port":                "DATABASE_PORT",
		"database.name":                "POSTGRES_DB",
		"database.user":                "POSTGRES_USER",
		"database.password":            "POSTGRES_PASSWORD",
		"database.sslmode":             "DATABASE_SSLMODE",
		"redis.host":                   "REDIS_HOST",
		"redis.port":                   "REDIS_PORT",
		"smtp.host":                    "SMTP_HOST",
		"smtp.port":                    "SMTP_PORT",
		"smtp.username":                "SMTP_USERNAME",
		"smtp.password":                "SMTP_PASSWORD",
		"smtp.from_email":              "DEFAULT_FROM_EMAIL",
		"smtp.to_email":                "CONTACT_EMAIL",
		"minio.enabled":                "MINIO_ENABLED",
		"minio.endpoint":               "MINIO_ENDPOINT",
		"minio.access_key_id":          "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":      "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":                "MINIO_USE_SSL",
		"minio.bucket":                 "MINIO_BUCKET",
		"pagination.default_page_size": "PAGINATION_PAGE_SIZE",
		"pagination.max_page_size":     "PAGINATION_MAX_PAGE_SIZE",
		"cache.medium_ttl_seconds":     "CACHE_TIMEOUT_MEDIUM",
		"cache.long_ttl_seconds":       "CACHE_TIMEOUT_LONG",
		"contact.max_per_hour":         "CONTACT_MAX_PER_HOUR",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.API.SecretKey == "" {
		return errors.New("secret key is required")
	}
	switch cfg.Database.Driver {
	case "sqlite":
		if cfg.Database.SQLitePath == "" {
			return errors.New("sqlite path is required")
		}
	case "postgres":
		if cfg.Database.Host == "" {
			return errors.New("database host is required")
		}
		if cfg.Database.Port <= 0 {
			return errors.New("database port must be positive")
		}
		if cfg.Database.Name == "" {
			return errors.New("database name is required")
		}
		if cfg.Database.User == "" {
			return errors.New("database user is required")
		}
		if cfg.Database.Password == "" {
			return errors.New("database password is required")
		}
		if cfg.Database.SSLMode == "" {
			return errors.New("database sslmode is required")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.MinIO.Enabled {
		if cfg.MinIO.Endpoint == "" {
			return errors.New("minio endpoint is required")
		}
		if cfg.MinIO.AccessKeyID == "" {
			return errors.New("minio access key id is required")
		}
		if cfg.MinIO.SecretAccessKey == "" {
			return errors.New("minio secret access key is required")
		}
		if cfg.MinIO.Bucket == "" {
			return errors.New("minio bucket is required")
		}
	}
	if cfg.Pagination.DefaultPageSize <= 0 {
		return errors.New("default page size must be positive")
	}
	if cfg.Pagination.MaxPageSize < cfg.Pagination.DefaultPageSize {
		return errors.New("max page size must not be smaller than the default")
	}
	if cfg.Contact.MaxPerHour <= 0 {
		return errors.New("contact rate limit must be positive")
	}
	return nil
}
