package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/celebigilfatih/omt/pkg/config"
	"github.com/celebigilfatih/omt/pkg/logger"
)

// ServiceName doubles as the config file name and the env prefix (OMT_).
const ServiceName = "omt"

type Config struct {
	Service    ServiceConfig    `mapstructure:"service"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        logger.Config    `mapstructure:"log"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Redis      RedisConfig      `mapstructure:"redis"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Pagination PaginationConfig `mapstructure:"pagination"`
}

// Load reads the layered config and validates it.
func Load() (*Config, error) {
	src, err := config.Load(ServiceName, config.Options{Defaults: Defaults()})
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := src.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Defaults are registered with viper so that every key can be overridden
// from the environment even when the file omits it.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.name":    ServiceName,
		"service.version": "dev",

		"server.http.host":          "0.0.0.0",
		"server.http.port":          8080,
		"server.http.body_limit":    "6M",
		"server.http.read_timeout":  "15s",
		"server.http.write_timeout": "30s",
		"server.grpc.enabled":       true,
		"server.grpc.host":          "0.0.0.0",
		"server.grpc.port":          9090,

		"database.driver":             "postgres",
		"database.host":               "localhost",
		"database.port":               5432,
		"database.name":               "omt",
		"database.user":               "postgres",
		"database.password":           "",
		"database.ssl_mode":           "disable",
		"database.path":               "omt.db",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "30m",
		"database.conn_max_idle_time": "5m",
		"database.slow_threshold":     "200ms",
		"database.log_queries":        false,

		"log.level":  "info",
		"log.format": "json",
		"log.output": "stdout",

		"auth.jwt_secret":               "",
		"auth.token_ttl":                "12h",
		"auth.issuer":                   ServiceName,
		"auth.bcrypt_cost":              12,
		"auth.legacy_admin.enabled":     true,
		"auth.legacy_admin.identifier":  "admin",
		"auth.legacy_admin.password":    "admin123",
		"auth.login_rate_limit.rate":    5,
		"auth.login_rate_limit.burst":   10,
		"auth.login_rate_limit.expires": "3m",

		"storage.driver":             "local",
		"storage.max_size":           5 * 1024 * 1024,
		"storage.local.dir":          "public/uploads",
		"storage.local.public_path":  "/uploads",
		"storage.s3.region":          "eu-central-1",
		"storage.s3.bucket":          "",
		"storage.s3.prefix":          "uploads",
		"storage.s3.endpoint":        "",
		"storage.s3.access_key":      "",
		"storage.s3.secret_key":      "",
		"storage.s3.public_base_url": "",
		"storage.s3.use_path_style":  false,

		"redis.enabled":  false,
		"redis.addr":     "localhost:6379",
		"redis.password": "",
		"redis.db":       0,
		"redis.channel":  "omt.events",

		"cors.allowed_origins": []string{"*"},

		"pagination.default_limit": 10,
		"pagination.max_limit":     100,
	}
}

// Validate rejects configurations that cannot run safely.
func (c *Config) Validate() error {
	var errs []error

	if c.Service.Env != "dev" && c.Service.Env != "test" && c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required outside dev"))
	}
	if c.Auth.JWTSecret == "" {
		// dev only: a fixed secret keeps tokens valid across restarts
		c.Auth.JWTSecret = "omt-dev-secret"
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}

	switch c.Storage.Driver {
	case StorageLocal:
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			errs = append(errs, errors.New("storage.s3.bucket is required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver))
	}

	if c.Pagination.DefaultLimit <= 0 || c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		errs = append(errs, errors.New("pagination limits are inconsistent"))
	}

	return errors.Join(errs...)
}

type ServiceConfig struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type AuthConfig struct {
	JWTSecret      string            `mapstructure:"jwt_secret"`
	TokenTTL       time.Duration     `mapstructure:"token_ttl"`
	Issuer         string            `mapstructure:"issuer"`
	BcryptCost     int               `mapstructure:"bcrypt_cost"`
	LegacyAdmin    LegacyAdminConfig `mapstructure:"legacy_admin"`
	LoginRateLimit RateLimitConfig   `mapstructure:"login_rate_limit"`
}

// LegacyAdminConfig is the fixed fallback credential accepted regardless of
// store contents.
type LegacyAdminConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Identifier string `mapstructure:"identifier"`
	Password   string `mapstructure:"password"`
}

type RateLimitConfig struct {
	Rate    float64       `mapstructure:"rate"`
	Burst   int           `mapstructure:"burst"`
	Expires time.Duration `mapstructure:"expires"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type PaginationConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}
