package config

import (
	"fmt"
	"time"

	"github.com/Jumper1221/Sber-test-task/pkg/config"
)

// ServiceName is used as the config file name and the env var prefix (PAYMENT_*).
const ServiceName = "payment"

type Config struct {
	Service  ServiceConfig
	Database DatabaseConfig
	Server   ServerConfig
	Log      LogConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Redis    RedisConfig
}

type LogConfig struct {
	Level       string
	Format      string
	Output      string
	FilePath    string
	Development bool
	DBLevel     string
}

type JWTConfig struct {
	Secret          string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type AuthConfig struct {
	PasswordMinLength int
	HashCost          int
}

var defaults = map[string]interface{}{
	"service.name":        ServiceName,
	"service.environment": "dev",
	"service.version":     "0.1.0",

	"server.http.host":              "0.0.0.0",
	"server.http.port":              8200,
	"server.http.body_limit":        "1M",
	"server.http.cors_origins":      []string{"*"},
	"server.grpc.enabled":           true,
	"server.grpc.host":              "0.0.0.0",
	"server.grpc.port":              9090,
	"server.shutdown_timeout":       "10s",
	"database.host":                 "localhost",
	"database.port":                 5432,
	"database.name":                 "payments",
	"database.user":                 "postgres",
	"database.password":             "postgres",
	"database.sslmode":              "disable",
	"database.max_open_conns":       25,
	"database.max_idle_conns":       5,
	"database.conn_max_lifetime":    "30m",
	"database.conn_max_idle_time":   "5m",
	"database.auto_migrate":         true,
	"database.slow_query_threshold": "200ms",

	"log.level":    "info",
	"log.format":   "json",
	"log.output":   "stdout",
	"log.db_level": "warn",

	"jwt.issuer":            "payment-service",
	"jwt.access_token_ttl":  "30m",
	"jwt.refresh_token_ttl": "720h",

	"auth.password_min_length": 1,
	"auth.hash_cost":           10,

	"redis.enabled":        false,
	"redis.host":           "localhost",
	"redis.port":           6379,
	"redis.db":             0,
	"redis.events_channel": "payments.events",
}

// LoadConfig reads configs/<APP_ENV>/payment.yaml (falling back to configs/example),
// an optional .env file and PAYMENT_* environment variables.
func LoadConfig() (*Config, error) {
	cfg, err := config.Load(ServiceName,
		config.WithDefaults(defaults),
		config.WithDotenv(".env"),
		config.WithOptionalFile(),
	)
	if err != nil {
		return nil, err
	}

	appConfig := FromSource(cfg)
	if err := appConfig.Validate(); err != nil {
		return nil, err
	}
	return appConfig, nil
}

// FromSource maps raw config values onto the typed Config.
func FromSource(cfg config.Config) *Config {
	c := &Config{}

	c.Service.Name = cfg.GetString("service.name")
	c.Service.Environment = cfg.GetString("service.environment")
	c.Service.Version = cfg.GetString("service.version")

	c.Server.HTTP.Host = cfg.GetString("server.http.host")
	c.Server.HTTP.Port = cfg.GetInt("server.http.port")
	c.Server.HTTP.BodyLimit = cfg.GetString("server.http.body_limit")
	c.Server.HTTP.CORSOrigins = cfg.GetStringSlice("server.http.cors_origins")
	c.Server.GRPC.Enabled = cfg.GetBool("server.grpc.enabled")
	c.Server.GRPC.Host = cfg.GetString("server.grpc.host")
	c.Server.GRPC.Port = cfg.GetInt("server.grpc.port")
	c.Server.ShutdownTimeout = cfg.GetDuration("server.shutdown_timeout")

	c.Database.Host = cfg.GetString("database.host")
	c.Database.Port = cfg.GetInt("database.port")
	c.Database.Name = cfg.GetString("database.name")
	c.Database.User = cfg.GetString("database.user")
	c.Database.Password = cfg.GetString("database.password")
	c.Database.SSLMode = cfg.GetString("database.sslmode")
	c.Database.MaxOpenConns = cfg.GetInt("database.max_open_conns")
	c.Database.MaxIdleConns = cfg.GetInt("database.max_idle_conns")
	c.Database.ConnMaxLifetime = cfg.GetDuration("database.conn_max_lifetime")
	c.Database.ConnMaxIdleTime = cfg.GetDuration("database.conn_max_idle_time")
	c.Database.AutoMigrate = cfg.GetBool("database.auto_migrate")
	c.Database.SlowQueryThreshold = cfg.GetDuration("database.slow_query_threshold")

	c.Log.Level = cfg.GetString("log.level")
	c.Log.Format = cfg.GetString("log.format")
	c.Log.Output = cfg.GetString("log.output")
	c.Log.FilePath = cfg.GetString("log.file_path")
	c.Log.Development = cfg.GetBool("log.development")
	c.Log.DBLevel = cfg.GetString("log.db_level")

	c.JWT.Secret = cfg.GetString("jwt.secret")
	c.JWT.Issuer = cfg.GetString("jwt.issuer")
	c.JWT.AccessTokenTTL = cfg.GetDuration("jwt.access_token_ttl")
	c.JWT.RefreshTokenTTL = cfg.GetDuration("jwt.refresh_token_ttl")

	c.Auth.PasswordMinLength = cfg.GetInt("auth.password_min_length")
	c.Auth.HashCost = cfg.GetInt("auth.hash_cost")

	c.Redis.Enabled = cfg.GetBool("redis.enabled")
	c.Redis.Host = cfg.GetString("redis.host")
	c.Redis.Port = cfg.GetInt("redis.port")
	c.Redis.Password = cfg.GetString("redis.password")
	c.Redis.DB = cfg.GetInt("redis.db")
	c.Redis.EventsChannel = cfg.GetString("redis.events_channel")

	return c
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required (set PAYMENT_JWT_SECRET)")
	}
	if c.JWT.AccessTokenTTL <= 0 || c.JWT.RefreshTokenTTL <= 0 {
		return fmt.Errorf("jwt token ttl must be positive")
	}
	if c.Server.HTTP.Port <= 0 {
		return fmt.Errorf("server.http.port must be positive")
	}
	if c.Auth.PasswordMinLength < 1 {
		c.Auth.PasswordMinLength = 1
	}
	return nil
}
