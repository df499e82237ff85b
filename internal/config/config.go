// Package config loads the server and admin settings from the environment.
//
// A .env file in the working directory is read first when present, so local
// runs need no exported variables. Real environment variables win over it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"yatube/internal/infra/db"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// MinSecretLength is the shortest accepted JWT_SECRET.
const MinSecretLength = 32

// Config holds every setting read from the environment.
type Config struct {
	Addr        string `mapstructure:"APP_ADDR"`
	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int    `mapstructure:"DB_MAX_CONNS"`

	CacheBackend       string        `mapstructure:"CACHE_BACKEND"`
	RedisURL           string        `mapstructure:"REDIS_URL"`
	CachePrefix        string        `mapstructure:"CACHE_PREFIX"`
	CacheIndexTTL      time.Duration `mapstructure:"CACHE_INDEX_TTL"`
	CacheGroupTTL      time.Duration `mapstructure:"CACHE_GROUP_TTL"`
	CacheProfileTTL    time.Duration `mapstructure:"CACHE_PROFILE_TTL"`
	CacheSweepSchedule string        `mapstructure:"CACHE_SWEEP_SCHEDULE"`

	JWTSecret          string `mapstructure:"JWT_SECRET"`
	SessionCookie      string `mapstructure:"SESSION_COOKIE"`
	LoginURL           string `mapstructure:"LOGIN_URL"`
	WriteRatePerMinute int    `mapstructure:"WRITE_RATE_PER_MINUTE"`

	LogLevel         string  `mapstructure:"LOG_LEVEL"`
	TraceSampleRatio float64 `mapstructure:"TRACE_SAMPLE_RATIO"`
}

var defaults = map[string]any{
	"APP_ADDR":              ":8080",
	"DB_DRIVER":             string(db.DriverSQLite),
	"DATABASE_URL":          "yatube.db",
	"DB_MAX_CONNS":          25,
	"CACHE_BACKEND":         CacheMemory,
	"REDIS_URL":             "",
	"CACHE_PREFIX":          "yatube:page",
	"CACHE_INDEX_TTL":       "20s",
	"CACHE_GROUP_TTL":       "20s",
	"CACHE_PROFILE_TTL":     "20s",
	"CACHE_SWEEP_SCHEDULE":  "@every 1m",
	"JWT_SECRET":            "",
	"SESSION_COOKIE":        "yatube_session",
	"LOGIN_URL":             "/auth/login/",
	"WRITE_RATE_PER_MINUTE": 30,
	"LOG_LEVEL":             "info",
	"TRACE_SAMPLE_RATIO":    1.0,
}

// Load reads .env (when present) and the environment. It does not validate;
// callers pick the checks they need.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.CacheBackend = strings.ToLower(strings.TrimSpace(cfg.CacheBackend))
	return &cfg, nil
}

// Driver returns the parsed DB_DRIVER.
func (c *Config) Driver() (db.Driver, error) {
	return db.ParseDriver(c.DBDriver)
}

// ConnectionConfig returns the pool settings for db.Open.
func (c *Config) ConnectionConfig() db.ConnectionConfig {
	cc := db.DefaultConnectionConfig()
	if c.DBMaxConns > 0 {
		cc.MaxConns = int32(c.DBMaxConns)
	}
	return cc
}

// Validate checks everything the API server needs.
func (c *Config) Validate() error {
	return errors.Join(
		c.ValidateDatabase(),
		c.ValidateCache(),
		c.ValidateSecret(),
		c.validateHTTP(),
	)
}

// ValidateDatabase checks DB_DRIVER, DATABASE_URL and DB_MAX_CONNS.
func (c *Config) ValidateDatabase() error {
	var errs []error
	if _, err := c.Driver(); err != nil {
		errs = append(errs, fmt.Errorf("DB_DRIVER: %w", err))
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.DBMaxConns < 1 {
		errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
	}
	return errors.Join(errs...)
}

// ValidateCache checks the cache backend and TTLs.
func (c *Config) ValidateCache() error {
	var errs []error
	switch c.CacheBackend {
	case CacheMemory:
		if _, err := cron.ParseStandard(c.CacheSweepSchedule); err != nil {
			errs = append(errs, fmt.Errorf("CACHE_SWEEP_SCHEDULE: %w", err))
		}
	case CacheRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis cache backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheMemory, CacheRedis, c.CacheBackend))
	}
	for name, ttl := range map[string]time.Duration{
		"CACHE_INDEX_TTL":   c.CacheIndexTTL,
		"CACHE_GROUP_TTL":   c.CacheGroupTTL,
		"CACHE_PROFILE_TTL": c.CacheProfileTTL,
	} {
		if ttl < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", name, ttl))
		}
	}
	return errors.Join(errs...)
}

// ValidateSecret checks JWT_SECRET.
func (c *Config) ValidateSecret() error {
	if len(c.JWTSecret) < MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", MinSecretLength)
	}
	return nil
}

func (c *Config) validateHTTP() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("APP_ADDR is required"))
	}
	if c.SessionCookie == "" {
		errs = append(errs, errors.New("SESSION_COOKIE is required"))
	}
	if u, err := url.Parse(c.LoginURL); err != nil || c.LoginURL == "" || u.IsAbs() {
		errs = append(errs, fmt.Errorf("LOGIN_URL must be a site-relative path, got %q", c.LoginURL))
	}
	if c.WriteRatePerMinute < 1 {
		errs = append(errs, fmt.Errorf("WRITE_RATE_PER_MINUTE must be positive, got %d", c.WriteRatePerMinute))
	}
	if c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1 {
		errs = append(errs, fmt.Errorf("TRACE_SAMPLE_RATIO must be within [0, 1], got %g", c.TraceSampleRatio))
	}
	return errors.Join(errs...)
}

// String renders the config for startup logs with secrets masked.
func (c *Config) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "addr=%s driver=%s database=%s max_conns=%d ", c.Addr, c.DBDriver, maskURL(c.DatabaseURL), c.DBMaxConns)
	fmt.Fprintf(&sb, "cache=%s redis=%s prefix=%s ttl(index=%s group=%s profile=%s) sweep=%q ",
		c.CacheBackend, maskURL(c.RedisURL), c.CachePrefix, c.CacheIndexTTL, c.CacheGroupTTL, c.CacheProfileTTL, c.CacheSweepSchedule)
	secret := "(empty)"
	if c.JWTSecret != "" {
		secret = "********"
	}
	fmt.Fprintf(&sb, "jwt_secret=%s cookie=%s login=%s write_rate=%d log_level=%s trace_ratio=%g",
		secret, c.SessionCookie, c.LoginURL, c.WriteRatePerMinute, c.LogLevel, c.TraceSampleRatio)
	return sb.String()
}

func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
