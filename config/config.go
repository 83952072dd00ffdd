// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"postgres", "sqlite"}

	// Command line flags that override config keys
	flagKeys = map[string]string{
		"config":          "config",
		"app.log_level":   "log-level",
		"host.port":       "port",
		"database.driver": "db-driver",
		"database.dsn":    "dsn",
	}
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Host       HostConfig       `mapstructure:"host"`
	Database   DatabaseConfig   `mapstructure:"database"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Mail       MailConfig       `mapstructure:"mail"`
	Security   SecurityConfig   `mapstructure:"security"`
	Cloudflare CloudflareConfig `mapstructure:"cloudflare"`
	Cleanup    CleanupConfig    `mapstructure:"cleanup"`
}

type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

type HostConfig struct {
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	// Base URL of the frontend, used to build verification links
	FrontendURL string `mapstructure:"frontend_url"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type MailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Sender   string `mapstructure:"sender"`
}

type SecurityConfig struct {
	RateLimit int   `mapstructure:"rate_limit"`
	BodyLimit int64 `mapstructure:"body_limit"`
}

type CloudflareConfig struct {
	Turnstile TurnstileConfig `mapstructure:"turnstile"`
}

type TurnstileConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	SecretToken string `mapstructure:"secret_token"`
}

type CleanupConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	UnverifiedTTL time.Duration `mapstructure:"unverified_ttl"`
}

// GenSecret returns a random hex string fit to be used as a JWT secret
func GenSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Load prepares everything config-related so that the app can
// start working. Values are read from (lowest priority first) defaults,
// the config file, a .env file, environment variables and finally the
// flags in fs. Function will return an error if something is critically
// wrong and the application can't run because of that.
func Load(fs *pflag.FlagSet) (*Config, error) {
	// A missing .env is normal outside of local development
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("No .env file loaded", zap.Error(err))
	}

	vp := v.New()

	if fs != nil {
		for key, name := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}

			if err := vp.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s, %w", name, err)
			}
		}
	}

	if path := vp.GetString("config"); path != "" {
		vp.SetConfigFile(path)
	} else {
		vp.SetConfigName("config")
		vp.SetConfigType("toml")
		vp.AddConfigPath(".")
	}

	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	//
	// ENVS
	//
	vp.BindEnv("app.log_level", "APP_LOG_LEVEL")

	vp.BindEnv("host.port", "HOST_PORT", "PORT")
	vp.BindEnv("host.cors_origins", "HOST_CORS")
	vp.BindEnv("host.frontend_url", "HOST_FRONTEND_URL")

	vp.BindEnv("database.driver", "DATABASE_DRIVER")
	vp.BindEnv("database.dsn", "DATABASE_DSN", "DATABASE_URL")
	vp.BindEnv("database.max_open_conns", "DATABASE_MAX_OPEN_CONNS")

	vp.BindEnv("jwt.secret", "JWT_SECRET")
	vp.BindEnv("jwt.ttl", "JWT_TTL")

	vp.BindEnv("mail.enabled", "MAIL_ENABLED")
	vp.BindEnv("mail.host", "MAIL_HOST")
	vp.BindEnv("mail.port", "MAIL_PORT")
	vp.BindEnv("mail.username", "MAIL_USERNAME")
	vp.BindEnv("mail.password", "MAIL_PASSWORD")
	vp.BindEnv("mail.sender", "MAIL_SENDER_ADDRESS")

	vp.BindEnv("security.rate_limit", "SECURITY_RATE_LIMIT")
	vp.BindEnv("security.body_limit", "SECURITY_BODY_LIMIT")

	vp.BindEnv("cloudflare.turnstile.enabled", "CLOUDFLARE_TURNSTILE_ENABLED")
	vp.BindEnv("cloudflare.turnstile.secret_token", "CLOUDFLARE_TURNSTILE_SECRET_TOKEN")

	vp.BindEnv("cleanup.interval", "CLEANUP_INTERVAL")
	vp.BindEnv("cleanup.unverified_ttl", "CLEANUP_UNVERIFIED_TTL")

	//
	// Defaults
	//
	setDefaults(vp)

	if err := vp.ReadInConfig(); err != nil {
		var notFound v.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}

		zap.L().Debug("No config file found, using defaults and environment")
	}

	var cfg Config
	if err := vp.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config, %w", err)
	}

	// Comma separated lists coming from the environment arrive as one element
	if len(cfg.Host.CORSOrigins) == 1 {
		cfg.Host.CORSOrigins = strings.Split(cfg.Host.CORSOrigins[0], ",")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(vp *v.Viper) {
	vp.SetDefault("app.log_level", "info")

	vp.SetDefault("host.port", 8080)
	vp.SetDefault("host.cors_origins", []string{"http://localhost:5173"})
	vp.SetDefault("host.frontend_url", "http://localhost:5173")

	vp.SetDefault("database.driver", "postgres")
	vp.SetDefault("database.max_open_conns", 10)

	vp.SetDefault("jwt.ttl", 24*time.Hour)

	vp.SetDefault("mail.enabled", false)
	vp.SetDefault("mail.port", 587)

	vp.SetDefault("security.rate_limit", 20)
	vp.SetDefault("security.body_limit", 1<<20)

	vp.SetDefault("cloudflare.turnstile.enabled", false)

	vp.SetDefault("cleanup.interval", 24*time.Hour)
	vp.SetDefault("cleanup.unverified_ttl", 7*24*time.Hour)
}

// Validate checks the values that the rest of the application relies on
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, c.App.LogLevel) {
		return errors.New("invalid log level provided")
	}

	if c.Host.Port <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, c.Database.Driver) {
		return errors.New("invalid database driver provided")
	}

	if c.Database.DSN == "" {
		return errors.New("no database dsn provided")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("no JWT secret set. Set JWT_SECRET or jwt.secret in config.toml, for example:\n\n%s", GenSecret())
	}

	if c.JWT.TTL <= 0 {
		return errors.New("jwt.ttl must be bigger than 0")
	}

	if c.Mail.Enabled {
		if c.Mail.Host == "" {
			return errors.New("mail host can't be empty")
		}
		if c.Mail.Sender == "" {
			return errors.New("mail sender can't be empty")
		}
	}

	if c.Security.RateLimit <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if c.Security.BodyLimit <= 0 {
		return errors.New("security.body_limit must be bigger than 0")
	}

	if c.Cloudflare.Turnstile.Enabled && c.Cloudflare.Turnstile.SecretToken == "" {
		return errors.New("turnstile secret token is missing")
	}

	if c.Cleanup.Interval <= 0 {
		return errors.New("cleanup.interval must be bigger than 0")
	}

	return nil
}
