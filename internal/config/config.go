// Package config loads runtime settings from defaults, an optional cadence.yaml,
// a .env file and CADENCE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "CADENCE"
	ConfigName = "cadence"
)

type Config struct {
	DB      DBConfig
	HTTP    HTTPConfig
	Auth    AuthConfig
	Log     LogConfig
	Redis   RedisConfig
	AMQP    AMQPConfig
	Catalog CatalogConfig
	CLI     CLIConfig
}

type DBConfig struct {
	Path string
}

type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type LogConfig struct {
	Level string
	// File enables a rotated JSON log file next to stdout output.
	File string
}

// RedisConfig is disabled when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// AMQPConfig is disabled when URL is empty.
type AMQPConfig struct {
	URL      string
	Exchange string
}

type CatalogConfig struct {
	Path string
}

// CLIConfig identifies the operator running terminal commands.
type CLIConfig struct {
	ActorID string
	Role    string
}

// DefaultDBPath returns ~/.cadence/cadence.db, or a relative path when the
// home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cadence", "cadence.db")
	}
	return filepath.Join(home, ".cadence", "cadence.db")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.path", DefaultDBPath())
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 10*time.Minute)
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "cadence.events")
	v.SetDefault("catalog.path", "")
	v.SetDefault("cli.actor_id", "operator")
	v.SetDefault("cli.role", "admin")
}

// Load reads configuration. An explicit cfgFile must exist; otherwise
// cadence.yaml is searched in the working directory and ~/.cadence.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cadence"))
		}
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		DB:   DBConfig{Path: v.GetString("db.path")},
		HTTP: HTTPConfig{Addr: v.GetString("http.addr"), ShutdownTimeout: v.GetDuration("http.shutdown_timeout")},
		Auth: AuthConfig{Secret: v.GetString("auth.secret"), TokenTTL: v.GetDuration("auth.token_ttl")},
		Log:  LogConfig{Level: v.GetString("log.level"), File: v.GetString("log.file")},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		AMQP:    AMQPConfig{URL: v.GetString("amqp.url"), Exchange: v.GetString("amqp.exchange")},
		Catalog: CatalogConfig{Path: v.GetString("catalog.path")},
		CLI:     CLIConfig{ActorID: v.GetString("cli.actor_id"), Role: v.GetString("cli.role")},
	}
	return cfg, nil
}

// ValidateForServe checks settings only the HTTP server needs.
func (c *Config) ValidateForServe() error {
	var problems []string
	if c.Auth.Secret == "" {
		problems = append(problems, "auth.secret is required (set CADENCE_AUTH_SECRET)")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "auth.token_ttl must be positive")
	}
	if c.HTTP.Addr == "" {
		problems = append(problems, "http.addr is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ValidateForTokens checks settings needed to issue bearer tokens.
func (c *Config) ValidateForTokens() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("invalid config: auth.secret is required (set CADENCE_AUTH_SECRET)")
	}
	return nil
}
