package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"ravegraph/internal/logging"
)

var Envs = []string{"development", "production", "test"}

type Config struct {
	Env        string          `mapstructure:"env"`
	ListenAddr string          `mapstructure:"listen_addr"`
	LogLevel   string          `mapstructure:"log_level"`
	DB         DBConfig        `mapstructure:"db"`
	Telemetry  TelemetryConfig `mapstructure:"otel"`
}

type DBConfig struct {
	// URL wins over the individual connection fields when set.
	URL            string        `mapstructure:"url"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Name           string        `mapstructure:"name"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	MaxConns       int32         `mapstructure:"max_conns"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// env vars bound to each key
var bindings = map[string]string{
	"env":                "APP_ENV",
	"listen_addr":        "LISTEN_ADDR",
	"log_level":          "LOG_LEVEL",
	"db.url":             "DATABASE_URL",
	"db.host":            "DB_HOST",
	"db.port":            "DB_PORT",
	"db.name":            "DB_NAME",
	"db.user":            "DB_USER",
	"db.password":        "DB_PASSWORD",
	"db.max_conns":       "DB_MAX_CONNS",
	"db.connect_timeout": "DB_CONNECT_TIMEOUT",
	"otel.enabled":       "OTEL_ENABLED",
}

func defaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "ravegraph")
	v.SetDefault("db.user", "ravegraph")
	v.SetDefault("db.password", "ravegraph_dev")
	v.SetDefault("db.max_conns", 10)
	v.SetDefault("db.connect_timeout", "10s")
	v.SetDefault("otel.enabled", false)
}

// Load reads configuration from defaults, an optional yaml file, a .env file in
// the working directory if there is one, and the environment, in increasing
// order of precedence.
func Load(file string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: .env: %w", err)
	}

	v := viper.New()
	defaults(v)
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", env, err)
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.Env = strings.ToLower(cfg.Env)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case !slices.Contains(Envs, c.Env):
		return fmt.Errorf("config: APP_ENV %q must be one of %s", c.Env, strings.Join(Envs, ", "))
	case !slices.Contains(logging.Levels, c.LogLevel):
		return fmt.Errorf("config: LOG_LEVEL %q must be one of %s", c.LogLevel, strings.Join(logging.Levels, ", "))
	case c.DB.Port < 1 || c.DB.Port > 65535:
		return fmt.Errorf("config: DB_PORT %d out of range 1-65535", c.DB.Port)
	case c.DB.MaxConns < 1:
		return fmt.Errorf("config: DB_MAX_CONNS must be at least 1")
	case c.DB.ConnectTimeout <= 0:
		return fmt.Errorf("config: DB_CONNECT_TIMEOUT must be positive")
	}
	return nil
}

// DSN returns the Postgres connection string.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	return u.String()
}
