// Package config loads layered settings (defaults, config file, WALKTHROUGH_* environment).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. WALKTHROUGH_SERVER_PORT.
const EnvPrefix = "WALKTHROUGH"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config is the full application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Tour   TourConfig   `mapstructure:"tour"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// StoreConfig selects where tour sessions are persisted.
// Path is the directory of the file backend or the database file of the sqlite backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// TourConfig overrides the tour conventions.
type TourConfig struct {
	Offset       float64 `mapstructure:"offset"`
	MarkerPrefix string  `mapstructure:"marker_prefix"`
	Annotation   string  `mapstructure:"annotation"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "warn"},
		Server: ServerConfig{Port: 8080},
		Store:  StoreConfig{Backend: BackendMemory, Path: ".walkthrough/sessions"},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "walkthrough:session:",
		},
		Tour: TourConfig{
			Offset:       domain.DefaultOffset,
			MarkerPrefix: domain.DefaultMarkerPrefix,
			Annotation:   domain.DefaultAnnotationKey,
		},
	}
}

// New returns a viper instance carrying the defaults and the environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every key so that environment overrides are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("server.port", d.Server.Port)

	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.path", d.Store.Path)

	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.prefix", d.Redis.Prefix)
	v.SetDefault("redis.ttl", d.Redis.TTL)

	v.SetDefault("tour.offset", d.Tour.Offset)
	v.SetDefault("tour.marker_prefix", d.Tour.MarkerPrefix)
	v.SetDefault("tour.annotation", d.Tour.Annotation)
}

// ReadFile reads cfgFile, or searches walkthrough.yaml in ConfigDir and the working directory.
// A missing file is not an error when searching.
func ReadFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("walkthrough")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load reads the configuration from viper into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated and ranged values.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(Backends(), c.Store.Backend) {
		errs = append(errs, fmt.Errorf("store.backend: unknown backend %q (want one of %s)", c.Store.Backend, strings.Join(Backends(), ", ")))
	}
	if (c.Store.Backend == BackendFile || c.Store.Backend == BackendSQLite) && c.Store.Path == "" {
		errs = append(errs, fmt.Errorf("store.path: required for the %s backend", c.Store.Backend))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port: %d out of range", c.Server.Port))
	}
	if c.Redis.TTL < 0 {
		errs = append(errs, fmt.Errorf("redis.ttl: must not be negative"))
	}
	return errors.Join(errs...)
}

// Backends lists the valid store backends.
func Backends() []string {
	return []string{BackendMemory, BackendFile, BackendRedis, BackendSQLite}
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "walkthrough")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".walkthrough"
	}
	return filepath.Join(home, ".config", "walkthrough")
}
