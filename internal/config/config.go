// Package config loads multivar host configuration: defaults, then a YAML file,
// then MULTIVAR_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/multivar/internal/logging"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MULTIVAR_"

// Backend names accepted by the cache and journal sections.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config is the full host configuration.
type Config struct {
	Kernel    KernelConfig    `yaml:"kernel" envPrefix:"KERNEL_"`
	Limits    LimitsConfig    `yaml:"limits" envPrefix:"LIMITS_"`
	Cache     CacheConfig     `yaml:"cache" envPrefix:"CACHE_"`
	Journal   JournalConfig   `yaml:"journal" envPrefix:"JOURNAL_"`
	HTTP      HTTPConfig      `yaml:"http" envPrefix:"HTTP_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"TELEMETRY_"`
}

// KernelConfig tunes the numerical kernel. Zero values keep the kernel defaults.
type KernelConfig struct {
	Step              float64 `yaml:"step" env:"STEP"`
	ApproachRadius    float64 `yaml:"approach_radius" env:"APPROACH_RADIUS"`
	FieldTolerance    float64 `yaml:"field_tolerance" env:"FIELD_TOLERANCE"`
	ContourBand       float64 `yaml:"contour_band" env:"CONTOUR_BAND"`
	LagrangeTolerance float64 `yaml:"lagrange_tolerance" env:"LAGRANGE_TOLERANCE"`
	PathSteps         int     `yaml:"path_steps" env:"PATH_STEPS"`
	SurfaceResolution int     `yaml:"surface_resolution" env:"SURFACE_RESOLUTION"`
	ContourResolution int     `yaml:"contour_resolution" env:"CONTOUR_RESOLUTION"`
	Workers           int     `yaml:"workers" env:"WORKERS"`
}

// LimitsConfig bounds the work a single request may ask for.
type LimitsConfig struct {
	MaxResolution int `yaml:"max_resolution" env:"MAX_RESOLUTION"`
	MaxSteps      int `yaml:"max_steps" env:"MAX_STEPS"`
	MaxLevels     int `yaml:"max_levels" env:"MAX_LEVELS"`
	MaxPoints     int `yaml:"max_points" env:"MAX_POINTS"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend       string        `yaml:"backend" env:"BACKEND"`
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB"`
	TTL           time.Duration `yaml:"ttl" env:"TTL"`
}

// JournalConfig selects the computation journal.
type JournalConfig struct {
	Backend string `yaml:"backend" env:"BACKEND"`
	Path    string `yaml:"path" env:"PATH"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

// TelemetryConfig configures tracing. An empty endpoint disables export.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	ServiceName  string `yaml:"service_name" env:"SERVICE_NAME"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Limits: LimitsConfig{
			MaxResolution: 200,
			MaxSteps:      1000,
			MaxLevels:     32,
			MaxPoints:     64,
		},
		Cache: CacheConfig{
			Backend:   BackendMemory,
			RedisAddr: "localhost:6379",
			TTL:       10 * time.Minute,
		},
		Journal: JournalConfig{
			Backend: BackendMemory,
			Path:    "multivar.db",
		},
		HTTP:      HTTPConfig{Addr: ":8080"},
		Log:       LogConfig{Level: "info"},
		Telemetry: TelemetryConfig{ServiceName: "multivar"},
	}
}

// Load builds the configuration. path may be empty; a named file must exist.
// YAML is a superset of JSON, so .json files load too.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch strings.ToLower(c.Cache.Backend) {
	case BackendNone, BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("cache.backend %q: want none, memory or redis", c.Cache.Backend)
	}
	switch strings.ToLower(c.Journal.Backend) {
	case BackendNone, BackendMemory:
	case BackendSQLite:
		if strings.TrimSpace(c.Journal.Path) == "" {
			return fmt.Errorf("journal.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("journal.backend %q: want none, memory or sqlite", c.Journal.Backend)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Limits.MaxResolution <= 0 || c.Limits.MaxSteps <= 0 || c.Limits.MaxLevels <= 0 || c.Limits.MaxPoints <= 0 {
		return fmt.Errorf("limits must be positive")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	return nil
}
