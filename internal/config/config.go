// Package config loads the cfrac runtime configuration from defaults, an
// optional YAML file and CFRAC_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/cfrac/internal/logging"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "CFRAC_"

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the root configuration document.
type Config struct {
	LogLevel string       `yaml:"log_level" mapstructure:"log_level"`
	Cache    CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Server   ServerConfig `yaml:"server" mapstructure:"server"`
	MCP      MCPConfig    `yaml:"mcp" mapstructure:"mcp"`
}

type CacheConfig struct {
	Backend  string      `yaml:"backend" mapstructure:"backend"`
	Capacity int         `yaml:"capacity" mapstructure:"capacity"` // memory backend only, 0 means unbounded
	Redis    RedisConfig `yaml:"redis" mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" mapstructure:"addr"`
	Password string        `yaml:"password" mapstructure:"password"`
	DB       int           `yaml:"db" mapstructure:"db"`
	Prefix   string        `yaml:"prefix" mapstructure:"prefix"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

type MCPConfig struct {
	Transport string `yaml:"transport" mapstructure:"transport"`
	Port      int    `yaml:"port" mapstructure:"port"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Cache: CacheConfig{
			Backend:  BackendMemory,
			Capacity: 4096,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "cfrac:expansion:",
				TTL:    24 * time.Hour,
			},
		},
		Server: ServerConfig{Port: 8080},
		MCP:    MCPConfig{Transport: TransportStdio, Port: 8081},
	}
}

// Load builds the configuration. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays CFRAC_* variables onto cfg. CFRAC_CACHE_REDIS_ADDR maps
// to cache.redis.addr and so on for every key of Config.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	overrides := make(map[string]any)
	for _, path := range keyPaths(reflect.TypeOf(*cfg), nil) {
		name := EnvPrefix + strings.ToUpper(strings.Join(path, "_"))
		value, ok := lookup(name)
		if !ok {
			continue
		}
		setPath(overrides, path, value)
	}
	if len(overrides) == 0 {
		return nil
	}
	return Decode(overrides, cfg)
}

// Decode merges a loosely typed map (env, flags) into cfg. Durations may be
// given as strings such as "90s".
func Decode(input map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("failed to decode overrides: %w", err)
	}
	return nil
}

// keyPaths lists the mapstructure key path of every leaf field.
func keyPaths(t reflect.Type, prefix []string) [][]string {
	var paths [][]string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		path := append(append([]string{}, prefix...), tag)
		if f.Type.Kind() == reflect.Struct {
			paths = append(paths, keyPaths(f.Type, path)...)
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

func setPath(m map[string]any, path []string, value string) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch c.Cache.Backend {
	case BackendNone, BackendMemory:
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("%w: cache.redis.addr is required for the redis backend", ErrInvalidConfig)
		}
		if c.Cache.Redis.TTL < 0 {
			return fmt.Errorf("%w: cache.redis.ttl must not be negative", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown cache.backend %q", ErrInvalidConfig, c.Cache.Backend)
	}
	if c.Cache.Capacity < 0 {
		return fmt.Errorf("%w: cache.capacity must not be negative", ErrInvalidConfig)
	}

	if err := validatePort("server.port", c.Server.Port); err != nil {
		return err
	}

	switch c.MCP.Transport {
	case TransportStdio:
	case TransportSSE:
		if err := validatePort("mcp.port", c.MCP.Port); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown mcp.transport %q", ErrInvalidConfig, c.MCP.Transport)
	}
	return nil
}

func validatePort(key string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: %s %d out of range", ErrInvalidConfig, key, port)
	}
	return nil
}
