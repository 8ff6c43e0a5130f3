package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "covercheck.yaml"

// Config represents the top-level covercheck.yaml configuration.
type Config struct {
	Protection ProtectionConfig `yaml:"protection"`
	Routing    RoutingConfig    `yaml:"routing"`
	FX         FXConfig         `yaml:"fx"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// ProtectionConfig sets the per-license protection caps in KRW. Cap is the
// current policy limit; LegacyCap is the pre-raise limit kept selectable
// for before/after comparisons.
type ProtectionConfig struct {
	Cap       int64 `yaml:"cap"`
	LegacyCap int64 `yaml:"legacy_cap"`
}

// RoutingConfig sets the allocator limits in KRW.
type RoutingConfig struct {
	LiquidityReserve int64 `yaml:"liquidity_reserve"`
	OfferCeiling     int64 `yaml:"offer_ceiling"`
}

// FXConfig sets the demo USD/KRW rate used for holdings without their own.
type FXConfig struct {
	USDKRW int64 `yaml:"usd_krw"`
}

// ServerConfig sets the HTTP server options.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LogConfig sets logging options.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a covercheck.yaml file from disk. Keys absent from the file
// keep their default values, so partial configs are fine.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault reads path when given, otherwise covercheck.yaml in the
// working directory, falling back to built-in defaults when no file exists.
// An explicitly given path must exist.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultFile)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the built-in configuration: the post-2025 100M KRW cap
// with the old 50M cap as legacy, a 10M liquidity reserve, a 50M per-offer
// ceiling and the 1400 demo FX rate.
func Default() *Config {
	return &Config{
		Protection: ProtectionConfig{
			Cap:       100_000_000,
			LegacyCap: 50_000_000,
		},
		Routing: RoutingConfig{
			LiquidityReserve: 10_000_000,
			OfferCeiling:     50_000_000,
		},
		FX: FXConfig{
			USDKRW: 1400,
		},
		Server: ServerConfig{
			Port: 8190,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate rejects configurations the core cannot run with.
func (c *Config) Validate() error {
	if c.Protection.Cap <= 0 {
		return fmt.Errorf("protection.cap must be positive, got %d", c.Protection.Cap)
	}
	if c.Protection.LegacyCap <= 0 {
		return fmt.Errorf("protection.legacy_cap must be positive, got %d", c.Protection.LegacyCap)
	}
	if c.Routing.LiquidityReserve < 0 {
		return fmt.Errorf("routing.liquidity_reserve must not be negative, got %d", c.Routing.LiquidityReserve)
	}
	if c.Routing.OfferCeiling <= 0 {
		return fmt.Errorf("routing.offer_ceiling must be positive, got %d", c.Routing.OfferCeiling)
	}
	if c.FX.USDKRW <= 0 {
		return fmt.Errorf("fx.usd_krw must be positive, got %d", c.FX.USDKRW)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	return nil
}
