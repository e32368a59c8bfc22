package setcat

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxMaterialized  uint64 = 1 << 16
	DefaultMaxExponential   uint64 = 1 << 16
	DefaultValidationSample        = 1024
	DefaultMemoTableSize           = 4096
)

// Config bounds how much work the engine does eagerly.
type Config struct {
	// MaxMaterialized is the largest product, coproduct or semantics-backed
	// carrier that is enumerated eagerly into a materialized set.
	MaxMaterialized uint64 `yaml:"max_materialized" env:"SETCAT_MAX_MATERIALIZED" envDefault:"65536"`

	// MaxExponential is the largest |codomain|^|base| that is enumerated
	// exhaustively. Larger finite exponentials stay lazy.
	MaxExponential uint64 `yaml:"max_exponential" env:"SETCAT_MAX_EXPONENTIAL" envDefault:"65536"`

	// ValidationSample is how many elements of a lazy domain are checked when
	// a morphism is constructed.
	ValidationSample int `yaml:"validation_sample" env:"SETCAT_VALIDATION_SAMPLE" envDefault:"1024"`

	// MemoTableSize bounds each generation of the memo table behind functions
	// registered with an unbounded exponential.
	MemoTableSize int `yaml:"memo_table_size" env:"SETCAT_MEMO_TABLE_SIZE" envDefault:"4096"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		MaxMaterialized:  DefaultMaxMaterialized,
		MaxExponential:   DefaultMaxExponential,
		ValidationSample: DefaultValidationSample,
		MemoTableSize:    DefaultMemoTableSize,
	}
}

// Normalize replaces zero or negative fields with their defaults.
func (c Config) Normalize() Config {
	if c.MaxMaterialized == 0 {
		c.MaxMaterialized = DefaultMaxMaterialized
	}
	if c.MaxExponential == 0 {
		c.MaxExponential = DefaultMaxExponential
	}
	if c.ValidationSample <= 0 {
		c.ValidationSample = DefaultValidationSample
	}
	if c.MemoTableSize <= 0 {
		c.MemoTableSize = DefaultMemoTableSize
	}
	return c
}

// LoadConfigFromEnv reads SETCAT_* environment variables.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse env: %w", err)
	}
	return cfg.Normalize(), nil
}

// LoadConfigFile overlays the YAML document at path on the defaults.
func LoadConfigFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.Normalize(), nil
}
