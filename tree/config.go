package tree

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// TypeSpec describes one entry of the type palette.
type TypeSpec struct {
	Name   string  `toml:"name" yaml:"name"`
	Weight float64 `toml:"weight" yaml:"weight"` // relative likelihood of being sampled
	Color  string  `toml:"color" yaml:"color"`   // hex colour, "" for clear
}

// Config holds generation parameters. It is fixed once a Navigator is created.
type Config struct {
	GroupSize   int        `toml:"group_size" yaml:"group_size"`     // nodes per sibling group, default 8
	Types       []TypeSpec `toml:"types" yaml:"types"`               // type palette, default ten types
	Homogeneity float64    `toml:"homogeneity" yaml:"homogeneity"`   // chance a node copies its predecessor's type, in [0,1]
	MaxAttempts int        `toml:"max_attempts" yaml:"max_attempts"` // rejection sampling bound for descents, default 100000
	Seed        int64      `toml:"seed" yaml:"seed"`                 // random seed
}

// DefaultTypes returns the default ten-type palette.
func DefaultTypes() []TypeSpec {
	return []TypeSpec{
		{Name: "green", Weight: 30, Color: "#00ff00"},
		{Name: "blue", Weight: 8, Color: "#0000ff"},
		{Name: "yellow", Weight: 0, Color: "#ffeb04"},
		{Name: "red", Weight: 0, Color: "#ff0000"},
		{Name: "magenta", Weight: 0, Color: "#ff00ff"},
		{Name: "cyan", Weight: .3, Color: "#00ffff"},
		{Name: "white", Weight: .6, Color: "#ffffff"},
		{Name: "grey", Weight: 0, Color: "#808080"},
		{Name: "black", Weight: .3, Color: "#000000"},
		{Name: "clear", Weight: 0, Color: ""},
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		GroupSize:   8,
		Types:       DefaultTypes(),
		Homogeneity: .8,
		MaxAttempts: 100_000,
		Seed:        1,
	}
}

// OrDefault returns DefaultConfig if c is nil, otherwise fills zero fields.
// Homogeneity is left alone since 0 is meaningful.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	if c.GroupSize <= 0 {
		c.GroupSize = 8
	}
	if len(c.Types) == 0 {
		c.Types = DefaultTypes()
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 100_000
	}
	return c
}

// Clone returns a deep copy of c, or nil if c is nil.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Types = append([]TypeSpec(nil), c.Types...)
	return &out
}

// Validate checks that c can drive generation.
func (c *Config) Validate() error {
	if c.GroupSize < 1 {
		return fmt.Errorf("%w: group size %d", ErrInvalidConfig, c.GroupSize)
	}
	if len(c.Types) == 0 {
		return fmt.Errorf("%w: no types", ErrInvalidConfig)
	}
	if !(c.Homogeneity >= 0 && c.Homogeneity <= 1) {
		return fmt.Errorf("%w: homogeneity %g not in [0,1]", ErrInvalidConfig, c.Homogeneity)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts %d", ErrInvalidConfig, c.MaxAttempts)
	}
	var total float64
	for i, t := range c.Types {
		if t.Weight < 0 || math.IsNaN(t.Weight) || math.IsInf(t.Weight, 0) {
			return fmt.Errorf("%w: type %d has weight %g", ErrInvalidConfig, i, t.Weight)
		}
		total += t.Weight
	}
	if total <= 0 {
		return ErrZeroWeight
	}
	return nil
}

// Weights returns the per-type weights in palette order.
func (c *Config) Weights() []float64 {
	w := make([]float64, len(c.Types))
	for i, t := range c.Types {
		w[i] = t.Weight
	}
	return w
}

// TypeName returns the configured name of t, falling back to t.String().
func (c *Config) TypeName(t NodeType) string {
	if t >= 0 && int(t) < len(c.Types) && c.Types[t].Name != "" {
		return c.Types[t].Name
	}
	return t.String()
}

// LoadConfigFile reads a TOML (.toml) or YAML (.yaml, .yml) config file.
// Missing fields take their defaults; the result is validated.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Homogeneity: DefaultConfig().Homogeneity}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported config extension %q", ErrInvalidConfig, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg = cfg.OrDefault()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
