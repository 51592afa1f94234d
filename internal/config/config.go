// Package config assembles the CLI's configuration from built-in defaults,
// an optional on-disk defaults file, environment variables, and flag
// values, in that order of increasing precedence, mirroring the teacher's
// viper-backed config loader.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/cualbondi/osmptparser/internal/errs"
)

// Mode selects which output shape the CLI produces, per spec.md §4.7: the
// three CLI filter flags are mutually exclusive and exactly one selects
// the mode.
type Mode int

const (
	// ModeAreas parses standalone ways and closed relations into Area
	// features, filtered by an arbitrary tag expression.
	ModeAreas Mode = iota
	// ModePTv2 parses the fixed PTv2 tag profile into PublicTransport
	// features.
	ModePTv2
)

// Config holds the fully-resolved settings the rest of the program needs.
type Config struct {
	// InputPath is the PBF file to read.
	InputPath string `yaml:"input_path"`

	// Mode selects the output shape; derived from which filter flag fired.
	Mode Mode `yaml:"-"`

	// FilterExpr is the tag filter expression the passes evaluate (see
	// internal/tagfilter for grammar). In ModePTv2 it holds PTv2FilterExpr.
	FilterExpr string `yaml:"filter"`

	// CPUs is the worker count for passes and the parallel feature map.
	// 0 means "use runtime.NumCPU()".
	CPUs int `yaml:"cpus"`

	// Gap is the join tolerance in meters passed to the geometry healer.
	Gap float64 `yaml:"gap"`
}

// Default returns the built-in defaults, matching spec.md's CLI table.
func Default() *Config {
	return &Config{
		CPUs: 0,
		Gap:  150.0,
	}
}

// PTv2FilterExpr is the fixed tag expression for the PTv2 convenience
// profile (spec.md §4.3). route_master here is a tag-exists predicate: the
// source comments suggest the original intent was "route_master must be
// absent", but spec.md directs implementers to choose with eyes open
// rather than silently invert the observed behavior. We keep the literal
// reading.
const PTv2FilterExpr = "name&route_master&route=bus,tram,train,subway,light_rail,monorail,trolleybus"

// AdminAreaFilterExpr is the administrative-areas convenience profile
// restored from original_source/src/parser/mod.rs (Parser::new_aa), which
// spec.md's distillation dropped. It reuses the areas output path.
const AdminAreaFilterExpr = "name&admin_level&boundary=administrative"

// loadDefaultsFile merges an optional ~/.osmptparser.yaml into v, ignoring
// a missing file (not finding one is not an error: the CLI is fully
// usable from flags alone).
func loadDefaultsFile(v *viper.Viper) error {
	v.SetConfigName(".osmptparser")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// LoadDefaults resolves built-in defaults, an optional config file, and
// OSMPTPARSER_* environment variables into a Config. CLI flags are applied
// on top of the result by the caller (cmd/osmptparser), since cobra owns
// flag parsing.
func LoadDefaults() (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetDefault("cpus", cfg.CPUs)
	v.SetDefault("gap", cfg.Gap)
	v.SetEnvPrefix("OSMPTPARSER")
	v.AutomaticEnv()

	if err := loadDefaultsFile(v); err != nil {
		return nil, errs.WrapConfig(err, "failed to load defaults file")
	}

	cfg.CPUs = v.GetInt("cpus")
	cfg.Gap = v.GetFloat64("gap")
	if filter := v.GetString("filter"); filter != "" {
		cfg.FilterExpr = filter
	}

	return cfg, nil
}

// Validate enforces spec.md §4.7/§6's CLI contract: an input path that
// exists and is not a directory, a non-empty filter expression in areas
// mode, and a non-negative gap. Mutual exclusion of the three filter flags
// is checked by cmd/osmptparser's resolveMode, not here.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errs.ConfigError("input PBF path is required")
	}
	if info, err := os.Stat(c.InputPath); err != nil {
		return errs.WrapConfig(err, fmt.Sprintf("cannot open %q", c.InputPath))
	} else if info.IsDir() {
		return errs.ConfigErrorf("%q is a directory, not a PBF file", c.InputPath)
	}
	if c.Mode == ModeAreas && c.FilterExpr == "" {
		return errs.ConfigError("areas mode requires a non-empty filter expression")
	}
	if c.Gap < 0 {
		return errs.ConfigErrorf("gap tolerance must be >= 0, got %v", c.Gap)
	}
	return nil
}

// AbsInputPath returns the absolute form of InputPath, useful for logging.
func (c *Config) AbsInputPath() string {
	abs, err := filepath.Abs(c.InputPath)
	if err != nil {
		return c.InputPath
	}
	return abs
}
