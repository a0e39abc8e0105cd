// Package config loads tooltip settings from a YAML file with TOOLTIP_*
// environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	tooltip "github.com/goliatone/go-tooltip"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TOOLTIP_"

// File is the on-disk configuration.
type File struct {
	Tooltip     tooltip.Settings `koanf:"tooltip" yaml:"tooltip,omitempty"`
	Environment Environment      `koanf:"environment" yaml:"environment,omitempty"`

	path string
}

// Environment configures the shared tooltip environment.
type Environment struct {
	Mode           string `koanf:"mode" yaml:"mode,omitempty"`
	RuleEngine     string `koanf:"rule_engine" yaml:"rule_engine,omitempty"`
	CapabilityRule string `koanf:"capability_rule" yaml:"capability_rule,omitempty"`
	LogLevel       string `koanf:"log_level" yaml:"log_level,omitempty"`
}

var environmentKeys = map[string]bool{
	"mode":            true,
	"rule_engine":     true,
	"capability_rule": true,
	"log_level":       true,
}

// envKey maps TOOLTIP_SHOW_DELAY to tooltip.show_delay and TOOLTIP_MODE to
// environment.mode.
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if environmentKeys[key] {
		return "environment." + key
	}
	return "tooltip." + key
}

// Load reads the YAML file at path, when it exists, then overlays
// TOOLTIP_* environment variables. An empty path skips the file.
func Load(path string) (*File, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	cfg := &File{path: path}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (f *File) Save(path string) error {
	data, err := yamlv3.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Path returns the file the configuration was loaded from.
func (f *File) Path() string {
	return f.path
}

// Validate checks the settings resolve and the environment values are known.
func (f *File) Validate() error {
	if _, err := f.Tooltip.Resolve(); err != nil {
		return fmt.Errorf("invalid tooltip settings: %w", err)
	}
	switch tooltip.Mode(strings.ToLower(f.Environment.Mode)) {
	case "", tooltip.ModeNative, tooltip.ModeComputed:
	default:
		return fmt.Errorf("invalid mode %q: must be native or computed", f.Environment.Mode)
	}
	switch strings.ToLower(f.Environment.RuleEngine) {
	case "", "expr", "cel", "js":
	default:
		return fmt.Errorf("invalid rule_engine %q: must be expr, cel or js", f.Environment.RuleEngine)
	}
	switch strings.ToLower(f.Environment.LogLevel) {
	case "", "debug", "info", "warn":
	default:
		return fmt.Errorf("invalid log_level %q", f.Environment.LogLevel)
	}
	return nil
}

// Config resolves the tooltip settings on top of the defaults.
func (f *File) Config() (tooltip.Config, error) {
	return f.Tooltip.Resolve()
}

// Layer returns the file settings as the site layer of a configuration
// stack.
func (f *File) Layer() tooltip.Layer {
	return tooltip.NewLayer(
		tooltip.NewScope("site", tooltip.ScopePrioritySite, tooltip.WithScopeLabel("Config file")),
		f.Tooltip,
		tooltip.WithSnapshotID(f.path),
	)
}

// EnvironmentOptions translates the environment section. logger may be nil.
func (f *File) EnvironmentOptions(logger *slog.Logger) []tooltip.EnvironmentOption {
	var opts []tooltip.EnvironmentOption
	if mode := strings.ToLower(f.Environment.Mode); mode != "" {
		opts = append(opts, tooltip.WithMode(tooltip.Mode(mode)))
	}
	if f.Environment.RuleEngine != "" {
		opts = append(opts, tooltip.WithRuleEngine(f.Environment.RuleEngine))
	}
	if f.Environment.CapabilityRule != "" {
		opts = append(opts, tooltip.WithCapabilityRule(f.Environment.CapabilityRule))
	}
	if logger != nil {
		opts = append(opts, tooltip.WithLogger(tooltip.SlogLogger(logger)))
	}
	return opts
}

// SlogLevel maps log_level to a slog level. Unset means warn.
func (e Environment) SlogLevel() slog.Level {
	switch strings.ToLower(e.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}
