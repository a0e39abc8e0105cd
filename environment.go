package tooltip

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-tooltip/internal/loop"
	"github.com/goliatone/go-tooltip/pkg/clock"
)

// Environment is the process-scoped state shared by tooltips: the capability
// decision, the host, the clock and the loop every tooltip operation runs on.
// The positioning mode is decided at most once per Environment.
type Environment struct {
	cfg  environmentConfig
	loop *loop.Loop

	once    sync.Once
	mode    Mode
	decided atomic.Bool
}

// EnvironmentOption configures an Environment.
type EnvironmentOption func(*environmentConfig)

type environmentConfig struct {
	probe      Probe
	features   []Feature
	rule       string
	engine     string
	evaluator  Evaluator
	cache      ProgramCache
	functions  *FunctionRegistry
	host       Host
	forcedMode Mode
	logger     Logger
	clock      clock.Clock
}

// WithProbe sets the capability probe.
func WithProbe(probe Probe) EnvironmentOption {
	return func(cfg *environmentConfig) {
		cfg.probe = probe
	}
}

// WithFeatures replaces the probed declarations.
func WithFeatures(features ...Feature) EnvironmentOption {
	return func(cfg *environmentConfig) {
		cfg.features = append([]Feature(nil), features...)
	}
}

// WithCapabilityRule replaces DefaultCapabilityRule.
func WithCapabilityRule(rule string) EnvironmentOption {
	return func(cfg *environmentConfig) {
		cfg.rule = strings.TrimSpace(rule)
	}
}

// WithRuleEngine selects the built-in evaluator by name: "expr" (default),
// "cel" or "js". The js engine needs the js_eval build tag.
func WithRuleEngine(engine string) EnvironmentOption {
	return func(cfg *environmentConfig) {
		cfg.engine = strings.ToLower(strings.TrimSpace(engine))
	}
}

// WithEvaluator uses evaluator for the capability rule instead of a built-in
// engine.
func WithEvaluator(evaluator Evaluator) EnvironmentOption {
	return func(cfg *environmentConfig) {
		cfg.evaluator = evaluator
	}
}

// WithProgramCache shares compiled rule programs.
func WithProgramCache(cache ProgramCache) EnvironmentOption {
	return func(cfg *environmentConfig) {
		cfg.cache = cache
	}
}

// WithFunctionRegistry makes registry functions callable from the rule.
func WithFunctionRegistry(registry *FunctionRegistry) EnvironmentOption {
	return func(cfg *environmentConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for the rule.
func WithCustomFunction(name string, fn Function) EnvironmentOption {
	return func(cfg *environmentConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}

// WithHost sets the host used for computed positioning.
func WithHost(host Host) EnvironmentOption {
	return func(cfg *environmentConfig) {
		cfg.host = host
	}
}

// WithMode forces the positioning mode and skips the probe.
func WithMode(mode Mode) EnvironmentOption {
	return func(cfg *environmentConfig) {
		cfg.forcedMode = mode
	}
}

// WithLogger sets the logger shared by the environment and its tooltips.
func WithLogger(logger Logger) EnvironmentOption {
	return func(cfg *environmentConfig) {
		cfg.logger = logger
	}
}

// WithClock sets the clock used for delays and timestamps.
func WithClock(c clock.Clock) EnvironmentOption {
	return func(cfg *environmentConfig) {
		cfg.clock = c
	}
}

func applyEnvironmentOptions(opts []EnvironmentOption) environmentConfig {
	cfg := environmentConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = noopLogger{}
	}
	if cfg.clock == nil {
		cfg.clock = clock.Real()
	}
	if cfg.host == nil {
		cfg.host = nullHost{}
	}
	return cfg
}

// ruleEvaluator returns the configured evaluator or builds the selected
// engine with a supports function bound to the probe.
func (cfg environmentConfig) ruleEvaluator() (Evaluator, error) {
	if cfg.evaluator != nil {
		return cfg.evaluator, nil
	}
	registry := cfg.functions.Clone()
	if registry == nil {
		registry = NewFunctionRegistry()
	}
	if !registry.Has("supports") {
		_ = registry.Register("supports", SupportsFunction(cfg.probe))
	}

	var evaluator Evaluator
	switch cfg.engine {
	case "", "expr":
		evaluator = NewExprEvaluator(ExprWithProgramCache(cfg.cache), ExprWithFunctionRegistry(registry))
	case "cel":
		evaluator = NewCELEvaluator(CELWithProgramCache(cfg.cache), CELWithFunctionRegistry(registry))
	case "js":
		evaluator = NewJSEvaluator(JSWithProgramCache(cfg.cache), JSWithFunctionRegistry(registry), JSWithProbe(cfg.probe))
	}
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	return evaluator, nil
}

// NewEnvironment builds an Environment. The mode is decided lazily, on the
// first call to Mode or the first tooltip construction.
func NewEnvironment(opts ...EnvironmentOption) *Environment {
	return &Environment{
		cfg:  applyEnvironmentOptions(opts),
		loop: loop.New(),
	}
}

// Mode returns the positioning mode, running the capability probe on first
// use.
func (e *Environment) Mode() Mode {
	e.once.Do(func() {
		mode, err := decideMode(e.cfg)
		if err != nil {
			e.cfg.logger.Log(LogEvent{
				Level:   LevelWarn,
				Message: "capability probe failed, using computed positioning",
				Err:     err,
			})
		}
		e.mode = mode
		e.decided.Store(true)
		e.cfg.logger.Log(LogEvent{
			Level:   LevelInfo,
			Message: "positioning mode selected",
			Fields:  map[string]any{"mode": string(mode)},
		})
	})
	return e.mode
}

// Decided reports whether the mode has been decided.
func (e *Environment) Decided() bool {
	return e.decided.Load()
}

// Clock returns the environment clock.
func (e *Environment) Clock() clock.Clock {
	return e.cfg.clock
}

// Host returns the environment host.
func (e *Environment) Host() Host {
	return e.cfg.host
}

// Strategy returns the positioning strategy for the decided mode.
func (e *Environment) Strategy() Strategy {
	return NewStrategy(e.Mode(), e.cfg.host)
}

var defaultEnvironment struct {
	mu   sync.Mutex
	opts []EnvironmentOption
	env  *Environment
}

// ConfigureDefault adds options to the process-wide default Environment. It
// fails with ErrEnvironmentSealed once DefaultEnvironment has been called.
func ConfigureDefault(opts ...EnvironmentOption) error {
	defaultEnvironment.mu.Lock()
	defer defaultEnvironment.mu.Unlock()
	if defaultEnvironment.env != nil {
		return ErrEnvironmentSealed
	}
	defaultEnvironment.opts = append(defaultEnvironment.opts, opts...)
	return nil
}

// DefaultEnvironment returns the process-wide Environment, creating it on
// first use.
func DefaultEnvironment() *Environment {
	defaultEnvironment.mu.Lock()
	defer defaultEnvironment.mu.Unlock()
	if defaultEnvironment.env == nil {
		defaultEnvironment.env = NewEnvironment(defaultEnvironment.opts...)
	}
	return defaultEnvironment.env
}

type nullHost struct{}

func (nullHost) Viewport() Rect { return Rect{} }

func (nullHost) AutoUpdate(Element, Element, func()) func() { return nil }
