package tooltip

type jsEvaluatorConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
	globals  map[string]any
}

// JSEvaluatorOption configures the JS evaluator.
type JSEvaluatorOption func(*jsEvaluatorConfig)

// JSWithProgramCache applies a ProgramCache to the JS evaluator.
func JSWithProgramCache(cache ProgramCache) JSEvaluatorOption {
	return func(cfg *jsEvaluatorConfig) {
		cfg.cache = cache
	}
}

// JSWithFunctionRegistry applies a FunctionRegistry to the JS evaluator.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSEvaluatorOption {
	return func(cfg *jsEvaluatorConfig) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

// JSWithProbe exposes probe as a CSS global so rules can be written as
// CSS.supports("anchor-name", "--a").
func JSWithProbe(probe Probe) JSEvaluatorOption {
	return func(cfg *jsEvaluatorConfig) {
		if probe == nil {
			return
		}
		if cfg.globals == nil {
			cfg.globals = map[string]any{}
		}
		cfg.globals["CSS"] = map[string]any{
			"supports": func(property, value string) bool {
				return probe.Supports(property, value)
			},
		}
	}
}

func applyJSEvaluatorOptions(opts []JSEvaluatorOption) jsEvaluatorConfig {
	cfg := jsEvaluatorConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
