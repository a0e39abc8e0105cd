package tooltip

import (
	"fmt"
)

// Probe answers whether the platform supports a CSS property/value pair.
type Probe interface {
	Supports(property, value string) bool
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func(property, value string) bool

// Supports implements Probe.
func (f ProbeFunc) Supports(property, value string) bool {
	if f == nil {
		return false
	}
	return f(property, value)
}

// Feature is one probed declaration, bound to Variable in the capability
// rule.
type Feature struct {
	Variable string
	Property string
	Value    string
}

// DefaultFeatures are the declarations native anchoring depends on.
var DefaultFeatures = []Feature{
	{Variable: "anchorName", Property: "anchor-name", Value: "--tooltip-probe"},
	{Variable: "positionTryFallbacks", Property: "position-try-fallbacks", Value: "flip-block"},
	{Variable: "positionArea", Property: "position-area", Value: "top"},
}

// DefaultCapabilityRule selects native positioning only when every default
// feature is supported.
const DefaultCapabilityRule = "anchorName && positionTryFallbacks && positionArea"

// probeSnapshot evaluates every feature against probe.
func probeSnapshot(probe Probe, features []Feature) map[string]any {
	snapshot := make(map[string]any, len(features))
	for _, feature := range features {
		snapshot[feature.Variable] = probe.Supports(feature.Property, feature.Value)
	}
	return snapshot
}

// decideMode runs the capability rule. Any failure selects computed mode and
// is returned so the caller can log it.
func decideMode(cfg environmentConfig) (Mode, error) {
	if cfg.forcedMode != "" {
		return cfg.forcedMode, nil
	}
	if cfg.probe == nil {
		return ModeComputed, nil
	}
	evaluator, err := cfg.ruleEvaluator()
	if err != nil {
		return ModeComputed, err
	}
	features := cfg.features
	if len(features) == 0 {
		features = DefaultFeatures
	}
	rule := cfg.rule
	if rule == "" {
		rule = DefaultCapabilityRule
	}
	now := cfg.clock.Now()
	snapshot := probeSnapshot(cfg.probe, features)
	value, err := evaluateRule(evaluator, RuleContext{Snapshot: snapshot, Now: &now}, rule, cfg.logger)
	if err != nil {
		return ModeComputed, err
	}
	supported, ok := value.(bool)
	if !ok {
		return ModeComputed, annotateRuleError(&EvaluationError{
			Stage: StageResult,
			Err:   fmt.Errorf("rule returned %T, want bool", value),
		}, evaluatorEngineName(evaluator), rule, snapshot)
	}
	if supported {
		return ModeNative, nil
	}
	return ModeComputed, nil
}
