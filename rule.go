package tooltip

import (
	"time"
)

// RuleContext carries the inputs of a rule evaluation. Snapshot keys become
// top level variables in every engine.
type RuleContext struct {
	Snapshot map[string]any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx RuleContext) withDefaults() RuleContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Snapshot == nil {
		ctx.Snapshot = map[string]any{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	if ctx.Now == nil {
		return time.Now()
	}
	return *ctx.Now
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// evaluateRule runs expr through evaluator and logs the attempt. Failures
// come back as an EvaluationError carrying the probe results.
func evaluateRule(evaluator Evaluator, ctx RuleContext, expr string, logger Logger) (any, error) {
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	if logger == nil {
		logger = noopLogger{}
	}
	ctx = ctx.withDefaults()
	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, err := evaluator.Evaluate(ctx, expr)
	err = annotateRuleError(err, engine, expr, ctx.Snapshot)
	event := LogEvent{
		Level:    LevelDebug,
		Message:  "rule evaluated",
		Duration: time.Since(start),
		Fields:   map[string]any{"engine": engine, "rule": expr},
		Err:      err,
	}
	if err != nil {
		event.Level = LevelWarn
		event.Message = "rule evaluation failed"
	}
	logger.Log(event)
	if err != nil {
		return nil, err
	}
	return value, nil
}

func evaluatorEngineName(e Evaluator) string {
	switch e.(type) {
	case nil:
		return "unknown"
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	default:
		if isJSEvaluator(e) {
			return "js"
		}
		return "custom"
	}
}
