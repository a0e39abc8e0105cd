package tooltip

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprEvaluatorOption configures the expr capability engine.
type ExprEvaluatorOption func(*exprEvaluator)

// ExprWithProgramCache reuses compiled rules across evaluations.
func ExprWithProgramCache(cache ProgramCache) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		e.cache = cache
	}
}

// ExprWithFunctionRegistry exposes the registry functions to rules by name.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

// exprEvaluator runs capability rules with expr-lang/expr. Probe results are
// the rule's variables and the rule must yield a bool: a rule of any other
// type fails to compile, and a default feature that was not probed reads as
// unsupported.
type exprEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewExprEvaluator returns the default capability engine.
func NewExprEvaluator(opts ...ExprEvaluatorOption) Evaluator {
	e := &exprEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// exprFeatureEnv declares the default features as bools so rules over them
// are type checked when compiled. Custom features stay untyped.
var exprFeatureEnv = func() map[string]any {
	env := make(map[string]any, len(DefaultFeatures))
	for _, feature := range DefaultFeatures {
		env[feature.Variable] = false
	}
	return env
}()

// supportsSignature types supports(property, value) for the checker.
var supportsSignature = new(func(property, value string) bool)

func (e *exprEvaluator) Evaluate(ctx RuleContext, rule string) (any, error) {
	program, err := e.compile(rule)
	if err != nil {
		return nil, err
	}
	return e.run(program, rule, ctx)
}

func (e *exprEvaluator) Compile(rule string) (CompiledRule, error) {
	program, err := e.compile(rule)
	if err != nil {
		return nil, err
	}
	return &exprCompiledRule{evaluator: e, program: program, rule: rule}, nil
}

func (e *exprEvaluator) compile(rule string) (*exprvm.Program, error) {
	if rule == "" {
		return nil, ruleError("expr", rule, StageCompile, errEmptyRule)
	}
	if e.cache != nil {
		if cached, ok := e.cache.Get(rule); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	options := []exprlang.Option{
		exprlang.Env(exprFeatureEnv),
		exprlang.AllowUndefinedVariables(),
		exprlang.AsBool(),
	}
	options = append(options, e.functions()...)
	program, err := exprlang.Compile(rule, options...)
	if err != nil {
		return nil, ruleError("expr", rule, StageCompile, err)
	}
	if e.cache != nil {
		e.cache.Set(rule, program)
	}
	return program, nil
}

// functions declares the registry functions as expr builtins. supports is
// given its signature so its arguments are checked at compile time.
func (e *exprEvaluator) functions() []exprlang.Option {
	if e.registry == nil {
		return nil
	}
	names := e.registry.Names()
	options := make([]exprlang.Option, 0, len(names))
	for _, name := range names {
		fn := name
		call := func(arguments ...any) (any, error) {
			return e.registry.Call(fn, arguments...)
		}
		if fn == "supports" {
			options = append(options, exprlang.Function(fn, call, supportsSignature))
			continue
		}
		options = append(options, exprlang.Function(fn, call))
	}
	return options
}

func (e *exprEvaluator) run(program *exprvm.Program, rule string, ctx RuleContext) (any, error) {
	ctx = ctx.withDefaults()
	env := make(map[string]any, len(exprFeatureEnv)+len(ctx.Snapshot))
	for name, unsupported := range exprFeatureEnv {
		env[name] = unsupported
	}
	for name, value := range ctx.Snapshot {
		env[name] = value
	}
	result, err := exprlang.Run(program, env)
	if err != nil {
		return nil, ruleError("expr", rule, StageRun, err)
	}
	return result, nil
}

type exprCompiledRule struct {
	evaluator *exprEvaluator
	program   *exprvm.Program
	rule      string
}

func (r *exprCompiledRule) Evaluate(ctx RuleContext) (any, error) {
	if r.evaluator == nil || r.program == nil {
		return nil, ruleError("expr", r.rule, StageRun, fmt.Errorf("compiled rule has no program"))
	}
	return r.evaluator.run(r.program, r.rule, ctx)
}
