package tooltip

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RuleStage names the step at which a capability rule failed.
type RuleStage string

const (
	StageCompile RuleStage = "compile"
	StageRun     RuleStage = "run"
	StageResult  RuleStage = "result"
)

var errEmptyRule = errors.New("rule must not be empty")

// EvaluationError reports a capability rule that could not decide the
// positioning mode. Features holds the probe results the rule ran against,
// when they were known.
type EvaluationError struct {
	Engine   string
	Rule     string
	Stage    RuleStage
	Features map[string]bool
	Err      error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("tooltip: capability rule ")
	if e.Rule == "" {
		b.WriteString("<empty>")
	} else {
		b.WriteString(strconv.Quote(e.Rule))
	}
	if e.Engine != "" {
		fmt.Fprintf(&b, " (%s)", e.Engine)
	}
	b.WriteString(" failed")
	if e.Stage != "" {
		fmt.Fprintf(&b, " at %s", e.Stage)
	}
	if len(e.Features) > 0 {
		fmt.Fprintf(&b, " with %s", formatFeatures(e.Features))
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Supported reports the probe result for variable, and whether it was probed.
func (e *EvaluationError) Supported(variable string) (supported, probed bool) {
	if e == nil {
		return false, false
	}
	supported, probed = e.Features[variable]
	return supported, probed
}

func formatFeatures(features map[string]bool) string {
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+strconv.FormatBool(features[name]))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ruleError reports a failure inside an engine. Errors that already are an
// EvaluationError keep their stage.
func ruleError(engine, rule string, stage RuleStage, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return annotateRuleError(evalErr, engine, rule, nil)
	}
	return &EvaluationError{Engine: engine, Rule: rule, Stage: stage, Err: err}
}

// annotateRuleError fills in what the engine could not know: the probe
// results and, for errors raised elsewhere, the engine and rule. Fields that
// are already set are kept.
func annotateRuleError(err error, engine, rule string, snapshot map[string]any) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		evalErr = &EvaluationError{Stage: StageRun, Err: err}
	}
	if evalErr.Engine == "" {
		evalErr.Engine = engine
	}
	if evalErr.Rule == "" {
		evalErr.Rule = rule
	}
	if evalErr.Features == nil {
		evalErr.Features = featureResults(snapshot)
	}
	return evalErr
}

func featureResults(snapshot map[string]any) map[string]bool {
	out := make(map[string]bool, len(snapshot))
	for name, value := range snapshot {
		if supported, ok := value.(bool); ok {
			out[name] = supported
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
