package tooltip

import (
	"errors"

	"github.com/goliatone/go-tooltip/pkg/floating"
)

var (
	// ErrInvalidPlacement reports a placement outside the supported twelve.
	ErrInvalidPlacement = floating.ErrInvalidPlacement
	// ErrEnvironmentSealed is returned when the default environment is
	// reconfigured after it has been handed out.
	ErrEnvironmentSealed = errors.New("tooltip: default environment already in use")
	// ErrNoEvaluator indicates no rule evaluator could be built.
	ErrNoEvaluator = errors.New("tooltip: evaluator not configured")
	// ErrInvalidAttribute reports an attribute value that cannot be decoded.
	ErrInvalidAttribute = errors.New("tooltip: invalid attribute")
)
