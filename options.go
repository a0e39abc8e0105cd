package tooltip

import (
	"strings"

	"github.com/goliatone/go-tooltip/pkg/activity"
)

// Option configures a Tooltip.
type Option func(*tooltipConfig)

type tooltipConfig struct {
	config   Config
	settings []Settings
	id       string
	actorID  string
	channel  string
	hooks    activity.Hooks
	strategy Strategy
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(tc *tooltipConfig) {
		tc.config = cfg
	}
}

// WithSettings overlays settings on the configuration. Later calls win.
func WithSettings(settings Settings) Option {
	return func(tc *tooltipConfig) {
		tc.settings = append(tc.settings, settings)
	}
}

// WithID sets the tooltip id used as the event object id. A random UUID is
// used otherwise.
func WithID(id string) Option {
	return func(tc *tooltipConfig) {
		tc.id = strings.TrimSpace(id)
	}
}

// WithActor attributes emitted events to actorID.
func WithActor(actorID string) Option {
	return func(tc *tooltipConfig) {
		tc.actorID = strings.TrimSpace(actorID)
	}
}

// WithChannel sets the event channel. Defaults to "tooltip".
func WithChannel(channel string) Option {
	return func(tc *tooltipConfig) {
		tc.channel = channel
	}
}

// WithActivityHooks attaches lifecycle hooks. Nil entries are dropped.
func WithActivityHooks(hooks ...activity.ActivityHook) Option {
	normalized := cloneActivityHooks(hooks)
	return func(tc *tooltipConfig) {
		tc.hooks = append(tc.hooks, normalized...)
	}
}

// WithStrategy positions the tooltip with s instead of the strategy for the
// Environment mode. The tooltip mode is s.Mode().
func WithStrategy(s Strategy) Option {
	return func(tc *tooltipConfig) {
		tc.strategy = s
	}
}

func applyOptions(opts []Option) (tooltipConfig, error) {
	tc := tooltipConfig{config: DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(&tc)
		}
	}
	cfg := tc.config
	for _, settings := range tc.settings {
		next, err := settings.Apply(cfg)
		if err != nil {
			return tc, err
		}
		cfg = next
	}
	if err := cfg.Validate(); err != nil {
		return tc, err
	}
	tc.config = cfg
	return tc, nil
}

func cloneActivityHooks(hooks []activity.ActivityHook) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make(activity.Hooks, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
