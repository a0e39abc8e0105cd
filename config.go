package tooltip

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-tooltip/layering"
	"github.com/goliatone/go-tooltip/pkg/floating"
)

const (
	DefaultShowDelay          = 200 * time.Millisecond
	DefaultHideDelay          = 200 * time.Millisecond
	DefaultTransitionDuration = 300 * time.Millisecond
	DefaultPlacement          = floating.TopStart
	DefaultOffset             = 8.0

	// focusHideDelay replaces HideDelay when focus leaves, so a focus move
	// into the overlay lands before it disappears.
	focusHideDelay = 50 * time.Millisecond
	// hiddenNotificationMargin is added to TransitionDuration before the
	// hidden notification fires.
	hiddenNotificationMargin = 100 * time.Millisecond
	// viewportPadding keeps computed overlays away from the viewport edge.
	viewportPadding = 8.0
)

// Config is the resolved configuration of one tooltip.
type Config struct {
	ShowDelay          time.Duration
	HideDelay          time.Duration
	TransitionDuration time.Duration
	Placement          floating.Placement
	Offset             float64
	Simple             bool
	Underline          bool
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		ShowDelay:          DefaultShowDelay,
		HideDelay:          DefaultHideDelay,
		TransitionDuration: DefaultTransitionDuration,
		Placement:          DefaultPlacement,
		Offset:             DefaultOffset,
	}
}

// Validate checks the placement. Delays may be zero or negative, which means
// immediate.
func (c Config) Validate() error {
	if !c.Placement.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPlacement, c.Placement)
	}
	return nil
}

// hiddenNotificationDelay is how long after a hide the hidden notification
// fires.
func (c Config) hiddenNotificationDelay() time.Duration {
	d := c.TransitionDuration
	if d < 0 {
		d = 0
	}
	return d + hiddenNotificationMargin
}

// Settings is a partially populated Config. Nil fields fall through to weaker
// layers. Durations are milliseconds.
type Settings struct {
	ShowDelay          *float64 `json:"show_delay,omitempty" yaml:"show_delay,omitempty" koanf:"show_delay"`
	HideDelay          *float64 `json:"hide_delay,omitempty" yaml:"hide_delay,omitempty" koanf:"hide_delay"`
	TransitionDuration *float64 `json:"transition_duration,omitempty" yaml:"transition_duration,omitempty" koanf:"transition_duration"`
	Placement          *string  `json:"placement,omitempty" yaml:"placement,omitempty" koanf:"placement"`
	Offset             *float64 `json:"offset,omitempty" yaml:"offset,omitempty" koanf:"offset"`
	Simple             *bool    `json:"simple,omitempty" yaml:"simple,omitempty" koanf:"simple"`
	Underline          *bool    `json:"underline,omitempty" yaml:"underline,omitempty" koanf:"underline"`
}

// SettingsFromConfig returns fully populated Settings for cfg.
func SettingsFromConfig(cfg Config) Settings {
	placement := string(cfg.Placement)
	return Settings{
		ShowDelay:          ptr(millis(cfg.ShowDelay)),
		HideDelay:          ptr(millis(cfg.HideDelay)),
		TransitionDuration: ptr(millis(cfg.TransitionDuration)),
		Placement:          &placement,
		Offset:             ptr(cfg.Offset),
		Simple:             ptr(cfg.Simple),
		Underline:          ptr(cfg.Underline),
	}
}

// Apply overlays the populated fields of s onto base.
func (s Settings) Apply(base Config) (Config, error) {
	out := base
	if s.ShowDelay != nil {
		out.ShowDelay = duration(*s.ShowDelay)
	}
	if s.HideDelay != nil {
		out.HideDelay = duration(*s.HideDelay)
	}
	if s.TransitionDuration != nil {
		out.TransitionDuration = duration(*s.TransitionDuration)
	}
	if s.Placement != nil {
		placement, err := floating.ParsePlacement(*s.Placement)
		if err != nil {
			return base, err
		}
		out.Placement = placement
	}
	if s.Offset != nil {
		out.Offset = *s.Offset
	}
	if s.Simple != nil {
		out.Simple = *s.Simple
	}
	if s.Underline != nil {
		out.Underline = *s.Underline
	}
	return out, nil
}

// Resolve applies s on top of DefaultConfig.
func (s Settings) Resolve() (Config, error) {
	return s.Apply(DefaultConfig())
}

// LayerWith merges layers ordered strongest to weakest with s as the
// fallback.
func (s Settings) LayerWith(layers ...Settings) Settings {
	combined := append(append([]Settings(nil), layers...), s)
	return layering.MergeLayers(combined...)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func duration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func ptr[T any](v T) *T {
	return &v
}

// Classes is the presentation state of a tooltip: class names for the anchor
// and overlay plus custom properties for the overlay.
type Classes struct {
	Anchor       []string
	Overlay      []string
	OverlayStyle map[string]string
}

const (
	ClassAnchor          = "tooltip__parent"
	ClassAnchorUnderline = "tooltip__parent_underline"
	ClassOverlay         = "tooltip"
	ClassOverlayActive   = "tooltip_active"
	ClassOverlaySimple   = "tooltip_simple"

	// PropertyTransitionDuration carries TransitionDuration to the overlay
	// stylesheet.
	PropertyTransitionDuration = "--tooltip-transition-duration"
	// PropertyAnchorName links anchor and overlay in native mode.
	PropertyAnchorName = "--tooltip-anchor-name"
)

func buildClasses(cfg Config, active bool) Classes {
	anchor := []string{ClassAnchor}
	if cfg.Underline {
		anchor = append(anchor, ClassAnchorUnderline)
	}
	overlay := []string{ClassOverlay}
	if active {
		overlay = append(overlay, ClassOverlayActive)
	}
	if cfg.Simple {
		overlay = append(overlay, ClassOverlaySimple)
	}
	return Classes{
		Anchor:  anchor,
		Overlay: overlay,
		OverlayStyle: map[string]string{
			PropertyTransitionDuration: transitionValue(cfg.TransitionDuration),
		},
	}
}

func transitionValue(d time.Duration) string {
	return strconv.FormatFloat(millis(d), 'f', -1, 64) + "ms"
}
