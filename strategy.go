package tooltip

import (
	"fmt"

	"github.com/goliatone/go-tooltip/pkg/floating"
)

// Strategy positions an overlay relative to its anchor.
type Strategy interface {
	Mode() Mode
	// Bind associates anchor and overlay once they are mounted.
	Bind(anchor, overlay Element, token string)
	// ComputePosition reports the overlay position through done. ok is false
	// when there is nothing to apply.
	ComputePosition(anchor, overlay Element, cfg Config, done func(p Point, ok bool))
	// Attach keeps the overlay positioned until the subscription is
	// cancelled. It returns nil when no continuous update is needed.
	Attach(anchor, overlay Element, update func()) Subscription
}

// NewStrategy returns the strategy for mode. Unknown modes are computed.
func NewStrategy(mode Mode, host Host) Strategy {
	if mode == ModeNative {
		return nativeStrategy{}
	}
	if host == nil {
		host = nullHost{}
	}
	return computedStrategy{host: host}
}

type nativeStrategy struct{}

func (nativeStrategy) Mode() Mode { return ModeNative }

func (nativeStrategy) Bind(anchor, overlay Element, token string) {
	if anchor == nil || overlay == nil || token == "" {
		return
	}
	anchor.SetStyle(PropertyAnchorName, token)
	overlay.SetStyle(PropertyAnchorName, token)
}

func (nativeStrategy) ComputePosition(_, _ Element, _ Config, done func(Point, bool)) {
	if done != nil {
		done(Point{}, false)
	}
}

func (nativeStrategy) Attach(Element, Element, func()) Subscription {
	return nil
}

type computedStrategy struct {
	host Host
}

func (computedStrategy) Mode() Mode { return ModeComputed }

func (computedStrategy) Bind(Element, Element, string) {}

func (s computedStrategy) ComputePosition(anchor, overlay Element, cfg Config, done func(Point, bool)) {
	if done == nil {
		return
	}
	if anchor == nil || overlay == nil {
		done(Point{}, false)
		return
	}
	result := Place(anchor.BoundingRect(), overlay.BoundingRect(), s.host.Viewport(), cfg)
	done(result.Point(), true)
}

func (s computedStrategy) Attach(anchor, overlay Element, update func()) Subscription {
	if anchor == nil || overlay == nil || update == nil {
		return nil
	}
	return subscriptionFunc(s.host.AutoUpdate(anchor, overlay, update))
}

// Place computes the overlay position for cfg. Only the overlay size is
// read. Shift and flip need a viewport and are skipped when it is empty.
func Place(anchor, overlay, viewport Rect, cfg Config) floating.Result {
	middleware := []floating.Middleware{floating.Offset(cfg.Offset)}
	if !viewport.Empty() {
		middleware = append(middleware,
			floating.Shift(viewportPadding),
			floating.Flip(floating.FlipOptions{
				Padding:                   viewportPadding,
				FallbackAxisSideDirection: floating.DirectionStart,
			}),
		)
	}
	return floating.Compute(anchor, overlay, viewport, cfg.Placement, middleware...)
}

func applyPosition(overlay Element, p Point) {
	if overlay == nil {
		return
	}
	overlay.SetStyle("left", fmt.Sprintf("%.3fpx", p.X))
	overlay.SetStyle("top", fmt.Sprintf("%.3fpx", p.Y))
}
