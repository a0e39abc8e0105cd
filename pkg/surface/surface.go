// Package surface declares what the tooltip engine needs from the rendering
// platform. Implementations live in pkg/headless and platform/dom.
package surface

import "github.com/goliatone/go-tooltip/pkg/floating"

// Element is the minimal surface the engine needs from a rendered node.
type Element interface {
	BoundingRect() floating.Rect
	SetStyle(property, value string)
}

// Overlay is the floating element. It is shown and hidden at the platform
// level as a manual popover.
type Overlay interface {
	Element
	ShowPopover()
	HidePopover()
}

// Classed is implemented by elements that render the engine's class names.
// SetClasses receives the full managed set; names the engine manages but
// leaves out are removed.
type Classed interface {
	SetClasses(classes []string)
}

// Host provides the viewport and the continuous update mechanism for
// computed positioning. AutoUpdate must call update whenever anchor or
// overlay geometry may have changed, until the returned cancel is called.
type Host interface {
	Viewport() floating.Rect
	AutoUpdate(anchor, overlay Element, update func()) (cancel func())
}
