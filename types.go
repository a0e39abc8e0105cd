// Package tooltip implements a floating overlay engine: it tracks the
// activation sources of an anchor, debounces show and hide, positions the
// overlay either natively or through computed placement and reports lifecycle
// notifications.
package tooltip

import (
	"github.com/goliatone/go-tooltip/pkg/floating"
	"github.com/goliatone/go-tooltip/pkg/surface"
)

// ActivationMethod identifies an independent source asking for the overlay.
type ActivationMethod string

const (
	// MethodPointer is a pointer hovering the anchor.
	MethodPointer ActivationMethod = "pointer"
	// MethodFocus is keyboard focus on the anchor or inside the overlay.
	MethodFocus ActivationMethod = "focus"
	// MethodTooltip is a pointer hovering the overlay itself.
	MethodTooltip ActivationMethod = "tooltip"
)

// Valid reports whether m is a known activation method.
func (m ActivationMethod) Valid() bool {
	switch m {
	case MethodPointer, MethodFocus, MethodTooltip:
		return true
	default:
		return false
	}
}

// Mode is the positioning strategy selected for an Environment.
type Mode string

const (
	// ModeNative relies on the platform anchoring the overlay itself.
	ModeNative Mode = "native"
	// ModeComputed computes coordinates and keeps them up to date.
	ModeComputed Mode = "computed"
)

// State is the scheduling state of a tooltip.
type State uint32

const (
	StateHidden State = iota
	StatePendingShow
	StateVisible
	StatePendingHide
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StatePendingShow:
		return "pending-show"
	case StateVisible:
		return "visible"
	case StatePendingHide:
		return "pending-hide"
	default:
		return "unknown"
	}
}

// Target is the element an inbound event was observed on.
type Target uint8

const (
	TargetAnchor Target = iota
	TargetOverlay
)

func (t Target) String() string {
	if t == TargetOverlay {
		return "overlay"
	}
	return "anchor"
}

// EventKind is an inbound interaction event.
type EventKind uint8

const (
	PointerEnter EventKind = iota
	PointerLeave
	FocusIn
	FocusOut
)

func (k EventKind) String() string {
	switch k {
	case PointerEnter:
		return "pointer-enter"
	case PointerLeave:
		return "pointer-leave"
	case FocusIn:
		return "focus-in"
	case FocusOut:
		return "focus-out"
	default:
		return "unknown"
	}
}

// Rect and Point are shared with the placement package.
type (
	Rect  = floating.Rect
	Point = floating.Point
)

// Element, Overlay, Classed and Host are the platform surface.
type (
	Element = surface.Element
	Overlay = surface.Overlay
	Classed = surface.Classed
	Host    = surface.Host
)

// Subscription is a cancellable continuous reposition registration.
type Subscription interface {
	Cancel()
}

type subscriptionFunc func()

func (f subscriptionFunc) Cancel() {
	if f != nil {
		f()
	}
}
