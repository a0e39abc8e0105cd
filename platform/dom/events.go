package dom

import tooltip "github.com/goliatone/go-tooltip"

// listenerSpec maps a DOM event on the anchor or the overlay to a tooltip
// input.
type listenerSpec struct {
	target tooltip.Target
	event  string
	kind   tooltip.EventKind
}

// listenerSpecs are the events Bind forwards. Focus is followed on the
// overlay too, so tabbing from the anchor into it keeps it open.
var listenerSpecs = []listenerSpec{
	{tooltip.TargetAnchor, "pointerenter", tooltip.PointerEnter},
	{tooltip.TargetAnchor, "pointerleave", tooltip.PointerLeave},
	{tooltip.TargetAnchor, "focusin", tooltip.FocusIn},
	{tooltip.TargetAnchor, "focusout", tooltip.FocusOut},
	{tooltip.TargetOverlay, "pointerenter", tooltip.PointerEnter},
	{tooltip.TargetOverlay, "pointerleave", tooltip.PointerLeave},
	{tooltip.TargetOverlay, "focusin", tooltip.FocusIn},
	{tooltip.TargetOverlay, "focusout", tooltip.FocusOut},
}
