//go:build js && wasm

// Package dom binds tooltips to browser elements through syscall/js.
package dom

import (
	"context"
	"syscall/js"

	tooltip "github.com/goliatone/go-tooltip"
	"github.com/goliatone/go-tooltip/pkg/activity"
	"github.com/goliatone/go-tooltip/pkg/floating"
	"github.com/goliatone/go-tooltip/pkg/surface"
)

const (
	EventShow = "tooltip-show"
	EventHide = "tooltip-hide"
)

// Element wraps a DOM element.
type Element struct {
	Value js.Value
}

// BoundingRect returns getBoundingClientRect in viewport coordinates.
func (e Element) BoundingRect() floating.Rect {
	if !e.Value.Truthy() {
		return floating.Rect{}
	}
	r := e.Value.Call("getBoundingClientRect")
	return floating.Rect{
		X:      r.Get("left").Float(),
		Y:      r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}

// SetStyle sets an inline style property, custom properties included.
func (e Element) SetStyle(property, value string) {
	if !e.Value.Truthy() {
		return
	}
	e.Value.Get("style").Call("setProperty", property, value)
}

// SetClasses toggles the tooltip class names so exactly classes are present.
// Classes the tooltip does not manage are left alone.
func (e Element) SetClasses(classes []string) {
	if !e.Value.Truthy() {
		return
	}
	list := e.Value.Get("classList")
	present := make(map[string]bool, len(classes))
	for _, class := range classes {
		present[class] = true
	}
	for _, class := range managedClasses {
		list.Call("toggle", class, present[class])
	}
}

var managedClasses = []string{
	tooltip.ClassAnchor,
	tooltip.ClassAnchorUnderline,
	tooltip.ClassOverlay,
	tooltip.ClassOverlayActive,
	tooltip.ClassOverlaySimple,
}

// Overlay is an Element opened with the popover API.
type Overlay struct {
	Element
}

// ShowPopover opens the overlay when the popover API is available.
func (o Overlay) ShowPopover() {
	o.call("showPopover")
}

// HidePopover closes the overlay when the popover API is available.
func (o Overlay) HidePopover() {
	o.call("hidePopover")
}

func (o Overlay) call(method string) {
	if !o.Value.Truthy() || o.Value.Get(method).Type() != js.TypeFunction {
		return
	}
	o.Value.Call(method)
}

// Probe answers capability queries with CSS.supports.
type Probe struct{}

// Supports implements tooltip.Probe.
func (Probe) Supports(property, value string) bool {
	css := js.Global().Get("CSS")
	if !css.Truthy() || css.Get("supports").Type() != js.TypeFunction {
		return false
	}
	return css.Call("supports", property, value).Bool()
}

// Host exposes the window viewport and follows scroll and resize.
type Host struct{}

// Viewport returns the layout viewport.
func (Host) Viewport() floating.Rect {
	window := js.Global()
	return floating.Rect{
		Width:  window.Get("innerWidth").Float(),
		Height: window.Get("innerHeight").Float(),
	}
}

// AutoUpdate calls update now and on every scroll, window resize and element
// resize until the returned function is called.
func (Host) AutoUpdate(anchor, overlay surface.Element, update func()) func() {
	window := js.Global()
	handler := js.FuncOf(func(js.Value, []js.Value) any {
		update()
		return nil
	})
	options := map[string]any{"capture": true, "passive": true}
	window.Call("addEventListener", "scroll", handler, options)
	window.Call("addEventListener", "resize", handler, options)

	var observer js.Value
	if ctor := window.Get("ResizeObserver"); ctor.Truthy() {
		observer = ctor.New(handler)
		for _, el := range []surface.Element{anchor, overlay} {
			if v, ok := valueOf(el); ok {
				observer.Call("observe", v)
			}
		}
	}

	update()
	return func() {
		window.Call("removeEventListener", "scroll", handler, options)
		window.Call("removeEventListener", "resize", handler, options)
		if observer.Truthy() {
			observer.Call("disconnect")
		}
		handler.Release()
	}
}

func valueOf(el surface.Element) (js.Value, bool) {
	switch typed := el.(type) {
	case Element:
		return typed.Value, typed.Value.Truthy()
	case Overlay:
		return typed.Value, typed.Value.Truthy()
	default:
		return js.Value{}, false
	}
}

// NewEnvironment returns an environment probing CSS.supports and positioning
// against the window. opts are applied after the browser defaults.
func NewEnvironment(opts ...tooltip.EnvironmentOption) *tooltip.Environment {
	base := []tooltip.EnvironmentOption{tooltip.WithProbe(Probe{}), tooltip.WithHost(Host{})}
	return tooltip.NewEnvironment(append(base, opts...)...)
}

// EventHook dispatches tooltip-show and tooltip-hide CustomEvents on Target.
// Class names are synced by the tooltip itself when visibility changes.
type EventHook struct {
	Target js.Value
}

// Notify implements activity.ActivityHook.
func (h *EventHook) Notify(_ context.Context, event activity.Event) error {
	var name string
	switch event.Verb {
	case activity.VerbShown:
		name = EventShow
	case activity.VerbHidden:
		name = EventHide
	default:
		return nil
	}
	if !h.Target.Truthy() {
		return nil
	}
	custom := js.Global().Get("CustomEvent").New(name, map[string]any{
		"bubbles":  true,
		"composed": true,
	})
	h.Target.Call("dispatchEvent", custom)
	return nil
}

// Attributes returns the element attributes by name.
func Attributes(el js.Value) map[string]string {
	out := map[string]string{}
	if !el.Truthy() {
		return out
	}
	attrs := el.Get("attributes")
	for i := 0; i < attrs.Length(); i++ {
		attr := attrs.Index(i)
		out[attr.Get("name").String()] = attr.Get("value").String()
	}
	return out
}

// Binding connects a tooltip to its DOM elements.
type Binding struct {
	tip       *tooltip.Tooltip
	listeners []listener
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// Bind mounts tip on anchor and overlay and forwards pointer and focus
// events from both. Mounting applies the configured classes, and the tooltip
// keeps them in step with visibility and SetConfig. Release undoes it.
func Bind(tip *tooltip.Tooltip, anchor, overlay js.Value) *Binding {
	b := &Binding{tip: tip}
	if overlay.Truthy() && overlay.Get("popover").Type() != js.TypeString {
		overlay.Call("setAttribute", "popover", "manual")
	}
	tip.Mount(Element{Value: anchor}, Overlay{Element: Element{Value: overlay}})

	for _, spec := range listenerSpecs {
		target := anchor
		if spec.target == tooltip.TargetOverlay {
			target = overlay
		}
		b.listen(target, spec.event, spec.target, spec.kind)
	}
	return b
}

func (b *Binding) listen(target js.Value, event string, on tooltip.Target, kind tooltip.EventKind) {
	if !target.Truthy() {
		return
	}
	fn := js.FuncOf(func(js.Value, []js.Value) any {
		b.tip.HandleEvent(on, kind)
		return nil
	})
	target.Call("addEventListener", event, fn)
	b.listeners = append(b.listeners, listener{target: target, event: event, fn: fn})
}

// Release removes the listeners and disconnects the tooltip.
func (b *Binding) Release() {
	for _, l := range b.listeners {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	b.listeners = nil
	b.tip.Disconnect()
}
