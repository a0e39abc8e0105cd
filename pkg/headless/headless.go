// Package headless provides in-memory elements and a host so tooltips can be
// driven without a browser, in tests and in the simulator.
package headless

import (
	"sort"
	"sync"

	"github.com/goliatone/go-tooltip/pkg/floating"
	"github.com/goliatone/go-tooltip/pkg/surface"
)

// Element is an in-memory rendered node.
type Element struct {
	mu      sync.Mutex
	name    string
	rect    floating.Rect
	styles  map[string]string
	classes []string
}

// NewElement returns an element occupying rect.
func NewElement(name string, rect floating.Rect) *Element {
	return &Element{name: name, rect: rect, styles: map[string]string{}}
}

// Name returns the element label.
func (e *Element) Name() string { return e.name }

// BoundingRect returns the current geometry.
func (e *Element) BoundingRect() floating.Rect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rect
}

// SetRect moves or resizes the element.
func (e *Element) SetRect(rect floating.Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rect = rect
}

// SetStyle records an inline style property.
func (e *Element) SetStyle(property, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.styles[property] = value
}

// Style returns an inline style property.
func (e *Element) Style(property string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	value, ok := e.styles[property]
	return value, ok
}

// Styles returns a copy of every inline style property.
func (e *Element) Styles() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.styles))
	for key, value := range e.styles {
		out[key] = value
	}
	return out
}

// SetClasses replaces the rendered class names.
func (e *Element) SetClasses(classes []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.classes = append([]string(nil), classes...)
}

// Classes returns the rendered class names.
func (e *Element) Classes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.classes...)
}

// Overlay is an Element that can be opened as a popover.
type Overlay struct {
	*Element
	mu    sync.Mutex
	open  bool
	shows int
	hides int
}

// NewOverlay returns a closed overlay of the given size.
func NewOverlay(name string, width, height float64) *Overlay {
	return &Overlay{Element: NewElement(name, floating.Rect{Width: width, Height: height})}
}

// ShowPopover opens the overlay.
func (o *Overlay) ShowPopover() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.open = true
	o.shows++
}

// HidePopover closes the overlay.
func (o *Overlay) HidePopover() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.open = false
	o.hides++
}

// Open reports whether the overlay is showing.
func (o *Overlay) Open() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.open
}

// Counts returns how many times the overlay was shown and hidden.
func (o *Overlay) Counts() (shows, hides int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.shows, o.hides
}

// Host is an in-memory viewport tracking auto-update subscriptions.
type Host struct {
	mu       sync.Mutex
	viewport floating.Rect
	next     int
	subs     map[int]func()
	started  int
}

// NewHost returns a host with the given viewport.
func NewHost(viewport floating.Rect) *Host {
	return &Host{viewport: viewport, subs: map[int]func(){}}
}

// Viewport returns the viewport rect.
func (h *Host) Viewport() floating.Rect {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewport
}

// SetViewport resizes the viewport and notifies subscribers.
func (h *Host) SetViewport(viewport floating.Rect) {
	h.mu.Lock()
	h.viewport = viewport
	h.mu.Unlock()
	h.Trigger()
}

// AutoUpdate registers update and calls it once, as a geometry observer
// does on subscription.
func (h *Host) AutoUpdate(_, _ surface.Element, update func()) func() {
	h.mu.Lock()
	h.next++
	id := h.next
	h.subs[id] = update
	h.started++
	h.mu.Unlock()
	update()
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Active returns the number of live subscriptions.
func (h *Host) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Started returns the number of subscriptions ever created.
func (h *Host) Started() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.started
}

// Trigger calls every live subscription, as a scroll or resize would.
func (h *Host) Trigger() {
	h.mu.Lock()
	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	updates := make([]func(), 0, len(ids))
	for _, id := range ids {
		updates = append(updates, h.subs[id])
	}
	h.mu.Unlock()
	for _, update := range updates {
		update()
	}
}

// Probe answers capability queries from a fixed table keyed by property.
type Probe struct {
	Supported map[string]bool
	mu        sync.Mutex
	calls     int
}

// NewProbe returns a probe supporting the given properties.
func NewProbe(properties ...string) *Probe {
	supported := make(map[string]bool, len(properties))
	for _, property := range properties {
		supported[property] = true
	}
	return &Probe{Supported: supported}
}

// Supports implements the capability probe.
func (p *Probe) Supports(property, _ string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.Supported[property]
}

// Calls returns how many queries were answered.
func (p *Probe) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
