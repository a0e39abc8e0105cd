package dom

import (
	"testing"
	"time"

	tooltip "github.com/goliatone/go-tooltip"
	"github.com/goliatone/go-tooltip/pkg/clock"
	"github.com/goliatone/go-tooltip/pkg/floating"
	"github.com/goliatone/go-tooltip/pkg/headless"
)

func TestListenerSpecsCoverBothElements(t *testing.T) {
	want := map[string]tooltip.EventKind{
		"pointerenter": tooltip.PointerEnter,
		"pointerleave": tooltip.PointerLeave,
		"focusin":      tooltip.FocusIn,
		"focusout":     tooltip.FocusOut,
	}
	for _, target := range []tooltip.Target{tooltip.TargetAnchor, tooltip.TargetOverlay} {
		seen := map[string]tooltip.EventKind{}
		for _, spec := range listenerSpecs {
			if spec.target == target {
				seen[spec.event] = spec.kind
			}
		}
		if len(seen) != len(want) {
			t.Fatalf("expected %d listeners on %s, got %v", len(want), target, seen)
		}
		for event, kind := range want {
			if seen[event] != kind {
				t.Fatalf("expected %s on %s to map to %s, got %s", event, target, kind, seen[event])
			}
		}
	}
}

// fire delivers a DOM event name the way Bind's listeners do.
func fire(t *testing.T, tip *tooltip.Tooltip, target tooltip.Target, event string) {
	t.Helper()
	for _, spec := range listenerSpecs {
		if spec.target == target && spec.event == event {
			tip.HandleEvent(spec.target, spec.kind)
			return
		}
	}
	t.Fatalf("no listener for %s on %s", event, target)
}

func TestTabbingIntoOverlayKeepsItOpen(t *testing.T) {
	clk := clock.NewManual(time.Time{})
	env := tooltip.NewEnvironment(
		tooltip.WithMode(tooltip.ModeComputed),
		tooltip.WithClock(clk),
		tooltip.WithHost(headless.NewHost(floating.Rect{Width: 1000, Height: 800})),
	)
	tip, err := env.NewTooltip()
	if err != nil {
		t.Fatalf("new tooltip: %v", err)
	}
	tip.Mount(
		headless.NewElement("anchor", floating.Rect{X: 100, Y: 300, Width: 50, Height: 20}),
		headless.NewOverlay("overlay", 200, 40),
	)

	fire(t, tip, tooltip.TargetAnchor, "focusin")
	if !tip.Active() {
		t.Fatalf("expected focus to show the overlay")
	}
	fire(t, tip, tooltip.TargetAnchor, "focusout")
	fire(t, tip, tooltip.TargetOverlay, "focusin")
	clk.Advance(100 * time.Millisecond)
	if !tip.Active() || tip.State() != tooltip.StateVisible {
		t.Fatalf("expected overlay kept open under focus, state=%s", tip.State())
	}

	fire(t, tip, tooltip.TargetOverlay, "focusout")
	clk.Advance(50 * time.Millisecond)
	if tip.Active() {
		t.Fatalf("expected overlay hidden once focus leaves it")
	}
}
