package tooltip_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tooltip "github.com/goliatone/go-tooltip"
	"github.com/goliatone/go-tooltip/pkg/activity"
	"github.com/goliatone/go-tooltip/pkg/clock"
	"github.com/goliatone/go-tooltip/pkg/floating"
	"github.com/goliatone/go-tooltip/pkg/headless"
)

type fixture struct {
	clock   *clock.Manual
	start   time.Time
	env     *tooltip.Environment
	host    *headless.Host
	anchor  *headless.Element
	overlay *headless.Overlay
	capture *activity.CaptureHook
	tip     *tooltip.Tooltip
}

func newFixture(t *testing.T, mode tooltip.Mode, opts ...tooltip.Option) *fixture {
	t.Helper()
	f := &fixture{
		clock:   clock.NewManual(time.Time{}),
		host:    headless.NewHost(floating.Rect{Width: 1000, Height: 800}),
		anchor:  headless.NewElement("anchor", floating.Rect{X: 100, Y: 300, Width: 50, Height: 20}),
		overlay: headless.NewOverlay("overlay", 200, 40),
		capture: &activity.CaptureHook{},
	}
	f.start = f.clock.Now()
	f.env = tooltip.NewEnvironment(
		tooltip.WithMode(mode),
		tooltip.WithClock(f.clock),
		tooltip.WithHost(f.host),
	)
	opts = append([]tooltip.Option{tooltip.WithActivityHooks(f.capture), tooltip.WithID("tip-1")}, opts...)
	tip, err := f.env.NewTooltip(opts...)
	if err != nil {
		t.Fatalf("new tooltip: %v", err)
	}
	tip.Mount(f.anchor, f.overlay)
	f.tip = tip
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock.Advance(d)
}

func (f *fixture) verbs() []string {
	return f.capture.Verbs()
}

func settings(mutate func(*tooltip.Settings)) tooltip.Option {
	var s tooltip.Settings
	mutate(&s)
	return tooltip.WithSettings(s)
}

func ms(v float64) *float64 { return &v }

func assertVerbs(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected verbs %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected verbs %v, got %v", want, got)
		}
	}
}

func TestPointerHoverShowsAfterShowDelay(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)

	f.tip.Activate(tooltip.MethodPointer)
	if f.tip.State() != tooltip.StatePendingShow {
		t.Fatalf("expected pending-show, got %s", f.tip.State())
	}
	f.advance(199 * time.Millisecond)
	if f.tip.Active() || f.overlay.Open() {
		t.Fatalf("overlay shown before show delay elapsed")
	}
	f.advance(time.Millisecond)
	if !f.tip.Active() || !f.overlay.Open() {
		t.Fatalf("expected overlay visible at 200ms")
	}
	if f.tip.State() != tooltip.StateVisible {
		t.Fatalf("expected visible, got %s", f.tip.State())
	}
	if left, _ := f.overlay.Style("left"); left != "100.000px" {
		t.Fatalf("expected left 100.000px, got %q", left)
	}
	if top, _ := f.overlay.Style("top"); top != "252.000px" {
		t.Fatalf("expected top 252.000px, got %q", top)
	}

	events := f.capture.Snapshot()
	assertVerbs(t, f.verbs(), activity.VerbShown)
	shown := events[0]
	if shown.ObjectID != "tip-1" || shown.ObjectType != activity.ObjectTooltip || shown.Channel != "tooltip" {
		t.Fatalf("unexpected shown event %+v", shown)
	}
	if !shown.OccurredAt.Equal(f.start.Add(200 * time.Millisecond)) {
		t.Fatalf("expected shown at +200ms, got %v", shown.OccurredAt.Sub(f.start))
	}
	if shown.Metadata["mode"] != "computed" || shown.Metadata["placement"] != "top-start" {
		t.Fatalf("unexpected metadata %+v", shown.Metadata)
	}
}

func TestFocusShowsImmediately(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)

	f.tip.Activate(tooltip.MethodFocus)
	if !f.tip.Active() || !f.overlay.Open() {
		t.Fatalf("expected focus to show without delay")
	}
	assertVerbs(t, f.verbs(), activity.VerbShown)
	if f.clock.Pending() != 0 {
		t.Fatalf("expected no timers, got %d", f.clock.Pending())
	}
}

func TestNonPositiveShowDelayShowsImmediately(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed, settings(func(s *tooltip.Settings) { s.ShowDelay = ms(0) }))

	f.tip.Activate(tooltip.MethodPointer)
	if !f.tip.Active() {
		t.Fatalf("expected immediate show with zero show delay")
	}
}

func TestEnterAndLeaveBeforeShowDelayNeverShows(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)

	f.tip.HandleEvent(tooltip.TargetAnchor, tooltip.PointerEnter)
	f.advance(100 * time.Millisecond)
	f.tip.HandleEvent(tooltip.TargetAnchor, tooltip.PointerLeave)

	if f.tip.State() != tooltip.StateHidden {
		t.Fatalf("expected hidden, got %s", f.tip.State())
	}
	if f.clock.Pending() != 0 {
		t.Fatalf("expected show timer cancelled, %d pending", f.clock.Pending())
	}
	f.advance(time.Second)
	shows, hides := f.overlay.Counts()
	if shows != 0 || hides != 0 {
		t.Fatalf("expected no popover calls, got shows=%d hides=%d", shows, hides)
	}
	assertVerbs(t, f.verbs())
}

func TestReactivationRestartsShowDelay(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)

	f.tip.Activate(tooltip.MethodPointer)
	f.advance(150 * time.Millisecond)
	f.tip.Activate(tooltip.MethodPointer)
	f.advance(199 * time.Millisecond)
	if f.tip.Active() {
		t.Fatalf("expected no show at 349ms")
	}
	f.advance(time.Millisecond)
	if !f.tip.Active() {
		t.Fatalf("expected show at 350ms")
	}
	f.advance(time.Second)

	events := f.capture.Snapshot()
	assertVerbs(t, f.verbs(), activity.VerbShown)
	if got := events[0].OccurredAt.Sub(f.start); got != 350*time.Millisecond {
		t.Fatalf("expected show at 350ms, got %v", got)
	}
}

func TestPartialDeactivationKeepsOverlayVisible(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)

	f.tip.Activate(tooltip.MethodPointer)
	f.tip.Activate(tooltip.MethodFocus)
	if !f.tip.Active() {
		t.Fatalf("expected focus to show immediately")
	}

	f.tip.Deactivate(tooltip.MethodPointer)
	f.advance(time.Second)
	if !f.tip.Active() || f.tip.State() != tooltip.StateVisible {
		t.Fatalf("expected overlay to stay visible while focus is held, state %s", f.tip.State())
	}
	if got := f.tip.Methods(); len(got) != 1 || got[0] != tooltip.MethodFocus {
		t.Fatalf("expected only focus asserted, got %v", got)
	}

	f.tip.Deactivate(tooltip.MethodFocus)
	if f.tip.State() != tooltip.StatePendingHide {
		t.Fatalf("expected pending-hide, got %s", f.tip.State())
	}
	f.advance(49 * time.Millisecond)
	if !f.tip.Active() {
		t.Fatalf("expected overlay visible before focus hide delay")
	}
	f.advance(time.Millisecond)
	if f.tip.Active() || f.overlay.Open() {
		t.Fatalf("expected overlay hidden 50ms after focus loss")
	}
}

func TestFocusLossIgnoresConfiguredHideDelay(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed, settings(func(s *tooltip.Settings) { s.HideDelay = ms(500) }))

	f.tip.HandleEvent(tooltip.TargetAnchor, tooltip.FocusIn)
	f.tip.HandleEvent(tooltip.TargetAnchor, tooltip.FocusOut)
	f.advance(50 * time.Millisecond)
	if f.tip.Active() {
		t.Fatalf("expected hide after 50ms regardless of hide delay")
	}
}

func TestPointerLeaveUsesHideDelay(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)

	f.tip.Activate(tooltip.MethodPointer)
	f.advance(200 * time.Millisecond)
	f.tip.Deactivate(tooltip.MethodPointer)
	f.advance(199 * time.Millisecond)
	if !f.tip.Active() {
		t.Fatalf("expected visible before hide delay")
	}
	f.advance(time.Millisecond)
	if f.tip.Active() || f.tip.State() != tooltip.StateHidden {
		t.Fatalf("expected hidden after hide delay, state %s", f.tip.State())
	}
}

func TestHiddenNotificationWaitsForTransition(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed, settings(func(s *tooltip.Settings) { s.HideDelay = ms(0) }))

	f.tip.Activate(tooltip.MethodFocus)
	f.tip.Deactivate(tooltip.MethodFocus)
	f.advance(50 * time.Millisecond)
	if f.tip.Active() {
		t.Fatalf("expected hidden")
	}
	hiddenAt := f.clock.Now()

	f.advance(399 * time.Millisecond)
	assertVerbs(t, f.verbs(), activity.VerbShown)
	f.advance(time.Millisecond)
	assertVerbs(t, f.verbs(), activity.VerbShown, activity.VerbHidden)

	events := f.capture.Snapshot()
	if got := events[1].OccurredAt.Sub(hiddenAt); got != 400*time.Millisecond {
		t.Fatalf("expected hidden notification 400ms after hide, got %v", got)
	}
}

func TestNewHideCancelsPendingHiddenNotification(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed, settings(func(s *tooltip.Settings) {
		s.ShowDelay = ms(0)
		s.HideDelay = ms(0)
	}))

	f.tip.Activate(tooltip.MethodPointer)
	f.tip.Deactivate(tooltip.MethodPointer)
	f.advance(200 * time.Millisecond)
	f.tip.Activate(tooltip.MethodPointer)
	f.tip.Deactivate(tooltip.MethodPointer)

	f.advance(200 * time.Millisecond)
	assertVerbs(t, f.verbs(), activity.VerbShown, activity.VerbShown)
	f.advance(200 * time.Millisecond)
	assertVerbs(t, f.verbs(), activity.VerbShown, activity.VerbShown, activity.VerbHidden)
	f.advance(time.Second)
	assertVerbs(t, f.verbs(), activity.VerbShown, activity.VerbShown, activity.VerbHidden)
}

func TestHoveringOverlayKeepsItOpen(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)

	f.tip.HandleEvent(tooltip.TargetAnchor, tooltip.PointerEnter)
	f.advance(200 * time.Millisecond)
	f.tip.HandleEvent(tooltip.TargetAnchor, tooltip.PointerLeave)
	f.advance(100 * time.Millisecond)
	f.tip.HandleEvent(tooltip.TargetOverlay, tooltip.PointerEnter)
	if f.tip.State() != tooltip.StateVisible {
		t.Fatalf("expected hide cancelled, state %s", f.tip.State())
	}

	f.advance(time.Second)
	if !f.tip.Active() {
		t.Fatalf("expected overlay to stay open while hovered")
	}
	f.tip.HandleEvent(tooltip.TargetOverlay, tooltip.PointerLeave)
	f.advance(200 * time.Millisecond)
	if f.tip.Active() {
		t.Fatalf("expected overlay hidden after leaving it")
	}
	assertVerbs(t, f.verbs(), activity.VerbShown)
}

func TestComputedSubscriptionExistsOnlyWhileVisible(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed, settings(func(s *tooltip.Settings) { s.HideDelay = ms(0) }))

	if f.host.Active() != 0 {
		t.Fatalf("expected no subscription before show")
	}
	f.tip.Activate(tooltip.MethodPointer)
	f.advance(200 * time.Millisecond)
	if f.host.Active() != 1 {
		t.Fatalf("expected one subscription while visible, got %d", f.host.Active())
	}
	f.tip.Deactivate(tooltip.MethodPointer)
	if f.host.Active() != 0 {
		t.Fatalf("expected subscription released on hide, got %d", f.host.Active())
	}

	f.tip.Activate(tooltip.MethodFocus)
	if f.host.Active() != 1 || f.host.Started() != 2 {
		t.Fatalf("expected a fresh subscription, active=%d started=%d", f.host.Active(), f.host.Started())
	}
}

func TestRepositionFollowsAnchor(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)

	f.tip.Activate(tooltip.MethodFocus)
	f.anchor.SetRect(floating.Rect{X: 300, Y: 300, Width: 50, Height: 20})
	f.host.Trigger()
	if left, _ := f.overlay.Style("left"); left != "300.000px" {
		t.Fatalf("expected overlay to follow anchor, left=%q", left)
	}

	f.anchor.SetRect(floating.Rect{X: 100, Y: 10, Width: 50, Height: 20})
	f.host.Trigger()
	if top, _ := f.overlay.Style("top"); top != "38.000px" {
		t.Fatalf("expected overlay flipped below anchor, top=%q", top)
	}
}

func TestDisconnectCancelsEverythingSilently(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)

	f.tip.Activate(tooltip.MethodPointer)
	f.advance(200 * time.Millisecond)
	f.tip.Deactivate(tooltip.MethodPointer)
	f.tip.Disconnect()

	if f.host.Active() != 0 {
		t.Fatalf("expected no subscription after disconnect")
	}
	if f.clock.Pending() != 0 {
		t.Fatalf("expected no pending timers after disconnect, got %d", f.clock.Pending())
	}
	if f.tip.State() != tooltip.StateHidden || f.tip.Active() {
		t.Fatalf("expected hidden inactive tooltip, state %s", f.tip.State())
	}
	f.advance(time.Second)
	assertVerbs(t, f.verbs(), activity.VerbShown)

	f.tip.Activate(tooltip.MethodFocus)
	if f.tip.Active() {
		t.Fatalf("disconnected tooltip must ignore activation")
	}

	f.tip.Mount(f.anchor, f.overlay)
	f.tip.Activate(tooltip.MethodFocus)
	if !f.tip.Active() {
		t.Fatalf("expected remounted tooltip to show")
	}
}

func TestDisconnectDuringPendingShow(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)

	f.tip.Activate(tooltip.MethodPointer)
	f.tip.Disconnect()
	f.advance(time.Second)
	if f.tip.Active() || len(f.verbs()) != 0 {
		t.Fatalf("expected nothing after disconnect, verbs %v", f.verbs())
	}
}

func TestMissingElementsAreNoOps(t *testing.T) {
	env := tooltip.NewEnvironment(tooltip.WithMode(tooltip.ModeComputed), tooltip.WithClock(clock.NewManual(time.Time{})))
	capture := &activity.CaptureHook{}
	tip, err := env.NewTooltip(tooltip.WithActivityHooks(capture))
	if err != nil {
		t.Fatalf("new tooltip: %v", err)
	}

	tip.Activate(tooltip.MethodFocus)
	if !tip.Active() {
		t.Fatalf("expected state to progress without elements")
	}
	assertVerbs(t, capture.Verbs(), activity.VerbShown)
}

func TestNativeModeBindsAnchorToken(t *testing.T) {
	f := newFixture(t, tooltip.ModeNative)

	token := f.tip.AnchorToken()
	if !strings.HasPrefix(token, "--tooltip-") {
		t.Fatalf("expected native anchor token, got %q", token)
	}
	if v, _ := f.anchor.Style(tooltip.PropertyAnchorName); v != token {
		t.Fatalf("expected anchor bound to %q, got %q", token, v)
	}
	if v, _ := f.overlay.Style(tooltip.PropertyAnchorName); v != token {
		t.Fatalf("expected overlay bound to %q, got %q", token, v)
	}

	f.tip.Activate(tooltip.MethodFocus)
	if !f.overlay.Open() {
		t.Fatalf("expected overlay shown")
	}
	if _, ok := f.overlay.Style("left"); ok {
		t.Fatalf("native mode must not write coordinates")
	}
	if f.host.Active() != 0 {
		t.Fatalf("native mode must not subscribe to updates")
	}

	other, err := f.env.NewTooltip()
	if err != nil {
		t.Fatalf("new tooltip: %v", err)
	}
	if other.AnchorToken() == token {
		t.Fatalf("anchor tokens must be unique")
	}
}

func TestComputedModeHasNoAnchorToken(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)
	if f.tip.AnchorToken() != "" {
		t.Fatalf("expected no token in computed mode")
	}
	if _, ok := f.anchor.Style(tooltip.PropertyAnchorName); ok {
		t.Fatalf("computed mode must not bind anchor name")
	}
}

func TestHookMayCallBackIntoTooltip(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)
	var tip *tooltip.Tooltip
	hook := activity.HookFunc(func(_ context.Context, event activity.Event) error {
		if event.Verb == activity.VerbShown {
			tip.Deactivate(tooltip.MethodFocus)
		}
		return nil
	})
	var err error
	tip, err = f.env.NewTooltip(tooltip.WithActivityHooks(hook))
	if err != nil {
		t.Fatalf("new tooltip: %v", err)
	}
	tip.Mount(f.anchor, f.overlay)

	tip.Activate(tooltip.MethodFocus)
	if tip.State() != tooltip.StatePendingHide {
		t.Fatalf("expected reentrant deactivate to schedule hide, state %s", tip.State())
	}
	f.advance(50 * time.Millisecond)
	if tip.Active() {
		t.Fatalf("expected hidden")
	}
}

func TestHookErrorsAreLogged(t *testing.T) {
	var logged []tooltip.LogEvent
	clk := clock.NewManual(time.Time{})
	env := tooltip.NewEnvironment(
		tooltip.WithMode(tooltip.ModeComputed),
		tooltip.WithClock(clk),
		tooltip.WithLogger(tooltip.LoggerFunc(func(e tooltip.LogEvent) { logged = append(logged, e) })),
	)
	boom := errors.New("boom")
	tip, err := env.NewTooltip(tooltip.WithActivityHooks(&activity.CaptureHook{Err: boom}))
	if err != nil {
		t.Fatalf("new tooltip: %v", err)
	}
	tip.Activate(tooltip.MethodFocus)

	var found, transitions bool
	for _, event := range logged {
		if event.Level == tooltip.LevelWarn && errors.Is(event.Err, boom) {
			found = true
		}
		if event.Message == "transition" && event.TooltipID == tip.ID() {
			transitions = true
		}
	}
	if !found {
		t.Fatalf("expected hook failure to be logged, got %+v", logged)
	}
	if !transitions {
		t.Fatalf("expected transitions to be logged")
	}
}

func TestSetConfigAppliesToNextSchedule(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)

	cfg := f.tip.Config()
	cfg.ShowDelay = 0
	cfg.TransitionDuration = 500 * time.Millisecond
	if err := f.tip.SetConfig(cfg); err != nil {
		t.Fatalf("set config: %v", err)
	}
	if v, _ := f.overlay.Style(tooltip.PropertyTransitionDuration); v != "500ms" {
		t.Fatalf("expected transition property updated, got %q", v)
	}
	f.tip.Activate(tooltip.MethodPointer)
	if !f.tip.Active() {
		t.Fatalf("expected new show delay to apply")
	}

	cfg.Placement = "middle"
	if err := f.tip.SetConfig(cfg); !errors.Is(err, tooltip.ErrInvalidPlacement) {
		t.Fatalf("expected invalid placement error, got %v", err)
	}
}

func TestClassesReflectConfigAndVisibility(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed, settings(func(s *tooltip.Settings) {
		simple, underline := true, true
		s.Simple = &simple
		s.Underline = &underline
	}))

	classes := f.tip.Classes()
	if strings.Join(classes.Anchor, " ") != "tooltip__parent tooltip__parent_underline" {
		t.Fatalf("unexpected anchor classes %v", classes.Anchor)
	}
	if strings.Join(classes.Overlay, " ") != "tooltip tooltip_simple" {
		t.Fatalf("unexpected overlay classes %v", classes.Overlay)
	}
	if classes.OverlayStyle[tooltip.PropertyTransitionDuration] != "300ms" {
		t.Fatalf("unexpected overlay style %v", classes.OverlayStyle)
	}

	f.tip.Activate(tooltip.MethodFocus)
	if strings.Join(f.tip.Classes().Overlay, " ") != "tooltip tooltip_active tooltip_simple" {
		t.Fatalf("expected active class, got %v", f.tip.Classes().Overlay)
	}
}

func TestNewTooltipRejectsInvalidPlacement(t *testing.T) {
	env := tooltip.NewEnvironment(tooltip.WithMode(tooltip.ModeComputed))
	bad := "sideways"
	_, err := env.NewTooltip(tooltip.WithSettings(tooltip.Settings{Placement: &bad}))
	if !errors.Is(err, tooltip.ErrInvalidPlacement) {
		t.Fatalf("expected invalid placement, got %v", err)
	}
}

func TestDefaultEnvironmentIsSealedOnFirstUse(t *testing.T) {
	if err := tooltip.ConfigureDefault(tooltip.WithMode(tooltip.ModeComputed)); err != nil {
		t.Fatalf("configure default: %v", err)
	}
	env := tooltip.DefaultEnvironment()
	if env != tooltip.DefaultEnvironment() {
		t.Fatalf("expected a single default environment")
	}
	if err := tooltip.ConfigureDefault(tooltip.WithMode(tooltip.ModeNative)); !errors.Is(err, tooltip.ErrEnvironmentSealed) {
		t.Fatalf("expected sealed error, got %v", err)
	}
	tip, err := tooltip.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if tip.Mode() != tooltip.ModeComputed {
		t.Fatalf("expected computed mode from default environment, got %s", tip.Mode())
	}
}

// deferredStrategy holds position requests until complete is called, the
// way an asynchronous platform measurement would.
type deferredStrategy struct {
	tooltip.Strategy
	pending []func()
}

func (s *deferredStrategy) ComputePosition(anchor, overlay tooltip.Element, cfg tooltip.Config, done func(tooltip.Point, bool)) {
	s.pending = append(s.pending, func() {
		s.Strategy.ComputePosition(anchor, overlay, cfg, done)
	})
}

func (s *deferredStrategy) complete() {
	pending := s.pending
	s.pending = nil
	for _, fn := range pending {
		fn()
	}
}

type deferredFixture struct {
	clock    *clock.Manual
	host     *headless.Host
	anchor   *headless.Element
	overlay  *headless.Overlay
	capture  *activity.CaptureHook
	strategy *deferredStrategy
	messages []string
	tip      *tooltip.Tooltip
}

func newDeferredFixture(t *testing.T) *deferredFixture {
	t.Helper()
	f := &deferredFixture{
		clock:   clock.NewManual(time.Time{}),
		host:    headless.NewHost(floating.Rect{Width: 1000, Height: 800}),
		anchor:  headless.NewElement("anchor", floating.Rect{X: 100, Y: 300, Width: 50, Height: 20}),
		overlay: headless.NewOverlay("overlay", 200, 40),
		capture: &activity.CaptureHook{},
	}
	f.strategy = &deferredStrategy{Strategy: tooltip.NewStrategy(tooltip.ModeComputed, f.host)}
	env := tooltip.NewEnvironment(
		tooltip.WithMode(tooltip.ModeComputed),
		tooltip.WithClock(f.clock),
		tooltip.WithHost(f.host),
		tooltip.WithLogger(tooltip.LoggerFunc(func(e tooltip.LogEvent) {
			f.messages = append(f.messages, e.Message)
		})),
	)
	tip, err := env.NewTooltip(
		tooltip.WithActivityHooks(f.capture),
		tooltip.WithStrategy(f.strategy),
		settings(func(s *tooltip.Settings) {
			s.ShowDelay = ms(0)
			s.HideDelay = ms(0)
		}),
	)
	if err != nil {
		t.Fatalf("new tooltip: %v", err)
	}
	tip.Mount(f.anchor, f.overlay)
	f.tip = tip
	return f
}

func (f *deferredFixture) logged(message string) bool {
	for _, m := range f.messages {
		if m == message {
			return true
		}
	}
	return false
}

func TestPositionCompletingAfterHideIsDropped(t *testing.T) {
	f := newDeferredFixture(t)

	f.tip.Activate(tooltip.MethodPointer)
	if f.tip.Active() || len(f.strategy.pending) != 1 {
		t.Fatalf("expected show to wait for the position, active=%t pending=%d", f.tip.Active(), len(f.strategy.pending))
	}
	f.tip.Deactivate(tooltip.MethodPointer)
	f.strategy.complete()

	if f.tip.Active() || f.overlay.Open() {
		t.Fatalf("stale position must not show the overlay")
	}
	if _, ok := f.overlay.Style("left"); ok {
		t.Fatalf("stale position must not be applied")
	}
	if f.host.Active() != 0 {
		t.Fatalf("stale position must not subscribe, active=%d", f.host.Active())
	}
	if !f.logged("stale position dropped") {
		t.Fatalf("expected the dropped result to be logged, got %v", f.messages)
	}
	f.clock.Advance(time.Second)
	for _, verb := range f.capture.Verbs() {
		if verb == activity.VerbShown {
			t.Fatalf("stale position must not emit shown, got %v", f.capture.Verbs())
		}
	}
}

func TestPositionCompletingAfterDisconnectIsDropped(t *testing.T) {
	f := newDeferredFixture(t)

	f.tip.Activate(tooltip.MethodFocus)
	f.tip.Disconnect()
	f.strategy.complete()
	f.clock.Advance(time.Second)

	if f.tip.Active() || f.overlay.Open() {
		t.Fatalf("disconnected tooltip must not show")
	}
	if _, ok := f.overlay.Style("left"); ok {
		t.Fatalf("position must not be applied after disconnect")
	}
	if len(f.capture.Verbs()) != 0 {
		t.Fatalf("expected no events, got %v", f.capture.Verbs())
	}
}

func TestRepositionCompletingAfterHideIsDropped(t *testing.T) {
	f := newDeferredFixture(t)

	f.tip.Activate(tooltip.MethodPointer)
	f.strategy.complete()
	if !f.tip.Active() {
		t.Fatalf("expected overlay shown once positioned")
	}
	// The subscription asks for a position as soon as it is attached.
	f.strategy.complete()
	if left, _ := f.overlay.Style("left"); left != "100.000px" {
		t.Fatalf("expected initial position, left=%q", left)
	}

	f.anchor.SetRect(floating.Rect{X: 300, Y: 300, Width: 50, Height: 20})
	f.host.Trigger()
	if len(f.strategy.pending) != 1 {
		t.Fatalf("expected a pending reposition, got %d", len(f.strategy.pending))
	}
	f.tip.Deactivate(tooltip.MethodPointer)
	f.strategy.complete()

	if left, _ := f.overlay.Style("left"); left != "100.000px" {
		t.Fatalf("reposition after hide must be dropped, left=%q", left)
	}
}

func TestOverlayClassesFollowVisibility(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed, settings(func(s *tooltip.Settings) {
		s.HideDelay = ms(0)
	}))

	if got := strings.Join(f.overlay.Classes(), " "); got != "tooltip" {
		t.Fatalf("expected mounted overlay classes, got %q", got)
	}
	if got := strings.Join(f.anchor.Classes(), " "); got != "tooltip__parent" {
		t.Fatalf("expected mounted anchor classes, got %q", got)
	}

	f.tip.Activate(tooltip.MethodPointer)
	f.advance(200 * time.Millisecond)
	if got := strings.Join(f.overlay.Classes(), " "); got != "tooltip tooltip_active" {
		t.Fatalf("expected active class on show, got %q", got)
	}

	f.tip.Deactivate(tooltip.MethodPointer)
	if got := strings.Join(f.overlay.Classes(), " "); got != "tooltip" {
		t.Fatalf("expected active class removed at hide, got %q", got)
	}
	if len(f.verbs()) != 1 {
		t.Fatalf("hidden notification should still be pending, got %v", f.verbs())
	}

	cfg := f.tip.Config()
	cfg.Simple = true
	cfg.Underline = true
	if err := f.tip.SetConfig(cfg); err != nil {
		t.Fatalf("set config: %v", err)
	}
	if got := strings.Join(f.overlay.Classes(), " "); got != "tooltip tooltip_simple" {
		t.Fatalf("expected classes updated by SetConfig, got %q", got)
	}
	if got := strings.Join(f.anchor.Classes(), " "); got != "tooltip__parent tooltip__parent_underline" {
		t.Fatalf("expected anchor classes updated by SetConfig, got %q", got)
	}
}

func TestRemountClosesPreviousOverlay(t *testing.T) {
	f := newFixture(t, tooltip.ModeComputed)

	f.tip.Activate(tooltip.MethodFocus)
	if !f.overlay.Open() {
		t.Fatalf("expected overlay shown")
	}

	next := headless.NewOverlay("next", 200, 40)
	f.tip.Mount(f.anchor, next)

	if f.overlay.Open() {
		t.Fatalf("expected previous overlay closed on remount")
	}
	if got := strings.Join(f.overlay.Classes(), " "); got != "tooltip" {
		t.Fatalf("expected previous overlay inactive, got %q", got)
	}
	if next.Open() || f.tip.Active() {
		t.Fatalf("new overlay must start hidden")
	}
	assertVerbs(t, f.verbs(), activity.VerbShown)
}

func TestDisconnectTakesEffectWhileAHookIsRunning(t *testing.T) {
	clk := clock.NewManual(time.Time{})
	env := tooltip.NewEnvironment(
		tooltip.WithMode(tooltip.ModeComputed),
		tooltip.WithClock(clk),
		tooltip.WithHost(headless.NewHost(floating.Rect{Width: 1000, Height: 800})),
	)
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	hook := activity.HookFunc(func(_ context.Context, event activity.Event) error {
		if event.Verb == activity.VerbShown {
			once.Do(func() { close(entered) })
			<-release
		}
		return nil
	})
	tip, err := env.NewTooltip(tooltip.WithActivityHooks(hook))
	if err != nil {
		t.Fatalf("new tooltip: %v", err)
	}
	tip.Mount(
		headless.NewElement("anchor", floating.Rect{X: 100, Y: 300, Width: 50, Height: 20}),
		headless.NewOverlay("overlay", 200, 40),
	)
	tip.Activate(tooltip.MethodPointer)

	fired := make(chan struct{})
	go func() {
		defer close(fired)
		clk.Advance(200 * time.Millisecond)
	}()
	<-entered

	tip.Disconnect()
	if tip.State() != tooltip.StateHidden || tip.Active() || len(tip.Methods()) != 0 {
		t.Fatalf("expected disconnect applied on return, state=%s active=%t methods=%v",
			tip.State(), tip.Active(), tip.Methods())
	}
	close(release)
	<-fired
}
