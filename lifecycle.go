package tooltip

import (
	"context"

	"github.com/goliatone/go-tooltip/pkg/activity"
)

// show runs the show action. In computed mode the overlay becomes visible
// once the initial position has been applied; a hide or disconnect in
// between drops the result.
func (t *Tooltip) show() {
	epoch := t.epoch
	if t.strategy.Mode() != ModeComputed || t.anchor == nil || t.overlay == nil {
		t.finishShow()
		return
	}
	t.strategy.ComputePosition(t.anchor, t.overlay, t.cfg, func(p Point, ok bool) {
		t.env.loop.Post(func() {
			if epoch != t.epoch || !t.connected {
				t.logDebug("stale position dropped", nil)
				return
			}
			if ok {
				applyPosition(t.overlay, p)
			}
			t.finishShow()
		})
	})
}

func (t *Tooltip) finishShow() {
	t.setActive(true)
	t.syncClasses()
	if t.overlay != nil {
		t.overlay.ShowPopover()
	}
	t.attach()
	t.emit(activity.VerbShown)
}

// hide runs the hide action and schedules the hidden notification.
func (t *Tooltip) hide() {
	t.epoch++
	t.detach()
	if t.overlay != nil {
		t.overlay.HidePopover()
	}
	t.setActive(false)
	t.syncClasses()

	t.cancelNotification()
	seq := t.notifySeq
	t.notifyTimer = t.env.cfg.clock.AfterFunc(t.cfg.hiddenNotificationDelay(), func() {
		t.env.loop.Do(func() {
			if seq != t.notifySeq {
				return
			}
			t.notifyTimer = nil
			t.emit(activity.VerbHidden)
		})
	})
}

func (t *Tooltip) cancelNotification() {
	if t.notifyTimer != nil {
		t.notifyTimer.Stop()
		t.notifyTimer = nil
	}
	t.notifySeq++
}

// attach replaces the reposition subscription. Updates from a replaced
// subscription are ignored.
func (t *Tooltip) attach() {
	t.detach()
	if t.anchor == nil || t.overlay == nil {
		return
	}
	seq := t.subSeq
	t.subscription = t.strategy.Attach(t.anchor, t.overlay, func() {
		t.env.loop.Post(func() {
			t.reposition(seq)
		})
	})
}

func (t *Tooltip) detach() {
	if t.subscription != nil {
		t.subscription.Cancel()
		t.subscription = nil
	}
	t.subSeq++
}

func (t *Tooltip) reposition(seq uint64) {
	if seq != t.subSeq || t.subscription == nil || !t.active {
		return
	}
	t.strategy.ComputePosition(t.anchor, t.overlay, t.cfg, func(p Point, ok bool) {
		t.env.loop.Post(func() {
			if !ok || seq != t.subSeq || !t.active {
				return
			}
			applyPosition(t.overlay, p)
		})
	})
}

// teardown cancels every timer and the subscription without notifying.
func (t *Tooltip) teardown() {
	t.dispatch(triggerDisconnect, "")
	t.cancelNotification()
	t.detach()
	t.epoch++
	t.methods = 0
	t.publishMethods()
	t.setActive(false)
}

// emit builds the event on the loop and hands it to the hooks once the
// current drain is over, so a hook may call back into the tooltip.
func (t *Tooltip) emit(verb string) {
	if !t.emitter.Enabled() {
		return
	}
	input := activity.TooltipEventInput{
		TooltipID:  t.id,
		ActorID:    t.actorID,
		Mode:       string(t.strategy.Mode()),
		Placement:  string(t.cfg.Placement),
		OccurredAt: t.env.cfg.clock.Now(),
	}
	var event activity.Event
	if verb == activity.VerbShown {
		input.Methods = t.methods.strings()
		event = activity.BuildShownEvent(input)
	} else {
		event = activity.BuildHiddenEvent(input)
	}
	t.env.loop.After(func() {
		if err := t.emitter.Emit(context.Background(), event); err != nil {
			t.env.cfg.logger.Log(LogEvent{
				Level:     LevelWarn,
				Message:   "activity hook failed",
				TooltipID: t.id,
				State:     t.State(),
				Fields:    map[string]any{"verb": verb},
				Err:       err,
			})
		}
	})
}

// syncClasses pushes the class names for the current configuration and
// visibility to elements that render them.
func (t *Tooltip) syncClasses() {
	classes := buildClasses(t.cfg, t.active)
	if el, ok := t.anchor.(Classed); ok {
		el.SetClasses(classes.Anchor)
	}
	if el, ok := t.overlay.(Classed); ok {
		el.SetClasses(classes.Overlay)
	}
}
