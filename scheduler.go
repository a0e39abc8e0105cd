package tooltip

import "time"

// dispatch applies the transition for trigger. method is the activation
// method that caused it, if any. Must run on the loop.
func (t *Tooltip) dispatch(tr trigger, method ActivationMethod) {
	from := t.state
	next := lookupTransition(from, tr)

	switch next.effect {
	case effectRequestShow:
		t.requestShow(method)
	case effectRequestHide:
		t.requestHide(method)
	case effectShowNow:
		t.timer = nil
		t.setState(StateVisible)
		t.show()
	case effectHideNow:
		t.timer = nil
		t.setState(StateHidden)
		t.hide()
	case effectCancel:
		t.cancelTimer()
		t.setState(next.next)
	default:
		t.setState(next.next)
	}

	t.logDebug("transition", map[string]any{
		"trigger": tr.String(),
		"method":  string(method),
		"from":    from.String(),
		"to":      t.state.String(),
	})
}

// requestShow shows immediately for focus or a non-positive delay, otherwise
// (re)starts the show timer.
func (t *Tooltip) requestShow(method ActivationMethod) {
	t.cancelTimer()
	if method == MethodFocus || t.cfg.ShowDelay <= 0 {
		t.setState(StateVisible)
		t.show()
		return
	}
	t.setState(StatePendingShow)
	t.startTimer(t.cfg.ShowDelay)
}

// requestHide hides after HideDelay, or focusHideDelay when focus was the
// last method to go.
func (t *Tooltip) requestHide(method ActivationMethod) {
	t.cancelTimer()
	delay := t.cfg.HideDelay
	if method == MethodFocus {
		delay = focusHideDelay
	}
	if delay <= 0 {
		t.setState(StateHidden)
		t.hide()
		return
	}
	t.setState(StatePendingHide)
	t.startTimer(delay)
}

func (t *Tooltip) startTimer(d time.Duration) {
	t.timerSeq++
	seq := t.timerSeq
	t.timer = t.env.cfg.clock.AfterFunc(d, func() {
		t.env.loop.Do(func() {
			if seq != t.timerSeq {
				return
			}
			t.dispatch(triggerTimer, "")
		})
	})
}

// cancelTimer stops the outstanding show/hide timer. Bumping the sequence
// also invalidates a callback that already fired but has not run yet.
func (t *Tooltip) cancelTimer() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.timerSeq++
}
