package tooltip

type trigger uint8

const (
	triggerActivate trigger = iota
	triggerDeactivateLast
	triggerTimer
	triggerDisconnect
	triggerCount
)

func (t trigger) String() string {
	switch t {
	case triggerActivate:
		return "activate"
	case triggerDeactivateLast:
		return "deactivate-last"
	case triggerTimer:
		return "timer"
	case triggerDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

type effect uint8

const (
	effectNone effect = iota
	effectRequestShow
	effectRequestHide
	effectShowNow
	effectHideNow
	effectCancel
)

type transition struct {
	next   State
	effect effect
}

// transitions is keyed by (state, trigger). Request effects may settle in
// the steady state immediately when the effective delay is not positive.
var transitions = [4][triggerCount]transition{
	StateHidden: {
		triggerActivate:       {StatePendingShow, effectRequestShow},
		triggerDeactivateLast: {StateHidden, effectNone},
		triggerTimer:          {StateHidden, effectNone},
		triggerDisconnect:     {StateHidden, effectCancel},
	},
	StatePendingShow: {
		triggerActivate:       {StatePendingShow, effectRequestShow},
		triggerDeactivateLast: {StateHidden, effectCancel},
		triggerTimer:          {StateVisible, effectShowNow},
		triggerDisconnect:     {StateHidden, effectCancel},
	},
	StateVisible: {
		triggerActivate:       {StateVisible, effectNone},
		triggerDeactivateLast: {StatePendingHide, effectRequestHide},
		triggerTimer:          {StateVisible, effectNone},
		triggerDisconnect:     {StateHidden, effectCancel},
	},
	StatePendingHide: {
		triggerActivate:       {StateVisible, effectCancel},
		triggerDeactivateLast: {StatePendingHide, effectRequestHide},
		triggerTimer:          {StateHidden, effectHideNow},
		triggerDisconnect:     {StateHidden, effectCancel},
	},
}

func lookupTransition(state State, tr trigger) transition {
	if int(state) >= len(transitions) || tr >= triggerCount {
		return transition{next: state}
	}
	return transitions[state][tr]
}
