package tooltip

import (
	"fmt"
	"sync/atomic"

	"github.com/goliatone/go-tooltip/pkg/activity"
	"github.com/goliatone/go-tooltip/pkg/clock"
	"github.com/google/uuid"
)

// Tooltip is one overlay attached to one anchor. Every operation runs on the
// Environment loop and has taken effect when the call returns, even while a
// timer is being handled on another goroutine. Activity hooks run after the
// loop task that emitted them and may call back into the tooltip. Loggers,
// hosts and elements are called on the loop and must not.
type Tooltip struct {
	env      *Environment
	id       string
	actorID  string
	token    string
	strategy Strategy
	emitter  *activity.Emitter

	// Owned by the loop.
	cfg          Config
	anchor       Element
	overlay      Overlay
	connected    bool
	methods      activationSet
	state        State
	active       bool
	timer        clock.Timer
	timerSeq     uint64
	notifyTimer  clock.Timer
	notifySeq    uint64
	subscription Subscription
	subSeq       uint64
	epoch        uint64

	// Published for readers outside the loop.
	publishedState   atomic.Uint32
	publishedActive  atomic.Bool
	publishedMethods atomic.Uint32
	publishedConfig  atomic.Pointer[Config]
}

// New creates a tooltip in the default Environment.
func New(opts ...Option) (*Tooltip, error) {
	return DefaultEnvironment().NewTooltip(opts...)
}

// NewTooltip creates a tooltip. The environment mode is decided here if it
// was not already, and a native anchor token is minted when needed.
func (e *Environment) NewTooltip(opts ...Option) (*Tooltip, error) {
	tc, err := applyOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("tooltip: configure: %w", err)
	}
	id := tc.id
	if id == "" {
		id = uuid.NewString()
	}
	strategy := tc.strategy
	if strategy == nil {
		strategy = NewStrategy(e.Mode(), e.cfg.host)
	}
	mode := strategy.Mode()
	t := &Tooltip{
		env:       e,
		id:        id,
		actorID:   tc.actorID,
		strategy:  strategy,
		emitter:   activity.NewEmitter(tc.hooks, activity.Config{Enabled: true, Channel: tc.channel}),
		cfg:       tc.config,
		connected: true,
	}
	if mode == ModeNative {
		t.token = "--tooltip-" + uuid.NewString()
	}
	t.publishConfig()
	return t, nil
}

// ID returns the tooltip id.
func (t *Tooltip) ID() string { return t.id }

// Mode returns the positioning mode of the tooltip.
func (t *Tooltip) Mode() Mode { return t.strategy.Mode() }

// AnchorToken returns the native anchor token, empty in computed mode.
func (t *Tooltip) AnchorToken() string { return t.token }

// State returns the last published scheduling state.
func (t *Tooltip) State() State { return State(t.publishedState.Load()) }

// Active reports whether the overlay is shown.
func (t *Tooltip) Active() bool { return t.publishedActive.Load() }

// Methods returns the asserted activation methods.
func (t *Tooltip) Methods() []ActivationMethod {
	return activationSet(t.publishedMethods.Load()).list()
}

// Config returns the current configuration.
func (t *Tooltip) Config() Config {
	if cfg := t.publishedConfig.Load(); cfg != nil {
		return *cfg
	}
	return DefaultConfig()
}

// Classes returns the class names and overlay custom properties for the
// current configuration and visibility.
func (t *Tooltip) Classes() Classes {
	return buildClasses(t.Config(), t.Active())
}

// Mount attaches the rendered anchor and overlay. Either may be nil, in
// which case rendering side effects are skipped. Mounting an already
// mounted tooltip tears the previous mount down first, silently, and closes
// the previous overlay if it was showing.
func (t *Tooltip) Mount(anchor Element, overlay Overlay) {
	t.env.loop.Do(func() {
		if t.active && t.overlay != nil {
			t.overlay.HidePopover()
		}
		if t.anchor != nil || t.overlay != nil {
			t.teardown()
			t.syncClasses()
		}
		t.anchor = anchor
		t.overlay = overlay
		t.connected = true
		t.strategy.Bind(anchor, overlay, t.token)
		if overlay != nil {
			overlay.SetStyle(PropertyTransitionDuration, transitionValue(t.cfg.TransitionDuration))
		}
		t.syncClasses()
		t.logDebug("mounted", nil)
	})
}

// Activate asserts method and requests the overlay.
func (t *Tooltip) Activate(method ActivationMethod) {
	if !method.Valid() {
		return
	}
	t.env.loop.Do(func() {
		if !t.connected {
			return
		}
		t.methods = t.methods.with(method)
		t.publishMethods()
		t.dispatch(triggerActivate, method)
	})
}

// Deactivate withdraws method. The overlay is hidden only once no method is
// left.
func (t *Tooltip) Deactivate(method ActivationMethod) {
	if !method.Valid() {
		return
	}
	t.env.loop.Do(func() {
		if !t.connected {
			return
		}
		t.methods = t.methods.without(method)
		t.publishMethods()
		if t.methods.empty() {
			t.dispatch(triggerDeactivateLast, method)
		}
	})
}

// HandleEvent maps an inbound interaction to Activate or Deactivate.
func (t *Tooltip) HandleEvent(target Target, kind EventKind) {
	method, activate, ok := methodForEvent(target, kind)
	if !ok {
		return
	}
	if activate {
		t.Activate(method)
		return
	}
	t.Deactivate(method)
}

// Disconnect cancels every pending timer and the reposition subscription
// without emitting anything. Activations are ignored until Mount is called
// again.
func (t *Tooltip) Disconnect() {
	t.env.loop.Do(func() {
		t.teardown()
		t.connected = false
		t.logDebug("disconnected", nil)
	})
}

// SetConfig replaces the configuration. Delays already scheduled keep their
// original duration.
func (t *Tooltip) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.env.loop.Do(func() {
		t.cfg = cfg
		t.publishConfig()
		if t.overlay != nil {
			t.overlay.SetStyle(PropertyTransitionDuration, transitionValue(cfg.TransitionDuration))
		}
		t.syncClasses()
	})
	return nil
}

func (t *Tooltip) setState(s State) {
	t.state = s
	t.publishedState.Store(uint32(s))
}

func (t *Tooltip) setActive(active bool) {
	t.active = active
	t.publishedActive.Store(active)
}

func (t *Tooltip) publishMethods() {
	t.publishedMethods.Store(uint32(t.methods))
}

func (t *Tooltip) publishConfig() {
	cfg := t.cfg
	t.publishedConfig.Store(&cfg)
}

func (t *Tooltip) log(event LogEvent) {
	event.TooltipID = t.id
	event.State = t.state
	t.env.cfg.logger.Log(event)
}

func (t *Tooltip) logDebug(message string, fields map[string]any) {
	t.log(LogEvent{Level: LevelDebug, Message: message, Fields: fields})
}
