package scenario

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tooltip "github.com/goliatone/go-tooltip"
	"github.com/goliatone/go-tooltip/pkg/activity"
	"github.com/goliatone/go-tooltip/pkg/clock"
	"github.com/goliatone/go-tooltip/pkg/floating"
	"github.com/goliatone/go-tooltip/pkg/headless"
)

// Entry kinds.
const (
	KindInput    = "input"
	KindState    = "state"
	KindNotify   = "notify"
	KindPosition = "position"
	KindWarn     = "warn"
)

// Entry is one line of the timeline.
type Entry struct {
	At     time.Duration `json:"at" yaml:"at"`
	Kind   string        `json:"kind" yaml:"kind"`
	Detail string        `json:"detail" yaml:"detail"`
}

// Result is the outcome of a run.
type Result struct {
	Name     string         `json:"name" yaml:"name"`
	Mode     tooltip.Mode   `json:"mode" yaml:"mode"`
	Config   tooltip.Config `json:"config" yaml:"config"`
	Timeline []Entry        `json:"timeline" yaml:"timeline"`
	State    string         `json:"state" yaml:"state"`
	Active   bool           `json:"active" yaml:"active"`
	Trace    *tooltip.Trace `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// Notifications returns the notify entries.
func (r *Result) Notifications() []Entry {
	var out []Entry
	for _, entry := range r.Timeline {
		if entry.Kind == KindNotify {
			out = append(out, entry)
		}
	}
	return out
}

// Options tunes a run.
type Options struct {
	// Site settings sit below the scenario settings and attributes.
	Site tooltip.Settings
	// Environment options applied after the scenario defaults.
	Environment []tooltip.EnvironmentOption
	// TraceKey, when set, records the provenance of that settings key.
	TraceKey string
	// Logger receives every engine log event as well.
	Logger tooltip.Logger
}

type recorder struct {
	mu       sync.Mutex
	clock    *clock.Manual
	start    time.Time
	overlay  *headless.Overlay
	next     tooltip.Logger
	timeline []Entry
}

func (r *recorder) add(kind, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timeline = append(r.timeline, Entry{At: r.clock.Now().Sub(r.start), Kind: kind, Detail: detail})
}

func (r *recorder) Log(event tooltip.LogEvent) {
	if r.next != nil {
		r.next.Log(event)
	}
	switch {
	case event.Level == tooltip.LevelWarn:
		detail := event.Message
		if event.Err != nil {
			detail += ": " + event.Err.Error()
		}
		r.add(KindWarn, detail)
	case event.Message == "transition":
		from, _ := event.Fields["from"].(string)
		to, _ := event.Fields["to"].(string)
		if from != to {
			r.add(KindState, from+" -> "+to)
		}
	}
}

func (r *recorder) Notify(_ context.Context, event activity.Event) error {
	r.add(KindNotify, event.Verb)
	if event.Verb == activity.VerbShown && r.overlay != nil {
		left, okLeft := r.overlay.Style("left")
		top, okTop := r.overlay.Style("top")
		if okLeft && okTop {
			r.add(KindPosition, fmt.Sprintf("left=%s top=%s", left, top))
		}
	}
	return nil
}

// Run plays s on a fresh environment with a virtual clock.
func Run(s *Scenario, opts Options) (*Result, error) {
	if s == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	element, err := tooltip.ParseAttributesFor("anchor", s.Attributes)
	if err != nil {
		return nil, err
	}
	stack, err := tooltip.SitePageElement(opts.Site, s.Settings, element)
	if err != nil {
		return nil, err
	}
	cfg, err := stack.Resolve()
	if err != nil {
		return nil, err
	}

	clk := clock.NewManual(time.Time{})
	viewport := floating.Rect{Width: s.Viewport.Width, Height: s.Viewport.Height}
	host := headless.NewHost(viewport)
	anchor := headless.NewElement("anchor", s.Anchor.Rect())
	overlay := headless.NewOverlay("overlay", s.Overlay.Width, s.Overlay.Height)
	rec := &recorder{clock: clk, start: clk.Now(), overlay: overlay, next: opts.Logger}

	envOpts := []tooltip.EnvironmentOption{
		tooltip.WithClock(clk),
		tooltip.WithHost(host),
		tooltip.WithProbe(headless.NewProbe(s.Supports...)),
	}
	envOpts = append(envOpts, opts.Environment...)
	if mode := strings.ToLower(s.Mode); mode != "" {
		envOpts = append(envOpts, tooltip.WithMode(tooltip.Mode(mode)))
	}
	envOpts = append(envOpts, tooltip.WithLogger(rec))
	env := tooltip.NewEnvironment(envOpts...)

	name := s.Name
	if name == "" {
		name = "scenario"
	}
	tip, err := env.NewTooltip(
		tooltip.WithConfig(cfg),
		tooltip.WithID(name),
		tooltip.WithActivityHooks(rec),
	)
	if err != nil {
		return nil, err
	}
	tip.Mount(anchor, overlay)

	at := func(ms float64) time.Time {
		return rec.start.Add(time.Duration(ms * float64(time.Millisecond)))
	}
	for _, step := range s.Steps {
		clk.Set(at(step.At))
		rec.add(KindInput, step.describe())
		switch {
		case step.Event != "":
			tip.HandleEvent(step.target(), eventKinds[strings.ToLower(step.Event)])
		case strings.EqualFold(step.Action, "disconnect"):
			tip.Disconnect()
		case strings.EqualFold(step.Action, "mount"):
			tip.Mount(anchor, overlay)
		case step.Move != nil:
			anchor.SetRect(step.Move.Rect())
			host.Trigger()
		}
	}
	clk.Set(at(s.end()))

	result := &Result{
		Name:     name,
		Mode:     tip.Mode(),
		Config:   tip.Config(),
		Timeline: append([]Entry(nil), rec.timeline...),
		State:    tip.State().String(),
		Active:   tip.Active(),
	}
	if opts.TraceKey != "" {
		_, trace, err := stack.ResolveWithTrace(opts.TraceKey)
		if err != nil {
			return nil, err
		}
		result.Trace = &trace
	}
	return result, nil
}

// WriteTimeline prints the timeline as aligned text.
func WriteTimeline(w io.Writer, r *Result) error {
	if _, err := fmt.Fprintf(w, "scenario %s (%s)\n", r.Name, r.Mode); err != nil {
		return err
	}
	for _, entry := range r.Timeline {
		ms := float64(entry.At) / float64(time.Millisecond)
		if _, err := fmt.Fprintf(w, "%8gms  %-8s %s\n", ms, entry.Kind, entry.Detail); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "final: %s active=%t\n", r.State, r.Active)
	return err
}
