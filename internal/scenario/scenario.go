// Package scenario drives a headless tooltip through a scripted sequence of
// interactions on a virtual clock and records what happened.
package scenario

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	tooltip "github.com/goliatone/go-tooltip"
	"github.com/goliatone/go-tooltip/pkg/floating"
)

// Scenario is a scripted interaction.
type Scenario struct {
	Name       string            `yaml:"name"`
	Mode       string            `yaml:"mode,omitempty"`
	Supports   []string          `yaml:"supports,omitempty"`
	Viewport   Size              `yaml:"viewport"`
	Anchor     Box               `yaml:"anchor"`
	Overlay    Size              `yaml:"overlay"`
	Settings   tooltip.Settings  `yaml:"settings,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Steps      []Step            `yaml:"steps"`
	// Until is the virtual time, in milliseconds, the run ends at. Defaults
	// to one second after the last step.
	Until float64 `yaml:"until,omitempty"`
}

// Size is a width and height in pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Box is a positioned rectangle.
type Box struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rect converts b to a floating.Rect.
func (b Box) Rect() floating.Rect {
	return floating.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// Step is one input at a point in virtual time. Exactly one of Event,
// Action or Move is set.
type Step struct {
	At     float64 `yaml:"at"`
	Event  string  `yaml:"event,omitempty"`
	Target string  `yaml:"target,omitempty"`
	Action string  `yaml:"action,omitempty"`
	Move   *Box    `yaml:"move,omitempty"`
}

var eventKinds = map[string]tooltip.EventKind{
	"pointer-enter": tooltip.PointerEnter,
	"pointer-leave": tooltip.PointerLeave,
	"focus-in":      tooltip.FocusIn,
	"focus-out":     tooltip.FocusOut,
}

var actions = map[string]bool{
	"disconnect": true,
	"mount":      true,
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario. Steps are sorted by time, keeping
// the file order for equal times.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(s.Steps, func(i, j int) bool { return s.Steps[i].At < s.Steps[j].At })
	return &s, nil
}

// Validate checks the scenario is runnable.
func (s *Scenario) Validate() error {
	switch tooltip.Mode(strings.ToLower(s.Mode)) {
	case "", tooltip.ModeNative, tooltip.ModeComputed:
	default:
		return fmt.Errorf("invalid mode %q", s.Mode)
	}
	if s.Overlay.Width < 0 || s.Overlay.Height < 0 {
		return fmt.Errorf("overlay size must not be negative")
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	if st.At < 0 {
		return fmt.Errorf("at must not be negative")
	}
	set := 0
	if st.Event != "" {
		set++
		if _, ok := eventKinds[strings.ToLower(st.Event)]; !ok {
			return fmt.Errorf("unknown event %q", st.Event)
		}
	}
	if st.Action != "" {
		set++
		if !actions[strings.ToLower(st.Action)] {
			return fmt.Errorf("unknown action %q", st.Action)
		}
	}
	if st.Move != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("exactly one of event, action or move is required")
	}
	switch strings.ToLower(st.Target) {
	case "", "anchor", "overlay":
	default:
		return fmt.Errorf("unknown target %q", st.Target)
	}
	return nil
}

func (st Step) target() tooltip.Target {
	if strings.EqualFold(st.Target, "overlay") {
		return tooltip.TargetOverlay
	}
	return tooltip.TargetAnchor
}

func (st Step) describe() string {
	switch {
	case st.Event != "":
		target := strings.ToLower(st.Target)
		if target == "" {
			target = "anchor"
		}
		return fmt.Sprintf("%s on %s", strings.ToLower(st.Event), target)
	case st.Action != "":
		return strings.ToLower(st.Action)
	default:
		return fmt.Sprintf("move anchor to (%g, %g)", st.Move.X, st.Move.Y)
	}
}

func (s *Scenario) end() float64 {
	if s.Until > 0 {
		return s.Until
	}
	last := 0.0
	for _, step := range s.Steps {
		if step.At > last {
			last = step.At
		}
	}
	return last + 1000
}
