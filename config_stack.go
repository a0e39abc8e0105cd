package tooltip

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-tooltip/layering"
)

// Scope models a named precedence bucket such as site, page or element.
// Higher priority values represent stronger layers.
type Scope struct {
	Name     string         `json:"name"`
	Label    string         `json:"label,omitempty"`
	Priority int            `json:"priority"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ScopeOption configures metadata on Scope creation.
type ScopeOption func(*scopeConfig)

type scopeConfig struct {
	label    string
	metadata map[string]any
}

// WithScopeLabel sets a human-friendly label on the scope.
func WithScopeLabel(label string) ScopeOption {
	return func(cfg *scopeConfig) {
		cfg.label = label
	}
}

// WithScopeMetadata attaches metadata to the scope. The map is copied.
func WithScopeMetadata(metadata map[string]any) ScopeOption {
	return func(cfg *scopeConfig) {
		if len(metadata) == 0 {
			return
		}
		cfg.metadata = copyMetadata(metadata)
	}
}

// NewScope builds a Scope. Validation is deferred to NewStack.
func NewScope(name string, priority int, opts ...ScopeOption) Scope {
	cfg := scopeConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return Scope{
		Name:     name,
		Label:    cfg.label,
		Priority: priority,
		Metadata: copyMetadata(cfg.metadata),
	}
}

func (s Scope) clone() Scope {
	return Scope{
		Name:     s.Name,
		Label:    s.Label,
		Priority: s.Priority,
		Metadata: copyMetadata(s.Metadata),
	}
}

// Layer pairs a scope with the settings captured for it.
type Layer struct {
	Scope      Scope
	Settings   Settings
	SnapshotID string
}

// LayerOption configures optional metadata for a layer.
type LayerOption func(*Layer)

// WithSnapshotID sets the identifier reported in traces, such as the file or
// element the settings came from.
func WithSnapshotID(id string) LayerOption {
	return func(layer *Layer) {
		layer.SnapshotID = id
	}
}

// NewLayer constructs a Layer holding a detached copy of settings.
func NewLayer(scope Scope, settings Settings, opts ...LayerOption) Layer {
	layer := Layer{
		Scope:    scope.clone(),
		Settings: layering.Clone(settings),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&layer)
	}
	return layer
}

var (
	// ErrScopeNameRequired indicates a missing scope name.
	ErrScopeNameRequired = errors.New("tooltip: scope name must be provided")
	// ErrDuplicateScopeName indicates NewStack received two layers with the
	// same scope name.
	ErrDuplicateScopeName = errors.New("tooltip: scope names must be unique")
	// ErrPriorityOrder indicates duplicate scope priorities.
	ErrPriorityOrder = errors.New("tooltip: scope priorities must be strictly ordered")
)

// Stack is an immutable set of layers ordered from strongest to weakest.
type Stack struct {
	layers []Layer
}

// NewStack validates and sorts layers so the highest priority comes first.
func NewStack(layers ...Layer) (*Stack, error) {
	if len(layers) == 0 {
		return &Stack{}, nil
	}

	seenNames := make(map[string]struct{}, len(layers))
	copied := make([]Layer, len(layers))
	for i, layer := range layers {
		layer := cloneLayer(layer)
		if layer.Scope.Name == "" {
			return nil, ErrScopeNameRequired
		}
		if _, ok := seenNames[layer.Scope.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateScopeName, layer.Scope.Name)
		}
		seenNames[layer.Scope.Name] = struct{}{}
		copied[i] = layer
	}

	sort.Slice(copied, func(i, j int) bool {
		if copied[i].Scope.Priority == copied[j].Scope.Priority {
			return copied[i].Scope.Name < copied[j].Scope.Name
		}
		return copied[i].Scope.Priority > copied[j].Scope.Priority
	})

	for i := 1; i < len(copied); i++ {
		if copied[i-1].Scope.Priority <= copied[i].Scope.Priority {
			return nil, fmt.Errorf("%w: %d", ErrPriorityOrder, copied[i].Scope.Priority)
		}
	}

	return &Stack{layers: copied}, nil
}

// Layers returns a copy of the layers, strongest first.
func (s *Stack) Layers() []Layer {
	if s == nil || len(s.layers) == 0 {
		return nil
	}
	out := make([]Layer, len(s.layers))
	for i := range s.layers {
		out[i] = cloneLayer(s.layers[i])
	}
	return out
}

// Len returns the number of layers in the stack.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.layers)
}

// Merge folds the layers into one Settings value.
func (s *Stack) Merge() Settings {
	if s == nil || len(s.layers) == 0 {
		return Settings{}
	}
	snapshots := make([]Settings, len(s.layers))
	for i := range s.layers {
		snapshots[i] = s.layers[i].Settings
	}
	return layering.MergeLayers(snapshots...)
}

// Resolve merges the layers on top of DefaultConfig.
func (s *Stack) Resolve() (Config, error) {
	return s.Merge().Resolve()
}

// ResolveWithTrace returns the effective value for key (a settings key such
// as "show_delay") together with the contribution of every layer. Keys no
// layer sets resolve to the default value.
func (s *Stack) ResolveWithTrace(key string) (any, Trace, error) {
	trace := Trace{Path: key}
	var (
		value any
		found bool
	)
	for _, layer := range s.Layers() {
		fields, err := settingsMap(layer.Settings)
		if err != nil {
			return nil, Trace{}, err
		}
		entry := Provenance{
			Scope:      layer.Scope,
			SnapshotID: layer.SnapshotID,
			Path:       key,
		}
		if v, ok := fields[key]; ok {
			entry.Value = v
			entry.Found = true
			if !found {
				value, found = v, true
			}
		}
		trace.Layers = append(trace.Layers, entry)
	}
	if !found {
		defaults, err := settingsMap(SettingsFromConfig(DefaultConfig()))
		if err != nil {
			return nil, Trace{}, err
		}
		v, ok := defaults[key]
		if !ok {
			return nil, trace, fmt.Errorf("tooltip: unknown setting %q", key)
		}
		value = v
	}
	return value, trace, nil
}

func settingsMap(settings Settings) (map[string]any, error) {
	payload, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("tooltip: encode settings: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("tooltip: decode settings: %w", err)
	}
	return fields, nil
}

func cloneLayer(layer Layer) Layer {
	return Layer{
		Scope:      layer.Scope.clone(),
		Settings:   layering.Clone(layer.Settings),
		SnapshotID: layer.SnapshotID,
	}
}

func copyMetadata(origin map[string]any) map[string]any {
	if len(origin) == 0 {
		return nil
	}
	out := make(map[string]any, len(origin))
	for key, value := range origin {
		out[key] = value
	}
	return out
}
