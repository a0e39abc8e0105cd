package activity

import (
	"strings"
	"time"
)

const (
	// VerbShown is emitted once the overlay has been made visible.
	VerbShown = "tooltip.shown"
	// VerbHidden is emitted after the hide transition is expected to have
	// finished.
	VerbHidden = "tooltip.hidden"

	// ObjectTooltip is the object type of every tooltip event.
	ObjectTooltip = "tooltip"
)

// TooltipEventInput carries the fields shared by tooltip lifecycle events.
type TooltipEventInput struct {
	TooltipID  string
	ActorID    string
	Mode       string
	Placement  string
	Methods    []string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildShownEvent constructs the event for a tooltip becoming visible.
func BuildShownEvent(input TooltipEventInput) Event {
	return buildTooltipEvent(VerbShown, input)
}

// BuildHiddenEvent constructs the deferred event for a tooltip that finished
// hiding.
func BuildHiddenEvent(input TooltipEventInput) Event {
	return buildTooltipEvent(VerbHidden, input)
}

func buildTooltipEvent(verb string, input TooltipEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Mode != "" {
		metadata = ensureMetadata(metadata)
		metadata["mode"] = input.Mode
	}
	if input.Placement != "" {
		metadata = ensureMetadata(metadata)
		metadata["placement"] = input.Placement
	}
	if len(input.Methods) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["methods"] = append([]string{}, input.Methods...)
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		ObjectType: ObjectTooltip,
		ObjectID:   strings.TrimSpace(input.TooltipID),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
