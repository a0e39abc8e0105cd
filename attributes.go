package tooltip

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-tooltip/internal/hydrate"
	"github.com/goliatone/go-tooltip/pkg/floating"
)

type attributeKind uint8

const (
	attributeNumber attributeKind = iota
	attributeString
	attributeBoolean
)

func (k attributeKind) String() string {
	switch k {
	case attributeNumber:
		return "number"
	case attributeBoolean:
		return "boolean"
	default:
		return "string"
	}
}

type attributeSpec struct {
	name        string
	key         string
	kind        attributeKind
	description string
}

var attributeSpecs = []attributeSpec{
	{"show-delay", "show_delay", attributeNumber, "Milliseconds a hover must last before the overlay shows. Focus always shows immediately."},
	{"hide-delay", "hide_delay", attributeNumber, "Milliseconds before the overlay hides once nothing is active. Focus loss uses 50ms."},
	{"transition-duration", "transition_duration", attributeNumber, "Milliseconds of the hide transition. The hidden notification fires 100ms after it."},
	{"placement", "placement", attributeString, "Preferred placement, such as top-start or bottom."},
	{"offset", "offset", attributeNumber, "Distance in pixels between anchor and overlay."},
	{"simple", "simple", attributeBoolean, "Renders the compact overlay style."},
	{"underline", "underline", attributeBoolean, "Underlines the anchor."},
}

var attributeIndex = func() map[string]attributeSpec {
	index := make(map[string]attributeSpec, len(attributeSpecs)*2)
	for _, spec := range attributeSpecs {
		index[foldAttributeName(spec.name)] = spec
	}
	return index
}()

// foldAttributeName makes show-delay, showDelay, show_delay and showdelay
// equivalent.
func foldAttributeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "")
	return strings.ReplaceAll(name, "_", "")
}

var attributeDecoder = hydrate.NewDecoder[Settings](
	hydrate.WithPreHook[Settings](normalizeAttributes),
	hydrate.WithPostHook[Settings](validateAttributePlacement),
)

// ParseAttributes decodes element attributes into Settings. Names are matched
// case-insensitively with or without separators, numbers are parsed as
// floats, a present boolean attribute is true whatever its value, and unknown
// attributes are ignored.
func ParseAttributes(attrs map[string]string) (Settings, error) {
	return ParseAttributesFor("", attrs)
}

// ParseAttributesFor is ParseAttributes with an element label for errors.
func ParseAttributesFor(element string, attrs map[string]string) (Settings, error) {
	payload := make(map[string]any, len(attrs))
	for name, value := range attrs {
		payload[name] = value
	}
	settings, err := attributeDecoder.Decode(hydrate.Context{Element: element, Source: "attributes"}, payload)
	if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func normalizeAttributes(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(payload))
	for name, raw := range payload {
		spec, ok := attributeIndex[foldAttributeName(name)]
		if !ok {
			continue
		}
		value := strings.TrimSpace(fmt.Sprint(raw))
		switch spec.kind {
		case attributeNumber:
			number, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidAttribute, spec.name, value)
			}
			out[spec.key] = number
		case attributeBoolean:
			out[spec.key] = true
		default:
			out[spec.key] = value
		}
	}
	return out, nil
}

func validateAttributePlacement(_ hydrate.Context, settings *Settings) error {
	if settings.Placement == nil {
		return nil
	}
	placement, err := floating.ParsePlacement(*settings.Placement)
	if err != nil {
		return err
	}
	normalized := string(placement)
	settings.Placement = &normalized
	return nil
}
