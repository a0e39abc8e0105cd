package tooltip

import (
	"errors"
	"testing"
)

func TestParseAttributes(t *testing.T) {
	settings, err := ParseAttributes(map[string]string{
		"showDelay":           "150",
		"HIDE_DELAY":          " 0 ",
		"transition-duration": "250.5",
		"placement":           "Bottom-End",
		"simple":              "",
		"underline":           "false",
		"data-unrelated":      "x",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if settings.ShowDelay == nil || *settings.ShowDelay != 150 {
		t.Fatalf("unexpected show delay %v", settings.ShowDelay)
	}
	if settings.HideDelay == nil || *settings.HideDelay != 0 {
		t.Fatalf("unexpected hide delay %v", settings.HideDelay)
	}
	if settings.TransitionDuration == nil || *settings.TransitionDuration != 250.5 {
		t.Fatalf("unexpected transition %v", settings.TransitionDuration)
	}
	if settings.Placement == nil || *settings.Placement != "bottom-end" {
		t.Fatalf("expected normalized placement, got %v", settings.Placement)
	}
	if settings.Simple == nil || !*settings.Simple {
		t.Fatalf("expected present boolean to be true")
	}
	if settings.Underline == nil || !*settings.Underline {
		t.Fatalf("expected present boolean to be true whatever its value")
	}
	if settings.Offset != nil {
		t.Fatalf("expected offset unset, got %v", *settings.Offset)
	}
}

func TestParseAttributesRejectsBadValues(t *testing.T) {
	if _, err := ParseAttributesFor("help-icon", map[string]string{"show-delay": "soon"}); !errors.Is(err, ErrInvalidAttribute) {
		t.Fatalf("expected invalid attribute, got %v", err)
	}
	if _, err := ParseAttributes(map[string]string{"placement": "diagonal"}); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("expected invalid placement, got %v", err)
	}
}

func TestParseAttributesEmpty(t *testing.T) {
	settings, err := ParseAttributes(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := settings.Resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestAttributeDescriptors(t *testing.T) {
	descriptors := AttributeDescriptors()
	if len(descriptors) != len(attributeSpecs) {
		t.Fatalf("expected %d descriptors, got %d", len(attributeSpecs), len(descriptors))
	}
	for i := 1; i < len(descriptors); i++ {
		if descriptors[i-1].Key >= descriptors[i].Key {
			t.Fatalf("descriptors not sorted: %q before %q", descriptors[i-1].Key, descriptors[i].Key)
		}
	}
	byKey := map[string]AttributeDescriptor{}
	for _, d := range descriptors {
		byKey[d.Key] = d
	}
	if d := byKey["show_delay"]; d.Attribute != "show-delay" || d.Type != "number" || d.Default != float64(200) {
		t.Fatalf("unexpected show_delay descriptor %+v", d)
	}
	if d := byKey["simple"]; d.Type != "boolean" || d.Default != false {
		t.Fatalf("unexpected simple descriptor %+v", d)
	}
	if d := byKey["placement"]; d.Default != "top-start" || d.Description == "" {
		t.Fatalf("unexpected placement descriptor %+v", d)
	}
}
