package hydrate

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Delay *int    `json:"delay,omitempty"`
	Label *string `json:"label,omitempty"`
}

func TestDecodeRunsHooksInOrder(t *testing.T) {
	var calls []string
	decoder := NewDecoder[sample](
		WithPreHook[sample](func(_ Context, payload map[string]any) (map[string]any, error) {
			calls = append(calls, "pre")
			payload["delay"] = 150
			return payload, nil
		}),
		WithPostHook[sample](func(_ Context, value *sample) error {
			calls = append(calls, "post")
			if value.Delay == nil || *value.Delay != 150 {
				t.Fatalf("post hook should observe pre hook output, got %+v", value)
			}
			return nil
		}),
	)

	input := map[string]any{"label": "hi"}
	got, err := decoder.Decode(Context{Element: "anchor"}, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Label == nil || *got.Label != "hi" {
		t.Fatalf("expected label to decode, got %+v", got)
	}
	if strings.Join(calls, ",") != "pre,post" {
		t.Fatalf("unexpected hook order %v", calls)
	}
	if _, mutated := input["delay"]; mutated {
		t.Fatalf("decoder mutated the caller's payload")
	}
}

func TestDecodeWrapsHookErrors(t *testing.T) {
	boom := errors.New("boom")
	decoder := NewDecoder[sample](WithPostHook[sample](func(Context, *sample) error { return boom }))
	_, err := decoder.Decode(Context{Element: "cv-tooltip"}, map[string]any{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped hook error, got %v", err)
	}
	if !strings.Contains(err.Error(), "cv-tooltip") {
		t.Fatalf("expected element label in error, got %v", err)
	}
}

func TestDecodeDisallowUnknownFields(t *testing.T) {
	decoder := NewDecoder[sample](WithDisallowUnknownFields[sample]())
	if _, err := decoder.Decode(Context{}, map[string]any{"bogus": true}); err == nil {
		t.Fatalf("expected unknown field error")
	}
	lenient := NewDecoder[sample]()
	if _, err := lenient.Decode(Context{}, map[string]any{"bogus": true}); err != nil {
		t.Fatalf("lenient decoder should ignore unknown fields: %v", err)
	}
}
