package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNormalizeEventTrimsClonesAndDefaults(t *testing.T) {
	meta := map[string]any{"k": "v"}
	evt := Event{
		Verb:       " tooltip.shown ",
		ActorID:    " visitor ",
		ObjectType: " tooltip ",
		ObjectID:   " tip-1 ",
		Channel:    " cv ",
		Metadata:   meta,
	}

	got := NormalizeEvent(evt)
	if got.Verb != VerbShown || got.ObjectType != ObjectTooltip || got.ObjectID != "tip-1" {
		t.Fatalf("unexpected normalized fields: %+v", got)
	}
	if got.ActorID != "visitor" || got.Channel != "cv" {
		t.Fatalf("unexpected trimming: %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be set")
	}
	got.Metadata["k"] = "changed"
	if evt.Metadata["k"] != "v" {
		t.Fatalf("expected original metadata untouched: %+v", evt.Metadata)
	}
}

func TestHooksNotifyDropsIncompleteEvents(t *testing.T) {
	capture := &CaptureHook{}
	if err := (Hooks{capture}).Notify(context.Background(), Event{Verb: VerbShown}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured, got %d", len(capture.Events))
	}
}

func TestHooksNotifyJoinsErrors(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return first }),
		nil,
		&CaptureHook{Err: second},
	}
	err := hooks.Notify(nil, BuildShownEvent(TooltipEventInput{TooltipID: "tip"}))
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
}

func TestBuildTooltipEvents(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	shown := BuildShownEvent(TooltipEventInput{
		TooltipID:  " tip-7 ",
		Mode:       "computed",
		Placement:  "top-start",
		Methods:    []string{"pointer", "focus"},
		OccurredAt: at,
	})
	if shown.Verb != VerbShown || shown.ObjectType != ObjectTooltip || shown.ObjectID != "tip-7" {
		t.Fatalf("unexpected shown event %+v", shown)
	}
	if shown.Metadata["mode"] != "computed" || shown.Metadata["placement"] != "top-start" {
		t.Fatalf("unexpected metadata %+v", shown.Metadata)
	}
	if methods, ok := shown.Metadata["methods"].([]string); !ok || len(methods) != 2 {
		t.Fatalf("expected methods metadata, got %+v", shown.Metadata["methods"])
	}
	if !shown.OccurredAt.Equal(at) {
		t.Fatalf("expected OccurredAt preserved")
	}

	hidden := BuildHiddenEvent(TooltipEventInput{TooltipID: "tip-7"})
	if hidden.Verb != VerbHidden || hidden.Metadata != nil {
		t.Fatalf("unexpected hidden event %+v", hidden)
	}
}

func TestEmitterAppliesDefaultChannel(t *testing.T) {
	capture := &CaptureHook{}
	emitter := NewEmitter(Hooks{capture}, Config{Enabled: true})
	if err := emitter.Emit(context.Background(), BuildShownEvent(TooltipEventInput{TooltipID: "a"})); err != nil {
		t.Fatalf("emit: %v", err)
	}
	events := capture.Snapshot()
	if len(events) != 1 || events[0].Channel != ObjectTooltip {
		t.Fatalf("expected default channel, got %+v", events)
	}

	disabled := NewEmitter(Hooks{capture}, Config{Enabled: false})
	if disabled.Enabled() {
		t.Fatalf("disabled emitter reports enabled")
	}
	if NewEmitter(Hooks{nil}, Config{Enabled: true}).Enabled() {
		t.Fatalf("emitter without hooks should be disabled")
	}
}

func TestCaptureHookVerbsAndReset(t *testing.T) {
	capture := &CaptureHook{}
	_ = capture.Notify(context.Background(), BuildShownEvent(TooltipEventInput{TooltipID: "a"}))
	_ = capture.Notify(context.Background(), BuildHiddenEvent(TooltipEventInput{TooltipID: "a"}))
	verbs := capture.Verbs()
	if len(verbs) != 2 || verbs[0] != VerbShown || verbs[1] != VerbHidden {
		t.Fatalf("unexpected verbs %v", verbs)
	}
	capture.Reset()
	if len(capture.Snapshot()) != 0 {
		t.Fatalf("expected reset to clear events")
	}
}
