package layering

import (
	"reflect"
	"testing"
)

type delays struct {
	Show *int
	Hide *int
}

type snapshot struct {
	Delays    delays
	Placement *string
	Classes   []string
	Extra     map[string]*int
	Compact   *bool
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestMergeLayersStrongestWins(t *testing.T) {
	element := snapshot{
		Delays:  delays{Show: intPtr(0)},
		Compact: boolPtr(false),
	}
	site := snapshot{
		Delays:    delays{Show: intPtr(150), Hide: intPtr(400)},
		Placement: strPtr("bottom"),
		Compact:   boolPtr(true),
	}
	defaults := snapshot{
		Delays:    delays{Show: intPtr(200), Hide: intPtr(200)},
		Placement: strPtr("top-start"),
		Classes:   []string{"tooltip"},
	}

	got := MergeLayers(element, site, defaults)

	if *got.Delays.Show != 0 {
		t.Fatalf("explicit zero from the strongest layer must win, got %d", *got.Delays.Show)
	}
	if *got.Delays.Hide != 400 {
		t.Fatalf("expected hide delay from site layer, got %d", *got.Delays.Hide)
	}
	if *got.Placement != "bottom" {
		t.Fatalf("expected placement from site layer, got %q", *got.Placement)
	}
	if *got.Compact {
		t.Fatalf("explicit false must not be overridden by a weaker true")
	}
	if !reflect.DeepEqual(got.Classes, []string{"tooltip"}) {
		t.Fatalf("expected classes to fall through, got %v", got.Classes)
	}
}

func TestMergeLayersMergesMapsPerKey(t *testing.T) {
	strong := snapshot{Extra: map[string]*int{"a": intPtr(1)}}
	weak := snapshot{Extra: map[string]*int{"a": intPtr(9), "b": intPtr(2)}}

	got := MergeLayers(strong, weak)
	if *got.Extra["a"] != 1 || *got.Extra["b"] != 2 {
		t.Fatalf("unexpected merged map: a=%d b=%d", *got.Extra["a"], *got.Extra["b"])
	}
}

func TestMergeLayersDoesNotAlias(t *testing.T) {
	weak := snapshot{Delays: delays{Show: intPtr(200)}}
	got := MergeLayers(snapshot{}, weak)
	*got.Delays.Show = 999
	if *weak.Delays.Show != 200 {
		t.Fatalf("merged value aliases the input layer")
	}
}

func TestMergeLayersZeroInput(t *testing.T) {
	if got := MergeLayers[snapshot](); !reflect.DeepEqual(got, snapshot{}) {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestCloneDetachesPointers(t *testing.T) {
	original := snapshot{Placement: strPtr("left"), Classes: []string{"a"}}
	copied := Clone(original)
	*copied.Placement = "right"
	copied.Classes[0] = "b"
	if *original.Placement != "left" || original.Classes[0] != "a" {
		t.Fatalf("clone shares memory with the original")
	}
}
