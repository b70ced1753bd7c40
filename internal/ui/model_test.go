package ui

import (
	"math"
	"testing"

	"github.com/googoolist/lightshow-2/internal/analyzer"
	"github.com/googoolist/lightshow-2/internal/engine"
	"github.com/googoolist/lightshow-2/internal/program"
)

type stubFeatures struct{}

func (stubFeatures) Snapshot() analyzer.Snapshot { return analyzer.Snapshot{} }

func TestHandleKeyAdjustsBrightness(t *testing.T) {
	params := engine.NewParams()
	m := New(params, stubFeatures{}, "test")

	m.handleKey("b")
	if got := params.Get().Brightness; math.Abs(got-0.55) > 1e-9 {
		t.Fatalf("brightness = %v after one step up, want 0.55", got)
	}
	m.handleKey("B")
	m.handleKey("B")
	if got := params.Get().Brightness; math.Abs(got-0.45) > 1e-9 {
		t.Fatalf("brightness = %v after stepping down, want 0.45", got)
	}
}

func TestHandleKeyModeToggle(t *testing.T) {
	params := engine.NewParams()
	m := New(params, stubFeatures{}, "test")

	m.handleKey("tab")
	if got := params.Get().Mode; got != engine.ModeProgram {
		t.Fatalf("mode = %v after tab, want program", got)
	}
	m.handleKey("tab")
	if got := params.Get().Mode; got != engine.ModeLayered {
		t.Fatalf("mode = %v after second tab, want layered", got)
	}
}

func TestHandleKeyCyclesByMode(t *testing.T) {
	params := engine.NewParams()
	m := New(params, stubFeatures{}, "test")

	m.handleKey("p")
	if got := params.Get().Pattern; got != engine.PatternCenter {
		t.Fatalf("pattern = %v after p in layered mode, want the next pattern", got)
	}

	params.SetMode(engine.ModeProgram)
	m.handleKey("p")
	if got := params.Get().Program; got != program.BounceMulti {
		t.Fatalf("program = %v after p in program mode, want bounce-multi", got)
	}
}

func TestHandleKeyReset(t *testing.T) {
	params := engine.NewParams()
	m := New(params, stubFeatures{}, "test")

	m.handleKey("b")
	m.handleKey("c")
	m.handleKey("tab")
	m.handleKey("0")
	if got := params.Get(); got != engine.DefaultValues() {
		t.Fatalf("parameters after reset = %+v, want defaults", got)
	}
}

func TestCycleWraps(t *testing.T) {
	options := []int{1, 2, 3}
	if got := cycle(options, 3, 1); got != 1 {
		t.Fatalf("cycle forward from the end = %d, want 1", got)
	}
	if got := cycle(options, 1, -1); got != 3 {
		t.Fatalf("cycle backward from the start = %d, want 3", got)
	}
	if got := cycle(options, 99, 1); got != 1 {
		t.Fatalf("cycle with an unknown current = %d, want the first option", got)
	}
}

func TestNextDivision(t *testing.T) {
	want := map[int]int{1: 2, 2: 4, 4: 8, 8: 16, 16: 1}
	for in, out := range want {
		if got := nextDivision(in); got != out {
			t.Fatalf("nextDivision(%d) = %d, want %d", in, got, out)
		}
	}
}
