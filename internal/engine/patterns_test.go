package engine

import (
	"testing"

	"github.com/googoolist/lightshow-2/internal/analyzer"
	"github.com/googoolist/lightshow-2/internal/config"
)

func TestPatternMirror(t *testing.T) {
	e, _ := newTestEngine(t, analyzer.Snapshot{})
	v := DefaultValues()
	v.Pattern = PatternMirror

	for i := range config.MaxLights {
		e.current[i] = config.RGB{R: uint8(i * 10)}
	}

	if got := e.patternColor(&v, 3, 0); got != e.current[0] {
		t.Fatalf("mirror fixture 3 = %v, want fixture 0's color %v", got, e.current[0])
	}
	if got := e.patternColor(&v, 2, 0); got != e.current[1] {
		t.Fatalf("mirror fixture 2 = %v, want fixture 1's color %v", got, e.current[1])
	}
	if got := e.patternColor(&v, 0, 0); got != e.current[0] {
		t.Fatalf("mirror left half changed: %v", got)
	}
}

func TestPatternAlternateDims(t *testing.T) {
	e, _ := newTestEngine(t, analyzer.Snapshot{})
	v := DefaultValues()
	v.Pattern = PatternAlternate
	e.current[0] = config.RGB{R: 200}
	e.current[1] = config.RGB{R: 200}

	// At t=0 the even fixtures are in phase, odd ones dimmed.
	if got := e.patternColor(&v, 0, 0); got != e.current[0] {
		t.Fatalf("in-phase fixture dimmed: %v", got)
	}
	if got := e.patternColor(&v, 1, 0); got.R != 60 {
		t.Fatalf("out-of-phase fixture = %v, want red dimmed to 60", got)
	}
	// Half a second later the phase flips.
	if got := e.patternColor(&v, 1, 0.5); got != e.current[1] {
		t.Fatalf("fixture 1 still dimmed after the phase flip: %v", got)
	}
}

func TestPatternSwellUsesSyncColors(t *testing.T) {
	e, _ := newTestEngine(t, analyzer.Snapshot{})
	v := DefaultValues()
	v.Pattern = PatternSwell
	e.current[2] = config.RGB{G: 123}

	if got := e.patternColor(&v, 2, 1.7); got != e.current[2] {
		t.Fatalf("swell color = %v, want the fixture's own color", got)
	}
}
