package engine

import (
	"testing"

	"github.com/googoolist/lightshow-2/internal/analyzer"
	"github.com/googoolist/lightshow-2/internal/config"
)

func TestInitColorsSingleColor(t *testing.T) {
	e, _ := newTestEngine(t, analyzer.Snapshot{})
	v := DefaultValues()
	v.RainbowLevel = 0.1

	e.initColors(&v)
	first := e.current[0]
	if first != config.SmoothPalette[0] {
		t.Fatalf("low rainbow starts at %v, want the first palette color", first)
	}
	for i := 1; i < v.ActiveLights; i++ {
		if e.current[i] != first {
			t.Fatalf("fixture %d = %v, want all fixtures on %v", i, e.current[i], first)
		}
	}
	for i := v.ActiveLights; i < config.MaxLights; i++ {
		if (e.current[i] != config.RGB{}) {
			t.Fatalf("inactive fixture %d initialized lit", i)
		}
	}
}

func TestInitColorsSpreadsAtHighRainbow(t *testing.T) {
	e, _ := newTestEngine(t, analyzer.Snapshot{})
	v := DefaultValues()
	v.RainbowLevel = 0.9

	e.initColors(&v)
	if e.current[0] == e.current[1] {
		t.Fatalf("high rainbow left adjacent fixtures identical: %v", e.current[0])
	}
}

func TestInitColorsTierBoundary(t *testing.T) {
	tests := []struct {
		rainbow float64
		uniform bool
	}{
		{0.19, true},
		{0.20, false},
		{0.21, false},
	}
	for _, tt := range tests {
		e, _ := newTestEngine(t, analyzer.Snapshot{})
		v := DefaultValues()
		v.RainbowLevel = tt.rainbow

		e.initColors(&v)
		uniform := true
		for i := 1; i < v.ActiveLights; i++ {
			if e.current[i] != e.current[0] {
				uniform = false
			}
		}
		if uniform != tt.uniform {
			t.Fatalf("rainbow %v: uniform = %v, want %v", tt.rainbow, uniform, tt.uniform)
		}
	}
}

func TestSelectNewColorsStepsTogether(t *testing.T) {
	e, _ := newTestEngine(t, analyzer.Snapshot{})
	v := DefaultValues()
	v.RainbowLevel = 0.1

	for i := range config.MaxLights {
		e.target[i] = config.SmoothPalette[2]
	}
	e.selectNewColors(&v)

	want := config.SmoothPalette[3]
	for i := 0; i < v.ActiveLights; i++ {
		if e.target[i] != want {
			t.Fatalf("fixture %d target = %v, want the next palette color %v", i, e.target[i], want)
		}
		if e.fadeProgress[i] != 0 {
			t.Fatalf("fixture %d fade not restarted", i)
		}
	}
}

func TestSelectNewColorsUniqueAtFullRainbow(t *testing.T) {
	e, _ := newTestEngine(t, analyzer.Snapshot{})
	v := DefaultValues()
	v.RainbowLevel = 0.9

	e.selectNewColors(&v)
	seen := map[config.RGB]bool{}
	for i := 0; i < v.ActiveLights; i++ {
		if seen[e.target[i]] {
			t.Fatalf("full rainbow repeated color %v", e.target[i])
		}
		seen[e.target[i]] = true
	}
}

func TestUpdateColorFadesReachesTarget(t *testing.T) {
	e, _ := newTestEngine(t, analyzer.Snapshot{})
	v := DefaultValues()
	v.Smoothness = 0 // 0.1s fade

	e.current[0] = config.RGB{}
	e.target[0] = config.RGB{R: 255}
	e.fadeProgress[0] = 0

	for range 5 {
		e.updateColorFades(&v)
	}
	if e.current[0] != e.target[0] {
		t.Fatalf("current = %v after the fade window, want %v", e.current[0], e.target[0])
	}
	if e.fadeProgress[0] != 1 {
		t.Fatalf("fadeProgress = %v, want 1", e.fadeProgress[0])
	}
}
