package engine

import (
	"math"
	"testing"

	"github.com/googoolist/lightshow-2/internal/analyzer"
	"github.com/googoolist/lightshow-2/internal/config"
)

func TestSpectrumColorFloor(t *testing.T) {
	r, g, b := spectrumColor(analyzer.Snapshot{})
	if r != 40 || g != 40 || b != 40 {
		t.Fatalf("quiet spectrum color = %v/%v/%v, want the 40 floor", r, g, b)
	}

	r, g, b = spectrumColor(analyzer.Snapshot{Bass: 1})
	if math.Abs(r-204) > 1e-9 || math.Abs(g-51) > 1e-9 || b != 0 {
		t.Fatalf("bass-heavy spectrum color = %v/%v/%v, want 204/51/0", r, g, b)
	}
}

func TestApplyMood(t *testing.T) {
	// Quiet passages shift cool: red drops, blue rises.
	r, g, b := applyMood(200, 200, 100, 0.0)
	if r >= 200 || b <= 100 {
		t.Fatalf("cool shift = r %v b %v, want red down and blue up", r, b)
	}

	// Loud passages shift warm.
	r, g, b = applyMood(200, 200, 100, 1.0)
	if r <= 200 || b >= 100 {
		t.Fatalf("warm shift = r %v b %v, want red up and blue down", r, b)
	}

	// Mid intensity leaves the color alone.
	r, g, b = applyMood(200, 200, 100, 0.5)
	if r != 200 || g != 200 || b != 100 {
		t.Fatalf("neutral band changed the color to %v/%v/%v", r, g, b)
	}
}

func TestApplyFrequencyCaps(t *testing.T) {
	r, g, b := applyFrequency(255, 255, 255, analyzer.Snapshot{Bass: 1, Mid: 1, High: 1})
	if r > 255 || g > 255 || b > 255 || r < 0 {
		t.Fatalf("frequency blend out of range: %v/%v/%v", r, g, b)
	}
}

func TestApplyGenre(t *testing.T) {
	v := DefaultValues()
	applyGenre(&v, analyzer.GenreEDM)
	if v.Smoothness != 0.2 || v.BeatSensitivity != 0.8 || v.StrobeLevel != 0.3 {
		t.Fatalf("edm adaptation = %+v", v)
	}

	v = DefaultValues()
	applyGenre(&v, analyzer.GenreAmbient)
	if !v.AmbientMode || v.Smoothness != 0.95 {
		t.Fatalf("ambient adaptation = %+v", v)
	}

	// Rock only recolors a rig still on the default theme.
	v = DefaultValues()
	v.Theme = config.ThemeOcean
	applyGenre(&v, analyzer.GenreRock)
	if v.Theme != config.ThemeOcean {
		t.Fatalf("rock adaptation overrode a user theme with %v", v.Theme)
	}
}

func TestApplyEchoHoldsAndDecays(t *testing.T) {
	e, _ := newTestEngine(t, analyzer.Snapshot{})
	v := DefaultValues()
	v.EchoEnabled = true
	v.EchoLength = 0.5

	frame := make([]byte, e.cfg.Channels)
	dimmer := e.cfg.Fixtures[0].Offset("dimmer")

	frame[dimmer] = 200
	e.applyEcho(&v, frame) // seeds the hold frame

	// The fixture goes dark; the echo keeps a decayed level on the channel.
	frame[dimmer] = 0
	e.applyEcho(&v, frame)
	if frame[dimmer] == 0 || frame[dimmer] > 200 {
		t.Fatalf("echo level = %d, want a decayed hold below 200", frame[dimmer])
	}
	first := frame[dimmer]

	frame[dimmer] = 0
	e.applyEcho(&v, frame)
	if frame[dimmer] >= first {
		t.Fatalf("echo did not keep decaying: %d then %d", first, frame[dimmer])
	}

	// A brighter live value replaces the hold immediately.
	frame[dimmer] = 250
	e.applyEcho(&v, frame)
	if frame[dimmer] != 250 {
		t.Fatalf("live peak = %d, want 250 to win over the hold", frame[dimmer])
	}

	// Disabling echo clears the hold state.
	v.EchoEnabled = false
	e.applyEcho(&v, frame)
	if e.echoHeld {
		t.Fatalf("echo hold survived being disabled")
	}
}
