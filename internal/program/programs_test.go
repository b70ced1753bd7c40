package program

import (
	"math"
	"testing"

	"github.com/googoolist/lightshow-2/internal/config"
)

func TestBounceSameWalksAndRotates(t *testing.T) {
	p := &bounceSame{}
	out := make([]Light, 4)
	palette := config.ProgramPalette

	f := testFrame(true)
	f.Beat = true
	p.Render(f, out)
	if out[1].Brightness != 1.0 || out[0].Brightness != 0.5 {
		t.Fatalf("after one beat head/tail = %v/%v, want 1.0/0.5", out[1].Brightness, out[0].Brightness)
	}
	if out[1].Color != palette[0] {
		t.Fatalf("head color = %v, want %v", out[1].Color, palette[0])
	}

	// Two more beats reach the far end and rotate the color.
	p.Render(f, out)
	p.Render(f, out)
	if p.colorIdx != 1 {
		t.Fatalf("colorIdx = %d after hitting the end, want 1", p.colorIdx)
	}
	if out[3].Brightness != 1.0 || out[3].Color != palette[1] {
		t.Fatalf("head at the end = %v %v, want full brightness in the next color", out[3].Brightness, out[3].Color)
	}
}

func TestStrobeTogglesOnBeat(t *testing.T) {
	p := &strobe{}
	out := make([]Light, 4)

	f := testFrame(true)
	f.Beat = true
	p.Render(f, out)
	if out[0].Brightness != 0.5 {
		t.Fatalf("flash brightness = %v at zero intensity, want 0.5", out[0].Brightness)
	}

	// Holding between beats keeps the flash lit.
	off := testFrame(false)
	p.Render(off, out)
	if out[0].Brightness != 0.5 {
		t.Fatalf("flash dropped between beats")
	}

	p.Render(f, out)
	for i := range out {
		if out[i] != (Light{}) {
			t.Fatalf("fixture %d still lit on the off beat: %+v", i, out[i])
		}
	}
}

func TestVUMeterPeakDecay(t *testing.T) {
	p := &vuMeter{}
	out := make([]Light, 8)

	f := testFrame(false)
	f.Intensity = 1.0
	p.Render(f, out)
	for i := range out {
		if out[i].Brightness != 1.0 {
			t.Fatalf("fixture %d = %v at full volume, want fully lit", i, out[i].Brightness)
		}
	}

	f.Intensity = 0
	p.Render(f, out)
	white := config.RGB{R: 255, G: 255, B: 255}
	if out[7].Color != white || out[7].Brightness != 0.5 {
		t.Fatalf("peak marker = %+v, want a half-bright white hold", out[7])
	}
	for i := range 7 {
		if out[i].Brightness != 0 {
			t.Fatalf("fixture %d lit after the volume died", i)
		}
	}
}

func TestChaseWrapChangesColor(t *testing.T) {
	p := &chase{}
	out := make([]Light, 4)
	palette := config.ProgramPalette

	f := testFrame(false)
	p.Render(f, out)
	if out[0].Brightness != 1.0 || out[0].Color != palette[0] {
		t.Fatalf("head = %v %v, want full brightness in the first color", out[0].Brightness, out[0].Color)
	}

	for range 19 {
		p.Render(f, out)
	}
	if p.colorIdx != 1 {
		t.Fatalf("colorIdx = %d after a full sweep, want 1", p.colorIdx)
	}
}

func TestCenterBurstFourFixtures(t *testing.T) {
	p := &centerBurst{}
	out := make([]Light, 4)

	f := testFrame(true)
	f.Beat = true
	p.Render(f, out)
	if math.Abs(out[1].Brightness-0.35) > 1e-9 || math.Abs(out[0].Brightness-0.05) > 1e-9 {
		t.Fatalf("burst start center/outer = %v/%v, want 0.35/0.05", out[1].Brightness, out[0].Brightness)
	}

	hold := testFrame(false)
	for range 3 {
		p.Render(hold, out)
	}
	if math.Abs(out[0].Brightness-0.7) > 1e-9 || out[1].Brightness != 0 {
		t.Fatalf("burst end outer/center = %v/%v, want 0.7/0", out[0].Brightness, out[1].Brightness)
	}
}

func TestSwellSameRotatesColorOnBeat(t *testing.T) {
	p := &swellSame{}
	out := make([]Light, 4)
	palette := config.ProgramPalette

	f := testFrame(true)
	f.Beat = true
	p.Render(f, out)
	if out[0].Color != palette[1] {
		t.Fatalf("color = %v after a beat, want %v", out[0].Color, palette[1])
	}
	if out[0].Brightness < 0.1 || out[0].Brightness > 1.0 {
		t.Fatalf("swell brightness %v out of range", out[0].Brightness)
	}
	for i := 1; i < len(out); i++ {
		if out[i] != out[0] {
			t.Fatalf("fixtures diverged in a same-color swell")
		}
	}
}

func TestRippleBounceGlides(t *testing.T) {
	p := &rippleBounce{}
	out := make([]Light, 4)

	f := testFrame(false)
	f.Intensity = 1.0
	p.Render(f, out)
	if math.Abs(p.pos-rippleBounceGlide) > 1e-9 {
		t.Fatalf("pos = %v after one silent tick, want the glide step", p.pos)
	}

	beat := testFrame(true)
	beat.Beat = true
	beat.Intensity = 1.0
	p.Render(beat, out)
	if p.pos <= 1.0 {
		t.Fatalf("pos = %v after a beat, want a full fixture step plus glide", p.pos)
	}
	if out[1].Brightness <= out[3].Brightness {
		t.Fatalf("head not brighter than the far end: %v vs %v", out[1].Brightness, out[3].Brightness)
	}
}
