package program

import "testing"

func TestNewDJStartsOnBreathing(t *testing.T) {
	p := newDJ()
	if p.current != Breathing {
		t.Fatalf("autopilot starts on %v, want Breathing", p.current)
	}
	if _, ok := p.prog.(*breathing); !ok {
		t.Fatalf("autopilot starting program is %T, want *breathing", p.prog)
	}
	// The registry path must hand out the same starting state.
	d, ok := New(DJ).(*dj)
	if !ok {
		t.Fatalf("New(DJ) did not return the autopilot")
	}
	if d.current != Breathing {
		t.Fatalf("New(DJ) starts on %v, want Breathing", d.current)
	}
}

func TestDJTiers(t *testing.T) {
	tests := []struct {
		intensity, bass, high float64
		want                  energyTier
	}{
		{0.1, 0.1, 0.1, energyChill},
		{0.3, 0.3, 0.3, energyGroovy},
		{0.5, 0.5, 0.5, energyEnergetic},
		{0.8, 0.8, 0.8, energyPeak},
	}
	for _, tt := range tests {
		p := newDJ()
		p.intensityAvg = tt.intensity
		p.bassAvg = tt.bass
		p.highAvg = tt.high
		if got := p.tier(); got != tt.want {
			t.Fatalf("tier(%v, %v, %v) = %v, want %v", tt.intensity, tt.bass, tt.high, got, tt.want)
		}
	}
}

func TestDJHoldsMinimumBeats(t *testing.T) {
	p := newDJ()
	out := make([]Light, 4)

	quiet := func() *Frame {
		f := testFrame(true)
		f.Beat = true
		f.Intensity = 0.1
		f.Bass = 0.1
		f.High = 0.1
		return f
	}

	for range 15 {
		p.Render(quiet(), out)
	}
	if p.current != Breathing {
		t.Fatalf("autopilot switched to %v before its minimum hold", p.current)
	}

	p.Render(quiet(), out)
	if p.current == Breathing {
		t.Fatalf("autopilot did not switch after %d beats", p.programBeats)
	}
	if p.current != SwellSame && p.current != Spiral {
		t.Fatalf("chill pick = %v, want a chill-tier program", p.current)
	}
	if p.minBeats != 24 || p.programBeats != 0 {
		t.Fatalf("hold not reset: minBeats %d, programBeats %d", p.minBeats, p.programBeats)
	}
}

func TestDJChooseAvoidsCurrent(t *testing.T) {
	p := newDJ()
	f := testFrame(false)
	for range 20 {
		if got := p.choose(f, []Kind{Breathing, Spiral}); got != Spiral {
			t.Fatalf("choose picked the current program %v", got)
		}
	}
	if got := p.choose(f, []Kind{Breathing}); got != Breathing {
		t.Fatalf("choose with no alternative = %v, want the current program", got)
	}
}
