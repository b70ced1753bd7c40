package analyzer

import (
	"math"
	"testing"
)

func TestBeatTrackerSteadyTempo(t *testing.T) {
	b := newBeatTracker()
	for i := range 8 {
		if !b.accept(float64(i) * 0.5) {
			t.Fatalf("beat %d rejected", i)
		}
	}
	if math.Abs(b.bpm-120) > 0.01 {
		t.Fatalf("bpm = %v, want 120", b.bpm)
	}
}

func TestBeatTrackerDebounce(t *testing.T) {
	b := newBeatTracker()
	if !b.accept(1.0) {
		t.Fatalf("first beat rejected")
	}
	if b.accept(1.05) {
		t.Fatalf("beat inside the debounce window accepted")
	}
	if b.lastBeat != 1.0 {
		t.Fatalf("debounced beat changed lastBeat to %v", b.lastBeat)
	}
	if !b.accept(1.5) {
		t.Fatalf("beat past the debounce window rejected")
	}
}

func TestBeatTrackerClampsBPM(t *testing.T) {
	fast := newBeatTracker()
	for i := range 6 {
		fast.accept(float64(i) * 0.25) // 240 BPM raw
	}
	if fast.bpm != MaxBPM {
		t.Fatalf("fast bpm = %v, want clamp at %v", fast.bpm, float64(MaxBPM))
	}

	slow := newBeatTracker()
	for i := range 6 {
		slow.accept(float64(i) * 1.5) // 40 BPM raw
	}
	if slow.bpm != MinBPM {
		t.Fatalf("slow bpm = %v, want clamp at %v", slow.bpm, float64(MinBPM))
	}
}

func TestBeatTrackerDiscardsGlitchIntervals(t *testing.T) {
	b := newBeatTracker()
	b.accept(0)
	b.accept(3.0) // 3s gap, outside the plausible interval range
	if b.bpm != 0 {
		t.Fatalf("bpm = %v from glitch intervals, want 0", b.bpm)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		vals []float64
		want float64
	}{
		{[]float64{0.5}, 0.5},
		{[]float64{0.5, 0.7, 0.6}, 0.6},
		{[]float64{0.4, 0.8}, 0.6},
		{[]float64{1, 3, 2, 4}, 2.5},
	}
	for _, tt := range tests {
		if got := median(tt.vals); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("median(%v) = %v, want %v", tt.vals, got, tt.want)
		}
	}
}
