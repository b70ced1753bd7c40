package analyzer

import "testing"

func TestGenreDetectorEDM(t *testing.T) {
	g := newGenreDetector()

	for range 5 {
		g.update(128, 0.7, true)
	}
	if got := g.current(); got != GenreAuto {
		t.Fatalf("genre reported as %v before clearing the threshold", got)
	}

	g.update(128, 0.7, true)
	if got := g.current(); got != GenreEDM {
		t.Fatalf("genre = %v, want edm", got)
	}
}

func TestGenreDetectorRules(t *testing.T) {
	tests := []struct {
		name    string
		bpm     float64
		bass    float64
		hasBeat bool
		updates int
		want    Genre
	}{
		{"hiphop", 90, 0.8, true, 6, GenreHipHop},
		{"rock", 120, 0.5, true, 6, GenreRock},
		{"jazz", 100, 0.2, false, 11, GenreJazz},
		{"ambient", 0, 0.1, false, 6, GenreAmbient},
	}
	for _, tt := range tests {
		g := newGenreDetector()
		for range tt.updates {
			g.update(tt.bpm, tt.bass, tt.hasBeat)
		}
		if got := g.current(); got != tt.want {
			t.Fatalf("%s: genre = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGenreDetectorDecay(t *testing.T) {
	g := newGenreDetector()
	for range 6 {
		g.update(128, 0.7, true)
	}
	if g.current() != GenreEDM {
		t.Fatalf("precondition: edm not established")
	}

	// A tempo and bass profile matching no rule: scores only decay.
	for range 20 {
		g.update(150, 0.2, true)
	}
	if got := g.current(); got != GenreAuto {
		t.Fatalf("genre = %v after decay, want auto", got)
	}
}
