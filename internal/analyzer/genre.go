package analyzer

const (
	genreDecay     = 0.99
	genreThreshold = 0.5
)

// genreDetector accumulates decaying per-genre scores from simple rules on
// BPM, bass energy and beat presence. It is a soft hint, not a classifier:
// the highest score is only reported once it clears genreThreshold.
type genreDetector struct {
	scores map[Genre]float64
}

func newGenreDetector() *genreDetector {
	return &genreDetector{scores: map[Genre]float64{
		GenreEDM: 0, GenreHipHop: 0, GenreRock: 0, GenreJazz: 0, GenreAmbient: 0,
	}}
}

func (g *genreDetector) update(bpm, bass float64, hasBeat bool) {
	for genre := range g.scores {
		g.scores[genre] *= genreDecay
	}

	if bpm >= 120 && bpm <= 140 && bass > 0.6 && hasBeat {
		g.scores[GenreEDM] += 0.1
	}
	if bpm >= 80 && bpm <= 100 && bass > 0.7 {
		g.scores[GenreHipHop] += 0.1
	}
	if bpm >= 100 && bpm <= 140 && bass > 0.3 && bass < 0.7 {
		g.scores[GenreRock] += 0.1
	}
	if bpm >= 60 && bpm <= 150 && !hasBeat {
		g.scores[GenreJazz] += 0.05
	}
	if (bpm < 80 || bpm == 0) && bass < 0.3 {
		g.scores[GenreAmbient] += 0.1
	}
}

// current returns the dominant genre, or GenreAuto while no score has
// cleared the reporting threshold.
func (g *genreDetector) current() Genre {
	best := GenreAuto
	bestScore := genreThreshold
	for genre, score := range g.scores {
		if score > bestScore {
			best = genre
			bestScore = score
		}
	}
	return best
}
