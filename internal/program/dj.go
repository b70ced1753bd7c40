package program

// Energy tiers for the autopilot, scored from smoothed intensity, bass and
// highs.
type energyTier int

const (
	energyChill energyTier = iota
	energyGroovy
	energyEnergetic
	energyPeak
)

const djAlpha = 0.1 // smoothing factor for the running feature averages

// dj is the autopilot: it watches the music's energy and switches between
// the other programs on its own, holding each for a minimum number of
// beats so transitions land musically.
type dj struct {
	current      Kind
	prog         Program
	programBeats int
	minBeats     int

	intensityAvg float64
	bassAvg      float64
	highAvg      float64
	history      []float64

	buildDetected bool
	dropCountdown int
}

func newDJ() *dj {
	// Built directly rather than through New so the constructors table,
	// which references newDJ, has no initialization cycle.
	return &dj{
		current:      Breathing,
		prog:         &breathing{},
		minBeats:     16,
		intensityAvg: 0.3,
		bassAvg:      0.3,
		highAvg:      0.3,
	}
}

func (p *dj) Render(f *Frame, out []Light) {
	p.intensityAvg = djAlpha*f.Intensity + (1-djAlpha)*p.intensityAvg
	p.bassAvg = djAlpha*f.Bass + (1-djAlpha)*p.bassAvg
	p.highAvg = djAlpha*f.High + (1-djAlpha)*p.highAvg

	p.history = append(p.history, f.Intensity)
	if len(p.history) > 30 {
		p.history = p.history[1:]
	}

	if f.RawBeat {
		p.programBeats++
	}

	if len(p.history) >= 30 {
		recent := meanOf(p.history[len(p.history)-10:])
		older := meanOf(p.history[:10])

		if recent > older*1.3 && p.intensityAvg > 0.6 {
			p.buildDetected = true
			p.dropCountdown = 8
		}
		if f.Intensity > 0.9 && p.bassAvg > 0.7 {
			p.dropCountdown = 0
			p.buildDetected = false
		}
	}

	if p.programBeats >= p.minBeats {
		p.pick(f)
	}

	if p.dropCountdown > 0 {
		p.dropCountdown--
		// Build tension right before the expected drop.
		if p.dropCountdown < 4 && p.current != SwellMulti && p.current != Pulse {
			p.switchTo(SwellMulti, 4)
		}
	}

	p.prog.Render(f, out)
}

func (p *dj) pick(f *Frame) {
	var choices []Kind
	minBeats := p.minBeats

	switch {
	case p.dropCountdown == 0 && p.buildDetected:
		choices = []Kind{CenterBurst, Strobe, ColorRipples, Disco}
		minBeats = 8
		p.buildDetected = false

	default:
		switch p.tier() {
		case energyChill:
			choices = []Kind{Breathing, SwellSame, Spiral}
			if p.highAvg > 0.5 {
				choices = append(choices, Kaleidoscope)
			}
			minBeats = 24
		case energyGroovy:
			choices = []Kind{BounceSame, BounceMulti, Ripple, RippleBounce, Chase, Alternating}
			if f.BPM > 100 && f.BPM < 130 {
				choices = append(choices, BounceSame, RippleBounce)
			}
			minBeats = 16
		case energyEnergetic:
			choices = []Kind{Disco, Pulse, BounceDiscrete, RippleBounceMulti, Chase, Alternating}
			if p.highAvg > 0.6 {
				choices = append(choices, Psych, Interference)
			}
			minBeats = 12
		case energyPeak:
			choices = []Kind{Strobe, CenterBurst, ColorRipples, Psych, Kaleidoscope, Interference}
			if p.bassAvg > 0.7 {
				choices = append(choices, Pulse)
			}
			minBeats = 8
		}
	}

	next := p.choose(f, choices)
	if next != p.current {
		p.switchTo(next, minBeats)
	} else {
		p.minBeats = minBeats
	}
}

// choose picks a random program from choices, avoiding the current one when
// an alternative exists.
func (p *dj) choose(f *Frame, choices []Kind) Kind {
	others := choices[:0:0]
	for _, k := range choices {
		if k != p.current {
			others = append(others, k)
		}
	}
	if len(others) == 0 {
		return p.current
	}
	return others[f.Rand.Intn(len(others))]
}

func (p *dj) switchTo(k Kind, minBeats int) {
	p.current = k
	p.prog = New(k)
	p.programBeats = 0
	p.minBeats = minBeats
}

func (p *dj) tier() energyTier {
	score := p.intensityAvg*0.5 + p.bassAvg*0.3 + p.highAvg*0.2
	switch {
	case score < 0.25:
		return energyChill
	case score < 0.45:
		return energyGroovy
	case score < 0.65:
		return energyEnergetic
	default:
		return energyPeak
	}
}

func meanOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
