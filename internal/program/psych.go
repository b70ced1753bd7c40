package program

import (
	"math"

	"github.com/googoolist/lightshow-2/internal/config"
)

// discoState is one fixture's independent fade.
type discoState struct {
	color     config.RGB
	level     float64
	fadeSpeed float64
	dir       float64
}

// disco fades each fixture in and out on its own clock, recoloring as it
// comes back from dark and occasionally on beats.
type disco struct {
	states []discoState
}

func (p *disco) Render(f *Frame, out []Light) {
	for len(p.states) < len(out) {
		p.states = append(p.states, discoState{
			color:     f.Palette[f.Rand.Intn(len(f.Palette))],
			fadeSpeed: 0.01 + f.Rand.Float64()*0.03,
			dir:       randDir(f),
		})
	}

	if f.Beat {
		for i := range p.states {
			if f.Rand.Float64() < 0.3 {
				p.states[i].color = f.Palette[f.Rand.Intn(len(f.Palette))]
				p.states[i].dir = randDir(f)
				p.states[i].fadeSpeed = 0.01 + f.Rand.Float64()*0.03
			}
		}
	}

	for i := range out {
		st := &p.states[i]
		st.level += st.fadeSpeed * st.dir
		if st.level >= 1 {
			st.level = 1
			st.dir = -1
		} else if st.level <= 0 {
			st.level = 0
			st.dir = 1
			st.color = f.Palette[f.Rand.Intn(len(f.Palette))]
		}
		out[i] = Light{Color: st.color, Brightness: st.level}
	}
}

func randDir(f *Frame) float64 {
	if f.Rand.Intn(2) == 0 {
		return 1
	}
	return -1
}

// Complementary pairs the psych program morphs between.
var psychPairs = [][2]config.RGB{
	{{R: 255}, {G: 255, B: 255}},
	{{B: 255}, {R: 255, G: 128}},
	{{G: 255}, {R: 255, B: 255}},
	{{R: 255, G: 255}, {R: 128, B: 255}},
	{{R: 255, B: 128}, {G: 255, B: 128}},
}

// psych cycles through five kaleidoscopic sub-patterns, morphing between
// complementary color pairs, with band-driven modulation and flicker. The
// sub-pattern rotates every 16 beats.
type psych struct {
	patternType  int
	phase        float64
	spiralAngle  float64
	morph        float64
	beatCount    int
	phaseOffsets []float64
	flicker      []float64
}

func newPsych() *psych {
	return &psych{}
}

func (p *psych) ensure(f *Frame, n int) {
	for len(p.phaseOffsets) < n {
		p.phaseOffsets = append(p.phaseOffsets, f.Rand.Float64()*2*math.Pi)
		p.flicker = append(p.flicker, f.Rand.Float64()*0.15)
	}
}

func (p *psych) reshuffle(f *Frame) {
	for i := range p.phaseOffsets {
		p.phaseOffsets[i] = f.Rand.Float64() * 2 * math.Pi
		p.flicker[i] = f.Rand.Float64() * 0.15
	}
}

func (p *psych) Render(f *Frame, out []Light) {
	p.ensure(f, len(out))

	if f.RawBeat {
		p.beatCount++
		if p.beatCount >= 16 {
			p.patternType = (p.patternType + 1) % 5
			p.beatCount = 0
			p.reshuffle(f)
		}
	}

	p.phase += (0.5 + f.Bass*0.5) / f.division() * f.Dt
	p.spiralAngle += (f.Mid*0.1 + 0.02) * f.Dt
	p.morph += (f.High*0.05 + 0.01) * f.Dt

	pairIdx := int(p.morph) % len(psychPairs)
	nextIdx := (pairIdx + 1) % len(psychPairs)
	morphT := p.morph - math.Floor(p.morph)

	pair := psychPairs[pairIdx]
	nextPair := psychPairs[nextIdx]

	for i := range out {
		var value float64
		switch p.patternType {
		case 0: // flowing waves
			phase := p.phase + p.phaseOffsets[i]
			w1 := (math.Sin(phase*2*math.Pi) + 1) / 2
			w2 := (math.Sin(phase*3*math.Pi+p.spiralAngle) + 1) / 2
			value = w1*0.6 + w2*0.4
		case 1: // spiral
			angle := float64(i)/float64(len(out))*2*math.Pi + p.spiralAngle
			value = (math.Sin(angle*2) + 1) / 2
		case 2: // breathing
			value = (math.Sin(p.phase*2+p.phaseOffsets[i]) + 1) / 2
		case 3: // interference
			w1 := math.Sin((p.phase + float64(i)*0.5) * 2 * math.Pi)
			w2 := math.Sin((p.phase*1.5 - float64(i)*0.3) * 2 * math.Pi)
			value = (w1*w2 + 1) / 2
		default: // mirrored
			mi := i
			if i >= len(out)/2 {
				mi = len(out) - 1 - i
			}
			value = (math.Sin((p.phase+float64(mi)*0.4)*2*math.Pi) + 1) / 2
		}

		side := 0
		if value >= 0.5 {
			side = 1
		}
		color := lerpColor(pair[side], nextPair[side], morphT)

		color = config.RGB{
			R: clampByte(float64(color.R) * (1 + f.Bass*0.3)),
			G: clampByte(float64(color.G) * (1 + f.Mid*0.3)),
			B: clampByte(float64(color.B) * (1 + f.High*0.3)),
		}

		flicker := 1.0 - p.flicker[i]*(0.5+f.High*0.5)
		brightness := (0.3 + value*0.5) * flicker * (0.7 + f.Intensity*0.3)

		if f.Rand.Float64() < 0.1 {
			p.flicker[i] = f.Rand.Float64() * 0.15
		}

		out[i] = Light{Color: color, Brightness: brightness}
	}
}

// kaleidoscope rotates a mirrored wave around the row's center, blending
// two adjacent palette colors. Bass speeds the rotation.
type kaleidoscope struct {
	angle    float64
	colorIdx int
}

func (p *kaleidoscope) Render(f *Frame, out []Light) {
	p.angle += (0.05 + f.Bass*0.1) / f.division()
	if f.Beat {
		p.colorIdx = (p.colorIdx + 1) % len(f.Palette)
	}

	c1 := f.Palette[p.colorIdx]
	c2 := f.Palette[(p.colorIdx+1)%len(f.Palette)]
	center := float64(len(out)) / 2

	for i := range out {
		fromCenter := absFloat(float64(i)-center) / center
		wave := (math.Sin((p.angle+fromCenter*math.Pi)*2) + 1) / 2

		out[i] = Light{
			Color:      lerpColor(c1, c2, wave),
			Brightness: (1 - fromCenter*0.3) * (0.5 + f.Intensity*0.5),
		}
	}
}

// spiral flows a wave around the row with a slowly drifting hue, mids
// driving the flow speed.
type spiral struct {
	pos        float64
	colorPhase float64
}

func (p *spiral) Render(f *Frame, out []Light) {
	p.pos += (0.1 + f.Mid*0.2) / f.division()
	p.colorPhase += 0.02

	for i := range out {
		offset := float64(i) / float64(len(out)) * 2 * math.Pi
		wave := (math.Sin(p.pos*2*math.Pi+offset) + 1) / 2

		colorPos := math.Mod(p.colorPhase+wave, 1)
		idx := int(colorPos * float64(len(f.Palette)))
		t := colorPos*float64(len(f.Palette)) - float64(idx)
		idx %= len(f.Palette)

		out[i] = Light{
			Color:      lerpColor(f.Palette[idx], f.Palette[(idx+1)%len(f.Palette)], t),
			Brightness: 0.3 + wave*0.5 + f.Intensity*0.2,
		}
	}
}

// interference runs two incommensurate waves per fixture and lights by
// their product, highs driving the wave speeds.
type interference struct {
	phases [][2]float64
}

func (p *interference) Render(f *Frame, out []Light) {
	for len(p.phases) < len(out) {
		i := float64(len(p.phases))
		p.phases = append(p.phases, [2]float64{i * 0.7, i * 0.5})
	}

	speed1 := (0.05 + f.High*0.05) / f.division()
	speed2 := (0.03 + f.High*0.07) / f.division()

	for i := range out {
		p.phases[i][0] += speed1
		p.phases[i][1] += speed2

		w1 := math.Sin(p.phases[i][0] * 2 * math.Pi)
		w2 := math.Sin(p.phases[i][1] * 3 * math.Pi)
		v := (w1*w2 + 1) / 2

		var color config.RGB
		switch {
		case v < 0.33:
			color = f.Palette[0]
		case v < 0.67:
			color = f.Palette[len(f.Palette)/2]
		default:
			color = f.Palette[len(f.Palette)-1]
		}
		color = scaleColor(color, 0.5+v*0.5)

		out[i] = Light{Color: color, Brightness: 0.3 + v*0.4 + f.Intensity*0.3}
	}
}
