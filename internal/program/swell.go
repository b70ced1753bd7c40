package program

import (
	"math"

	"github.com/googoolist/lightshow-2/internal/config"
)

// swellBrightness converts a phase in cycles to a sine swell that never
// reaches full darkness.
func swellBrightness(phase float64) float64 {
	return 0.1 + 0.9*((math.Sin(phase*2*math.Pi)+1)/2)
}

// swellSame swells every fixture together in one color, rotating the color
// on gated beats.
type swellSame struct {
	phase    float64
	colorIdx int
}

func (p *swellSame) Render(f *Frame, out []Light) {
	if f.Beat {
		p.colorIdx = (p.colorIdx + 1) % len(f.Palette)
	}
	p.phase += 0.5 / f.division() * f.Dt

	color := f.Palette[p.colorIdx]
	b := swellBrightness(p.phase)
	for i := range out {
		out[i] = Light{Color: color, Brightness: b}
	}
}

// swellMulti swells every fixture together, each holding a different
// palette color that rotates on gated beats.
type swellMulti struct {
	phase    float64
	colorIdx int
	colors   []config.RGB
}

func (p *swellMulti) Render(f *Frame, out []Light) {
	p.colors = growColors(p.colors, len(out), f.Palette[0])

	if f.Beat {
		for i := range out {
			p.colors[i] = f.Palette[(p.colorIdx+i)%len(f.Palette)]
		}
		p.colorIdx = (p.colorIdx + 1) % len(f.Palette)
	}
	p.phase += 0.5 / f.division() * f.Dt

	b := swellBrightness(p.phase)
	for i := range out {
		out[i] = Light{Color: p.colors[i], Brightness: b}
	}
}

// pulse drives every fixture's brightness straight from the volume
// envelope.
type pulse struct {
	colorIdx int
}

func (p *pulse) Render(f *Frame, out []Light) {
	if f.Beat {
		p.colorIdx = (p.colorIdx + 1) % len(f.Palette)
	}

	color := f.Palette[p.colorIdx]
	b := 0.1 + f.Intensity*0.9
	for i := range out {
		out[i] = Light{Color: color, Brightness: b}
	}
}

// breathing gives each fixture its own slow sine phase, with bass speeding
// the breath up and complementary colors on odd fixtures.
type breathing struct {
	phases []float64
}

func (p *breathing) Render(f *Frame, out []Light) {
	for len(p.phases) < len(out) {
		p.phases = append(p.phases, float64(len(p.phases))*0.3)
	}

	rate := (0.03 + f.Bass*0.02) / f.division()
	for i := range out {
		p.phases[i] += rate
		breath := (math.Sin(p.phases[i]) + 1) / 2

		offset := math.Mod(p.phases[i]*0.1, 1)
		color := f.Palette[int(offset*float64(len(f.Palette)))%len(f.Palette)]
		if i%2 == 1 {
			color = complement(color)
		}

		out[i] = Light{
			Color:      color,
			Brightness: 0.2 + breath*0.6 + f.Intensity*0.2,
		}
	}
}

// strobe flips all fixtures on and off on gated beats, changing color on
// each flash.
type strobe struct {
	on       bool
	colorIdx int
}

func (p *strobe) Render(f *Frame, out []Light) {
	if f.Beat {
		p.on = !p.on
		if p.on {
			p.colorIdx = (p.colorIdx + 1) % len(f.Palette)
		}
	}

	if !p.on {
		for i := range out {
			out[i] = Light{}
		}
		return
	}

	color := f.Palette[p.colorIdx]
	b := 0.5 + f.Intensity*0.5
	for i := range out {
		out[i] = Light{Color: color, Brightness: b}
	}
}

// alternating flips even and odd fixtures between a bright and a dim color
// on gated beats.
type alternating struct {
	state    bool
	colorIdx int
}

func (p *alternating) Render(f *Frame, out []Light) {
	if f.Beat {
		p.state = !p.state
		p.colorIdx = (p.colorIdx + 1) % len(f.Palette)
	}

	color1 := f.Palette[p.colorIdx]
	color2 := f.Palette[(p.colorIdx+len(f.Palette)/2)%len(f.Palette)]
	mod := 0.5 + f.Intensity*0.5

	for i := range out {
		even := i%2 == 0
		if even == p.state {
			out[i] = Light{Color: color1, Brightness: 0.8 * mod}
		} else {
			out[i] = Light{Color: color2, Brightness: 0.3 * mod}
		}
	}
}
