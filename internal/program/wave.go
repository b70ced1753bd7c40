package program

import (
	"math"

	"github.com/googoolist/lightshow-2/internal/config"
)

// chase runs a head continuously in one direction with a fading tail,
// changing color on each wrap.
type chase struct {
	pos      float64
	colorIdx int
}

func (p *chase) Render(f *Frame, out []Light) {
	p.pos += 0.2 / f.division()
	if p.pos >= float64(len(out)) {
		p.pos = 0
		p.colorIdx = (p.colorIdx + 1) % len(f.Palette)
	}

	color := f.Palette[p.colorIdx]
	for i := range out {
		d := absFloat(float64(i) - p.pos)
		if wrap := absFloat(float64(i) - (p.pos + float64(len(out)))); wrap < d {
			d = wrap
		}

		var b float64
		switch {
		case d < 1:
			b = 1.0
		case d < 2:
			b = 0.5
		case d < 3:
			b = 0.2
		default:
			b = 0.05
		}
		out[i] = Light{Color: color, Brightness: b}
	}
}

// ripple flows three overlapping waves across the row, each in its own
// palette color, mixed additively.
type ripple struct {
	positions []float64
}

func newRipple() *ripple {
	return &ripple{positions: []float64{0, 0.2, 0.4}}
}

func (p *ripple) Render(f *Frame, out []Light) {
	speed := 0.1 / f.division()
	for i := range p.positions {
		p.positions[i] += speed
		if p.positions[i] >= float64(len(out)+5) {
			p.positions[i] = -5
		}
	}

	for i := range out {
		brightness := 0.05
		var r, g, b float64

		for waveIdx, pos := range p.positions {
			d := absFloat(float64(i) - pos)
			if d >= 3 {
				continue
			}
			wb := (1.0 - d/3.0) * 0.7
			wc := f.Palette[(waveIdx*3)%len(f.Palette)]
			r += float64(wc.R) * wb
			g += float64(wc.G) * wb
			b += float64(wc.B) * wb
			brightness = math.Min(1.0, brightness+wb)
		}

		out[i] = Light{
			Color:      config.RGB{R: clampByte(r), G: clampByte(g), B: clampByte(b)},
			Brightness: brightness,
		}
	}
}

// colorRipple is one expanding wavefront launched from a random fixture.
type colorRipple struct {
	position float64
	radius   float64
	color    config.RGB
	speed    float64
}

// colorRipples launches a ripple on each gated beat (up to three alive at
// once) and renders the fixtures each wavefront crosses.
type colorRipples struct {
	active []colorRipple
}

func (p *colorRipples) Render(f *Frame, out []Light) {
	if f.Beat && len(p.active) < 3 {
		p.active = append(p.active, colorRipple{
			position: float64(f.Rand.Intn(len(out))),
			color:    f.Palette[f.Rand.Intn(len(f.Palette))],
			speed:    0.1 + f.Rand.Float64()*0.1,
		})
	}

	alive := p.active[:0]
	for _, rp := range p.active {
		rp.radius += rp.speed / f.division()
		if rp.radius <= float64(len(out)) {
			alive = append(alive, rp)
		}
	}
	p.active = alive

	for i := range out {
		var r, g, b, total float64
		hits := 0

		for _, rp := range p.active {
			d := absFloat(float64(i) - rp.position)
			if absFloat(d-rp.radius) >= 1.5 {
				continue
			}
			// Bell curve around the wavefront.
			w := math.Exp(-((d - rp.radius) * (d - rp.radius)) / 0.5)
			r += float64(rp.color.R) * w
			g += float64(rp.color.G) * w
			b += float64(rp.color.B) * w
			total += w
			hits++
		}

		var color config.RGB
		var brightness float64
		if hits > 0 {
			n := float64(hits)
			color = config.RGB{R: clampByte(r / n), G: clampByte(g / n), B: clampByte(b / n)}
			brightness = math.Min(1.0, total/n)
		} else {
			color = f.Palette[0]
			brightness = 0.1
		}

		out[i] = Light{Color: color, Brightness: brightness * (0.5 + f.Intensity*0.5)}
	}
}

// centerBurst fires energy from the center fixtures outward on each gated
// beat. The four-fixture rig gets the hand-tuned two-phase version.
type centerBurst struct {
	radius   float64
	colorIdx int
}

func (p *centerBurst) Render(f *Frame, out []Light) {
	if f.Beat {
		p.radius = 0
		p.colorIdx = (p.colorIdx + 1) % len(f.Palette)
	}
	p.radius = math.Min(1.0, p.radius+0.25/f.division())

	color := f.Palette[p.colorIdx]
	peak := 0.7 + f.Intensity*0.3

	if len(out) == 4 {
		var center, outer float64
		if p.radius < 0.5 {
			center = p.radius * 2 * peak
			outer = 0.05
		} else {
			transfer := (p.radius - 0.5) * 2
			center = (1 - transfer) * peak
			outer = transfer * peak
		}
		out[0] = Light{Color: color, Brightness: outer}
		out[1] = Light{Color: color, Brightness: center}
		out[2] = Light{Color: color, Brightness: center}
		out[3] = Light{Color: color, Brightness: outer}
		return
	}

	center := float64(len(out)) / 2
	for i := range out {
		fromCenter := absFloat(float64(i)-center+0.5) / (float64(len(out)) / 2)

		var b float64
		if p.radius < 0.5 {
			if fromCenter < 0.5 {
				b = p.radius * 2 * peak
			} else {
				b = 0.05
			}
		} else {
			transfer := (p.radius - 0.5) * 2
			if fromCenter < 0.5 {
				b = (1 - transfer) * peak
			} else {
				b = transfer * peak
			}
		}
		out[i] = Light{Color: color, Brightness: b}
	}
}

// vuMeter lights fixtures left to right with the volume, green through red,
// with a decaying white peak marker.
type vuMeter struct {
	peak float64
}

func (p *vuMeter) Render(f *Frame, out []Light) {
	lit := int(f.Intensity * float64(len(out)))
	if float64(lit) > p.peak {
		p.peak = float64(lit)
	} else {
		p.peak = math.Max(0, p.peak-0.1)
	}

	for i := range out {
		switch {
		case i < lit:
			ratio := float64(i) / math.Max(1, float64(len(out)-1))
			var color config.RGB
			if ratio < 0.5 {
				color = config.RGB{R: uint8(255 * ratio * 2), G: 255}
			} else {
				color = config.RGB{R: 255, G: uint8(255 * (2 - ratio*2))}
			}
			out[i] = Light{Color: color, Brightness: 1.0}
		case i == int(p.peak):
			out[i] = Light{Color: config.RGB{R: 255, G: 255, B: 255}, Brightness: 0.5}
		default:
			out[i] = Light{}
		}
	}
}

// spectrum splits the row into bass, mid and high thirds, each lit by its
// band's energy.
type spectrum struct{}

func (p *spectrum) Render(f *Frame, out []Light) {
	bassColor := config.RGB{R: 255}
	midColor := config.RGB{R: 255, G: 255}
	highColor := config.RGB{G: 128, B: 255}
	if f.Cool {
		bassColor = config.RGB{G: 255, B: 128}
		midColor = config.RGB{G: 255}
		highColor = config.RGB{G: 128, B: 255}
	}

	perBand := len(out) / 3
	if perBand < 1 {
		perBand = 1
	}

	for i := range out {
		var color config.RGB
		var level float64
		switch {
		case i < perBand:
			color, level = bassColor, f.Bass
		case i < perBand*2:
			color, level = midColor, f.Mid
		default:
			color, level = highColor, f.High
		}
		out[i] = Light{Color: color, Brightness: 0.1 + level*0.9}
	}
}
