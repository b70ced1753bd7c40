package program

import "github.com/googoolist/lightshow-2/internal/config"

// bounce tail brightnesses by distance from the active position.
func bounceFade(distance int) float64 {
	switch distance {
	case 0:
		return 1.0
	case 1:
		return 0.5
	case 2:
		return 0.2
	default:
		return 0.05
	}
}

// bouncer is the shared position state: a head walking the fixture row and
// reversing at the ends.
type bouncer struct {
	pos int
	dir int
}

// step advances one fixture and reports whether the head hit an end.
func (b *bouncer) step(n int) bool {
	if b.dir == 0 {
		b.dir = 1
	}
	b.pos += b.dir
	if b.pos >= n-1 {
		b.pos = n - 1
		b.dir = -1
		return true
	}
	if b.pos <= 0 {
		b.pos = 0
		b.dir = 1
		return true
	}
	return false
}

// bounceSame walks a single-color head across the row, rotating the palette
// color each time the head reverses.
type bounceSame struct {
	b        bouncer
	colorIdx int
}

func (p *bounceSame) Render(f *Frame, out []Light) {
	if f.Beat {
		if p.b.step(len(out)) {
			p.colorIdx = (p.colorIdx + 1) % len(f.Palette)
		}
	}

	current := f.Palette[p.colorIdx]
	next := f.Palette[(p.colorIdx+1)%len(f.Palette)]

	for i := range out {
		distance := abs(i - p.b.pos)
		color := current
		if distance == 0 {
			atEdge := (p.b.dir == 1 && i == len(out)-1) || (p.b.dir == -1 && i == 0)
			if atEdge {
				color = next
			}
		}
		out[i] = Light{Color: color, Brightness: bounceFade(distance)}
	}
}

// bounceMulti walks the head across the row, assigning a random palette
// color to each position it lands on.
type bounceMulti struct {
	b      bouncer
	colors []config.RGB
}

func (p *bounceMulti) Render(f *Frame, out []Light) {
	p.colors = growColors(p.colors, len(out), f.Palette[0])

	if f.Beat {
		p.b.step(len(out))
		p.colors[p.b.pos] = f.Palette[f.Rand.Intn(len(f.Palette))]
	}

	for i := range out {
		out[i] = Light{Color: p.colors[i], Brightness: bounceFade(abs(i - p.b.pos))}
	}
}

// bounceDiscrete lights only the head position, without fades.
type bounceDiscrete struct {
	b      bouncer
	colors []config.RGB
}

func (p *bounceDiscrete) Render(f *Frame, out []Light) {
	p.colors = growColors(p.colors, len(out), f.Palette[0])

	if f.Beat {
		p.b.step(len(out))
		p.colors[p.b.pos] = f.Palette[f.Rand.Intn(len(f.Palette))]
	}

	for i := range out {
		if i == p.b.pos {
			out[i] = Light{Color: p.colors[i], Brightness: 1.0}
		} else {
			out[i] = Light{}
		}
	}
}

// rippleBounce sweeps a soft head back and forth, advancing on beats and
// gliding between them, with a short decaying trail. The color rotates on
// each direction change.
type rippleBounce struct {
	pos      float64
	dir      int
	colorIdx int
	trail    []float64
}

const rippleBounceGlide = 0.15

func (p *rippleBounce) Render(f *Frame, out []Light) {
	p.advance(f, len(out), func() {
		p.colorIdx = (p.colorIdx + 1) % len(f.Palette)
	})

	color := f.Palette[p.colorIdx]
	for i := range out {
		b := p.headBrightness(i)
		b *= 0.7 + f.Intensity*0.3
		out[i] = Light{Color: color, Brightness: b}
	}
}

// advance moves the head one fixture on a gated beat and glides a fraction
// of a fixture every tick. onReverse runs when the head bounces off an end.
func (p *rippleBounce) advance(f *Frame, n int, onReverse func()) {
	if p.dir == 0 {
		p.dir = 1
	}
	if f.Beat {
		switch {
		case p.dir == 1 && p.pos >= float64(n-1):
			p.dir = -1
			p.pos = float64(n - 1)
			onReverse()
		case p.dir == -1 && p.pos <= 0:
			p.dir = 1
			p.pos = 0
			onReverse()
		default:
			p.pos += float64(p.dir)
		}
	}

	p.pos += float64(p.dir) * rippleBounceGlide
	p.pos = clampFloat(p.pos, 0, float64(n-1))

	p.trail = append(p.trail, p.pos)
	if len(p.trail) > 3 {
		p.trail = p.trail[1:]
	}
}

// headBrightness combines the head falloff with the aging trail.
func (p *rippleBounce) headBrightness(i int) float64 {
	brightness := 0.0
	if d := absFloat(float64(i) - p.pos); d < 1.0 {
		brightness = 1.0 - d*0.5
	}
	for j := 0; j < len(p.trail)-1; j++ {
		d := absFloat(float64(i) - p.trail[j])
		if d < 1.5 {
			tb := (1.0 - d/1.5) * (0.5 - float64(j)*0.15)
			if tb > brightness {
				brightness = tb
			}
		}
	}
	return brightness
}

// rippleBounceMulti is rippleBounce with per-fixture colors, reshuffled on
// every direction change.
type rippleBounceMulti struct {
	head   rippleBounce
	colors []config.RGB
}

func (p *rippleBounceMulti) Render(f *Frame, out []Light) {
	p.colors = growColors(p.colors, len(out), f.Palette[0])

	p.head.advance(f, len(out), func() {
		for i := range p.colors {
			p.colors[i] = f.Palette[f.Rand.Intn(len(f.Palette))]
		}
	})

	for i := range out {
		b := p.head.headBrightness(i)
		b *= 0.7 + f.Intensity*0.3
		out[i] = Light{Color: p.colors[i], Brightness: b}
	}
}

func growColors(colors []config.RGB, n int, fill config.RGB) []config.RGB {
	for len(colors) < n {
		colors = append(colors, fill)
	}
	return colors
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
