package engine

import (
	"math"

	"github.com/googoolist/lightshow-2/internal/config"
)

// initColors derives the starting per-fixture colors from the theme and
// rainbow level. Inactive fixtures go dark.
func (e *Engine) initColors(v *Values) {
	palette := config.Palette(v.Theme)

	for i := 0; i < config.MaxLights; i++ {
		if i >= v.ActiveLights {
			e.current[i] = config.RGB{}
			e.target[i] = config.RGB{}
			continue
		}

		idx := 0
		if v.RainbowLevel >= 0.2 {
			step := int(float64(len(palette)) * v.RainbowLevel / float64(max(1, v.ActiveLights)))
			if step < 1 {
				step = 1
			}
			idx = (i * step) % len(palette)
		}
		e.current[i] = palette[idx]
		e.target[i] = palette[idx]
		e.fadeProgress[i] = 1
	}
}

// updateColors decides whether it is time to pick new target colors and
// advances the fades. Change cadence follows the rainbow level: more
// diversity means faster rotation and more beat-triggered changes.
func (e *Engine) updateColors(v *Values, t float64, beat bool, intensity float64) {
	bpmFactor := 1.0 / math.Max(0.1, v.BPMSync)

	var interval float64
	var changeOnBeat bool
	switch {
	case v.Pattern == PatternSwell:
		interval = (5.0 + v.Smoothness*10.0) * bpmFactor
	case v.SpectrumMode:
		interval = (3.0 + v.Smoothness*5.0) * bpmFactor
	case v.RainbowLevel < 0.2:
		interval = (3.0 + v.Smoothness*5.0) * bpmFactor
	case v.RainbowLevel < 0.5:
		interval = (2.0 + v.Smoothness*3.0) * bpmFactor
		changeOnBeat = beat && intensity > 0.6
	case v.RainbowLevel < 0.8:
		interval = (1.0 + v.Smoothness*2.0) * bpmFactor
		changeOnBeat = beat && intensity > 0.4
	default:
		interval = (0.5 + v.Smoothness*1.0) * bpmFactor
		changeOnBeat = beat
	}

	if t-e.lastColorChange > interval || changeOnBeat {
		e.lastColorChange = t
		e.selectNewColors(v)
	}
	e.updateColorFades(v)
}

// selectNewColors picks target colors for every active fixture. The rainbow
// level moves the selection from a single shared color through related
// colors to a full random spread.
func (e *Engine) selectNewColors(v *Values) {
	palette := config.Palette(v.Theme)
	size := len(palette)

	switch {
	case v.RainbowLevel < 0.2:
		// All fixtures step together to the next palette color.
		idx := 0
		for j, c := range palette {
			if c == e.target[0] {
				idx = j
				break
			}
		}
		next := palette[(idx+1)%size]
		for i := 0; i < v.ActiveLights; i++ {
			e.target[i] = next
			e.fadeProgress[i] = 0
		}

	case v.RainbowLevel < 0.5:
		// Related colors from one neighborhood of the palette.
		base := e.rng.Intn(size)
		spread := max(1, int(float64(size)*0.3))
		for i := 0; i < v.ActiveLights; i++ {
			offset := i * spread / max(1, v.ActiveLights)
			e.target[i] = palette[(base+offset)%size]
			e.fadeProgress[i] = 0
		}

	case v.RainbowLevel < 0.8:
		// Distinct colors spaced across the palette with jitter.
		spread := max(1, size/3)
		for i := 0; i < v.ActiveLights; i++ {
			idx := (i*spread + e.rng.Intn(spread)) % size
			e.target[i] = palette[idx]
			e.fadeProgress[i] = 0
		}

	default:
		// Maximum diversity: unique colors while the palette lasts.
		perm := e.rng.Perm(size)
		for i := 0; i < v.ActiveLights; i++ {
			e.target[i] = palette[perm[i%size]]
			e.fadeProgress[i] = 0
		}
	}
}

// updateColorFades moves every fixture's current color toward its target
// with an eased step. Fade time runs 0.1s at zero smoothness to 2s at full.
func (e *Engine) updateColorFades(v *Values) {
	fadeTime := 0.1 + v.Smoothness*1.9
	speed := 1.0 / (fadeTime * config.UpdateFPS) * math.Max(0.1, v.BPMSync)

	for i := 0; i < v.ActiveLights; i++ {
		if e.fadeProgress[i] >= 1 {
			continue
		}
		e.fadeProgress[i] = math.Min(1, e.fadeProgress[i]+speed)
		eased := 0.5 - 0.5*math.Cos(e.fadeProgress[i]*math.Pi)

		cur, tgt := e.current[i], e.target[i]
		e.current[i] = config.RGB{
			R: uint8(float64(cur.R) + (float64(tgt.R)-float64(cur.R))*eased),
			G: uint8(float64(cur.G) + (float64(tgt.G)-float64(cur.G))*eased),
			B: uint8(float64(cur.B) + (float64(tgt.B)-float64(cur.B))*eased),
		}
	}
}
