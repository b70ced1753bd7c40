package engine

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/googoolist/lightshow-2/internal/analyzer"
	"github.com/googoolist/lightshow-2/internal/config"
)

// applyFrequency blends the base color with a band-driven tint: bass into
// red, mids into green, highs into blue.
func applyFrequency(r, g, b float64, snap analyzer.Snapshot) (float64, float64, float64) {
	r = r*0.3 + snap.Bass*255*0.7
	g = g*0.3 + snap.Mid*255*0.7
	b = b*0.3 + snap.High*255*0.7
	return capRGB(r, g, b)
}

// spectrumColor derives a color purely from the band balance, with a floor
// so quiet passages stay visible.
func spectrumColor(snap analyzer.Snapshot) (float64, float64, float64) {
	r := 255 * (snap.Bass*0.8 + snap.Mid*0.2)
	g := 255 * (snap.Mid*0.7 + snap.Bass*0.2 + snap.High*0.1)
	b := 255 * (snap.High*0.8 + snap.Mid*0.2)

	if r+g+b < 100 {
		r = math.Max(40, r)
		g = math.Max(40, g)
		b = math.Max(40, b)
	}
	return capRGB(r, g, b)
}

// applyMood shifts color temperature with intensity: cool below 0.3, warm
// above 0.7, neutral between.
func applyMood(r, g, b, intensity float64) (float64, float64, float64) {
	switch {
	case intensity < 0.3:
		cool := 1.0 - intensity/0.3
		r *= 0.5 + 0.5*(1-cool)
		g *= 0.7 + 0.3*(1-cool)
		b = math.Min(255, b*(1+cool*0.5))
	case intensity > 0.7:
		warm := (intensity - 0.7) / 0.3
		r = math.Min(255, r*(1+warm*0.5))
		g *= 0.8 + 0.2*(1-warm*0.5)
		b *= 0.5 + 0.5*(1-warm)
	}
	return capRGB(r, g, b)
}

// applyEffect runs the selected overlay for fixture i. Effects with
// per-fixture state (firefly) keep it on the engine.
func (e *Engine) applyEffect(v *Values, r, g, b float64, i int, t, intensity float64) (float64, float64, float64) {
	switch v.Effect {
	case EffectBreathe:
		speed := 0.5
		if v.AmbientMode {
			speed = 0.2
		}
		factor := 0.5 + (math.Sin(t*speed)+1)/2*0.5
		r, g, b = r*factor, g*factor, b*factor

	case EffectSparkle:
		if e.rng.Float64() < 0.05*(1+intensity) && e.rng.Intn(v.ActiveLights) == i {
			r, g, b = 255, 255, 255
		}

	case EffectChase:
		speed := 2.0
		if v.AmbientMode {
			speed = 0.5
		}
		if int(t*speed)%v.ActiveLights == i {
			r, g, b = math.Min(255, r*2), math.Min(255, g*2), math.Min(255, b*2)
		} else {
			r, g, b = r*0.3, g*0.3, b*0.3
		}

	case EffectPulse:
		if t-e.lastBeat < 0.1 {
			factor := 1.0 + v.BeatSensitivity*0.5
			r = math.Min(255, r*factor)
			g = math.Min(255, g*factor)
			b = math.Min(255, b*factor)
		}

	case EffectSweep:
		speed := 1.0
		if v.AmbientMode {
			speed = 0.3
		}
		phase := math.Mod(t*speed+float64(i)*0.2, 1)
		cr, cg, cb := colorful.Hsv(phase*360, 1, 1).RGB255()
		r, g, b = float64(cr), float64(cg), float64(cb)

	case EffectFirefly:
		if e.rng.Float64() < 0.01 {
			e.firefly[i] = 1.0
		}
		if e.firefly[i] > 0 {
			tw := e.firefly[i]
			r = math.Min(255, r+(255-r)*tw)
			g = math.Min(255, g+(255-g)*tw)
			b = math.Min(255, b+(255-b)*tw)
			e.firefly[i] *= 0.95
		}
	}
	return r, g, b
}

// applyChaos blends in a per-fixture random color and occasionally flips
// the pattern on a beat. The blend grows with the chaos level.
func (e *Engine) applyChaos(v *Values, r, g, b float64, i int, beat bool) (float64, float64, float64) {
	if v.ChaosLevel <= 0 {
		return r, g, b
	}

	if e.rng.Float64() < v.ChaosLevel*0.1 {
		e.chaosColors[i] = config.RGB{
			R: uint8(e.rng.Intn(256)),
			G: uint8(e.rng.Intn(256)),
			B: uint8(e.rng.Intn(256)),
		}
	}

	blend := v.ChaosLevel * 0.5
	cc := e.chaosColors[i]
	r = r*(1-blend) + float64(cc.R)*blend
	g = g*(1-blend) + float64(cc.G)*blend
	b = b*(1-blend) + float64(cc.B)*blend

	if beat && e.rng.Float64() < v.ChaosLevel*0.05 {
		patterns := []Pattern{PatternSync, PatternWave, PatternCenter, PatternAlternate, PatternMirror}
		next := patterns[e.rng.Intn(len(patterns))]
		v.Pattern = next
		e.params.SetPattern(next)
	}
	return r, g, b
}

// applyEcho holds decaying peaks of the color channels so movement leaves
// a visible trail. The hold frame fades out over the echo length.
func (e *Engine) applyEcho(v *Values, frame []byte) {
	if !v.EchoEnabled || v.EchoLength <= 0 {
		e.echoHeld = false
		return
	}
	if !e.echoHeld || len(e.echoFrame) != len(frame) {
		e.echoFrame = make([]byte, len(frame))
		copy(e.echoFrame, frame)
		e.echoHeld = true
		return
	}

	decay := 1.0 - 1.0/(v.EchoLength*config.UpdateFPS)
	if decay < 0 {
		decay = 0
	}

	for i := 0; i < v.ActiveLights && i < len(e.cfg.Fixtures); i++ {
		fix := e.cfg.Fixtures[i]
		for _, name := range []string{"dimmer", "red", "green", "blue"} {
			ch := fix.Offset(name)
			if ch < 0 || ch >= len(frame) {
				continue
			}
			held := byte(float64(e.echoFrame[ch]) * decay)
			if frame[ch] > held {
				held = frame[ch]
			}
			e.echoFrame[ch] = held
			frame[ch] = held
		}
	}
}

// applyGenre overwrites the responsiveness controls for the tick from the
// detected genre. User values return as soon as auto mode is off.
func applyGenre(v *Values, genre analyzer.Genre) {
	switch genre {
	case analyzer.GenreEDM:
		v.Smoothness = 0.2
		v.BeatSensitivity = 0.8
		v.StrobeLevel = 0.3
	case analyzer.GenreHipHop:
		v.Smoothness = 0.4
		v.BeatSensitivity = 0.9
		v.RainbowLevel = 0.3
	case analyzer.GenreRock:
		v.Smoothness = 0.5
		v.BeatSensitivity = 0.6
		if v.Theme == config.ThemeDefault {
			v.Theme = config.ThemeWarm
		}
	case analyzer.GenreJazz:
		v.Smoothness = 0.8
		v.BeatSensitivity = 0.3
		v.RainbowLevel = 0.2
	case analyzer.GenreAmbient:
		v.Smoothness = 0.95
		v.BeatSensitivity = 0.1
		v.AmbientMode = true
	}
}

func capRGB(r, g, b float64) (float64, float64, float64) {
	return math.Min(255, math.Max(0, r)), math.Min(255, math.Max(0, g)), math.Min(255, math.Max(0, b))
}
