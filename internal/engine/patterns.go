package engine

import (
	"math"

	"github.com/googoolist/lightshow-2/internal/config"
)

// patternFuncs maps each pattern to its per-fixture color selector.
var patternFuncs = map[Pattern]func(e *Engine, v *Values, i int, t float64) config.RGB{
	PatternSync:      (*Engine).patternSync,
	PatternWave:      (*Engine).patternWave,
	PatternCenter:    (*Engine).patternCenter,
	PatternAlternate: (*Engine).patternAlternate,
	PatternMirror:    (*Engine).patternMirror,
	PatternSwell:     (*Engine).patternSync, // swell shapes brightness, not color
}

// patternColor picks fixture i's base color for this tick.
func (e *Engine) patternColor(v *Values, i int, t float64) config.RGB {
	fn, ok := patternFuncs[v.Pattern]
	if !ok {
		fn = (*Engine).patternSync
	}
	return fn(e, v, i, t)
}

func (e *Engine) patternSync(v *Values, i int, t float64) config.RGB {
	return e.current[i]
}

// patternWave blends each fixture with its neighbor on a drifting sine so
// colors appear to flow along the row.
func (e *Engine) patternWave(v *Values, i int, t float64) config.RGB {
	speed := 0.2 + (1.0-v.Smoothness)*1.0
	phase := (t*speed + e.phases[i]) * 2 * math.Pi
	factor := (math.Sin(phase) + 1) / 2

	base := e.current[i]
	next := e.current[(i+1)%max(1, v.ActiveLights)]

	return config.RGB{
		R: uint8(float64(base.R)*(1-factor) + float64(next.R)*factor),
		G: uint8(float64(base.G)*(1-factor) + float64(next.G)*factor),
		B: uint8(float64(base.B)*(1-factor) + float64(next.B)*factor),
	}
}

// patternCenter lets the center fixture(s) lead; at full smoothness the
// outer fixtures lag behind on their own colors.
func (e *Engine) patternCenter(v *Values, i int, t float64) config.RGB {
	center := v.ActiveLights / 2
	if v.ActiveLights%2 == 1 {
		if i == center {
			return e.current[center]
		}
	} else if i == center || i == center-1 {
		return e.current[i]
	}

	if int(10*v.Smoothness) == 0 {
		return e.current[center]
	}
	return e.current[i]
}

// patternAlternate flips even and odd fixtures between full and dimmed
// color twice a second.
func (e *Engine) patternAlternate(v *Values, i int, t float64) config.RGB {
	phase := int(t*2) % 2
	if i%2 == phase {
		return e.current[i]
	}
	c := e.current[i]
	return config.RGB{
		R: uint8(float64(c.R) * 0.3),
		G: uint8(float64(c.G) * 0.3),
		B: uint8(float64(c.B) * 0.3),
	}
}

// patternMirror reflects the left half of the row onto the right.
func (e *Engine) patternMirror(v *Values, i int, t float64) config.RGB {
	if v.ActiveLights == 1 {
		return e.current[0]
	}
	if float64(i) < float64(v.ActiveLights)/2 {
		return e.current[i]
	}
	return e.current[v.ActiveLights-1-i]
}
