package engine

import (
	"time"

	"github.com/googoolist/lightshow-2/internal/config"
	"github.com/googoolist/lightshow-2/internal/program"
)

// Pattern selects the color-distribution strategy in layered mode.
type Pattern int

const (
	PatternSync Pattern = iota
	PatternWave
	PatternCenter
	PatternAlternate
	PatternMirror
	PatternSwell
)

var patternNames = map[Pattern]string{
	PatternSync:      "sync",
	PatternWave:      "wave",
	PatternCenter:    "center",
	PatternAlternate: "alternate",
	PatternMirror:    "mirror",
	PatternSwell:     "swell",
}

func (p Pattern) String() string {
	if s, ok := patternNames[p]; ok {
		return s
	}
	return "sync"
}

// ParsePattern maps a pattern name to its value. Unknown names return
// PatternSync and false.
func ParsePattern(name string) (Pattern, bool) {
	for p, s := range patternNames {
		if s == name {
			return p, true
		}
	}
	return PatternSync, false
}

// Patterns lists every pattern in a stable order.
func Patterns() []Pattern {
	return []Pattern{
		PatternSync, PatternWave, PatternCenter,
		PatternAlternate, PatternMirror, PatternSwell,
	}
}

// Effect selects the special-effect overlay in layered mode.
type Effect int

const (
	EffectNone Effect = iota
	EffectBreathe
	EffectSparkle
	EffectChase
	EffectPulse
	EffectSweep
	EffectFirefly
)

var effectNames = map[Effect]string{
	EffectNone:    "none",
	EffectBreathe: "breathe",
	EffectSparkle: "sparkle",
	EffectChase:   "chase",
	EffectPulse:   "pulse",
	EffectSweep:   "sweep",
	EffectFirefly: "firefly",
}

func (e Effect) String() string {
	if s, ok := effectNames[e]; ok {
		return s
	}
	return "none"
}

// ParseEffect maps an effect name to its value. Unknown names return
// EffectNone and false.
func ParseEffect(name string) (Effect, bool) {
	for e, s := range effectNames {
		if s == name {
			return e, true
		}
	}
	return EffectNone, false
}

// Effects lists every effect in a stable order.
func Effects() []Effect {
	return []Effect{
		EffectNone, EffectBreathe, EffectSparkle, EffectChase,
		EffectPulse, EffectSweep, EffectFirefly,
	}
}

// Mode selects between the layered render pipeline and the preset program
// library.
type Mode int

const (
	ModeLayered Mode = iota
	ModeProgram
)

// Values is one consistent view of every user-settable parameter. The
// engine works from a copy each tick, so a dropped setter update can never
// tear a frame.
type Values struct {
	Smoothness      float64
	RainbowLevel    float64
	Brightness      float64
	StrobeLevel     float64
	BeatSensitivity float64
	MoodMatch       bool
	Pattern         Pattern
	BPMSync         float64
	FrequencyMode   bool
	Theme           config.Theme
	Effect          Effect
	EchoEnabled     bool
	EchoLength      float64
	ChaosLevel      float64
	AmbientMode     bool
	GenreAuto       bool
	SpectrumMode    bool
	ActiveLights    int

	Mode           Mode
	Program        program.Kind
	BPMDivision    int
	Dimming        float64
	CoolColorsOnly bool
}

// DefaultValues returns the documented session defaults.
func DefaultValues() Values {
	return Values{
		Smoothness:      0.5,
		RainbowLevel:    0.5,
		Brightness:      0.5,
		StrobeLevel:     0,
		BeatSensitivity: 0.5,
		Pattern:         PatternWave,
		BPMSync:         1.0,
		Theme:           config.ThemeDefault,
		Effect:          EffectNone,
		EchoLength:      0.5,
		ActiveLights:    config.DefaultLightCount,
		Mode:            ModeLayered,
		Program:         program.BounceSame,
		BPMDivision:     1,
		Dimming:         1.0,
	}
}

// Lock-acquisition timeouts. Setters drop an update rather than block a
// control surface; reset touches many fields and may wait longer.
const (
	setterTimeout = 10 * time.Millisecond
	resetTimeout  = 100 * time.Millisecond
)

// timedMutex is a mutex with bounded acquisition, built on a buffered
// channel semaphore.
type timedMutex chan struct{}

func newTimedMutex() timedMutex { return make(timedMutex, 1) }

func (m timedMutex) acquire(timeout time.Duration) bool {
	select {
	case m <- struct{}{}:
		return true
	default:
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case m <- struct{}{}:
		return true
	case <-t.C:
		return false
	}
}

func (m timedMutex) release() { <-m }

// Params is the mutable parameter set shared between the engine tick loop
// and the control surface. Every setter clamps its input and silently drops
// the update if the lock cannot be acquired within setterTimeout.
type Params struct {
	mu timedMutex
	v  Values

	// colorInit is set when a change requires per-fixture color state to
	// be re-derived. The engine thread consumes it on its next tick, so
	// the O(activeLights) work never happens under this lock.
	colorInit bool
}

// NewParams creates a parameter set with the session defaults.
func NewParams() *Params {
	return &Params{mu: newTimedMutex(), v: DefaultValues()}
}

// values returns a copy of the current values and whether color state needs
// re-deriving. On lock timeout ok is false and the caller keeps its
// previous copy.
func (p *Params) values() (v Values, reinit, ok bool) {
	if !p.mu.acquire(setterTimeout) {
		return Values{}, false, false
	}
	v = p.v
	reinit = p.colorInit
	p.colorInit = false
	p.mu.release()
	return v, reinit, true
}

// update runs fn on the values under the lock. Returns false if the update
// was dropped.
func (p *Params) update(fn func(*Values)) bool {
	if !p.mu.acquire(setterTimeout) {
		return false
	}
	fn(&p.v)
	p.mu.release()
	return true
}

// Get returns a copy of the current values, blocking briefly if necessary.
// Used by the control surface for display; on timeout it returns the
// defaults.
func (p *Params) Get() Values {
	if !p.mu.acquire(setterTimeout) {
		return DefaultValues()
	}
	v := p.v
	p.mu.release()
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetSmoothness sets the transition smoothness (0 = fast, 1 = very smooth).
func (p *Params) SetSmoothness(v float64) {
	p.update(func(vals *Values) { vals.Smoothness = clamp(v, 0, 1) })
}

// SetRainbowLevel sets the color diversity level (0 = single color,
// 1 = full rainbow).
func (p *Params) SetRainbowLevel(v float64) {
	p.update(func(vals *Values) { vals.RainbowLevel = clamp(v, 0, 1) })
}

// SetBrightness sets the master brightness slider.
func (p *Params) SetBrightness(v float64) {
	p.update(func(vals *Values) { vals.Brightness = clamp(v, 0, 1) })
}

// SetStrobeLevel sets the strobe intensity (0 = off).
func (p *Params) SetStrobeLevel(v float64) {
	p.update(func(vals *Values) { vals.StrobeLevel = clamp(v, 0, 1) })
}

// SetBeatSensitivity sets the beat response strength.
func (p *Params) SetBeatSensitivity(v float64) {
	p.update(func(vals *Values) { vals.BeatSensitivity = clamp(v, 0, 1) })
}

// SetMoodMatch toggles intensity-based color temperature adjustment.
func (p *Params) SetMoodMatch(on bool) {
	p.update(func(vals *Values) { vals.MoodMatch = on })
}

// SetPattern selects the layered-mode pattern.
func (p *Params) SetPattern(pat Pattern) {
	if _, ok := patternNames[pat]; !ok {
		return
	}
	p.update(func(vals *Values) { vals.Pattern = pat })
}

// SetBPMSync sets the tempo sync factor (0.1x to 2x).
func (p *Params) SetBPMSync(v float64) {
	p.update(func(vals *Values) { vals.BPMSync = clamp(v, 0.1, 2.0) })
}

// SetFrequencyMode toggles frequency-band color blending.
func (p *Params) SetFrequencyMode(on bool) {
	p.update(func(vals *Values) { vals.FrequencyMode = on })
}

// SetColorTheme selects the palette theme and re-derives fixture colors.
func (p *Params) SetColorTheme(t config.Theme) {
	p.update(func(vals *Values) {
		if vals.Theme != t {
			vals.Theme = t
			p.colorInit = true
		}
	})
}

// SetEffectMode selects the special-effect overlay.
func (p *Params) SetEffectMode(e Effect) {
	if _, ok := effectNames[e]; !ok {
		return
	}
	p.update(func(vals *Values) { vals.Effect = e })
}

// SetEchoEnabled toggles the echo trail.
func (p *Params) SetEchoEnabled(on bool) {
	p.update(func(vals *Values) { vals.EchoEnabled = on })
}

// SetEchoLength sets the echo trail length in seconds (0 to 2).
func (p *Params) SetEchoLength(v float64) {
	p.update(func(vals *Values) { vals.EchoLength = clamp(v, 0, 2) })
}

// SetChaosLevel sets the randomization amount.
func (p *Params) SetChaosLevel(v float64) {
	p.update(func(vals *Values) { vals.ChaosLevel = clamp(v, 0, 1) })
}

// SetAmbientMode toggles rendering while audio is inactive.
func (p *Params) SetAmbientMode(on bool) {
	p.update(func(vals *Values) { vals.AmbientMode = on })
}

// SetGenreAuto toggles per-genre parameter adaptation.
func (p *Params) SetGenreAuto(on bool) {
	p.update(func(vals *Values) { vals.GenreAuto = on })
}

// SetSpectrumMode toggles pure volume/frequency rendering (no beat).
func (p *Params) SetSpectrumMode(on bool) {
	p.update(func(vals *Values) { vals.SpectrumMode = on })
}

// SetLightCount sets the number of active fixtures, clamped to
// [1, MaxLights], and re-derives fixture colors on change.
func (p *Params) SetLightCount(n int) {
	if n < 1 {
		n = 1
	}
	if n > config.MaxLights {
		n = config.MaxLights
	}
	p.update(func(vals *Values) {
		if vals.ActiveLights != n {
			vals.ActiveLights = n
			p.colorInit = true
		}
	})
}

// SetMode switches between the layered pipeline and the program library.
func (p *Params) SetMode(m Mode) {
	if m != ModeLayered && m != ModeProgram {
		return
	}
	p.update(func(vals *Values) { vals.Mode = m })
}

// SetProgram selects the preset program. Unknown kinds are ignored.
func (p *Params) SetProgram(k program.Kind) {
	if !program.Valid(k) {
		return
	}
	p.update(func(vals *Values) { vals.Program = k })
}

// SetBPMDivision sets the trigger-every-Nth-beat divider (1 to 16).
func (p *Params) SetBPMDivision(n int) {
	if n < 1 {
		n = 1
	}
	if n > 16 {
		n = 16
	}
	p.update(func(vals *Values) { vals.BPMDivision = n })
}

// SetDimming sets the program-mode dimming level.
func (p *Params) SetDimming(v float64) {
	p.update(func(vals *Values) { vals.Dimming = clamp(v, 0, 1) })
}

// SetCoolColorsOnly restricts program palettes to cool colors.
func (p *Params) SetCoolColorsOnly(on bool) {
	p.update(func(vals *Values) { vals.CoolColorsOnly = on })
}

// Reset restores every parameter to its default. Uses the longer timeout:
// it touches many fields atomically and is expected to be rare.
func (p *Params) Reset() {
	if !p.mu.acquire(resetTimeout) {
		return
	}
	p.v = DefaultValues()
	p.colorInit = true
	p.mu.release()
}
