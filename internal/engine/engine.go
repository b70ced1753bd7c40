// Package engine renders DMX frames from the analyzer's features at a
// fixed tick rate. It has two render paths: the layered pipeline (pattern,
// frequency, mood, effect and chaos transforms stacked per fixture) and the
// preset program library.
package engine

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/googoolist/lightshow-2/internal/analyzer"
	"github.com/googoolist/lightshow-2/internal/config"
	"github.com/googoolist/lightshow-2/internal/dmx"
	"github.com/googoolist/lightshow-2/internal/program"
)

const (
	brightnessBase    = 0.6 // softer base so boosts have headroom
	beatFlashDuration = 0.5 // seconds, before smoothness/sensitivity scaling
)

// SnapshotProvider supplies the current audio features. Satisfied by
// *analyzer.Analyzer.
type SnapshotProvider interface {
	Snapshot() analyzer.Snapshot
}

// Engine owns the render loop. All state except Params is confined to the
// tick goroutine.
type Engine struct {
	log      *log.Logger
	cfg      *config.Config
	provider SnapshotProvider
	beats    *analyzer.Queue
	sink     dmx.Sink
	params   *Params

	vals   Values // last successfully read parameter copy
	runner *program.Runner
	lights []program.Light

	current      []config.RGB
	target       []config.RGB
	fadeProgress []float64
	phases       []float64

	lastColorChange float64
	lastBeat        float64
	swellPhase      float64

	firefly     []float64
	chaosColors []config.RGB
	echoFrame   []byte
	echoHeld    bool

	frame []byte
	rng   *rand.Rand
	start time.Time
	now   func() time.Time
}

// New creates an engine rendering cfg's fixtures from provider's features.
func New(cfg *config.Config, provider SnapshotProvider, beats *analyzer.Queue, sink dmx.Sink, params *Params, logger *log.Logger) *Engine {
	e := &Engine{
		log:          logger,
		cfg:          cfg,
		provider:     provider,
		beats:        beats,
		sink:         sink,
		params:       params,
		vals:         params.Get(),
		runner:       program.NewRunner(params.Get().Program, time.Now().UnixNano()),
		lights:       make([]program.Light, config.MaxLights),
		current:      make([]config.RGB, config.MaxLights),
		target:       make([]config.RGB, config.MaxLights),
		fadeProgress: make([]float64, config.MaxLights),
		phases:       make([]float64, config.MaxLights),
		firefly:      make([]float64, config.MaxLights),
		chaosColors:  make([]config.RGB, config.MaxLights),
		frame:        make([]byte, cfg.Channels),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		lastBeat:     math.Inf(-1),
		now:          time.Now,
	}
	for i := range e.phases {
		e.phases[i] = float64(i) * 0.2
	}
	for i := range e.chaosColors {
		e.chaosColors[i] = config.RGB{R: 255, G: 255, B: 255}
	}
	e.initColors(&e.vals)
	return e
}

// Run ticks at the configured frame rate until stop closes, then sends one
// final blackout frame so the rig never holds the last look.
func (e *Engine) Run(stop <-chan struct{}) {
	e.start = e.now()
	ticker := time.NewTicker(time.Second / config.UpdateFPS)
	defer ticker.Stop()

	e.log.Printf("engine: rendering %d channels at %d fps", e.cfg.Channels, config.UpdateFPS)
	for {
		select {
		case <-stop:
			if err := e.sink.Send(make([]byte, e.cfg.Channels)); err != nil {
				e.log.Printf("engine: blackout: %v", err)
			}
			e.log.Printf("engine: stopped")
			return
		case <-ticker.C:
			if err := e.sink.Send(e.RenderFrame()); err != nil {
				e.log.Printf("engine: send: %v", err)
			}
		}
	}
}

// RenderFrame computes the next DMX frame. The returned slice is reused
// between calls. A panic inside the render path is logged and replaced
// with a fixed safe color; it never reaches the tick loop.
func (e *Engine) RenderFrame() (frame []byte) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Printf("engine: render tick failed: %v", r)
			frame = e.safeFrame()
		}
	}()

	if e.start.IsZero() {
		e.start = e.now()
	}
	t := e.now().Sub(e.start).Seconds()

	if v, reinit, ok := e.params.values(); ok {
		e.vals = v
		if reinit {
			e.initColors(&e.vals)
		}
	}
	v := e.vals // tick-local copy; forced overrides below never persist

	snap := e.provider.Snapshot()

	// Always drain, even on blackout ticks, so stale beats cannot fire
	// when audio returns.
	beat := len(e.beats.Drain()) > 0
	if beat {
		e.lastBeat = t
	}

	clear(e.frame)
	if !snap.AudioActive && !v.AmbientMode {
		e.echoHeld = false
		return e.frame
	}

	if v.Mode == ModeProgram {
		e.renderProgram(&v, snap, beat)
		return e.frame
	}

	if v.GenreAuto {
		applyGenre(&v, snap.Genre)
	}
	if snap.Drop {
		// Peak moment: max beat response, forced strobe.
		v.BeatSensitivity = 1.0
		v.StrobeLevel = 0.5
	}

	e.updateColors(&v, t, beat, snap.Intensity)

	for i := 0; i < v.ActiveLights && i < len(e.cfg.Fixtures); i++ {
		c := e.patternColor(&v, i, t)
		r, g, b := float64(c.R), float64(c.G), float64(c.B)

		if v.SpectrumMode {
			r, g, b = spectrumColor(snap)
		} else if v.FrequencyMode {
			r, g, b = applyFrequency(r, g, b, snap)
		}
		if v.MoodMatch {
			r, g, b = applyMood(r, g, b, snap.Intensity)
		}
		r, g, b = e.applyEffect(&v, r, g, b, i, t, snap.Intensity)
		r, g, b = e.applyChaos(&v, r, g, b, i, beat)

		brightness := e.brightness(&v, snap, t)
		e.writeFixture(i, r, g, b, brightness, false)
		e.writeStrobe(&v, i, t)
	}

	e.applyEcho(&v, e.frame)
	return e.frame
}

// safeFrame paints every active fixture a fixed red at half brightness, so
// a render fault stays visible instead of going dark or strobing garbage.
func (e *Engine) safeFrame() []byte {
	clear(e.frame)
	n := e.vals.ActiveLights
	if n > len(e.cfg.Fixtures) {
		n = len(e.cfg.Fixtures)
	}
	for i := 0; i < n; i++ {
		e.writeFixture(i, 255, 0, 0, 0.5, false)
	}
	return e.frame
}

// brightness computes the master brightness for this tick: the mode model
// first, then the two-piece master curve and the darkness floor.
func (e *Engine) brightness(v *Values, snap analyzer.Snapshot, t float64) float64 {
	var brightness float64

	switch {
	case v.SpectrumMode:
		freq := snap.Bass*0.5 + snap.Mid*0.3 + snap.High*0.2
		brightness = math.Min(1, freq*brightnessBase)

	case v.Pattern == PatternSwell:
		speed := 0.1 + (1.0-v.Smoothness)*0.5
		e.swellPhase += speed / config.UpdateFPS
		factor := (math.Sin(e.swellPhase*2*math.Pi) + 1) / 2
		base := 0.2 + snap.Intensity*0.5
		brightness = math.Min(1, (base+factor*0.3)*brightnessBase)

	default:
		boost := e.beatBoost(v, t)
		mult := 0.5 + v.BeatSensitivity
		brightness = math.Min(1, snap.Intensity*mult*brightnessBase+boost)
	}

	// Master curve: 5%..100% below the midpoint, 100%..120% above.
	var curve float64
	if v.Brightness < 0.5 {
		curve = 0.05 + v.Brightness*2*0.95
	} else {
		curve = 1.0 + (v.Brightness-0.5)*2*0.2
	}
	brightness *= curve

	return math.Min(1, math.Max(0.01, brightness))
}

// beatBoost is the decaying flash after an accepted beat. Smoothness sets
// the flash length and softens the response; sensitivity scales both.
func (e *Engine) beatBoost(v *Values, t float64) float64 {
	since := t - e.lastBeat
	if math.IsInf(since, 1) {
		return 0
	}

	var duration float64
	if v.Smoothness < 0.5 {
		duration = beatFlashDuration * (0.2 + v.Smoothness*1.6)
	} else {
		duration = beatFlashDuration * (1.0 + (v.Smoothness-0.5)*6.0)
	}
	duration *= 0.5 + v.BeatSensitivity*1.5
	if since >= duration {
		return 0
	}

	response := 0.05 + v.BeatSensitivity*0.75
	if v.Smoothness < 0.5 {
		response *= 1.0 - v.Smoothness*0.3
	} else {
		response *= 0.7 - (v.Smoothness-0.5)*0.4
	}
	return response * (1 - since/duration)
}

// renderProgram runs the preset program path and serializes its output.
func (e *Engine) renderProgram(v *Values, snap analyzer.Snapshot, beat bool) {
	if e.runner.Kind() != v.Program {
		e.runner.Select(v.Program)
	}

	palette := config.ProgramPalette
	if v.CoolColorsOnly {
		palette = config.ProgramPaletteCool
	}

	n := v.ActiveLights
	if n > len(e.cfg.Fixtures) {
		n = len(e.cfg.Fixtures)
	}

	f := program.Frame{
		Intensity: snap.Intensity,
		Bass:      snap.Bass,
		Mid:       snap.Mid,
		High:      snap.High,
		BPM:       snap.BPM,
		RawBeat:   beat,
		Division:  v.BPMDivision,
		Palette:   palette,
		Cool:      v.CoolColorsOnly,
		Dt:        1.0 / config.UpdateFPS,
	}
	lights := e.lights[:n]
	e.runner.Render(&f, lights)

	for i, l := range lights {
		b := math.Min(1, math.Max(0, l.Brightness*v.Dimming))
		e.writeFixture(i, float64(l.Color.R), float64(l.Color.G), float64(l.Color.B), b, true)
	}
}

// writeFixture serializes one fixture's color and brightness. With a dimmer
// channel the RGB values go out unscaled unless scaleRGB is set (the
// program path dims both, matching fixtures that ignore the dimmer in some
// modes). Nonzero channels are floored at 1 so a lit fixture never rounds
// to fully dark.
func (e *Engine) writeFixture(i int, r, g, b, brightness float64, scaleRGB bool) {
	fix := e.cfg.Fixtures[i]
	scale := brightness

	if ch := fix.Offset("dimmer"); ch >= 0 {
		e.frame[ch] = roundChannel(brightness * 255)
		if !scaleRGB {
			scale = 1.0
		}
	}

	if ch := fix.Offset("red"); ch >= 0 {
		e.frame[ch] = roundChannel(r * scale)
	}
	if ch := fix.Offset("green"); ch >= 0 {
		e.frame[ch] = roundChannel(g * scale)
	}
	if ch := fix.Offset("blue"); ch >= 0 {
		e.frame[ch] = roundChannel(b * scale)
	}
	if ch := fix.Offset("mode"); ch >= 0 {
		e.frame[ch] = 0
	}
	if ch := fix.Offset("speed"); ch >= 0 {
		e.frame[ch] = 0
	}
}

// writeStrobe gates the strobe channel: off below the 0.1 dead zone, then a
// square wave whose rate and level both follow the slider.
func (e *Engine) writeStrobe(v *Values, i int, t float64) {
	ch := e.cfg.Fixtures[i].Offset("strobe")
	if ch < 0 {
		return
	}
	if v.StrobeLevel <= 0.1 {
		e.frame[ch] = 0
		return
	}

	rate := v.StrobeLevel * 10 // Hz
	if math.Mod(t*rate, 1) < 0.5 {
		e.frame[ch] = roundChannel(v.StrobeLevel * 255)
	} else {
		e.frame[ch] = 0
	}
}

// roundChannel converts to a DMX byte, flooring nonzero values at 1.
func roundChannel(val float64) byte {
	if val <= 0 {
		return 0
	}
	if val > 255 {
		return 255
	}
	v := byte(val)
	if v == 0 {
		v = 1
	}
	return v
}
