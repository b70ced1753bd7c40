// Package program implements the preset show programs: self-contained
// light-pattern generators driven by beats and audio features. Programs
// render into a slice of Light values; channel serialization stays with the
// engine.
package program

import (
	"math/rand"

	"github.com/googoolist/lightshow-2/internal/config"
)

// Kind identifies a preset program.
type Kind int

const (
	BounceSame Kind = iota
	BounceMulti
	BounceDiscrete
	SwellMulti
	SwellSame
	Disco
	Psych
	Pulse
	Spectrum
	Strobe
	Chase
	CenterBurst
	VUMeter
	Ripple
	Alternating
	Kaleidoscope
	Spiral
	Breathing
	Interference
	ColorRipples
	RippleBounce
	RippleBounceMulti
	DJ
)

var kindNames = map[Kind]string{
	BounceSame:        "bounce-same",
	BounceMulti:       "bounce-multi",
	BounceDiscrete:    "bounce-discrete",
	SwellMulti:        "swell-multi",
	SwellSame:         "swell-same",
	Disco:             "disco",
	Psych:             "psych",
	Pulse:             "pulse",
	Spectrum:          "spectrum",
	Strobe:            "strobe",
	Chase:             "chase",
	CenterBurst:       "center-burst",
	VUMeter:           "vu-meter",
	Ripple:            "ripple",
	Alternating:       "alternating",
	Kaleidoscope:      "kaleidoscope",
	Spiral:            "spiral",
	Breathing:         "breathing",
	Interference:      "interference",
	ColorRipples:      "color-ripples",
	RippleBounce:      "ripple-bounce",
	RippleBounceMulti: "ripple-bounce-multi",
	DJ:                "dj",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "bounce-same"
}

// Valid reports whether k names a known program.
func Valid(k Kind) bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind maps a program name to its Kind. Unknown names return
// BounceSame and false.
func ParseKind(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name {
			return k, true
		}
	}
	return BounceSame, false
}

// Kinds lists every program in menu order.
func Kinds() []Kind {
	return []Kind{
		BounceSame, BounceMulti, BounceDiscrete,
		SwellMulti, SwellSame,
		Disco, Psych, Pulse, Spectrum, Strobe, Chase,
		CenterBurst, VUMeter, Ripple, Alternating,
		Kaleidoscope, Spiral, Breathing, Interference,
		ColorRipples, RippleBounce, RippleBounceMulti,
		DJ,
	}
}

// Light is one fixture's render output for a tick. Brightness is applied on
// the dimmer channel and scales the RGB values when serialized.
type Light struct {
	Color      config.RGB
	Brightness float64
}

// Frame carries the per-tick inputs a program renders from. Beat is already
// gated through the beat division; RawBeat fires on every accepted beat.
type Frame struct {
	Intensity float64
	Bass      float64
	Mid       float64
	High      float64
	BPM       float64

	Beat    bool
	RawBeat bool

	Division int
	Palette  []config.RGB
	Cool     bool
	Dt       float64

	Rand *rand.Rand
}

func (f *Frame) division() float64 {
	if f.Division < 1 {
		return 1
	}
	return float64(f.Division)
}

// Program generates one tick of output for len(out) fixtures. Programs keep
// their own state between ticks and grow it lazily when the fixture count
// changes.
type Program interface {
	Render(f *Frame, out []Light)
}

var constructors = map[Kind]func() Program{
	BounceSame:        func() Program { return &bounceSame{} },
	BounceMulti:       func() Program { return &bounceMulti{} },
	BounceDiscrete:    func() Program { return &bounceDiscrete{} },
	SwellMulti:        func() Program { return &swellMulti{} },
	SwellSame:         func() Program { return &swellSame{} },
	Disco:             func() Program { return &disco{} },
	Psych:             func() Program { return newPsych() },
	Pulse:             func() Program { return &pulse{} },
	Spectrum:          func() Program { return &spectrum{} },
	Strobe:            func() Program { return &strobe{} },
	Chase:             func() Program { return &chase{} },
	CenterBurst:       func() Program { return &centerBurst{} },
	VUMeter:           func() Program { return &vuMeter{} },
	Ripple:            func() Program { return newRipple() },
	Alternating:       func() Program { return &alternating{} },
	Kaleidoscope:      func() Program { return &kaleidoscope{} },
	Spiral:            func() Program { return &spiral{} },
	Breathing:         func() Program { return &breathing{} },
	Interference:      func() Program { return &interference{} },
	ColorRipples:      func() Program { return &colorRipples{} },
	RippleBounce:      func() Program { return &rippleBounce{} },
	RippleBounceMulti: func() Program { return &rippleBounceMulti{} },
	DJ:                func() Program { return newDJ() },
}

// New creates a fresh instance of the program with zeroed state.
func New(k Kind) Program {
	if ctor, ok := constructors[k]; ok {
		return ctor()
	}
	return &bounceSame{}
}

// Runner owns the active program and the beat-division counter. Selecting a
// program resets its state.
type Runner struct {
	kind    Kind
	prog    Program
	rng     *rand.Rand
	counter int
}

// NewRunner creates a runner with the given program selected. The seed
// fixes the random stream so shows can be reproduced in tests.
func NewRunner(k Kind, seed int64) *Runner {
	r := &Runner{rng: rand.New(rand.NewSource(seed))}
	r.Select(k)
	return r
}

// Kind returns the selected program.
func (r *Runner) Kind() Kind { return r.kind }

// Select switches to program k, discarding the previous program's state.
// Reselecting the current program restarts it.
func (r *Runner) Select(k Kind) {
	if !Valid(k) {
		k = BounceSame
	}
	r.kind = k
	r.prog = New(k)
	r.counter = 0
}

// Render gates the raw beat through the division counter and runs the
// active program.
func (r *Runner) Render(f *Frame, out []Light) {
	f.Rand = r.rng
	f.Beat = false
	if f.RawBeat {
		r.counter++
		if r.counter >= f.Division {
			r.counter = 0
			f.Beat = true
		}
	}
	r.prog.Render(f, out)
}

func lerpColor(a, b config.RGB, t float64) config.RGB {
	return config.RGB{
		R: uint8(float64(a.R)*(1-t) + float64(b.R)*t),
		G: uint8(float64(a.G)*(1-t) + float64(b.G)*t),
		B: uint8(float64(a.B)*(1-t) + float64(b.B)*t),
	}
}

func complement(c config.RGB) config.RGB {
	return config.RGB{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

func scaleColor(c config.RGB, f float64) config.RGB {
	return config.RGB{
		R: clampByte(float64(c.R) * f),
		G: clampByte(float64(c.G) * f),
		B: clampByte(float64(c.B) * f),
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
