// Package ui is the terminal control surface: live feature meters on top,
// every engine parameter adjustable from the keyboard below.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/googoolist/lightshow-2/internal/analyzer"
	"github.com/googoolist/lightshow-2/internal/config"
	"github.com/googoolist/lightshow-2/internal/engine"
	"github.com/googoolist/lightshow-2/internal/program"
)

const (
	meterIntensity = iota
	meterBass
	meterMid
	meterHigh
	meterCount
)

// Model is the Bubbletea model for the lightshow TUI.
type Model struct {
	params   *engine.Params
	features engine.SnapshotProvider
	title    string

	snap      analyzer.Snapshot
	meters    springMeters
	displayed [meterCount]float64
	bar       progress.Model
	width     int
	quitting  bool
}

// New creates a Model controlling params and displaying features. title
// names the input (track title or capture device label).
func New(params *engine.Params, features engine.SnapshotProvider, title string) Model {
	return Model{
		params:   params,
		features: features,
		title:    title,
		meters:   newSpringMeters(10, meterCount),
		bar:      newMeterBar(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.SetWindowTitle("lightshow — "+m.title))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		m.handleKey(msg.String())
		return m, nil

	case tickMsg:
		m.snap = m.features.Snapshot()
		m.displayed[meterIntensity] = m.meters.step(meterIntensity, m.snap.Intensity)
		m.displayed[meterBass] = m.meters.step(meterBass, m.snap.Bass)
		m.displayed[meterMid] = m.meters.step(meterMid, m.snap.Mid)
		m.displayed[meterHigh] = m.meters.step(meterHigh, m.snap.High)
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(key string) {
	v := m.params.Get()

	switch key {
	case "tab":
		if v.Mode == engine.ModeLayered {
			m.params.SetMode(engine.ModeProgram)
		} else {
			m.params.SetMode(engine.ModeLayered)
		}

	case "s":
		m.params.SetSmoothness(v.Smoothness + 0.05)
	case "S":
		m.params.SetSmoothness(v.Smoothness - 0.05)
	case "r":
		m.params.SetRainbowLevel(v.RainbowLevel + 0.05)
	case "R":
		m.params.SetRainbowLevel(v.RainbowLevel - 0.05)
	case "b":
		m.params.SetBrightness(v.Brightness + 0.05)
	case "B":
		m.params.SetBrightness(v.Brightness - 0.05)
	case "x":
		m.params.SetStrobeLevel(v.StrobeLevel + 0.05)
	case "X":
		m.params.SetStrobeLevel(v.StrobeLevel - 0.05)
	case "n":
		m.params.SetBeatSensitivity(v.BeatSensitivity + 0.05)
	case "N":
		m.params.SetBeatSensitivity(v.BeatSensitivity - 0.05)
	case "y":
		m.params.SetBPMSync(v.BPMSync + 0.1)
	case "Y":
		m.params.SetBPMSync(v.BPMSync - 0.1)
	case "c":
		m.params.SetChaosLevel(v.ChaosLevel + 0.05)
	case "C":
		m.params.SetChaosLevel(v.ChaosLevel - 0.05)

	case "p":
		if v.Mode == engine.ModeProgram {
			m.params.SetProgram(cycle(program.Kinds(), v.Program, 1))
		} else {
			m.params.SetPattern(cycle(engine.Patterns(), v.Pattern, 1))
		}
	case "P":
		if v.Mode == engine.ModeProgram {
			m.params.SetProgram(cycle(program.Kinds(), v.Program, -1))
		} else {
			m.params.SetPattern(cycle(engine.Patterns(), v.Pattern, -1))
		}
	case "t":
		m.params.SetColorTheme(cycle(config.Themes(), v.Theme, 1))
	case "e":
		m.params.SetEffectMode(cycle(engine.Effects(), v.Effect, 1))

	case "f":
		m.params.SetFrequencyMode(!v.FrequencyMode)
	case "m":
		m.params.SetMoodMatch(!v.MoodMatch)
	case "u":
		m.params.SetSpectrumMode(!v.SpectrumMode)
	case "o":
		m.params.SetEchoEnabled(!v.EchoEnabled)
	case "g":
		m.params.SetGenreAuto(!v.GenreAuto)
	case "a":
		m.params.SetAmbientMode(!v.AmbientMode)
	case "k":
		m.params.SetCoolColorsOnly(!v.CoolColorsOnly)

	case "v":
		m.params.SetBPMDivision(nextDivision(v.BPMDivision))
	case "d":
		m.params.SetDimming(v.Dimming + 0.05)
	case "D":
		m.params.SetDimming(v.Dimming - 0.05)

	case "[":
		m.params.SetLightCount(v.ActiveLights - 1)
	case "]":
		m.params.SetLightCount(v.ActiveLights + 1)

	case "0":
		m.params.Reset()
	}
}

// cycle steps through an ordered option list, wrapping at the ends.
func cycle[T comparable](options []T, current T, dir int) T {
	for i, o := range options {
		if o == current {
			return options[(i+dir+len(options))%len(options)]
		}
	}
	return options[0]
}

// nextDivision steps 1 -> 2 -> 4 -> 8 -> 16 -> 1.
func nextDivision(d int) int {
	if d >= 16 {
		return 1
	}
	return d * 2
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.params.Get()

	header := headerStyle.Render("lightshow")
	title := titleStyle.Render(m.title)

	var sb strings.Builder
	sb.WriteString("\n  " + header + "\n\n")
	sb.WriteString("  " + title + "\n\n")

	sb.WriteString(m.meterLine("level", m.displayed[meterIntensity]))
	sb.WriteString(m.meterLine("bass ", m.displayed[meterBass]))
	sb.WriteString(m.meterLine("mid  ", m.displayed[meterMid]))
	sb.WriteString(m.meterLine("high ", m.displayed[meterHigh]))

	sb.WriteString("\n  " + m.statusLine() + "\n")
	sb.WriteString("  " + m.settingsLine(v) + "\n")
	sb.WriteString("\n  " + helpStyle.Render(helpText(v.Mode == engine.ModeProgram)) + "\n")

	return sb.String()
}

func (m Model) meterLine(label string, value float64) string {
	return "  " + labelStyle.Render(label) + " " + m.bar.ViewAs(value) + "\n"
}

func (m Model) statusLine() string {
	bpm := "--"
	if m.snap.BPM > 0 {
		bpm = fmt.Sprintf("%.0f", m.snap.BPM)
	}
	line := labelStyle.Render("bpm ") + valueStyle.Render(bpm) +
		labelStyle.Render("  genre ") + valueStyle.Render(m.snap.Genre.String())

	switch {
	case m.snap.Drop:
		line += "  " + dropStyle.Render("DROP")
	case m.snap.Building:
		line += "  " + beatStyle.Render("build")
	}
	if !m.snap.AudioActive {
		line += "  " + labelStyle.Render("(silent)")
	}
	return line
}

func (m Model) settingsLine(v engine.Values) string {
	if v.Mode == engine.ModeProgram {
		return labelStyle.Render("program ") + valueStyle.Render(v.Program.String()) +
			labelStyle.Render("  div ") + valueStyle.Render(fmt.Sprintf("1/%d", v.BPMDivision)) +
			labelStyle.Render("  dim ") + valueStyle.Render(pct(v.Dimming)) +
			labelStyle.Render("  lights ") + valueStyle.Render(fmt.Sprintf("%d", v.ActiveLights))
	}
	return labelStyle.Render("pattern ") + valueStyle.Render(v.Pattern.String()) +
		labelStyle.Render("  theme ") + valueStyle.Render(v.Theme.String()) +
		labelStyle.Render("  fx ") + valueStyle.Render(v.Effect.String()) +
		labelStyle.Render("  bright ") + valueStyle.Render(pct(v.Brightness)) +
		labelStyle.Render("  smooth ") + valueStyle.Render(pct(v.Smoothness)) +
		labelStyle.Render("  lights ") + valueStyle.Render(fmt.Sprintf("%d", v.ActiveLights))
}

func pct(v float64) string {
	return fmt.Sprintf("%d%%", int(v*100))
}
