// Package config holds the static configuration for the lighting rig:
// audio analysis constants, the fixture patch, color palettes and themes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Audio analysis settings.
const (
	SampleRate        = 44100 // Hz
	BlockSize         = 512   // samples per analysis block
	SilenceThreshold  = 0.01  // RMS below this counts as silence
	SilenceFrameCount = 44    // consecutive silent blocks (~0.5s) before audio is marked inactive

	MinBPM = 60
	MaxBPM = 180
)

// DMX settings.
const (
	UpdateFPS         = 30  // engine tick rate
	DMXChannels       = 56  // total channel buffer length (8 PARs * 7 channels)
	DefaultLightCount = 4   // active fixtures at startup
	MaxLights         = 8   // fixtures allocated in every state array
	DefaultUniverse   = 1
)

// RGB is an 8-bit color triple as written to fixture channels.
type RGB struct {
	R, G, B uint8
}

// Fixture describes one addressable light: a contiguous channel block
// starting at StartChannel (1-based, DMX convention) with logical channel
// names mapped to offsets within the block. Not every fixture needs every
// channel.
type Fixture struct {
	Name         string         `yaml:"name"`
	StartChannel int            `yaml:"start_channel"`
	Channels     map[string]int `yaml:"channels"`
}

// Offset returns the absolute zero-based buffer index of a logical channel,
// or -1 if the fixture does not have it.
func (f Fixture) Offset(name string) int {
	off, ok := f.Channels[name]
	if !ok {
		return -1
	}
	return f.StartChannel - 1 + off
}

func parChannels() map[string]int {
	return map[string]int{
		"dimmer": 0,
		"red":    1,
		"green":  2,
		"blue":   3,
		"strobe": 4,
		"mode":   5,
		"speed":  6,
	}
}

// DefaultFixtures returns the built-in patch: eight 7-channel PAR cans.
func DefaultFixtures() []Fixture {
	fixtures := make([]Fixture, MaxLights)
	for i := range fixtures {
		fixtures[i] = Fixture{
			Name:         fmt.Sprintf("PAR%d", i+1),
			StartChannel: i*7 + 1,
			Channels:     parChannels(),
		}
	}
	return fixtures
}

// Config is the runtime configuration, either the built-in defaults or a
// YAML overlay loaded from disk.
type Config struct {
	Universe int       `yaml:"universe"`
	Target   string    `yaml:"target"` // Art-Net destination, host:port
	Channels int       `yaml:"channels"`
	Fixtures []Fixture `yaml:"fixtures"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Universe: DefaultUniverse,
		Target:   "255.255.255.255:6454",
		Channels: DMXChannels,
		Fixtures: DefaultFixtures(),
	}
}

// Load reads a YAML config file. Missing fields fall back to the defaults;
// invalid fixture entries are rejected so the render path never sees a
// fixture it cannot address.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Channels <= 0 {
		cfg.Channels = DMXChannels
	}
	if len(cfg.Fixtures) == 0 {
		cfg.Fixtures = DefaultFixtures()
	}
	for _, f := range cfg.Fixtures {
		if f.StartChannel < 1 {
			return nil, fmt.Errorf("fixture %q: start_channel must be >= 1", f.Name)
		}
		for name, off := range f.Channels {
			if abs := f.StartChannel - 1 + off; off < 0 || abs >= cfg.Channels {
				return nil, fmt.Errorf("fixture %q: channel %q out of range", f.Name, name)
			}
		}
	}
	return cfg, nil
}
