package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFixtureOffset(t *testing.T) {
	fixtures := DefaultFixtures()
	second := fixtures[1]

	if got := second.Offset("dimmer"); got != 7 {
		t.Fatalf("Offset(dimmer) = %d, want 7", got)
	}
	if got := second.Offset("strobe"); got != 11 {
		t.Fatalf("Offset(strobe) = %d, want 11", got)
	}
	if got := second.Offset("pan"); got != -1 {
		t.Fatalf("Offset(pan) = %d for missing channel, want -1", got)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rig.yaml")
	content := `universe: 3
target: "10.0.0.5:6454"
channels: 14
fixtures:
  - name: left
    start_channel: 1
    channels: {dimmer: 0, red: 1, green: 2, blue: 3}
  - name: right
    start_channel: 8
    channels: {dimmer: 0, red: 1, green: 2, blue: 3}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Universe != 3 || cfg.Target != "10.0.0.5:6454" || cfg.Channels != 14 {
		t.Fatalf("Load() = %+v, want overlay values", cfg)
	}
	if len(cfg.Fixtures) != 2 || cfg.Fixtures[1].Offset("blue") != 10 {
		t.Fatalf("fixtures = %+v, want two patched fixtures", cfg.Fixtures)
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rig.yaml")
	if err := os.WriteFile(path, []byte("target: \"192.168.1.20:6454\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Target != "192.168.1.20:6454" {
		t.Fatalf("target = %q, want the overlay value", cfg.Target)
	}
	if cfg.Channels != DMXChannels || len(cfg.Fixtures) != MaxLights {
		t.Fatalf("missing fields did not fall back: channels=%d fixtures=%d", cfg.Channels, len(cfg.Fixtures))
	}
}

func TestLoadRejectsBadFixtures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"zero start channel",
			"fixtures:\n  - name: bad\n    start_channel: 0\n    channels: {dimmer: 0}\n",
		},
		{
			"channel out of range",
			"channels: 14\nfixtures:\n  - name: bad\n    start_channel: 10\n    channels: {red: 10}\n",
		},
	}
	for _, tt := range tests {
		dir := t.TempDir()
		path := filepath.Join(dir, "rig.yaml")
		if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
			t.Fatalf("%s: write config: %v", tt.name, err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: Load() accepted an unaddressable fixture", tt.name)
		}
	}
}

func TestPaletteFallback(t *testing.T) {
	if got := Palette(Theme(99)); !reflect.DeepEqual(got, SmoothPalette) {
		t.Fatalf("Palette(unknown) did not fall back to the default palette")
	}
	for _, theme := range Themes() {
		if len(Palette(theme)) == 0 {
			t.Fatalf("Palette(%v) is empty", theme)
		}
	}
}

func TestParseThemeRoundTrip(t *testing.T) {
	for _, theme := range Themes() {
		got, ok := ParseTheme(theme.String())
		if !ok || got != theme {
			t.Fatalf("ParseTheme(%q) = %v, %v", theme.String(), got, ok)
		}
	}
	if _, ok := ParseTheme("vaporwave"); ok {
		t.Fatalf("ParseTheme accepted an unknown theme")
	}
}
