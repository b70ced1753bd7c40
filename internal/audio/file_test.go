package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gordonklaus/portaudio"
)

func TestTrackTitleFallback(t *testing.T) {
	if got := TrackTitle("/music/Sunset Drive.wav"); got != "Sunset Drive" {
		t.Fatalf("TrackTitle(wav) = %q, want the base filename", got)
	}

	// An mp3 without a usable tag falls back to the filename too.
	dir := t.TempDir()
	path := filepath.Join(dir, "untitled.mp3")
	if err := os.WriteFile(path, []byte("no tag here"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if got := TrackTitle(path); got != "untitled" {
		t.Fatalf("TrackTitle(untagged mp3) = %q, want \"untitled\"", got)
	}
}

func TestAppendResampledPassthrough(t *testing.T) {
	s := &FileSource{srcRate: 44100, rate: 44100}
	for i := range 10 {
		s.appendResampled(float32(i))
	}
	if len(s.mono) != 10 {
		t.Fatalf("passthrough produced %d samples from 10", len(s.mono))
	}
	for i, v := range s.mono {
		if v != float32(i) {
			t.Fatalf("sample %d = %v, want %v", i, v, float32(i))
		}
	}
}

func TestAppendResampledRatios(t *testing.T) {
	down := &FileSource{srcRate: 44100, rate: 22050}
	for range 100 {
		down.appendResampled(0.5)
	}
	if len(down.mono) != 50 {
		t.Fatalf("2:1 downsample produced %d samples from 100, want 50", len(down.mono))
	}

	up := &FileSource{srcRate: 22050, rate: 44100}
	for range 100 {
		up.appendResampled(0.5)
	}
	if len(up.mono) != 200 {
		t.Fatalf("1:2 upsample produced %d samples from 100, want 200", len(up.mono))
	}
}

func TestTransient(t *testing.T) {
	if Transient(ErrSourceClosed) {
		t.Fatalf("closed source classified as transient")
	}
	if !Transient(portaudio.InputOverflowed) {
		t.Fatalf("input overflow classified as fatal")
	}
}
