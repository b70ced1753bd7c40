// Package audio provides the input sources feeding the analyzer: live
// capture from an input device and a file source for running a show from a
// track on disk.
package audio

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Source supplies fixed-size mono float32 blocks at the configured sample
// rate. Read blocks until a full block is available or the source fails.
type Source interface {
	Read(block []float32) error
	Close() error
}

// ErrSourceClosed is returned once a source has been closed or exhausted.
// It is fatal: the analysis loop exits instead of retrying.
var ErrSourceClosed = errors.New("audio: source closed")

// Transient reports whether a read error is retriable (overflow, dropped
// buffer) rather than fatal.
func Transient(err error) bool {
	return errors.Is(err, portaudio.InputOverflowed)
}

// Capture reads mono blocks from the default input device via PortAudio.
type Capture struct {
	stream *portaudio.Stream
	buf    []float32
	closed bool
}

// NewCapture opens the default input device for mono capture. The returned
// Capture owns the PortAudio initialization and releases it on Close.
func NewCapture(sampleRate, blockSize int) (*Capture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}

	c := &Capture{buf: make([]float32, blockSize)}
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), blockSize, c.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	c.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start input stream: %w", err)
	}
	return c, nil
}

// Read fills block with the next captured samples. len(block) must equal
// the configured block size.
func (c *Capture) Read(block []float32) error {
	if c.closed {
		return ErrSourceClosed
	}
	if len(block) != len(c.buf) {
		return fmt.Errorf("audio: block size %d, want %d", len(block), len(c.buf))
	}
	if err := c.stream.Read(); err != nil {
		return err
	}
	copy(block, c.buf)
	return nil
}

// Close stops the stream and shuts PortAudio down.
func (c *Capture) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	err := c.stream.Close()
	portaudio.Terminate()
	return err
}
