package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/ebitengine/oto/v3"
)

// pcmDecoder yields interleaved float32 samples in [-1,1] from one audio
// format. Implementations stream; they never hold the whole file.
type pcmDecoder interface {
	ReadSamples(dst []float32) (int, error)
	SampleRate() int
	Channels() int
}

// FileSource decodes an audio file into mono blocks at the analysis sample
// rate, paced to real time so the show runs as if the track were playing
// live. With monitoring enabled the decoded audio is also played through
// the default output device.
type FileSource struct {
	dec      pcmDecoder
	file     *os.File
	rate     int // target (analysis) sample rate
	srcRate  int
	channels int

	frames     []float32 // interleaved source frames pending mono mix
	mono       []float32 // mono samples pending resample
	resampLast float32
	resampPos  float64

	deadline time.Time
	closed   bool

	monitor *monitorPlayback
}

// NewFileSource opens path and prepares it for block reads at sampleRate.
// Supported formats: wav, mp3, flac, ogg. When monitor is true the track is
// audible on the default output while being analyzed.
func NewFileSource(path string, sampleRate int, monitor bool) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec, err := newPCMDecoder(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	s := &FileSource{
		dec:      dec,
		file:     f,
		rate:     sampleRate,
		srcRate:  dec.SampleRate(),
		channels: dec.Channels(),
	}
	if s.srcRate <= 0 || s.channels < 1 {
		f.Close()
		return nil, fmt.Errorf("audio: unusable stream (%d Hz, %d ch)", s.srcRate, s.channels)
	}

	if monitor {
		mon, err := newMonitorPlayback(sampleRate)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("monitor playback: %w", err)
		}
		s.monitor = mon
	}
	return s, nil
}

func newPCMDecoder(f *os.File) (pcmDecoder, error) {
	switch ext := strings.ToLower(filepath.Ext(f.Name())); ext {
	case ".wav":
		return newWAVSource(f)
	case ".mp3":
		return newMP3Source(f)
	case ".flac":
		return newFLACSource(f)
	case ".ogg":
		return newOGGSource(f)
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
}

// Read fills block with the next mono samples, sleeping so blocks are
// delivered at the real-time rate of the track. Returns ErrSourceClosed at
// end of file.
func (s *FileSource) Read(block []float32) error {
	if s.closed {
		return ErrSourceClosed
	}

	for len(s.mono) < len(block) {
		if err := s.fill(); err != nil {
			if err == io.EOF {
				return ErrSourceClosed
			}
			return err
		}
	}

	copy(block, s.mono[:len(block)])
	s.mono = s.mono[len(block):]

	if s.monitor != nil {
		s.monitor.write(block)
	}

	// Pace to real time.
	blockDur := time.Duration(float64(len(block)) / float64(s.rate) * float64(time.Second))
	if s.deadline.IsZero() {
		s.deadline = time.Now()
	}
	s.deadline = s.deadline.Add(blockDur)
	if d := time.Until(s.deadline); d > 0 {
		time.Sleep(d)
	}
	return nil
}

// fill decodes more source frames, mixes them to mono and resamples to the
// analysis rate.
func (s *FileSource) fill() error {
	buf := make([]float32, 2048*s.channels)
	n, err := s.dec.ReadSamples(buf)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return err
	}

	s.frames = append(s.frames, buf[:n]...)
	whole := len(s.frames) / s.channels * s.channels

	for i := 0; i < whole; i += s.channels {
		var sum float32
		for ch := range s.channels {
			sum += s.frames[i+ch]
		}
		s.appendResampled(sum / float32(s.channels))
	}
	s.frames = s.frames[whole:]
	return nil
}

// appendResampled performs linear resampling from the source rate to the
// analysis rate one sample at a time.
func (s *FileSource) appendResampled(sample float32) {
	if s.srcRate == s.rate {
		s.mono = append(s.mono, sample)
		return
	}
	step := float64(s.srcRate) / float64(s.rate)
	for s.resampPos < 1 {
		t := float32(s.resampPos)
		s.mono = append(s.mono, s.resampLast*(1-t)+sample*t)
		s.resampPos += step
	}
	s.resampPos -= 1
	s.resampLast = sample
}

// Close stops monitoring and releases the file.
func (s *FileSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.monitor != nil {
		s.monitor.close()
	}
	return s.file.Close()
}

// TrackTitle returns the ID3 title of an mp3 file, or the base filename
// when no usable tag exists.
func TrackTitle(path string) string {
	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return fallback
	}
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Title"}})
	if err != nil {
		return fallback
	}
	defer tag.Close()
	if title := strings.TrimSpace(tag.Title()); title != "" {
		return title
	}
	return fallback
}

// monitorPlayback tees the mono stream to the default audio output. The
// pipe stays shallow because the file source paces at real time.
type monitorPlayback struct {
	pw     *io.PipeWriter
	player *oto.Player
	buf    []byte
}

var otoNewContext = func(op *oto.NewContextOptions) (*oto.Context, chan struct{}, error) {
	return oto.NewContext(op)
}

func newMonitorPlayback(sampleRate int) (*monitorPlayback, error) {
	ctx, ready, err := otoNewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	pr, pw := io.Pipe()
	player := ctx.NewPlayer(pr)
	player.Play()
	return &monitorPlayback{pw: pw, player: player}, nil
}

func (m *monitorPlayback) write(block []float32) {
	if need := len(block) * 2; cap(m.buf) < need {
		m.buf = make([]byte, need)
	}
	buf := m.buf[:len(block)*2]
	for i, s := range block {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(s*32767)))
	}
	m.pw.Write(buf)
}

func (m *monitorPlayback) close() {
	m.pw.Close()
	m.player.Close()
}
