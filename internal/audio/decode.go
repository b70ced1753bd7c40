package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// --- WAV ---

type wavSource struct {
	dec   *wav.Decoder
	buf   *goaudio.IntBuffer
	scale float32
}

func newWAVSource(f *os.File) (*wavSource, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	return &wavSource{
		dec:   dec,
		scale: float32(int64(1) << (bitDepth - 1)),
	}, nil
}

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if s.buf == nil || len(s.buf.Data) != len(dst) {
		s.buf = &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: int(s.dec.NumChans),
				SampleRate:  int(s.dec.SampleRate),
			},
			Data: make([]int, len(dst)),
		}
	}
	n, err := s.dec.PCMBuffer(s.buf)
	for i := range n {
		dst[i] = float32(s.buf.Data[i]) / s.scale
	}
	if n == 0 && err == nil {
		err = io.EOF
	}
	return n, err
}

func (s *wavSource) SampleRate() int { return int(s.dec.SampleRate) }
func (s *wavSource) Channels() int { return int(s.dec.NumChans) }

// --- MP3 ---

type mp3Source struct {
	dec *mp3.Decoder
	raw []byte
}

func newMP3Source(f *os.File) (*mp3Source, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}
	return &mp3Source{dec: dec}, nil
}

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	if need := len(dst) * 2; cap(s.raw) < need {
		s.raw = make([]byte, need)
	}
	raw := s.raw[:len(dst)*2]
	n, err := s.dec.Read(raw)
	samples := n / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		dst[i] = float32(v) / 32768
	}
	return samples, err
}

// go-mp3 always outputs at the decoder's reported rate, stereo s16le.
func (s *mp3Source) SampleRate() int { return s.dec.SampleRate() }
func (s *mp3Source) Channels() int { return 2 }

// --- FLAC ---

type flacSource struct {
	stream  *flac.Stream
	pending []float32
}

func newFLACSource(f *os.File) (*flacSource, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	return &flacSource{stream: stream}, nil
}

func (s *flacSource) ReadSamples(dst []float32) (int, error) {
	if len(s.pending) == 0 {
		frame, err := s.stream.ParseNext()
		if err != nil {
			return 0, err
		}
		bps := int(s.stream.Info.BitsPerSample)
		scale := float32(int64(1) << (bps - 1))
		channels := len(frame.Subframes)
		nSamples := int(frame.Subframes[0].NSamples)
		for i := range nSamples {
			for ch := range channels {
				s.pending = append(s.pending, float32(frame.Subframes[ch].Samples[i])/scale)
			}
		}
	}
	n := copy(dst, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

func (s *flacSource) SampleRate() int { return int(s.stream.Info.SampleRate) }
func (s *flacSource) Channels() int { return int(s.stream.Info.NChannels) }

// --- OGG Vorbis ---

type oggSource struct {
	reader *oggvorbis.Reader
}

func newOGGSource(f *os.File) (*oggSource, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	return &oggSource{reader: reader}, nil
}

func (s *oggSource) ReadSamples(dst []float32) (int, error) {
	return s.reader.Read(dst)
}

func (s *oggSource) SampleRate() int { return s.reader.SampleRate() }
func (s *oggSource) Channels() int { return s.reader.Channels() }
