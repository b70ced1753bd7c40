package analyzer

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Frequency band edges in Hz.
const (
	bassLow  = 20
	bassHigh = 250
	midHigh  = 4000
	highHigh = 20000
)

// Empirical magnitude scales that map mean band magnitude into [0,1] for
// typical program material at unity gain.
const (
	bassScale = 1000
	midScale  = 500
	highScale = 250
)

// spectral computes per-block magnitude spectra and derives band energies
// and a half-wave-rectified spectral flux for onset detection.
type spectral struct {
	sampleRate float64
	fft        *fourier.FFT
	windowed   []float64
	coeffs     []complex128
	mags       []float64
	prevMags   []float64

	fluxHistory []float64 // rolling window for the adaptive onset threshold
	fluxPos     int
	fluxFill    int
}

// fluxWindow is roughly one second of blocks at 44.1kHz / 512 samples.
const fluxWindow = 86

func newSpectral(blockSize int, sampleRate float64) *spectral {
	bins := blockSize/2 + 1
	return &spectral{
		sampleRate:  sampleRate,
		fft:         fourier.NewFFT(blockSize),
		windowed:    make([]float64, blockSize),
		coeffs:      make([]complex128, bins),
		mags:        make([]float64, bins),
		prevMags:    make([]float64, bins),
		fluxHistory: make([]float64, fluxWindow),
	}
}

// analyze runs the FFT over one block and updates the magnitude spectrum.
// It returns the spectral flux relative to the previous block.
func (s *spectral) analyze(block []float32) float64 {
	copy(s.prevMags, s.mags)

	for i := range s.windowed {
		if i < len(block) {
			s.windowed[i] = float64(block[i])
		} else {
			s.windowed[i] = 0
		}
	}
	window.Hann(s.windowed)

	s.fft.Coefficients(s.coeffs, s.windowed)
	var flux float64
	for i, c := range s.coeffs {
		mag := math.Hypot(real(c), imag(c))
		s.mags[i] = mag
		if d := mag - s.prevMags[i]; d > 0 {
			flux += d
		}
	}
	return flux
}

// onset feeds one flux value into the rolling threshold window and reports
// whether it marks a beat onset. The threshold adapts to the recent mean
// flux so quiet and loud passages trigger comparably.
func (s *spectral) onset(flux float64) bool {
	mean := 0.0
	if s.fluxFill > 0 {
		for i := range s.fluxFill {
			mean += s.fluxHistory[i]
		}
		mean /= float64(s.fluxFill)
	}

	s.fluxHistory[s.fluxPos] = flux
	s.fluxPos = (s.fluxPos + 1) % len(s.fluxHistory)
	if s.fluxFill < len(s.fluxHistory) {
		s.fluxFill++
	}

	// Need some history before the mean is meaningful.
	if s.fluxFill < 8 {
		return false
	}
	return flux > mean*1.5 && flux > 1e-3
}

// bands aggregates the magnitude spectrum into bass/mid/high energies, each
// normalized to [0,1] by its empirical scale.
func (s *spectral) bands() (bass, mid, high float64) {
	binHz := s.sampleRate / float64(s.fft.Len())

	var sums [3]float64
	var counts [3]int
	for i, mag := range s.mags {
		freq := float64(i) * binHz
		switch {
		case freq >= bassLow && freq <= bassHigh:
			sums[0] += mag
			counts[0]++
		case freq > bassHigh && freq <= midHigh:
			sums[1] += mag
			counts[1]++
		case freq > midHigh && freq <= highHigh:
			sums[2] += mag
			counts[2]++
		}
	}

	if counts[0] > 0 {
		bass = clamp01(sums[0] / float64(counts[0]) / bassScale)
	}
	if counts[1] > 0 {
		mid = clamp01(sums[1] / float64(counts[1]) / midScale)
	}
	if counts[2] > 0 {
		high = clamp01(sums[2] / float64(counts[2]) / highScale)
	}
	return bass, mid, high
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
