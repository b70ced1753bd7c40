// Package analyzer extracts lighting-relevant features from a live audio
// stream: beat events, BPM, smoothed intensity, frequency band energies,
// build/drop flags and a genre hint. Consumers read an atomically published
// Snapshot; accepted beats additionally flow through a Queue.
package analyzer

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/googoolist/lightshow-2/internal/audio"
	"github.com/googoolist/lightshow-2/internal/config"
)

// BPM bounds for accepted estimates.
const (
	MinBPM = config.MinBPM
	MaxBPM = config.MaxBPM
)

const (
	intensityHistory = 5   // rolling RMS samples averaged before smoothing
	intensityRetain  = 0.7 // exponential smoothing: retained share of the old value
)

// Analyzer runs the full per-block feature extraction pipeline. One
// goroutine (the audio loop) calls Process; any number of goroutines may
// call Snapshot.
type Analyzer struct {
	log   *log.Logger
	queue *Queue

	spectral *spectral
	beats    *beatTracker
	trend    *buildDropDetector
	genre    *genreDetector

	rmsHist   []float64
	intensity float64

	silentFrames int
	started      bool
	start        time.Time
	now          func() time.Time

	mu   sync.Mutex
	snap Snapshot
}

// New creates an Analyzer publishing beats to queue.
func New(queue *Queue, logger *log.Logger) *Analyzer {
	return &Analyzer{
		log:      logger,
		queue:    queue,
		spectral: newSpectral(config.BlockSize, config.SampleRate),
		beats:    newBeatTracker(),
		trend:    newBuildDropDetector(),
		genre:    newGenreDetector(),
		now:      time.Now,
	}
}

// Run reads blocks from src until it fails fatally or stop is closed.
// Transient read errors (input overflow) log and retry after a short pause;
// fatal errors leave the last snapshot frozen and exit the loop.
func (a *Analyzer) Run(src audio.Source, stop <-chan struct{}) {
	block := make([]float32, config.BlockSize)
	for {
		select {
		case <-stop:
			return
		default:
		}

		if err := src.Read(block); err != nil {
			if audio.Transient(err) {
				a.log.Printf("audio read: %v", err)
				time.Sleep(100 * time.Millisecond)
				continue
			}
			a.log.Printf("audio source stopped: %v", err)
			return
		}
		a.Process(block)
	}
}

// Process analyzes one mono block and publishes a new snapshot.
func (a *Analyzer) Process(block []float32) {
	if !a.started {
		a.start = a.now()
		a.started = true
	}
	elapsed := a.now().Sub(a.start).Seconds()

	flux := a.spectral.analyze(block)
	beat := false
	if a.spectral.onset(flux) && a.beats.accept(elapsed) {
		beat = true
		a.queue.Push(BeatEvent{
			Timestamp: elapsed,
			BPM:       a.beats.bpm,
			Intensity: a.intensity,
		})
	}

	loudness := rms(block)
	a.updateIntensity(loudness)
	bass, mid, high := a.spectral.bands()
	a.trend.update(a.intensity, elapsed)
	a.genre.update(a.beats.bpm, bass, beat)

	if loudness < config.SilenceThreshold {
		a.silentFrames++
	} else {
		a.silentFrames = 0
	}

	a.mu.Lock()
	a.snap = Snapshot{
		BPM:         a.beats.bpm,
		Intensity:   a.intensity,
		AudioActive: a.silentFrames < config.SilenceFrameCount,
		Bass:        bass,
		Mid:         mid,
		High:        high,
		Building:    a.trend.building(),
		Drop:        a.trend.drop(),
		Genre:       a.genre.current(),
	}
	a.mu.Unlock()
}

// Snapshot returns a copy of the most recently published features. A
// never-started analyzer reports AudioActive=false.
func (a *Analyzer) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap
}

// updateIntensity folds one RMS sample into the rolling average and then
// exponentially smooths it against the previous value, clamped to [0,1].
func (a *Analyzer) updateIntensity(sample float64) {
	a.rmsHist = append(a.rmsHist, sample)
	if len(a.rmsHist) > intensityHistory {
		a.rmsHist = a.rmsHist[1:]
	}
	smoothed := mean(a.rmsHist)
	a.intensity = clamp01(intensityRetain*a.intensity + (1-intensityRetain)*smoothed)
}

func rms(block []float32) float64 {
	if len(block) == 0 {
		return 0
	}
	var sum float64
	for _, s := range block {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(block)))
}
