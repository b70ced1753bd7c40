package analyzer

import "sort"

const (
	beatHistorySize = 8
	beatDebounce    = 0.1 // seconds; onsets closer than this are detector glitches
	minInterval     = 0.2 // 300 BPM
	maxInterval     = 2.0 // 30 BPM
)

// beatTracker turns accepted onsets into a BPM estimate using the median
// inter-beat interval of the last eight beats.
type beatTracker struct {
	timestamps []float64
	lastBeat   float64
	bpm        float64
}

func newBeatTracker() *beatTracker {
	return &beatTracker{lastBeat: -beatDebounce}
}

// accept records an onset at the given time. It returns false when the
// onset falls inside the debounce window, in which case no state changes.
func (b *beatTracker) accept(now float64) bool {
	if now-b.lastBeat < beatDebounce {
		return false
	}
	b.lastBeat = now

	b.timestamps = append(b.timestamps, now)
	if len(b.timestamps) > beatHistorySize {
		b.timestamps = b.timestamps[1:]
	}

	if bpm, ok := b.estimate(); ok {
		b.bpm = bpm
	}
	return true
}

// estimate computes BPM from the surviving inter-beat intervals. Intervals
// outside [minInterval, maxInterval] are discarded as glitches.
func (b *beatTracker) estimate() (float64, bool) {
	if len(b.timestamps) < 2 {
		return 0, false
	}

	intervals := make([]float64, 0, len(b.timestamps)-1)
	for i := 1; i < len(b.timestamps); i++ {
		iv := b.timestamps[i] - b.timestamps[i-1]
		if iv > minInterval && iv < maxInterval {
			intervals = append(intervals, iv)
		}
	}
	if len(intervals) == 0 {
		return 0, false
	}

	bpm := 60.0 / median(intervals)
	if bpm < MinBPM {
		bpm = MinBPM
	}
	if bpm > MaxBPM {
		bpm = MaxBPM
	}
	return bpm, true
}

func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
