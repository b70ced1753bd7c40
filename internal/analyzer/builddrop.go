package analyzer

const (
	trendWindow   = 30  // intensity samples kept for trend detection
	trendRecent   = 10  // most-recent samples compared against the rest
	buildRatio    = 1.2 // recent average must exceed older average by 20%
	dropRatio     = 1.5 // instantaneous spike over recent average
	dropHoldTime  = 1.0 // seconds before a drop expires on its own
)

type trendPhase int

const (
	phaseNormal trendPhase = iota
	phaseBuilding
	phaseDrop
)

// buildDropDetector tracks the smoothed intensity trend and flags build-ups
// (sustained rise) and drops (spike during a build). At most one of the two
// flags is set at any time; a drop expires dropHoldTime after entry even
// with no further input.
type buildDropDetector struct {
	trend    []float64
	phase    trendPhase
	dropTime float64
}

func newBuildDropDetector() *buildDropDetector {
	return &buildDropDetector{trend: make([]float64, 0, trendWindow)}
}

func (d *buildDropDetector) update(intensity, now float64) {
	d.trend = append(d.trend, intensity)
	if len(d.trend) > trendWindow {
		d.trend = d.trend[1:]
	}

	if d.phase == phaseDrop {
		if now-d.dropTime > dropHoldTime {
			d.phase = phaseNormal
		}
		return
	}

	if len(d.trend) < trendRecent {
		return
	}

	recent := d.trend[len(d.trend)-trendRecent:]
	older := d.trend[:len(d.trend)-trendRecent]
	recentAvg := mean(recent)
	olderAvg := recentAvg
	if len(older) > 0 {
		olderAvg = mean(older)
	}

	if d.phase == phaseNormal && recentAvg > olderAvg*buildRatio {
		d.phase = phaseBuilding
	}
	if d.phase == phaseBuilding && intensity > recentAvg*dropRatio {
		d.phase = phaseDrop
		d.dropTime = now
	}
}

func (d *buildDropDetector) building() bool { return d.phase == phaseBuilding }
func (d *buildDropDetector) drop() bool     { return d.phase == phaseDrop }

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
