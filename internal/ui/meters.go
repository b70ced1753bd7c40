package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/harmonica"
)

// springMeters smooths the raw feature values so the bars glide instead of
// jittering at the analysis rate.
type springMeters struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newSpringMeters(fps int, n int) springMeters {
	return springMeters{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.8),
		pos:    make([]float64, n),
		vel:    make([]float64, n),
	}
}

func (s *springMeters) step(i int, target float64) float64 {
	p, v := s.spring.Update(s.pos[i], s.vel[i], target)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	s.pos[i] = p
	s.vel[i] = v
	return p
}

func newMeterBar() progress.Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	bar.ShowPercentage = false
	return bar
}
