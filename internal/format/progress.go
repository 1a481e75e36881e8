package format

import (
	"fmt"
	"strings"
	"time"
)

// ProgressState tracks the completion fraction of several concurrent
// calculators. It is not safe for concurrent use; the single goroutine that
// drains the progress channel owns it.
type ProgressState struct {
	progresses     []float64
	numCalculators int
}

// NewProgressState returns a state for n calculators, all at zero.
func NewProgressState(n int) *ProgressState {
	if n < 0 {
		n = 0
	}
	return &ProgressState{progresses: make([]float64, n), numCalculators: n}
}

// Update records the fraction done of calculator i, clamped to [0, 1].
// Out of range indices are ignored.
func (s *ProgressState) Update(i int, value float64) {
	if i < 0 || i >= len(s.progresses) {
		return
	}
	s.progresses[i] = clamp01(value)
}

// CalculateAverage returns the mean fraction over all calculators.
func (s *ProgressState) CalculateAverage() float64 {
	if s.numCalculators == 0 {
		return 0
	}
	var sum float64
	for _, p := range s.progresses {
		sum += p
	}
	return sum / float64(s.numCalculators)
}

// ProgressWithETA extends ProgressState with a smoothed progress rate used
// to estimate the remaining time.
type ProgressWithETA struct {
	*ProgressState
	numCalculators int
	startTime      time.Time
	lastUpdate     time.Time
	lastAverage    float64
	// progressRate is the smoothed fraction completed per second.
	progressRate float64
}

// etaSmoothing is the weight of the newest rate sample.
const etaSmoothing = 0.3

// maxETA caps estimates derived from a very slow rate.
const maxETA = 24 * time.Hour

// NewProgressWithETA returns a tracker for n calculators started now.
func NewProgressWithETA(n int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState:  NewProgressState(n),
		numCalculators: n,
		startTime:      now,
		lastUpdate:     now,
	}
}

// UpdateWithETA records an update and returns the new average and ETA.
func (p *ProgressWithETA) UpdateWithETA(i int, value float64) (float64, time.Duration) {
	p.Update(i, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if dt := now.Sub(p.lastUpdate).Seconds(); dt > 0 && avg > p.lastAverage {
		rate := (avg - p.lastAverage) / dt
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = etaSmoothing*rate + (1-etaSmoothing)*p.progressRate
		}
	}
	p.lastUpdate, p.lastAverage = now, avg
	return avg, p.GetETA()
}

// GetETA returns the estimated remaining time, or 0 while unknown.
func (p *ProgressWithETA) GetETA() time.Duration {
	avg := p.CalculateAverage()
	if p.progressRate <= 0 || avg <= 0 || avg >= 1 {
		return 0
	}
	eta := time.Duration((1 - avg) / p.progressRate * float64(time.Second))
	return min(eta, maxETA)
}

// Elapsed returns the time since the tracker was created.
func (p *ProgressWithETA) Elapsed() time.Duration { return time.Since(p.startTime) }

// FormatETA renders an estimate as "45s", "2m30s" or "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m, s := int(eta.Minutes()), int(eta.Seconds())%60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h, m := int(eta.Hours()), int(eta.Minutes())%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}

// ProgressBar renders a bar of the given length filled in proportion to
// progress, clamped to [0, 1].
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[████░░░░]  50.0% ETA: 30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
