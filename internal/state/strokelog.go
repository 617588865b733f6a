package state

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// StrokeLog is the ordered, append-only record of everything drawn on the
// canvas. Every write installs a fresh slice, so a slice handed out by
// Points is never modified afterwards.
type StrokeLog struct {
	points []StrokePoint
	mu     sync.RWMutex
}

func NewStrokeLog() *StrokeLog {
	return &StrokeLog{points: make([]StrokePoint, 0)}
}

// Record appends one sample and returns it.
func (l *StrokeLog) Record(pos Point, size float64, color string, erase, newStroke bool) StrokePoint {
	p := StrokePoint{
		X:         pos.X,
		Y:         pos.Y,
		Size:      size,
		Color:     color,
		Erase:     erase,
		NewStroke: newStroke,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]StrokePoint, len(l.points), len(l.points)+1)
	copy(next, l.points)
	l.points = append(next, p)

	logrus.WithFields(logrus.Fields{
		"x":          p.X,
		"y":          p.Y,
		"new_stroke": p.NewStroke,
		"len":        len(l.points),
	}).Debug("stroke point recorded")
	return p
}

// Points returns the log in recorded order.
func (l *StrokeLog) Points() []StrokePoint {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]StrokePoint, len(l.points))
	copy(out, l.points)
	return out
}

func (l *StrokeLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.points)
}

// Last returns the most recent sample, if any.
func (l *StrokeLog) Last() (StrokePoint, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.points) == 0 {
		return StrokePoint{}, false
	}
	return l.points[len(l.points)-1], true
}

func (l *StrokeLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.points = make([]StrokePoint, 0)
}

// Replace swaps the whole log for points.
func (l *StrokeLog) Replace(points []StrokePoint) {
	next := make([]StrokePoint, len(points))
	copy(next, points)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.points = next
}
