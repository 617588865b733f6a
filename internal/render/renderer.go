package render

import (
	"errors"

	"LocalPaint/internal/state"

	"github.com/sirupsen/logrus"
)

var ErrNoSurface = errors.New("render: no surface")

// Renderer draws recorded points either one segment at a time while the
// pointer moves, or by replaying the whole log.
type Renderer struct {
	surface Surface
	cursor  *state.StrokePoint
}

func NewRenderer(s Surface) *Renderer {
	return &Renderer{surface: s}
}

func (r *Renderer) Surface() Surface { return r.surface }

func (r *Renderer) SetSurface(s Surface) {
	r.surface = s
	r.cursor = nil
}

// Begin moves the drawing cursor to p without drawing.
func (r *Renderer) Begin(p state.StrokePoint) {
	cp := p
	r.cursor = &cp
}

// Extend draws from the cursor to p, styled by the cursor point, and moves
// the cursor. A point that starts a new stroke only moves the cursor.
func (r *Renderer) Extend(p state.StrokePoint, background string) {
	prev := r.cursor
	r.Begin(p)
	if r.surface == nil || prev == nil || p.NewStroke {
		return
	}
	seg, err := segmentBetween(*prev, p, background)
	if err != nil {
		logrus.WithError(err).Warn("render: skipping segment")
		return
	}
	r.surface.Line(seg)
}

// Replay clears the surface to background and draws every segment of points.
func (r *Renderer) Replay(points []state.StrokePoint, background string) error {
	r.cursor = nil
	if r.surface == nil {
		return ErrNoSurface
	}
	bg, err := state.ParseColor(background)
	if err != nil {
		return err
	}
	r.surface.Fill(bg)

	for _, seg := range Segments(points, background) {
		r.surface.Line(seg)
	}
	if n := len(points); n > 0 {
		r.Begin(points[n-1])
	}

	w, h := r.surface.Size()
	logrus.WithFields(logrus.Fields{
		"points": len(points),
		"width":  w,
		"height": h,
	}).Debug("render: replayed log")
	return nil
}

// Clear fills the surface with background and forgets the cursor.
func (r *Renderer) Clear(background string) error {
	return r.Replay(nil, background)
}

// Segments walks points pairwise and returns what a replay strokes. The
// last point never starts a segment, so zero or one point yields nothing.
func Segments(points []state.StrokePoint, background string) []Segment {
	var out []Segment
	for i := 0; i+1 < len(points); i++ {
		next := points[i+1]
		if next.NewStroke {
			continue
		}
		seg, err := segmentBetween(points[i], next, background)
		if err != nil {
			logrus.WithError(err).WithField("index", i).Warn("render: skipping segment")
			continue
		}
		out = append(out, seg)
	}
	return out
}

func segmentBetween(cur, next state.StrokePoint, background string) (Segment, error) {
	name := cur.Color
	if cur.Erase {
		name = background
	}
	c, err := state.ParseColor(name)
	if err != nil {
		return Segment{}, err
	}
	return Segment{
		From:  cur.Position(),
		To:    next.Position(),
		Width: cur.Size,
		Color: c,
	}, nil
}
