// Package render replays a stroke log onto a drawing surface.
package render

import (
	"image/color"

	"LocalPaint/internal/state"
)

// Segment is one stroked line between two consecutive samples of a stroke.
type Segment struct {
	From  state.Point
	To    state.Point
	Width float64
	Color color.NRGBA
}

// Surface is anything a segment list can be drawn on.
type Surface interface {
	Size() (width, height int)
	// Fill paints the whole surface with c, discarding previous content.
	Fill(c color.Color)
	// Line strokes one segment with round caps.
	Line(seg Segment)
}
