package state

// Rect is an axis-aligned area on the canvas.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Bounds returns the smallest rectangle covering every point, padded by half
// of each point's line width so round caps are not clipped.
func Bounds(points []StrokePoint) Rect {
	if len(points) == 0 {
		return Rect{}
	}

	first := points[0]
	pad := first.Size / 2
	minX, minY := first.X-pad, first.Y-pad
	maxX, maxY := first.X+pad, first.Y+pad

	for _, p := range points[1:] {
		pad = p.Size / 2
		if p.X-pad < minX {
			minX = p.X - pad
		}
		if p.X+pad > maxX {
			maxX = p.X + pad
		}
		if p.Y-pad < minY {
			minY = p.Y - pad
		}
		if p.Y+pad > maxY {
			maxY = p.Y + pad
		}
	}

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Translate shifts every point by (dx, dy).
func Translate(points []StrokePoint, dx, dy float64) []StrokePoint {
	out := make([]StrokePoint, len(points))
	for i, p := range points {
		p.X += dx
		p.Y += dy
		out[i] = p
	}
	return out
}
