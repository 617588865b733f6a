package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Raster is a pixel surface backed by a gg drawing context.
type Raster struct {
	dc *gg.Context
}

func NewRaster(width, height int) *Raster {
	return &Raster{dc: gg.NewContext(clampDim(width), clampDim(height))}
}

func (r *Raster) Size() (int, int) {
	return r.dc.Width(), r.dc.Height()
}

func (r *Raster) Fill(c color.Color) {
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *Raster) Line(seg Segment) {
	r.dc.SetLineWidth(seg.Width)
	r.dc.SetLineCap(gg.LineCapRound)
	r.dc.SetColor(seg.Color)
	r.dc.MoveTo(seg.From.X, seg.From.Y)
	r.dc.LineTo(seg.To.X, seg.To.Y)
	r.dc.Stroke()
}

// Resize reallocates the pixels. The old content is dropped; callers replay.
func (r *Raster) Resize(width, height int) {
	r.dc = gg.NewContext(clampDim(width), clampDim(height))
}

func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
