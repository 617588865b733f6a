package export

import (
	"fmt"
	"image/color"
	"io"

	"LocalPaint/internal/render"
	"LocalPaint/internal/state"

	"github.com/jung-kurt/gofpdf"
)

const DefaultPDFName = "paint-file.pdf"

// PDFSurface draws segments as vector lines on a single page the size of
// the canvas, one point per pixel.
type PDFSurface struct {
	pdf    *gofpdf.Fpdf
	width  int
	height int
}

func NewPDFSurface(width, height int, title string) *PDFSurface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	// gofpdf swaps the custom size for "L", so the page stays portrait.
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	p.SetTitle(title, true)
	p.SetCreator("LocalPaint", true)
	p.SetAutoPageBreak(false, 0)
	p.SetMargins(0, 0, 0)
	p.AddPage()
	return &PDFSurface{pdf: p, width: width, height: height}
}

func (s *PDFSurface) Size() (int, int) { return s.width, s.height }

func (s *PDFSurface) Fill(c color.Color) {
	r, g, b := rgb(c)
	s.pdf.SetFillColor(r, g, b)
	s.pdf.Rect(0, 0, float64(s.width), float64(s.height), "F")
}

func (s *PDFSurface) Line(seg render.Segment) {
	r, g, b := rgb(seg.Color)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetLineWidth(seg.Width)
	s.pdf.SetLineCapStyle("round")
	s.pdf.Line(seg.From.X, seg.From.Y, seg.To.X, seg.To.Y)
}

// Write finishes the document.
func (s *PDFSurface) Write(w io.Writer) error {
	if err := s.pdf.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}

// WritePDF replays points on a width x height page and writes it to w.
func WritePDF(w io.Writer, points []state.StrokePoint, background string, width, height int, title string) error {
	surface := NewPDFSurface(width, height, title)
	if err := render.NewRenderer(surface).Replay(points, background); err != nil {
		return fmt.Errorf("export: pdf replay: %w", err)
	}
	return surface.Write(w)
}

func rgb(c color.Color) (int, int, int) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B)
}
