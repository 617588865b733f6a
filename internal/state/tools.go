package state

import "math"

// brushSettings is what the eraser saves and gives back.
type brushSettings struct {
	Color string
	Size  float64
}

// Tools holds the toolbar state: active tool, brush style, background and
// the transient status label.
type Tools struct {
	tool       Tool
	color      string
	size       float64
	background string
	previous   brushSettings
	status     Status
}

func NewTools() *Tools {
	return &Tools{
		tool:       ToolBrush,
		color:      DefaultBrushColor,
		size:       DefaultBrushSize,
		background: DefaultBackgroundColor,
		previous:   brushSettings{Size: DefaultBrushSize},
	}
}

func (t *Tools) Tool() Tool         { return t.tool }
func (t *Tools) Color() string      { return t.color }
func (t *Tools) Size() float64      { return t.size }
func (t *Tools) Background() string { return t.background }
func (t *Tools) Status() Status     { return t.status }
func (t *Tools) IsErasing() bool    { return t.tool == ToolEraser }

// Label is the text for the active tool readout.
func (t *Tools) Label() string {
	if t.status != StatusNone {
		return string(t.status)
	}
	return t.tool.String()
}

// SelectEraser stashes the brush settings and paints with the background.
func (t *Tools) SelectEraser() {
	t.status = StatusNone
	if t.tool == ToolEraser {
		return
	}
	t.previous = brushSettings{Color: t.color, Size: t.size}
	t.tool = ToolEraser
	t.color = t.background
	t.size = EraserSize
}

// SelectBrush gives back the settings stashed by SelectEraser.
func (t *Tools) SelectBrush() {
	t.status = StatusNone
	if t.tool == ToolBrush {
		return
	}
	t.tool = ToolBrush
	t.color = t.previous.Color
	if t.color == "" {
		t.color = DefaultBrushColor
	}
	t.size = t.previous.Size
}

// SetColor changes the brush color. While erasing, the eraser keeps tracking
// the background and the new color is applied when the brush comes back.
func (t *Tools) SetColor(c string) error {
	norm, err := NormalizeColor(c)
	if err != nil {
		return err
	}
	if t.tool == ToolEraser {
		t.previous.Color = norm
		return nil
	}
	t.color = norm
	return nil
}

// SetSize clamps size to the brush range. NaN is ignored.
func (t *Tools) SetSize(size float64) {
	if math.IsNaN(size) {
		return
	}
	if size < MinBrushSize {
		size = MinBrushSize
	}
	if size > MaxBrushSize {
		size = MaxBrushSize
	}
	t.size = size
}

// SetBackground changes the bucket color and reports whether it changed.
// The eraser cannot survive a background change, so it falls back to the
// default brush.
func (t *Tools) SetBackground(c string) (bool, error) {
	norm, err := NormalizeColor(c)
	if err != nil {
		return false, err
	}
	if norm == t.background {
		return false, nil
	}
	t.background = norm
	if t.tool == ToolEraser {
		t.ResetBrush()
	}
	return true, nil
}

// ShowStatus replaces the tool label until the next revert.
func (t *Tools) ShowStatus(s Status) {
	t.status = s
}

// ResetBrush is the hard revert: default brush, no status.
func (t *Tools) ResetBrush() {
	t.tool = ToolBrush
	t.status = StatusNone
	t.color = DefaultBrushColor
	t.size = DefaultBrushSize
}
