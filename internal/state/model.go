package state

type Point struct{ X, Y float64 }

// StrokePoint is one recorded sample of the pointer. The JSON names match
// the stored canvas format.
type StrokePoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Size      float64 `json:"size"`
	Color     string  `json:"color"`
	Erase     bool    `json:"erase"`
	NewStroke bool    `json:"newStroke"`
}

func (p StrokePoint) Position() Point {
	return Point{X: p.X, Y: p.Y}
}

type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
)

func (t Tool) String() string {
	if t == ToolEraser {
		return "Eraser"
	}
	return "Brush"
}

// Status is a short-lived label shown in place of the tool name.
type Status string

const (
	StatusNone           Status = ""
	StatusCleared        Status = "Canvas Cleared"
	StatusSaved          Status = "Canvas Saved"
	StatusLoaded         Status = "Canvas Loaded"
	StatusNotFound       Status = "Canvas not found"
	StatusCorrupt        Status = "Canvas corrupt"
	StatusStorageCleared Status = "Local Storage Cleared"
	StatusImageSaved     Status = "Image Saved"
	StatusPDFSaved       Status = "PDF Saved"
)

const (
	DefaultBrushColor      = "#000000"
	DefaultBrushSize       = 10.0
	DefaultBackgroundColor = "#ffffff"
	EraserSize             = 50.0
	MinBrushSize           = 1.0
	MaxBrushSize           = 50.0
)
