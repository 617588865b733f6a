package ui

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"LocalPaint/internal/export"
	"LocalPaint/internal/render"
	"LocalPaint/internal/state"
	"LocalPaint/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ControllerOptions wires a Controller to its collaborators. Zero values pick
// the production defaults.
type ControllerOptions struct {
	Store       storage.KeyValue
	StorageKey  string
	RevertDelay time.Duration
	JPEGQuality int
	Clock       state.Clock
	// Dispatch runs f on the UI goroutine. Nil runs it inline.
	Dispatch func(f func())
}

// Controller owns the stroke log, tool state, renderer, store and revert
// timer of one canvas. All methods are meant to be called from the UI
// goroutine.
type Controller struct {
	id       uuid.UUID
	strokes  *state.StrokeLog
	tools    *state.Tools
	raster   *render.Raster
	renderer *render.Renderer
	store    *storage.Store
	revert   *state.DelayedTask
	dispatch func(func())
	quality  int
	drawing  bool

	// OnChange is called after the canvas or the tool readout changed.
	OnChange func()
}

func NewController(opts ControllerOptions) *Controller {
	if opts.RevertDelay <= 0 {
		opts.RevertDelay = 2 * time.Second
	}
	if opts.JPEGQuality == 0 {
		opts.JPEGQuality = export.DefaultQuality
	}
	if opts.Dispatch == nil {
		opts.Dispatch = func(f func()) { f() }
	}

	c := &Controller{
		id:       uuid.New(),
		strokes:  state.NewStrokeLog(),
		tools:    state.NewTools(),
		renderer: render.NewRenderer(nil),
		store:    storage.New(opts.Store, opts.StorageKey),
		dispatch: opts.Dispatch,
		quality:  opts.JPEGQuality,
	}
	c.revert = state.NewDispatchedTask(opts.Clock, opts.RevertDelay, c.dispatch, c.revertTools)
	c.logger().WithField("key", c.store.Key()).Info("canvas controller ready")
	return c
}

func (c *Controller) ID() uuid.UUID               { return c.id }
func (c *Controller) Tools() *state.Tools         { return c.tools }
func (c *Controller) Label() string               { return c.tools.Label() }
func (c *Controller) Points() []state.StrokePoint { return c.strokes.Points() }

// Image is the current raster, or nil before the canvas is mounted.
func (c *Controller) Image() image.Image {
	if c.raster == nil {
		return nil
	}
	return c.raster.Image()
}

func (c *Controller) logger() *logrus.Entry {
	return logrus.WithField("board", c.id.String())
}

func (c *Controller) changed() {
	if c.OnChange != nil {
		c.OnChange()
	}
}

// Resize mounts the surface on first use and replays the log at the new size.
func (c *Controller) Resize(width, height int) {
	if c.raster == nil {
		c.raster = render.NewRaster(width, height)
		c.renderer.SetSurface(c.raster)
	} else {
		if w, h := c.raster.Size(); w == width && h == height {
			return
		}
		c.raster.Resize(width, height)
	}
	c.replay()

	w, h := c.raster.Size()
	c.logger().WithFields(logrus.Fields{"width": w, "height": h}).Debug("canvas resized")
	c.changed()
}

func (c *Controller) replay() {
	if err := c.renderer.Replay(c.strokes.Points(), c.tools.Background()); err != nil && !errors.Is(err, render.ErrNoSurface) {
		c.logger().WithError(err).Warn("canvas replay failed")
	}
}

// PointerDown starts a new stroke at pos.
func (c *Controller) PointerDown(pos state.Point) {
	c.drawing = true
	p := c.record(pos, true)
	c.renderer.Begin(p)
	c.changed()
}

// PointerMove extends the current stroke. Moves without a pressed pointer are
// ignored.
func (c *Controller) PointerMove(pos state.Point) {
	if !c.drawing {
		return
	}
	p := c.record(pos, false)
	c.renderer.Extend(p, c.tools.Background())
	c.changed()
}

func (c *Controller) PointerUp() {
	c.drawing = false
}

func (c *Controller) Drawing() bool { return c.drawing }

func (c *Controller) record(pos state.Point, newStroke bool) state.StrokePoint {
	return c.strokes.Record(pos, c.tools.Size(), c.tools.Color(), c.tools.IsErasing(), newStroke)
}

func (c *Controller) SelectBrush() {
	c.tools.SelectBrush()
	c.changed()
}

func (c *Controller) SelectEraser() {
	c.tools.SelectEraser()
	c.changed()
}

func (c *Controller) SetBrushColor(color string) error {
	if err := c.tools.SetColor(color); err != nil {
		return err
	}
	c.changed()
	return nil
}

func (c *Controller) SetBrushSize(size float64) {
	c.tools.SetSize(size)
	c.changed()
}

// SetBackground recolors the canvas. Erase strokes follow the new color.
func (c *Controller) SetBackground(color string) error {
	changed, err := c.tools.SetBackground(color)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	c.replay()
	c.logger().WithField("background", c.tools.Background()).Info("background changed")
	c.changed()
	return nil
}

// Reset clears the log and the canvas.
func (c *Controller) Reset() {
	c.strokes.Clear()
	c.replay()
	c.logger().Info("canvas cleared")
	c.flash(state.StatusCleared)
}

// Save writes the log to local storage.
func (c *Controller) Save() error {
	if err := c.store.Save(c.strokes.Points()); err != nil {
		return err
	}
	c.flash(state.StatusSaved)
	return nil
}

// Load replaces the log with the stored one and replays it. A missing entry
// only updates the status. Corrupt data leaves the log as it was.
func (c *Controller) Load() error {
	points, err := c.store.Load()
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.flash(state.StatusNotFound)
		return nil
	case errors.Is(err, storage.ErrCorrupt):
		c.flash(state.StatusCorrupt)
		return err
	case err != nil:
		return err
	}
	c.strokes.Replace(points)
	c.replay()
	c.flash(state.StatusLoaded)
	return nil
}

func (c *Controller) ClearStorage() {
	c.store.Clear()
	c.flash(state.StatusStorageCleared)
}

// DataURI returns the canvas as a JPEG data URI.
func (c *Controller) DataURI() (string, error) {
	if c.raster == nil {
		return "", render.ErrNoSurface
	}
	uri, err := export.DataURI(c.raster.Image(), c.quality)
	if err != nil {
		return "", err
	}
	c.flash(state.StatusImageSaved)
	return uri, nil
}

// WriteJPEG encodes the canvas to w.
func (c *Controller) WriteJPEG(w io.Writer) error {
	if c.raster == nil {
		return render.ErrNoSurface
	}
	if err := export.WriteJPEG(w, c.raster.Image(), c.quality); err != nil {
		return err
	}
	c.logger().Info("canvas exported as jpeg")
	c.flash(state.StatusImageSaved)
	return nil
}

// WritePDF replays the log onto a page the size of the canvas.
func (c *Controller) WritePDF(w io.Writer) error {
	if c.raster == nil {
		return render.ErrNoSurface
	}
	width, height := c.raster.Size()
	title := fmt.Sprintf("LocalPaint %s", c.id)
	if err := export.WritePDF(w, c.strokes.Points(), c.tools.Background(), width, height, title); err != nil {
		return err
	}
	c.logger().Info("canvas exported as pdf")
	c.flash(state.StatusPDFSaved)
	return nil
}

// flash shows a transient status and (re)arms the revert.
func (c *Controller) flash(s state.Status) {
	c.tools.ShowStatus(s)
	c.revert.Schedule()
	c.changed()
}

func (c *Controller) revertTools() {
	c.tools.ResetBrush()
	c.logger().Debug("tools reverted to default brush")
	c.changed()
}

// Close drops a pending revert.
func (c *Controller) Close() {
	c.revert.Cancel()
}
