package ui

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"
	"time"

	"LocalPaint/internal/render"
	"LocalPaint/internal/state"
	"LocalPaint/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemKV() *memKV { return &memKV{values: map[string]string{}} }

func (m *memKV) String(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

func (m *memKV) SetString(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *memKV) RemoveValue(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

type fakeTimer struct {
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) state.Timer {
	t := &fakeTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

// advance fires every timer that is still armed.
func (c *fakeClock) advance() {
	for _, t := range c.timers {
		if t.stopped || t.fired {
			continue
		}
		t.fired = true
		t.f()
	}
}

func newTestController(t *testing.T) (*Controller, *fakeClock, *memKV) {
	t.Helper()
	clock := &fakeClock{}
	kv := newMemKV()
	c := NewController(ControllerOptions{Store: kv, Clock: clock})
	t.Cleanup(c.Close)
	return c, clock, kv
}

func pixel(t *testing.T, c *Controller, x, y int) color.RGBA {
	t.Helper()
	img := c.Image()
	require.NotNil(t, img)
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func drawLine(c *Controller, from, to state.Point) {
	c.PointerDown(from)
	c.PointerMove(state.Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2})
	c.PointerMove(to)
	c.PointerUp()
}

func TestController_RecordsStroke(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Resize(100, 100)
	require.NoError(t, c.SetBrushColor("red"))

	drawLine(c, state.Point{X: 10, Y: 50}, state.Point{X: 90, Y: 50})

	points := c.Points()
	require.Len(t, points, 3)
	assert.True(t, points[0].NewStroke)
	assert.False(t, points[1].NewStroke)
	assert.False(t, points[2].NewStroke)
	for _, p := range points {
		assert.Equal(t, "#ff0000", p.Color)
		assert.Equal(t, float64(state.DefaultBrushSize), p.Size)
		assert.False(t, p.Erase)
	}
	assert.Equal(t, color.RGBA{R: 255, A: 255}, pixel(t, c, 50, 50))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, pixel(t, c, 50, 10))
}

func TestController_MoveWithoutPressIgnored(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Resize(50, 50)

	c.PointerMove(state.Point{X: 5, Y: 5})
	assert.Empty(t, c.Points())

	c.PointerDown(state.Point{X: 1, Y: 1})
	c.PointerUp()
	c.PointerMove(state.Point{X: 5, Y: 5})
	assert.Len(t, c.Points(), 1)
	assert.False(t, c.Drawing())
}

func TestController_DrawsBeforeMountWithoutPanicking(t *testing.T) {
	c, _, _ := newTestController(t)
	drawLine(c, state.Point{X: 0, Y: 0}, state.Point{X: 10, Y: 10})
	assert.Len(t, c.Points(), 3)
	assert.Nil(t, c.Image())

	c.Resize(20, 20)
	assert.NotEqual(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, pixel(t, c, 5, 5))
}

func TestController_EraserRecordsBackground(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Resize(100, 100)
	require.NoError(t, c.SetBackground("#00ff00"))
	c.SelectEraser()

	drawLine(c, state.Point{X: 10, Y: 50}, state.Point{X: 90, Y: 50})

	for _, p := range c.Points() {
		assert.True(t, p.Erase)
		assert.Equal(t, "#00ff00", p.Color)
		assert.Equal(t, float64(state.EraserSize), p.Size)
	}
	assert.Equal(t, "Eraser", c.Label())
}

func TestController_BackgroundChangeWhileErasing(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Resize(100, 100)
	require.NoError(t, c.SetBrushColor("#123456"))
	c.SelectEraser()

	drawLine(c, state.Point{X: 10, Y: 50}, state.Point{X: 90, Y: 50})
	require.NoError(t, c.SetBackground("#0000ff"))

	tools := c.Tools()
	assert.Equal(t, state.ToolBrush, tools.Tool())
	assert.Equal(t, state.DefaultBrushColor, tools.Color())
	assert.Equal(t, float64(state.DefaultBrushSize), tools.Size())
	// Erased pixels follow the new background.
	assert.Equal(t, color.RGBA{B: 255, A: 255}, pixel(t, c, 50, 50))
}

func TestController_InvalidColors(t *testing.T) {
	c, _, _ := newTestController(t)
	assert.ErrorIs(t, c.SetBrushColor("not-a-color"), state.ErrInvalidColor)
	assert.ErrorIs(t, c.SetBackground("#12"), state.ErrInvalidColor)
	assert.Equal(t, state.DefaultBrushColor, c.Tools().Color())
	assert.Equal(t, state.DefaultBackgroundColor, c.Tools().Background())
}

func TestController_IncrementalMatchesReplay(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Resize(120, 120)
	require.NoError(t, c.SetBrushColor("navy"))
	c.SetBrushSize(7)
	drawLine(c, state.Point{X: 10, Y: 10}, state.Point{X: 100, Y: 60})
	c.SelectEraser()
	drawLine(c, state.Point{X: 10, Y: 60}, state.Point{X: 100, Y: 10})
	c.SelectBrush()
	drawLine(c, state.Point{X: 60, Y: 110}, state.Point{X: 60, Y: 5})

	incremental := append([]byte(nil), rgbaPix(t, c)...)

	c.Resize(121, 121)
	c.Resize(120, 120)
	assert.Equal(t, incremental, rgbaPix(t, c))
}

func rgbaPix(t *testing.T, c *Controller) []byte {
	t.Helper()
	img, ok := c.Image().(*image.RGBA)
	require.True(t, ok)
	return img.Pix
}

func TestController_ResetAndRevert(t *testing.T) {
	c, clock, _ := newTestController(t)
	c.Resize(50, 50)
	require.NoError(t, c.SetBrushColor("#ff00ff"))
	c.SetBrushSize(30)
	drawLine(c, state.Point{X: 1, Y: 1}, state.Point{X: 40, Y: 40})

	c.Reset()
	assert.Empty(t, c.Points())
	assert.Equal(t, string(state.StatusCleared), c.Label())
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, pixel(t, c, 20, 20))

	clock.advance()
	assert.Equal(t, "Brush", c.Label())
	assert.Equal(t, state.DefaultBrushColor, c.Tools().Color())
	assert.Equal(t, float64(state.DefaultBrushSize), c.Tools().Size())
}

func TestController_SecondStatusPostponesRevert(t *testing.T) {
	c, clock, _ := newTestController(t)
	reverts := 0
	c.OnChange = func() {
		if c.Label() == "Brush" {
			reverts++
		}
	}

	c.Reset()
	require.NoError(t, c.Save())
	require.Len(t, clock.timers, 2)
	assert.True(t, clock.timers[0].stopped)
	assert.Equal(t, string(state.StatusSaved), c.Label())

	clock.advance()
	assert.Equal(t, 1, reverts)
	assert.Equal(t, "Brush", c.Label())
}

func TestController_StatusDuringQueuedRevertSurvives(t *testing.T) {
	clock := &fakeClock{}
	var queue []func()
	c := NewController(ControllerOptions{
		Store:    newMemKV(),
		Clock:    clock,
		Dispatch: func(f func()) { queue = append(queue, f) },
	})
	t.Cleanup(c.Close)

	c.Reset()
	clock.advance()
	require.Len(t, queue, 1)

	require.NoError(t, c.Save())
	for _, f := range queue {
		f()
	}
	assert.Equal(t, string(state.StatusSaved), c.Label())

	queue = nil
	clock.advance()
	require.Len(t, queue, 1)
	queue[0]()
	assert.Equal(t, "Brush", c.Label())
}

func TestController_SaveLoadRoundTrip(t *testing.T) {
	c, _, kv := newTestController(t)
	c.Resize(60, 60)
	drawLine(c, state.Point{X: 5, Y: 5}, state.Point{X: 50, Y: 50})
	saved := c.Points()

	require.NoError(t, c.Save())
	assert.NotEmpty(t, kv.String(storage.DefaultKey))

	c.Reset()
	require.NoError(t, c.Load())
	assert.Equal(t, saved, c.Points())
	assert.Equal(t, string(state.StatusLoaded), c.Label())
}

func TestController_LoadAfterClearStorageIsNotFound(t *testing.T) {
	c, _, _ := newTestController(t)
	drawLine(c, state.Point{X: 5, Y: 5}, state.Point{X: 50, Y: 50})
	require.NoError(t, c.Save())

	c.ClearStorage()
	assert.Equal(t, string(state.StatusStorageCleared), c.Label())

	require.NoError(t, c.Load())
	assert.Equal(t, string(state.StatusNotFound), c.Label())
	assert.Len(t, c.Points(), 3)
}

func TestController_LoadCorruptKeepsLog(t *testing.T) {
	c, _, kv := newTestController(t)
	drawLine(c, state.Point{X: 5, Y: 5}, state.Point{X: 50, Y: 50})
	before := c.Points()

	kv.SetString(storage.DefaultKey, `[{"x":1}]`)
	err := c.Load()
	assert.ErrorIs(t, err, storage.ErrCorrupt)
	assert.Equal(t, string(state.StatusCorrupt), c.Label())
	assert.Equal(t, before, c.Points())
}

func TestController_ExportsNeedSurface(t *testing.T) {
	c, _, _ := newTestController(t)

	_, err := c.DataURI()
	assert.ErrorIs(t, err, render.ErrNoSurface)
	assert.ErrorIs(t, c.WriteJPEG(&bytes.Buffer{}), render.ErrNoSurface)
	assert.ErrorIs(t, c.WritePDF(&bytes.Buffer{}), render.ErrNoSurface)
	assert.Equal(t, "Brush", c.Label())
}

func TestController_Exports(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Resize(40, 30)
	drawLine(c, state.Point{X: 5, Y: 5}, state.Point{X: 30, Y: 20})

	uri, err := c.DataURI()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	assert.Equal(t, string(state.StatusImageSaved), c.Label())

	var jpg bytes.Buffer
	require.NoError(t, c.WriteJPEG(&jpg))
	cfg, format, err := image.DecodeConfig(&jpg)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)

	var pdf bytes.Buffer
	require.NoError(t, c.WritePDF(&pdf))
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, string(state.StatusPDFSaved), c.Label())
}
