package api

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/sketchtx/clock"
	"github.com/matt-g-everett/sketchtx/shape"
	"github.com/matt-g-everett/sketchtx/stream"
	"github.com/matt-g-everett/sketchtx/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	controller *stream.Controller
	canvas     *stream.Canvas
	player     *trace.Player
	sched      *clock.Manual
}

func (b *backend) Controller() *stream.Controller { return b.controller }
func (b *backend) Canvas() *stream.Canvas         { return b.canvas }

func (b *backend) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	elements := []*shape.Element{
		shape.NewElement("edge", shape.Line{X1: 5, Y1: 5, X2: 45, Y2: 5}),
		shape.NewElement("box", shape.Rect{X: 10, Y: 10, Width: 20, Height: 20}),
	}
	b := new(backend)
	b.sched = clock.NewManual()
	b.canvas = stream.NewCanvas(elements, stream.CanvasOptions{
		Width: 50, Height: 50,
		Pen:       colorful.Color{R: 1, G: 1, B: 1},
		LineWidth: 2,
	})
	var err error
	b.player, err = trace.New(shape.Drawables(elements), b.sched, b.canvas, trace.Options{
		Layout: trace.Layout{Policy: trace.Delayed, Duration: 30},
		Start:  trace.Manual,
	})
	require.NoError(t, err)
	b.controller = stream.NewController(b.player, b, nil, "", 0)
	return b
}

func do(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, stream.StatusMessage) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	var status stream.StatusMessage
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	}
	return rec, status
}

func TestApiCommands(t *testing.T) {
	b := newBackend(t)
	h := NewApi(b).Handler()

	rec, status := do(t, h, http.MethodGet, "/status")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "idle", status.State)
	assert.Equal(t, 30.0, status.FrameLength)

	rec, status = do(t, h, http.MethodPost, "/play?speed=3")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "playing", status.State)
	assert.Equal(t, 3.0, status.Speed)

	b.sched.Step()
	_, status = do(t, h, http.MethodPost, "/stop")
	assert.Equal(t, "idle", status.State)
	assert.Equal(t, 3.0, status.Frame)

	_, status = do(t, h, http.MethodPost, "/progress?value=0.5")
	assert.Equal(t, 15.0, status.Frame)

	_, status = do(t, h, http.MethodPost, "/finish")
	assert.Equal(t, "end", status.Status)

	_, status = do(t, h, http.MethodPost, "/reset")
	assert.Equal(t, "start", status.Status)

	_, _ = do(t, h, http.MethodPost, "/recalculate")
	assert.Equal(t, 1, b.sched.Pending())

	_, status = do(t, h, http.MethodPost, "/destroy")
	assert.Equal(t, "destroy", status.Command)
	assert.Equal(t, 0, b.sched.Pending())
}

func TestApiBadRequests(t *testing.T) {
	b := newBackend(t)
	h := NewApi(b).Handler()

	rec, _ := do(t, h, http.MethodPost, "/play?speed=fast")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, status := do(t, h, http.MethodPost, "/play?speed=0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, status.Error)

	rec, _ = do(t, h, http.MethodPost, "/progress")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/progress?value=NaN")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not a finite number")

	rec, _ = do(t, h, http.MethodPost, "/play?speed=Inf")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, b.sched.Pending())

	rec, _ = do(t, h, http.MethodPost, "/visible?visible=maybe")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/play")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestApiFrame(t *testing.T) {
	b := newBackend(t)
	h := NewApi(b).Handler()
	_, _ = do(t, h, http.MethodPost, "/finish")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frame.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
}
