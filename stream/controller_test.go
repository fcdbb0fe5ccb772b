package stream

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/matt-g-everett/sketchtx/clock"
	"github.com/matt-g-everett/sketchtx/shape"
	"github.com/matt-g-everett/sketchtx/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, client *fakeClient) (*Controller, *trace.Player, *clock.Manual) {
	t.Helper()
	sched := clock.NewManual()
	player, err := trace.New(shape.Drawables(lines(30, 70)), sched, nil, trace.Options{
		Layout: trace.Layout{Policy: trace.Sync, Duration: 10},
		Start:  trace.InViewport,
	})
	require.NoError(t, err)
	var c *Controller
	if client != nil {
		c = NewController(player, inline{}, client, "tx/status", 0)
	} else {
		c = NewController(player, inline{}, nil, "", 0)
	}
	return c, player, sched
}

func speed(v float64) *float64 { return &v }

func TestControllerCommands(t *testing.T) {
	ctx := context.Background()
	c, player, sched := newTestController(t, nil)

	status, err := c.Exec(ctx, ControlMessage{Type: CommandStatus})
	require.NoError(t, err)
	assert.Equal(t, "idle", status.State)
	assert.Equal(t, "start", status.Status)
	assert.Equal(t, 10.0, status.FrameLength)
	assert.Equal(t, 2, status.Segments)
	assert.Equal(t, player.ID().String(), status.ID)

	status, err = c.Exec(ctx, ControlMessage{Type: CommandPlay, Speed: speed(2)})
	require.NoError(t, err)
	assert.Equal(t, "playing", status.State)
	assert.Equal(t, 2.0, status.Speed)
	assert.Equal(t, CommandPlay, status.Command)

	sched.Step()
	status, _ = c.Exec(ctx, ControlMessage{Type: CommandStop})
	assert.Equal(t, "idle", status.State)
	assert.Equal(t, 2.0, status.Frame)
	assert.Equal(t, "progress", status.Status)

	status, _ = c.Exec(ctx, ControlMessage{Type: CommandFinish})
	assert.Equal(t, "end", status.Status)
	assert.Equal(t, []float64{1, 1}, status.Progress)

	status, _ = c.Exec(ctx, ControlMessage{Type: CommandReset})
	assert.Equal(t, "start", status.Status)

	status, err = c.Exec(ctx, ControlMessage{Type: CommandProgress, Value: speed(0.5)})
	require.NoError(t, err)
	assert.Equal(t, 5.0, status.Frame)

	_, err = c.Exec(ctx, ControlMessage{Type: CommandRecalculate})
	require.NoError(t, err)
	assert.Equal(t, 1, sched.Pending())

	status, _ = c.Exec(ctx, ControlMessage{Type: CommandDestroy})
	assert.Equal(t, 0, sched.Pending())
	assert.Equal(t, "idle", status.State)
	assert.Equal(t, CommandDestroy, status.Command)
}

func TestControllerVisible(t *testing.T) {
	c, player, _ := newTestController(t, nil)
	hidden := false

	require.NoError(t, c.Apply(ControlMessage{Type: CommandVisible, Visible: &hidden}))
	assert.Equal(t, trace.Idle, player.State())

	require.NoError(t, c.Apply(ControlMessage{Type: CommandVisible}))
	assert.Equal(t, trace.Playing, player.State())
}

func TestControllerErrors(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestController(t, nil)

	status, err := c.Exec(ctx, ControlMessage{Type: "rewind"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.NotEmpty(t, status.Error)

	_, err = c.Exec(ctx, ControlMessage{Type: CommandProgress})
	assert.ErrorIs(t, err, ErrMissingValue)

	_, err = c.Exec(ctx, ControlMessage{Type: CommandPlay, Speed: speed(0)})
	assert.ErrorIs(t, err, trace.ErrInvalidSpeed)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = c.Exec(cancelled, ControlMessage{Type: CommandStatus})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestControllerHandleMessage(t *testing.T) {
	client := newFakeClient()
	c, player, _ := newTestController(t, client)

	c.HandleMessage(client, &fakeMessage{topic: "tx/control", payload: []byte(`{"type":"play","speed":-1}`)})
	assert.Equal(t, trace.Playing, player.State())
	assert.Equal(t, -1.0, player.Speed())

	replies := client.on("tx/status")
	require.Len(t, replies, 1)
	var status StatusMessage
	require.NoError(t, json.Unmarshal(replies[0], &status))
	assert.Equal(t, CommandPlay, status.Command)
	assert.Equal(t, "playing", status.State)
	assert.Empty(t, status.Error)

	c.HandleMessage(client, &fakeMessage{topic: "tx/control", payload: []byte(`{"type":"jump"}`)})
	replies = client.on("tx/status")
	require.Len(t, replies, 2)
	require.NoError(t, json.Unmarshal(replies[1], &status))
	assert.Contains(t, status.Error, "unknown command")

	c.HandleMessage(client, &fakeMessage{topic: "tx/control", payload: []byte(`not json`)})
	assert.Len(t, client.on("tx/status"), 2)
}
