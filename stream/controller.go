package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/sketchtx/trace"
)

// commandTimeout bounds the wait for the frame loop to pick up a command.
const commandTimeout = 5 * time.Second

// Doer runs functions on the goroutine that owns the player.
type Doer interface {
	Do(ctx context.Context, fn func()) error
}

// Controller applies control commands to a player and reports its status.
type Controller struct {
	player *trace.Player
	loop   Doer
	client publisher
	topic  string
	qos    byte
}

// NewController creates a Controller. Status replies are published on topic
// when client is not nil.
func NewController(player *trace.Player, loop Doer, client publisher, topic string, qos byte) *Controller {
	c := new(Controller)
	c.player = player
	c.loop = loop
	c.client = client
	c.topic = topic
	c.qos = qos
	return c
}

// Exec applies msg on the loop goroutine and returns the status that
// follows it.
func (c *Controller) Exec(ctx context.Context, msg ControlMessage) (StatusMessage, error) {
	var status StatusMessage
	var err error
	if derr := c.loop.Do(ctx, func() {
		err = c.Apply(msg)
		status = NewStatus(c.player)
	}); derr != nil {
		return status, derr
	}
	status.Command = msg.Type
	if err != nil {
		status.Error = err.Error()
	}
	return status, err
}

// Apply applies msg directly. It must run on the loop goroutine.
func (c *Controller) Apply(msg ControlMessage) error {
	p := c.player
	switch msg.Type {
	case CommandPlay:
		var opts []trace.PlayOption
		if msg.Speed != nil {
			opts = append(opts, trace.WithSpeed(*msg.Speed))
		}
		return p.Play(opts...)
	case CommandStop:
		p.Stop()
	case CommandReset:
		p.Reset()
	case CommandFinish:
		p.Finish()
	case CommandProgress:
		if msg.Value == nil {
			return fmt.Errorf("%w: %s", ErrMissingValue, msg.Type)
		}
		p.SetProgress(*msg.Value)
	case CommandDestroy:
		p.Destroy()
	case CommandRecalculate:
		p.Recalculate()
	case CommandVisible:
		p.Observe(msg.Visible == nil || *msg.Visible)
	case CommandStatus:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, msg.Type)
	}
	return nil
}

// PublishStatus sends s as JSON on the status topic.
func (c *Controller) PublishStatus(s StatusMessage) {
	if c.client == nil || c.topic == "" {
		return
	}
	b, err := json.Marshal(s)
	if err != nil {
		trace.Logger().Error("stream: status not encoded", "err", err)
		return
	}
	token := c.client.Publish(c.topic, c.qos, false, b)
	if token.Wait() && token.Error() != nil {
		trace.Logger().Warn("stream: status publish failed", "topic", c.topic, "err", token.Error())
	}
}

// HandleMessage is the mqtt.MessageHandler of the control topic.
func (c *Controller) HandleMessage(client mqtt.Client, msg mqtt.Message) {
	trace.Logger().Debug("stream: control message", "id", msg.MessageID(), "topic", msg.Topic(), "payload", string(msg.Payload()))

	var message ControlMessage
	if err := json.Unmarshal(msg.Payload(), &message); err != nil {
		trace.Logger().Warn("stream: bad control message", "topic", msg.Topic(), "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	status, err := c.Exec(ctx, message)
	if err != nil {
		trace.Logger().Warn("stream: command failed", "command", message.Type, "err", err)
		if ctx.Err() != nil {
			return
		}
	}
	c.PublishStatus(status)
}
