package stream

import (
	"context"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/sketchtx/clock"
	"github.com/matt-g-everett/sketchtx/shape"
	"github.com/matt-g-everett/sketchtx/trace"
)

// Streamer plays the configured scene and streams its progress to MQTT
// and to a raster canvas.
type Streamer struct {
	config     Config
	client     mqtt.Client
	loop       *clock.Loop
	player     *trace.Player
	publisher  *Publisher
	canvas     *Canvas
	controller *Controller
}

// NewStreamer creates an instance of a Streamer. config must have been
// validated.
func NewStreamer(config Config, client mqtt.Client) (*Streamer, error) {
	s := new(Streamer)
	s.config = config
	s.client = client
	s.loop = clock.NewLoop(config.Animation.FrameRate)

	elements, err := shape.Elements(config.Scene.Elements)
	if err != nil {
		return nil, err
	}
	canvasOpts, err := config.Canvas.Options()
	if err != nil {
		return nil, err
	}
	opts, err := config.Animation.Options()
	if err != nil {
		return nil, err
	}

	canvasOpts.DashGap = config.Animation.DashGap
	s.canvas = NewCanvas(elements, canvasOpts)
	s.publisher = NewPublisher(client, config.Mqtt.Topics.Stream, config.Mqtt.QoS)
	opts.OnComplete = func(p *trace.Player) {
		status := NewStatus(p)
		status.Command = "complete"
		s.controller.PublishStatus(status)
	}

	s.player, err = trace.New(shape.Drawables(elements), s.loop, Fanout{s.publisher, s.canvas}, opts)
	if err != nil {
		return nil, err
	}
	s.controller = NewController(s.player, s.loop, client, config.Mqtt.Topics.Status, config.Mqtt.QoS)

	return s, nil
}

// Player returns the player. Only touch it from functions passed to Do.
func (s *Streamer) Player() *trace.Player {
	return s.player
}

// Canvas returns the raster sink. Only touch it from functions passed to Do.
func (s *Streamer) Canvas() *Canvas {
	return s.canvas
}

// Controller returns the command handler.
func (s *Streamer) Controller() *Controller {
	return s.controller
}

// Do runs fn on the frame loop.
func (s *Streamer) Do(ctx context.Context, fn func()) error {
	return s.loop.Do(ctx, fn)
}

// Subscribe listens for commands on the control topic.
func (s *Streamer) Subscribe() error {
	topic := s.config.Mqtt.Topics.Control
	token := s.client.Subscribe(topic, s.config.Mqtt.QoS, s.controller.HandleMessage)
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	trace.Logger().Info("stream: subscribed", "topic", topic)
	return nil
}

// Run drives the frame loop until ctx is cancelled.
func (s *Streamer) Run(ctx context.Context) error {
	return s.loop.Run(ctx)
}
