package stream

import (
	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/sketchtx/trace"
)

// publisher is the part of mqtt.Client the stream needs.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Publisher is a trace.Sink that streams segment updates as binary frames
// over MQTT. Updates are batched until Flush.
type Publisher struct {
	client publisher
	topic  string
	qos    byte

	clear    *Frame
	prepare  *Frame
	progress *Frame
	sent     int
}

var (
	_ trace.Sink    = (*Publisher)(nil)
	_ trace.Flusher = (*Publisher)(nil)
)

// NewPublisher creates a Publisher sending to topic.
func NewPublisher(client publisher, topic string, qos byte) *Publisher {
	p := new(Publisher)
	p.client = client
	p.topic = topic
	p.qos = qos
	p.clear = NewFrame(FrameClear)
	p.prepare = NewFrame(FramePrepare)
	p.progress = NewFrame(FrameProgress)
	return p
}

// Prepare implements trace.Sink.
func (p *Publisher) Prepare(s trace.Segment) {
	p.prepare.Add(s)
}

// Draw implements trace.Sink.
func (p *Publisher) Draw(s trace.Segment) {
	p.progress.Add(s)
}

// Clear implements trace.Sink.
func (p *Publisher) Clear(s trace.Segment) {
	p.clear.Add(s)
}

// Flush sends the pending frames, clears first, then prepares, then
// progress. Empty frames are not sent.
func (p *Publisher) Flush() {
	for _, f := range []*Frame{p.clear, p.prepare, p.progress} {
		if f.Len() == 0 {
			continue
		}
		p.send(f)
		f.Reset()
	}
}

// Sent returns the number of frames handed to the client.
func (p *Publisher) Sent() int {
	return p.sent
}

func (p *Publisher) send(f *Frame) {
	b, err := f.MarshalBinary()
	if err != nil {
		trace.Logger().Error("stream: frame dropped", "kind", f.Kind, "err", err)
		return
	}
	token := p.client.Publish(p.topic, p.qos, false, b)
	p.sent++
	if token.Wait() && token.Error() != nil {
		trace.Logger().Warn("stream: publish failed", "topic", p.topic, "kind", f.Kind, "err", token.Error())
	}
}
