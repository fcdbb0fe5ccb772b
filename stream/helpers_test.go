package stream

import (
	"context"
	"errors"
	"sync"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/sketchtx/shape"
)

type fakeToken struct {
	mqtt.Token
	err error
}

func (t *fakeToken) Wait() bool   { return true }
func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeClient struct {
	mqtt.Client

	mu         sync.Mutex
	err        error
	published  []published
	subscribed map[string]mqtt.MessageHandler
}

func newFakeClient() *fakeClient {
	return &fakeClient{subscribed: make(map[string]mqtt.MessageHandler)}
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, published{topic, qos, payload.([]byte)})
	return &fakeToken{err: c.err}
}

func (c *fakeClient) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribed[topic] = callback
	return &fakeToken{err: c.err}
}

func (c *fakeClient) on(topic string) [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out [][]byte
	for _, p := range c.published {
		if p.topic == topic {
			out = append(out, p.payload)
		}
	}
	return out
}

type fakeMessage struct {
	mqtt.Message
	topic   string
	payload []byte
}

func (m *fakeMessage) MessageID() uint16 { return 1 }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) Payload() []byte   { return m.payload }

// inline runs functions on the calling goroutine.
type inline struct{}

func (inline) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}

var errBroker = errors.New("broker unavailable")

func lines(lengths ...float64) []*shape.Element {
	out := make([]*shape.Element, len(lengths))
	for i, l := range lengths {
		out[i] = shape.NewElement(string(rune('a'+i)), shape.Line{X1: 10, Y1: 50, X2: 10 + l, Y2: 50})
	}
	return out
}
