package stream

import (
	"errors"

	"github.com/matt-g-everett/sketchtx/trace"
)

var (
	ErrUnknownCommand = errors.New("stream: unknown command")
	ErrMissingValue   = errors.New("stream: command needs a value")
)

// Command types accepted on the control topic.
const (
	CommandPlay        = "play"
	CommandStop        = "stop"
	CommandReset       = "reset"
	CommandFinish      = "finish"
	CommandProgress    = "progress"
	CommandDestroy     = "destroy"
	CommandRecalculate = "recalculate"
	CommandStatus      = "status"
	CommandVisible     = "visible"
)

// ControlMessage drives the player, e.g. {"type":"play","speed":-1}.
type ControlMessage struct {
	Type    string   `json:"type"`
	Speed   *float64 `json:"speed,omitempty"`
	Value   *float64 `json:"value,omitempty"`
	Visible *bool    `json:"visible,omitempty"`
}

// StatusMessage reports the state of the player.
type StatusMessage struct {
	ID          string    `json:"id"`
	State       string    `json:"state"`
	Status      string    `json:"status"`
	Frame       float64   `json:"frame"`
	FrameLength float64   `json:"frameLength"`
	Speed       float64   `json:"speed"`
	Segments    int       `json:"segments"`
	Progress    []float64 `json:"progress"`
	Command     string    `json:"command,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// NewStatus snapshots p. It must run on the goroutine that owns p.
func NewStatus(p *trace.Player) StatusMessage {
	t := p.Timeline()
	return StatusMessage{
		ID:          p.ID().String(),
		State:       p.State().String(),
		Status:      p.Status().String(),
		Frame:       p.CurrentFrame(),
		FrameLength: t.FrameLength,
		Speed:       p.Speed(),
		Segments:    len(t.Segments),
		Progress:    t.Progress(),
	}
}
