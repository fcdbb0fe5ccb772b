package trace

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/matt-g-everett/sketchtx/clock"
)

// State is the playback state of a Player.
type State int

const (
	Idle State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "idle"
}

// Status describes where the current frame sits on the timeline.
type Status int

const (
	StatusStart Status = iota
	StatusProgress
	StatusEnd
)

func (s Status) String() string {
	switch s {
	case StatusStart:
		return "start"
	case StatusEnd:
		return "end"
	}
	return "progress"
}

// Options configure a Player.
type Options struct {
	Layout
	Start       StartMode
	AnimEase    Easing
	PathEase    Easing
	SelfDestroy bool
	// OnComplete runs every time playback reaches either end of the
	// timeline.
	OnComplete func(*Player)
}

// A Player drives a Timeline frame by frame and hands progress to a Sink.
//
// A Player is not safe for concurrent use. Every method, and every frame
// callback, must run on the goroutine that owns its Scheduler.
type Player struct {
	id        uuid.UUID
	timeline  *Timeline
	scheduler clock.Scheduler
	sink      Sink

	start       StartMode
	animEase    Easing
	pathEase    Easing
	selfDestroy bool
	onComplete  func(*Player)
	onDone      func(*Player)
	done        chan struct{}

	state        State
	handle       clock.Handle
	currentFrame float64
	speed        float64
	started      bool
	prepared     bool

	rescaling     bool
	rescaleHandle clock.Handle
}

// New measures and plans drawables, then creates a Player for them.
func New(drawables []Drawable, scheduler clock.Scheduler, sink Sink, opts Options) (*Player, error) {
	t, err := Build(drawables, opts.Layout)
	if err != nil {
		return nil, err
	}
	return NewPlayer(t, scheduler, sink, opts)
}

// NewPlayer creates a Player for an already planned Timeline. With the
// Autostart start mode playback begins immediately.
func NewPlayer(t *Timeline, scheduler clock.Scheduler, sink Sink, opts Options) (*Player, error) {
	if opts.Start < InViewport || opts.Start > Autostart {
		return nil, fmt.Errorf("%w: %v", ErrUnknownStart, opts.Start)
	}
	if sink == nil {
		sink = NopSink{}
	}

	p := new(Player)
	p.id = uuid.New()
	p.timeline = t
	p.scheduler = scheduler
	p.sink = sink
	p.start = opts.Start
	p.animEase = opts.AnimEase
	p.pathEase = opts.PathEase
	p.selfDestroy = opts.SelfDestroy
	p.onComplete = opts.OnComplete
	p.done = make(chan struct{})
	p.speed = 1

	if p.animEase == nil {
		p.animEase = Linear
	}
	if p.pathEase == nil {
		p.pathEase = Linear
	}

	Logger().Debug("trace: player created",
		"id", p.id, "policy", t.Policy, "segments", len(t.Segments),
		"frameLength", t.FrameLength, "skipped", t.Skipped)

	p.prepare()

	if p.start == Autostart {
		if err := p.Play(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ID returns the instance id.
func (p *Player) ID() uuid.UUID {
	return p.id
}

// Timeline returns the schedule being played.
func (p *Player) Timeline() *Timeline {
	return p.timeline
}

// CurrentFrame returns the position of the virtual clock.
func (p *Player) CurrentFrame() float64 {
	return p.currentFrame
}

// Speed returns the frames added to the clock on every tick.
func (p *Player) Speed() float64 {
	return p.speed
}

// State reports whether a tick is pending.
func (p *Player) State() State {
	return p.state
}

// Status reports whether the clock is at the start, the end or in between.
func (p *Player) Status() Status {
	switch p.currentFrame {
	case 0:
		return StatusStart
	case p.timeline.FrameLength:
		return StatusEnd
	}
	return StatusProgress
}

// Done returns a channel closed when the current play cycle completes.
// Every completion closes the channel once and replaces it for the next
// cycle.
func (p *Player) Done() <-chan struct{} {
	return p.done
}

// PlayOption customises a single call to Play.
type PlayOption func(*playConfig)

type playConfig struct {
	speed  float64
	onDone func(*Player)
}

// WithSpeed sets the frames added per tick. Negative speeds play backwards.
func WithSpeed(speed float64) PlayOption {
	return func(c *playConfig) {
		c.speed = speed
	}
}

// OnDone registers a callback for the end of this play cycle. It runs once,
// after Options.OnComplete. A later Play with OnDone replaces it.
func OnDone(fn func(*Player)) PlayOption {
	return func(c *playConfig) {
		c.onDone = fn
	}
}

// Play starts playback at speed 1 unless WithSpeed says otherwise. Calling
// Play while playing only updates the speed and the OnDone callback.
func (p *Player) Play(opts ...PlayOption) error {
	c := playConfig{speed: 1}
	for _, opt := range opts {
		opt(&c)
	}
	if c.speed == 0 || math.IsNaN(c.speed) || math.IsInf(c.speed, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, c.speed)
	}

	p.speed = c.speed
	if c.onDone != nil {
		p.onDone = c.onDone
	}
	p.started = true

	if p.state == Playing {
		return nil
	}
	p.state = Playing
	p.handle = p.scheduler.RequestFrame(p.tick)
	Logger().Debug("trace: play", "id", p.id, "speed", p.speed, "frame", p.currentFrame)
	return nil
}

// Stop cancels the pending tick. It is safe to call at any time.
func (p *Player) Stop() {
	if p.state != Playing {
		return
	}
	if p.handle != 0 {
		p.scheduler.CancelFrame(p.handle)
		p.handle = 0
	}
	p.state = Idle
	Logger().Debug("trace: stop", "id", p.id, "frame", p.currentFrame)
}

// Reset rewinds to the first frame. It does not stop playback.
func (p *Player) Reset() {
	p.currentFrame = 0
	p.trace()
}

// Finish jumps to the last frame. It does not stop playback.
func (p *Player) Finish() {
	p.currentFrame = p.timeline.FrameLength
	p.trace()
}

// SetProgress moves the clock to ratio of the timeline, clamped to [0,1]
// and rounded to a whole frame. NaN is read as 0. A ratio of 1 lands on the
// last frame even when the frame length is fractional.
func (p *Player) SetProgress(ratio float64) {
	fl := p.timeline.FrameLength
	switch {
	case math.IsNaN(ratio) || ratio <= 0:
		p.currentFrame = 0
	case ratio >= 1:
		p.currentFrame = fl
	default:
		p.currentFrame = math.Max(0, math.Min(fl, math.Round(fl*ratio)))
	}
	p.trace()
}

// Observe reports the visibility of the drawing. With the InViewport start
// mode the first visible report starts playback.
func (p *Player) Observe(visible bool) {
	if p.start != InViewport || p.started || !visible {
		return
	}
	// Play only fails on an invalid speed.
	_ = p.Play()
}

// Destroy stops playback and asks the sink to clear every segment. Playing
// again prepares the segments anew.
func (p *Player) Destroy() {
	p.Stop()
	p.cancelRecalculate()
	for _, s := range p.timeline.Segments {
		p.sink.Clear(*s)
	}
	p.flush()
	p.timeline.Invalidate()
	p.prepared = false
	Logger().Debug("trace: destroyed", "id", p.id)
}

func (p *Player) tick() {
	p.handle = 0
	p.currentFrame += p.speed
	if len(p.timeline.Segments) == 0 {
		// Nothing to draw: run straight to the end in the playing direction.
		p.currentFrame = math.Copysign(p.timeline.FrameLength, p.speed)
	}

	switch {
	case p.currentFrame <= 0:
		p.Stop()
		p.Reset()
		p.complete()
	case p.currentFrame >= p.timeline.FrameLength:
		p.Stop()
		p.currentFrame = p.timeline.FrameLength
		p.trace()
		if p.selfDestroy {
			p.Destroy()
		}
		p.complete()
	default:
		p.trace()
		p.handle = p.scheduler.RequestFrame(p.tick)
	}
}

func (p *Player) complete() {
	onDone := p.onDone
	p.onDone = nil
	done := p.done
	p.done = make(chan struct{})

	Logger().Info("trace: animation complete", "id", p.id, "status", p.Status())
	if p.onComplete != nil {
		p.onComplete(p)
	}
	if onDone != nil {
		onDone(p)
	}
	close(done)
}

func (p *Player) prepare() {
	for _, s := range p.timeline.Segments {
		p.sink.Prepare(*s)
	}
	p.prepared = true
}

func (p *Player) trace() {
	if !p.prepared {
		p.prepare()
	}
	for _, i := range p.timeline.Trace(p.currentFrame, p.animEase, p.pathEase) {
		p.sink.Draw(*p.timeline.Segments[i])
	}
	p.flush()
}

func (p *Player) flush() {
	if f, ok := p.sink.(Flusher); ok {
		f.Flush()
	}
}
