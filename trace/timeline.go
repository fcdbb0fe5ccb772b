package trace

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// DefaultDuration is the animation length, in frames, used when none is
// configured.
const DefaultDuration = 120

// Annotation keys read by the scenario policies and the planner.
const (
	AttrStart    = "start"
	AttrDuration = "duration"
	AttrDelay    = "delay"
	AttrAsync    = "async"
	AttrIgnore   = "ignore"
)

// A Drawable is one stroke as seen by the planner. Implementations measure
// the outline; the planner never looks at geometry itself.
type Drawable interface {
	ID() string
	// Length is the measured geometric length of the outline.
	Length() float64
	// Scale is the ratio between the rendered and the geometric length.
	// It is only applied when ScaleSensitive reports true.
	Scale() float64
	ScaleSensitive() bool
	Visible() bool
	// Annotations holds scenario attributes such as "start" or "async".
	Annotations() map[string]string
}

// Segment is the timeline record of one Drawable.
type Segment struct {
	Index          int
	ID             string
	Length         float64
	ScaleSensitive bool
	Attrs          map[string]string

	// StartAt and Duration are in frames.
	StartAt  float64
	Duration float64

	// Progress is the last eased value handed to the sink.
	Progress float64

	traced bool
	src    Drawable
}

// Layout configures how a Timeline is planned.
type Layout struct {
	Policy   Policy
	Duration float64
	// Delay is the stagger between the first and the last segment. Nil
	// selects a third of Duration.
	Delay           *float64
	ReverseStack    bool
	IgnoreInvisible bool
	// DashGap is added to every measured length.
	DashGap float64
}

// Timeline is the schedule of one animation.
type Timeline struct {
	Segments    []*Segment
	Policy      Policy
	Duration    float64
	Delay       float64
	DelayUnit   float64
	FrameLength float64

	// Skipped counts drawables dropped because their length could not be
	// measured. Ignored counts drawables left out on purpose.
	Skipped int
	Ignored int

	dashGap float64
}

// Measure returns the corrected length of d: its geometric length, scaled
// when d is scale sensitive, rounded up and extended by gap. A length that
// is negative or not finite is returned as is, before the gap can hide it.
func Measure(d Drawable, gap float64) float64 {
	length := d.Length()
	if d.ScaleSensitive() {
		length *= d.Scale()
	}
	if !validLength(length) {
		return length
	}
	return math.Ceil(length) + gap
}

func validLength(length float64) bool {
	return !math.IsNaN(length) && !math.IsInf(length, 0) && length >= 0
}

// Build measures drawables and plans their timeline. Drawables that cannot
// be measured are dropped and counted in Skipped; everything else that goes
// wrong is a configuration error.
func Build(drawables []Drawable, layout Layout) (*Timeline, error) {
	segments := make([]*Segment, 0, len(drawables))
	skipped, ignored := 0, 0
	for _, d := range drawables {
		attrs := d.Annotations()
		if _, ok := attrs[AttrIgnore]; ok {
			ignored++
			continue
		}
		if layout.IgnoreInvisible && !d.Visible() {
			ignored++
			continue
		}

		length := Measure(d, layout.DashGap)
		if !validLength(length) {
			Logger().Warn("trace: dropping segment with unmeasurable length",
				"id", d.ID(), "length", length)
			skipped++
			continue
		}

		segments = append(segments, &Segment{
			ID:             d.ID(),
			Length:         length,
			ScaleSensitive: d.ScaleSensitive(),
			Attrs:          attrs,
			src:            d,
		})
	}

	t, err := Schedule(segments, layout)
	if err != nil {
		return nil, err
	}
	t.Skipped = skipped
	t.Ignored = ignored
	return t, nil
}

// Schedule assigns a window to every segment according to layout. Segments
// must already carry their corrected Length.
func Schedule(segments []*Segment, layout Layout) (*Timeline, error) {
	duration := layout.Duration
	if !(duration > 0) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	if layout.Policy < Delayed || layout.Policy > ScenarioSync {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPolicy, layout.Policy)
	}

	delay := duration / 3
	if layout.Delay != nil {
		delay = *layout.Delay
		if !(delay >= 0) || delay >= duration {
			return nil, fmt.Errorf("%w: delay %v, duration %v", ErrInvalidDelay, delay, duration)
		}
	}

	if layout.ReverseStack {
		reversed := make([]*Segment, len(segments))
		for i, s := range segments {
			reversed[len(segments)-1-i] = s
		}
		segments = reversed
	}

	t := &Timeline{
		Segments:  segments,
		Policy:    layout.Policy,
		Duration:  duration,
		Delay:     delay,
		DelayUnit: delay / math.Max(float64(len(segments)-1), 1),
		dashGap:   layout.DashGap,
	}

	lengths := make([]float64, len(segments))
	for i, s := range segments {
		lengths[i] = s.Length
	}
	totalLength := floats.Sum(lengths)
	if totalLength == 0 {
		totalLength = 1
	}

	var lengthMeter, timePoint, lastFrame float64
	for i, s := range segments {
		s.Index = i
		switch t.Policy {
		case Delayed:
			s.StartAt = t.DelayUnit * float64(i)
			s.Duration = duration - delay
		case OneByOne:
			s.StartAt = lengthMeter / totalLength * duration
			s.Duration = s.Length / totalLength * duration
		case Sync, Async:
			s.StartAt = 0
			s.Duration = duration
		case Scenario:
			s.StartAt = s.attr(AttrStart, t.DelayUnit)
			s.Duration = s.attr(AttrDuration, duration)
		case ScenarioSync:
			s.StartAt = timePoint + s.attr(AttrDelay, t.DelayUnit)
			s.Duration = s.attr(AttrDuration, duration)
			if s.async() {
				timePoint = s.StartAt
			} else {
				timePoint = s.StartAt + s.Duration
			}
		}
		if !(s.Duration > 0) || math.IsInf(s.Duration, 0) {
			return nil, fmt.Errorf("%w: segment %q (%s)", ErrEmptyWindow, s.ID, t.Policy)
		}
		lengthMeter += s.Length
		lastFrame = math.Max(lastFrame, s.StartAt+s.Duration)

		s.Progress = 0
		s.traced = true
	}

	t.FrameLength = duration
	if (t.Policy == Scenario || t.Policy == ScenarioSync) && len(segments) > 0 {
		t.FrameLength = lastFrame
	}
	return t, nil
}

// attr reads a non-negative numeric annotation, falling back to def when it
// is absent or malformed.
func (s *Segment) attr(key string, def float64) float64 {
	raw, ok := s.Attrs[key]
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !validLength(v) {
		return def
	}
	return v
}

func (s *Segment) async() bool {
	raw, ok := s.Attrs[AttrAsync]
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "false", "0", "no":
		return false
	}
	return true
}

// Remeasure refreshes the length of every scale-sensitive segment and
// returns the segments whose length changed. Windows are left untouched.
func (t *Timeline) Remeasure() []*Segment {
	var changed []*Segment
	for _, s := range t.Segments {
		if !s.ScaleSensitive || s.src == nil {
			continue
		}
		length := Measure(s.src, t.dashGap)
		if !validLength(length) || length == s.Length {
			continue
		}
		s.Length = length
		s.traced = false
		changed = append(changed, s)
	}
	return changed
}
