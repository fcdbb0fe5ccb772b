package stream

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/sketchtx/clock"
	"github.com/matt-g-everett/sketchtx/shape"
	"github.com/matt-g-everett/sketchtx/trace"
)

type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientID"`
		QoS      byte   `yaml:"qos"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
			Status  string `yaml:"status"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Animation AnimationConfig `yaml:"animation"`
	Canvas    CanvasConfig    `yaml:"canvas"`
	Scene     struct {
		Elements []shape.Spec `yaml:"elements"`
	} `yaml:"scene"`
}

// AnimationConfig holds the options of the player.
type AnimationConfig struct {
	Type               string   `yaml:"type"`
	Start              string   `yaml:"start"`
	Duration           float64  `yaml:"duration"`
	Delay              *float64 `yaml:"delay"`
	FrameRate          float64  `yaml:"frameRate"`
	AnimTimingFunction string   `yaml:"animTimingFunction"`
	PathTimingFunction string   `yaml:"pathTimingFunction"`
	ReverseStack       bool     `yaml:"reverseStack"`
	SelfDestroy        bool     `yaml:"selfDestroy"`
	IgnoreInvisible    bool     `yaml:"ignoreInvisible"`
	DashGap            float64  `yaml:"dashGap"`
}

// CanvasConfig sizes and colours the raster preview.
type CanvasConfig struct {
	Width      int            `yaml:"width"`
	Height     int            `yaml:"height"`
	Background string         `yaml:"background"`
	Pen        string         `yaml:"pen"`
	LineWidth  float64        `yaml:"lineWidth"`
	Gradient   []GradientStop `yaml:"gradient"`
	Chroma     float64        `yaml:"chroma"`
	Luminance  float64        `yaml:"luminance"`
}

// Validate fills in defaults and checks every value that can be checked
// without building the scene.
func (c *Config) Validate() error {
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "sketchtx/stream"
	}
	if c.Mqtt.Topics.Control == "" {
		c.Mqtt.Topics.Control = "sketchtx/control"
	}
	if c.Mqtt.Topics.Status == "" {
		c.Mqtt.Topics.Status = "sketchtx/status"
	}
	if c.Mqtt.QoS > 2 {
		return fmt.Errorf("mqtt: qos %d out of range", c.Mqtt.QoS)
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":3000"
	}

	if c.Animation.Duration == 0 {
		c.Animation.Duration = trace.DefaultDuration
	}
	if c.Animation.FrameRate <= 0 {
		c.Animation.FrameRate = clock.DefaultFrameRate
	}
	if _, err := c.Animation.Options(); err != nil {
		return fmt.Errorf("animation: %w", err)
	}

	if c.Canvas.Width <= 0 {
		c.Canvas.Width = 400
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = 400
	}
	if c.Canvas.Background == "" {
		c.Canvas.Background = "#000005"
	}
	if c.Canvas.Pen == "" {
		c.Canvas.Pen = "#808080"
	}
	if c.Canvas.LineWidth <= 0 {
		c.Canvas.LineWidth = 1
	}
	if c.Canvas.Chroma <= 0 {
		c.Canvas.Chroma = 0.7
	}
	if c.Canvas.Luminance <= 0 {
		c.Canvas.Luminance = 0.6
	}
	if _, err := c.Canvas.Options(); err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	return nil
}

// Options converts the animation section into player options.
func (a AnimationConfig) Options() (trace.Options, error) {
	var opts trace.Options
	policy, err := trace.ParsePolicy(a.Type)
	if err != nil {
		return opts, err
	}
	start, err := trace.ParseStartMode(a.Start)
	if err != nil {
		return opts, err
	}
	anim, err := trace.EasingByName(a.AnimTimingFunction)
	if err != nil {
		return opts, err
	}
	path, err := trace.EasingByName(a.PathTimingFunction)
	if err != nil {
		return opts, err
	}

	opts.Layout = trace.Layout{
		Policy:          policy,
		Duration:        a.Duration,
		Delay:           a.Delay,
		ReverseStack:    a.ReverseStack,
		IgnoreInvisible: a.IgnoreInvisible,
		DashGap:         a.DashGap,
	}
	opts.Start = start
	opts.AnimEase = anim
	opts.PathEase = path
	opts.SelfDestroy = a.SelfDestroy
	return opts, nil
}

// Options converts the canvas section, parsing its colours.
func (c CanvasConfig) Options() (CanvasOptions, error) {
	opts := CanvasOptions{
		Width:     c.Width,
		Height:    c.Height,
		LineWidth: c.LineWidth,
		Gradient:  GradientTable(c.Gradient),
		Chroma:    c.Chroma,
		Luminance: c.Luminance,
	}
	var err error
	if opts.Background, err = colorful.Hex(c.Background); err != nil {
		return opts, fmt.Errorf("background %q: %w", c.Background, err)
	}
	if opts.Pen, err = colorful.Hex(c.Pen); err != nil {
		return opts, fmt.Errorf("pen %q: %w", c.Pen, err)
	}
	return opts, nil
}
