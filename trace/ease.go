package trace

import (
	"fmt"
	"math"
	"strings"

	"github.com/fogleman/ease"
)

// An Easing remaps normalized progress. Any Easing must map 0 to 0 and 1 to
// 1, otherwise the end of an animation can never be detected.
type Easing func(t float64) float64

// Linear leaves progress untouched.
func Linear(t float64) float64 {
	return ease.Linear(t)
}

// Ease is a symmetric cosine curve.
func Ease(t float64) float64 {
	return ease.InOutSine(t)
}

// EaseIn accelerates along a cubic curve.
func EaseIn(t float64) float64 {
	return ease.InCubic(t)
}

// EaseOut decelerates along a cubic curve.
func EaseOut(t float64) float64 {
	return ease.OutCubic(t)
}

// EaseOutBounce settles on 1 with a few damped bounces.
func EaseOutBounce(t float64) float64 {
	base := -math.Cos(t*(0.5*math.Pi)) + 1
	rate := math.Pow(base, 1.5)
	rateR := math.Pow(1-t, 2)
	progress := -math.Abs(math.Cos(rate*(2.5*math.Pi))) + 1
	return (1 - rateR) + (progress * rateR)
}

var easings = map[string]Easing{
	"linear":        Linear,
	"ease":          Ease,
	"easein":        EaseIn,
	"easeout":       EaseOut,
	"easeoutbounce": EaseOutBounce,
	"inquad":        ease.InQuad,
	"outquad":       ease.OutQuad,
	"inoutquad":     ease.InOutQuad,
	"inoutcubic":    ease.InOutCubic,
	"outbounce":     ease.OutBounce,
}

// EasingByName resolves a timing function from configuration. Names are
// case insensitive and may use '-' or '_' as separators ("ease-out",
// "EASE_OUT_BOUNCE", "inOutQuad"). An empty name resolves to Linear.
func EasingByName(name string) (Easing, error) {
	if name == "" {
		return Linear, nil
	}
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	fn, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}
