package util

import (
	"math"

	"github.com/fogleman/ease"
)

// Clamp limits v to [lo, hi]. NaN clamps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sample evaluates fn at length+1 evenly spaced points from 0 to 1. A nil
// fn samples ease.Linear.
func Sample(fn func(float64) float64, length int) []float64 {
	if fn == nil {
		fn = ease.Linear
	}
	if length < 1 {
		length = 1
	}
	increment := 1.0 / float64(length)
	lut := make([]float64, length+1)
	for i := range lut {
		lut[i] = fn(float64(i) * increment)
	}
	return lut
}
