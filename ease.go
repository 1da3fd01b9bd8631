package iris

import "github.com/tanema/gween/ease"

// Ease maps linear progress k in [0, 1] to cubic ease-in-out progress.
// Values outside the range are clamped first.
func Ease(k float64) float64 {
	k = clamp01(k)
	if k < 0.5 {
		return 4 * k * k * k
	}
	f := -2*k + 2
	return 1 - f*f*f/2
}

// EaseInOutCubic is Ease in gween's (t, begin, change, duration) form so it
// can drive a gween.Tween.
var EaseInOutCubic ease.TweenFunc = func(t, b, c, d float32) float32 {
	if d <= 0 {
		return b + c
	}
	return b + c*float32(Ease(float64(t)/float64(d)))
}
