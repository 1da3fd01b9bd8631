package iris

import "math"

// holeRadiusFactor scales the viewport diagonal so a fully open iris clears
// every corner.
const holeRadiusFactor = 0.65

// MaxHoleRadius returns the iris radius at full progress for a w×h viewport.
func MaxHoleRadius(w, h float64) float64 {
	return math.Sqrt(w*w+h*h) * holeRadiusFactor
}

// HoleRadius returns the iris radius in pixels for ring progress p.
// It is recomputed from the live viewport size every frame.
func HoleRadius(w, h, p float64) float64 {
	return p * MaxHoleRadius(w, h)
}
