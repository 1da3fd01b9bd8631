package iris

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// SessionCount is the fixed number of sessions a Navigator moves between.
const SessionCount = 5

const (
	// RingDuration is how long the iris takes to open fully.
	RingDuration = 650 * time.Millisecond
	// IntroDuration is how long a session's camera intro runs.
	IntroDuration = 1200 * time.Millisecond
)

// Default viewport used before the first Layout call.
const (
	defaultViewportW = 1920
	defaultViewportH = 1080
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendErase                   // destination-out (punch transparent holes)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendErase:
		return ebiten.BlendDestinationOut
	default:
		return ebiten.BlendSourceOver
	}
}

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampIndex pins i into the valid session range.
func clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i > SessionCount-1 {
		return SessionCount - 1
	}
	return i
}
