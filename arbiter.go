package iris

import "math"

// Default dead zones, in wheel delta units and pixels.
const (
	DefaultWheelThreshold = 10.0
	DefaultTouchThreshold = 30.0
)

// IntentSink is what the Arbiter forwards intents to. *Navigator satisfies it.
type IntentSink interface {
	Advance() bool
	Retreat() bool
	Busy() bool
}

// ArbiterConfig holds the dead zones. Zero values select the defaults.
type ArbiterConfig struct {
	WheelThreshold float64
	TouchThreshold float64
}

// Arbiter turns wheel, key and touch events into advance/retreat intents.
// Apart from the touch anchor it holds no state; the busy gate lives in the
// sink.
type Arbiter struct {
	sink           IntentSink
	wheelThreshold float64
	touchThreshold float64

	touchY      float64
	touchActive bool
}

// NewArbiter creates an Arbiter forwarding to sink.
func NewArbiter(sink IntentSink, cfg ArbiterConfig) *Arbiter {
	if cfg.WheelThreshold <= 0 {
		cfg.WheelThreshold = DefaultWheelThreshold
	}
	if cfg.TouchThreshold <= 0 {
		cfg.TouchThreshold = DefaultTouchThreshold
	}
	return &Arbiter{
		sink:           sink,
		wheelThreshold: cfg.WheelThreshold,
		touchThreshold: cfg.TouchThreshold,
	}
}

// Wheel handles a vertical wheel delta (positive scrolls down). It reports
// whether the event was consumed, which is always the case unless the
// navigator is busy.
func (a *Arbiter) Wheel(deltaY float64) bool {
	if a.sink.Busy() {
		return false
	}
	switch {
	case deltaY > a.wheelThreshold:
		a.sink.Advance()
	case deltaY < -a.wheelThreshold:
		a.sink.Retreat()
	}
	return true
}

// Key handles a key press and reports whether it was a navigation key that
// got consumed.
func (a *Arbiter) Key(k Key) bool {
	if a.sink.Busy() {
		return false
	}
	switch k {
	case KeyArrowDown, KeyPageDown:
		a.sink.Advance()
		return true
	case KeyArrowUp, KeyPageUp:
		a.sink.Retreat()
		return true
	}
	return false
}

// TouchStart anchors a new gesture at y.
func (a *Arbiter) TouchStart(y float64) {
	a.touchY = y
	a.touchActive = true
}

// TouchMove fires at most one intent per gesture once the finger has moved
// past the dead zone: up advances, down retreats.
func (a *Arbiter) TouchMove(y float64) {
	if a.sink.Busy() || !a.touchActive {
		return
	}
	dy := y - a.touchY
	if math.Abs(dy) < a.touchThreshold {
		return
	}
	if dy < 0 {
		a.sink.Advance()
	} else {
		a.sink.Retreat()
	}
	a.touchActive = false
}

// TouchEnd drops the gesture anchor.
func (a *Arbiter) TouchEnd() {
	a.touchActive = false
}

// Touching reports whether a gesture anchor is held.
func (a *Arbiter) Touching() bool {
	return a.touchActive
}

// Handle dispatches an InputEvent. It reports whether the event was
// consumed; touch events never are.
func (a *Arbiter) Handle(ev InputEvent) bool {
	switch ev.Type {
	case EventWheel:
		return a.Wheel(ev.DeltaY)
	case EventKey:
		return a.Key(ev.Key)
	case EventTouchStart:
		a.TouchStart(ev.Y)
	case EventTouchMove:
		a.TouchMove(ev.Y)
	case EventTouchEnd:
		a.TouchEnd()
	}
	return false
}
