package iris

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultWheelScale converts one Ebitengine wheel notch into browser-style
// delta units.
const DefaultWheelScale = 100.0

var ebitenKeys = [...]struct {
	key ebiten.Key
	nav Key
}{
	{ebiten.KeyArrowDown, KeyArrowDown},
	{ebiten.KeyPageDown, KeyPageDown},
	{ebiten.KeyArrowUp, KeyArrowUp},
	{ebiten.KeyPageUp, KeyPageUp},
}

// EbitenSource polls Ebitengine's wheel, keyboard and touch state. Only the
// first finger of a gesture is tracked.
type EbitenSource struct {
	// WheelScale multiplies wheel offsets. Zero means DefaultWheelScale.
	WheelScale float64

	touchIDs []ebiten.TouchID
	touchID  ebiten.TouchID
	touch    touchTracker
}

// Poll implements EventSource. Must be called from Game.Update.
func (s *EbitenSource) Poll(buf []InputEvent) []InputEvent {
	if _, wy := ebiten.Wheel(); wy != 0 {
		scale := s.WheelScale
		if scale <= 0 {
			scale = DefaultWheelScale
		}
		// Ebitengine reports scrolling down as a negative offset.
		buf = append(buf, InputEvent{Type: EventWheel, DeltaY: -wy * scale})
	}

	for _, k := range ebitenKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			buf = append(buf, InputEvent{Type: EventKey, Key: k.nav})
		}
	}

	if s.touch.tracking {
		// A lift can happen on a frame where injected input replaced
		// polling, so a finger that is no longer pressed also ends it.
		held := !inpututil.IsTouchJustReleased(s.touchID) && inpututil.TouchPressDuration(s.touchID) > 0
		_, y := ebiten.TouchPosition(s.touchID)
		buf = s.touch.follow(buf, held, y)
	}

	if !s.touch.tracking {
		s.touchIDs = inpututil.AppendJustPressedTouchIDs(s.touchIDs[:0])
		if len(s.touchIDs) > 0 {
			s.touchID = s.touchIDs[0]
			_, y := ebiten.TouchPosition(s.touchID)
			buf = s.touch.start(buf, y)
		}
	}
	return buf
}

// touchTracker turns the state of one tracked finger into touch events.
type touchTracker struct {
	tracking bool
	lastY    int
}

func (t *touchTracker) start(buf []InputEvent, y int) []InputEvent {
	t.tracking = true
	t.lastY = y
	return append(buf, InputEvent{Type: EventTouchStart, Y: float64(y)})
}

// follow emits a move when a held finger changed height and an end once it
// is no longer held. The position of a released finger is never read.
func (t *touchTracker) follow(buf []InputEvent, held bool, y int) []InputEvent {
	if !t.tracking {
		return buf
	}
	if !held {
		t.tracking = false
		return append(buf, InputEvent{Type: EventTouchEnd})
	}
	if y != t.lastY {
		t.lastY = y
		buf = append(buf, InputEvent{Type: EventTouchMove, Y: float64(y)})
	}
	return buf
}
