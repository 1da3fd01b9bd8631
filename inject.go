package iris

// InjectWheel queues a wheel event with the given delta (positive scrolls
// down). The event is consumed on the next frame's Input.Update.
func (in *Input) InjectWheel(deltaY float64) {
	in.injectQueue = append(in.injectQueue, InputEvent{Type: EventWheel, DeltaY: deltaY})
}

// InjectKey queues a key press.
func (in *Input) InjectKey(k Key) {
	in.injectQueue = append(in.injectQueue, InputEvent{Type: EventKey, Key: k})
}

// InjectTouchStart queues a finger down at screen height y.
func (in *Input) InjectTouchStart(y float64) {
	in.injectQueue = append(in.injectQueue, InputEvent{Type: EventTouchStart, Y: y})
}

// InjectTouchMove queues a move of the tracked finger to y.
func (in *Input) InjectTouchMove(y float64) {
	in.injectQueue = append(in.injectQueue, InputEvent{Type: EventTouchMove, Y: y})
}

// InjectTouchEnd queues the finger being lifted.
func (in *Input) InjectTouchEnd() {
	in.injectQueue = append(in.injectQueue, InputEvent{Type: EventTouchEnd})
}

// InjectSwipe queues a full vertical swipe: touch start at fromY, moves
// linearly interpolated over frames-2 intermediate frames ending at toY,
// and touch end. The sequence consumes `frames` frames; the minimum is 3
// (start, one move, end).
func (in *Input) InjectSwipe(fromY, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	in.InjectTouchStart(fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		in.InjectTouchMove(fromY + (toY-fromY)*t)
	}
	in.InjectTouchEnd()
}

// Pending returns the number of injected events not yet consumed.
func (in *Input) Pending() int {
	return len(in.injectQueue)
}

// popInjected removes the oldest injected event.
func (in *Input) popInjected() (InputEvent, bool) {
	if len(in.injectQueue) == 0 {
		return InputEvent{}, false
	}
	ev := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]
	return ev, true
}
