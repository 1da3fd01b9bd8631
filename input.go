package iris

import "strings"

// EventType identifies a kind of input event.
type EventType uint8

const (
	EventWheel      EventType = iota // vertical wheel delta
	EventKey                         // key pressed this frame
	EventTouchStart                  // first finger down
	EventTouchMove                   // tracked finger moved
	EventTouchEnd                    // tracked finger lifted
)

// Key identifies the keys the navigator listens to.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyArrowDown
	KeyPageDown
	KeyArrowUp
	KeyPageUp
)

var keyNames = [...]string{
	KeyUnknown:   "Unknown",
	KeyArrowDown: "ArrowDown",
	KeyPageDown:  "PageDown",
	KeyArrowUp:   "ArrowUp",
	KeyPageUp:    "PageUp",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return keyNames[KeyUnknown]
}

// ParseKey resolves a key name such as "ArrowDown" or "pagedown".
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if Key(k) != KeyUnknown && strings.EqualFold(n, name) {
			return Key(k), true
		}
	}
	return KeyUnknown, false
}

// InputEvent is one normalized input event. DeltaY uses the browser sign
// convention: positive scrolls the content down.
type InputEvent struct {
	Type   EventType
	DeltaY float64
	Key    Key
	Y      float64
}

// EventSource produces the raw input events of one frame.
type EventSource interface {
	// Poll appends this frame's events to buf and returns it.
	Poll(buf []InputEvent) []InputEvent
}

// --- Handler registry ---

type inputHandler struct {
	id uint32
	fn func(InputEvent) bool
}

type handlerRegistry struct {
	handlers []inputHandler
	nextID   uint32
}

// Subscription allows removing a handler registered with Input.Subscribe.
type Subscription struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters the handler so it no longer fires. Safe to call more
// than once.
func (h Subscription) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = inputHandler{}
			h.reg.handlers = s[:len(s)-1]
			return
		}
	}
}

// Input collects events from an EventSource and from the synthetic inject
// queue, and dispatches them to subscribed handlers once per frame.
type Input struct {
	source      EventSource
	handlers    handlerRegistry
	injectQueue []InputEvent
	events      []InputEvent
	dispatchBuf []inputHandler
}

// NewInput creates an Input reading from source. A nil source yields only
// injected events.
func NewInput(source EventSource) *Input {
	return &Input{source: source}
}

// Subscribe registers fn for every event. Handlers run in subscription order;
// once one reports that it consumed an event, later handlers do not see it.
func (in *Input) Subscribe(fn func(InputEvent) bool) Subscription {
	in.handlers.nextID++
	id := in.handlers.nextID
	in.handlers.handlers = append(in.handlers.handlers, inputHandler{id: id, fn: fn})
	return Subscription{id: id, reg: &in.handlers}
}

// Handlers returns the number of subscribed handlers.
func (in *Input) Handlers() int {
	return len(in.handlers.handlers)
}

// Update gathers this frame's events and dispatches them. When an injected
// event is pending, it replaces real input for the frame. It returns the
// number of events dispatched.
func (in *Input) Update() int {
	in.events = in.events[:0]
	if ev, ok := in.popInjected(); ok {
		in.events = append(in.events, ev)
	} else if in.source != nil {
		in.events = in.source.Poll(in.events)
	}
	for _, ev := range in.events {
		in.dispatch(ev)
	}
	return len(in.events)
}

func (in *Input) dispatch(ev InputEvent) {
	// Handlers may unsubscribe while being dispatched to.
	in.dispatchBuf = append(in.dispatchBuf[:0], in.handlers.handlers...)
	for _, h := range in.dispatchBuf {
		if h.fn(ev) {
			return
		}
	}
}
