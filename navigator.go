package iris

import (
	"log/slog"
	"time"
)

const ringTrack = "ring"

// Direction is the sign of a ring transition.
type Direction int8

const (
	Forward  Direction = 1  // towards higher session indices
	Backward Direction = -1 // towards lower session indices
)

func (d Direction) String() string {
	if d < 0 {
		return "backward"
	}
	return "forward"
}

// Phase is the coarse state of a Navigator.
type Phase uint8

const (
	PhaseIdle  Phase = iota // accepting intents
	PhaseIntro              // a session intro is playing
	PhaseRing               // the iris is opening
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseRing:
		return "ring"
	default:
		return "idle"
	}
}

// Intent is a normalized navigation request.
type Intent uint8

const (
	IntentAdvance Intent = iota // go to the next session
	IntentRetreat               // go to the previous session
)

func (i Intent) String() string {
	if i == IntentRetreat {
		return "retreat"
	}
	return "advance"
}

// DropReason says why an intent was ignored.
type DropReason uint8

const (
	DropBusy     DropReason = iota // intro or ring in flight
	DropBoundary                   // already at the first or last session
	DropClosed                     // navigator closed
)

func (r DropReason) String() string {
	switch r {
	case DropBoundary:
		return "boundary"
	case DropClosed:
		return "closed"
	default:
		return "busy"
	}
}

// State is a snapshot of the navigation state. RingProgress is 0 whenever
// neither Transitioning nor IntroPlaying is set, and the two flags are never
// both set.
type State struct {
	Index         int
	Direction     Direction
	RingProgress  float64
	Transitioning bool
	IntroPlaying  bool
}

// Phase derives the coarse phase from the flags.
func (s State) Phase() Phase {
	switch {
	case s.IntroPlaying:
		return PhaseIntro
	case s.Transitioning:
		return PhaseRing
	default:
		return PhaseIdle
	}
}

// Busy reports whether the busy gate is closed.
func (s State) Busy() bool {
	return s.Transitioning || s.IntroPlaying
}

// RenderState is what the presentation layer needs for one frame: the
// session drawn on top (with a circular hole of HoleRadius centered on the
// viewport) and, only while transitioning, the session drawn full-bleed
// underneath.
type RenderState struct {
	Above      int
	Below      int
	HasBelow   bool
	HoleRadius float64
}

// Hooks receives navigation lifecycle events. Any field may be nil.
type Hooks struct {
	OnIntent           func(intent Intent, from int)
	OnDrop             func(intent Intent, reason DropReason)
	OnIntroStart       func(session int)
	OnIntroFinish      func(session int)
	OnTransitionStart  func(from int, dir Direction)
	OnTransitionFinish func(to int, elapsed time.Duration)
}

func (h Hooks) intent(i Intent, from int) {
	if h.OnIntent != nil {
		h.OnIntent(i, from)
	}
}

func (h Hooks) drop(i Intent, r DropReason) {
	if h.OnDrop != nil {
		h.OnDrop(i, r)
	}
}

func (h Hooks) introStarted(session int) {
	if h.OnIntroStart != nil {
		h.OnIntroStart(session)
	}
}

func (h Hooks) introFinished(session int) {
	if h.OnIntroFinish != nil {
		h.OnIntroFinish(session)
	}
}

func (h Hooks) transitionStarted(from int, dir Direction) {
	if h.OnTransitionStart != nil {
		h.OnTransitionStart(from, dir)
	}
}

func (h Hooks) transitionFinished(to int, elapsed time.Duration) {
	if h.OnTransitionFinish != nil {
		h.OnTransitionFinish(to, elapsed)
	}
}

// NavigatorConfig holds optional Navigator settings. The zero value is valid.
type NavigatorConfig struct {
	// RingDuration overrides the iris duration. Zero means RingDuration.
	RingDuration time.Duration
	// Logger receives debug-level navigation logs. Nil discards them.
	Logger *slog.Logger
	// Hooks receives lifecycle events.
	Hooks Hooks
}

// Navigator owns the current session index and sequences intros and iris
// transitions. All methods must be called from the frame thread that drives
// the Animator.
type Navigator struct {
	state     State
	animator  *Animator
	intros    *IntroRegistry
	ring      *Animation
	ringStart time.Duration
	ringDur   time.Duration
	hooks     Hooks
	log       *slog.Logger
	closed    bool
}

// NewNavigator creates a Navigator at session 0. intros may be nil, in which
// case no session plays an intro.
func NewNavigator(animator *Animator, intros *IntroRegistry, cfg NavigatorConfig) *Navigator {
	if intros == nil {
		intros = &IntroRegistry{}
	}
	if cfg.RingDuration <= 0 {
		cfg.RingDuration = RingDuration
	}
	if cfg.Logger == nil {
		cfg.Logger = NopLogger()
	}
	return &Navigator{
		state:    State{Direction: Forward},
		animator: animator,
		intros:   intros,
		ringDur:  cfg.RingDuration,
		hooks:    cfg.Hooks,
		log:      cfg.Logger,
	}
}

// State returns a snapshot of the navigation state.
func (n *Navigator) State() State {
	return n.state
}

// Index returns the current session index.
func (n *Navigator) Index() int {
	return n.state.Index
}

// Busy reports whether an intro or ring transition is in flight.
func (n *Navigator) Busy() bool {
	return n.state.Busy()
}

// Intros returns the registry consulted by PlayIntro.
func (n *Navigator) Intros() *IntroRegistry {
	return n.intros
}

// Advance moves to the next session. Sessions 0 and 1 first play their intro.
// It returns false when the intent is dropped: while busy, after Close, or
// from the last session.
func (n *Navigator) Advance() bool {
	if !n.admit(IntentAdvance, n.state.Index >= SessionCount-1) {
		return false
	}

	from := n.state.Index
	if from >= introSlots {
		n.beginRing(Forward)
		return true
	}

	n.PlayIntro(from).Then(func() {
		if n.closed {
			return
		}
		n.beginRing(Forward)
	})
	return true
}

// Retreat moves to the previous session. Intros never play on the way back.
// It returns false when the intent is dropped: while busy, after Close, or
// from the first session.
func (n *Navigator) Retreat() bool {
	if !n.admit(IntentRetreat, n.state.Index <= 0) {
		return false
	}
	n.beginRing(Backward)
	return true
}

// Apply dispatches an intent to Advance or Retreat.
func (n *Navigator) Apply(i Intent) bool {
	if i == IntentRetreat {
		return n.Retreat()
	}
	return n.Advance()
}

func (n *Navigator) admit(i Intent, atBoundary bool) bool {
	reason := DropReason(0)
	switch {
	case n.closed:
		reason = DropClosed
	case n.state.Busy():
		reason = DropBusy
	case atBoundary:
		reason = DropBoundary
	default:
		n.log.Debug("intent accepted", "intent", i, "from", n.state.Index)
		n.hooks.intent(i, n.state.Index)
		return true
	}
	n.log.Debug("intent dropped", "intent", i, "reason", reason, "index", n.state.Index, "phase", n.state.Phase())
	n.hooks.drop(i, reason)
	return false
}

func (n *Navigator) beginRing(dir Direction) {
	n.state.Direction = dir
	n.state.RingProgress = 0
	n.state.Transitioning = true
	n.ringStart = n.animator.Now()

	from := n.state.Index
	n.log.Debug("transition started", "from", from, "direction", dir)
	n.hooks.transitionStarted(from, dir)

	n.ring = n.animator.Animate(ringTrack, 0, 1, n.ringDur,
		func(v float64) { n.state.RingProgress = v },
		n.finishRing)
}

func (n *Navigator) finishRing() {
	n.ring = nil
	n.state.Index = clampIndex(n.state.Index + int(n.state.Direction))
	n.state.RingProgress = 0
	n.state.Transitioning = false

	elapsed := n.animator.Now() - n.ringStart
	n.log.Debug("transition finished", "index", n.state.Index, "elapsed", elapsed)
	n.hooks.transitionFinished(n.state.Index, elapsed)
}

// Target returns the session the current transition is heading to, or the
// current index when idle.
func (n *Navigator) Target() int {
	if !n.state.Transitioning {
		return n.state.Index
	}
	return clampIndex(n.state.Index + int(n.state.Direction))
}

// Render computes the layer assignment and iris radius for a w×h viewport.
func (n *Navigator) Render(w, h float64) RenderState {
	rs := RenderState{Above: n.state.Index}
	if n.state.Transitioning {
		rs.Below = n.Target()
		rs.HasBelow = true
		rs.HoleRadius = HoleRadius(w, h, n.state.RingProgress)
	}
	return rs
}

// Close cancels the ring animation and makes every later intent a no-op.
// Intros are owned by their sessions, which cancel them on unmount.
func (n *Navigator) Close() {
	if n.closed {
		return
	}
	n.closed = true
	if n.ring != nil {
		n.ring.Cancel()
		n.ring = nil
	}
	n.log.Debug("navigator closed", "index", n.state.Index)
}

// Closed reports whether Close has been called.
func (n *Navigator) Closed() bool {
	return n.closed
}
