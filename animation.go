package iris

import (
	"time"

	"github.com/tanema/gween"
)

// Animator is the frame scheduler for every interpolation in the package.
// It owns a clock that only moves when Update is called, and an arena of
// active animations keyed by track. A track names the value being driven
// ("ring", "intro/0", ...); at most one animation drives a track at a time.
//
// Animator is not safe for concurrent use. Call Update once per frame from
// the game loop.
type Animator struct {
	now    time.Duration
	active []*Animation
	tracks map[string]*Animation
	buf    []*Animation
}

// NewAnimator creates an Animator with its clock at zero.
func NewAnimator() *Animator {
	return &Animator{tracks: make(map[string]*Animation)}
}

// Now returns the animator clock.
func (a *Animator) Now() time.Duration {
	return a.now
}

// Len returns the number of animations still scheduled.
func (a *Animator) Len() int {
	return len(a.tracks)
}

// Animate starts driving a value on the given track from `from` to `to` over
// duration. The start time is the animator clock at the time of the call;
// the first step happens on the next Update. onUpdate receives every
// interpolated value, finishing with exactly `to`, after which onComplete
// runs. Either callback may be nil.
//
// Any animation already running on the track is canceled first.
func (a *Animator) Animate(track string, from, to float64, duration time.Duration, onUpdate func(float64), onComplete func()) *Animation {
	if prev := a.tracks[track]; prev != nil {
		prev.Cancel()
	}
	anim := &Animation{
		animator:   a,
		track:      track,
		tween:      gween.New(float32(from), float32(to), float32(duration.Seconds()), EaseInOutCubic),
		to:         to,
		start:      a.now,
		duration:   duration,
		onUpdate:   onUpdate,
		onComplete: onComplete,
	}
	a.tracks[track] = anim
	a.active = append(a.active, anim)
	return anim
}

// Update advances the clock by dt and steps every animation that existed
// before this call. Animations started from inside a callback wait for the
// next Update.
func (a *Animator) Update(dt time.Duration) {
	a.now += dt

	a.buf = append(a.buf[:0], a.active...)
	for _, anim := range a.buf {
		if anim.stopped() {
			continue
		}
		anim.step(a.now)
	}
	for i := range a.buf {
		a.buf[i] = nil
	}

	live := a.active[:0]
	for _, anim := range a.active {
		if !anim.stopped() {
			live = append(live, anim)
		}
	}
	for i := len(live); i < len(a.active); i++ {
		a.active[i] = nil
	}
	a.active = live
}

// CancelAll cancels every scheduled animation.
func (a *Animator) CancelAll() {
	for i, anim := range a.active {
		anim.Cancel()
		a.active[i] = nil
	}
	a.active = a.active[:0]
}

// Animation is the handle for one scheduled interpolation.
type Animation struct {
	animator   *Animator
	track      string
	tween      *gween.Tween
	to         float64
	start      time.Duration
	duration   time.Duration
	onUpdate   func(float64)
	onComplete func()
	done       bool
	canceled   bool
}

// Track returns the track name the animation drives.
func (an *Animation) Track() string {
	return an.track
}

// Done reports whether the animation reached its end value.
func (an *Animation) Done() bool {
	return an.done
}

// Canceled reports whether Cancel stopped the animation before it finished.
func (an *Animation) Canceled() bool {
	return an.canceled
}

// Cancel stops further updates. The driven value keeps whatever it was last
// set to. Safe to call repeatedly and after completion.
func (an *Animation) Cancel() {
	if an.stopped() {
		return
	}
	an.canceled = true
	an.release()
}

func (an *Animation) stopped() bool {
	return an.done || an.canceled
}

func (an *Animation) release() {
	if an.animator.tracks[an.track] == an {
		delete(an.animator.tracks, an.track)
	}
}

func (an *Animation) step(now time.Duration) {
	k := 1.0
	if an.duration > 0 {
		k = clamp01(float64(now-an.start) / float64(an.duration))
	}

	if k < 1 {
		val, _ := an.tween.Set(float32((now - an.start).Seconds()))
		if an.onUpdate != nil {
			an.onUpdate(float64(val))
		}
		return
	}

	an.done = true
	an.release()
	if an.onUpdate != nil {
		an.onUpdate(an.to)
	}
	if an.onComplete != nil {
		an.onComplete()
	}
}
