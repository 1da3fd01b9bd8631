package iris

import (
	"fmt"
	"time"
)

// Vec3 is a 3D position used by camera rigs.
type Vec3 struct {
	X, Y, Z float64
}

// Lerp returns the point t of the way from v to o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

// Camera poses for the two sessions that dolly in before leaving.
var (
	DollyRoad  = DollyPath{From: Vec3{0, 1.2, 9}, To: Vec3{0, 1.35, 5.2}}
	DollyRiver = DollyPath{From: Vec3{0.35, 1.4, 6}, To: Vec3{0, 1.65, 3.6}}
)

// DollyPath is the start and end camera position of a dolly-in.
type DollyPath struct {
	From, To Vec3
}

// MountContext is handed to a session when it becomes the current one.
type MountContext struct {
	Index    int
	Intros   *IntroRegistry
	Animator *Animator
	// IntroDuration overrides intro lengths when positive.
	IntroDuration time.Duration
}

// DollyIntro is an IntroCapability that moves a camera along a DollyPath.
// The animation runs on its own animator track; the navigator only sees the
// completion. Progress stays at 1 once the intro has played, until the
// session unmounts.
type DollyIntro struct {
	Path     DollyPath
	Duration time.Duration

	animator *Animator
	track    string
	reg      Registration
	mounted  bool
	progress float64
	anim     *Animation
	current  *Completion
}

// NewDollyIntro creates an unmounted intro for the given camera path.
func NewDollyIntro(path DollyPath) *DollyIntro {
	return &DollyIntro{Path: path, Duration: IntroDuration}
}

// Mount registers the intro for ctx.Index and binds it to ctx.Animator.
func (d *DollyIntro) Mount(ctx MountContext) {
	d.animator = ctx.Animator
	if ctx.IntroDuration > 0 {
		d.Duration = ctx.IntroDuration
	}
	d.track = fmt.Sprintf("intro/%d", ctx.Index)
	d.progress = 0
	d.mounted = true
	d.reg = ctx.Intros.Register(ctx.Index, d)
}

// Unmount cancels a running intro, resolves its completion, resets the
// camera and removes the registration.
func (d *DollyIntro) Unmount() {
	d.mounted = false
	d.reg.Remove()
	d.reg = Registration{}
	if d.anim != nil {
		d.anim.Cancel()
		d.anim = nil
	}
	d.progress = 0
	if c := d.current; c != nil {
		d.current = nil
		c.Resolve()
	}
}

// Mounted reports whether the owning session is mounted.
func (d *DollyIntro) Mounted() bool {
	return d.mounted
}

// Playing reports whether the intro animation is in flight.
func (d *DollyIntro) Playing() bool {
	return d.current != nil
}

// PlayIntro starts the dolly. A call while it is already running returns the
// same completion; a call on an unmounted intro resolves immediately.
func (d *DollyIntro) PlayIntro() *Completion {
	if d.current != nil {
		return d.current
	}
	if !d.mounted || d.animator == nil {
		return ResolvedCompletion()
	}

	c := NewCompletion()
	d.current = c
	d.anim = d.animator.Animate(d.track, 0, 1, d.Duration,
		func(v float64) { d.progress = v },
		func() {
			d.anim = nil
			d.current = nil
			c.Resolve()
		})
	return c
}

// Progress returns the eased intro progress in [0, 1].
func (d *DollyIntro) Progress() float64 {
	return d.progress
}

// Position returns the camera position for the current progress.
func (d *DollyIntro) Position() Vec3 {
	return d.Path.From.Lerp(d.Path.To, d.progress)
}
