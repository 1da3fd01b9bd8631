package iris

import (
	"testing"
	"time"
)

func TestVec3Lerp(t *testing.T) {
	tests := []struct {
		t    float64
		want Vec3
	}{
		{0, DollyRoad.From},
		{1, DollyRoad.To},
		{0.5, Vec3{0, 1.275, 7.1}},
	}
	for _, tt := range tests {
		got := DollyRoad.From.Lerp(DollyRoad.To, tt.t)
		if !vecNear(got, tt.want) {
			t.Errorf("Lerp(%v) = %+v, want %+v", tt.t, got, tt.want)
		}
	}
}

func vecNear(a, b Vec3) bool {
	const eps = 1e-9
	d := func(x, y float64) bool { return x-y < eps && y-x < eps }
	return d(a.X, b.X) && d(a.Y, b.Y) && d(a.Z, b.Z)
}

func mountDolly(index int, path DollyPath) (*DollyIntro, *IntroRegistry, *Animator) {
	a := NewAnimator()
	reg := &IntroRegistry{}
	d := NewDollyIntro(path)
	d.Mount(MountContext{Index: index, Intros: reg, Animator: a})
	return d, reg, a
}

func TestDollyIntroPlays(t *testing.T) {
	d, _, a := mountDolly(0, DollyRoad)
	c := d.PlayIntro()
	if c.Resolved() {
		t.Fatal("completion resolved before the dolly ran")
	}
	if !d.Playing() {
		t.Error("Playing = false after PlayIntro")
	}
	for i := 0; i < int(IntroDuration/testFrame); i++ {
		a.Update(testFrame)
	}
	if !c.Resolved() {
		t.Fatal("completion not resolved after IntroDuration")
	}
	if d.Progress() != 1 || !vecNear(d.Position(), DollyRoad.To) {
		t.Errorf("progress %v position %+v, want 1 at %+v", d.Progress(), d.Position(), DollyRoad.To)
	}
	if d.Playing() {
		t.Error("Playing = true after completion")
	}
}

func TestDollyIntroReentrant(t *testing.T) {
	d, _, a := mountDolly(1, DollyRiver)
	first := d.PlayIntro()
	a.Update(testFrame)
	if second := d.PlayIntro(); second != first {
		t.Error("PlayIntro while running returned a new completion")
	}
}

func TestDollyIntroUnmountResolves(t *testing.T) {
	d, reg, a := mountDolly(0, DollyRoad)
	c := d.PlayIntro()
	a.Update(testFrame)
	d.Unmount()

	if !c.Resolved() {
		t.Error("Unmount did not resolve the running intro")
	}
	if d.Progress() != 0 {
		t.Errorf("Progress = %v after Unmount, want 0", d.Progress())
	}
	if reg.Lookup(0) != nil {
		t.Error("registration survived Unmount")
	}
	if a.Len() != 0 {
		t.Errorf("animator still holds %d animations", a.Len())
	}
}

func TestDollyIntroUnmountedResolvesImmediately(t *testing.T) {
	d := NewDollyIntro(DollyRoad)
	if !d.PlayIntro().Resolved() {
		t.Error("PlayIntro on an unmounted intro should resolve immediately")
	}
}

func TestDollyIntroDurationFromContext(t *testing.T) {
	a := NewAnimator()
	d := NewDollyIntro(DollyRoad)
	d.Mount(MountContext{Index: 0, Intros: &IntroRegistry{}, Animator: a, IntroDuration: 50 * time.Millisecond})
	c := d.PlayIntro()
	for i := 0; i < 5; i++ {
		a.Update(testFrame)
	}
	if !c.Resolved() {
		t.Error("intro with a 50ms override still running after 50ms")
	}
}

func TestIntroRegistry(t *testing.T) {
	reg := &IntroRegistry{}
	a := &stubIntro{}
	b := &stubIntro{}

	if reg.Lookup(0) != nil {
		t.Error("empty registry returned a capability")
	}
	ra := reg.Register(0, a)
	if reg.Lookup(0) != a {
		t.Error("Lookup(0) did not return the registered capability")
	}

	// Replacing then removing the stale registration keeps the new one.
	reg.Register(0, b)
	ra.Remove()
	if reg.Lookup(0) != b {
		t.Error("stale Remove cleared a newer registration")
	}

	// Out-of-range indices are ignored.
	r := reg.Register(3, a)
	r.Remove()
	if reg.Lookup(3) != nil || reg.Lookup(-1) != nil {
		t.Error("out-of-range lookup returned a capability")
	}

	var nilReg *IntroRegistry
	nilReg.Register(0, a).Remove()
	if nilReg.Lookup(0) != nil {
		t.Error("nil registry returned a capability")
	}
}

func TestIntroRegistrySkipsUnmounted(t *testing.T) {
	reg := &IntroRegistry{}
	d := NewDollyIntro(DollyRoad)
	reg.Register(0, d)
	if reg.Lookup(0) != nil {
		t.Error("Lookup returned an unmounted intro")
	}
}

func TestPlayIntroWithoutCapability(t *testing.T) {
	nav := NewNavigator(NewAnimator(), nil, NavigatorConfig{})
	for _, i := range []int{0, 1, 2, 4} {
		c := nav.PlayIntro(i)
		if !c.Resolved() {
			t.Errorf("PlayIntro(%d) without capability not resolved", i)
		}
		if nav.State().IntroPlaying {
			t.Errorf("PlayIntro(%d) without capability set the intro flag", i)
		}
	}
}

func TestPlayIntroSetsFlagUntilResolved(t *testing.T) {
	reg := &IntroRegistry{}
	stub := &stubIntro{}
	reg.Register(1, stub)
	var started, finished []int
	nav := NewNavigator(NewAnimator(), reg, NavigatorConfig{Hooks: Hooks{
		OnIntroStart:  func(s int) { started = append(started, s) },
		OnIntroFinish: func(s int) { finished = append(finished, s) },
	}})

	nav.PlayIntro(1)
	if !nav.State().IntroPlaying {
		t.Fatal("intro flag not set")
	}
	stub.c.Resolve()
	if nav.State().IntroPlaying {
		t.Error("intro flag still set after resolve")
	}
	if len(started) != 1 || started[0] != 1 || len(finished) != 1 || finished[0] != 1 {
		t.Errorf("hooks started=%v finished=%v, want [1] [1]", started, finished)
	}
}

// stubIntro resolves only when the test says so.
type stubIntro struct {
	c *Completion
}

func (s *stubIntro) PlayIntro() *Completion {
	if s.c == nil || s.c.Resolved() {
		s.c = NewCompletion()
	}
	return s.c
}

func TestPlayIntroDuringRingLeavesStateAlone(t *testing.T) {
	a := NewAnimator()
	reg := &IntroRegistry{}
	stub := &stubIntro{}
	reg.Register(1, stub)
	nav := NewNavigator(a, reg, NavigatorConfig{})
	nav.state.Index = 2
	nav.Advance()
	a.Update(testFrame)

	c := nav.PlayIntro(1)
	if !c.Resolved() {
		t.Error("PlayIntro during a ring returned a pending completion")
	}
	if stub.c != nil {
		t.Error("PlayIntro during a ring started the intro")
	}
	if st := nav.State(); !st.Transitioning || st.IntroPlaying {
		t.Errorf("state = %+v, want ring only", st)
	}
}

func TestPlayIntroWhileIntroRunningKeepsGateClosed(t *testing.T) {
	a := NewAnimator()
	reg := &IntroRegistry{}
	long := NewDollyIntro(DollyRiver)
	long.Mount(MountContext{Index: 1, Intros: reg, Animator: a, IntroDuration: 2400 * time.Millisecond})
	short := NewDollyIntro(DollyRoad)
	short.Mount(MountContext{Index: 0, Intros: reg, Animator: a})
	nav := NewNavigator(a, reg, NavigatorConfig{})

	first := nav.PlayIntro(1)
	second := nav.PlayIntro(0)
	if !second.Resolved() || short.Playing() {
		t.Error("second PlayIntro started while another intro was running")
	}

	for i := 0; i < 122; i++ {
		a.Update(testFrame)
	}
	if !long.Playing() || first.Resolved() {
		t.Fatal("2400ms intro finished early")
	}
	if !nav.State().IntroPlaying {
		t.Error("busy gate opened while an intro was still playing")
	}
	for !first.Resolved() {
		a.Update(testFrame)
	}
	if nav.State().IntroPlaying {
		t.Error("intro flag still set after the intro finished")
	}
}

func TestPlayIntroAfterClose(t *testing.T) {
	reg := &IntroRegistry{}
	stub := &stubIntro{}
	reg.Register(0, stub)
	nav := NewNavigator(NewAnimator(), reg, NavigatorConfig{})
	nav.Close()
	if c := nav.PlayIntro(0); !c.Resolved() || nav.State().IntroPlaying || stub.c != nil {
		t.Errorf("PlayIntro after Close ran the intro: state %+v", nav.State())
	}
}
