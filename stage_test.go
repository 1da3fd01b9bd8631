package iris

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// testSession counts lifecycle calls and optionally carries a dolly intro.
type testSession struct {
	mounts, unmounts, updates int
	intro                     *DollyIntro
}

func (s *testSession) Draw(*ebiten.Image) {}

func (s *testSession) Update(time.Duration) { s.updates++ }

func (s *testSession) Mount(ctx MountContext) {
	s.mounts++
	if s.intro != nil {
		s.intro.Mount(ctx)
	}
}

func (s *testSession) Unmount() {
	s.unmounts++
	if s.intro != nil {
		s.intro.Unmount()
	}
}

func newTestStage(t *testing.T, src EventSource) (*Stage, [SessionCount]*testSession) {
	t.Helper()
	return newHookedStage(t, src, Hooks{})
}

func newHookedStage(t *testing.T, src EventSource, hooks Hooks) (*Stage, [SessionCount]*testSession) {
	t.Helper()
	var fakes [SessionCount]*testSession
	var sessions [SessionCount]Session
	for i := range fakes {
		fakes[i] = &testSession{}
		if i < introSlots {
			fakes[i].intro = NewDollyIntro(DollyRoad)
		}
		sessions[i] = fakes[i]
	}
	cfg := DefaultConfig()
	cfg.IntroDuration = 100 * time.Millisecond
	cfg.RingDuration = 100 * time.Millisecond
	cfg.ScreenshotDir = t.TempDir()
	s := NewStage(sessions, StageOptions{Config: cfg, Source: src, Logger: NopLogger(), Hooks: hooks})
	return s, fakes
}

func runFrames(t *testing.T, s *Stage, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := s.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
}

func TestNewStageMountsFirstSession(t *testing.T) {
	s, fakes := newTestStage(t, &fakeSource{})
	if s.Mounted() != 0 || fakes[0].mounts != 1 {
		t.Errorf("mounted=%d mounts=%d, want session 0 mounted once", s.Mounted(), fakes[0].mounts)
	}
	if s.Intros().Lookup(0) == nil {
		t.Error("session 0 intro not registered")
	}
	if s.Input().Handlers() != 1 {
		t.Errorf("Handlers = %d, want the arbiter only", s.Input().Handlers())
	}
}

func TestStageAdvanceMountsNextSession(t *testing.T) {
	src := &fakeSource{events: []InputEvent{{Type: EventKey, Key: KeyArrowDown}}}
	s, fakes := newTestStage(t, src)

	runFrames(t, s, 1)
	if !s.Navigator().State().IntroPlaying {
		t.Fatal("key press did not start the intro")
	}
	runFrames(t, s, 60)

	if got := s.Navigator().Index(); got != 1 {
		t.Fatalf("Index = %d, want 1", got)
	}
	if s.Mounted() != 1 || fakes[0].unmounts != 1 || fakes[1].mounts != 1 {
		t.Errorf("mounted=%d unmounts0=%d mounts1=%d", s.Mounted(), fakes[0].unmounts, fakes[1].mounts)
	}
	if s.Intros().Lookup(0) != nil {
		t.Error("session 0 intro still registered after unmount")
	}
	if s.Intros().Lookup(1) == nil {
		t.Error("session 1 intro not registered")
	}
}

func TestStageUpdatesVisibleSessions(t *testing.T) {
	s, fakes := newTestStage(t, &fakeSource{})
	s.Navigator().Retreat()
	runFrames(t, s, 3)
	if fakes[0].updates != 3 {
		t.Errorf("session 0 updated %d times, want 3", fakes[0].updates)
	}
	for i := 1; i < SessionCount; i++ {
		if fakes[i].updates != 0 {
			t.Errorf("hidden session %d updated %d times", i, fakes[i].updates)
		}
	}

	// Session 2 has no intro, so the ring opens at once and both sides update.
	s.nav.state.Index = 2
	s.Navigator().Advance()
	runFrames(t, s, 1)
	if fakes[3].updates != 1 {
		t.Errorf("target session updated %d times during the ring, want 1", fakes[3].updates)
	}
}

func TestStageClose(t *testing.T) {
	s, fakes := newTestStage(t, &fakeSource{})
	s.Input().InjectKey(KeyArrowDown)
	runFrames(t, s, 2)
	intro := fakes[0].intro

	s.Close()
	s.Close()

	if fakes[0].unmounts != 1 {
		t.Errorf("unmounts = %d, want 1", fakes[0].unmounts)
	}
	if s.Mounted() != -1 {
		t.Errorf("Mounted = %d after Close, want -1", s.Mounted())
	}
	if intro.Playing() {
		t.Error("intro still playing after Close")
	}
	if s.Animator().Len() != 0 {
		t.Errorf("animator holds %d animations after Close", s.Animator().Len())
	}
	if s.Input().Handlers() != 0 {
		t.Errorf("Handlers = %d after Close, want 0", s.Input().Handlers())
	}
	if err := s.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after Close = %v, want ebiten.Termination", err)
	}
	if s.Navigator().Index() != 0 {
		t.Errorf("Index = %d, want 0", s.Navigator().Index())
	}
}

func TestStageLayoutDrivesViewport(t *testing.T) {
	s, _ := newTestStage(t, &fakeSource{})
	if w, h := s.viewport(); w != 1920 || h != 1080 {
		t.Errorf("viewport before Layout = %vx%v, want 1920x1080", w, h)
	}
	if w, h := s.Layout(800, 600); w != 800 || h != 600 {
		t.Errorf("Layout = %dx%d", w, h)
	}
	if w, h := s.viewport(); w != 800 || h != 600 {
		t.Errorf("viewport = %vx%v, want 800x600", w, h)
	}
}

func TestStageNilSessions(t *testing.T) {
	var sessions [SessionCount]Session
	s := NewStage(sessions, StageOptions{Source: &fakeSource{}, Logger: NopLogger()})
	s.Navigator().Advance()
	runFrames(t, s, 60)
	if s.Navigator().Index() != 1 || s.Mounted() != 1 {
		t.Errorf("Index=%d Mounted=%d, want 1 1", s.Navigator().Index(), s.Mounted())
	}
}

func TestRenderTexturePool(t *testing.T) {
	var p renderTexturePool
	img := p.Acquire(100, 60)
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 64 {
		t.Errorf("Acquire(100, 60) = %dx%d, want 128x64", b.Dx(), b.Dy())
	}
	p.Release(img)
	if p.Len() != 1 {
		t.Errorf("Len = %d, want 1", p.Len())
	}
	if again := p.Acquire(120, 33); again != img {
		t.Error("pool did not reuse the released image")
	}
	if p.Len() != 0 {
		t.Errorf("Len = %d, want 0", p.Len())
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {1080, 2048}, {1920, 2048}, {2048, 2048},
	}
	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBlendModeMapping(t *testing.T) {
	tests := []struct {
		mode BlendMode
		want ebiten.Blend
	}{
		{BlendNormal, ebiten.BlendSourceOver},
		{BlendErase, ebiten.BlendDestinationOut},
	}
	for _, tt := range tests {
		if got := tt.mode.EbitenBlend(); got != tt.want {
			t.Errorf("BlendMode(%d).EbitenBlend() = %+v, want %+v", tt.mode, got, tt.want)
		}
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	want := colorRGBA{R: 127, G: 63, B: 0, A: 127}
	if got != want {
		t.Errorf("toRGBA = %+v, want %+v", got, want)
	}
}

func TestStageReplaysIntroOnEachForwardCrossing(t *testing.T) {
	var starts []int
	s, fakes := newHookedStage(t, &fakeSource{}, Hooks{
		OnIntroStart: func(session int) { starts = append(starts, session) },
	})
	settle := func(want int) {
		t.Helper()
		for i := 0; i < 200 && (s.Navigator().Busy() || s.Mounted() != want); i++ {
			runFrames(t, s, 1)
		}
		if s.Navigator().Index() != want || s.Mounted() != want {
			t.Fatalf("Index=%d Mounted=%d, want %d", s.Navigator().Index(), s.Mounted(), want)
		}
	}

	s.Input().InjectKey(KeyArrowDown)
	settle(1)
	s.Input().InjectKey(KeyArrowUp)
	settle(0)

	if fakes[0].mounts != 2 {
		t.Errorf("session 0 mounted %d times, want 2", fakes[0].mounts)
	}
	if p := fakes[0].intro.Progress(); p != 0 {
		t.Errorf("intro progress after remount = %v, want 0", p)
	}

	s.Input().InjectKey(KeyArrowDown)
	runFrames(t, s, 1)
	if !s.Navigator().State().IntroPlaying {
		t.Fatal("second forward crossing did not replay the intro")
	}
	settle(1)

	if len(starts) != 2 || starts[0] != 0 || starts[1] != 0 {
		t.Errorf("intro starts = %v, want [0 0]", starts)
	}
}
