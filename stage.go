package iris

import (
	"image"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Session is one full-viewport page. Draw renders it into dst, which always
// covers exactly the viewport.
type Session interface {
	Draw(dst *ebiten.Image)
}

// SessionUpdater is implemented by sessions that animate on their own.
// Update is called every frame while the session is visible.
type SessionUpdater interface {
	Update(dt time.Duration)
}

// SessionMounter is implemented by sessions that care about becoming the
// current session. Sessions with an intro register it in Mount.
type SessionMounter interface {
	Mount(ctx MountContext)
	Unmount()
}

// StageOptions configures NewStage.
type StageOptions struct {
	Config Config
	// Source provides real input. Nil polls Ebitengine.
	Source EventSource
	// Logger defaults to a stderr logger at Config.LogLevel (debug when
	// Config.Debug is set).
	Logger *slog.Logger
	Hooks  Hooks
}

// Stage is an ebiten.Game that shows one session at a time and opens an iris
// onto the next one when the navigator transitions.
type Stage struct {
	// ClearColor fills the screen before sessions draw.
	ClearColor Color
	// RingColor and RingWidth style the ring at the iris edge.
	RingColor Color
	RingWidth float64
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ShowFPS draws the FPS overlay.
	ShowFPS bool
	// ExitAfterScript closes the stage once an attached TestRunner is done.
	ExitAfterScript bool

	sessions [SessionCount]Session
	animator *Animator
	intros   *IntroRegistry
	nav      *Navigator
	input    *Input
	arbiter  *Arbiter
	sub      Subscription

	mounted       int
	introDur      time.Duration
	width, height int

	pool     renderTexturePool
	vertices []ebiten.Vertex
	indices  []uint16
	fps      fpsOverlay

	screenshotQueue []string
	testRunner      *TestRunner

	log    *slog.Logger
	debug  bool
	closed bool
	stats  frameStats
}

// NewStage wires an Animator, IntroRegistry, Navigator, Input and Arbiter
// around the given sessions and mounts session 0. Nil sessions draw as
// ClearColor.
func NewStage(sessions [SessionCount]Session, opts StageOptions) *Stage {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		level := ParseLogLevel(cfg.LogLevel)
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger = NewLogger(level)
	}
	source := opts.Source
	if source == nil {
		source = &EbitenSource{WheelScale: cfg.WheelScale}
	}

	s := &Stage{
		ClearColor:    cfg.ClearColor,
		RingColor:     cfg.RingColor,
		RingWidth:     cfg.RingWidth,
		ScreenshotDir: cfg.ScreenshotDir,
		ShowFPS:       cfg.ShowFPS,
		sessions:      sessions,
		animator:      NewAnimator(),
		intros:        &IntroRegistry{},
		input:         NewInput(source),
		mounted:       -1,
		introDur:      cfg.IntroDuration,
		log:           logger,
		debug:         cfg.Debug,
	}
	if s.ScreenshotDir == "" {
		s.ScreenshotDir = "screenshots"
	}
	s.nav = NewNavigator(s.animator, s.intros, NavigatorConfig{
		RingDuration: cfg.RingDuration,
		Logger:       logger,
		Hooks:        opts.Hooks,
	})
	s.arbiter = NewArbiter(s.nav, ArbiterConfig{
		WheelThreshold: cfg.WheelThreshold,
		TouchThreshold: cfg.TouchThreshold,
	})
	s.sub = s.input.Subscribe(s.arbiter.Handle)
	s.syncMount()
	return s
}

// Navigator returns the stage's navigator.
func (s *Stage) Navigator() *Navigator { return s.nav }

// Input returns the stage's input bus, for injection and extra handlers.
func (s *Stage) Input() *Input { return s.input }

// Animator returns the frame scheduler shared by the stage and its sessions.
func (s *Stage) Animator() *Animator { return s.animator }

// Intros returns the registry sessions register their intros in.
func (s *Stage) Intros() *IntroRegistry { return s.intros }

// Mounted returns the index of the mounted session, or -1 after Close.
func (s *Stage) Mounted() int { return s.mounted }

// SetDebugMode enables or disables per-frame timing logs.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetTestRunner attaches a TestRunner. Its step runs at the start of every
// Update, before input is processed.
func (s *Stage) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Update processes input, advances animations and keeps the current session
// mounted. It returns ebiten.Termination after Close.
func (s *Stage) Update() error {
	if s.closed {
		return ebiten.Termination
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	dt := frameDuration()
	if s.testRunner != nil {
		s.testRunner.step(s)
		if s.ExitAfterScript && s.testRunner.Done() {
			s.Close()
			return ebiten.Termination
		}
	}
	s.input.Update()
	s.animator.Update(dt)
	s.syncMount()

	rs := s.nav.Render(s.viewport())
	s.updateSession(rs.Above, dt)
	if rs.HasBelow && rs.Below != rs.Above {
		s.updateSession(rs.Below, dt)
	}
	if s.ShowFPS {
		s.fps.update(dt)
	}

	if s.debug {
		s.stats.updateTime = time.Since(t0)
		s.stats.animations = s.animator.Len()
	}
	return nil
}

// Draw renders the current session and, while transitioning, the target
// session seen through the iris.
func (s *Stage) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	rs := s.nav.Render(float64(w), float64(h))

	screen.Fill(s.ClearColor.toRGBA())
	if !rs.HasBelow {
		s.drawSession(screen, rs.Above)
	} else {
		s.drawSession(screen, rs.Below)

		layer := s.pool.Acquire(w, h)
		view := layer.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)
		s.drawSession(view, rs.Above)

		cx, cy := float32(w)/2, float32(h)/2
		s.punchHole(view, cx, cy, float32(rs.HoleRadius))
		var op ebiten.DrawImageOptions
		op.Blend = BlendNormal.EbitenBlend()
		screen.DrawImage(layer, &op)
		s.pool.Release(layer)

		if s.RingWidth > 0 && rs.HoleRadius > 0 {
			vector.StrokeCircle(screen, cx, cy, float32(rs.HoleRadius), float32(s.RingWidth), s.RingColor.toRGBA(), true)
		}
	}

	if s.ShowFPS {
		s.fps.draw(screen)
	}
	s.flushScreenshots(screen)

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.debugLog(s.stats)
	}
}

// Layout implements ebiten.Game. The stage always renders at the outside
// size so the iris geometry follows window resizes.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.width, s.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close stops the stage: the navigator rejects further intents, input is
// unsubscribed, the current session is unmounted and every animation is
// canceled. The next Update returns ebiten.Termination.
func (s *Stage) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.nav.Close()
	s.sub.Remove()
	s.unmount()
	s.animator.CancelAll()
	s.log.Debug("stage closed")
}

func (s *Stage) viewport() (float64, float64) {
	if s.width <= 0 || s.height <= 0 {
		return defaultViewportW, defaultViewportH
	}
	return float64(s.width), float64(s.height)
}

// syncMount keeps the navigator's current session mounted.
func (s *Stage) syncMount() {
	idx := s.nav.Index()
	if s.mounted == idx {
		return
	}
	s.unmount()
	s.mounted = idx
	if m, ok := s.sessions[idx].(SessionMounter); ok {
		m.Mount(MountContext{Index: idx, Intros: s.intros, Animator: s.animator, IntroDuration: s.introDur})
	}
	s.log.Debug("session mounted", "session", idx)
}

func (s *Stage) unmount() {
	if s.mounted < 0 {
		return
	}
	if m, ok := s.sessions[s.mounted].(SessionMounter); ok {
		m.Unmount()
	}
	s.log.Debug("session unmounted", "session", s.mounted)
	s.mounted = -1
}

func (s *Stage) updateSession(idx int, dt time.Duration) {
	if u, ok := s.sessions[idx].(SessionUpdater); ok {
		u.Update(dt)
	}
}

func (s *Stage) drawSession(dst *ebiten.Image, idx int) {
	if sess := s.sessions[idx]; sess != nil {
		sess.Draw(dst)
	}
}

// frameDuration is the simulated time of one Update.
func frameDuration() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}
