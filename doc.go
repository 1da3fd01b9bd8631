// Package iris is a full-viewport session navigator for [Ebitengine].
//
// A [Stage] shows one of [SessionCount] sessions at a time. Scrolling down,
// pressing Down/PageDown or swiping up advances; the opposite retreats. The
// change is drawn as an iris: a circular hole opens in the current session
// and reveals the next one underneath. Sessions 0 and 1 may register an
// intro (for example a camera dolly, see [DollyIntro]) that plays to the end
// before the iris opens.
//
// # Quick start
//
//	cfg := iris.DefaultConfig()
//	stage := iris.NewStage([iris.SessionCount]iris.Session{a, b, c, d, e},
//		iris.StageOptions{Config: cfg})
//	if err := iris.Run(stage, cfg.RunConfig()); err != nil {
//		log.Fatal(err)
//	}
//
// # Core
//
// The navigation types never call into Ebitengine and can be driven
// directly, for example from tests:
//
//   - [Ease] is the cubic ease-in-out curve used by every animation.
//   - [Animator] is the frame scheduler; [Animator.Animate] returns a
//     cancelable [Animation]. One animation drives a track at a time.
//   - [IntroRegistry] holds the optional [IntroCapability] of sessions 0
//     and 1; intros report completion through a [Completion].
//   - [Navigator] owns the session index and the busy gate. Intents that
//     arrive while an intro or transition runs are dropped, not queued.
//   - [Arbiter] turns wheel, key and touch events into intents.
//   - [HoleRadius] gives the iris radius for a viewport and progress.
//
// Everything runs on the single frame thread that calls [Animator.Update];
// nothing in the core locks.
//
// [Ebitengine]: https://ebitengine.org
package iris
