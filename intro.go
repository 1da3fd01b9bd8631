package iris

// introSlots is the number of sessions that may carry an intro: 0 and 1.
const introSlots = 2

// IntroCapability is implemented by sessions that play a one-shot intro
// before the iris may open. PlayIntro must resolve its completion exactly
// once, must return the in-flight completion when called while already
// running, and must resolve it if the session is torn down mid-flight.
type IntroCapability interface {
	PlayIntro() *Completion
}

// mountedIntro is optionally implemented by capabilities that can be
// registered but temporarily unavailable.
type mountedIntro interface {
	Mounted() bool
}

// IntroRegistry maps sessions 0 and 1 to their optional intro capability.
// Sessions register when they mount and remove the registration when they
// unmount.
type IntroRegistry struct {
	slots [introSlots]IntroCapability
}

// Registration allows removing a capability from an IntroRegistry.
type Registration struct {
	reg   *IntroRegistry
	index int
	intro IntroCapability
}

// Register installs c as the intro for session index, replacing any
// previous capability. Indices other than 0 and 1 are ignored and yield a
// Registration whose Remove does nothing.
func (r *IntroRegistry) Register(index int, c IntroCapability) Registration {
	if r == nil || index < 0 || index >= introSlots || c == nil {
		return Registration{}
	}
	r.slots[index] = c
	return Registration{reg: r, index: index, intro: c}
}

// Lookup returns the capability for index, or nil when none is registered
// or the registered one is unavailable.
func (r *IntroRegistry) Lookup(index int) IntroCapability {
	if r == nil || index < 0 || index >= introSlots {
		return nil
	}
	c := r.slots[index]
	if m, ok := c.(mountedIntro); ok && !m.Mounted() {
		return nil
	}
	return c
}

// Remove clears the registration. A slot that has since been taken by a
// different capability is left alone.
func (h Registration) Remove() {
	if h.reg == nil {
		return
	}
	if h.reg.slots[h.index] == h.intro {
		h.reg.slots[h.index] = nil
	}
}

// PlayIntro runs the intro registered for index. Sessions without an intro
// get an already-resolved completion, as does a call on a closed or busy
// navigator, which leaves the state untouched. While the intro runs the
// navigator is busy and rejects every intent.
func (n *Navigator) PlayIntro(index int) *Completion {
	if n.closed || n.state.Busy() {
		return ResolvedCompletion()
	}
	c := n.intros.Lookup(index)
	if c == nil {
		return ResolvedCompletion()
	}

	n.state.IntroPlaying = true
	n.log.Debug("intro started", "session", index)
	n.hooks.introStarted(index)

	done := c.PlayIntro()
	done.Then(func() {
		n.state.IntroPlaying = false
		n.log.Debug("intro finished", "session", index)
		n.hooks.introFinished(index)
	})
	return done
}
