package iris

// Completion is a one-shot signal that an asynchronous operation (an intro)
// has finished. Waiters registered with Then run synchronously, on the frame
// thread, in registration order, when Resolve is first called.
//
// Done exposes the same signal as a channel for observers outside the frame
// loop.
type Completion struct {
	done     chan struct{}
	waiters  []func()
	resolved bool
}

// NewCompletion returns an unresolved Completion.
func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// ResolvedCompletion returns a Completion that is already resolved.
func ResolvedCompletion() *Completion {
	c := NewCompletion()
	c.Resolve()
	return c
}

// Resolve marks the completion as finished and runs pending waiters.
// It returns false if the completion was already resolved.
func (c *Completion) Resolve() bool {
	if c.resolved {
		return false
	}
	c.resolved = true
	close(c.done)

	waiters := c.waiters
	c.waiters = nil
	for _, fn := range waiters {
		fn()
	}
	return true
}

// Resolved reports whether Resolve has been called.
func (c *Completion) Resolved() bool {
	return c.resolved
}

// Then registers fn to run on resolution. If the completion is already
// resolved, fn runs immediately.
func (c *Completion) Then(fn func()) {
	if c.resolved {
		fn()
		return
	}
	c.waiters = append(c.waiters, fn)
}

// Done returns a channel that is closed once the completion resolves.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}
