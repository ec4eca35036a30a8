package eventform

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDebounce is how long the title must stay unchanged before it is probed.
const DefaultDebounce = 500 * time.Millisecond

// TitleProber answers whether an event with the given normalized title exists.
type TitleProber interface {
	ExistsByTitle(ctx context.Context, normalizedTitle string) (bool, error)
}

// Timer is a scheduled call that can be cancelled before it fires.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func timeAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ProbeState is the uniqueness check result for the title last passed to Update.
type ProbeState struct {
	// Title is the raw title this state belongs to.
	Title string
	// Pending is true while the debounce timer is armed.
	Pending bool
	// Checking is true from the moment the probe fires until its response arrives.
	Checking bool
	// Determined is true once a probe for Title completed without error.
	Determined bool
	Exists     bool
	// Err is the last probe failure for Title, if any.
	Err error
}

// UniquenessChecker debounces title edits and probes the store for an
// existing event with the same title. Only the probe issued for the most
// recent title may change the state; late responses for earlier titles are
// dropped on arrival.
type UniquenessChecker struct {
	ctx       context.Context
	prober    TitleProber
	logger    *slog.Logger
	debounce  time.Duration
	afterFunc AfterFunc
	observer  func()

	mu    sync.Mutex
	gen   uint64
	timer Timer
	state ProbeState
}

// CheckerOption configures a UniquenessChecker.
type CheckerOption func(*UniquenessChecker)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) CheckerOption {
	return func(c *UniquenessChecker) { c.debounce = d }
}

// WithAfterFunc replaces time.AfterFunc as the scheduler.
func WithAfterFunc(f AfterFunc) CheckerOption {
	return func(c *UniquenessChecker) { c.afterFunc = f }
}

// WithCheckerLogger sets the logger probe failures are reported to.
func WithCheckerLogger(l *slog.Logger) CheckerOption {
	return func(c *UniquenessChecker) { c.logger = l }
}

// WithObserver registers a callback run after every state transition. The
// callback runs without the checker lock held and should read State() itself.
func WithObserver(f func()) CheckerOption {
	return func(c *UniquenessChecker) { c.observer = f }
}

// NewUniquenessChecker returns a checker whose probes run with ctx.
func NewUniquenessChecker(ctx context.Context, prober TitleProber, opts ...CheckerOption) *UniquenessChecker {
	c := &UniquenessChecker{
		ctx:       ctx,
		prober:    prober,
		logger:    slog.Default(),
		debounce:  DefaultDebounce,
		afterFunc: timeAfterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update records a new title value. Any pending probe is cancelled and a
// new one is scheduled after the debounce window. An empty title is never
// probed.
func (c *UniquenessChecker) Update(title string) {
	normalized := NormalizeTitle(title)

	c.mu.Lock()
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.state = ProbeState{Title: title}
	if normalized != "" {
		c.state.Pending = true
		c.timer = c.afterFunc(c.debounce, func() { c.probe(gen, normalized) })
	}
	c.mu.Unlock()

	c.notify()
}

// State returns the current probe state.
func (c *UniquenessChecker) State() ProbeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stop cancels a pending probe and discards the result of one in flight.
func (c *UniquenessChecker) Stop() {
	c.mu.Lock()
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.state.Pending = false
	c.state.Checking = false
	c.mu.Unlock()
}

func (c *UniquenessChecker) probe(gen uint64, normalized string) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.state.Pending = false
	c.state.Checking = true
	c.mu.Unlock()
	c.notify()

	exists, err := c.prober.ExistsByTitle(c.ctx, normalized)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded title probe", "title", normalized)
		return
	}
	c.state.Checking = false
	if err != nil {
		c.state.Determined = false
		c.state.Exists = false
		c.state.Err = err
	} else {
		c.state.Determined = true
		c.state.Exists = exists
		c.state.Err = nil
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("title uniqueness check failed", "title", normalized, "err", err)
	}
	c.notify()
}

func (c *UniquenessChecker) notify() {
	if c.observer != nil {
		c.observer()
	}
}
