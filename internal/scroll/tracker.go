package scroll

import (
	"context"
	"sync"
)

// Geometry reads the current layout. Implementations must be cheap: they are
// consulted once per animation frame while the reader scrolls.
type Geometry interface {
	// Markers returns section headings in document order.
	Markers() []Marker
	ScrollY() float64
	ViewportHeight() float64
}

// Viewport delivers scroll and resize notifications.
type Viewport interface {
	Subscribe(onChange func()) (unsubscribe func())
}

// FrameScheduler runs a callback before the next paint.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// Tracker keeps State in sync with the viewport. Bursts of viewport events
// collapse into at most one recompute per frame.
type Tracker struct {
	cfg      Config
	geometry Geometry
	viewport Viewport
	frames   FrameScheduler
	notes    SectionNotes

	mu          sync.Mutex
	state       State
	pending     bool
	active      bool
	unsubscribe func()
	watchers    map[int]func(State)
	nextWatch   int
}

// NewTracker wires a tracker to its geometry and event sources. It does not
// observe anything until Start is called.
func NewTracker(cfg Config, geometry Geometry, viewport Viewport, frames FrameScheduler, notes SectionNotes) *Tracker {
	return &Tracker{
		cfg:      cfg,
		geometry: geometry,
		viewport: viewport,
		frames:   frames,
		notes:    notes,
		watchers: make(map[int]func(State)),
	}
}

// Start recomputes immediately and begins listening for viewport changes.
// The returned stop function detaches the listener; it is safe to call more
// than once.
func (t *Tracker) Start() (stop func()) {
	t.mu.Lock()
	if t.active {
		t.mu.Unlock()
		return t.Stop
	}
	t.active = true
	t.mu.Unlock()

	t.Recompute()

	unsubscribe := t.viewport.Subscribe(t.schedule)

	t.mu.Lock()
	if !t.active {
		// Stopped while subscribing.
		t.mu.Unlock()
		unsubscribe()
		return t.Stop
	}
	t.unsubscribe = unsubscribe
	t.mu.Unlock()
	return t.Stop
}

// Run tracks until ctx is cancelled, always detaching on return.
func (t *Tracker) Run(ctx context.Context) error {
	stop := t.Start()
	defer stop()
	<-ctx.Done()
	return ctx.Err()
}

// Stop detaches from the viewport. Pending frames become no-ops.
func (t *Tracker) Stop() {
	t.mu.Lock()
	t.active = false
	unsubscribe := t.unsubscribe
	t.unsubscribe = nil
	t.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// State returns the most recently computed state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Watch registers fn to be called with every new state. The returned
// function removes the registration.
func (t *Tracker) Watch(fn func(State)) (cancel func()) {
	t.mu.Lock()
	id := t.nextWatch
	t.nextWatch++
	t.watchers[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.watchers, id)
		t.mu.Unlock()
	}
}

// Recompute reads the geometry and publishes the derived state. Calling it
// redundantly is harmless: watchers only hear about actual changes.
func (t *Tracker) Recompute() {
	snap := Snapshot{
		Markers:        t.geometry.Markers(),
		ScrollY:        t.geometry.ScrollY(),
		ViewportHeight: t.geometry.ViewportHeight(),
	}
	next, ok := Compute(t.cfg, snap, t.notes)
	if !ok {
		return
	}

	t.mu.Lock()
	if next == t.state {
		t.mu.Unlock()
		return
	}
	t.state = next
	watchers := make([]func(State), 0, len(t.watchers))
	for _, fn := range t.watchers {
		watchers = append(watchers, fn)
	}
	t.mu.Unlock()

	for _, fn := range watchers {
		fn(next)
	}
}

// schedule is the viewport callback. A frame already queued absorbs
// further events until it runs.
func (t *Tracker) schedule() {
	t.mu.Lock()
	if !t.active || t.pending {
		t.mu.Unlock()
		return
	}
	t.pending = true
	t.mu.Unlock()

	t.frames.RequestFrame(t.frame)
}

func (t *Tracker) frame() {
	t.mu.Lock()
	t.pending = false
	active := t.active
	t.mu.Unlock()

	if active {
		t.Recompute()
	}
}
