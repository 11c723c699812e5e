package marginalia

import (
	"sync"
	"time"

	"github.com/scholia-labs/scholia/internal/scroll"
)

// DefaultFade is how long the outgoing annotation takes to fade out.
const DefaultFade = 200 * time.Millisecond

// Phase is the transition state of the displayed annotation.
type Phase int

const (
	// PhaseIdle shows the empty-state hint.
	PhaseIdle Phase = iota
	// PhaseShowing shows Displayed.
	PhaseShowing
	// PhaseFadingOut is hiding Displayed before a swap.
	PhaseFadingOut
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseShowing:
		return "showing"
	case PhaseFadingOut:
		return "fading-out"
	default:
		return "unknown"
	}
}

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed callbacks.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer { return time.AfterFunc(d, fn) }

// RealClock schedules with the time package.
var RealClock Clock = realClock{}

// View is what the annotation card renders.
type View struct {
	Phase     Phase
	Displayed *Annotation
	// Visible is false while fading out and until the first frame after a swap.
	Visible bool
}

// Selector turns a stream of selections into one displayed annotation with
// a fade-out, swap, fade-in transition.
type Selector struct {
	index  *Index
	clock  Clock
	frames scroll.FrameScheduler
	fade   time.Duration

	mu        sync.Mutex
	phase     Phase
	displayed *Annotation
	visible   bool
	target    *Annotation
	timer     Timer
	gen       uint64
	closed    bool
	watchers  map[int]func(View)
	nextWatch int
}

// NewSelector creates an idle Selector over index. A non-positive fade uses
// DefaultFade.
func NewSelector(index *Index, clock Clock, frames scroll.FrameScheduler, fade time.Duration) *Selector {
	if fade <= 0 {
		fade = DefaultFade
	}
	if clock == nil {
		clock = RealClock
	}
	return &Selector{
		index:    index,
		clock:    clock,
		frames:   frames,
		fade:     fade,
		watchers: make(map[int]func(View)),
	}
}

// Follow selects the annotation named by a tracker state.
func (s *Selector) Follow(st scroll.State) {
	s.Select(st.ActiveAnnotationID)
}

// SelectSection selects the n-th annotation of a section, or nothing when
// the section has fewer than n+1 annotations.
func (s *Selector) SelectSection(sectionID string, n int) {
	a, ok := s.index.At(sectionID, n)
	if !ok {
		s.Select("")
		return
	}
	s.Select(a.ID)
}

// Select requests that the annotation with id be displayed. An empty or
// unknown id requests the empty state.
func (s *Selector) Select(id string) {
	var next *Annotation
	if id != "" {
		if a, ok := s.index.Lookup(id); ok {
			next = &a
		}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	var frame func()
	switch s.phase {
	case PhaseIdle:
		if next == nil {
			s.mu.Unlock()
			return
		}
		frame = s.showLocked(next)

	case PhaseShowing:
		if sameAnnotation(s.displayed, next) {
			s.mu.Unlock()
			return
		}
		s.phase = PhaseFadingOut
		s.visible = false
		s.target = next
		s.gen++
		gen := s.gen
		s.timer = s.clock.AfterFunc(s.fade, func() { s.swap(gen) })

	case PhaseFadingOut:
		if sameAnnotation(s.displayed, next) {
			// Back to what is still on screen: cancel the swap.
			s.stopTimerLocked()
			s.target = nil
			frame = s.showLocked(s.displayed)
			break
		}
		s.target = next
	}

	view := s.viewLocked()
	watchers := s.watchersLocked()
	s.mu.Unlock()

	if frame != nil {
		s.frames.RequestFrame(frame)
	}
	notify(watchers, view)
}

// showLocked puts a on screen, still hidden, and returns the frame callback
// that fades it in.
func (s *Selector) showLocked(a *Annotation) func() {
	s.phase = PhaseShowing
	s.displayed = a
	s.visible = false
	s.gen++
	gen := s.gen
	return func() { s.fadeIn(gen) }
}

func (s *Selector) swap(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen || s.phase != PhaseFadingOut {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	target := s.target
	s.target = nil

	var frame func()
	if target == nil {
		s.phase = PhaseIdle
		s.displayed = nil
		s.visible = false
		s.gen++
	} else {
		frame = s.showLocked(target)
	}
	view := s.viewLocked()
	watchers := s.watchersLocked()
	s.mu.Unlock()

	if frame != nil {
		s.frames.RequestFrame(frame)
	}
	notify(watchers, view)
}

func (s *Selector) fadeIn(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen || s.phase != PhaseShowing {
		s.mu.Unlock()
		return
	}
	s.visible = true
	view := s.viewLocked()
	watchers := s.watchersLocked()
	s.mu.Unlock()

	notify(watchers, view)
}

// View returns the current display state.
func (s *Selector) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Watch registers fn to receive every view change.
func (s *Selector) Watch(fn func(View)) (cancel func()) {
	s.mu.Lock()
	id := s.nextWatch
	s.nextWatch++
	s.watchers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// Close cancels any pending swap. Later selections and callbacks are ignored.
func (s *Selector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimerLocked()
	s.watchers = make(map[int]func(View))
}

func (s *Selector) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Selector) viewLocked() View {
	v := View{Phase: s.phase, Visible: s.visible}
	if s.displayed != nil {
		a := *s.displayed
		v.Displayed = &a
	}
	return v
}

func (s *Selector) watchersLocked() []func(View) {
	out := make([]func(View), 0, len(s.watchers))
	for _, fn := range s.watchers {
		out = append(out, fn)
	}
	return out
}

func notify(watchers []func(View), v View) {
	for _, fn := range watchers {
		fn(v)
	}
}

func sameAnnotation(a, b *Annotation) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
