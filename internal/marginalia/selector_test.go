package marginalia

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia/internal/scroll"
)

var notes = []Annotation{
	{ID: "a", SectionID: "rise", Type: "KEY_THEME", Title: "Assembly", Content: "The moving assembly line."},
	{ID: "b", SectionID: "rise", Type: "QUANT", Title: "Output", Content: "Ten thousand cars."},
	{ID: "c", SectionID: "rise", Type: "ANECDOTE", Title: "Five dollars", Content: "Wages doubled overnight."},
	{ID: "d", SectionID: "legacy", Type: "PATTERN", Title: "Decline", Content: "The Model T lingered."},
}

func newSelector() (*Selector, *fakeClock, *fakeFrames) {
	clock := &fakeClock{}
	frames := &fakeFrames{}
	return NewSelector(NewIndex(notes), clock, frames, DefaultFade), clock, frames
}

func displayedID(v View) string {
	if v.Displayed == nil {
		return ""
	}
	return v.Displayed.ID
}

func TestSelectorStartsIdle(t *testing.T) {
	s, _, _ := newSelector()
	v := s.View()
	assert.Equal(t, PhaseIdle, v.Phase)
	assert.Nil(t, v.Displayed)
	assert.False(t, v.Visible)
}

func TestSelectorFirstSelectionFadesInOnNextFrame(t *testing.T) {
	s, clock, frames := newSelector()

	s.Select("a")
	v := s.View()
	assert.Equal(t, PhaseShowing, v.Phase)
	assert.Equal(t, "a", displayedID(v))
	assert.False(t, v.Visible)
	assert.Zero(t, clock.live())

	frames.flush()
	assert.True(t, s.View().Visible)
}

func TestSelectorSameSelectionIsNoop(t *testing.T) {
	s, clock, frames := newSelector()
	s.Select("a")
	frames.flush()

	var changes int
	cancel := s.Watch(func(View) { changes++ })
	defer cancel()

	s.Select("a")
	s.Select("a")

	v := s.View()
	assert.Equal(t, PhaseShowing, v.Phase)
	assert.True(t, v.Visible)
	assert.Zero(t, clock.live())
	assert.Zero(t, changes)
}

func TestSelectorTransition(t *testing.T) {
	s, clock, frames := newSelector()
	s.Select("a")
	frames.flush()

	s.Select("b")
	v := s.View()
	assert.Equal(t, PhaseFadingOut, v.Phase)
	assert.Equal(t, "a", displayedID(v))
	assert.False(t, v.Visible)

	clock.advance(DefaultFade - time.Millisecond)
	assert.Equal(t, PhaseFadingOut, s.View().Phase)

	clock.advance(time.Millisecond)
	v = s.View()
	assert.Equal(t, PhaseShowing, v.Phase)
	assert.Equal(t, "b", displayedID(v))
	assert.False(t, v.Visible, "fade-in waits for the next frame")

	frames.flush()
	assert.True(t, s.View().Visible)
}

func TestSelectorSupersededTransition(t *testing.T) {
	s, clock, frames := newSelector()
	s.Select("a")
	frames.flush()

	var shown []string
	cancel := s.Watch(func(v View) {
		if v.Phase == PhaseShowing {
			shown = append(shown, displayedID(v))
		}
	})
	defer cancel()

	s.Select("b")
	clock.advance(50 * time.Millisecond)
	s.Select("c")
	assert.Equal(t, 1, clock.live(), "a superseding selection must not queue another timer")

	clock.advance(DefaultFade - 50*time.Millisecond)
	v := s.View()
	assert.Equal(t, PhaseShowing, v.Phase)
	assert.Equal(t, "c", displayedID(v))
	assert.NotContains(t, shown, "b")
}

func TestSelectorReturnToDisplayedCancelsFade(t *testing.T) {
	s, clock, frames := newSelector()
	s.Select("a")
	frames.flush()

	s.Select("b")
	s.Select("a")
	assert.Zero(t, clock.live())
	assert.Equal(t, PhaseShowing, s.View().Phase)

	frames.flush()
	v := s.View()
	assert.True(t, v.Visible)
	assert.Equal(t, "a", displayedID(v))

	clock.advance(time.Second)
	assert.Equal(t, "a", displayedID(s.View()))
}

func TestSelectorClearsToIdle(t *testing.T) {
	s, clock, frames := newSelector()
	s.Select("a")
	frames.flush()

	s.Select("")
	assert.Equal(t, PhaseFadingOut, s.View().Phase)
	clock.advance(DefaultFade)

	v := s.View()
	assert.Equal(t, PhaseIdle, v.Phase)
	assert.Nil(t, v.Displayed)

	s.Select("")
	assert.Equal(t, PhaseIdle, s.View().Phase)
}

func TestSelectorUnknownIDMeansNone(t *testing.T) {
	s, _, _ := newSelector()
	s.Select("missing")
	assert.Equal(t, PhaseIdle, s.View().Phase)
}

func TestSelectorCloseCancelsPendingSwap(t *testing.T) {
	s, clock, frames := newSelector()
	s.Select("a")
	frames.flush()
	s.Select("b")

	s.Close()
	assert.Zero(t, clock.live())

	clock.advance(time.Second)
	frames.flush()
	v := s.View()
	assert.Equal(t, PhaseFadingOut, v.Phase)
	assert.Equal(t, "a", displayedID(v))

	s.Select("c")
	assert.Equal(t, "a", displayedID(s.View()))
}

func TestSelectorStaleFrameIgnored(t *testing.T) {
	s, _, frames := newSelector()
	s.Select("a")
	s.Select("b")

	frames.flush()
	v := s.View()
	assert.Equal(t, PhaseFadingOut, v.Phase)
	assert.False(t, v.Visible)
}

func TestSelectorFollowAndSelectSection(t *testing.T) {
	s, clock, frames := newSelector()

	s.Follow(scroll.State{ActiveSectionID: "rise", ActiveAnnotationIndex: 1, ActiveAnnotationID: "b"})
	frames.flush()
	assert.Equal(t, "b", displayedID(s.View()))

	s.SelectSection("legacy", 0)
	clock.advance(DefaultFade)
	assert.Equal(t, "d", displayedID(s.View()))

	s.SelectSection("legacy", 5)
	clock.advance(DefaultFade)
	assert.Equal(t, PhaseIdle, s.View().Phase)
}

func TestSelectorViewIsACopy(t *testing.T) {
	s, _, _ := newSelector()
	s.Select("a")

	v := s.View()
	require.NotNil(t, v.Displayed)
	v.Displayed.Title = "changed"
	assert.Equal(t, "Assembly", s.View().Displayed.Title)
}

func TestSelectorWithRealClock(t *testing.T) {
	frames := &fakeFrames{}
	s := NewSelector(NewIndex(notes), nil, frames, 5*time.Millisecond)
	defer s.Close()

	s.Select("a")
	frames.flush()
	s.Select("b")

	require.Eventually(t, func() bool {
		return displayedID(s.View()) == "b"
	}, time.Second, time.Millisecond)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "showing", PhaseShowing.String())
	assert.Equal(t, "fading-out", PhaseFadingOut.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
