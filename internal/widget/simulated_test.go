package widget

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/songguesser/client/internal/playback"
)

func newTestWidget() (*Simulated, *clockwork.FakeClock) {
	fc := clockwork.NewFakeClock()
	return NewSimulated(fc, zap.NewNop()), fc
}

func recvState(t *testing.T, ch <-chan playback.WidgetState) playback.WidgetState {
	t.Helper()
	select {
	case st := <-ch:
		return st
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for state change")
		return 0 // unreachable
	}
}

func TestCue_BuffersThenCues(t *testing.T) {
	w, fc := newTestWidget()
	states := make(chan playback.WidgetState, 8)
	w.OnStateChange(func(st playback.WidgetState) { states <- st })

	w.CueByID("abc")
	assert.Equal(t, playback.StateBuffering, w.State())
	require.Equal(t, playback.StateBuffering, recvState(t, states))

	fc.Advance(defaultCueDelay)
	require.Equal(t, playback.StateCued, recvState(t, states))
	assert.Equal(t, playback.StateCued, w.State())
}

func TestCue_ReplacedBeforeDelayNeverFires(t *testing.T) {
	w, fc := newTestWidget()
	states := make(chan playback.WidgetState, 8)

	w.CueByID("first")
	fc.Advance(defaultCueDelay / 2)
	w.CueByID("second")
	w.OnStateChange(func(st playback.WidgetState) { states <- st })

	// Only the second cue's delay may complete.
	fc.Advance(defaultCueDelay)
	require.Equal(t, playback.StateCued, recvState(t, states))
	select {
	case st := <-states:
		t.Fatalf("unexpected extra state change %v", st)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFailOnCue_ReportsFaultInsteadOfCueing(t *testing.T) {
	w, fc := newTestWidget()
	faults := make(chan struct{}, 1)
	w.OnError(func() { faults <- struct{}{} })
	w.FailOnCue("broken")

	w.CueByID("broken")
	fc.Advance(defaultCueDelay)

	select {
	case <-faults:
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for playback fault")
	}
	assert.Equal(t, playback.StateBuffering, w.State())
}

func TestPlayback_PositionTracksClock(t *testing.T) {
	w, fc := newTestWidget()
	w.CueByID("abc")
	fc.Advance(defaultCueDelay)

	w.SeekTo(30)
	w.Play()
	assert.Equal(t, playback.StatePlaying, w.State())

	fc.Advance(5 * time.Second)
	assert.InDelta(t, 35, w.CurrentTime(), 0.001)

	w.Pause()
	assert.Equal(t, playback.StatePaused, w.State())
	fc.Advance(10 * time.Second)
	assert.InDelta(t, 35, w.CurrentTime(), 0.001)
}

func TestSeekWhilePlaying_RestartsFromTarget(t *testing.T) {
	w, fc := newTestWidget()
	w.Play()
	fc.Advance(3 * time.Second)

	w.SeekTo(60)
	fc.Advance(2 * time.Second)
	assert.InDelta(t, 62, w.CurrentTime(), 0.001)
}

func TestProvide_AlwaysAvailable(t *testing.T) {
	w, _ := newTestWidget()
	got, ok := w.Provide()
	require.True(t, ok)
	assert.Same(t, playback.Widget(w), got)
}

func TestSetAdShowing(t *testing.T) {
	w, _ := newTestWidget()
	assert.False(t, w.AdShowing())
	w.SetAdShowing(true)
	assert.True(t, w.AdShowing())
}
