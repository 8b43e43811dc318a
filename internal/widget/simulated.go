package widget

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/songguesser/client/internal/playback"
)

const defaultCueDelay = 50 * time.Millisecond

// Simulated stands in for the embedded media player when the client runs
// headless. Cueing completes asynchronously like the real widget, playback
// position advances against the injected clock, and the ad flag is settable
// so window-boundary behavior can be exercised end to end.
type Simulated struct {
	mu sync.Mutex

	log   *zap.Logger
	clock clockwork.Clock

	state     playback.WidgetState
	currentID string
	position  float64
	playedAt  time.Time
	ad        bool

	cueDelay time.Duration
	failIDs  map[string]bool

	onState func(playback.WidgetState)
	onError func()
}

func NewSimulated(clock clockwork.Clock, log *zap.Logger) *Simulated {
	return &Simulated{
		log:      log,
		clock:    clock,
		state:    playback.StateUnstarted,
		cueDelay: defaultCueDelay,
		failIDs:  make(map[string]bool),
	}
}

// Provide satisfies playback.WidgetProvider. The simulated widget is
// available as soon as it exists.
func (s *Simulated) Provide() (playback.Widget, bool) { return s, true }

// OnStateChange registers the state-changed event sink. The host wiring
// forwards these into the dispatcher inbox.
func (s *Simulated) OnStateChange(fn func(playback.WidgetState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onState = fn
}

// OnError registers the playback-fault event sink.
func (s *Simulated) OnError(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = fn
}

// FailOnCue makes future cues of id report a playback fault instead of
// cueing, simulating an unplayable track.
func (s *Simulated) FailOnCue(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failIDs[id] = true
}

// SetAdShowing toggles the ad-interstitial signal.
func (s *Simulated) SetAdShowing(ad bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ad = ad
}

func (s *Simulated) CueByID(id string) {
	s.mu.Lock()
	s.currentID = id
	s.position = 0
	s.setStateLocked(playback.StateBuffering)
	fail := s.failIDs[id]
	s.mu.Unlock()

	s.clock.AfterFunc(s.cueDelay, func() {
		s.mu.Lock()
		if s.currentID != id {
			s.mu.Unlock()
			return
		}
		if fail {
			errFn := s.onError
			s.mu.Unlock()
			s.log.Debug("cue failed", zap.String("id", id))
			if errFn != nil {
				errFn()
			}
			return
		}
		s.setStateLocked(playback.StateCued)
		s.mu.Unlock()
	})
}

func (s *Simulated) SeekTo(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = seconds
	if s.state == playback.StatePlaying {
		s.playedAt = s.clock.Now()
	}
}

func (s *Simulated) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == playback.StatePlaying {
		return
	}
	s.playedAt = s.clock.Now()
	s.setStateLocked(playback.StatePlaying)
}

func (s *Simulated) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != playback.StatePlaying {
		return
	}
	s.position += s.clock.Since(s.playedAt).Seconds()
	s.setStateLocked(playback.StatePaused)
}

func (s *Simulated) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == playback.StatePlaying {
		return s.position + s.clock.Since(s.playedAt).Seconds()
	}
	return s.position
}

func (s *Simulated) State() playback.WidgetState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Simulated) AdShowing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ad
}

// setStateLocked flips the state and fires the event sink on its own
// goroutine, so a sink that calls back into the widget cannot deadlock.
func (s *Simulated) setStateLocked(st playback.WidgetState) {
	s.state = st
	if fn := s.onState; fn != nil {
		go fn(st)
	}
}
