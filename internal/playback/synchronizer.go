package playback

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// PlaceholderID is cued whenever the widget would otherwise sit on nothing,
// keeping the player initialized before any track is targeted.
const PlaceholderID = "0"

const (
	readyPollInterval    = 100 * time.Millisecond
	boundaryPollInterval = 20 * time.Millisecond
)

// Synchronizer drives the attached widget to match server-issued playback
// windows. All methods run on the dispatcher loop; the only concurrent piece
// is the boundary-loop goroutine, which touches nothing but the widget and
// its captured window end.
type Synchronizer struct {
	log    *zap.Logger
	clock  clockwork.Clock
	widget Widget

	cancelLoop context.CancelFunc
	loopDone   chan struct{}
}

func NewSynchronizer(clock clockwork.Clock, log *zap.Logger) *Synchronizer {
	return &Synchronizer{log: log, clock: clock}
}

// WaitForWidget polls until the provider reports an attached widget, then
// calls ready with it. The poll cancels itself on success.
func (s *Synchronizer) WaitForWidget(ctx context.Context, provider WidgetProvider, ready func(Widget)) {
	go func() {
		ticker := s.clock.NewTicker(readyPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				w, ok := provider()
				if !ok {
					continue
				}
				s.log.Info("widget attached")
				ready(w)
				return
			}
		}
	}()
}

// Attach binds the widget. No media target exists this early, so the neutral
// placeholder is cued to initialize the player.
func (s *Synchronizer) Attach(w Widget) {
	s.widget = w
	w.CueByID(PlaceholderID)
}

// Cue loads a track without starting playback. Any live boundary loop
// belongs to a stale window and is cancelled.
func (s *Synchronizer) Cue(id string) {
	if s.widget == nil {
		return
	}
	s.stopBoundaryLoop()
	s.log.Debug("cueing", zap.String("id", id))
	s.widget.CueByID(id)
}

// PlayWindow seeks to start, begins playback, and bounds it with the polling
// loop, replacing any loop from a previous window.
func (s *Synchronizer) PlayWindow(ctx context.Context, start, end float64) {
	if s.widget == nil {
		return
	}
	s.widget.SeekTo(start)
	s.widget.Play()
	s.startBoundaryLoop(ctx, end)
}

// startBoundaryLoop polls the playback position until it crosses end, then
// pauses. The poll is the drift-correction mechanism: a single deadline
// timer cannot account for buffering stalls or ad interstitials, so ticks
// while an ad is showing skip the boundary check entirely. At most one loop
// is live; starting a new one cancels the previous and waits for it to exit,
// so a superseded loop can never pause the new window.
func (s *Synchronizer) startBoundaryLoop(parent context.Context, end float64) {
	s.stopBoundaryLoop()
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	s.cancelLoop = cancel
	s.loopDone = done

	w := s.widget
	go func() {
		defer close(done)
		defer cancel()
		ticker := s.clock.NewTicker(boundaryPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				if w.AdShowing() {
					// ad time does not count against the window
					continue
				}
				if w.CurrentTime() >= end {
					w.Pause()
					return
				}
			}
		}
	}()
}

func (s *Synchronizer) stopBoundaryLoop() {
	if s.cancelLoop == nil {
		return
	}
	s.cancelLoop()
	<-s.loopDone
	s.cancelLoop = nil
	s.loopDone = nil
}
