package playback

// WidgetState mirrors the state codes the embedded player reports.
type WidgetState int

const (
	StateUnstarted WidgetState = -1
	StateEnded     WidgetState = 0
	StatePlaying   WidgetState = 1
	StatePaused    WidgetState = 2
	StateBuffering WidgetState = 3
	StateCued      WidgetState = 5
)

// Widget is the slice of the host's media player the synchronizer drives.
// The core only consumes it; state-change and error events reach the
// dispatcher through the host wiring, not through this interface.
type Widget interface {
	CueByID(id string)
	SeekTo(seconds float64)
	Play()
	Pause()
	CurrentTime() float64
	State() WidgetState
	AdShowing() bool
}

// WidgetProvider reports the host's widget once it has attached.
type WidgetProvider func() (Widget, bool)
