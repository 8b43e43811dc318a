package dispatch

import "github.com/songguesser/client/internal/playback"

// Event is one unit of input to the dispatcher. Everything that can happen
// to the client, transport frames, widget callbacks, user actions, arrives
// here and is processed strictly one at a time.
type Event interface{ isEvent() }

// ChannelOpened fires once the transport connection is up. The identity
// handshake is issued in response.
type ChannelOpened struct{}

// ChannelClosed fires when the transport connection is gone for any reason.
// Whether this is fatal depends on Session.Closing.
type ChannelClosed struct{ Err error }

// FrameReceived carries one raw inbound frame.
type FrameReceived struct{ Data []byte }

// WidgetAttached fires once the readiness poll finds the host's widget.
type WidgetAttached struct{ Widget playback.Widget }

// WidgetStateChanged carries one state-change report from the widget.
type WidgetStateChanged struct{ State playback.WidgetState }

// WidgetError reports a playback fault for whatever is currently cued.
type WidgetError struct{}

// SubmitGuess is a user-initiated answer. Empty string is a skip.
type SubmitGuess struct{ Answer string }

// SubmitRename is a user-initiated display-name change.
type SubmitRename struct{ Name string }

// SetVolume is a user-initiated volume change request, echoed to the
// presentation layer.
type SetVolume struct{ Value int }

// GetState asks for a snapshot without racing the loop.
type GetState struct{ Reply chan Snapshot }

func (ChannelOpened) isEvent()      {}
func (ChannelClosed) isEvent()      {}
func (FrameReceived) isEvent()      {}
func (WidgetAttached) isEvent()     {}
func (WidgetStateChanged) isEvent() {}
func (WidgetError) isEvent()        {}
func (SubmitGuess) isEvent()        {}
func (SubmitRename) isEvent()       {}
func (SetVolume) isEvent()          {}
func (GetState) isEvent()           {}
