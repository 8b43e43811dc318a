package dispatch

import (
	"github.com/songguesser/client/internal/playback"
	"github.com/songguesser/client/internal/protocol"
)

// Effect is a side effect a transition asks the loop to perform. Keeping
// them as data is what makes the state machine testable without a live
// transport or widget.
type Effect interface{ isEffect() }

type sendMessage struct{ Msg protocol.ClientMessage }

type attachWidget struct{ Widget playback.Widget }

type cueVideo struct{ ID string }

type playWindow struct{ Start, End float64 }

// reconcile refreshes the UI bindings from the current roster.
type reconcile struct{}

type droppedFrame struct{ Err error }

type notifyStatus struct{ Text string }

type notifyIdentity struct{ ID int }

type notifyJoin struct{}

type notifyLeave struct{}

type notifyReveal struct{ Answers []string }

type notifyResult struct{}

type notifyVolume struct{ Value int }

// fatalDisconnect terminates the client: the server closed on us while
// Closing was unset.
type fatalDisconnect struct{ Err error }

func (sendMessage) isEffect()     {}
func (attachWidget) isEffect()    {}
func (cueVideo) isEffect()        {}
func (playWindow) isEffect()      {}
func (reconcile) isEffect()       {}
func (droppedFrame) isEffect()    {}
func (notifyStatus) isEffect()    {}
func (notifyIdentity) isEffect()  {}
func (notifyJoin) isEffect()      {}
func (notifyLeave) isEffect()     {}
func (notifyReveal) isEffect()    {}
func (notifyResult) isEffect()    {}
func (notifyVolume) isEffect()    {}
func (fatalDisconnect) isEffect() {}
