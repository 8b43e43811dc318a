package dispatch

import (
	"github.com/songguesser/client/internal/protocol"
	"github.com/songguesser/client/internal/roster"
)

// Session is this client's identity and lifecycle flags. Closing is set
// exactly once, right before a locally-initiated disconnect, and suppresses
// the fatal-disconnect path.
type Session struct {
	Addr     string
	SelfID   int
	Nickname string
	Closing  bool
}

// GamePhase tracks question progress. QuestionNumber below zero means the
// game has not started. ScoredPlayerID highlights the most recently scored
// player and is cleared on every phase advance.
type GamePhase struct {
	QuestionNumber      int
	QuestionPart        int
	TargetQuestionCount int
	ScoredPlayerID      int
}

// PlaybackTarget is the track and window the server most recently dictated.
// An empty MediaID means no track is targeted.
type PlaybackTarget struct {
	MediaID     string
	WindowStart float64
	WindowEnd   float64
}

// State is the whole replicated client state. transition treats it as a
// value and returns the next one; slices are cloned before mutation.
type State struct {
	Session     Session
	Players     []roster.Player
	Phase       GamePhase
	QuestionSet *protocol.QuestionSet
	Target      PlaybackTarget
	WidgetReady bool
}

func NewState(addr, nickname string) State {
	return State{
		Session: Session{Addr: addr, SelfID: roster.NoPlayer, Nickname: nickname},
		Phase: GamePhase{
			QuestionNumber:      -1,
			QuestionPart:        -1,
			TargetQuestionCount: -1,
			ScoredPlayerID:      roster.NoPlayer,
		},
	}
}

// Snapshot is a copy of the state handed out for rendering and tests.
type Snapshot struct {
	Session     Session               `json:"session"`
	Players     []roster.Player       `json:"players"`
	Phase       GamePhase             `json:"phase"`
	QuestionSet *protocol.QuestionSet `json:"question_set,omitempty"`
	Target      PlaybackTarget        `json:"target"`
	WidgetReady bool                  `json:"widget_ready"`
}
