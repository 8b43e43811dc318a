package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/songguesser/client/internal/roster"
)

// Inbound message kinds. Anything else is a forward-compatible no-op.
const (
	TypeUID      = "uid"
	TypeUserList = "userlist"
	TypeQSet     = "qset"
	TypeQCount   = "qcount"
	TypeGState   = "gstate"
	TypeStart    = "start"
	TypeGuess    = "guess"
	TypeScore    = "score"
	TypeReveal   = "reveal"
	TypeResult   = "result"
	TypeLoad     = "load"
	TypePlay     = "play"
)

// Outbound message kinds.
const (
	TypeName   = "name"
	TypeLoaded = "loaded"
)

// QuestionSet is the trimmed question-set payload the server shares with
// every client: set metadata plus the candidate answer pool.
type QuestionSet struct {
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Count      int      `json:"count"`
	Image      string   `json:"img"`
	Candidates []string `json:"candidates"`
}

// ServerMessage is the inbound frame envelope: one flat struct keyed by Type,
// with only the fields for that type populated.
type ServerMessage struct {
	Type    string          `json:"type"`
	ID      int             `json:"id,omitempty"`      // uid
	List    []roster.Player `json:"list,omitempty"`    // userlist
	Data    *QuestionSet    `json:"data,omitempty"`    // qset
	Count   int             `json:"count,omitempty"`   // qset, qcount
	QNum    int             `json:"qnum,omitempty"`    // gstate
	Part    int             `json:"part,omitempty"`    // gstate
	UID     int             `json:"uid,omitempty"`     // guess, score
	Guess   *string         `json:"guess,omitempty"`   // guess; empty string is a skip
	Answers []string        `json:"answers,omitempty"` // reveal
	Vid     string          `json:"vid,omitempty"`     // load
	Start   float64         `json:"start,omitempty"`   // play
	End     float64         `json:"end,omitempty"`     // play
}

// DecodeServer parses one inbound frame. An unrecognized Type is not an
// error; the caller ignores it.
func DecodeServer(data []byte) (ServerMessage, error) {
	var msg ServerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ServerMessage{}, fmt.Errorf("decode server frame: %w", err)
	}
	return msg, nil
}

// ClientMessage is the outbound frame envelope.
type ClientMessage struct {
	Type   string  `json:"type"`
	Name   string  `json:"name,omitempty"`
	Answer *string `json:"answer,omitempty"`
	ID     string  `json:"id,omitempty"`
	Error  bool    `json:"error,omitempty"`
}

// NameMessage announces or changes this client's display name. Sending it is
// the required first step after the connection opens.
func NameMessage(name string) ClientMessage {
	return ClientMessage{Type: TypeName, Name: name}
}

// GuessMessage submits an answer. The empty string is an explicit skip and
// must still appear on the wire, hence the pointer field.
func GuessMessage(answer string) ClientMessage {
	return ClientMessage{Type: TypeGuess, Answer: &answer}
}

// LoadedMessage acknowledges that the widget cued the given track.
func LoadedMessage(id string) ClientMessage {
	return ClientMessage{Type: TypeLoaded, ID: id}
}

// LoadedErrorMessage reports that the current track cannot play, so the
// server can pick a different one.
func LoadedErrorMessage() ClientMessage {
	return ClientMessage{Type: TypeLoaded, Error: true}
}
