package dispatch

import (
	"slices"

	"github.com/songguesser/client/internal/playback"
	"github.com/songguesser/client/internal/protocol"
	"github.com/songguesser/client/internal/roster"
)

// transition applies one event to the state and returns the next state plus
// the effects the loop must perform. It never touches I/O.
func transition(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case ChannelOpened:
		// Announcing identity is a required handshake step, not optional.
		return s, []Effect{
			notifyStatus{Text: "Connected to " + s.Session.Addr},
			sendMessage{Msg: protocol.NameMessage(s.Session.Nickname)},
		}

	case ChannelClosed:
		if s.Session.Closing {
			return s, nil
		}
		return s, []Effect{fatalDisconnect{Err: e.Err}}

	case FrameReceived:
		msg, err := protocol.DecodeServer(e.Data)
		if err != nil {
			// fatal to the frame only
			return s, []Effect{droppedFrame{Err: err}}
		}
		return applyServerMessage(s, msg)

	case WidgetAttached:
		s.WidgetReady = true
		return s, []Effect{attachWidget{Widget: e.Widget}}

	case WidgetStateChanged:
		if s.Target.MediaID == "" {
			// Faults and cue reports before a target is set are noise, but a
			// spontaneously playing widget gets parked on the placeholder.
			if e.State == playback.StatePlaying {
				return s, []Effect{cueVideo{ID: playback.PlaceholderID}}
			}
			return s, nil
		}
		if e.State == playback.StateCued {
			return s, []Effect{sendMessage{Msg: protocol.LoadedMessage(s.Target.MediaID)}}
		}
		return s, nil

	case WidgetError:
		if s.Target.MediaID == "" {
			return s, nil
		}
		return s, []Effect{sendMessage{Msg: protocol.LoadedErrorMessage()}}

	case SubmitGuess:
		return s, []Effect{sendMessage{Msg: protocol.GuessMessage(e.Answer)}}

	case SubmitRename:
		if e.Name == "" || e.Name == s.Session.Nickname {
			return s, nil
		}
		s.Session.Nickname = e.Name
		return s, []Effect{sendMessage{Msg: protocol.NameMessage(e.Name)}}

	case SetVolume:
		return s, []Effect{notifyVolume{Value: e.Value}}
	}

	return s, nil
}

// applyServerMessage is the inbound message table.
func applyServerMessage(s State, msg protocol.ServerMessage) (State, []Effect) {
	switch msg.Type {
	case protocol.TypeUID:
		s.Session.SelfID = msg.ID
		return s, []Effect{notifyIdentity{ID: msg.ID}}

	case protocol.TypeUserList:
		var fx []Effect
		if len(s.Players) < len(msg.List) {
			fx = append(fx, notifyJoin{})
		} else if len(s.Players) > len(msg.List) {
			fx = append(fx, notifyLeave{})
		}
		players := slices.Clone(msg.List)
		roster.SortStandings(players)
		s.Players = players
		return s, append(fx, reconcile{})

	case protocol.TypeQSet:
		s.QuestionSet = msg.Data
		s.Phase.TargetQuestionCount = msg.Count
		return s, nil

	case protocol.TypeQCount:
		s.Phase.TargetQuestionCount = msg.Count
		return s, nil

	case protocol.TypeGState:
		s.Phase.QuestionNumber = msg.QNum
		s.Phase.QuestionPart = msg.Part
		s.Phase.ScoredPlayerID = roster.NoPlayer
		return s, nil

	case protocol.TypeStart:
		// Optimistic local reset; the authoritative userlist that follows
		// overwrites whatever this produced.
		players := slices.Clone(s.Players)
		for i := range players {
			players[i].Score = 0
		}
		roster.SortStandings(players)
		s.Players = players
		return s, []Effect{reconcile{}}

	case protocol.TypeGuess:
		i := roster.FindByID(s.Players, msg.UID)
		if i < 0 {
			return s, nil
		}
		players := slices.Clone(s.Players)
		players[i].Guess = msg.Guess
		s.Players = players
		// no re-sort: guess submission must not move rows mid-round
		return s, []Effect{reconcile{}}

	case protocol.TypeScore:
		i := roster.FindByID(s.Players, msg.UID)
		if i < 0 {
			return s, nil
		}
		players := slices.Clone(s.Players)
		players[i].Score++
		roster.SortStandings(players)
		s.Players = players
		s.Phase.ScoredPlayerID = msg.UID
		return s, []Effect{reconcile{}}

	case protocol.TypeReveal:
		return s, []Effect{notifyReveal{Answers: msg.Answers}}

	case protocol.TypeResult:
		return s, []Effect{notifyResult{}}

	case protocol.TypeLoad:
		if !s.WidgetReady {
			// cueing before readiness is meaningless
			return s, nil
		}
		s.Target.MediaID = msg.Vid
		return s, []Effect{cueVideo{ID: msg.Vid}}

	case protocol.TypePlay:
		if !s.WidgetReady || s.Target.MediaID == "" {
			// guards against stale or out-of-order play commands
			return s, nil
		}
		s.Target.WindowStart = msg.Start
		s.Target.WindowEnd = msg.End
		return s, []Effect{playWindow{Start: msg.Start, End: msg.End}}
	}

	// Unrecognized message kinds are forward-compatible no-ops.
	return s, nil
}
