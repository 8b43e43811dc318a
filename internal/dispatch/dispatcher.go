package dispatch

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/songguesser/client/internal/playback"
	"github.com/songguesser/client/internal/roster"
)

// Transport is the session channel as the dispatcher sees it.
type Transport interface {
	Connect(ctx context.Context, addr string) error
	Send(ctx context.Context, v any) error
	Receive(ctx context.Context) ([]byte, error)
	Close()
}

// MediaController is the playback synchronizer as the dispatcher sees it.
type MediaController interface {
	Attach(w playback.Widget)
	Cue(id string)
	PlayWindow(ctx context.Context, start, end float64)
}

// Reconciler keeps the presentation bindings in sync with the roster.
type Reconciler interface {
	Reconcile(players []roster.Player, selfID, scoredID int)
}

// Notifier receives the presentation-layer notifications the core emits.
type Notifier interface {
	Status(text string)
	Identity(id int)
	JoinSound()
	LeaveSound()
	Reveal(answers []string)
	GameOver()
	Volume(value int)
	Fatal(err error)
}

type Config struct {
	Addr     string
	Nickname string
	Channel  Transport
	Playback MediaController
	Bindings Reconciler
	Notifier Notifier
	Logger   *zap.Logger
}

// Dispatcher is the single-threaded state machine at the center of the
// client. Every input goes through its inbox and is processed fully before
// the next, so the replicated state needs no locking.
type Dispatcher struct {
	inbox    chan Event
	state    State
	channel  Transport
	playback MediaController
	bindings Reconciler
	notifier Notifier
	log      *zap.Logger
}

func New(cfg Config) *Dispatcher {
	return &Dispatcher{
		inbox:    make(chan Event, 64),
		state:    NewState(cfg.Addr, cfg.Nickname),
		channel:  cfg.Channel,
		playback: cfg.Playback,
		bindings: cfg.Bindings,
		notifier: cfg.Notifier,
		log:      cfg.Logger,
	}
}

// Inbox is where transport frames, widget callbacks, and user actions land.
func (d *Dispatcher) Inbox() chan<- Event { return d.inbox }

// Run dials the server, starts the reader, and consumes the inbox until the
// context is cancelled or the server closes on us. A server-initiated close
// returns a non-nil error; a local shutdown returns nil.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.notifier.Status("Connecting to " + d.state.Session.Addr)
	if err := d.channel.Connect(ctx, d.state.Session.Addr); err != nil {
		d.notifier.Fatal(err)
		return err
	}
	go d.readLoop(ctx)
	d.inbox <- ChannelOpened{}
	return d.loop(ctx)
}

func (d *Dispatcher) readLoop(ctx context.Context) {
	for {
		data, err := d.channel.Receive(ctx)
		if err != nil {
			select {
			case d.inbox <- ChannelClosed{Err: err}:
			case <-ctx.Done():
			}
			return
		}
		select {
		case d.inbox <- FrameReceived{Data: data}:
		case <-ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			// Locally-initiated teardown: mark closing before the channel
			// goes down so the reader's error is not reported as fatal.
			d.state.Session.Closing = true
			d.channel.Close()
			return nil

		case ev := <-d.inbox:
			if gs, ok := ev.(GetState); ok {
				gs.Reply <- d.snapshot()
				continue
			}
			next, effects := transition(d.state, ev)
			d.state = next
			for _, fx := range effects {
				if err := d.runEffect(ctx, fx); err != nil {
					return err
				}
			}
		}
	}
}

func (d *Dispatcher) runEffect(ctx context.Context, fx Effect) error {
	switch e := fx.(type) {
	case sendMessage:
		if err := d.channel.Send(ctx, e.Msg); err != nil {
			d.log.Warn("send failed", zap.String("type", e.Msg.Type), zap.Error(err))
		}
	case attachWidget:
		d.playback.Attach(e.Widget)
	case cueVideo:
		d.playback.Cue(e.ID)
	case playWindow:
		d.playback.PlayWindow(ctx, e.Start, e.End)
	case reconcile:
		d.bindings.Reconcile(d.state.Players, d.state.Session.SelfID, d.state.Phase.ScoredPlayerID)
	case droppedFrame:
		d.log.Warn("dropping malformed frame", zap.Error(e.Err))
	case notifyStatus:
		d.notifier.Status(e.Text)
	case notifyIdentity:
		d.notifier.Identity(e.ID)
	case notifyJoin:
		d.notifier.JoinSound()
	case notifyLeave:
		d.notifier.LeaveSound()
	case notifyReveal:
		d.notifier.Reveal(e.Answers)
	case notifyResult:
		d.notifier.GameOver()
	case notifyVolume:
		d.notifier.Volume(e.Value)
	case fatalDisconnect:
		d.notifier.Fatal(e.Err)
		return fmt.Errorf("session closed by server: %w", e.Err)
	}
	return nil
}

func (d *Dispatcher) snapshot() Snapshot {
	return Snapshot{
		Session:     d.state.Session,
		Players:     slices.Clone(d.state.Players),
		Phase:       d.state.Phase,
		QuestionSet: d.state.QuestionSet,
		Target:      d.state.Target,
		WidgetReady: d.state.WidgetReady,
	}
}
