package webui

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/songguesser/client/internal/dispatch"
	"github.com/songguesser/client/internal/roster"
)

const snapshotTimeout = 2 * time.Second

// Server is the local presentation layer: it serves the reconciled player
// rows and phase state, and turns HTTP posts into dispatcher events. It also
// implements dispatch.Notifier and roster.Pool, so the core stays unaware of
// any rendering technology.
type Server struct {
	log   *zap.Logger
	inbox chan<- dispatch.Event

	mu         sync.Mutex
	rows       []*row
	status     string
	identity   int
	answers    []string
	volume     int
	gameOver   bool
	fatal      string
	joinCount  int
	leaveCount int
}

// row is one bound player-list entry; Update just stores the fields for the
// next render.
type row struct {
	srv *Server
	rs  roster.RowState
}

func (r *row) Update(rs roster.RowState) {
	r.srv.mu.Lock()
	defer r.srv.mu.Unlock()
	r.rs = rs
}

func NewServer(log *zap.Logger) *Server {
	return &Server{log: log, identity: roster.NoPlayer, volume: 40}
}

// SetInbox wires the dispatcher in after construction; the binding pool has
// to exist before the dispatcher does.
func (s *Server) SetInbox(inbox chan<- dispatch.Event) {
	s.inbox = inbox
}

// Create appends a fresh trailing row, mirroring a DOM appendChild.
func (s *Server) Create() roster.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &row{srv: s}
	s.rows = append(s.rows, r)
	return r
}

// Trim drops every row past n, mirroring removeChild of the surplus tail.
func (s *Server) Trim(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < len(s.rows) {
		s.rows = s.rows[:n]
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealthz)
	r.Get("/state", s.handleState)
	r.Post("/guess", s.handleGuess)
	r.Post("/skip", s.handleSkip)
	r.Post("/rename", s.handleRename)
	r.Post("/volume", s.handleVolume)
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// view is the full presentation snapshot served to the page.
type view struct {
	Status     string            `json:"status"`
	Identity   int               `json:"identity"`
	Rows       []roster.RowState `json:"rows"`
	Snapshot   dispatch.Snapshot `json:"snapshot"`
	Answers    []string          `json:"answers,omitempty"`
	Volume     int               `json:"volume"`
	GameOver   bool              `json:"game_over"`
	Fatal      string            `json:"fatal,omitempty"`
	JoinCount  int               `json:"join_count"`
	LeaveCount int               `json:"leave_count"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	reply := make(chan dispatch.Snapshot, 1)
	s.inbox <- dispatch.GetState{Reply: reply}

	var snap dispatch.Snapshot
	select {
	case snap = <-reply:
	case <-time.After(snapshotTimeout):
		http.Error(w, "dispatcher unavailable", http.StatusServiceUnavailable)
		return
	}

	s.mu.Lock()
	v := view{
		Status:     s.status,
		Identity:   s.identity,
		Rows:       make([]roster.RowState, len(s.rows)),
		Snapshot:   snap,
		Answers:    s.answers,
		Volume:     s.volume,
		GameOver:   s.gameOver,
		Fatal:      s.fatal,
		JoinCount:  s.joinCount,
		LeaveCount: s.leaveCount,
	}
	for i, r := range s.rows {
		v.Rows[i] = r.rs
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	s.inbox <- dispatch.SubmitGuess{Answer: body.Answer}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	s.inbox <- dispatch.SubmitGuess{Answer: ""}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	s.inbox <- dispatch.SubmitRename{Name: body.Name}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value int `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Value < 0 || body.Value > 100 {
		http.Error(w, "bad volume", http.StatusBadRequest)
		return
	}
	s.inbox <- dispatch.SetVolume{Value: body.Value}
	w.WriteHeader(http.StatusAccepted)
}
