package webui

import "go.uber.org/zap"

// Notifier implementation. Sounds become counters the page can diff against;
// everything else is stored for the next /state render.

func (s *Server) Status(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = text
}

func (s *Server) Identity(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = id
}

func (s *Server) JoinSound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joinCount++
}

func (s *Server) LeaveSound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaveCount++
}

func (s *Server) Reveal(answers []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = answers
}

func (s *Server) GameOver() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameOver = true
}

func (s *Server) Volume(value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = value
}

// Fatal surfaces the blocking disconnect error. The dispatcher terminates
// right after; this only makes sure the page can show why.
func (s *Server) Fatal(err error) {
	s.mu.Lock()
	s.fatal = "Remote server closed: " + err.Error()
	s.mu.Unlock()
	s.log.Error("session lost", zap.Error(err))
}
