// Package session tracks per-visitor state keyed by a uuid cookie token.
//
// A Session is transient: it lives in memory, starts logged out, and is
// distinct from anything persisted. There is no logout transition in the
// application; the manager's Evict exists only so abandoned sessions do
// not accumulate for the life of the process.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/focustrack/internal/task"
)

// Timer is the active-countdown sub-state: set by Start, overwritten by
// a later Start, and never cleared. The server records it but does not
// enforce or observe expiry; the countdown itself renders client-side.
type Timer struct {
	TaskID   string
	TaskName string
	Duration int
	End      time.Time
}

// Session is the explicit per-visitor state passed to every handler.
type Session struct {
	Token     string
	LoggedIn  bool
	Username  string
	EditID    string // pending task id being edited, "" when not editing
	Timer     *Timer
	CreatedAt time.Time
	LastSeen  time.Time
}

// Login transitions the session to logged in as username. There is no
// inverse transition.
func (s *Session) Login(username string) {
	s.LoggedIn = true
	s.Username = username
}

// StartEdit enters edit mode for the given task id.
func (s *Session) StartEdit(id string) {
	s.EditID = id
}

// EndEdit leaves edit mode (both Save and Cancel land here).
func (s *Session) EndEdit() {
	s.EditID = ""
}

// StartTimer records a running countdown for t ending at end.
func (s *Session) StartTimer(t task.Task, end time.Time) {
	s.Timer = &Timer{
		TaskID:   t.ID,
		TaskName: t.Name,
		Duration: t.Duration,
		End:      end,
	}
}

// Manager owns the in-memory session table.
//
// Thread-safety: all methods are safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create issues a fresh logged-out session with a uuid token.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s := &Session{
		Token:     uuid.NewString(),
		CreatedAt: now,
		LastSeen:  now,
	}
	m.sessions[s.Token] = s
	return s
}

// Get returns the session for token, marking it seen.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if ok {
		s.LastSeen = m.now()
	}
	return s, ok
}

// Evict drops sessions idle longer than ttl and returns how many were
// removed. Lifecycle housekeeping only; this is not a logout.
func (m *Manager) Evict(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-ttl)
	evicted := 0
	for token, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			delete(m.sessions, token)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
