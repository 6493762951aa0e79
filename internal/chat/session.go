package chat

import (
	"fmt"
	"sync"
)

// Session owns one user's active conversation: the ordered transcript, the
// emergency flag and the current follow-up suggestions. It lives in memory
// only; a restart starts a fresh conversation while the persisted trackers
// survive.
type Session struct {
	mu          sync.Mutex
	messages    []Message
	emergency   bool
	suggestions []string
}

// newSession seeds the transcript with the assistant's greeting.
func newSession(userName string) *Session {
	greeting := fmt.Sprintf("Namaste %s! I am Pranaya. I'm listening.", userName)
	return &Session{messages: []Message{{Role: RoleBot, Content: greeting}}}
}

// Append adds a message at the end of the transcript.
func (s *Session) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// History renders the transcript as the plain strings the assistant expects.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]string, 0, len(s.messages))
	for _, m := range s.messages {
		speaker := "Bot"
		if m.Role == RoleUser {
			speaker = "User"
		}
		history = append(history, speaker+": "+m.Content)
	}
	return history
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// SetSuggestions replaces the follow-up suggestions.
func (s *Session) SetSuggestions(suggestions []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = suggestions
}

// Suggestions returns the current follow-up suggestions.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// SetEmergency raises or clears the session-wide emergency flag. The flag is
// consumed by the client's emergency overlay.
func (s *Session) SetEmergency(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emergency = active
}

// Emergency reports whether the emergency flag is raised.
func (s *Session) Emergency() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emergency
}

// SessionManager hands out the active session per user, creating one seeded
// with a greeting on first access.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionManager creates an empty manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// Get returns the user's session, creating it when absent.
func (m *SessionManager) Get(userID, userName string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		sess = newSession(userName)
		m.sessions[userID] = sess
	}
	return sess
}

// Clear drops the user's session so the next access starts fresh.
func (m *SessionManager) Clear(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
