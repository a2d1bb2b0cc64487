package service

import (
	"strings"
	"sync"
)

// Turn is one message in a user's conversation history.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// ConversationStore keeps a bounded per-user conversation history in
// memory. Each user's history holds at most maxTurns messages; the
// oldest is evicted first. Safe for concurrent use: a short store-level
// lock guards the map, a per-user lock guards each history.
type ConversationStore struct {
	mu       sync.Mutex
	users    map[string]*userHistory
	maxTurns int
}

type userHistory struct {
	mu    sync.Mutex
	turns []Turn
}

// NewConversationStore creates a new conversation store
func NewConversationStore(maxTurns int) *ConversationStore {
	if maxTurns <= 0 {
		maxTurns = 5
	}
	return &ConversationStore{
		users:    make(map[string]*userHistory),
		maxTurns: maxTurns,
	}
}

func (s *ConversationStore) history(userID string) *userHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.users[userID]
	if !ok {
		h = &userHistory{}
		s.users[userID] = h
	}
	return h
}

// Append records a turn for the user, evicting the oldest turn when the
// history is full.
func (s *ConversationStore) Append(userID, role, content string) {
	h := s.history(userID)
	h.mu.Lock()
	defer h.mu.Unlock()

	h.turns = append(h.turns, Turn{Role: role, Content: content})
	if len(h.turns) > s.maxTurns {
		h.turns = h.turns[len(h.turns)-s.maxTurns:]
	}
}

// History renders the user's recent turns as a "User:/Assistant:"
// transcript for prompt context. Empty string when there is none.
func (s *ConversationStore) History(userID string) string {
	h := s.history(userID)
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.turns) == 0 {
		return ""
	}

	var b strings.Builder
	for _, t := range h.turns {
		label := "User"
		if t.Role == "assistant" {
			label = "Assistant"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Turns returns a copy of the user's stored turns.
func (s *ConversationStore) Turns(userID string) []Turn {
	h := s.history(userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}
