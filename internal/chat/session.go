package chat

import (
	"sync"
	"time"
)

// Session is one conversation: its ordered turns, the active document and
// the widget reset counter. Only one interaction may run at a time; use
// TryBegin/End around it. Readers may call the accessors concurrently.
type Session struct {
	id        string
	createdAt time.Time

	busy sync.Mutex

	mu           sync.RWMutex
	turns        []Turn
	document     *Document
	resetCounter uint64
	updatedAt    time.Time
}

// NewSession creates an empty session.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		id:        id,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Session) ID() string { return s.id }

// TryBegin claims the session for one interaction. It returns false when
// another interaction is in progress.
func (s *Session) TryBegin() bool {
	return s.busy.TryLock()
}

// End releases the claim taken by TryBegin.
func (s *Session) End() {
	s.busy.Unlock()
}

// Turns returns a copy of the history.
func (s *Session) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Document returns the active document, if any.
func (s *Session) Document() (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.document == nil {
		return Document{}, false
	}
	return *s.document, true
}

func (s *Session) ResetCounter() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resetCounter
}

// Snapshot returns a consistent copy of the whole state.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := SessionSnapshot{
		ID:           s.id,
		Turns:        make([]Turn, len(s.turns)),
		ResetCounter: s.resetCounter,
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.updatedAt,
	}
	copy(snap.Turns, s.turns)
	if s.document != nil {
		doc := *s.document
		snap.Document = &doc
	}
	return snap
}

// AppendUser appends a user turn and returns the history length before it,
// which is the mark to pass to Truncate when the interaction is discarded.
func (s *Session) AppendUser(t UserTurn) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	mark := len(s.turns)
	s.turns = append(s.turns, t)
	s.updatedAt = time.Now()
	return mark
}

// AppendAssistant appends an assistant turn. The last turn must be a user turn.
func (s *Session) AppendAssistant(t AssistantTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.turns) == 0 || s.turns[len(s.turns)-1].Role() != RoleUser {
		return ErrTurnOrder
	}
	s.turns = append(s.turns, t)
	s.updatedAt = time.Now()
	return nil
}

// Truncate drops every turn from index n on.
func (s *Session) Truncate(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 || n >= len(s.turns) {
		return
	}
	clear(s.turns[n:])
	s.turns = s.turns[:n]
	s.updatedAt = time.Now()
}

// SetDocument replaces the active document. Prior turns referred to the old
// document, so they are cleared and the reset counter advances.
func (s *Session) SetDocument(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = &doc
	s.turns = nil
	s.resetCounter++
	s.updatedAt = time.Now()
}

// Reset clears turns and document and advances the reset counter.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = nil
	s.turns = nil
	s.resetCounter++
	s.updatedAt = time.Now()
}
