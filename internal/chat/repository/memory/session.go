package memory

import (
	"context"

	"groq-chatbot/internal/chat"
	"groq-chatbot/internal/chat/repository"
)

func (r *implRepository) SaveSession(ctx context.Context, s *chat.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions.Add(s.ID(), s)
	return nil
}

// GetSession returns the session and extends its lifetime.
func (r *implRepository) GetSession(ctx context.Context, id string) (*chat.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	r.sessions.Add(id, s)
	return s, nil
}

func (r *implRepository) DeleteSession(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.sessions.Remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) CountSessions(ctx context.Context) int {
	return r.sessions.Len()
}
