package repository

import (
	"context"

	"groq-chatbot/internal/chat"
)

// SessionRepository holds the live sessions.
type SessionRepository interface {
	SaveSession(ctx context.Context, s *chat.Session) error
	GetSession(ctx context.Context, id string) (*chat.Session, error)
	DeleteSession(ctx context.Context, id string) error
	CountSessions(ctx context.Context) int
}

// TranscriptRepository archives every finished interaction.
type TranscriptRepository interface {
	SaveTranscript(ctx context.Context, opt SaveTranscriptOptions) (Transcript, error)
	ListTranscripts(ctx context.Context, opt ListTranscriptsOptions) ([]Transcript, error)
	Close() error
}
