package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"groq-chatbot/internal/chat"
	"groq-chatbot/internal/chat/repository"
)

func (uc *implUseCase) CreateSession(ctx context.Context) (chat.SessionSnapshot, error) {
	s := chat.NewSession(uuid.NewString())
	if err := uc.sessions.SaveSession(ctx, s); err != nil {
		uc.l.Errorf(ctx, "internal.chat.usecase.CreateSession.SaveSession: %v", err)
		return chat.SessionSnapshot{}, err
	}

	uc.l.Infof(ctx, "internal.chat.usecase.CreateSession: session %s created", s.ID())
	return s.Snapshot(), nil
}

func (uc *implUseCase) GetSession(ctx context.Context, id string) (chat.SessionSnapshot, error) {
	s, err := uc.getSession(ctx, id)
	if err != nil {
		return chat.SessionSnapshot{}, err
	}
	return s.Snapshot(), nil
}

// ResetSession clears turns and document. It is refused while an
// interaction runs.
func (uc *implUseCase) ResetSession(ctx context.Context, id string) (chat.SessionSnapshot, error) {
	s, err := uc.getSession(ctx, id)
	if err != nil {
		return chat.SessionSnapshot{}, err
	}
	if !s.TryBegin() {
		return chat.SessionSnapshot{}, chat.ErrSessionBusy
	}
	defer s.End()

	s.Reset()
	return s.Snapshot(), nil
}

func (uc *implUseCase) DeleteSession(ctx context.Context, id string) error {
	if err := uc.sessions.DeleteSession(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return chat.ErrSessionNotFound
		}
		uc.l.Errorf(ctx, "internal.chat.usecase.DeleteSession: %v", err)
		return err
	}
	return nil
}

func (uc *implUseCase) LoadDocument(ctx context.Context, input chat.LoadDocumentInput) (chat.LoadDocumentOutput, error) {
	s, err := uc.getSession(ctx, input.SessionID)
	if err != nil {
		return chat.LoadDocumentOutput{}, err
	}
	if !s.TryBegin() {
		return chat.LoadDocumentOutput{}, chat.ErrSessionBusy
	}
	defer s.End()

	doc, err := chat.LoadSourceDocument(s, input.Name, input.Raw)
	if err != nil {
		uc.l.Warnf(ctx, "internal.chat.usecase.LoadDocument: session=%s %v", s.ID(), err)
		return chat.LoadDocumentOutput{}, err
	}

	uc.l.Infof(ctx, "internal.chat.usecase.LoadDocument: session=%s document=%s bytes=%d", s.ID(), doc.Name, len(input.Raw))
	return chat.LoadDocumentOutput{Document: doc, Session: s.Snapshot()}, nil
}

func (uc *implUseCase) Messages(ctx context.Context, id string) (chat.MessagesOutput, error) {
	s, err := uc.getSession(ctx, id)
	if err != nil {
		return chat.MessagesOutput{}, err
	}
	return chat.MessagesOutput{Messages: chat.ToAPIMessages(s, uc.cfg.SystemPrompt)}, nil
}
