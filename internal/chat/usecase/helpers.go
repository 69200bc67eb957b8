package usecase

import (
	"context"
	"errors"
	"strings"

	"groq-chatbot/internal/chat"
	"groq-chatbot/internal/chat/repository"
)

func (uc *implUseCase) getSession(ctx context.Context, id string) (*chat.Session, error) {
	s, err := uc.sessions.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, chat.ErrSessionNotFound
		}
		uc.l.Errorf(ctx, "internal.chat.usecase.getSession: %v", err)
		return nil, err
	}
	return s, nil
}

// providerFor returns the configured provider, or one bound to apiKey when
// the caller supplied its own key.
func (uc *implUseCase) providerFor(apiKey string) (Provider, error) {
	if apiKey == "" || uc.keyed == nil {
		return uc.provider, nil
	}
	if err := chat.ValidateAPIKeyFormat(apiKey); err != nil {
		return nil, err
	}
	return uc.keyed(apiKey)
}

func (uc *implUseCase) temperature(t *float64) (float64, error) {
	if t == nil {
		return uc.cfg.Temperature, nil
	}
	if *t < uc.cfg.MinTemperature || *t > uc.cfg.MaxTemperature {
		return 0, chat.ErrInvalidTemp
	}
	return *t, nil
}

func (uc *implUseCase) maxTokens(n int) int {
	if n > 0 {
		return n
	}
	return uc.cfg.MaxTokens
}

// userTurn wraps the question in the active document, if any.
func (uc *implUseCase) userTurn(s *chat.Session, question string) chat.UserTurn {
	doc, ok := s.Document()
	if !ok {
		return chat.UserTurn{Content: question}
	}
	return chat.UserTurn{
		Content: chat.BuildContextualPrompt(doc.Text, question),
		Display: question,
	}
}

func documentName(s *chat.Session) string {
	doc, _ := s.Document()
	return doc.Name
}

// coalesce returns the first non-empty string.
func coalesce(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
