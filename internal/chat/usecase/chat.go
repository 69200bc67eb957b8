package usecase

import (
	"context"
	"strings"

	"groq-chatbot/internal/chat"
	"groq-chatbot/internal/chat/repository"
	"groq-chatbot/pkg/llmprovider"
)

// Chat answers one question with a single model. The exchange is recorded
// only when the model answered.
func (uc *implUseCase) Chat(ctx context.Context, input chat.ChatInput) (chat.ChatOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return chat.ChatOutput{}, chat.ErrEmptyQuestion
	}

	temp, err := uc.temperature(input.Temperature)
	if err != nil {
		return chat.ChatOutput{}, err
	}

	provider, err := uc.providerFor(input.APIKey)
	if err != nil {
		return chat.ChatOutput{}, err
	}

	s, err := uc.getSession(ctx, input.SessionID)
	if err != nil {
		return chat.ChatOutput{}, err
	}
	if !s.TryBegin() {
		return chat.ChatOutput{}, chat.ErrSessionBusy
	}
	defer s.End()

	model := coalesce(input.Model, uc.cfg.DefaultModel)
	mark := s.AppendUser(uc.userTurn(s, question))
	msgs := chat.ToAPIMessages(s, uc.cfg.SystemPrompt)

	resp, err := provider.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &msgs[0],
		Messages:          msgs[1:],
		Model:             model,
		Temperature:       temp,
		MaxTokens:         uc.maxTokens(input.MaxTokens),
	})
	if err != nil {
		s.Truncate(mark)
		uc.l.Warnf(ctx, "internal.chat.usecase.Chat.GenerateContent: session=%s model=%s %v", s.ID(), model, err)
		uc.archiveTranscript(ctx, repository.SaveTranscriptOptions{
			SessionID:    s.ID(),
			Kind:         repository.KindChat,
			Status:       repository.StatusDiscarded,
			Question:     question,
			DocumentName: documentName(s),
			Temperature:  temp,
			Model1:       model,
			Error1:       err.Error(),
		})
		return chat.ChatOutput{}, err
	}

	if err := s.AppendAssistant(chat.AssistantTurn{Response1: resp.Content, Model1: model, Single: true}); err != nil {
		s.Truncate(mark)
		return chat.ChatOutput{}, err
	}

	uc.archiveTranscript(ctx, repository.SaveTranscriptOptions{
		SessionID:    s.ID(),
		Kind:         repository.KindChat,
		Status:       repository.StatusAppended,
		Question:     question,
		DocumentName: documentName(s),
		Temperature:  temp,
		Model1:       model,
		Response1:    resp.Content,
	})

	return chat.ChatOutput{
		Response: resp.Content,
		Model:    model,
		Provider: resp.ProviderName,
		Usage:    resp.Usage,
		Session:  s.Snapshot(),
	}, nil
}
