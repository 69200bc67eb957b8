package usecase

import (
	"context"
	"strings"

	"groq-chatbot/internal/chat"
	"groq-chatbot/internal/chat/repository"
)

// Compare answers one question with two models. Per-slot failures do not
// fail the call: they come back in the result with a user-facing message,
// and the session is left as it was before the question.
func (uc *implUseCase) Compare(ctx context.Context, input chat.CompareInput) (chat.CompareOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return chat.CompareOutput{}, chat.ErrEmptyQuestion
	}

	temp, err := uc.temperature(input.Temperature)
	if err != nil {
		return chat.CompareOutput{}, err
	}

	provider, err := uc.providerFor(input.APIKey)
	if err != nil {
		return chat.CompareOutput{}, err
	}

	s, err := uc.getSession(ctx, input.SessionID)
	if err != nil {
		return chat.CompareOutput{}, err
	}
	if !s.TryBegin() {
		return chat.CompareOutput{}, chat.ErrSessionBusy
	}
	defer s.End()

	model1 := coalesce(input.Model1, uc.cfg.CompareModels[0], uc.cfg.DefaultModel)
	model2 := coalesce(input.Model2, uc.cfg.CompareModels[1], uc.cfg.DefaultModel)

	mark := s.AppendUser(uc.userTurn(s, question))

	result, err := chat.RunDualCompletion(ctx, provider, s, chat.DualRequest{
		Model1:       model1,
		Model2:       model2,
		Temperature:  temp,
		MaxTokens:    uc.maxTokens(input.MaxTokens),
		SystemPrompt: uc.cfg.SystemPrompt,
		Timeout:      uc.cfg.RequestTimeout,
		OnFragment:   input.OnFragment,
	})
	if err != nil {
		s.Truncate(mark)
		uc.l.Errorf(ctx, "internal.chat.usecase.Compare.RunDualCompletion: session=%s %v", s.ID(), err)
		return chat.CompareOutput{}, err
	}

	status := repository.StatusAppended
	if result.State == chat.StateDiscarded {
		s.Truncate(mark)
		status = repository.StatusDiscarded
		uc.logDiscarded(ctx, s.ID(), result)
	} else {
		uc.l.Infof(ctx, "internal.chat.usecase.Compare: session=%s models=%s,%s appended", s.ID(), model1, model2)
	}

	uc.archiveTranscript(ctx, repository.SaveTranscriptOptions{
		SessionID:    s.ID(),
		Kind:         repository.KindCompare,
		Status:       status,
		Question:     question,
		DocumentName: documentName(s),
		Temperature:  temp,
		Model1:       result.Slots[0].Model,
		Response1:    result.Slots[0].Text,
		Error1:       errString(result.Slots[0].Err),
		Model2:       result.Slots[1].Model,
		Response2:    result.Slots[1].Text,
		Error2:       errString(result.Slots[1].Err),
	})

	return chat.CompareOutput{Result: result, Session: s.Snapshot()}, nil
}

// logDiscarded records why a comparison was dropped, including the answer
// that did arrive when only one model failed.
func (uc *implUseCase) logDiscarded(ctx context.Context, sessionID string, result chat.DualResult) {
	for _, slot := range result.Slots {
		if slot.OK() {
			uc.l.Warnf(ctx, "internal.chat.usecase.Compare: session=%s slot=%d model=%s succeeded but turn discarded (%d chars)",
				sessionID, slot.Slot, slot.Model, len(slot.Text))
			continue
		}
		uc.l.Warnf(ctx, "internal.chat.usecase.Compare: session=%s slot=%d model=%s failed: %v",
			sessionID, slot.Slot, slot.Model, slot.Err)
	}
}
