package usecase

import (
	"context"

	"groq-chatbot/internal/chat/repository"
)

// archiveTranscript stores the interaction. Archive failures never fail the
// interaction itself.
func (uc *implUseCase) archiveTranscript(ctx context.Context, opt repository.SaveTranscriptOptions) {
	if uc.archive == nil {
		return
	}
	if _, err := uc.archive.SaveTranscript(ctx, opt); err != nil {
		uc.l.Errorf(ctx, "internal.chat.usecase.archiveTranscript: session=%s %v", opt.SessionID, err)
	}
}
