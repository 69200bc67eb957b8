package usecase

import (
	"context"

	"groq-chatbot/internal/chat"
)

func (uc *implUseCase) ValidateAPIKey(ctx context.Context, key string) error {
	return chat.ValidateAPIKeyFormat(key)
}

func (uc *implUseCase) ListModels(ctx context.Context, apiKey string) (chat.ListModelsOutput, error) {
	provider, err := uc.providerFor(apiKey)
	if err != nil {
		return chat.ListModelsOutput{}, err
	}

	models, err := provider.ListModels(ctx)
	if err != nil {
		uc.l.Warnf(ctx, "internal.chat.usecase.ListModels: %v", err)
		return chat.ListModelsOutput{}, err
	}
	return chat.ListModelsOutput{Models: models}, nil
}
