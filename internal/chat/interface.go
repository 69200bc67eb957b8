package chat

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Sessions
	CreateSession(ctx context.Context) (SessionSnapshot, error)
	GetSession(ctx context.Context, id string) (SessionSnapshot, error)
	ResetSession(ctx context.Context, id string) (SessionSnapshot, error)
	DeleteSession(ctx context.Context, id string) error

	// Conversation
	LoadDocument(ctx context.Context, input LoadDocumentInput) (LoadDocumentOutput, error)
	Messages(ctx context.Context, id string) (MessagesOutput, error)
	Chat(ctx context.Context, input ChatInput) (ChatOutput, error)
	Compare(ctx context.Context, input CompareInput) (CompareOutput, error)

	// Provider
	ValidateAPIKey(ctx context.Context, key string) error
	ListModels(ctx context.Context, apiKey string) (ListModelsOutput, error)
}
