package usecase

import (
	"context"
	"time"

	"groq-chatbot/internal/chat"
	"groq-chatbot/internal/chat/repository"
	"groq-chatbot/pkg/llmprovider"
	"groq-chatbot/pkg/log"
)

// Provider is what the use case needs from the LLM layer.
// *llmprovider.Manager satisfies it.
type Provider interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
	StreamContent(ctx context.Context, req *llmprovider.Request) (llmprovider.Stream, error)
	ListModels(ctx context.Context) ([]llmprovider.ModelInfo, error)
}

// ProviderFactory returns a Provider authenticating with a caller-supplied key.
type ProviderFactory func(apiKey string) (Provider, error)

// FromManager adapts a Manager to Provider and ProviderFactory.
func FromManager(m *llmprovider.Manager) (Provider, ProviderFactory) {
	return m, func(apiKey string) (Provider, error) {
		keyed, err := m.WithAPIKey(apiKey)
		if err != nil {
			return nil, err
		}
		return keyed, nil
	}
}

// Config holds the conversation defaults.
type Config struct {
	SystemPrompt   string
	DefaultModel   string
	CompareModels  [2]string
	Temperature    float64
	MinTemperature float64
	MaxTemperature float64
	MaxTokens      int
	RequestTimeout time.Duration // per comparison slot
}

type implUseCase struct {
	l        log.Logger
	sessions repository.SessionRepository
	archive  repository.TranscriptRepository // nil disables archiving
	provider Provider
	keyed    ProviderFactory
	cfg      Config
}

// New creates a new chat UseCase implementation.
func New(l log.Logger, sessions repository.SessionRepository, archive repository.TranscriptRepository,
	provider Provider, keyed ProviderFactory, cfg Config) chat.UseCase {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = chat.DefaultSystemPrompt
	}
	if cfg.MaxTemperature == 0 {
		cfg.MinTemperature, cfg.MaxTemperature = minTemperature, maxTemperature
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}

	return &implUseCase{
		l:        l,
		sessions: sessions,
		archive:  archive,
		provider: provider,
		keyed:    keyed,
		cfg:      cfg,
	}
}
