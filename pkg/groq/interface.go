package groq

import "context"

// IGroq is the client for an OpenAI-compatible chat completion API.
// Implementations are safe for concurrent use.
type IGroq interface {
	// ChatCompletion sends a non-streaming completion request.
	ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// ChatCompletionStream opens a streaming completion. The stream stays
	// bound to ctx: cancelling it aborts the read in progress.
	ChatCompletionStream(ctx context.Context, req *ChatRequest) (*ChatStream, error)

	// ListModels returns the models available to the API key.
	ListModels(ctx context.Context) ([]Model, error)

	// Model returns the default model.
	Model() string
}

// New creates a new client with the given configuration.
func New(cfg Config) (IGroq, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGroqImpl(cfg), nil
}
