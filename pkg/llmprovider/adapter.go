package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"

	"groq-chatbot/pkg/groq"
)

// OpenAICompatAdapter adapts pkg/groq to the Provider interface. Any
// OpenAI-compatible endpoint works; the name and base URL tell them apart.
type OpenAICompatAdapter struct {
	name    string
	baseURL string
	model   string
	models  []string
	client  groq.IGroq // nil until an API key is known
}

// AdapterConfig describes one OpenAI-compatible endpoint.
type AdapterConfig struct {
	Name    string
	BaseURL string
	Model   string
	Models  []string // models this endpoint serves; empty means any
	APIKey  string
}

// NewOpenAICompatAdapter creates an adapter. An empty APIKey yields a
// provider that fails with ErrAuthentication until rekeyed.
func NewOpenAICompatAdapter(cfg AdapterConfig) (*OpenAICompatAdapter, error) {
	a := &OpenAICompatAdapter{
		name:    cfg.Name,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		models:  cfg.Models,
	}
	if cfg.APIKey == "" {
		return a, nil
	}

	client, err := groq.New(groq.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Name, err)
	}
	a.client = client
	return a, nil
}

// GenerateContent implements Provider interface
func (a *OpenAICompatAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if a.client == nil {
		return nil, a.missingKey()
	}

	resp, err := a.client.ChatCompletion(ctx, a.toChatRequest(req))
	if err != nil {
		return nil, a.classify(err)
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	model := resp.Model
	if model == "" {
		model = a.modelFor(req)
	}

	return &Response{
		Content:      content,
		ProviderName: a.name,
		ModelName:    model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// StreamContent implements Provider interface
func (a *OpenAICompatAdapter) StreamContent(ctx context.Context, req *Request) (Stream, error) {
	if a.client == nil {
		return nil, a.missingKey()
	}

	s, err := a.client.ChatCompletionStream(ctx, a.toChatRequest(req))
	if err != nil {
		return nil, a.classify(err)
	}
	return &chatStream{adapter: a, stream: s}, nil
}

// ListModels implements ModelLister
func (a *OpenAICompatAdapter) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if a.client == nil {
		return nil, a.missingKey()
	}

	models, err := a.client.ListModels(ctx)
	if err != nil {
		return nil, a.classify(err)
	}

	infos := make([]ModelInfo, 0, len(models))
	for _, m := range models {
		if len(a.models) > 0 && !slices.Contains(a.models, m.ID) {
			continue
		}
		infos = append(infos, ModelInfo{
			ID:            m.ID,
			Provider:      a.name,
			OwnedBy:       m.OwnedBy,
			ContextWindow: m.ContextWindow,
		})
	}
	return infos, nil
}

// Supports implements ModelSupporter
func (a *OpenAICompatAdapter) Supports(model string) bool {
	if model == "" || model == a.model || len(a.models) == 0 {
		return true
	}
	return slices.Contains(a.models, model)
}

// WithAPIKey implements Rekeyer
func (a *OpenAICompatAdapter) WithAPIKey(apiKey string) (Provider, error) {
	return NewOpenAICompatAdapter(AdapterConfig{
		Name:    a.name,
		BaseURL: a.baseURL,
		Model:   a.model,
		Models:  a.models,
		APIKey:  apiKey,
	})
}

// Name returns provider name
func (a *OpenAICompatAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *OpenAICompatAdapter) Model() string {
	return a.model
}

func (a *OpenAICompatAdapter) modelFor(req *Request) string {
	if req.Model != "" {
		return req.Model
	}
	return a.model
}

func (a *OpenAICompatAdapter) toChatRequest(req *Request) *groq.ChatRequest {
	messages := make([]groq.Message, 0, len(req.Messages)+1)
	if req.SystemInstruction != nil && req.SystemInstruction.Content != "" {
		messages = append(messages, groq.Message{Role: RoleSystem, Content: req.SystemInstruction.Content})
	}
	for _, m := range req.Messages {
		messages = append(messages, groq.Message{Role: m.Role, Content: m.Content})
	}

	return &groq.ChatRequest{
		Model:       a.modelFor(req),
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
}

func (a *OpenAICompatAdapter) missingKey() error {
	return &ProviderError{
		Provider: a.name,
		Kind:     ErrAuthentication,
		Err:      errors.New("no API key configured"),
	}
}

// classify maps client errors onto the provider error taxonomy.
func (a *OpenAICompatAdapter) classify(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}

	kind := ErrUnclassified
	var apiErr *groq.APIError
	var transportErr *groq.TransportError
	switch {
	case errors.As(err, &apiErr):
		kind = kindForStatus(apiErr)
	case errors.As(err, &transportErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		kind = ErrConnection
	}

	return &ProviderError{Provider: a.name, Kind: kind, Err: err}
}

func kindForStatus(e *groq.APIError) error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthentication
	case http.StatusTooManyRequests:
		return ErrProviderRateLimited
	}
	// Errors sent inside an open stream only carry a type.
	switch e.Type {
	case "rate_limit_exceeded":
		return ErrProviderRateLimited
	case "authentication_error":
		return ErrAuthentication
	}
	return ErrUnclassified
}

type chatStream struct {
	adapter *OpenAICompatAdapter
	stream  *groq.ChatStream
}

// Recv skips chunks that carry no text (role announcements, finish markers).
func (s *chatStream) Recv() (string, error) {
	for {
		chunk, err := s.stream.Recv()
		if err != nil {
			return "", s.adapter.classify(err)
		}
		if text := chunk.Text(); text != "" {
			return text, nil
		}
	}
}

func (s *chatStream) Close() error {
	return s.stream.Close()
}
