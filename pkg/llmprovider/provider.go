package llmprovider

import "context"

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a complete response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// StreamContent opens a streaming generation. The stream is bound to ctx.
	StreamContent(ctx context.Context, req *Request) (Stream, error)

	// Name returns the provider name (e.g., "groq", "deepseek")
	Name() string

	// Model returns the default model
	Model() string
}

// Streamer opens streaming generations. Both Provider and Manager satisfy it.
type Streamer interface {
	StreamContent(ctx context.Context, req *Request) (Stream, error)
}

// Stream is a lazy, finite, non-restartable sequence of text fragments.
// Recv returns io.EOF after the last fragment. The consumer must call Close.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// ModelSupporter is implemented by providers that only serve a known set of models.
type ModelSupporter interface {
	Supports(model string) bool
}

// ModelLister is implemented by providers that can enumerate their models.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// Rekeyer is implemented by providers that can be rebuilt with another API key.
type Rekeyer interface {
	WithAPIKey(apiKey string) (Provider, error)
}

// Role values used in Message.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request represents a normalized LLM generation request
type Request struct {
	SystemInstruction *Message
	Messages          []Message
	Model             string // empty selects the provider default
	Temperature       float64
	MaxTokens         int
}

// Message represents a conversation message
type Message struct {
	Role    string
	Content string
}

// Response represents a normalized LLM generation response
type Response struct {
	Content      string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// ModelInfo describes a model a provider can serve.
type ModelInfo struct {
	ID            string `json:"id"`
	Provider      string `json:"provider"`
	OwnedBy       string `json:"owned_by,omitempty"`
	ContextWindow int    `json:"context_window,omitempty"`
}
