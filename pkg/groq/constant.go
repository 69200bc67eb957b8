package groq

import "time"

const (
	// DefaultModel is the model the original chatbot preselects.
	DefaultModel = "llama-3.1-8b-instant"

	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultTimeout bounds non-streaming calls. Streaming calls are bounded
	// by the caller's context only.
	DefaultTimeout = 60 * time.Second

	maxLineSize = 1 << 20
)
