package http

import (
	"groq-chatbot/internal/chat"
	"groq-chatbot/pkg/log"
)

const (
	// apiKeyHeader carries a caller-supplied Groq key. When absent the
	// server-side key is used.
	apiKeyHeader = "X-API-Key"

	defaultMaxDocumentBytes int64 = 2 << 20
)

type handler struct {
	l                log.Logger
	uc               chat.UseCase
	maxDocumentBytes int64
}

// New creates a new HTTP handler for the chat domain.
func New(l log.Logger, uc chat.UseCase, maxDocumentBytes int64) *handler {
	if maxDocumentBytes <= 0 {
		maxDocumentBytes = defaultMaxDocumentBytes
	}
	return &handler{
		l:                l,
		uc:               uc,
		maxDocumentBytes: maxDocumentBytes,
	}
}
