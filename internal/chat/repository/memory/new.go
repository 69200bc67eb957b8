package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"groq-chatbot/internal/chat"
	"groq-chatbot/internal/chat/repository"
	"groq-chatbot/pkg/log"
)

const (
	defaultCapacity = 1000
	defaultTTL      = 24 * time.Hour
)

type implRepository struct {
	l log.Logger

	// mu makes GetSession's lookup and TTL refresh atomic with respect to
	// DeleteSession.
	mu       sync.Mutex
	sessions *expirable.LRU[string, *chat.Session]
}

// New creates a session registry that keeps at most capacity sessions and
// forgets a session ttl after its last access.
func New(l log.Logger, capacity int, ttl time.Duration) repository.SessionRepository {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	r := &implRepository{l: l}
	r.sessions = expirable.NewLRU[string, *chat.Session](capacity, func(id string, _ *chat.Session) {
		r.l.Debugf(context.Background(), "internal.chat.repository.memory: session %s evicted", id)
	}, ttl)
	return r
}
