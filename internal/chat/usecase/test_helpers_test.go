package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"groq-chatbot/internal/chat"
	"groq-chatbot/internal/chat/repository"
	"groq-chatbot/internal/chat/repository/memory"
	"groq-chatbot/pkg/llmprovider"
	"groq-chatbot/pkg/log"
)

// mockProvider answers per model: streamed fragments or an error.
type mockProvider struct {
	mu        sync.Mutex
	fragments map[string][]string
	errs      map[string]error
	requests  []llmprovider.Request
	models    []llmprovider.ModelInfo
	name      string
}

func (m *mockProvider) record(req *llmprovider.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, *req)
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.record(req)
	if err := m.errs[req.Model]; err != nil {
		return nil, err
	}
	var content string
	for _, f := range m.fragments[req.Model] {
		content += f
	}
	return &llmprovider.Response{Content: content, ProviderName: "mock", ModelName: req.Model, Usage: &llmprovider.Usage{TotalTokens: 3}}, nil
}

func (m *mockProvider) StreamContent(ctx context.Context, req *llmprovider.Request) (llmprovider.Stream, error) {
	m.record(req)
	if err := m.errs[req.Model]; err != nil {
		return nil, err
	}
	return &mockStream{fragments: m.fragments[req.Model]}, nil
}

func (m *mockProvider) ListModels(ctx context.Context) ([]llmprovider.ModelInfo, error) {
	return m.models, nil
}

type mockStream struct {
	fragments []string
	pos       int
}

func (s *mockStream) Recv() (string, error) {
	if s.pos >= len(s.fragments) {
		return "", io.EOF
	}
	s.pos++
	return s.fragments[s.pos-1], nil
}

func (s *mockStream) Close() error { return nil }

// mockArchive records saved transcripts.
type mockArchive struct {
	mu    sync.Mutex
	saved []repository.SaveTranscriptOptions
	err   error
}

func (a *mockArchive) SaveTranscript(ctx context.Context, opt repository.SaveTranscriptOptions) (repository.Transcript, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return repository.Transcript{}, a.err
	}
	a.saved = append(a.saved, opt)
	return repository.Transcript{ID: "t", SessionID: opt.SessionID}, nil
}

func (a *mockArchive) ListTranscripts(ctx context.Context, opt repository.ListTranscriptsOptions) ([]repository.Transcript, error) {
	return nil, nil
}

func (a *mockArchive) Close() error { return nil }

func rateLimitErr() error {
	return &llmprovider.ProviderError{Provider: "mock", Kind: llmprovider.ErrProviderRateLimited, Err: errors.New("429")}
}

func authErr() error {
	return &llmprovider.ProviderError{Provider: "mock", Kind: llmprovider.ErrAuthentication, Err: errors.New("401")}
}

type fixture struct {
	uc       chat.UseCase
	provider *mockProvider
	archive  *mockArchive
	keyed    map[string]*mockProvider
}

func newFixture() *fixture {
	f := &fixture{
		provider: &mockProvider{
			name: "default",
			fragments: map[string][]string{
				"small": {"Hel", "lo"},
				"big":   {"Wor", "ld"},
			},
			errs: map[string]error{},
		},
		archive: &mockArchive{},
		keyed:   map[string]*mockProvider{},
	}

	keyed := func(apiKey string) (Provider, error) {
		p := &mockProvider{name: apiKey, fragments: map[string][]string{"small": {"k"}, "big": {"k"}}}
		f.keyed[apiKey] = p
		return p, nil
	}

	f.uc = New(log.NewNop(), memory.New(log.NewNop(), 10, time.Hour), f.archive, f.provider, keyed, Config{
		DefaultModel:  "small",
		CompareModels: [2]string{"small", "big"},
		MaxTokens:     256,
	})
	return f
}
