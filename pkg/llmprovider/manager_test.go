package llmprovider

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name      string
	model     string
	models    []string
	err       error
	response  *Response
	fragments []string
	mu        sync.Mutex
	callCount int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockProvider) StreamContent(ctx context.Context, req *Request) (Stream, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &sliceStream{fragments: m.fragments}, nil
}

func (m *mockProvider) Supports(model string) bool {
	if model == "" || len(m.models) == 0 {
		return true
	}
	for _, id := range m.models {
		if id == model {
			return true
		}
	}
	return false
}

func (m *mockProvider) WithAPIKey(apiKey string) (Provider, error) {
	return &mockProvider{name: m.name + ":" + apiKey[:4], model: m.model, response: m.response}, nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Model() string {
	return m.model
}

type sliceStream struct {
	fragments []string
	pos       int
}

func (s *sliceStream) Recv() (string, error) {
	if s.pos >= len(s.fragments) {
		return "", io.EOF
	}
	s.pos++
	return s.fragments[s.pos-1], nil
}

func (s *sliceStream) Close() error { return nil }

// mockLogger is a test implementation of the Logger interface
type mockLogger struct {
	mu           sync.Mutex
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infoMessages = append(m.infoMessages, template)
}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnMessages = append(m.warnMessages, template)
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

var (
	errConn = &ProviderError{Provider: "mock", Kind: ErrConnection, Err: errors.New("connection refused")}
	errAuth = &ProviderError{Provider: "mock", Kind: ErrAuthentication, Err: errors.New("invalid api key")}
)

func helloRequest() *Request {
	return &Request{Messages: []Message{{Role: RoleUser, Content: "Hello"}}}
}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	primary := &mockProvider{
		name:  "primary",
		model: "primary-model",
		response: &Response{
			Content:      "Hello from primary provider",
			ProviderName: "primary",
			ModelName:    "primary-model",
			Usage:        &Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
		},
	}

	logger := &mockLogger{}
	manager := NewManager([]Provider{primary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      100 * time.Millisecond,
	}, logger)

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if resp.ProviderName != "primary" {
		t.Errorf("Expected provider name 'primary', got: %s", resp.ProviderName)
	}
	if primary.callCount != 1 {
		t.Errorf("Expected primary provider to be called once, got: %d", primary.callCount)
	}
	if len(logger.infoMessages) != 1 {
		t.Errorf("Expected 1 info log message, got: %d", len(logger.infoMessages))
	}
	if len(logger.warnMessages) != 0 {
		t.Errorf("Expected 0 warn log messages, got: %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_FallbackToSecondaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", err: errConn}
	secondary := &mockProvider{
		name:     "secondary",
		model:    "secondary-model",
		response: &Response{Content: "Hello from secondary", ProviderName: "secondary", Usage: &Usage{}},
	}

	logger := &mockLogger{}
	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      10 * time.Millisecond,
	}, logger)

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if resp.ProviderName != "secondary" {
		t.Errorf("Expected provider name 'secondary', got: %s", resp.ProviderName)
	}
	// Connection failures are retried RetryAttempts times
	if primary.callCount != 2 {
		t.Errorf("Expected primary provider to be called 2 times, got: %d", primary.callCount)
	}
	if secondary.callCount != 1 {
		t.Errorf("Expected secondary provider to be called once, got: %d", secondary.callCount)
	}
	if len(logger.infoMessages) != 1 {
		t.Errorf("Expected 1 info log message, got: %d", len(logger.infoMessages))
	}
	if len(logger.warnMessages) != 1 {
		t.Errorf("Expected 1 warn log message, got: %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_AuthErrorIsNotRetried(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", err: errAuth}

	manager := NewManager([]Provider{primary}, &Config{
		RetryAttempts: 3,
		RetryDelay:    10 * time.Millisecond,
	}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), helloRequest())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Expected ErrAllProvidersFailed, got: %v", err)
	}
	if KindOf(err) != KindAuthentication {
		t.Errorf("Expected authentication kind to survive wrapping, got: %s", KindOf(err))
	}
	if primary.callCount != 1 {
		t.Errorf("Expected a single attempt, got: %d", primary.callCount)
	}
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", err: errConn}
	secondary := &mockProvider{name: "secondary", model: "secondary-model", err: errConn}

	logger := &mockLogger{}
	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      10 * time.Millisecond,
	}, logger)

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if err == nil {
		t.Fatal("Expected error when all providers fail, got nil")
	}
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Expected ErrAllProvidersFailed, got: %v", err)
	}
	if resp != nil {
		t.Errorf("Expected nil response, got: %v", resp)
	}
	if primary.callCount != 2 || secondary.callCount != 2 {
		t.Errorf("Expected 2 calls each, got: %d and %d", primary.callCount, secondary.callCount)
	}
	if len(logger.warnMessages) != 2 {
		t.Errorf("Expected 2 warn log messages, got: %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_NoFallbackWhenDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", err: errConn}
	secondary := &mockProvider{
		name:     "secondary",
		model:    "secondary-model",
		response: &Response{ProviderName: "secondary", Usage: &Usage{}},
	}

	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: false,
		RetryAttempts:   2,
		RetryDelay:      10 * time.Millisecond,
	}, &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if err == nil {
		t.Fatal("Expected error when primary fails and fallback is disabled, got nil")
	}
	if resp != nil {
		t.Errorf("Expected nil response, got: %v", resp)
	}
	if primary.callCount != 2 {
		t.Errorf("Expected primary provider to be called 2 times, got: %d", primary.callCount)
	}
	if secondary.callCount != 0 {
		t.Errorf("Expected secondary provider to NOT be called, got: %d calls", secondary.callCount)
	}
}

func TestGenerateContent_NoProvidersConfigured(t *testing.T) {
	manager := NewManager([]Provider{}, &Config{RetryAttempts: 3}, &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("Expected ErrNoProvidersConfigured, got: %v", err)
	}
	if resp != nil {
		t.Errorf("Expected nil response, got: %v", resp)
	}
}

func TestGenerateContent_SkipsProvidersWithoutModel(t *testing.T) {
	groq := &mockProvider{name: "groq", model: "llama", models: []string{"llama"}}
	deepseek := &mockProvider{
		name:     "deepseek",
		model:    "deepseek-chat",
		models:   []string{"deepseek-chat"},
		response: &Response{ProviderName: "deepseek", Usage: &Usage{}},
	}

	manager := NewManager([]Provider{groq, deepseek}, &Config{RetryAttempts: 1}, &mockLogger{})

	req := helloRequest()
	req.Model = "deepseek-chat"
	resp, err := manager.GenerateContent(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ProviderName != "deepseek" || groq.callCount != 0 {
		t.Errorf("Expected routing to deepseek only, got %s (groq calls %d)", resp.ProviderName, groq.callCount)
	}

	req.Model = "unknown-model"
	if _, err := manager.GenerateContent(context.Background(), req); !errors.Is(err, ErrModelNotSupported) {
		t.Errorf("Expected ErrModelNotSupported, got: %v", err)
	}
}

func TestStreamContent_RetriesOpenThenStreams(t *testing.T) {
	flaky := &flakyProvider{mockProvider: mockProvider{name: "groq", model: "llama", fragments: []string{"Hel", "lo"}}, failures: 1}

	manager := NewManager([]Provider{flaky}, &Config{
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	}, &mockLogger{})

	stream, err := manager.StreamContent(context.Background(), helloRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer stream.Close()

	var got string
	for {
		frag, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("recv: %v", err)
		}
		got += frag
	}
	if got != "Hello" {
		t.Errorf("Expected Hello, got %q", got)
	}
	if flaky.callCount != 2 {
		t.Errorf("Expected 2 open attempts, got %d", flaky.callCount)
	}
}

func TestStreamContent_RateLimitFallsBack(t *testing.T) {
	limited := &mockProvider{name: "primary", model: "m", err: &ProviderError{Provider: "primary", Kind: ErrProviderRateLimited, Err: errors.New("429")}}
	backup := &mockProvider{name: "backup", model: "m", fragments: []string{"ok"}}

	manager := NewManager([]Provider{limited, backup}, &Config{FallbackEnabled: true, RetryAttempts: 3}, &mockLogger{})

	stream, err := manager.StreamContent(context.Background(), helloRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	stream.Close()
	if limited.callCount != 1 || backup.callCount != 1 {
		t.Errorf("Expected one call each, got %d and %d", limited.callCount, backup.callCount)
	}
}

func TestWithAPIKey_CachesPerKey(t *testing.T) {
	base := &mockProvider{name: "groq", model: "llama"}
	manager := NewManager([]Provider{base}, &Config{}, &mockLogger{})

	same, err := manager.WithAPIKey("")
	if err != nil || same != manager {
		t.Fatalf("Expected empty key to return the same manager, got %v (%v)", same, err)
	}

	first, err := manager.WithAPIKey("gsk_first")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	again, _ := manager.WithAPIKey("gsk_first")
	if first != again {
		t.Error("Expected cached manager for the same key")
	}
	other, _ := manager.WithAPIKey("gsk_other")
	if other == first {
		t.Error("Expected distinct manager for a different key")
	}
	if got := first.Providers(); len(got) != 1 || got[0] != "groq:gsk_" {
		t.Errorf("Expected rekeyed provider, got %v", got)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{errAuth, KindAuthentication},
		{&ProviderError{Kind: ErrProviderRateLimited, Err: errors.New("x")}, KindRateLimit},
		{errConn, KindConnection},
		{context.DeadlineExceeded, KindConnection},
		{errors.New("boom"), KindUnclassified},
		{nil, KindUnclassified},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}

	if IsRetryable(context.Canceled) {
		t.Error("cancellation must not be retried")
	}
}

type flakyProvider struct {
	mockProvider
	failures int
}

func (f *flakyProvider) StreamContent(ctx context.Context, req *Request) (Stream, error) {
	f.mu.Lock()
	f.callCount++
	fail := f.callCount <= f.failures
	f.mu.Unlock()
	if fail {
		return nil, errConn
	}
	return &sliceStream{fragments: f.fragments}, nil
}
