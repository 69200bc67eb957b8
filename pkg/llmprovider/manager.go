package llmprovider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"groq-chatbot/pkg/log"
)

const (
	defaultKeyCacheSize = 64
	defaultKeyCacheTTL  = 30 * time.Minute
)

// Manager orchestrates provider selection, fallback, and retry logic
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
	keyed     *expirable.LRU[string, *Manager]
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // bounds GenerateContent across the whole fallback chain
	KeyCacheSize    int           // managers kept per caller-supplied API key
	KeyCacheTTL     time.Duration
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	size := config.KeyCacheSize
	if size <= 0 {
		size = defaultKeyCacheSize
	}
	ttl := config.KeyCacheTTL
	if ttl <= 0 {
		ttl = defaultKeyCacheTTL
	}

	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
		keyed:     expirable.NewLRU[string, *Manager](size, nil, ttl),
	}
}

// GenerateContent iterates through providers in priority order with fallback logic
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	candidates, err := m.candidates(req)
	if err != nil {
		return nil, err
	}

	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error
	for i, provider := range candidates {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("global timeout exceeded after trying %d provider(s): %w", i, ctx.Err())
		default:
		}

		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// StreamContent opens a stream on the first provider that accepts it.
// Only opening is retried; once fragments flow, errors reach the consumer.
func (m *Manager) StreamContent(ctx context.Context, req *Request) (Stream, error) {
	candidates, err := m.candidates(req)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, provider := range candidates {
		stream, err := m.openWithRetry(ctx, provider, req)
		if err == nil {
			m.logger.Debugf(ctx, "pkg.llmprovider.Manager.StreamContent: stream opened provider=%s model=%s",
				provider.Name(), modelName(provider, req))
			return stream, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		if !m.config.FallbackEnabled || ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// ListModels merges the models reported by every provider that can list them.
func (m *Manager) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	var (
		models  []ModelInfo
		seen    = make(map[string]bool)
		lastErr error
		listed  bool
	)
	add := func(info ModelInfo) {
		key := info.Provider + "/" + info.ID
		if !seen[key] {
			seen[key] = true
			models = append(models, info)
		}
	}

	for _, provider := range m.providers {
		lister, ok := provider.(ModelLister)
		if !ok {
			add(ModelInfo{ID: provider.Model(), Provider: provider.Name()})
			listed = true
			continue
		}

		infos, err := lister.ListModels(ctx)
		if err != nil {
			m.logger.Warnf(ctx, "pkg.llmprovider.Manager.ListModels: provider=%s err=%v", provider.Name(), err)
			lastErr = err
			continue
		}
		listed = true
		for _, info := range infos {
			add(info)
		}
	}

	if !listed {
		return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
	}

	priority := make(map[string]int, len(m.providers))
	for i, p := range m.providers {
		priority[p.Name()] = i
	}
	sort.SliceStable(models, func(i, j int) bool {
		pi, pj := priority[models[i].Provider], priority[models[j].Provider]
		if pi != pj {
			return pi < pj
		}
		return models[i].ID < models[j].ID
	})
	return models, nil
}

// WithAPIKey returns a Manager whose providers authenticate with apiKey.
// Managers are cached per key; an empty key returns m itself.
func (m *Manager) WithAPIKey(apiKey string) (*Manager, error) {
	if apiKey == "" {
		return m, nil
	}

	sum := sha256.Sum256([]byte(apiKey))
	cacheKey := hex.EncodeToString(sum[:])
	if cached, ok := m.keyed.Get(cacheKey); ok {
		return cached, nil
	}

	providers := make([]Provider, 0, len(m.providers))
	for _, p := range m.providers {
		rekeyer, ok := p.(Rekeyer)
		if !ok {
			providers = append(providers, p)
			continue
		}
		rekeyed, err := rekeyer.WithAPIKey(apiKey)
		if err != nil {
			return nil, fmt.Errorf("rekey provider %s: %w", p.Name(), err)
		}
		providers = append(providers, rekeyed)
	}

	keyed := &Manager{
		providers: providers,
		config:    m.config,
		logger:    m.logger,
		keyed:     m.keyed,
	}
	m.keyed.Add(cacheKey, keyed)
	return keyed, nil
}

// Providers returns the provider names in priority order.
func (m *Manager) Providers() []string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return names
}

// candidates returns the providers able to serve req.Model, in priority order.
func (m *Manager) candidates(req *Request) ([]Provider, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	var out []Provider
	for _, p := range m.providers {
		if s, ok := p.(ModelSupporter); ok && !s.Supports(req.Model) {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrModelNotSupported, req.Model)
	}
	return out, nil
}

// generateWithRetry retries connection-class failures with linear backoff
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < m.attempts(); attempt++ {
		if attempt > 0 {
			if err := m.wait(ctx, attempt); err != nil {
				return nil, err
			}
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		if !IsRetryable(err) {
			break
		}
	}

	return nil, lastErr
}

func (m *Manager) openWithRetry(ctx context.Context, provider Provider, req *Request) (Stream, error) {
	var lastErr error

	for attempt := 0; attempt < m.attempts(); attempt++ {
		if attempt > 0 {
			if err := m.wait(ctx, attempt); err != nil {
				return nil, err
			}
		}

		stream, err := provider.StreamContent(ctx, req)
		if err == nil {
			return stream, nil
		}

		lastErr = err
		if !IsRetryable(err) {
			break
		}
	}

	return nil, lastErr
}

func (m *Manager) attempts() int {
	if m.config.RetryAttempts <= 0 {
		return 1
	}
	return m.config.RetryAttempts
}

func (m *Manager) wait(ctx context.Context, attempt int) error {
	delay := time.Duration(attempt) * m.config.RetryDelay
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func modelName(provider Provider, req *Request) string {
	if req.Model != "" {
		return req.Model
	}
	return provider.Model()
}

// logSuccess logs successful LLM generation with metrics
func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	var in, out int
	if resp.Usage != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.logger.Infof(ctx, "LLM generation successful provider=%s model=%s input_tokens=%d output_tokens=%d",
		provider.Name(), resp.ModelName, in, out)
}

// logFailure logs failed LLM generation attempts
func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warnf(ctx, "LLM generation failed provider=%s model=%s kind=%s error=%v",
		provider.Name(), provider.Model(), KindOf(err), err)
}
