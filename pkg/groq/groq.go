package groq

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func newGroqImpl(cfg Config) *groqImpl {
	return &groqImpl{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}
}

// ChatCompletion sends a non-streaming completion request.
func (g *groqImpl) ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	body := *req
	body.Stream = false
	if body.Model == "" {
		body.Model = g.model
	}

	resp, err := g.post(ctx, "/chat/completions", &body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	var result ChatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("groq: failed to decode response: %w", err)
	}

	return &result, nil
}

// ChatCompletionStream opens a streaming completion request.
func (g *groqImpl) ChatCompletionStream(ctx context.Context, req *ChatRequest) (*ChatStream, error) {
	body := *req
	body.Stream = true
	if body.Model == "" {
		body.Model = g.model
	}

	resp, err := g.post(ctx, "/chat/completions", &body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	return &ChatStream{
		body:   resp.Body,
		reader: bufio.NewReaderSize(resp.Body, 64*1024),
	}, nil
}

// ListModels returns the models available to the API key.
func (g *groqImpl) ListModels(ctx context.Context) ([]Model, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("groq: failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: "API call failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	var list modelList
	if err := json.Unmarshal(respBody, &list); err != nil {
		return nil, fmt.Errorf("groq: failed to decode models: %w", err)
	}
	return list.Data, nil
}

// Model returns the default model.
func (g *groqImpl) Model() string {
	return g.model
}

func (g *groqImpl) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("groq: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("groq: failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: "API call failed", Err: err}
	}
	return resp, nil
}
