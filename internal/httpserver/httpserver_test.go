package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"groq-chatbot/config"
	"groq-chatbot/internal/chat"
	"groq-chatbot/internal/httpserver"
	"groq-chatbot/pkg/log"
	"groq-chatbot/pkg/response"
)

type stubUseCase struct {
	chat.UseCase
}

func (stubUseCase) CreateSession(ctx context.Context) (chat.SessionSnapshot, error) {
	return chat.SessionSnapshot{ID: "s1"}, nil
}

func newServer(t *testing.T, cfg httpserver.Config) *httpserver.HTTPServer {
	t.Helper()
	cfg.Mode = gin.TestMode
	cfg.Port = 8080
	if cfg.ChatUseCase == nil {
		cfg.ChatUseCase = stubUseCase{}
	}
	srv, err := httpserver.New(log.NewNop(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func TestNewValidation(t *testing.T) {
	tcs := []struct {
		name string
		cfg  httpserver.Config
	}{
		{"no mode", httpserver.Config{Port: 8080, ChatUseCase: stubUseCase{}}},
		{"no port", httpserver.Config{Mode: gin.TestMode, ChatUseCase: stubUseCase{}}},
		{"no use case", httpserver.Config{Mode: gin.TestMode, Port: 8080}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := httpserver.New(log.NewNop(), tc.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	srv := newServer(t, httpserver.Config{Providers: []string{"groq"}})

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s: missing request id header", path)
		}
	}
}

func TestReadyWithoutProviders(t *testing.T) {
	srv := newServer(t, httpserver.Config{})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestChatRoutesMounted(t *testing.T) {
	srv := newServer(t, httpserver.Config{Providers: []string{"groq"}})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	data, _ := resp.Data.(map[string]any)
	if data["id"] != "s1" {
		t.Errorf("unexpected session %v", resp.Data)
	}
}

func TestAPIRateLimited(t *testing.T) {
	srv := newServer(t, httpserver.Config{
		Providers: []string{"groq"},
		RateLimit: config.RateLimitConfig{Enabled: true, RequestsPerMin: 1, Burst: 1},
	})

	codes := make([]int, 2)
	for i := range codes {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
		codes[i] = w.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("expected [200 429], got %v", codes)
	}

	// System routes sit outside the limited group.
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("health should not be rate limited, got %d", w.Code)
	}
}

type countingSessions int

func (n countingSessions) CountSessions(ctx context.Context) int { return int(n) }

func TestReadyReportsSessionCount(t *testing.T) {
	srv := newServer(t, httpserver.Config{Providers: []string{"groq"}, Sessions: countingSessions(3)})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	data, _ := resp.Data.(map[string]any)
	if data["sessions"] != float64(3) {
		t.Errorf("expected 3 sessions, got %v", data["sessions"])
	}
}
