package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"groq-chatbot/config"
	_ "groq-chatbot/docs" // Swagger docs
	"groq-chatbot/internal/chat/repository"
	"groq-chatbot/internal/chat/repository/memory"
	"groq-chatbot/internal/chat/repository/sqlite"
	"groq-chatbot/internal/chat/usecase"
	"groq-chatbot/internal/httpserver"
	"groq-chatbot/pkg/llmprovider"
	"groq-chatbot/pkg/log"
)

// @title       Groq Chatbot API
// @description Conversation sessions that ask one or two Groq-hosted models, optionally grounded on an uploaded document.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Groq chatbot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Model providers
	manager, err := llmprovider.NewManagerFromConfig(ctx, &cfg.LLM, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	logger.Infof(ctx, "LLM providers: %v", manager.Providers())

	// 4. Repositories
	sessionTTL, err := time.ParseDuration(cfg.Chat.SessionTTL)
	if err != nil {
		logger.Errorf(ctx, "Invalid chat.session_ttl %q: %v", cfg.Chat.SessionTTL, err)
		return
	}
	sessions := memory.New(logger, cfg.Chat.MaxSessions, sessionTTL)

	var archive repository.TranscriptRepository
	if cfg.Archive.Enabled {
		archive, err = sqlite.New(cfg.Archive.SQLitePath, logger)
		if err != nil {
			logger.Warnf(ctx, "Transcript archive not available (optional): %v", err)
		} else {
			defer archive.Close()
			logger.Infof(ctx, "Transcript archive at %s", cfg.Archive.SQLitePath)
		}
	}

	// 5. Chat UseCase
	requestTimeout, err := time.ParseDuration(cfg.LLM.RequestTimeout)
	if err != nil {
		logger.Errorf(ctx, "Invalid llm.request_timeout %q: %v", cfg.LLM.RequestTimeout, err)
		return
	}

	var compareModels [2]string
	copy(compareModels[:], cfg.Chat.CompareModels)

	provider, keyed := usecase.FromManager(manager)
	chatUC := usecase.New(logger, sessions, archive, provider, keyed, usecase.Config{
		SystemPrompt:   cfg.Chat.SystemPrompt,
		DefaultModel:   cfg.Chat.DefaultModel,
		CompareModels:  compareModels,
		Temperature:    cfg.Chat.Temperature,
		MinTemperature: cfg.Chat.MinTemperature,
		MaxTemperature: cfg.Chat.MaxTemperature,
		MaxTokens:      cfg.Chat.MaxTokens,
		RequestTimeout: requestTimeout,
	})

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:           logger,
		Port:             cfg.HTTPServer.Port,
		Mode:             cfg.HTTPServer.Mode,
		Environment:      cfg.Environment.Name,
		RateLimit:        cfg.RateLimit,
		ChatUseCase:      chatUC,
		MaxDocumentBytes: cfg.Chat.MaxDocumentBytes,
		Providers:        manager.Providers(),
		Sessions:         sessions,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
