package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"talky-backend/internal/config"
	"talky-backend/internal/database"
	"talky-backend/internal/handlers"
	"talky-backend/internal/logger"
	"talky-backend/internal/repository"
	"talky-backend/internal/router"
	"talky-backend/internal/services"
	"talky-backend/internal/websocket"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("✗ Configuration error: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("✗ Logger initialization failed: %v", err)
	}
	defer zl.Sync()

	zl.Info("🚀 Starting Talky Backend...")
	zl.Info("✓ Environment variables loaded", zap.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ──── Step 2: Persistence (connected lazily on first chat) ────
	var store repository.Opener
	if cfg.PersistChats {
		s := repository.NewStore(cfg.DatabaseURL, zl)
		defer s.Close()
		store = s
		zl.Info("✓ Chat persistence enabled (connects on first request)")
	} else {
		store = repository.DiscardStore{}
		zl.Warn("chat persistence disabled, exchanges will not be stored")
	}

	// ──── Step 3: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, zl)
	if err != nil {
		zl.Fatal("✗ Gemini client initialization failed", zap.Error(err))
	}
	defer geminiService.Close()
	zl.Info("✓ Gemini client initialized", zap.String("model", cfg.GeminiModel))

	// ──── Step 4: Record feed (optional) ────
	var (
		publisher *services.RecordPublisher
		wsHub     *websocket.Hub
	)
	if cfg.RedisURL != "" {
		redisClients, err := database.NewRedisClients(ctx, cfg.RedisURL)
		if err != nil {
			zl.Fatal("✗ Redis connection failed", zap.Error(err))
		}
		defer redisClients.Close()

		publisher = services.NewRecordPublisher(redisClients.Publisher, zl)
		wsHub = websocket.NewHub(redisClients.Subscriber, zl)
		go wsHub.Run(ctx)
		zl.Info("✓ Redis connected, record feed enabled")
	}

	// ──── Step 5: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(store, geminiService, publisher, zl)
	r := router.New(zl, chatHandler, wsHub, cfg.FrontendURL)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		zl.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	zl.Info(fmt.Sprintf("✓ Talky Backend ready on http://localhost:%s", cfg.Port))
	zl.Info(fmt.Sprintf("  API: http://localhost:%s/api/chat", cfg.Port))

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		zl.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
