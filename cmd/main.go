package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"securehome/server/internal/assistant"
	"securehome/server/internal/config"
	"securehome/server/internal/interfaces"
	"securehome/server/internal/security"
	"securehome/server/internal/storage"
	"securehome/server/internal/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL keeps the visitor log and users. When it is unreachable the
	// server still comes up on an in-memory log so the assistant works.
	var visitors interfaces.VisitorStore
	var users interfaces.UserStore

	mysqlStore, err := storage.NewMySQLStore(cfg.Database.MySQL)
	if err != nil {
		log.Printf("Warning: Failed to initialize MySQL: %v", err)
		log.Printf("Warning: Falling back to in-memory visitor log; user accounts disabled")
		visitors = storage.NewMemoryVisitorStore()
	} else {
		defer mysqlStore.Close()
		visitors = mysqlStore
		users = mysqlStore
		log.Println("MySQL initialized successfully")
	}

	// Redis backs the recent-events feed; without it the feed is live-only.
	redisStore, err := storage.NewRedisStore(cfg.Database.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis: %v", err)
		redisStore = nil
	} else {
		defer redisStore.Close()
		log.Println("Redis initialized successfully")
	}

	// Timezone for interpreting questions like "yesterday" and "around 7pm"
	loc := time.Local
	if cfg.Assistant.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Assistant.Timezone)
		if err != nil {
			log.Fatalf("Failed to load timezone %q: %v", cfg.Assistant.Timezone, err)
		}
	}

	if cfg.AI.Gemini.APIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set, generative fallback will fail")
	}
	gemini := assistant.NewGeminiClient(
		cfg.AI.Gemini.APIKey,
		cfg.AI.Gemini.BaseURL,
		cfg.AI.Gemini.Model,
	)

	engine := assistant.NewEngine(visitors, gemini, assistant.Options{
		CacheTTL:    cfg.Assistant.CacheTTL.Std(),
		MinInterval: cfg.Assistant.MinRequestInterval.Std(),
		Location:    loc,
	})

	// WebSocket hub for the live event stream
	hub := web.NewEventHub()
	go hub.Run()

	eventService := web.NewEventService(hub)
	if redisStore != nil {
		eventService.SetRedisStore(redisStore)
	}

	system := security.NewManager(cfg.Security.DefaultMode)

	router := web.NewRouter(cfg, engine, visitors, users, system, eventService, hub)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
