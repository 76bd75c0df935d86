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

	"flashdeck-backend/internal/cache"
	"flashdeck-backend/internal/config"
	"flashdeck-backend/internal/database"
	"flashdeck-backend/internal/handlers"
	"flashdeck-backend/internal/middleware"
	"flashdeck-backend/internal/repository"
	"flashdeck-backend/internal/router"
	"flashdeck-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Flashdeck Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	deckRepo := repository.NewDeckRepo(pool)
	cardRepo := repository.NewCardRepo(pool)
	generationRepo := repository.NewGenerationRepo(pool)
	studySessionRepo := repository.NewStudySessionRepo(pool)

	// ──── Step 5: Initialize Gemini Client ────
	geminiClient, err := services.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiClient.Close()
	log.Println("✓ Gemini client initialized")

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	viewCache := cache.NewDeckViewCache(redisClient)
	generationService := services.NewGenerationService(
		deckRepo,
		cardRepo,
		generationRepo,
		geminiClient,
		viewCache,
		cfg.GeminiAPIKey,
	)

	// ──── Initialize Handlers ────
	deckHandler := handlers.NewDeckHandler(deckRepo, cardRepo, viewCache)
	cardHandler := handlers.NewCardHandler(cardRepo, deckRepo, viewCache)
	generationHandler := handlers.NewGenerationHandler(generationService)
	studySessionHandler := handlers.NewStudySessionHandler(studySessionRepo, deckRepo)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		deckHandler,
		cardHandler,
		generationHandler,
		studySessionHandler,
		cfg.FrontendURL,
		cfg.RequestsPerMin,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Flashdeck Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
