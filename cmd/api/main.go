package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/realmforge/realmforge/internal/config"
	"github.com/realmforge/realmforge/internal/handlers"
	"github.com/realmforge/realmforge/internal/logger"
	"github.com/realmforge/realmforge/internal/middleware"
	"github.com/realmforge/realmforge/internal/services"
	"github.com/realmforge/realmforge/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Realmforge API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"gen_provider", cfg.GenProvider)

	var genService services.GenService
	var modelName string
	switch cfg.GenProvider {
	case config.ProviderGemini:
		genService = services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiImageModel)
		modelName = cfg.GeminiModel
		log.Info("Using Gemini generation provider", "model", modelName)
	case config.ProviderVenice:
		genService = services.NewVeniceService(cfg.VeniceAPIKey, cfg.VeniceModel, cfg.VeniceImageModel)
		modelName = cfg.VeniceModel
		log.Info("Using Venice generation provider", "model", modelName)
	default:
		genService = services.NewMockGenService()
		log.Warn("Using mock generation provider; generated content will be canned")
	}

	redisStore := storage.NewRedisStorage(cfg.RedisURL, "./data", log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	// Redis may still be coming up under docker-compose; retry before
	// giving up.
	if err := redisStore.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	var store storage.Storage = redisStore

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := genService.InitModel(ctx, modelName); err != nil {
		log.Error("Failed to initialize generation model", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	characterHandler := handlers.NewCharacterHandler(store, log)
	mux.Handle("/v1/characters", characterHandler)
	mux.Handle("/v1/characters/", characterHandler)

	worldHandler := handlers.NewWorldHandler(store, log)
	mux.Handle("/v1/worlds", worldHandler)
	mux.Handle("/v1/worlds/", worldHandler)

	libraryHandler := handlers.NewLibraryHandler(store, log)
	mux.Handle("/v1/library", libraryHandler)
	mux.Handle("/v1/library/", libraryHandler)

	adventureHandler := handlers.NewAdventureHandler(store, log)
	mux.Handle("/v1/adventures", adventureHandler)
	mux.Handle("/v1/adventures/", adventureHandler)

	bestiaryHandler := handlers.NewBestiaryHandler(log, store)
	mux.Handle("/v1/bestiary", bestiaryHandler)
	mux.Handle("/v1/bestiary/", bestiaryHandler)

	generateHandler := handlers.NewGenerateHandler(genService, log)
	mux.Handle("/v1/generate/", generateHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
