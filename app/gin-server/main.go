package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mellah-kais/cnam-server/config"
	"github.com/mellah-kais/cnam-server/internal/api/handlers"
	"github.com/mellah-kais/cnam-server/internal/api/middleware"
	"github.com/mellah-kais/cnam-server/internal/api/routes"
	"github.com/mellah-kais/cnam-server/internal/cache"
	"github.com/mellah-kais/cnam-server/internal/logger"
	"github.com/mellah-kais/cnam-server/internal/providers/llm"
	"github.com/mellah-kais/cnam-server/internal/providers/stt"
	pgrepo "github.com/mellah-kais/cnam-server/internal/repositories/postgres"
	"github.com/mellah-kais/cnam-server/internal/services"
	"github.com/mellah-kais/cnam-server/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	l := logger.New()
	ctx := context.Background()

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	l.Info("PostgreSQL connected")

	// Redis is optional; without it the extraction cache is simply off.
	var extractCache cache.Cache
	if err := config.InitRedis(); err != nil {
		l.WithError(err).Warn("Redis unavailable, extraction cache disabled")
	} else {
		extractCache = cache.NewRedisCache(config.RedisClient)
		l.Info("Redis connected")
	}

	scratch, err := storage.NewScratch(cfg.UploadDir)
	if err != nil {
		log.Fatalf("scratch dir init error: %v", err)
	}

	// Transcription backend
	var sttProvider stt.Provider
	switch cfg.STTProvider {
	case "google":
		sttProvider, err = stt.NewGoogleSpeech(ctx)
		if err != nil {
			log.Fatalf("Google Speech init error: %v", err)
		}
	default:
		sttProvider = stt.NewWhisper(stt.WhisperConfig{
			Endpoint: cfg.WhisperURL,
			Timeout:  cfg.TranscribeTimeout,
		})
	}
	defer sttProvider.Close()

	// Extraction backend
	var llmProvider llm.Provider
	switch cfg.LLMProvider {
	case "vertex":
		llmProvider, err = llm.NewVertexGemini(ctx, cfg.GoogleProjectID, cfg.GoogleLocation, cfg.VertexModel)
		if err != nil {
			log.Fatalf("Vertex init error: %v", err)
		}
	default:
		llmProvider = llm.NewOllama(llm.OllamaConfig{
			Endpoint: cfg.OllamaURL,
			Model:    cfg.OllamaModel,
			Timeout:  cfg.ExtractTimeout,
		})
	}
	defer llmProvider.Close()

	extractor := services.NewFormExtractor(llmProvider, extractCache, cfg.ExtractCacheTTL, l)
	voiceSvc := services.NewVoiceService(sttProvider, extractor, l)

	streamMgr := services.NewStreamManager(services.StreamConfig{
		PartialInterval: cfg.PartialInterval,
		PartialMinBytes: cfg.PartialMinBytes,
	}, voiceSvc, scratch, l)
	defer streamMgr.Shutdown()

	userRepo := pgrepo.NewUserRepo(config.PostgresDB)
	patientRepo := pgrepo.NewPatientRepo(config.PostgresDB)
	bulletinRepo := pgrepo.NewBulletinRepo(config.PostgresDB)
	bordereauRepo := pgrepo.NewBordereauRepo(config.PostgresDB)

	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret)
	syncSvc := services.NewSyncService(patientRepo, bulletinRepo, bordereauRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:      handlers.NewAuthHandler(authSvc),
		Voice:     handlers.NewVoiceHandler(voiceSvc, extractor, scratch),
		Sync:      handlers.NewSyncHandler(syncSvc),
		Stream:    handlers.NewStreamHandler(streamMgr, l),
		JWTSecret: cfg.JWTSecret,
	})

	l.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
