package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mellah-kais/cnam-server/internal/api/handlers"
	"github.com/mellah-kais/cnam-server/internal/api/middleware"
)

type Deps struct {
	Auth   *handlers.AuthHandler
	Voice  *handlers.VoiceHandler
	Sync   *handlers.SyncHandler
	Stream *handlers.StreamHandler

	JWTSecret string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
	})

	r.POST("/api/auth/signup", d.Auth.Signup)
	r.POST("/api/auth/login", d.Auth.Login)

	// Voice endpoints are consumed by the recording widget before login.
	r.POST("/api/voice-to-form", d.Voice.VoiceToForm)
	r.POST("/api/text-to-form", d.Voice.TextToForm)

	// WebSocket streaming
	r.GET("/ws/voice", d.Stream.VoiceWS)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth(d.JWTSecret))

	auth.POST("/api/sync/patients", d.Sync.Patients)
	auth.POST("/api/sync/bulletins", d.Sync.Bulletins)
	auth.POST("/api/sync/bordereaux", d.Sync.Bordereaux)
}
