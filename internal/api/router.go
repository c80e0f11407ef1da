package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nomadtrail/nomad-backend-go/internal/config"
	"github.com/nomadtrail/nomad-backend-go/internal/handler"
	"github.com/nomadtrail/nomad-backend-go/internal/middleware"
)

// Handlers bundles the route handlers wired by the server entrypoint.
type Handlers struct {
	Stays     *handler.StayHandler
	Status    *handler.StatusHandler
	Scenario  *handler.ScenarioHandler
	Documents *handler.DocumentHandler
	Chat      *handler.ChatHandler
}

// SetupRouter assembles the gin engine: middleware chain, health check and
// the versioned API groups.
func SetupRouter(cfg *config.Config, log zerolog.Logger, h Handlers) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Logger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// CORS, inline; the API serves browser dashboards directly.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Nomad Backend API is running",
		})
	})

	// API route group
	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		// Stay records
		stays := api.Group("/stays")
		{
			stays.GET("", h.Stays.List)
			stays.POST("", h.Stays.Create)
			stays.GET("/:id", h.Stays.Get)
			stays.POST("/:id/supersede", h.Stays.Supersede)
			stays.DELETE("/:id", h.Stays.Delete)
		}

		// Derived compliance status
		api.GET("/status", h.Status.Overview)
		api.GET("/status/:jurisdiction", h.Status.ByJurisdiction)
		api.GET("/schengen", h.Status.Schengen)
		api.GET("/substantial-presence", h.Status.SubstantialPresence)

		// Scenario projection
		api.POST("/scenario", h.Scenario.Project)

		// Travel documents
		documents := api.Group("/documents")
		{
			documents.GET("", h.Documents.List)
			documents.GET("/expiring", h.Documents.Expiring)
			documents.POST("", h.Documents.Create)
		}

		// Chat assistants
		chat := api.Group("/chat")
		{
			chat.GET("/personas", h.Chat.Personas)
			chat.POST("/:persona", h.Chat.Ask)
		}
	}

	return r
}
