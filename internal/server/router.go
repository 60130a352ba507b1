package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bkoseoglu/visadesk-backend/internal/handlers"
)

type RouterConfig struct {
	DocumentsHandler    *handlers.DocumentsHandler
	AutomationHandler   *handlers.AutomationHandler
	WebhookHandler      *handlers.WebhookHandler
	BookingHandler      *handlers.BookingHandler
	LettersHandler      *handlers.LettersHandler
	ApplicationsHandler *handlers.ApplicationsHandler
	AllowOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-User-ID"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/generate-documents", cfg.DocumentsHandler.Generate)

		api.POST("/automation/jobs", cfg.AutomationHandler.CreateJob)
		api.GET("/automation/jobs/:id", cfg.AutomationHandler.GetJob)
		api.PATCH("/automation/jobs/:id", cfg.AutomationHandler.PatchJob)
		// The bot service authenticates with the shared webhook secret,
		// not a user session.
		api.POST("/automation/webhook", cfg.WebhookHandler.Handle)

		api.POST("/bookings/generate", cfg.BookingHandler.Generate)
		api.POST("/letters/generate", cfg.LettersHandler.Generate)
		api.GET("/applications/:id/export", cfg.ApplicationsHandler.Export)
	}

	return router
}
