package app

import (
	"github.com/gin-gonic/gin"

	"github.com/bkoseoglu/visadesk-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		DocumentsHandler:    handlerset.Documents,
		AutomationHandler:   handlerset.Automation,
		WebhookHandler:      handlerset.Webhook,
		BookingHandler:      handlerset.Booking,
		LettersHandler:      handlerset.Letters,
		ApplicationsHandler: handlerset.Applications,
		AllowOrigins:        cfg.AllowOrigins,
	})
}
