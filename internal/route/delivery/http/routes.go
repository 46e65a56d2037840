package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps the slash-command endpoint. Slack signs the request
// itself, so no auth middleware applies.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	rg.POST("/commands", h.Command)
}
