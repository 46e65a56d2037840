package webhook

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the GitHub receiver and the gateway invocation endpoint.
func RegisterRoutes(r gin.IRoutes, h *Handler) {
	r.POST("/webhook/github/:route_id", h.HandleGitHubWebhook)
	r.POST("/invoke", h.HandleInvoke)
}
