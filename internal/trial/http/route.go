package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers trial booking routes. Every route needs an identity.
func RegisterRoutes(g *gin.RouterGroup, h *TrialHandler, identity gin.HandlerFunc) {
	group := g.Group("/trials", identity)

	group.POST("", h.Create)
	group.GET("", h.ListMine)
	group.GET("/:id", h.Get)
	group.PUT("/:id/status", h.UpdateStatus)

	g.GET("/gyms/:id/trials", identity, h.ListForGym)
}
