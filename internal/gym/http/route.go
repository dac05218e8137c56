package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers gym routes. Browsing is public; changes need an identity.
func RegisterRoutes(g *gin.RouterGroup, h *GymHandler, identity gin.HandlerFunc) {
	group := g.Group("/gyms")

	group.GET("", h.List)
	group.GET("/:id", h.Get)

	group.POST("", identity, h.Create)
	group.PUT("/:id", identity, h.Update)
	group.DELETE("/:id", identity, h.Delete)
	group.PUT("/:id/cover", identity, h.UploadCover)
}
