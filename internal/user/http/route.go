package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers account and admin user routes.
// identity must resolve the caller; adminOnly must run after it.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, identity, adminOnly gin.HandlerFunc) {
	group := g.Group("/users")

	// Public
	group.POST("/register", h.Register)
	group.POST("/login", h.Login)

	// Authenticated
	group.GET("/me", identity, h.Me)

	// Admin
	group.GET("", identity, adminOnly, h.List)
	group.GET("/:id", identity, adminOnly, h.Get)
}
