package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts trainer routes below /gyms/:id.
func RegisterRoutes(g *gin.RouterGroup, h *TrainerHandler, identity gin.HandlerFunc) {
	group := g.Group("/gyms/:id/trainers")

	group.GET("", h.List)
	group.POST("", identity, h.Add)
	group.DELETE("/:trainer_id", identity, h.Remove)
}
