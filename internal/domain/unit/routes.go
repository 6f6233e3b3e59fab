package unit

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	units := r.Group("/unidades")
	{
		units.GET("", h.List)
		units.GET("/:id", h.Get)
		units.POST("", h.Create)
		units.PUT("/:id", h.Update)
		units.DELETE("/:id", h.Delete)
	}
}
