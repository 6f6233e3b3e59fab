package court

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	courts := r.Group("/quadras")
	{
		courts.GET("", h.List)
		courts.GET("/:id", h.Get)
		courts.POST("", h.Create)
		courts.PUT("/:id", h.Update)
		courts.PATCH("/:id", h.SetAvailability)
		courts.DELETE("/:id", h.Delete)
	}
}
