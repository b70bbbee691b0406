// ================== internal/features/todos/routes.go ==================
package todos

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router gin.IRouter, svc *Service) {
	handler := NewHandler(svc)

	todos := router.Group("/todos")
	{
		todos.POST("", handler.Create)
		todos.GET("", handler.List)
		todos.GET("/:id", handler.Get)
		todos.PATCH("/:id/description", handler.UpdateDescription)
		todos.PATCH("/:id/mark-done", handler.MarkDone)
		todos.PATCH("/:id/mark-not-done", handler.MarkNotDone)
	}
}
