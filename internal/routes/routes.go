package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/duetodo/internal/features/health"
	"github.com/xyz-asif/duetodo/internal/features/todos"
	"github.com/xyz-asif/duetodo/internal/pkg/response"
)

// Deps carries what the feature routes need from main.
type Deps struct {
	DB    health.Pinger
	Todos *todos.Service
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	health.RegisterRoutes(router, deps.DB)
	todos.RegisterRoutes(router, deps.Todos)

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Cannot "+c.Request.Method+" "+c.Request.URL.Path, "ROUTE_NOT_FOUND")
	})
}
