package health

import "github.com/gin-gonic/gin"

func RegisterRoutes(router gin.IRouter, db Pinger) {
	h := NewHandler(db)
	router.GET("/health", h.Check)
}
