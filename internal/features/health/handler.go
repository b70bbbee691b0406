package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the health check payload.
type Status struct {
	Status string `json:"status" example:"ok"`
	DB     string `json:"db" example:"up"`
	Time   int64  `json:"time" example:"1735689600"`
}

type Handler struct {
	db      Pinger
	timeout time.Duration
}

func NewHandler(db Pinger) *Handler {
	return &Handler{db: db, timeout: 2 * time.Second}
}

// Check godoc
// @Summary Health check
// @Description Liveness probe; also reports whether the database answers a ping
// @Tags health
// @Produce json
// @Success 200 {object} Status
// @Router /health [get]
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	db := "up"
	if h.db == nil {
		db = "down"
	} else if err := h.db.Ping(ctx); err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("database ping failed")
		db = "down"
	}

	c.JSON(http.StatusOK, Status{Status: "ok", DB: db, Time: time.Now().Unix()})
}
