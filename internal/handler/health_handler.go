package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"points-board-api/internal/database"
	"points-board-api/internal/response"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} response.MessageResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.SendMessage(c, http.StatusOK, "OK", 0)
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Fails when the database cannot be reached
// @Tags         health
// @Produce      json
// @Success      200 {object} response.MessageResponse
// @Failure      503 {object} response.ErrorResponse
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		response.SendError(c, http.StatusServiceUnavailable, response.ErrCodeUnavailable, "Database unavailable")
		return
	}
	response.SendMessage(c, http.StatusOK, "OK", 0)
}
