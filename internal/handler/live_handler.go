package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"points-board-api/internal/middleware"
	"points-board-api/internal/realtime"
	"points-board-api/internal/response"
	"points-board-api/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type LiveHandler struct {
	boardService service.BoardService
	hub          *realtime.Hub
	logger       *zap.Logger
}

func NewLiveHandler(boardService service.BoardService, hub *realtime.Hub, logger *zap.Logger) *LiveHandler {
	return &LiveHandler{
		boardService: boardService,
		hub:          hub,
		logger:       logger,
	}
}

// Subscribe godoc
// @Summary      Live board feed
// @Description  WebSocket stream of board snapshots. Sends one on connect and after each change. Closed when the token is revoked.
// @Tags         boards
// @Security     BearerAuth
// @Param        id path int true "Board ID"
// @Param        token query string false "Session token when the Authorization header cannot be set"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /boards/{id}/live [get]
func (h *LiveHandler) Subscribe(c *gin.Context) {
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	claims, ok := middleware.Claims(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Token claims not found in context")
		return
	}

	board, err := h.boardService.GetBoard(c.Request.Context(), boardID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection", zap.Error(err))
		return
	}

	if err := h.hub.Serve(conn, boardID, claims.ID, board); err != nil {
		h.logger.Error("Failed to start live feed", zap.Error(err))
		_ = conn.Close()
	}
}
