package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"points-board-api/internal/dto"
	"points-board-api/internal/response"
	"points-board-api/internal/service"
)

type BoardHandler struct {
	boardService service.BoardService
	logger       *zap.Logger
}

func NewBoardHandler(boardService service.BoardService, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// GetBoard godoc
// @Summary      Get a board
// @Description  Returns the board with participants ordered by points, highest first
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Board ID"
// @Success      200 {object} dto.BoardResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /boards/{id} [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(c.Request.Context(), boardID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// ListBoards godoc
// @Summary      List my boards
// @Description  The caller's boards with participant counts, soonest end time first
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.BoardSummaryResponse
// @Router       /partialBoards [get]
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardService.ListBoards(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, boards)
}

// CreateBoard godoc
// @Summary      Create a board
// @Tags         boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBoardRequest true "Board"
// @Success      201 {object} dto.BoardResponse
// @Failure      400 {object} response.ErrorResponse
// @Router       /board/create [post]
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBoardRequest
	if !bindAndValidate(c, &req) {
		return
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, board)
}

// DeleteBoard godoc
// @Summary      Delete a board
// @Description  Deletes the board and its participants. Only the owner may delete.
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path int true "Board ID"
// @Success      200 {object} response.MessageResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /boards/delete/{boardId} [delete]
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(c.Request.Context(), userID, boardID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendMessage(c, http.StatusOK, "Board deleted successfully", boardID)
}
