package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"points-board-api/internal/dto"
	"points-board-api/internal/response"
	"points-board-api/internal/service"
)

type ParticipantHandler struct {
	participantService service.ParticipantService
	logger             *zap.Logger
}

func NewParticipantHandler(participantService service.ParticipantService, logger *zap.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
		logger:             logger,
	}
}

// AddParticipant godoc
// @Summary      Add a participant
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path int true "Board ID"
// @Param        request body dto.AddParticipantRequest true "Participant"
// @Success      201 {object} response.MessageResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /board/add-participant/{boardId} [post]
func (h *ParticipantHandler) AddParticipant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	var req dto.AddParticipantRequest
	if !bindAndValidate(c, &req) {
		return
	}

	id, err := h.participantService.AddParticipant(c.Request.Context(), userID, boardID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendMessage(c, http.StatusCreated, "Participant added successfully", id)
}

// UpdateParticipants godoc
// @Summary      Update participants
// @Description  Applies every entry or none. Each entry must carry id, name and points. An omitted avatar is kept; null clears it.
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path int true "Board ID"
// @Param        request body []dto.ParticipantUpdate true "Participants"
// @Success      200 {object} response.MessageResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /board/update-participants/{boardId} [put]
func (h *ParticipantHandler) UpdateParticipants(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	var updates []dto.ParticipantUpdate
	if !bindJSON(c, &updates) {
		return
	}

	if err := h.participantService.UpdateParticipants(c.Request.Context(), userID, boardID, updates); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendMessage(c, http.StatusOK, "Participants updated successfully", 0)
}

// DeleteParticipant godoc
// @Summary      Delete a participant
// @Description  Without a body the path id is the participant id. With a body {"id": participantId} the path id is the board id.
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Participant ID, or Board ID when a body is sent"
// @Param        request body dto.DeleteParticipantRequest false "Participant in board"
// @Success      200 {object} response.MessageResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /board/delete-participant/{id} [delete]
func (h *ParticipantHandler) DeleteParticipant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	pathID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		if err := h.participantService.DeleteParticipant(c.Request.Context(), userID, pathID); err != nil {
			handleServiceError(c, h.logger, err)
			return
		}
		response.SendMessage(c, http.StatusOK, "Participant deleted successfully", pathID)
		return
	}

	var req dto.DeleteParticipantRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	if req.ID == nil || *req.ID == 0 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Missing required fields: id")
		return
	}

	if err := h.participantService.DeleteParticipantFromBoard(c.Request.Context(), userID, pathID, *req.ID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendMessage(c, http.StatusOK, "Participant deleted successfully", *req.ID)
}
