package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"points-board-api/internal/dto"
	"points-board-api/internal/middleware"
	"points-board-api/internal/response"
)

const noDataMessage = "No data provided in the request body"

// bindJSON decodes the body into dst and reports a 400 on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, noDataMessage)
			return false
		}
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return false
	}
	return true
}

// bindAndValidate decodes the body and checks required fields
func bindAndValidate(c *gin.Context, dst interface{}) bool {
	if !bindJSON(c, dst) {
		return false
	}

	missing, err := dto.Validate(dst)
	if err != nil {
		var invalid *dto.InvalidFieldsError
		if errors.As(err, &invalid) {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation,
				"Invalid fields: "+strings.Join(invalid.Fields, ", "))
			return false
		}
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return false
	}
	if len(missing) > 0 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation,
			"Missing required fields: "+strings.Join(missing, ", "))
		return false
	}
	return true
}

// parseIDParam reads a positive integer path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// currentUserID returns the authenticated caller or writes a 401
func currentUserID(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return 0, false
	}
	return userID, true
}
